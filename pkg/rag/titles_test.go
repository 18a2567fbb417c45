package rag

import (
	"reflect"
	"testing"
)

func TestExtractTitles(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantPresent bool
		wantTitles  []string
	}{
		{
			name:        "clean titles object",
			raw:         `{"titles": ["어린왕자", "데미안", "코스모스"]}`,
			wantPresent: true,
			wantTitles:  []string{"어린왕자", "데미안", "코스모스"},
		},
		{
			name: "object wrapped in markdown fence",
			raw: "```json\n" +
				`{"titles": ["어린왕자", "데미안"]}` +
				"\n```",
			wantPresent: true,
			wantTitles:  []string{"어린왕자", "데미안"},
		},
		{
			name:        "object surrounded by prose",
			raw:         `네, 추천해드릴게요! {"titles": ["어린왕자"]} 즐거운 독서 되세요.`,
			wantPresent: true,
			wantTitles:  []string{"어린왕자"},
		},
		{
			name:        "bare string array",
			raw:         `["어린왕자", "데미안"]`,
			wantPresent: true,
			wantTitles:  []string{"어린왕자", "데미안"},
		},
		{
			name:        "titles are trimmed, empties dropped",
			raw:         `{"titles": [" 어린왕자 ", "", "데미안"]}`,
			wantPresent: true,
			wantTitles:  []string{"어린왕자", "데미안"},
		},
		{
			name:        "braces inside title strings do not break scanning",
			raw:         `{"titles": ["수학의 정석 {상}", "데미안"]}`,
			wantPresent: true,
			wantTitles:  []string{"수학의 정석 {상}", "데미안"},
		},
		{
			name:        "plain prose without structure",
			raw:         "요즘은 성장 소설이 인기가 많아요. 어떤 장르를 좋아하세요?",
			wantPresent: false,
		},
		{
			name:        "empty titles array",
			raw:         `{"titles": []}`,
			wantPresent: false,
		},
		{
			name:        "wrong key",
			raw:         `{"books": ["어린왕자"]}`,
			wantPresent: false,
		},
		{
			name:        "empty response",
			raw:         "",
			wantPresent: false,
		},
		{
			name:        "truncated JSON",
			raw:         `{"titles": ["어린왕자",`,
			wantPresent: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTitles(tt.raw)

			if got.Present != tt.wantPresent {
				t.Fatalf("Present = %v, want %v (reason: %s)", got.Present, tt.wantPresent, got.Reason)
			}
			if tt.wantPresent && !reflect.DeepEqual(got.Titles, tt.wantTitles) {
				t.Errorf("Titles = %v, want %v", got.Titles, tt.wantTitles)
			}
			if !tt.wantPresent && got.Reason == "" {
				t.Error("failed extraction should carry a reason")
			}
		})
	}
}

package recommend

import (
	"reflect"
	"testing"
)

func TestValidateCandidates(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		titles     []string
		want       []string
	}{
		{
			name:       "substring of canonical title validates",
			candidates: []string{"어린왕자", "투명인간"},
			titles:     []string{"어린왕자 이야기"},
			want:       []string{"어린왕자"},
		},
		{
			name:       "exact match validates",
			candidates: []string{"데미안"},
			titles:     []string{"데미안", "코스모스"},
			want:       []string{"데미안"},
		},
		{
			name:       "input order preserved",
			candidates: []string{"코스모스", "데미안"},
			titles:     []string{"데미안", "코스모스"},
			want:       []string{"코스모스", "데미안"},
		},
		{
			name:       "whitespace trimmed before matching",
			candidates: []string{"  데미안  "},
			titles:     []string{"데미안"},
			want:       []string{"데미안"},
		},
		{
			name:       "duplicates kept once",
			candidates: []string{"데미안", "데미안"},
			titles:     []string{"데미안"},
			want:       []string{"데미안"},
		},
		{
			name:       "superset of canonical title does not validate",
			candidates: []string{"데미안 완전판"},
			titles:     []string{"데미안"},
			want:       nil,
		},
		{
			name:       "nothing validates",
			candidates: []string{"투명인간", "해리포터"},
			titles:     []string{"데미안", "코스모스"},
			want:       nil,
		},
		{
			name:       "empty candidates",
			candidates: nil,
			titles:     []string{"데미안"},
			want:       nil,
		},
		{
			name:       "empty catalog",
			candidates: []string{"데미안"},
			titles:     nil,
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateCandidates(tt.candidates, tt.titles)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ValidateCandidates(%v, %v) = %v, want %v", tt.candidates, tt.titles, got, tt.want)
			}
		})
	}
}

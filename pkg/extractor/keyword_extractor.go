package extractor

import (
	"context"
	"encoding/json"
	"strings"

	"ai-bookrec-be/pkg/llm"
)

// systemPrompt instructs the model to return interest nouns as strict JSON.
const systemPrompt = `너는 사용자 입력으로부터 핵심 키워드를 추출하는 AI 비서야.
사용자의 감정, 관심사, 상황을 반영하는 명사(또는 고유명사)를 최대 5개까지 골라줘.
형용사나 동사, 문장 전체는 제거하고, 꼭 '명사'만 골라줘.

아래 형식으로만 응답해줘:
{"keywords": ["키워드1", "키워드2", "키워드3"]}

예시:
입력: "요즘 중학생 딸이 학교에서 왕따를 당해서 마음이 아파요."
출력: {"keywords": ["중학생", "딸", "학교", "왕따", "마음"]}

입력: "사회 문제에 관심 많은 고등학생인데 환경이나 인권 쪽 책이 좋아요"
출력: {"keywords": ["사회 문제", "고등학생", "환경", "인권", "책"]}

지금부터 사용자 입력을 줄게. 위 형식으로만 응답해줘.`

// KeywordExtractor pulls interest terms out of free text
type KeywordExtractor interface {
	Extract(ctx context.Context, userMessage string) []string
}

// LLMExtractor extracts keywords with a chat LLM. Any failure (transport,
// malformed output) degrades to an empty list so a turn never fails on
// extraction.
type LLMExtractor struct {
	provider llm.LLMProvider
}

var _ KeywordExtractor = &LLMExtractor{}

func NewLLMExtractor(provider llm.LLMProvider) *LLMExtractor {
	return &LLMExtractor{provider: provider}
}

func (e *LLMExtractor) Extract(ctx context.Context, userMessage string) []string {
	content, err := e.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userMessage},
	}, llm.WithTemperature(0.5))
	if err != nil {
		return nil
	}
	return parseKeywords(content)
}

type keywordEnvelope struct {
	Keywords []string `json:"keywords"`
}

// parseKeywords tolerates prose or fences around the JSON object
func parseKeywords(content string) []string {
	start := strings.IndexByte(content, '{')
	end := strings.LastIndexByte(content, '}')
	if start == -1 || end == -1 || end < start {
		return nil
	}

	var env keywordEnvelope
	if err := json.Unmarshal([]byte(content[start:end+1]), &env); err != nil {
		return nil
	}

	keywords := make([]string, 0, len(env.Keywords))
	for _, kw := range env.Keywords {
		if trimmed := strings.TrimSpace(kw); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}

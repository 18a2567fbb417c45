package service

import (
	"context"
	"fmt"

	"ai-bookrec-be/internal/repository/catalog"
	"ai-bookrec-be/internal/repository/memory"
	"ai-bookrec-be/pkg/embedding"
	"ai-bookrec-be/pkg/llm"
	"ai-bookrec-be/pkg/rag"
	"ai-bookrec-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Shared test doubles for the service layer.

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

type fakeExtractor struct {
	terms [][]string
	calls int
}

func (f *fakeExtractor) Extract(ctx context.Context, userMessage string) []string {
	var out []string
	if f.calls < len(f.terms) {
		out = f.terms[f.calls]
	}
	f.calls++
	return out
}

type fakeRetrieval struct {
	queryFn  func(req rag.QueryRequest) (string, error)
	requests []rag.QueryRequest
}

func (f *fakeRetrieval) Query(ctx context.Context, req rag.QueryRequest) (string, error) {
	f.requests = append(f.requests, req)
	return f.queryFn(req)
}

type fakePublisher struct {
	topics   []string
	payloads []message.Payload
	err      error
}

func (f *fakePublisher) Publish(topic string, messages ...*message.Message) error {
	if f.err != nil {
		return f.err
	}
	for _, msg := range messages {
		f.topics = append(f.topics, topic)
		f.payloads = append(f.payloads, msg.Payload)
	}
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	for _, m := range history {
		f.prompts = append(f.prompts, m.Content)
	}
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

// fakeEmbedder maps each input text to a fixed vector
type fakeEmbedder struct {
	vectors map[string][]float32
}

func (f *fakeEmbedder) Generate(text, taskType string) (*embedding.EmbeddingResponse, error) {
	vec, ok := f.vectors[text]
	if !ok {
		return nil, fmt.Errorf("no vector for %q", text)
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: vec},
	}, nil
}

func testCatalog() *catalog.Repository {
	return catalog.New([]*store.Book{
		{
			Title:     "어린왕자 이야기",
			Summary:   "관계와 길들임에 대한 고전",
			ClassName: "문학",
			Keywords: []store.BookKeyword{
				{Word: "우정", Weight: 3},
				{Word: "성장", Weight: 2},
			},
			ImageURL:  "http://img/1",
			BookURL:   "http://book/1",
			Embedding: []float32{1, 0},
		},
		{
			Title:     "데미안",
			Summary:   "자아를 찾아가는 성장 소설",
			ClassName: "문학",
			Keywords: []store.BookKeyword{
				{Word: "성장", Weight: 3},
				{Word: "자아", Weight: 2},
			},
			Embedding: []float32{0, 1},
		},
		{
			Title:     "코스모스",
			Summary:   "우주의 역사",
			ClassName: "과학",
			Keywords: []store.BookKeyword{
				{Word: "우주", Weight: 3},
			},
			Embedding: []float32{1, 1},
		},
		{
			Title:   "미움받을 용기",
			Summary: "아들러 심리학",
		},
	})
}

func registeredUser(userRepo *memory.UserRepository, name string) string {
	return userRepo.Register(name)
}

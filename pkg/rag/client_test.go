package rag

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestClientQuery(t *testing.T) {
	var got queryPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/query" {
			t.Errorf("path = %q, want /query", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "추천 결과"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	text, err := client.Query(context.Background(), QueryRequest{
		Query:        "우주 과학",
		SystemPrompt: "프롬프트",
		History:      []HistoryTurn{{Role: "user", Content: "안녕"}},
		Mode:         ModeFocused,
	})

	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if text != "추천 결과" {
		t.Errorf("response = %q, want %q", text, "추천 결과")
	}
	if got.Mode != "hybrid" {
		t.Errorf("mode = %q, want %q", got.Mode, "hybrid")
	}
	if got.SystemPrompt != "프롬프트" {
		t.Errorf("system_prompt = %q", got.SystemPrompt)
	}
	if len(got.History) != 1 || got.History[0].Content != "안녕" {
		t.Errorf("conversation_history = %v", got.History)
	}
}

func TestClientQueryBareTextBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("그냥 텍스트 응답"))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	text, err := client.Query(context.Background(), QueryRequest{Query: "q", Mode: ModeExploration})

	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if text != "그냥 텍스트 응답" {
		t.Errorf("response = %q", text)
	}
}

func TestClientQueryServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Query(context.Background(), QueryRequest{Query: "q", Mode: ModeExploration})

	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if errors.Is(err, ErrTimeout) {
		t.Error("server error must not be reported as a timeout")
	}
}

func TestClientQueryTimeoutRetriesOnce(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, 20*time.Millisecond)
	_, err := client.Query(context.Background(), QueryRequest{Query: "q", Mode: ModeFocused})

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("backend called %d times, want 2 (one retry)", n)
	}
}

func TestClientQueryRetrySucceeds(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			time.Sleep(200 * time.Millisecond)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "늦었지만 도착"})
	}))
	defer server.Close()

	client := NewClient(server.URL, 50*time.Millisecond)
	text, err := client.Query(context.Background(), QueryRequest{Query: "q", Mode: ModeFocused})

	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if text != "늦었지만 도착" {
		t.Errorf("response = %q", text)
	}
}

func TestClientQueryCancelledParentContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.Query(ctx, QueryRequest{Query: "q", Mode: ModeFocused})

	if err == nil {
		t.Fatal("expected error when parent context expires")
	}
	if errors.Is(err, ErrTimeout) {
		t.Error("an expired parent context must not trigger the retry path")
	}
}

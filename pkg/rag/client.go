package rag

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Mode selects the retrieval strategy on the backend.
type Mode string

const (
	// ModeExploration is the broad mode used while still interviewing
	ModeExploration Mode = "local"
	// ModeFocused is the precise mode used for the recommendation query
	ModeFocused Mode = "hybrid"
)

// ErrTimeout marks a retrieval call that exceeded its deadline. The engine
// turns this into a user-visible retry prompt instead of a hard failure.
var ErrTimeout = errors.New("retrieval backend timed out")

// HistoryTurn is one prior conversation turn forwarded to the backend
type HistoryTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// QueryRequest is a single retrieval/generation call
type QueryRequest struct {
	Query        string
	SystemPrompt string
	History      []HistoryTurn
	Mode         Mode
}

// RetrievalClient is the contract for the retrieval/generation backend
type RetrievalClient interface {
	Query(ctx context.Context, req QueryRequest) (string, error)
}

// Client calls a LightRAG-style HTTP server
type Client struct {
	BaseURL string
	Timeout time.Duration
	HTTP    *http.Client
}

var _ RetrievalClient = &Client{}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		BaseURL: baseURL,
		Timeout: timeout,
		HTTP:    &http.Client{},
	}
}

type queryPayload struct {
	Query        string        `json:"query"`
	Mode         string        `json:"mode"`
	SystemPrompt string        `json:"system_prompt,omitempty"`
	History      []HistoryTurn `json:"conversation_history,omitempty"`
}

type queryResponse struct {
	Response string `json:"response"`
}

// Query sends one retrieval request. A timed-out call is retried once; a
// second timeout surfaces as ErrTimeout.
func (c *Client) Query(ctx context.Context, req QueryRequest) (string, error) {
	text, err := c.doQuery(ctx, req)
	if err == nil {
		return text, nil
	}
	if !isTimeout(ctx, err) {
		return "", err
	}

	// One retry on timeout
	text, err = c.doQuery(ctx, req)
	if err == nil {
		return text, nil
	}
	if isTimeout(ctx, err) {
		return "", ErrTimeout
	}
	return "", err
}

func (c *Client) doQuery(ctx context.Context, req QueryRequest) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	payload := queryPayload{
		Query:        req.Query,
		Mode:         string(req.Mode),
		SystemPrompt: req.SystemPrompt,
		History:      req.History,
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal query: %w", err)
	}

	url := c.BaseURL + "/query"
	httpReq, err := http.NewRequestWithContext(callCtx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("rag request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("rag error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var queryResp queryResponse
	if err := json.Unmarshal(bodyBytes, &queryResp); err != nil {
		// Some deployments return bare text
		return string(bodyBytes), nil
	}

	return queryResp.Response, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		// Caller's own deadline counts as a timeout too, but there is no
		// point retrying if the parent context is already done.
		return ctx.Err() == nil
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ctx.Err() == nil
	}
	return false
}

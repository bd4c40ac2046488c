// Package llm wraps a DeepSeek/OpenAI-compatible chat-completions endpoint.
// Every call is independent and stateless; callers demand a JSON-object
// reply and decode the expected keys defensively.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"k8s.io/klog/v2"

	"github.com/goodman-rb/ai-content-studio/config"
)

// ErrGenerationFailed covers every transport, status and parse failure of a
// generation call. The underlying cause is wrapped and the workflow state
// stays unchanged.
var ErrGenerationFailed = errors.New("generation failed")

// Completer is the narrow surface the draft workflow depends on. out is
// filled from the JSON object the model returns.
type Completer interface {
	CompleteJSON(ctx context.Context, messages []ChatMessage, out interface{}) error
}

// Client is the HTTP chat-completions client.
type Client struct {
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
	Client    *http.Client
}

// NewClient builds a client from config. Calls time out after 60s; once a
// request is issued it runs to completion or to that timeout.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		BaseURL:   cfg.LLM.APIURL,
		APIKey:    cfg.LLM.APIKey,
		Model:     cfg.LLM.Model,
		MaxTokens: cfg.LLM.MaxTokens,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// CompleteJSON sends the message sequence, demands a JSON-object reply and
// unmarshals it into out.
func (c *Client) CompleteJSON(ctx context.Context, messages []ChatMessage, out interface{}) error {
	klog.V(6).Infof("completion request: model=%s messages=%d", c.Model, len(messages))

	resp, err := c.sendRequest(ctx, ChatRequest{
		Model:          c.Model,
		Messages:       messages,
		MaxTokens:      c.MaxTokens,
		Temperature:    0.7,
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if len(resp.Choices) == 0 {
		return fmt.Errorf("%w: no choices in response", ErrGenerationFailed)
	}

	content := resp.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("%w: reply is not valid JSON: %v", ErrGenerationFailed, err)
	}
	return nil
}

func (c *Client) sendRequest(ctx context.Context, reqBody ChatRequest) (*ChatResponse, error) {
	url := c.BaseURL + "/chat/completions"

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if chatResp.Error != nil {
		return nil, fmt.Errorf("API error: %s", chatResp.Error.Message)
	}

	return &chatResp, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

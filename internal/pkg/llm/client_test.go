package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goodman-rb/ai-content-studio/config"
)

func newTestClient(baseURL string) *Client {
	cfg := &config.Config{
		LLM: config.LLMConfig{
			APIURL:    baseURL,
			APIKey:    "test-key",
			Model:     "deepseek-chat",
			MaxTokens: 2000,
		},
	}
	c := NewClient(cfg)
	c.BaseURL = baseURL
	return c
}

func completionBody(content string) map[string]interface{} {
	return map[string]interface{}{
		"id":     "test-id",
		"object": "chat.completion",
		"model":  "deepseek-chat",
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}
}

func TestCompleteJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("expected /chat/completions, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected Authorization header %q", got)
		}

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
			t.Errorf("expected json_object response format, got %+v", req.ResponseFormat)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completionBody(`{"vk_post":"Пост для VK","tg_post":"Пост для TG","image_prompt":"салон"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	var out struct {
		VKPost      string `json:"vk_post"`
		TGPost      string `json:"tg_post"`
		ImagePrompt string `json:"image_prompt"`
	}
	err := client.CompleteJSON(context.Background(), []ChatMessage{
		{Role: "system", Content: "системный промпт"},
		{Role: "user", Content: "промпт"},
	}, &out)
	if err != nil {
		t.Fatalf("CompleteJSON error: %v", err)
	}
	if out.VKPost != "Пост для VK" || out.TGPost != "Пост для TG" {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestCompleteJSONInvalidReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completionBody("not json at all"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	var out map[string]interface{}
	err := client.CompleteJSON(context.Background(), []ChatMessage{{Role: "user", Content: "x"}}, &out)
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestCompleteJSONHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	var out map[string]interface{}
	err := client.CompleteJSON(context.Background(), []ChatMessage{{Role: "user", Content: "x"}}, &out)
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

func TestCompleteJSONAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "invalid api key", "type": "auth"},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	var out map[string]interface{}
	err := client.CompleteJSON(context.Background(), []ChatMessage{{Role: "user", Content: "x"}}, &out)
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
}

package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServerClient(t *testing.T, handler http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenAIClient(OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "test-model",
		Timeout: 5 * time.Second,
	})
}

func TestOpenAIComplete(t *testing.T) {
	client := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Temperature != 0.2 {
			t.Errorf("Temperature = %v, want 0.2", req.Temperature)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("messages = %#v", req.Messages)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "  Paris.  "}},
			},
		})
	})

	got, err := client.Complete(context.Background(), Request{
		System:      "You are a helpful assistant.",
		Prompt:      "What is the capital of France?",
		Temperature: 0.2,
		MaxTokens:   512,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "Paris." {
		t.Fatalf("Complete = %q, want trimmed %q", got, "Paris.")
	}
}

func TestOpenAICompleteAPIError(t *testing.T) {
	client := newTestServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"bad prompt","type":"invalid_request_error"}}`))
	})

	_, err := client.Complete(context.Background(), Request{Prompt: "q"})
	if !errors.Is(err, ErrCompletion) {
		t.Fatalf("err = %v, want ErrCompletion", err)
	}
}

func TestOpenAICompleteMissingKey(t *testing.T) {
	client := NewOpenAIClient(OpenAIConfig{Model: "m"})
	_, err := client.Complete(context.Background(), Request{Prompt: "q"})
	if !errors.Is(err, ErrCompletion) {
		t.Fatalf("err = %v, want ErrCompletion", err)
	}
}

func TestScriptedClient(t *testing.T) {
	c := NewScriptedClient(
		ScriptedReply{Text: "first"},
		ScriptedReply{Err: ErrCompletion},
	)

	got, err := c.Complete(context.Background(), Request{Prompt: "one"})
	if err != nil || got != "first" {
		t.Fatalf("first reply = %q, %v", got, err)
	}

	if _, err := c.Complete(context.Background(), Request{Prompt: "two"}); err == nil {
		t.Fatal("second reply should fail")
	}

	// Exhausted script fails too.
	if _, err := c.Complete(context.Background(), Request{Prompt: "three"}); err == nil {
		t.Fatal("exhausted script should fail")
	}

	if len(c.Requests) != 3 || c.Requests[1].Prompt != "two" {
		t.Fatalf("recorded requests = %#v", c.Requests)
	}
}

package llmclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientCreateChatCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Fatalf("unexpected Authorization header: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"c1","object":"chat.completion","created":1,"model":"deepseek/deepseek-chat","choices":[{"index":0,"message":{"role":"assistant","content":"hi"},"finish_reason":"stop"}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	reply, err := client.CreateChatCompletion(context.Background(), "secret", &ChatCompletionRequest{
		Model: "deepseek/deepseek-chat",
		Messages: []ChatMessage{
			{Role: "user", Content: "hello"},
		},
	})
	if err != nil {
		t.Fatalf("CreateChatCompletion failed: %v", err)
	}
	if reply != "hi" {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestClientCreateChatCompletionErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"invalid key","type":"auth_error"}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.CreateChatCompletion(context.Background(), "bad", &ChatCompletionRequest{
		Model:    "deepseek/deepseek-chat",
		Messages: []ChatMessage{{Role: "user", Content: "hello"}},
	})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestClientCreateChatCompletionEmbeddedError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"error":{"message":"rate limited","type":"rate_limit"}}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.CreateChatCompletion(context.Background(), "k", &ChatCompletionRequest{
		Model:    "deepseek/deepseek-chat",
		Messages: []ChatMessage{{Role: "user", Content: "hello"}},
	})
	if err == nil {
		t.Fatalf("expected error for embedded error payload")
	}
}

func TestClientCreateChatCompletionNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"c1","object":"chat.completion","choices":[]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.CreateChatCompletion(context.Background(), "k", &ChatCompletionRequest{
		Model:    "deepseek/deepseek-chat",
		Messages: []ChatMessage{{Role: "user", Content: "hello"}},
	})
	if err == nil {
		t.Fatalf("expected error for empty choices")
	}
}

func TestChatMessageMarshalPlain(t *testing.T) {
	data, err := json.Marshal(ChatMessage{Role: "user", Content: "hello"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"role":"user","content":"hello"}` {
		t.Fatalf("unexpected JSON: %s", data)
	}
}

func TestChatMessageMarshalVisionParts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Messages []struct {
				Role    string            `json:"role"`
				Content []json.RawMessage `json:"content"`
			} `json:"messages"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("request content is not a part list: %v", err)
		}
		if len(req.Messages) != 1 || len(req.Messages[0].Content) != 2 {
			t.Fatalf("unexpected request shape: %s", body)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"a cat"}}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	reply, err := client.CreateChatCompletion(context.Background(), "k", &ChatCompletionRequest{
		Model: "openai/gpt-4o-mini",
		Messages: []ChatMessage{{
			Role: "user",
			ContentParts: []ContentPart{
				TextPart("Describe this image in detail. If code, write it out."),
				ImagePart("data:image/png;base64,AAAA"),
			},
		}},
	})
	if err != nil {
		t.Fatalf("CreateChatCompletion failed: %v", err)
	}
	if reply != "a cat" {
		t.Fatalf("unexpected reply: %q", reply)
	}
}

func TestDecodeErrorResponse(t *testing.T) {
	data := []byte(`{"error":{"message":"bad","type":"invalid_request_error","code":"401"}}`)
	var resp ErrorResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != "401" {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
}

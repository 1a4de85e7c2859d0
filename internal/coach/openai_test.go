package coach

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAIAdapterReply(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "What result would prove it?"}},
			},
		})
	}))
	defer srv.Close()

	adapter := NewOpenAI("test-key", "gpt-4o-mini", srv.URL)
	reply, err := adapter.Reply(context.Background(), Request{
		Phase:       "refinement",
		Objective:   "Increase revenue by 20%",
		UserMessage: "is this good enough?",
		Strategy:    "direct_coaching",
	})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := reply.Text, "What result would prove it?"; got != want {
		t.Fatalf("reply = %q, want %q", got, want)
	}
	if got, want := gotAuth, "Bearer test-key"; got != want {
		t.Fatalf("authorization = %q, want %q", got, want)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" {
		t.Fatalf("expected system+user messages, got %#v", gotBody.Messages)
	}
	if !strings.Contains(gotBody.Messages[1].Content, "objective: Increase revenue by 20%") {
		t.Fatalf("prompt missing objective line: %q", gotBody.Messages[1].Content)
	}
}

func TestOpenAIAdapterAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "rate limited"},
		})
	}))
	defer srv.Close()

	adapter := NewOpenAI("test-key", "gpt-4o-mini", srv.URL)
	_, err := adapter.Reply(context.Background(), Request{Phase: "discovery"})
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("expected the API error message, got %v", err)
	}
}

func TestOpenAIAdapterRequiresKey(t *testing.T) {
	adapter := NewOpenAI("", "gpt-4o-mini", "")
	if _, err := adapter.Reply(context.Background(), Request{Phase: "discovery"}); err == nil {
		t.Fatal("missing key should fail before any request")
	}
}

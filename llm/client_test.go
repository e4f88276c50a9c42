package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func serveCompletion(t *testing.T, handler http.HandlerFunc) func() {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Setenv("AI_API_URL", srv.URL)
	return srv.Close
}

func TestCompleteReturnsFirstChoice(t *testing.T) {
	var gotReq CompletionRequest
	closeSrv := serveCompletion(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(CompletionResponse{
			Choices: []Choice{
				{Message: ChatMessage{Role: "assistant", Content: "  Track your spending weekly.  "}},
				{Message: ChatMessage{Role: "assistant", Content: "ignored"}},
			},
		})
	})
	defer closeSrv()

	got := Complete(context.Background(), "how do I save money?")
	if got != "Track your spending weekly." {
		t.Errorf("Complete = %q, want trimmed first choice", got)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "how do I save money?" {
		t.Errorf("request carried %v, want the single-message prompt", gotReq.Messages)
	}
}

func TestCompleteFallbackOnServerError(t *testing.T) {
	closeSrv := serveCompletion(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	defer closeSrv()

	if got := Complete(context.Background(), "hi"); got != FallbackUnreachable {
		t.Errorf("Complete = %q, want %q", got, FallbackUnreachable)
	}
}

func TestCompleteFallbackOnEmptyChoices(t *testing.T) {
	closeSrv := serveCompletion(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(CompletionResponse{})
	})
	defer closeSrv()

	if got := Complete(context.Background(), "hi"); got != FallbackInvalid {
		t.Errorf("Complete = %q, want %q", got, FallbackInvalid)
	}
}

func TestCompleteFallbackOnUnreachableEndpoint(t *testing.T) {
	t.Setenv("AI_API_URL", "http://127.0.0.1:1/never")

	if got := Complete(context.Background(), "hi"); got != FallbackUnreachable {
		t.Errorf("Complete = %q, want %q", got, FallbackUnreachable)
	}
}

func TestGenerateChatTitle(t *testing.T) {
	closeSrv := serveCompletion(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(CompletionResponse{
			Choices: []Choice{{Message: ChatMessage{Content: "Budget* Basics!"}}},
		})
	})
	defer closeSrv()

	title, err := GenerateChatTitle(context.Background(), "help me budget")
	if err != nil {
		t.Fatalf("GenerateChatTitle: %v", err)
	}
	if title != "Budget Basics" {
		t.Errorf("title = %q, want punctuation stripped", title)
	}
}

func TestGenerateChatTitleDefault(t *testing.T) {
	closeSrv := serveCompletion(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(CompletionResponse{})
	})
	defer closeSrv()

	title, err := GenerateChatTitle(context.Background(), "hello")
	if err != nil {
		t.Fatalf("GenerateChatTitle: %v", err)
	}
	if title != "New Chat" {
		t.Errorf("title = %q, want New Chat", title)
	}
}

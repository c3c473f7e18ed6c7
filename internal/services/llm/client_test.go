package llm_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"lingoclip/internal/services/llm"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *llm.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return llm.NewClient(llm.Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-model",
	}, llm.WithRetryBackoff(time.Millisecond, 5*time.Millisecond))
}

func TestCompleteJSONReturnsContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("missing auth header, got %q", got)
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"index\":3}"}}]}`))
	})

	content, err := client.CompleteJSON(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("CompleteJSON: %v", err)
	}
	if content != `{"index":3}` {
		t.Fatalf("unexpected content: %q", content)
	}
}

func TestCompleteJSONRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"ok\":true}"}}]}`))
	})

	if _, err := client.CompleteJSON(context.Background(), "system", "user"); err != nil {
		t.Fatalf("CompleteJSON after retries: %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestCompleteJSONDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	if _, err := client.CompleteJSON(context.Background(), "system", "user"); err == nil {
		t.Fatal("expected error for 401")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected 1 attempt, got %d", calls.Load())
	}
}

func TestDecodeJSONHandlesFences(t *testing.T) {
	cases := map[string]string{
		"plain":       `{"index": 2}`,
		"fenced":      "```json\n{\"index\": 2}\n```",
		"with prose":  "The best candidate is: {\"index\": 2} because it ends cleanly.",
		"bare fences": "```\n{\"index\": 2}\n```",
	}
	for name, payload := range cases {
		var parsed struct {
			Index int `json:"index"`
		}
		if err := llm.DecodeJSON(payload, &parsed); err != nil {
			t.Fatalf("%s: DecodeJSON: %v", name, err)
		}
		if parsed.Index != 2 {
			t.Fatalf("%s: index = %d, want 2", name, parsed.Index)
		}
	}
}

func TestDecodeJSONRejectsGarbage(t *testing.T) {
	var parsed struct{}
	if err := llm.DecodeJSON("definitely not json", &parsed); err == nil {
		t.Fatal("expected decode failure")
	}
	if err := llm.DecodeJSON("", &parsed); err == nil {
		t.Fatal("expected decode failure for empty payload")
	}
}

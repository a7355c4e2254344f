package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eduforge/lms-backend/internal/config"
	"github.com/eduforge/lms-backend/internal/pkg/apperr"
	"github.com/eduforge/lms-backend/internal/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(logger.NewNop(), config.OpenAI{
		APIKey:     "test-key",
		BaseURL:    srv.URL,
		ChatModel:  "test-chat",
		EmbedModel: "test-embed",
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c, srv
}

func TestCompleteParsesChoice(t *testing.T) {
	var gotAuth, gotPath string
	var gotReq chatRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"finish_reason": "stop", "message": map[string]any{"content": "hello back"}},
			},
		})
	})

	out, err := c.Complete(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "hello back" {
		t.Fatalf("completion = %q", out)
	}
	if gotAuth != "Bearer test-key" || gotPath != "/chat/completions" {
		t.Fatalf("request = %q %q", gotAuth, gotPath)
	}
	if gotReq.Model != "test-chat" || len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" {
		t.Fatalf("chat request = %+v", gotReq)
	}
}

func TestCompleteHTTPErrorIsGenerationError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := c.Complete(context.Background(), "hello")
	if err == nil {
		t.Fatalf("Complete returned nil error on HTTP 429")
	}
	if !apperr.IsGeneration(err) {
		t.Fatalf("err = %v, want GenerationError", err)
	}
}

func TestCompleteNoChoices(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	if _, err := c.Complete(context.Background(), "hello"); !apperr.IsGeneration(err) {
		t.Fatalf("err = %v, want GenerationError", err)
	}
}

func TestEmbedReordersByIndex(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"index": 1, "embedding": []float64{0.2}},
				{"index": 0, "embedding": []float64{0.1}},
			},
		})
	})

	vecs, err := c.Embed(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(vecs) != 2 || vecs[0][0] != 0.1 || vecs[1][0] != 0.2 {
		t.Fatalf("vecs = %v", vecs)
	}
}

func TestEmbedMissingVector(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"index": 0, "embedding": []float64{0.1}}},
		})
	})

	if _, err := c.Embed(context.Background(), []string{"a", "b"}); err == nil {
		t.Fatalf("Embed returned nil error with a missing vector")
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(logger.NewNop(), config.OpenAI{}); err == nil {
		t.Fatalf("NewClient accepted an empty API key")
	}
}

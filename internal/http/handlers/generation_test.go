package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eduforge/lms-backend/internal/config"
	"github.com/eduforge/lms-backend/internal/data/index"
	"github.com/eduforge/lms-backend/internal/generation"
	"github.com/eduforge/lms-backend/internal/pkg/logger"
)

type stubLLM struct{}

func (stubLLM) Complete(_ context.Context, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "You validate topics"):
		if strings.Contains(prompt, "qqqq") {
			return "Invalid prompt: not a study topic", nil
		}
		return "binary search trees", nil
	case strings.Contains(prompt, "practice questions with answers"):
		return "1. Q: what is a BST? A: an ordered binary tree.", nil
	}
	return "ok", nil
}

type stubEmbedder struct{}

func (stubEmbedder) EmbedText(_ context.Context, _ string) ([]float32, error) {
	return []float32{0.1}, nil
}

type stubIndex struct{}

func (stubIndex) ResolveDocumentIDs(_ context.Context, _ []string) ([]uuid.UUID, error) {
	return nil, nil
}

func (stubIndex) Search(_ context.Context, _ index.Query) ([]index.Hit, error) {
	return nil, nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	renderer, err := generation.NewPageRenderer(config.Render{})
	if err != nil {
		t.Fatalf("NewPageRenderer: %v", err)
	}
	engine, err := generation.NewEngine(logger.NewNop(), stubLLM{}, stubEmbedder{}, stubIndex{}, renderer, generation.Config{})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	h := NewGenerationHandler(logger.NewNop(), engine)

	router := gin.New()
	router.POST("/api/generate-practice", h.GeneratePractice)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGeneratePractice(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/api/generate-practice", `{"prompt":"binary search trees","difficulty":"easy"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var res generation.Result
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Status != generation.StatusComplete || res.Artifact == nil || res.Artifact.Text == "" {
		t.Fatalf("result = %+v", res)
	}
}

func TestGeneratePracticeInvalidTopic(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/api/generate-practice", `{"prompt":"qqqq"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var body struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Status != string(generation.StatusInvalid) || !strings.HasPrefix(body.Reason, "Invalid prompt") {
		t.Fatalf("body = %+v", body)
	}
}

func TestGeneratePracticeRejectsBadRequests(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{name: "malformed_json", body: `{"prompt":`},
		{name: "empty_prompt", body: `{"prompt":"  "}`},
		{name: "bad_difficulty", body: `{"prompt":"trees","difficulty":"brutal"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, router, "/api/generate-practice", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
			}
		})
	}
}

package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/eduforge/lms-backend/internal/config"
	"github.com/eduforge/lms-backend/internal/pkg/apperr"
	"github.com/eduforge/lms-backend/internal/pkg/logger"
)

// Client talks to an OpenAI-compatible API (OpenRouter in production).
// Completion and embedding calls are single request/response, no streaming.
// Transport failures are not retried here: completion errors must surface
// to the workflow caller, and retrieval already degrades on embedding errors.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Embed(ctx context.Context, inputs []string) ([][]float32, error)
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	chatModel  string
	embedModel string
	httpClient *http.Client
}

func NewClient(log *logger.Logger, cfg config.OpenAI) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 180
	}
	return &client{
		log:        log.With("service", "OpenAIClient"),
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		chatModel:  cfg.ChatModel,
		embedModel: cfg.EmbedModel,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}, nil
}

type httpError struct {
	StatusCode int
	Body       string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

func (c *client) do(ctx context.Context, path string, body any, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &httpError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if out == nil {
		return nil
	}
	if uErr := json.Unmarshal(raw, out); uErr != nil {
		return fmt.Errorf("openai decode error: %w; raw=%s", uErr, string(raw))
	}
	return nil
}

// ---- Chat completions ----

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		FinishReason string `json:"finish_reason"`
		Message      struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *client) Complete(ctx context.Context, prompt string) (string, error) {
	req := chatRequest{
		Model:    c.chatModel,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}
	var resp chatResponse
	if err := c.do(ctx, "/chat/completions", req, &resp); err != nil {
		return "", apperr.Generation("complete", err)
	}
	if resp.Error != nil && resp.Error.Message != "" {
		return "", apperr.Generation("complete", fmt.Errorf("%s", resp.Error.Message))
	}
	if len(resp.Choices) == 0 {
		return "", apperr.Generation("complete", fmt.Errorf("no choices in response"))
	}
	choice := resp.Choices[0]
	c.log.Debug("completion finished", "finish_reason", choice.FinishReason)
	return choice.Message.Content, nil
}

// ---- Embeddings ----

type embeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingsResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
}

func (c *client) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	if len(inputs) == 0 {
		return [][]float32{}, nil
	}
	req := embeddingsRequest{
		Model: c.embedModel,
		Input: inputs,
	}
	var resp embeddingsResponse
	if err := c.do(ctx, "/embeddings", req, &resp); err != nil {
		return nil, err
	}
	out := make([][]float32, len(inputs))
	for _, d := range resp.Data {
		vec := make([]float32, len(d.Embedding))
		for i, f := range d.Embedding {
			vec[i] = float32(f)
		}
		if d.Index >= 0 && d.Index < len(out) {
			out[d.Index] = vec
		}
	}
	for i := range out {
		if out[i] == nil {
			return nil, fmt.Errorf("missing embedding for index %d", i)
		}
	}
	return out, nil
}

func (c *client) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vecs, err := c.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

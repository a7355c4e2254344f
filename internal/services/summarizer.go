package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/eduforge/lms-backend/internal/data/index"
	"github.com/eduforge/lms-backend/internal/pkg/apperr"
	"github.com/eduforge/lms-backend/internal/pkg/logger"
)

// completer is the slice of the generation client the summarizer needs.
type completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type SummarizerService interface {
	SummarizeLecture(ctx context.Context, lectureURL string) (string, error)
}

type summarizerService struct {
	log  *logger.Logger
	llm  completer
	docs index.Index
}

func NewSummarizerService(log *logger.Logger, llm completer, docs index.Index) SummarizerService {
	return &summarizerService{
		log:  log.With("service", "SummarizerService"),
		llm:  llm,
		docs: docs,
	}
}

// SummarizeLecture pulls every chunk of one indexed lecture and asks the
// generation service for a summary. The zero query embedding makes the
// filtered search return chunks regardless of similarity.
func (s *summarizerService) SummarizeLecture(ctx context.Context, lectureURL string) (string, error) {
	lectureURL = strings.TrimSpace(lectureURL)
	if lectureURL == "" {
		return "", fmt.Errorf("%w: empty lecture url", apperr.ErrInvalidArgument)
	}

	ids, err := s.docs.ResolveDocumentIDs(ctx, []string{lectureURL})
	if err != nil {
		return "", fmt.Errorf("resolve lecture: %w", err)
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("%w: lecture not indexed", apperr.ErrNotFound)
	}

	hits, err := s.docs.Search(ctx, index.Query{
		Embedding:   make([]float32, index.EmbeddingDim),
		Limit:       100,
		DocumentIDs: ids,
	})
	if err != nil {
		return "", fmt.Errorf("load lecture chunks: %w", err)
	}
	if len(hits) == 0 {
		return "", fmt.Errorf("%w: lecture has no content", apperr.ErrNotFound)
	}

	parts := make([]string, 0, len(hits))
	for _, h := range hits {
		if t := strings.TrimSpace(h.Content); t != "" {
			parts = append(parts, t)
		}
	}
	content := strings.Join(parts, "\n")
	if content == "" {
		return "", fmt.Errorf("%w: lecture content is empty", apperr.ErrNotFound)
	}

	summary, err := s.llm.Complete(ctx, summarizePrompt(content))
	if err != nil {
		return "", err
	}
	return summary, nil
}

func summarizePrompt(content string) string {
	return fmt.Sprintf(`You summarize lecture materials for students.

Summarize the following lecture content into a short overview paragraph followed by 3-6 key points, one per line.

=== Lecture ===
%s
=== End Lecture ===

Respond ONLY with the summary.`, content)
}

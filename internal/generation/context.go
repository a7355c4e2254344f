package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/eduforge/lms-backend/internal/data/index"
)

// Sentinel context strings. Downstream prompt templates always receive a
// string; retrieval problems degrade to these instead of aborting the
// workflow.
const (
	contextNoDocuments = "No documents found for provided URLs."
	contextNoRelevant  = "No relevant documents found."
	contextFetchFailed = "Failed to retrieve context."
)

// retrieveContext grounds the generation stage: embed the query, run a
// hybrid search (filtered to the caller's documents when URLs were
// supplied), fall back to vector-only ranking on zero rows, and
// concatenate the surviving chunks in relevance order.
func (e *Engine) retrieveContext(ctx context.Context, st *State) string {
	query := strings.TrimSpace(st.OptimizedQuery)
	if query == "" {
		query = st.InputContent
	}

	emb, err := e.embed.EmbedText(ctx, query)
	if err != nil {
		e.log.Warn("query embedding failed", "error", err)
		return contextFetchFailed
	}

	tsq := index.BuildOrQuery(query)
	base := index.Query{
		Text:      tsq,
		Embedding: emb,
		Limit:     e.cfg.RetrievalLimit,
	}

	if len(st.URLs) > 0 {
		ids, err := e.docs.ResolveDocumentIDs(ctx, st.URLs)
		if err != nil {
			e.log.Warn("document id resolution failed", "error", err)
			return contextFetchFailed
		}
		if len(ids) == 0 {
			return contextNoDocuments
		}
		base.DocumentIDs = ids
	}

	hits, err := e.docs.Search(ctx, base)
	if err != nil {
		e.log.Warn("hybrid search failed", "error", err)
		return contextFetchFailed
	}
	if len(hits) == 0 && base.Text != "" {
		// Lexical constraint may have filtered everything out.
		vectorOnly := base
		vectorOnly.Text = ""
		hits, err = e.docs.Search(ctx, vectorOnly)
		if err != nil {
			e.log.Warn("vector-only fallback failed", "error", err)
			return contextFetchFailed
		}
	}
	if len(hits) == 0 {
		return contextNoRelevant
	}

	parts := make([]string, 0, len(hits))
	for _, h := range hits {
		parts = append(parts, fmt.Sprintf("Document Chunk (Similarity: %.2f): %s", h.Similarity, h.Content))
	}
	return strings.Join(parts, "\n")
}

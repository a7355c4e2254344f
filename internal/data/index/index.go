package index

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eduforge/lms-backend/internal/pkg/logger"
)

// Hit is one retrieved chunk, ordered by descending relevance.
// TextRank is only set on hybrid (lexical+vector) searches.
type Hit struct {
	ID         uuid.UUID
	Content    string
	Similarity float64
	TextRank   *float64
}

// Query describes one search call. A non-empty Text selects hybrid
// ranking; Text is a tsquery expression (see BuildOrQuery). An empty
// Text means pure vector ranking. A non-empty DocumentIDs restricts
// candidates to those documents.
type Query struct {
	Text        string
	Embedding   []float32
	Limit       int
	Offset      int
	DocumentIDs []uuid.UUID
}

// Index is the document-index collaborator consumed by the retrieval
// adapter. Implementations must return hits in descending relevance order.
type Index interface {
	ResolveDocumentIDs(ctx context.Context, urls []string) ([]uuid.UUID, error)
	Search(ctx context.Context, q Query) ([]Hit, error)
}

type postgresIndex struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresIndex(db *gorm.DB, log *logger.Logger) Index {
	return &postgresIndex{
		db:  db,
		log: log.With("service", "PostgresIndex"),
	}
}

func (ix *postgresIndex) ResolveDocumentIDs(ctx context.Context, urls []string) ([]uuid.UUID, error) {
	if len(urls) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	err := ix.db.WithContext(ctx).
		Model(&Document{}).
		Where("source_url IN ?", urls).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("resolve document ids: %w", err)
	}
	return ids, nil
}

func (ix *postgresIndex) Search(ctx context.Context, q Query) ([]Hit, error) {
	if len(q.Embedding) == 0 {
		return nil, fmt.Errorf("search requires a query embedding")
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}

	vec := vectorLiteral(q.Embedding)
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`SELECT document_chunk.id, document_chunk.content,`)
	sb.WriteString(` 1 - (document_chunk.embedding <=> ?::vector) AS similarity`)
	args = append(args, vec)

	hybrid := strings.TrimSpace(q.Text) != ""
	if hybrid {
		sb.WriteString(`, ts_rank(to_tsvector('english', document_chunk.content), to_tsquery('english', ?)) AS text_rank`)
		args = append(args, q.Text)
	}
	sb.WriteString(` FROM document_chunk WHERE 1=1`)
	if len(q.DocumentIDs) > 0 {
		sb.WriteString(` AND document_chunk.document_id IN ?`)
		args = append(args, q.DocumentIDs)
	}
	if hybrid {
		sb.WriteString(` AND to_tsvector('english', document_chunk.content) @@ to_tsquery('english', ?)`)
		args = append(args, q.Text)
		sb.WriteString(` ORDER BY (ts_rank(to_tsvector('english', document_chunk.content), to_tsquery('english', ?)) + (1 - (document_chunk.embedding <=> ?::vector))) DESC`)
		args = append(args, q.Text, vec)
	} else {
		sb.WriteString(` ORDER BY document_chunk.embedding <=> ?::vector ASC`)
		args = append(args, vec)
	}
	sb.WriteString(fmt.Sprintf(` LIMIT %d OFFSET %d`, limit, q.Offset))

	type row struct {
		ID         uuid.UUID `gorm:"column:id"`
		Content    string    `gorm:"column:content"`
		Similarity float64   `gorm:"column:similarity"`
		TextRank   *float64  `gorm:"column:text_rank"`
	}
	var rows []row
	if err := ix.db.WithContext(ctx).Raw(sb.String(), args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("chunk search: %w", err)
	}

	hits := make([]Hit, 0, len(rows))
	for _, r := range rows {
		if r.ID == uuid.Nil {
			continue
		}
		hits = append(hits, Hit{
			ID:         r.ID,
			Content:    r.Content,
			Similarity: r.Similarity,
			TextRank:   r.TextRank,
		})
	}
	return hits, nil
}

func vectorLiteral(vec []float32) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, f := range vec {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	sb.WriteByte(']')
	return sb.String()
}

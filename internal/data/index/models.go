package index

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EmbeddingDim is the pgvector dimension; it must match the embedding
// model the ingestion side used.
const EmbeddingDim = 768

// Document is one ingested course material (lecture, slide deck, ...).
// Ingestion itself happens outside this service; the generation engine
// only reads these rows.
type Document struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string         `gorm:"type:text" json:"title"`
	SourceURL string         `gorm:"column:source_url;type:text;index" json:"source_url"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
}

func (Document) TableName() string { return "document" }

// DocumentChunk is one embedded slice of a document. The embedding column
// is a pgvector value; its dimension must match the embedding model.
type DocumentChunk struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentID uuid.UUID `gorm:"type:uuid;index" json:"document_id"`
	Seq        int       `json:"seq"`
	Content    string    `gorm:"type:text" json:"content"`
	Embedding  string    `gorm:"type:vector(768)" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

func (DocumentChunk) TableName() string { return "document_chunk" }

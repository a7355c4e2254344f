package generation

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// BlockType tags one segment of a linear artifact.
type BlockType string

const (
	BlockMarkdown BlockType = "markdown"
	BlockCode     BlockType = "code"
)

type Block struct {
	Type BlockType
	Text string
}

const (
	codeFenceOpen = "```python"
	codeFence     = "```"
)

// SegmentBlocks splits artifact text into an ordered markdown/code block
// sequence. A "```python" line opens a code region, a bare "```" line
// while inside one closes it; end of input flushes whichever mode is
// still active.
func SegmentBlocks(text string) []Block {
	var (
		blocks []Block
		buffer []string
		isCode bool
	)
	flush := func(t BlockType) {
		if len(buffer) == 0 {
			return
		}
		blocks = append(blocks, Block{Type: t, Text: strings.Join(buffer, "\n")})
		buffer = buffer[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, codeFenceOpen):
			flush(BlockMarkdown)
			isCode = true
		case strings.HasPrefix(trimmed, codeFence) && isCode:
			flush(BlockCode)
			isCode = false
		default:
			buffer = append(buffer, line)
		}
	}
	if isCode {
		flush(BlockCode)
	} else {
		flush(BlockMarkdown)
	}
	return blocks
}

// FlattenBlocks is the inverse of SegmentBlocks: code blocks are
// re-wrapped in fences so that segmenting the result reproduces the same
// block sequence.
func FlattenBlocks(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b.Type == BlockCode {
			parts = append(parts, codeFenceOpen+"\n"+b.Text+"\n"+codeFence)
		} else {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// Notebook is an nbformat v4 document.
type Notebook struct {
	Cells         []NotebookCell `json:"cells"`
	Metadata      map[string]any `json:"metadata"`
	NBFormat      int            `json:"nbformat"`
	NBFormatMinor int            `json:"nbformat_minor"`
}

type NotebookCell struct {
	CellType       string          `json:"cell_type"`
	ID             string          `json:"id"`
	Metadata       map[string]any  `json:"metadata"`
	ExecutionCount json.RawMessage `json:"execution_count,omitempty"`
	Outputs        json.RawMessage `json:"outputs,omitempty"`
	Source         []string        `json:"source"`
}

// BuildNotebook encodes blocks as an nbformat v4 notebook. Code cells
// carry the null execution_count and empty outputs the format requires.
func BuildNotebook(blocks []Block) *Notebook {
	cells := make([]NotebookCell, 0, len(blocks))
	for _, b := range blocks {
		cell := NotebookCell{
			ID:       uuid.NewString()[:8],
			Metadata: map[string]any{},
			Source:   splitSource(b.Text),
		}
		if b.Type == BlockCode {
			cell.CellType = "code"
			cell.ExecutionCount = json.RawMessage("null")
			cell.Outputs = json.RawMessage("[]")
		} else {
			cell.CellType = "markdown"
		}
		cells = append(cells, cell)
	}
	return &Notebook{
		Cells:         cells,
		Metadata:      map[string]any{},
		NBFormat:      4,
		NBFormatMinor: 5,
	}
}

// Blocks recovers the block sequence from notebook cells, for flattening
// a prior notebook artifact back into linear text.
func (n *Notebook) Blocks() []Block {
	blocks := make([]Block, 0, len(n.Cells))
	for _, c := range n.Cells {
		t := BlockMarkdown
		if c.CellType == "code" {
			t = BlockCode
		}
		blocks = append(blocks, Block{Type: t, Text: strings.Join(c.Source, "")})
	}
	return blocks
}

// splitSource renders text as nbformat source lines: every line keeps its
// trailing newline except the last.
func splitSource(text string) []string {
	if text == "" {
		return []string{}
	}
	lines := strings.Split(text, "\n")
	out := make([]string, len(lines))
	for i, l := range lines {
		if i < len(lines)-1 {
			out[i] = l + "\n"
		} else {
			out[i] = l
		}
	}
	return out
}

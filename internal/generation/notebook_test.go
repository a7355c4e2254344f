package generation

import "testing"

func TestSegmentBlocksSingleFence(t *testing.T) {
	text := "intro\n```python\nx=1\n```\noutro"
	blocks := SegmentBlocks(text)
	want := []Block{
		{Type: BlockMarkdown, Text: "intro"},
		{Type: BlockCode, Text: "x=1"},
		{Type: BlockMarkdown, Text: "outro"},
	}
	if len(blocks) != len(want) {
		t.Fatalf("got %d blocks, want %d: %+v", len(blocks), len(want), blocks)
	}
	for i := range want {
		if blocks[i] != want[i] {
			t.Fatalf("block %d = %+v, want %+v", i, blocks[i], want[i])
		}
	}
}

func TestSegmentBlocksRoundTrip(t *testing.T) {
	text := "intro\n```python\nx=1\n```\noutro"
	blocks := SegmentBlocks(text)
	again := SegmentBlocks(FlattenBlocks(blocks))
	if len(again) != len(blocks) {
		t.Fatalf("round trip changed block count: %d -> %d", len(blocks), len(again))
	}
	for i := range blocks {
		if again[i] != blocks[i] {
			t.Fatalf("round trip block %d = %+v, want %+v", i, again[i], blocks[i])
		}
	}
}

func TestSegmentBlocksUnterminatedCode(t *testing.T) {
	blocks := SegmentBlocks("desc\n```python\nwhile True:\n    pass")
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2: %+v", len(blocks), blocks)
	}
	if blocks[1].Type != BlockCode || blocks[1].Text != "while True:\n    pass" {
		t.Fatalf("trailing code block = %+v", blocks[1])
	}
}

func TestSegmentBlocksCodeOnly(t *testing.T) {
	blocks := SegmentBlocks("```python\nimport os\n```")
	if len(blocks) != 1 || blocks[0].Type != BlockCode || blocks[0].Text != "import os" {
		t.Fatalf("blocks = %+v", blocks)
	}
}

func TestBuildNotebookShape(t *testing.T) {
	nb := BuildNotebook([]Block{
		{Type: BlockMarkdown, Text: "a\nb"},
		{Type: BlockCode, Text: "x=1"},
	})
	if nb.NBFormat != 4 {
		t.Fatalf("nbformat = %d, want 4", nb.NBFormat)
	}
	if len(nb.Cells) != 2 {
		t.Fatalf("got %d cells, want 2", len(nb.Cells))
	}
	md := nb.Cells[0]
	if md.CellType != "markdown" {
		t.Fatalf("cell 0 type = %q", md.CellType)
	}
	if len(md.Source) != 2 || md.Source[0] != "a\n" || md.Source[1] != "b" {
		t.Fatalf("markdown source = %#v", md.Source)
	}
	code := nb.Cells[1]
	if code.CellType != "code" {
		t.Fatalf("cell 1 type = %q", code.CellType)
	}
	if string(code.ExecutionCount) != "null" || string(code.Outputs) != "[]" {
		t.Fatalf("code cell fields = %s / %s", code.ExecutionCount, code.Outputs)
	}
}

func TestNotebookBlocksInvertsBuild(t *testing.T) {
	blocks := []Block{
		{Type: BlockMarkdown, Text: "intro"},
		{Type: BlockCode, Text: "x=1\ny=2"},
	}
	got := BuildNotebook(blocks).Blocks()
	if len(got) != len(blocks) {
		t.Fatalf("got %d blocks, want %d", len(got), len(blocks))
	}
	for i := range blocks {
		if got[i] != blocks[i] {
			t.Fatalf("block %d = %+v, want %+v", i, got[i], blocks[i])
		}
	}
}

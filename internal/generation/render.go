package generation

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/color"
	"os"
	"regexp"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/eduforge/lms-backend/internal/config"
)

// Style selects the face a run is drawn and measured with.
type Style int

const (
	StyleRegular Style = iota
	StyleBold
)

// PageLayout is the fixed page geometry, in points at 72 DPI.
type PageLayout struct {
	Width      float64
	Height     float64
	Margin     float64
	LineHeight float64
	FontSize   float64
}

// LetterLayout matches US Letter with the margins the production
// documents have always used.
func LetterLayout() PageLayout {
	return PageLayout{
		Width:      612,
		Height:     792,
		Margin:     50,
		LineHeight: 14,
		FontSize:   11,
	}
}

// MeasureFunc returns the advance width of text in a given style.
// Injected so layout is testable without real font faces.
type MeasureFunc func(text string, style Style) float64

type placedWord struct {
	Text  string
	X, Y  float64
	Style Style
}

type layoutPage struct {
	Words []placedWord
}

type styledRun struct {
	Text  string
	Style Style
}

var boldRunRe = regexp.MustCompile(`(\*\*\*.*?\*\*\*)`)

// splitEmphasisRuns splits a line on ***...*** delimiters into
// alternating plain and bold runs.
func splitEmphasisRuns(line string) []styledRun {
	segments := splitKeepingMatches(line)
	runs := make([]styledRun, 0, len(segments))
	for _, seg := range segments {
		if strings.HasPrefix(seg, "***") && strings.HasSuffix(seg, "***") && len(seg) >= 6 {
			runs = append(runs, styledRun{Text: seg[3 : len(seg)-3], Style: StyleBold})
		} else if seg != "" {
			runs = append(runs, styledRun{Text: seg, Style: StyleRegular})
		}
	}
	return runs
}

func splitKeepingMatches(line string) []string {
	var out []string
	last := 0
	for _, loc := range boldRunRe.FindAllStringIndex(line, -1) {
		if loc[0] > last {
			out = append(out, line[last:loc[0]])
		}
		out = append(out, line[loc[0]:loc[1]])
		last = loc[1]
	}
	if last < len(line) {
		out = append(out, line[last:])
	}
	return out
}

// layoutText places words left-to-right, wrapping at the right margin and
// paginating at the bottom margin. A word wider than the printable width
// is still placed and simply forces the wrap around it; words are never
// dropped.
func layoutText(text string, pl PageLayout, measure MeasureFunc) []layoutPage {
	pages := []layoutPage{{}}
	cur := &pages[0]

	y := pl.Margin + pl.LineHeight
	newPage := func() {
		pages = append(pages, layoutPage{})
		cur = &pages[len(pages)-1]
		y = pl.Margin + pl.LineHeight
	}
	advanceLine := func() {
		y += pl.LineHeight
		if y > pl.Height-pl.Margin {
			newPage()
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			advanceLine()
			continue
		}
		x := pl.Margin
		for _, run := range splitEmphasisRuns(line) {
			for _, word := range strings.Split(run.Text, " ") {
				if word == "" {
					continue
				}
				w := measure(word+" ", run.Style)
				if x+w > pl.Width-pl.Margin && x > pl.Margin {
					advanceLine()
					x = pl.Margin
				}
				cur.Words = append(cur.Words, placedWord{Text: word, X: x, Y: y, Style: run.Style})
				x += w
			}
		}
		advanceLine()
	}

	// Drop a trailing empty page produced by a final line advance.
	if len(pages) > 1 && len(pages[len(pages)-1].Words) == 0 {
		pages = pages[:len(pages)-1]
	}
	return pages
}

// RenderedDocument is the transport encoding of a paginated artifact:
// one base64 PNG per page.
type RenderedDocument struct {
	Format    string   `json:"format"`
	PageCount int      `json:"page_count"`
	Pages     []string `json:"pages"`
}

// PageRenderer rasterizes laid-out text. Font faces come from the
// configured TTF files; without them it falls back to the built-in
// bitmap face, which keeps dev environments working.
type PageRenderer struct {
	layout  PageLayout
	regular font.Face
	bold    font.Face
}

func NewPageRenderer(cfg config.Render) (*PageRenderer, error) {
	pl := LetterLayout()
	regular, err := loadFace(cfg.FontRegular, pl.FontSize)
	if err != nil {
		return nil, fmt.Errorf("regular font: %w", err)
	}
	bold, err := loadFace(cfg.FontBold, pl.FontSize)
	if err != nil {
		return nil, fmt.Errorf("bold font: %w", err)
	}
	return &PageRenderer{layout: pl, regular: regular, bold: bold}, nil
}

func loadFace(path string, size float64) (font.Face, error) {
	if strings.TrimSpace(path) == "" {
		return basicfont.Face7x13, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font file: %w", err)
	}
	parsed, err := truetype.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse TTF: %w", err)
	}
	return truetype.NewFace(parsed, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}

func (r *PageRenderer) face(s Style) font.Face {
	if s == StyleBold {
		return r.bold
	}
	return r.regular
}

// Render lays out and rasterizes text into a paginated document.
func (r *PageRenderer) Render(text string) (*RenderedDocument, error) {
	mc := gg.NewContext(1, 1)
	measure := func(s string, style Style) float64 {
		mc.SetFontFace(r.face(style))
		w, _ := mc.MeasureString(s)
		return w
	}

	pages := layoutText(text, r.layout, measure)
	doc := &RenderedDocument{
		Format:    "png-pages",
		PageCount: len(pages),
		Pages:     make([]string, 0, len(pages)),
	}
	for _, page := range pages {
		dc := gg.NewContext(int(r.layout.Width), int(r.layout.Height))
		dc.SetColor(color.White)
		dc.Clear()
		dc.SetColor(color.Black)
		for _, w := range page.Words {
			dc.SetFontFace(r.face(w.Style))
			dc.DrawString(w.Text, w.X, w.Y)
		}
		var buf bytes.Buffer
		if err := dc.EncodePNG(&buf); err != nil {
			return nil, fmt.Errorf("encode page: %w", err)
		}
		doc.Pages = append(doc.Pages, base64.StdEncoding.EncodeToString(buf.Bytes()))
	}
	return doc, nil
}

package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/docrank/internal/document"
	"github.com/dgallion1/docrank/internal/textproc"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser extracts per-page text and formatted spans from PDF files.
type PDFParser struct{}

func (p *PDFParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "docrank-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	doc := &document.Document{Name: filename}

	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A page that fails extraction becomes an empty page rather
			// than failing the whole document.
			text = ""
		}

		doc.Pages = append(doc.Pages, document.Page{
			Number: i,
			Text:   text,
			Spans:  pageSpans(page),
		})
		doc.Tables = append(doc.Tables, textproc.DetectLayoutTables(text, i)...)
	}

	return doc, nil
}

// pageSpans groups the page's positioned text fragments into spans. A new
// span starts whenever the baseline, font, or font size changes.
func pageSpans(page pdflib.Page) []document.Span {
	content := page.Content()
	if len(content.Text) == 0 {
		return nil
	}

	var spans []document.Span
	var buf strings.Builder
	cur := content.Text[0]
	x0, y0 := cur.X, cur.Y
	x1 := cur.X + cur.W

	flush := func(t pdflib.Text) {
		text := strings.TrimSpace(buf.String())
		if text != "" {
			spans = append(spans, document.Span{
				Text:     text,
				FontSize: t.FontSize,
				Bold:     isBoldFont(t.Font),
				Italic:   isItalicFont(t.Font),
				BBox:     []float64{x0, y0, x1, y0 + t.FontSize},
			})
		}
		buf.Reset()
	}

	for _, t := range content.Text {
		if t.Y != cur.Y || t.Font != cur.Font || t.FontSize != cur.FontSize {
			flush(cur)
			cur = t
			x0, y0 = t.X, t.Y
			x1 = t.X + t.W
		}
		buf.WriteString(t.S)
		if end := t.X + t.W; end > x1 {
			x1 = end
		}
	}
	flush(cur)

	return spans
}

func isBoldFont(font string) bool {
	return strings.Contains(font, "Bold") || strings.Contains(font, "Black") || strings.Contains(font, "Heavy")
}

func isItalicFont(font string) bool {
	return strings.Contains(font, "Italic") || strings.Contains(font, "Oblique")
}

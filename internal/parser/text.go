package parser

import (
	"io"
	"strings"

	"github.com/dgallion1/docrank/internal/document"
	"github.com/dgallion1/docrank/internal/textproc"
)

// TextParser handles plain text files. Form feeds separate pages; within a
// page, each paragraph becomes one span.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := &document.Document{Name: filename}

	pageNum := 0
	for _, pageText := range strings.Split(string(src), "\f") {
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		pageNum++

		var b pageBuilder
		for _, para := range splitParagraphs(pageText) {
			b.addBody(para)
		}
		page := b.page(pageNum)
		// Keep the source text so line layout survives for table detection.
		page.Text = strings.TrimSpace(pageText)
		doc.Pages = append(doc.Pages, page)
		doc.Tables = append(doc.Tables, textproc.DetectLayoutTables(pageText, pageNum)...)
	}

	return doc, nil
}

func splitParagraphs(text string) []string {
	var paras []string
	var current strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paras = append(paras, current.String())
				current.Reset()
			}
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		paras = append(paras, current.String())
	}
	return paras
}

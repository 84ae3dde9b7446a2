package parser

import (
	"strings"

	"github.com/dgallion1/docrank/internal/document"
)

// pageBuilder accumulates spans for formats that carry no physical pages.
// The page text is the span texts joined with blank lines, so heading text
// always appears verbatim in the page text.
type pageBuilder struct {
	spans []document.Span
	text  strings.Builder
}

func (b *pageBuilder) addHeading(text string, level int) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	size, bold := headingFont(level)
	b.add(document.Span{Text: text, FontSize: size, Bold: bold})
}

func (b *pageBuilder) addBody(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	b.add(document.Span{Text: text, FontSize: fontBody})
}

func (b *pageBuilder) add(span document.Span) {
	b.spans = append(b.spans, span)
	if b.text.Len() > 0 {
		b.text.WriteString("\n\n")
	}
	b.text.WriteString(span.Text)
}

func (b *pageBuilder) page(number int) document.Page {
	return document.Page{
		Number: number,
		Text:   b.text.String(),
		Spans:  b.spans,
	}
}

func (b *pageBuilder) empty() bool {
	return len(b.spans) == 0
}

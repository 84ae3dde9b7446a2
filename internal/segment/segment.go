// Package segment turns parsed page/span data into a flat list of titled,
// bounded content sections. Headings are detected from span formatting and
// surface patterns; sections span from one heading to the next.
package segment

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/docrank/internal/document"
)

// Config bounds the stored content previews.
type Config struct {
	MaxSectionLength int // Preview length for heading-bounded sections
	MaxPagePreview   int // Preview length for page-fallback sections
}

// DefaultConfig returns the standard preview bounds.
func DefaultConfig() Config {
	return Config{
		MaxSectionLength: 1000,
		MaxPagePreview:   500,
	}
}

const (
	minHeadingLength = 5  // Headings must be longer than this
	maxHeadingWords  = 8  // Short lines are often headings
	bodyFontSize     = 12 // Font sizes above this suggest a heading
)

// DetectHeadings scans every span of every page and returns the spans that
// qualify as headings, in page/span order.
func DetectHeadings(doc *document.Document) []document.Heading {
	var headings []document.Heading
	for _, page := range doc.Pages {
		for _, span := range page.Spans {
			text := strings.TrimSpace(span.Text)
			if len(text) <= minHeadingLength {
				continue
			}
			isHeading := span.Bold ||
				span.FontSize > bodyFontSize ||
				matchesHeadingPattern(text) ||
				len(strings.Fields(text)) <= maxHeadingWords
			if !isHeading {
				continue
			}
			headings = append(headings, document.Heading{
				Text:     text,
				Page:     page.Number,
				Level:    headingLevel(span),
				FontSize: span.FontSize,
				Bold:     span.Bold,
				BBox:     span.BBox,
			})
		}
	}
	return headings
}

// headingLevel assigns a hierarchy level from font size and boldness.
func headingLevel(span document.Span) int {
	switch {
	case span.FontSize > 16 || (span.Bold && span.FontSize > 14):
		return 1
	case span.FontSize > 13 || span.Bold:
		return 2
	default:
		return 3
	}
}

// Sections segments a document into titled sections. A document with no
// detected headings degrades to one section per non-empty page; a document
// with no usable page data yields an empty list. It never returns an error.
func Sections(doc *document.Document, cfg Config) []document.Section {
	if cfg.MaxSectionLength <= 0 {
		cfg.MaxSectionLength = 1000
	}
	if cfg.MaxPagePreview <= 0 {
		cfg.MaxPagePreview = 500
	}
	if doc == nil || len(doc.Pages) == 0 {
		return nil
	}

	headings := DetectHeadings(doc)
	if len(headings) == 0 {
		return pageSections(doc, cfg)
	}
	return headingSections(doc, headings, cfg)
}

// pageSections emits one section per non-empty page when no headings exist.
func pageSections(doc *document.Document, cfg Config) []document.Section {
	var sections []document.Section
	for _, page := range doc.Pages {
		if strings.TrimSpace(page.Text) == "" {
			continue
		}
		sections = append(sections, document.Section{
			Title:     fmt.Sprintf("Page %d Content", page.Number),
			Content:   truncate(page.Text, cfg.MaxPagePreview),
			Document:  doc.Name,
			Page:      page.Number,
			Level:     1,
			WordCount: len(strings.Fields(page.Text)),
			HasTables: anyTableOnPage(doc.Tables, page.Number),
		})
	}
	return sections
}

func headingSections(doc *document.Document, headings []document.Heading, cfg Config) []document.Section {
	pageText := make(map[int]string, len(doc.Pages))
	for _, page := range doc.Pages {
		pageText[page.Number] = page.Text
	}

	sections := make([]document.Section, 0, len(headings))
	for i, h := range headings {
		var next *document.Heading
		if i+1 < len(headings) {
			next = &headings[i+1]
		}

		var parts []string

		// Text on the heading's own page, after the heading itself. When the
		// heading text cannot be located verbatim (encoding mismatch), fall
		// back to intervening pages only.
		if text, ok := pageText[h.Page]; ok {
			if pos := strings.Index(text, h.Text); pos >= 0 {
				parts = append(parts, text[pos+len(h.Text):])
			}
		}

		// Full text of pages between this heading and the next.
		if next != nil && next.Page > h.Page {
			for p := h.Page + 1; p < next.Page; p++ {
				if text, ok := pageText[p]; ok {
					parts = append(parts, text)
				}
			}
		}

		full := strings.TrimSpace(strings.Join(parts, "\n"))

		lastPage := h.Page
		if next != nil {
			lastPage = next.Page
		}

		sections = append(sections, document.Section{
			Title:     h.Text,
			Content:   truncate(full, cfg.MaxSectionLength),
			Document:  doc.Name,
			Page:      h.Page,
			Level:     h.Level,
			WordCount: len(strings.Fields(full)),
			HasTables: anyTableInRange(doc.Tables, h.Page, lastPage),
		})
	}
	return sections
}

func anyTableOnPage(tables []document.Table, page int) bool {
	for _, t := range tables {
		if t.Page == page {
			return true
		}
	}
	return false
}

func anyTableInRange(tables []document.Table, first, last int) bool {
	for _, t := range tables {
		if t.Page >= first && t.Page <= last {
			return true
		}
	}
	return false
}

// truncate bounds s to max bytes on a rune boundary, appending an
// ellipsis if cut.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max] + "..."
}

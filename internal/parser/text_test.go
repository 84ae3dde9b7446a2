package parser

import (
	"strings"
	"testing"
)

func TestTextParser_BasicParagraphSplitting(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Name != "notes.txt" {
		t.Errorf("expected name %q, got %q", "notes.txt", doc.Name)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(doc.Pages))
	}

	page := doc.Pages[0]
	if page.Number != 1 {
		t.Errorf("expected page number 1, got %d", page.Number)
	}
	if len(page.Spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(page.Spans))
	}

	want := []string{
		"First paragraph line one.\nFirst paragraph line two.",
		"Second paragraph.",
		"Third paragraph.",
	}
	for i, w := range want {
		if page.Spans[i].Text != w {
			t.Errorf("span[%d]: expected %q, got %q", i, w, page.Spans[i].Text)
		}
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 0 {
		t.Errorf("expected 0 pages for empty input, got %d", len(doc.Pages))
	}
}

func TestTextParser_FormFeedPages(t *testing.T) {
	input := "Page one content.\fPage two content.\fPage three content."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "report.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(doc.Pages))
	}
	for i, page := range doc.Pages {
		if page.Number != i+1 {
			t.Errorf("page[%d]: expected number %d, got %d", i, i+1, page.Number)
		}
	}
	if doc.Pages[1].Text != "Page two content." {
		t.Errorf("expected page 2 text %q, got %q", "Page two content.", doc.Pages[1].Text)
	}
}

func TestTextParser_MultipleBlankLines(t *testing.T) {
	// Multiple consecutive blank lines should not produce empty spans.
	input := "Para one.\n\n\n\nPara two."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "gaps.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages[0].Spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(doc.Pages[0].Spans))
	}
}

func TestTextParser_LayoutTableDetection(t *testing.T) {
	input := "Quarterly results below.\n\nName    Q1    Q2\nAlpha   10    20\nBeta    30    40\n\nEnd of report."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "results.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(doc.Tables))
	}
	table := doc.Tables[0]
	if table.Source != "layout" {
		t.Errorf("expected source %q, got %q", "layout", table.Source)
	}
	if len(table.Headers) != 3 {
		t.Errorf("expected 3 headers, got %d: %v", len(table.Headers), table.Headers)
	}
	if len(table.Rows) != 2 {
		t.Errorf("expected 2 rows, got %d", len(table.Rows))
	}
}

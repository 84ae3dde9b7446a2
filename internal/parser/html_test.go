package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser_HeadingsAndTables(t *testing.T) {
	input := `<html><head><title>ignored</title></head><body>
<h1>Annual Report</h1>
<p>Opening remarks.</p>
<h2>Financials</h2>
<p>Numbers below.</p>
<table>
<tr><th>Quarter</th><th>Revenue</th></tr>
<tr><td>Q1</td><td>100</td></tr>
<tr><td>Q2</td><td>120</td></tr>
</table>
<script>console.log("skip me")</script>
</body></html>`

	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(input), "report.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(doc.Pages))
	}
	page := doc.Pages[0]

	if len(page.Spans) != 4 {
		t.Fatalf("expected 4 spans, got %d: %+v", len(page.Spans), page.Spans)
	}
	if page.Spans[0].Text != "Annual Report" || page.Spans[0].FontSize != fontH1 || !page.Spans[0].Bold {
		t.Errorf("unexpected h1 span: %+v", page.Spans[0])
	}
	if page.Spans[2].Text != "Financials" || page.Spans[2].FontSize != fontH2 {
		t.Errorf("unexpected h2 span: %+v", page.Spans[2])
	}
	if strings.Contains(page.Text, "skip me") {
		t.Errorf("script content leaked into page text: %q", page.Text)
	}

	if len(doc.Tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(doc.Tables))
	}
	table := doc.Tables[0]
	if table.Source != "html" || table.Page != 1 {
		t.Errorf("unexpected table metadata: %+v", table)
	}
	if len(table.Headers) != 2 || table.Headers[0] != "Quarter" {
		t.Errorf("unexpected headers: %v", table.Headers)
	}
	if len(table.Rows) != 2 || table.Rows[1][1] != "120" {
		t.Errorf("unexpected rows: %v", table.Rows)
	}
}

func TestHTMLParser_SingleRowTableIgnored(t *testing.T) {
	input := `<html><body><table><tr><td>only</td><td>row</td></tr></table></body></html>`
	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(input), "t.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Tables) != 0 {
		t.Errorf("expected no tables for a single-row table, got %d", len(doc.Tables))
	}
}

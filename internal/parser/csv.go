package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docrank/internal/document"
)

// CSVParser handles CSV files. The whole file becomes one structured table
// plus a single page of rendered rows.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	doc := &document.Document{Name: filename}
	if len(records) == 0 {
		return doc, nil
	}

	headers := records[0]
	rows := records[1:]

	var text strings.Builder
	text.WriteString("Headers: " + strings.Join(headers, ", ") + "\n")
	for _, row := range rows {
		text.WriteString(strings.Join(row, ", "))
		text.WriteString("\n")
	}

	doc.Pages = []document.Page{{
		Number: 1,
		Text:   strings.TrimSpace(text.String()),
	}}
	doc.Tables = []document.Table{{
		Page:    1,
		Headers: headers,
		Rows:    rows,
		Source:  "csv",
	}}
	return doc, nil
}

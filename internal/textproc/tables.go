package textproc

import (
	"regexp"
	"strings"

	"github.com/dgallion1/docrank/internal/document"
)

// columnSplitRe separates layout-aligned columns: runs of two or more
// spaces, or tabs.
var columnSplitRe = regexp.MustCompile(`\t|\s{2,}`)

const (
	minTableRows = 2
	minTableCols = 2
)

// DetectLayoutTables finds column-aligned tables in plain page text. A run
// of consecutive lines that all split into the same number (>= 2) of
// columns is treated as one table, the first line being the header row.
// This is a layout heuristic, not a structural parse; pages without aligned
// runs yield nothing.
func DetectLayoutTables(pageText string, page int) []document.Table {
	var tables []document.Table
	var run [][]string

	flush := func() {
		if len(run) >= minTableRows {
			tables = append(tables, document.Table{
				Page:    page,
				Headers: run[0],
				Rows:    run[1:],
				Source:  "layout",
			})
		}
		run = nil
	}

	for _, line := range strings.Split(pageText, "\n") {
		cols := splitColumns(line)
		if len(cols) >= minTableCols && (len(run) == 0 || len(cols) == len(run[0])) {
			run = append(run, cols)
			continue
		}
		flush()
	}
	flush()
	return tables
}

func splitColumns(line string) []string {
	var cols []string
	for _, c := range columnSplitRe.Split(strings.TrimSpace(line), -1) {
		c = strings.TrimSpace(c)
		if c != "" {
			cols = append(cols, c)
		}
	}
	return cols
}

package document

// Span is a contiguous run of uniformly formatted text on one page, as
// delivered by a parser. Spans are never modified after parsing.
type Span struct {
	Text     string    // Text content
	FontSize float64   // Font size in points
	Bold     bool      // Bold flag
	Italic   bool      // Italic flag
	BBox     []float64 // Bounding box [x0, y0, x1, y1] (may be empty)
}

// Page is one page of a parsed document.
type Page struct {
	Number int    // 1-based page number
	Text   string // Full plain text of the page
	Spans  []Span // Formatted text runs in reading order
}

// Table is a table detected anywhere in the document.
type Table struct {
	Page    int        // 1-based page the table appears on
	Headers []string   // Ordered header row
	Rows    [][]string // Data rows
	Source  string     // Extraction method that produced it (e.g. "html", "csv", "layout")
}

// Document is the parsed input contract for one file.
type Document struct {
	Name   string // Filename or document id
	Pages  []Page
	Tables []Table
}

// Heading is a span classified as structurally significant.
type Heading struct {
	Text     string
	Page     int // 1-based page number
	Level    int // 1 (most significant) to 3
	FontSize float64
	Bold     bool
	BBox     []float64
}

// Section is a titled block of content bounded by consecutive headings,
// or by page boundaries when no headings exist.
type Section struct {
	Title     string
	Content   string // Stored preview, bounded length
	Document  string // Originating document name
	Page      int    // 1-based page number
	Level     int    // Heading level 1..3
	WordCount int    // Computed from the full untruncated content
	HasTables bool
}

// Scores holds the five sub-scores and the weighted total for one section.
// All values lie in [0,1].
type Scores struct {
	Semantic   float64
	Keyword    float64
	Heading    float64
	Positional float64
	Quality    float64
	Total      float64
}

// ScoredSection is a Section with its computed scores and rank, constructed
// once and never mutated.
type ScoredSection struct {
	Section
	Scores Scores
	Rank   int // Dense 1-based importance rank, unique within one ranking call
}

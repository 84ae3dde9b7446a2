package ranking

import "regexp"

// scorePattern is a named category of terms that boosts a sub-score when
// matched. Categories are fixed and evaluated in order.
type scorePattern struct {
	name string
	re   *regexp.Regexp
}

// importantTitlePatterns each add 0.1 to the heading score when the title
// matches.
var importantTitlePatterns = []scorePattern{
	{name: "framing", re: regexp.MustCompile(`\b(introduction|overview|summary|conclusion)\b`)},
	{name: "method", re: regexp.MustCompile(`\b(method|approach|process|workflow)\b`)},
	{name: "results", re: regexp.MustCompile(`\b(result|finding|outcome|insight)\b`)},
	{name: "requirements", re: regexp.MustCompile(`\b(requirement|specification|guideline)\b`)},
	{name: "execution", re: regexp.MustCompile(`\b(implementation|solution|strategy)\b`)},
}

// detailPatterns each add 0.05 to the content quality score when the
// content matches.
var detailPatterns = []scorePattern{
	{name: "visuals", re: regexp.MustCompile(`\b(figure|table|chart|graph)\b`)},
	{name: "examples", re: regexp.MustCompile(`\b(example|instance|case)\b`)},
	{name: "procedures", re: regexp.MustCompile(`\b(step|procedure|instruction)\b`)},
	{name: "data", re: regexp.MustCompile(`\b(data|statistic|number|percent)\b`)},
}

// listStructureRe detects numbered or bulleted lines in content.
var listStructureRe = regexp.MustCompile(`\d+\.|•|-\s+`)

// genericTitles are titles too generic to earn the title-quality bonus.
var genericTitles = map[string]bool{
	"introduction": true,
	"conclusion":   true,
	"summary":      true,
	"overview":     true,
	"abstract":     true,
}

package segment

import "regexp"

// headingPattern is a named surface pattern that marks a span as a heading
// candidate regardless of its formatting.
type headingPattern struct {
	name string
	re   *regexp.Regexp
}

// headingPatterns are evaluated in order. The set is fixed: all-caps runs,
// numbered headings, short title-case lines, and bullet-prefixed capitals.
var headingPatterns = []headingPattern{
	{name: "all_caps", re: regexp.MustCompile(`^[A-Z][A-Z\s]{10,}$`)},
	{name: "numbered", re: regexp.MustCompile(`^\d+\.?\s+[A-Z]`)},
	{name: "title_case", re: regexp.MustCompile(`^[A-Z][a-z]+(\s+[A-Z][a-z]+)*:?\s*$`)},
	{name: "bullet", re: regexp.MustCompile(`^[•\-\*]\s*[A-Z]`)},
}

func matchesHeadingPattern(text string) bool {
	for _, p := range headingPatterns {
		if p.re.MatchString(text) {
			return true
		}
	}
	return false
}

// Package textproc holds text cleanup and analysis helpers shared by the
// parsers and the output generator.
package textproc

import (
	"regexp"
	"sort"
	"strings"
)

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "up": true, "about": true,
	"into": true, "through": true, "during": true, "before": true,
	"after": true, "above": true, "below": true, "between": true,
	"among": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "being": true, "have": true, "has": true,
	"had": true, "do": true, "does": true, "did": true, "will": true,
	"would": true, "could": true, "should": true, "may": true,
	"might": true, "must": true, "can": true, "this": true, "that": true,
	"these": true, "those": true, "i": true, "you": true, "he": true,
	"she": true, "it": true, "we": true, "they": true, "me": true,
	"him": true, "her": true, "us": true, "them": true, "my": true,
	"your": true, "his": true, "its": true, "our": true, "their": true,
}

var (
	whitespaceRe     = regexp.MustCompile(`\s+`)
	specialCharsRe   = regexp.MustCompile(`[^\w\s.,;:!?\-()]`)
	brokenWordRe     = regexp.MustCompile(`(\w)-\s+(\w)`)
	spaceBeforePunct = regexp.MustCompile(`\s+([,.;:!?])`)
	missingSpaceRe   = regexp.MustCompile(`([.!?])([A-Z])`)
	wordOnlyRe       = regexp.MustCompile(`\b[a-zA-Z]+\b`)
	sentenceSplitRe  = regexp.MustCompile(`[.!?]+`)
)

// CleanText normalizes whitespace, strips noise characters, and repairs
// common PDF extraction artifacts (hyphenated line breaks, punctuation
// spacing).
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = specialCharsRe.ReplaceAllString(text, " ")
	text = brokenWordRe.ReplaceAllString(text, "$1$2")
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	text = missingSpaceRe.ReplaceAllString(text, "$1 $2")
	return strings.TrimSpace(text)
}

// Keywords extracts up to max frequent words of at least minLen characters,
// excluding stop words, most frequent first. Ties are broken
// alphabetically so the result is deterministic.
func Keywords(text string, minLen, max int) []string {
	if text == "" {
		return nil
	}
	freq := make(map[string]int)
	for _, w := range wordOnlyRe.FindAllString(strings.ToLower(CleanText(text)), -1) {
		if len(w) >= minLen && !stopWords[w] {
			freq[w]++
		}
	}
	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > max {
		words = words[:max]
	}
	return words
}

// Sentences splits text into sentences of at least minLen characters.
func Sentences(text string, minLen int) []string {
	if text == "" {
		return nil
	}
	var out []string
	for _, s := range sentenceSplitRe.Split(text, -1) {
		s = strings.TrimSpace(s)
		if len(s) >= minLen {
			out = append(out, s)
		}
	}
	return out
}

// Package persona turns a free-text role and job description into a
// structured relevance profile used for scoring and heading adaptation.
package persona

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dgallion1/docrank/internal/embed"
)

// Context is the relevance profile for one analysis request. It is built
// once and safe for concurrent read access.
type Context struct {
	Persona string
	Job     string

	Type     Type
	Actions  []Action // Canonical enumeration order
	Keywords []string // Deduplicated, sorted

	PersonaVec  []float32
	JobVec      []float32
	CombinedVec []float32

	Templates []TemplateEntry // Filtered template table, order preserved
}

// HasAction reports whether the profile carries the given action tag.
func (c *Context) HasAction(a Action) bool {
	for _, have := range c.Actions {
		if have == a {
			return true
		}
	}
	return false
}

// Builder constructs persona contexts. The embedder is injected so tests
// can substitute a stub.
type Builder struct {
	embedder embed.Embedder
}

func NewBuilder(embedder embed.Embedder) *Builder {
	return &Builder{embedder: embedder}
}

// Build analyzes the persona and job text. An embedding failure degrades the
// context (nil vectors, semantic scores become 0) and is reported in the
// returned error; the Context itself is always usable.
func (b *Builder) Build(ctx context.Context, personaText, jobText string) (*Context, error) {
	personaLower := strings.ToLower(personaText)
	jobLower := strings.ToLower(jobText)

	pt := classify(personaLower)
	actions := extractActions(jobLower)

	pc := &Context{
		Persona:   personaText,
		Job:       jobText,
		Type:      pt,
		Actions:   actions,
		Keywords:  buildKeywords(pt, jobLower),
		Templates: filterTemplates(pt, actions),
	}

	if b.embedder != nil {
		vecs, err := b.embedder.EmbedBatch(ctx, []string{
			personaText,
			jobText,
			personaText + " " + jobText,
		})
		if err != nil {
			return pc, fmt.Errorf("embed persona context: %w", err)
		}
		pc.PersonaVec = vecs[0]
		pc.JobVec = vecs[1]
		pc.CombinedVec = vecs[2]
	}
	return pc, nil
}

// classify resolves the persona type: first the type name or its keyword
// list, then the looser synonym pass, then general.
func classify(persona string) Type {
	for _, t := range classificationOrder {
		if strings.Contains(persona, string(t)) {
			return t
		}
		for _, kw := range typeKeywords[t] {
			if strings.Contains(persona, kw) {
				return t
			}
		}
	}
	for _, t := range classificationOrder {
		for _, syn := range typeSynonyms[t] {
			if strings.Contains(persona, syn) {
				return t
			}
		}
	}
	return TypeGeneral
}

var wordRe = regexp.MustCompile(`\b[a-zA-Z]+\b`)

// extractActions finds canonical action tags in the job text via the
// synonym map, then the explicit verb groups.
func extractActions(job string) []Action {
	found := make(map[Action]bool)

	for _, a := range actionOrder {
		if strings.Contains(job, string(a)) {
			found[a] = true
			continue
		}
		for _, syn := range actionSynonyms[a] {
			if strings.Contains(job, syn) {
				found[a] = true
				break
			}
		}
	}

	jobWords := make(map[string]bool)
	for _, w := range wordRe.FindAllString(job, -1) {
		jobWords[w] = true
	}
	for _, g := range verbGroups {
		for _, v := range g.verbs {
			if jobWords[v] {
				found[g.action] = true
				break
			}
		}
	}

	var actions []Action
	for _, a := range actionOrder {
		if found[a] {
			actions = append(actions, a)
		}
	}
	return actions
}

var keywordRe = regexp.MustCompile(`\b[a-zA-Z]{4,}\b`)

// buildKeywords unions the persona type's keyword list, all words of length
// >= 4 in the job text, and any triggered context keywords.
func buildKeywords(t Type, job string) []string {
	set := make(map[string]bool)

	for _, kw := range typeKeywords[t] {
		set[kw] = true
	}
	for _, w := range keywordRe.FindAllString(job, -1) {
		set[w] = true
	}
	for _, trig := range contextTriggers[t] {
		for _, sub := range trig.substrings {
			if strings.Contains(job, sub) {
				for _, kw := range trig.keywords {
					set[kw] = true
				}
				break
			}
		}
	}

	keywords := make([]string, 0, len(set))
	for kw := range set {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	return keywords
}

// filterTemplates keeps the template entries whose action was extracted,
// falling back to the full per-type set when none matched. Types without a
// template table get nil.
func filterTemplates(t Type, actions []Action) []TemplateEntry {
	all, ok := headingTemplates[t]
	if !ok {
		return nil
	}
	has := make(map[Action]bool, len(actions))
	for _, a := range actions {
		has[a] = true
	}
	var filtered []TemplateEntry
	for _, e := range all {
		if has[e.Action] {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) == 0 {
		return all
	}
	return filtered
}

// Package ranking scores sections against a persona context and produces a
// deterministic total ordering. Five factors contribute: semantic
// similarity, keyword match, heading weight, page position, and content
// quality.
package ranking

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/dgallion1/docrank/internal/config"
	"github.com/dgallion1/docrank/internal/document"
	"github.com/dgallion1/docrank/internal/embed"
	"github.com/dgallion1/docrank/internal/persona"
)

// headingLevelWeights maps heading levels to their base scores. Unknown
// levels fall back to 0.4.
var headingLevelWeights = map[int]float64{
	1: 1.0,
	2: 0.8,
	3: 0.6,
}

// Engine computes section scores and rankings.
type Engine struct {
	weights  config.Weights
	embedder embed.Embedder
}

// NewEngine validates the weights once, at construction. Serving with
// weights that do not sum to 1.0 is a configuration error.
func NewEngine(weights config.Weights, embedder embed.Embedder) (*Engine, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Engine{weights: weights, embedder: embedder}, nil
}

// Score computes all five sub-scores and the weighted total for one
// section. An embedding failure degrades the semantic score to 0 and is
// never fatal.
func (e *Engine) Score(ctx context.Context, sec document.Section, pc *persona.Context) document.Scores {
	var vec []float32
	if e.embedder != nil {
		if v, err := e.embedder.Embed(ctx, sectionText(sec)); err == nil {
			vec = v
		}
	}
	return e.scoreWithVector(sec, vec, pc)
}

// Rank scores all sections and orders them by total score, descending. The
// sort is stable, so equal totals keep their original document/section
// order, and ranks are a dense 1..N. Section texts are embedded in a
// single batch call.
func (e *Engine) Rank(ctx context.Context, sections []document.Section, pc *persona.Context) []document.ScoredSection {
	if len(sections) == 0 {
		return nil
	}

	vecs := make([][]float32, len(sections))
	if e.embedder != nil {
		texts := make([]string, len(sections))
		for i, sec := range sections {
			texts[i] = sectionText(sec)
		}
		if batch, err := e.embedder.EmbedBatch(ctx, texts); err == nil && len(batch) == len(sections) {
			vecs = batch
		}
	}

	scored := make([]document.ScoredSection, len(sections))
	for i, sec := range sections {
		scored[i] = document.ScoredSection{
			Section: sec,
			Scores:  e.scoreWithVector(sec, vecs[i], pc),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Scores.Total > scored[j].Scores.Total
	})
	for i := range scored {
		scored[i].Rank = i + 1
	}
	return scored
}

// TopK returns the first k ranked sections.
func TopK(ranked []document.ScoredSection, k int) []document.ScoredSection {
	if k < 0 {
		k = 0
	}
	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k]
}

// FilterByThreshold returns the sections whose total score meets the
// minimum.
func FilterByThreshold(ranked []document.ScoredSection, threshold float64) []document.ScoredSection {
	var out []document.ScoredSection
	for _, s := range ranked {
		if s.Scores.Total >= threshold {
			out = append(out, s)
		}
	}
	return out
}

func (e *Engine) scoreWithVector(sec document.Section, vec []float32, pc *persona.Context) document.Scores {
	s := document.Scores{
		Semantic:   semanticScore(vec, pc),
		Keyword:    keywordScore(sectionText(sec), pc.Keywords),
		Heading:    headingScore(sec),
		Positional: positionalScore(sec.Page),
		Quality:    qualityScore(sec),
	}
	s.Total = s.Semantic*e.weights.Semantic +
		s.Keyword*e.weights.Keyword +
		s.Heading*e.weights.Heading +
		s.Positional*e.weights.Positional +
		s.Quality*e.weights.Quality
	return s
}

func sectionText(sec document.Section) string {
	return sec.Title + " " + sec.Content
}

// semanticScore mixes cosine similarities against the persona, job, and
// combined embeddings (0.3/0.4/0.3), clamped at zero.
func semanticScore(vec []float32, pc *persona.Context) float64 {
	if len(vec) == 0 {
		return 0.0
	}
	sim := 0.3*cosine(vec, pc.PersonaVec) +
		0.4*cosine(vec, pc.JobVec) +
		0.3*cosine(vec, pc.CombinedVec)
	return math.Max(0, sim)
}

func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0.0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

var tokenRe = regexp.MustCompile(`\b\w+\b`)

// keywordScore evaluates each keyword against exactly one tier: exact
// substring (1.0), partial token substring (0.5), or naive-stem substring
// (0.3). The normalized sum is then boosted by up to 20% for keyword
// density and capped at 1.0.
func keywordScore(text string, keywords []string) float64 {
	if text == "" || len(keywords) == 0 {
		return 0.0
	}

	textLower := strings.ToLower(text)
	tokens := make(map[string]bool)
	for _, w := range tokenRe.FindAllString(textLower, -1) {
		tokens[w] = true
	}

	var exact, partial, matchedWeight float64
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		switch {
		case strings.Contains(textLower, kw):
			exact += 1.0
			matchedWeight += 1.0
		case anyTokenContains(tokens, kw):
			partial += 0.5
			matchedWeight += 1.0
		default:
			if stem := stemKeyword(kw); stem != "" && anyTokenContains(tokens, stem) {
				partial += 0.3
				matchedWeight += 1.0
			}
		}
	}
	if matchedWeight == 0 {
		return 0.0
	}

	score := (exact + partial) / float64(len(keywords))
	if len(tokens) > 0 {
		density := math.Min(1.0, matchedWeight/float64(len(tokens))*10)
		score *= 1 + density*0.2
	}
	return math.Min(1.0, score)
}

func anyTokenContains(tokens map[string]bool, sub string) bool {
	for tok := range tokens {
		if strings.Contains(tok, sub) {
			return true
		}
	}
	return false
}

// stemKeyword strips the common suffixes s, ed, ing.
func stemKeyword(kw string) string {
	kw = strings.TrimSuffix(kw, "s")
	kw = strings.TrimSuffix(kw, "ed")
	return strings.TrimSuffix(kw, "ing")
}

// headingScore starts from the level weight, adds 0.1 per important title
// category, and penalizes overlong titles.
func headingScore(sec document.Section) float64 {
	base, ok := headingLevelWeights[sec.Level]
	if !ok {
		base = 0.4
	}

	titleLower := strings.ToLower(sec.Title)
	for _, p := range importantTitlePatterns {
		if p.re.MatchString(titleLower) {
			base += 0.1
		}
	}
	if len(strings.Fields(sec.Title)) > 10 {
		base -= 0.2
	}
	return clamp01(base)
}

// positionalScore favors early pages.
func positionalScore(page int) float64 {
	switch {
	case page == 1:
		return 1.0
	case page <= 3:
		return 0.8
	case page <= 5:
		return 0.6
	case page <= 10:
		return 0.4
	default:
		return 0.2
	}
}

// qualityScore rewards substantive word counts, tables, list structure,
// detail indicators, and non-generic titles, capped at 1.0.
func qualityScore(sec document.Section) float64 {
	score := 0.0

	wc := sec.WordCount
	switch {
	case wc >= 50 && wc <= 500:
		score += 0.4
	case (wc >= 20 && wc < 50) || (wc > 500 && wc <= 1000):
		score += 0.2
	case wc > 1000:
		score += 0.1
	}

	if sec.HasTables {
		score += 0.2
	}
	if listStructureRe.MatchString(sec.Content) {
		score += 0.1
	}

	contentLower := strings.ToLower(sec.Content)
	for _, p := range detailPatterns {
		if p.re.MatchString(contentLower) {
			score += 0.05
		}
	}

	if !genericTitles[strings.ToLower(sec.Title)] {
		score += 0.1
	}
	return math.Min(1.0, score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

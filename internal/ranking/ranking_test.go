package ranking

import (
	"context"
	"math"
	"testing"

	"github.com/dgallion1/docrank/internal/config"
	"github.com/dgallion1/docrank/internal/document"
	"github.com/dgallion1/docrank/internal/persona"
)

// stubEmbedder maps known texts to fixed vectors so semantic scores are
// predictable.
type stubEmbedder struct {
	vectors map[string][]float32
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i, t := range texts {
		if v, ok := s.vectors[t]; ok {
			vecs[i] = v
		} else {
			vecs[i] = []float32{0, 0, 1}
		}
	}
	return vecs, nil
}

func TestNewEngine_RejectsBadWeights(t *testing.T) {
	bad := config.Weights{Semantic: 0.5, Keyword: 0.5, Heading: 0.5}
	if _, err := NewEngine(bad, nil); err == nil {
		t.Fatal("expected error for weights that do not sum to 1.0")
	}
	if _, err := NewEngine(config.DefaultWeights(), nil); err != nil {
		t.Fatalf("default weights rejected: %v", err)
	}
}

func TestCosine(t *testing.T) {
	if got := cosine([]float32{1, 0}, []float32{1, 0}); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("identical vectors: expected 1.0, got %f", got)
	}
	if got := cosine([]float32{1, 0}, []float32{0, 1}); got != 0 {
		t.Errorf("orthogonal vectors: expected 0, got %f", got)
	}
	if got := cosine(nil, []float32{1}); got != 0 {
		t.Errorf("empty vector: expected 0, got %f", got)
	}
	if got := cosine([]float32{1, 0}, []float32{1, 0, 0}); got != 0 {
		t.Errorf("length mismatch: expected 0, got %f", got)
	}
	if got := cosine([]float32{0, 0}, []float32{1, 1}); got != 0 {
		t.Errorf("zero norm: expected 0, got %f", got)
	}
}

func TestSemanticScore_MixAndClamp(t *testing.T) {
	pc := &persona.Context{
		PersonaVec:  []float32{1, 0},
		JobVec:      []float32{1, 0},
		CombinedVec: []float32{1, 0},
	}
	if got := semanticScore([]float32{1, 0}, pc); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("aligned vector: expected 1.0, got %f", got)
	}
	// Opposed vector: raw mix is -1.0, clamped to 0.
	if got := semanticScore([]float32{-1, 0}, pc); got != 0 {
		t.Errorf("opposed vector: expected 0, got %f", got)
	}
	if got := semanticScore(nil, pc); got != 0 {
		t.Errorf("missing vector: expected 0, got %f", got)
	}
}

func TestKeywordScore_Tiers(t *testing.T) {
	text := "Onboarding workflows for new employees"

	// Exact substring match.
	exact := keywordScore(text, []string{"onboarding"})
	// Stem: "employed" stems to "employ", found inside "employees".
	stem := keywordScore(text, []string{"employed"})
	none := keywordScore(text, []string{"quarterly"})

	if exact <= stem || stem <= none {
		t.Errorf("expected exact > stem > none, got %f, %f, %f", exact, stem, none)
	}
	if none != 0 {
		t.Errorf("no match: expected 0, got %f", none)
	}
	for _, v := range []float64{exact, stem} {
		if v < 0 || v > 1 {
			t.Errorf("keyword score out of [0,1]: %f", v)
		}
	}
}

func TestKeywordScore_Empty(t *testing.T) {
	if got := keywordScore("", []string{"a"}); got != 0 {
		t.Errorf("empty text: expected 0, got %f", got)
	}
	if got := keywordScore("text", nil); got != 0 {
		t.Errorf("no keywords: expected 0, got %f", got)
	}
}

func TestHeadingScore(t *testing.T) {
	base := headingScore(document.Section{Title: "Staffing Plan", Level: 1})
	if base != 1.0 {
		t.Errorf("level 1 plain title: expected 1.0, got %f", base)
	}
	if got := headingScore(document.Section{Title: "Staffing Plan", Level: 7}); got != 0.4 {
		t.Errorf("unknown level: expected 0.4 base, got %f", got)
	}
	// Level 3 with one important category term.
	if got := headingScore(document.Section{Title: "Hiring Process", Level: 3}); math.Abs(got-0.7) > 1e-9 {
		t.Errorf("level 3 + method term: expected 0.7, got %f", got)
	}
	// Overlong title penalty.
	long := "a very long heading title that keeps going well past ten words total"
	short := headingScore(document.Section{Title: "short title", Level: 2})
	penalized := headingScore(document.Section{Title: long, Level: 2})
	if math.Abs((short-penalized)-0.2) > 1e-9 {
		t.Errorf("expected 0.2 penalty for overlong title, got %f vs %f", short, penalized)
	}
}

func TestPositionalScore_Steps(t *testing.T) {
	tests := []struct {
		page int
		want float64
	}{
		{1, 1.0}, {2, 0.8}, {3, 0.8}, {4, 0.6}, {5, 0.6},
		{6, 0.4}, {10, 0.4}, {11, 0.2}, {100, 0.2},
	}
	for _, tt := range tests {
		if got := positionalScore(tt.page); got != tt.want {
			t.Errorf("page %d: expected %f, got %f", tt.page, tt.want, got)
		}
	}
}

func TestQualityScore_OnboardingScenario(t *testing.T) {
	// 180 words, a table, a plain title, and content free of list markers
	// and detail terms: 0.4 + 0.2 + 0.1 = 0.7.
	sec := document.Section{
		Title:     "Onboarding Process Overview",
		Content:   "New hires meet their team during the first week",
		WordCount: 180,
		HasTables: true,
	}
	if got := qualityScore(sec); math.Abs(got-0.7) > 1e-9 {
		t.Errorf("expected 0.7, got %f", got)
	}
}

func TestQualityScore_GenericTitleAndBounds(t *testing.T) {
	generic := qualityScore(document.Section{Title: "Introduction", WordCount: 100})
	named := qualityScore(document.Section{Title: "Capacity Planning", WordCount: 100})
	if math.Abs((named-generic)-0.1) > 1e-9 {
		t.Errorf("expected 0.1 title bonus, got %f vs %f", named, generic)
	}

	// Everything at once must still cap at 1.0.
	loaded := qualityScore(document.Section{
		Title:     "Capacity Planning",
		Content:   "1. step with table data and example figures showing 10 percent growth",
		WordCount: 300,
		HasTables: true,
	})
	if loaded > 1.0 {
		t.Errorf("quality score exceeded cap: %f", loaded)
	}
}

func TestRank_OrderRanksAndDeterminism(t *testing.T) {
	engine, err := NewEngine(config.DefaultWeights(), nil)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	pc := &persona.Context{Keywords: []string{"onboarding", "compliance"}}

	sections := []document.Section{
		{Title: "Appendix", Document: "a.pdf", Page: 12, Level: 3, Content: "misc", WordCount: 10},
		{Title: "Onboarding Process Overview", Document: "a.pdf", Page: 2, Level: 1,
			Content: "Compliance onboarding checklist for new hires", WordCount: 180, HasTables: true},
		{Title: "Colophon", Document: "b.pdf", Page: 30, Level: 3, Content: "typefaces", WordCount: 8},
	}

	ranked := engine.Rank(context.Background(), sections, pc)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 ranked sections, got %d", len(ranked))
	}
	for i, s := range ranked {
		if s.Rank != i+1 {
			t.Errorf("expected dense rank %d, got %d", i+1, s.Rank)
		}
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].Scores.Total < ranked[i].Scores.Total {
			t.Errorf("ranking not descending at %d: %f < %f",
				i, ranked[i-1].Scores.Total, ranked[i].Scores.Total)
		}
	}
	if ranked[0].Title != "Onboarding Process Overview" {
		t.Errorf("expected onboarding section first, got %q", ranked[0].Title)
	}

	again := engine.Rank(context.Background(), sections, pc)
	for i := range ranked {
		if ranked[i].Title != again[i].Title || ranked[i].Scores.Total != again[i].Scores.Total {
			t.Errorf("ranking not deterministic at %d", i)
		}
	}
}

func TestRank_StableForEqualTotals(t *testing.T) {
	engine, err := NewEngine(config.DefaultWeights(), nil)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	pc := &persona.Context{}

	// Identical sections from interleaved documents score identically; the
	// stable sort must keep input order.
	var sections []document.Section
	docNames := []string{"a.pdf", "b.pdf", "a.pdf", "b.pdf", "a.pdf"}
	for _, name := range docNames {
		sections = append(sections, document.Section{
			Title: "Staffing Plan", Document: name, Page: 1, Level: 2,
			Content: "identical content", WordCount: 100,
		})
	}

	ranked := engine.Rank(context.Background(), sections, pc)
	for i, name := range docNames {
		if ranked[i].Document != name {
			t.Errorf("position %d: expected %q, got %q (stable order violated)", i, name, ranked[i].Document)
		}
		if ranked[i].Rank != i+1 {
			t.Errorf("position %d: expected rank %d, got %d", i, i+1, ranked[i].Rank)
		}
	}
}

func TestRank_EmptyInput(t *testing.T) {
	engine, _ := NewEngine(config.DefaultWeights(), nil)
	if got := engine.Rank(context.Background(), nil, &persona.Context{}); got != nil {
		t.Errorf("expected nil for no sections, got %v", got)
	}
}

func TestScore_UsesEmbedder(t *testing.T) {
	sec := document.Section{Title: "Compliance", Content: "forms and audits", Page: 1, Level: 2, WordCount: 60}
	stub := &stubEmbedder{vectors: map[string][]float32{
		sectionText(sec): {1, 0, 0},
	}}
	engine, err := NewEngine(config.DefaultWeights(), stub)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	pc := &persona.Context{
		PersonaVec:  []float32{1, 0, 0},
		JobVec:      []float32{1, 0, 0},
		CombinedVec: []float32{1, 0, 0},
	}

	scores := engine.Score(context.Background(), sec, pc)
	if math.Abs(scores.Semantic-1.0) > 1e-6 {
		t.Errorf("expected semantic 1.0 for aligned vectors, got %f", scores.Semantic)
	}
	want := scores.Semantic*0.35 + scores.Keyword*0.25 + scores.Heading*0.20 +
		scores.Positional*0.10 + scores.Quality*0.10
	if math.Abs(scores.Total-want) > 1e-9 {
		t.Errorf("total mismatch: expected %f, got %f", want, scores.Total)
	}
}

func TestTopKAndThreshold(t *testing.T) {
	ranked := []document.ScoredSection{
		{Scores: document.Scores{Total: 0.9}, Rank: 1},
		{Scores: document.Scores{Total: 0.5}, Rank: 2},
		{Scores: document.Scores{Total: 0.1}, Rank: 3},
	}
	if got := TopK(ranked, 2); len(got) != 2 {
		t.Errorf("TopK(2): expected 2, got %d", len(got))
	}
	if got := TopK(ranked, 10); len(got) != 3 {
		t.Errorf("TopK(10): expected 3, got %d", len(got))
	}
	if got := TopK(ranked, -1); len(got) != 0 {
		t.Errorf("TopK(-1): expected 0, got %d", len(got))
	}
	if got := FilterByThreshold(ranked, 0.5); len(got) != 2 {
		t.Errorf("FilterByThreshold(0.5): expected 2, got %d", len(got))
	}
}

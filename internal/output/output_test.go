package output

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dgallion1/docrank/internal/document"
	"github.com/dgallion1/docrank/internal/persona"
)

func hrContext(t *testing.T) *persona.Context {
	t.Helper()
	pc, err := persona.NewBuilder(nil).Build(context.Background(),
		"HR professional",
		"Create and manage fillable forms for onboarding and compliance")
	if err != nil {
		t.Fatalf("build persona context: %v", err)
	}
	return pc
}

func sampleInput() ([]*document.Document, []document.ScoredSection) {
	docs := []*document.Document{
		{
			Name:  "handbook.pdf",
			Pages: []document.Page{{Number: 1}, {Number: 2}},
			Tables: []document.Table{{
				Page:    2,
				Headers: []string{"Form", "Owner", "Due"},
				Rows:    [][]string{{"W-4", "payroll", "day 1"}, {"I-9", "hr", "day 3"}, {"NDA", "legal", "day 5"}},
				Source:  "layout",
			}},
		},
		{Name: "faq.md", Pages: []document.Page{{Number: 1}}},
	}
	ranked := []document.ScoredSection{
		{
			Section: document.Section{
				Title: "Onboarding Process Overview", Document: "handbook.pdf", Page: 2, Level: 1,
				Content:   "New employee forms must be completed during onboarding. The process covers compliance and benefits enrollment.",
				WordCount: 180, HasTables: true,
			},
			Scores: document.Scores{Semantic: 0.81234, Keyword: 0.9, Heading: 1.0, Positional: 0.8, Quality: 0.7, Total: 0.84321},
			Rank:   1,
		},
		{
			Section: document.Section{
				Title: "Frequently Asked Questions", Document: "faq.md", Page: 1, Level: 2,
				Content: "Short answers to common questions.", WordCount: 40,
			},
			Scores: document.Scores{Semantic: 0.2, Keyword: 0.1, Heading: 0.8, Positional: 1.0, Quality: 0.3, Total: 0.35},
			Rank:   2,
		},
	}
	return docs, ranked
}

func TestGenerate_Metadata(t *testing.T) {
	docs, ranked := sampleInput()
	result := Generate(docs, ranked, hrContext(t), DefaultConfig())

	md := result.Metadata
	if md.Persona != "HR professional" {
		t.Errorf("unexpected persona: %q", md.Persona)
	}
	if md.ProcessingSummary.TotalDocuments != 2 {
		t.Errorf("expected 2 documents, got %d", md.ProcessingSummary.TotalDocuments)
	}
	if md.ProcessingSummary.TotalSectionsAnalyzed != 2 {
		t.Errorf("expected 2 sections, got %d", md.ProcessingSummary.TotalSectionsAnalyzed)
	}
	if md.ProcessingSummary.TotalTablesFound != 1 {
		t.Errorf("expected 1 table, got %d", md.ProcessingSummary.TotalTablesFound)
	}
	if len(md.InputDocuments) != 2 {
		t.Fatalf("expected 2 input documents, got %d", len(md.InputDocuments))
	}
	handbook := md.InputDocuments[0]
	if handbook.Filename != "handbook.pdf" || handbook.Pages != 2 || !handbook.HasTables || handbook.SectionsFound != 1 {
		t.Errorf("unexpected handbook info: %+v", handbook)
	}
}

func TestGenerate_ExtractedSections(t *testing.T) {
	docs, ranked := sampleInput()
	result := Generate(docs, ranked, hrContext(t), DefaultConfig())

	if len(result.ExtractedSections) != 2 {
		t.Fatalf("expected 2 extracted sections, got %d", len(result.ExtractedSections))
	}
	first := result.ExtractedSections[0]
	if first.ImportanceRank != 1 {
		t.Errorf("expected rank 1, got %d", first.ImportanceRank)
	}
	if first.OriginalSectionTitle != "Onboarding Process Overview" {
		t.Errorf("unexpected original title: %q", first.OriginalSectionTitle)
	}
	if first.PersonaAdaptedTitle == first.OriginalSectionTitle {
		t.Error("expected the title to be persona-adapted")
	}
	if first.RelevanceScores.SemanticSimilarity != 0.8123 {
		t.Errorf("expected 4-decimal rounding, got %v", first.RelevanceScores.SemanticSimilarity)
	}
	if !first.HasTables || first.WordCount != 180 {
		t.Errorf("section facts not carried through: %+v", first)
	}
}

func TestGenerate_PreviewTruncation(t *testing.T) {
	docs, ranked := sampleInput()
	ranked[0].Content = strings.Repeat("x", 400)
	result := Generate(docs, ranked, hrContext(t), Config{PreviewLength: 100, MaxSubsections: 15})

	preview := result.ExtractedSections[0].ContentPreview
	if len(preview) != 103 || !strings.HasSuffix(preview, "...") {
		t.Errorf("expected 100-char preview with ellipsis, got %d chars", len(preview))
	}
}

func TestGenerate_SubsectionAnalysis(t *testing.T) {
	docs, ranked := sampleInput()
	result := Generate(docs, ranked, hrContext(t), DefaultConfig())

	if len(result.SubsectionAnalysis) != 2 {
		t.Fatalf("expected 2 subsections, got %d", len(result.SubsectionAnalysis))
	}
	sub := result.SubsectionAnalysis[0]
	if sub.Document != "handbook.pdf" || sub.PageNumber != 2 {
		t.Errorf("unexpected subsection identity: %+v", sub)
	}
	if !strings.HasPrefix(sub.RefinedText, "For HR form creation and management:") {
		t.Errorf("expected persona framing prefix, got %q", sub.RefinedText)
	}
	if !strings.Contains(sub.RefinedText, "1 relevant table(s)") {
		t.Errorf("expected table note in refined text, got %q", sub.RefinedText)
	}
	if len(sub.ActionableInsights) == 0 || len(sub.ActionableInsights) > 3 {
		t.Errorf("expected 1-3 insights, got %d", len(sub.ActionableInsights))
	}

	ti := sub.TableIntegration
	if ti == nil {
		t.Fatal("expected table integration for the handbook section")
	}
	if ti.TableCount != 1 || ti.TotalRows != 3 || ti.TotalColumns != 3 {
		t.Errorf("unexpected table summary: %+v", ti)
	}
	if len(ti.TableDetails) != 1 || len(ti.TableDetails[0].SampleData) != 2 {
		t.Errorf("expected 2 sample rows, got %+v", ti.TableDetails)
	}

	// The faq section has no tables on its page.
	if result.SubsectionAnalysis[1].TableIntegration != nil {
		t.Error("expected nil table integration for faq section")
	}
}

func TestGenerate_SubsectionLimit(t *testing.T) {
	docs, _ := sampleInput()
	var ranked []document.ScoredSection
	for i := 0; i < 20; i++ {
		ranked = append(ranked, document.ScoredSection{
			Section: document.Section{Title: "Section", Document: "faq.md", Page: 1, Content: "body text"},
			Rank:    i + 1,
		})
	}
	result := Generate(docs, ranked, hrContext(t), Config{PreviewLength: 200, MaxSubsections: 15})

	if len(result.ExtractedSections) != 20 {
		t.Errorf("extracted sections must not be limited, got %d", len(result.ExtractedSections))
	}
	if len(result.SubsectionAnalysis) != 15 {
		t.Errorf("expected 15 subsections, got %d", len(result.SubsectionAnalysis))
	}
}

func TestGenerate_WireFieldNames(t *testing.T) {
	docs, ranked := sampleInput()
	result := Generate(docs, ranked, hrContext(t), DefaultConfig())

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, field := range []string{
		`"metadata"`, `"extracted_sections"`, `"subsection_analysis"`,
		`"input_documents"`, `"job_to_be_done"`, `"processing_summary"`,
		`"original_section_title"`, `"persona_adapted_title"`, `"importance_rank"`,
		`"relevance_scores"`, `"semantic_similarity"`, `"keyword_match"`,
		`"heading_weight"`, `"positional_score"`, `"content_quality"`, `"total_score"`,
		`"content_preview"`, `"word_count"`, `"has_tables"`,
		`"refined_text"`, `"actionable_insights"`, `"table_integration"`,
	} {
		if !strings.Contains(string(data), field) {
			t.Errorf("wire schema missing field %s", field)
		}
	}
}

func TestRefinedSummary_CleanedSentences(t *testing.T) {
	sec := document.Section{
		Content: "Onboarding docu- ment checklist covers compliance! Short. Employees must sign each required form today.",
	}
	pc := &persona.Context{Type: persona.TypeGeneral, Keywords: []string{"compliance"}}

	got := refinedSummary(sec, pc, 0)
	if got != "Onboarding document checklist covers compliance" {
		t.Errorf("expected the cleaned, keyword-matched sentence, got %q", got)
	}
	if strings.Contains(got, "docu- ment") {
		t.Errorf("extraction artifact not repaired: %q", got)
	}
}

func TestRefinedSummary_KeywordFallback(t *testing.T) {
	// With no persona keywords, sentence selection falls back to the
	// section's own dominant terms, so a late keyword-heavy sentence is
	// kept rather than only the leading three.
	sec := document.Section{
		Content: "one two three alpha. four five six bravo. seven eight nine charlie. budget budget budget budget review.",
	}
	pc := &persona.Context{Type: persona.TypeGeneral}

	got := refinedSummary(sec, pc, 0)
	if !strings.Contains(got, "budget budget budget budget review") {
		t.Errorf("expected the dominant-term sentence to be selected, got %q", got)
	}
}

func TestRefinedSummary_ShortUnpunctuatedContent(t *testing.T) {
	sec := document.Section{Content: "body text"}
	pc := &persona.Context{Type: persona.TypeGeneral}

	if got := refinedSummary(sec, pc, 0); got != "body text" {
		t.Errorf("expected the raw content as fallback, got %q", got)
	}
}

func TestTruncate_RuneBoundary(t *testing.T) {
	s := strings.Repeat("né", 10) // 30 bytes, é is 2 bytes
	got := truncate(s, 5)         // byte 5 lands inside the second é
	if got != "nén..." {
		t.Errorf("expected cut backed up to a rune boundary, got %q", got)
	}
	if !utf8.ValidString(got) {
		t.Errorf("truncated preview is not valid UTF-8: %q", got)
	}
}

func TestRefinedSummary_EmptyContent(t *testing.T) {
	got := refinedSummary(document.Section{}, &persona.Context{Type: persona.TypeGeneral}, 0)
	if got != "No content available for analysis." {
		t.Errorf("unexpected empty-content summary: %q", got)
	}
}

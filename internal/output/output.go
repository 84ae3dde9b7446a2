// Package output assembles the analysis result document: ranked sections in
// the fixed wire schema, request metadata, and a detailed subsection
// analysis for the top-ranked sections.
package output

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dgallion1/docrank/internal/document"
	"github.com/dgallion1/docrank/internal/persona"
	"github.com/dgallion1/docrank/internal/textproc"
)

// Config bounds the generated output.
type Config struct {
	PreviewLength  int // content_preview truncation
	MaxSubsections int // Sections given detailed analysis
}

func DefaultConfig() Config {
	return Config{
		PreviewLength:  200,
		MaxSubsections: 15,
	}
}

// Sentences shorter than this carry no summarizable content.
const minSentenceLength = 10

// Result is the complete analysis output for one request.
type Result struct {
	Metadata           Metadata           `json:"metadata"`
	ExtractedSections  []ExtractedSection `json:"extracted_sections"`
	SubsectionAnalysis []Subsection       `json:"subsection_analysis"`
}

type Metadata struct {
	InputDocuments    []DocumentInfo `json:"input_documents"`
	Persona           string         `json:"persona"`
	JobToBeDone       string         `json:"job_to_be_done"`
	Timestamp         string         `json:"timestamp"`
	ProcessingSummary Summary        `json:"processing_summary"`
}

type DocumentInfo struct {
	Filename      string `json:"filename"`
	Pages         int    `json:"pages"`
	HasTables     bool   `json:"has_tables"`
	SectionsFound int    `json:"sections_found"`
}

type Summary struct {
	TotalDocuments        int `json:"total_documents"`
	TotalSectionsAnalyzed int `json:"total_sections_analyzed"`
	TotalTablesFound      int `json:"total_tables_found"`
}

// RelevanceScores is the per-section score breakdown. Field names are part
// of the wire contract.
type RelevanceScores struct {
	SemanticSimilarity float64 `json:"semantic_similarity"`
	KeywordMatch       float64 `json:"keyword_match"`
	HeadingWeight      float64 `json:"heading_weight"`
	PositionalScore    float64 `json:"positional_score"`
	ContentQuality     float64 `json:"content_quality"`
	TotalScore         float64 `json:"total_score"`
}

type ExtractedSection struct {
	Document             string          `json:"document"`
	PageNumber           int             `json:"page_number"`
	OriginalSectionTitle string          `json:"original_section_title"`
	PersonaAdaptedTitle  string          `json:"persona_adapted_title"`
	ImportanceRank       int             `json:"importance_rank"`
	RelevanceScores      RelevanceScores `json:"relevance_scores"`
	ContentPreview       string          `json:"content_preview"`
	WordCount            int             `json:"word_count"`
	HasTables            bool            `json:"has_tables"`
}

type Subsection struct {
	Document            string        `json:"document"`
	PageNumber          int           `json:"page_number"`
	SectionTitle        string        `json:"section_title"`
	PersonaAdaptedTitle string        `json:"persona_adapted_title"`
	RefinedText         string        `json:"refined_text"`
	ImportanceRank      int           `json:"importance_rank"`
	ActionableInsights  []string      `json:"actionable_insights"`
	TableIntegration    *TableSummary `json:"table_integration"`
}

type TableSummary struct {
	TableCount   int           `json:"table_count"`
	TotalRows    int           `json:"total_rows"`
	TotalColumns int           `json:"total_columns"`
	TableDetails []TableDetail `json:"table_details"`
}

type TableDetail struct {
	TableIndex int        `json:"table_index"`
	Rows       int        `json:"rows"`
	Columns    int        `json:"columns"`
	Headers    []string   `json:"headers"`
	Source     string     `json:"source"`
	SampleData [][]string `json:"sample_data"`
}

// Generate builds the full result from ranked sections and the documents
// they came from.
func Generate(docs []*document.Document, ranked []document.ScoredSection, pc *persona.Context, cfg Config) *Result {
	if cfg.PreviewLength <= 0 {
		cfg.PreviewLength = 200
	}
	if cfg.MaxSubsections <= 0 {
		cfg.MaxSubsections = 15
	}

	sectionCounts := make(map[string]int)
	for _, s := range ranked {
		sectionCounts[s.Document]++
	}

	return &Result{
		Metadata:           buildMetadata(docs, pc, sectionCounts),
		ExtractedSections:  buildExtracted(ranked, pc, cfg),
		SubsectionAnalysis: buildSubsections(docs, ranked, pc, cfg),
	}
}

func buildMetadata(docs []*document.Document, pc *persona.Context, sectionCounts map[string]int) Metadata {
	infos := make([]DocumentInfo, 0, len(docs))
	totalSections := 0
	totalTables := 0
	for _, d := range docs {
		infos = append(infos, DocumentInfo{
			Filename:      d.Name,
			Pages:         len(d.Pages),
			HasTables:     len(d.Tables) > 0,
			SectionsFound: sectionCounts[d.Name],
		})
		totalSections += sectionCounts[d.Name]
		totalTables += len(d.Tables)
	}
	return Metadata{
		InputDocuments: infos,
		Persona:        pc.Persona,
		JobToBeDone:    pc.Job,
		Timestamp:      time.Now().Format(time.RFC3339),
		ProcessingSummary: Summary{
			TotalDocuments:        len(docs),
			TotalSectionsAnalyzed: totalSections,
			TotalTablesFound:      totalTables,
		},
	}
}

func buildExtracted(ranked []document.ScoredSection, pc *persona.Context, cfg Config) []ExtractedSection {
	out := make([]ExtractedSection, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, ExtractedSection{
			Document:             s.Document,
			PageNumber:           s.Page,
			OriginalSectionTitle: s.Title,
			PersonaAdaptedTitle:  persona.AdaptHeading(s.Title, pc),
			ImportanceRank:       s.Rank,
			RelevanceScores: RelevanceScores{
				SemanticSimilarity: round4(s.Scores.Semantic),
				KeywordMatch:       round4(s.Scores.Keyword),
				HeadingWeight:      round4(s.Scores.Heading),
				PositionalScore:    round4(s.Scores.Positional),
				ContentQuality:     round4(s.Scores.Quality),
				TotalScore:         round4(s.Scores.Total),
			},
			ContentPreview: truncate(s.Content, cfg.PreviewLength),
			WordCount:      s.WordCount,
			HasTables:      s.HasTables,
		})
	}
	return out
}

func buildSubsections(docs []*document.Document, ranked []document.ScoredSection, pc *persona.Context, cfg Config) []Subsection {
	tablesByDoc := make(map[string][]document.Table, len(docs))
	for _, d := range docs {
		tablesByDoc[d.Name] = d.Tables
	}

	top := ranked
	if len(top) > cfg.MaxSubsections {
		top = top[:cfg.MaxSubsections]
	}

	out := make([]Subsection, 0, len(top))
	for _, s := range top {
		var pageTables []document.Table
		for _, t := range tablesByDoc[s.Document] {
			if t.Page == s.Page {
				pageTables = append(pageTables, t)
			}
		}
		out = append(out, Subsection{
			Document:            s.Document,
			PageNumber:          s.Page,
			SectionTitle:        s.Title,
			PersonaAdaptedTitle: persona.AdaptHeading(s.Title, pc),
			RefinedText:         refinedSummary(s.Section, pc, len(pageTables)),
			ImportanceRank:      s.Rank,
			ActionableInsights:  insights(s.Section, pc),
			TableIntegration:    summarizeTables(pageTables),
		})
	}
	return out
}

// refinedSummary selects the content sentences most loaded with persona
// keywords, falling back to the leading sentences when none match.
func refinedSummary(sec document.Section, pc *persona.Context, tableCount int) string {
	if sec.Content == "" {
		return "No content available for analysis."
	}

	content := textproc.CleanText(sec.Content)
	sentences := textproc.Sentences(content, minSentenceLength)
	if len(sentences) == 0 && content != "" {
		sentences = []string{content}
	}
	if len(sentences) > 10 {
		sentences = sentences[:10]
	}

	// With no persona keywords, rank sentences by the section's own
	// dominant terms instead.
	keywords := pc.Keywords
	if len(keywords) == 0 {
		keywords = textproc.Keywords(content, 4, 10)
	}
	if len(keywords) > 20 {
		keywords = keywords[:20]
	}

	type scored struct {
		text  string
		count int
	}
	var relevant []scored
	for _, sent := range sentences {
		lower := strings.ToLower(sent)
		count := 0
		for _, kw := range keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				count++
			}
		}
		if count > 0 {
			relevant = append(relevant, scored{text: sent, count: count})
		}
	}
	sort.SliceStable(relevant, func(i, j int) bool { return relevant[i].count > relevant[j].count })

	var selected []string
	for i := 0; i < len(relevant) && i < 5; i++ {
		selected = append(selected, relevant[i].text)
	}
	if len(selected) == 0 {
		n := len(sentences)
		if n > 3 {
			n = 3
		}
		selected = sentences[:n]
	}

	summary := strings.Join(selected, ". ")
	if prefix := persona.SummaryPrefix(pc.Type, pc.Actions); prefix != "" {
		summary = prefix + ": " + summary
	}
	if tableCount > 0 {
		summary += fmt.Sprintf(" This section includes %d relevant table(s) with structured data.", tableCount)
	}
	return summary
}

// insights produces up to three persona-targeted suggestions for a section.
func insights(sec document.Section, pc *persona.Context) []string {
	var out []string
	content := strings.ToLower(sec.Content)

	switch pc.Type {
	case persona.TypeHR:
		if strings.Contains(content, "form") && pc.HasAction(persona.ActionCreate) {
			out = append(out,
				"Consider implementing digital form templates with e-signature capabilities",
				"Ensure compliance with data privacy regulations when collecting employee information")
		}
		if strings.Contains(content, "process") {
			out = append(out, "Streamline workflow by identifying bottlenecks and automation opportunities")
		}
		if strings.Contains(content, "employee") {
			out = append(out, "Focus on user experience to improve employee satisfaction and adoption")
		}
	case persona.TypeStudent:
		if strings.Contains(content, "exam") || strings.Contains(content, "test") {
			out = append(out,
				"Create focused study materials highlighting key concepts and examples",
				"Develop practice questions based on the identified learning objectives")
		}
		if strings.Contains(content, "concept") || strings.Contains(content, "theory") {
			out = append(out,
				"Break down complex concepts into digestible learning modules",
				"Use visual aids and examples to reinforce understanding")
		}
	case persona.TypeAnalyst:
		if strings.Contains(content, "data") || strings.Contains(content, "analysis") {
			out = append(out,
				"Develop dashboards and visualizations to track key performance indicators",
				"Implement automated reporting to provide real-time insights")
		}
		if strings.Contains(content, "trend") || strings.Contains(content, "pattern") {
			out = append(out,
				"Use predictive analytics to forecast future trends and outcomes",
				"Establish baseline metrics for comparative analysis")
		}
	}

	if sec.HasTables {
		out = append(out, "Leverage structured data for automated processing and analysis")
	}
	if sec.WordCount > 200 {
		out = append(out, "Consider summarizing key points for quick reference and decision-making")
	}
	if len(out) == 0 {
		out = []string{
			"Review this section for relevant information and best practices",
			"Consider how this content applies to your specific use case",
			"Look for implementation opportunities in your workflow",
		}
	}
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

func summarizeTables(tables []document.Table) *TableSummary {
	if len(tables) == 0 {
		return nil
	}
	summary := &TableSummary{TableCount: len(tables)}
	for i, t := range tables {
		headers := t.Headers
		if len(headers) > 5 {
			headers = headers[:5]
		}
		sample := t.Rows
		if len(sample) > 2 {
			sample = sample[:2]
		}
		summary.TotalRows += len(t.Rows)
		summary.TotalColumns += len(t.Headers)
		summary.TableDetails = append(summary.TableDetails, TableDetail{
			TableIndex: i + 1,
			Rows:       len(t.Rows),
			Columns:    len(t.Headers),
			Headers:    headers,
			Source:     t.Source,
			SampleData: sample,
		})
	}
	return summary
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// truncate bounds s to max bytes on a rune boundary, appending an
// ellipsis if cut.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max] + "..."
}

package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/docrank/internal/config"
	"github.com/dgallion1/docrank/internal/document"
	"github.com/dgallion1/docrank/internal/output"
	"github.com/dgallion1/docrank/internal/parser"
	"github.com/dgallion1/docrank/internal/persona"
	"github.com/dgallion1/docrank/internal/ranking"
	"github.com/dgallion1/docrank/internal/segment"
)

// Worker processes a single analysis job end to end: parse, segment, build
// the persona context, rank, and generate the result document.
type Worker struct {
	engine  *ranking.Engine
	builder *persona.Builder
	log     *slog.Logger
	cfg     config.Config
}

func NewWorker(engine *ranking.Engine, builder *persona.Builder, log *slog.Logger, cfg config.Config) *Worker {
	return &Worker{
		engine:  engine,
		builder: builder,
		log:     log,
		cfg:     cfg,
	}
}

// Process runs the full analysis pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID)

	// Phase 1: Parse all documents, in parallel, bounded by worker count.
	job.SetStatus(StatusParsing, "parsing documents")
	files := job.Files()

	docs := make([]*document.Document, len(files))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.cfg.WorkerCount)

	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := parseFile(file)
			mu.Lock()
			defer mu.Unlock()
			job.IncrDocumentsParsed()
			if err != nil {
				log.Error("parse failed", "file", file.Name, "error", err)
				job.AddError(fmt.Sprintf("%s: %s", file.Name, err))
				return nil
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("parsing canceled", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing documents")
		return
	}

	parsed := make([]*document.Document, 0, len(docs))
	for _, d := range docs {
		if d != nil {
			parsed = append(parsed, d)
		}
	}
	hadErrors := len(parsed) < len(files)
	if len(parsed) == 0 {
		log.Error("no documents parsed")
		job.SetStatus(StatusFailed, "parsing documents")
		return
	}

	// Phase 2: Segment each document into sections.
	job.SetStatus(StatusSegmenting, "detecting sections")
	segCfg := segment.Config{
		MaxSectionLength: w.cfg.MaxSectionLength,
		MaxPagePreview:   w.cfg.MaxPagePreview,
	}
	var sections []document.Section
	for _, doc := range parsed {
		sections = append(sections, segment.Sections(doc, segCfg)...)
	}
	job.SetSectionsFound(len(sections))
	log.Info("segmented documents", "documents", len(parsed), "sections", len(sections))

	if len(sections) == 0 {
		job.AddError("no sections found in any document")
		job.SetStatus(StatusFailed, "detecting sections")
		return
	}

	// Phase 3: Build the persona context. Embedding failures degrade the
	// semantic signal but never fail the job.
	job.SetStatus(StatusAnalyzing, "building persona context")
	pc, err := w.builder.Build(ctx, job.Persona, job.JobToBeDone)
	if err != nil {
		log.Warn("persona embeddings unavailable", "error", err)
	}
	log.Info("persona context built",
		"persona_type", pc.Type, "actions", len(pc.Actions), "keywords", len(pc.Keywords))

	// Phase 4: Rank.
	job.SetStatus(StatusRanking, "ranking sections")
	ranked := w.engine.Rank(ctx, sections, pc)
	if w.cfg.ScoreThreshold > 0 {
		ranked = ranking.FilterByThreshold(ranked, w.cfg.ScoreThreshold)
	}
	if w.cfg.TopSections > 0 {
		ranked = ranking.TopK(ranked, w.cfg.TopSections)
	}
	log.Info("ranking complete", "sections", len(ranked))

	// Phase 5: Generate the result document.
	job.SetStatus(StatusGenerating, "generating output")
	result := output.Generate(parsed, ranked, pc, output.Config{
		PreviewLength:  w.cfg.PreviewLength,
		MaxSubsections: w.cfg.MaxSubsections,
	})
	job.SetResult(result)

	if hadErrors {
		job.SetStatus(StatusPartial, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
}

func parseFile(file JobFile) (*document.Document, error) {
	p, err := parser.ForFile(file.Name)
	if err != nil {
		return nil, err
	}
	doc, err := p.Parse(bytes.NewReader(file.Data), file.Name)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return doc, nil
}

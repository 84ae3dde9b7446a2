package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/docrank/internal/config"
	"github.com/dgallion1/docrank/internal/document"
	"github.com/dgallion1/docrank/internal/embed"
	"github.com/dgallion1/docrank/internal/output"
	"github.com/dgallion1/docrank/internal/parser"
	"github.com/dgallion1/docrank/internal/persona"
	"github.com/dgallion1/docrank/internal/ranking"
	"github.com/dgallion1/docrank/internal/segment"
)

// docrank runs a one-shot analysis from the command line: parse the given
// documents, rank their sections for the persona, and write the result
// JSON.
func main() {
	var (
		inputDir    = flag.String("input", "", "directory of documents to analyze")
		fileList    = flag.String("files", "", "comma-separated list of document paths")
		personaText = flag.String("persona", "", "persona description (required)")
		jobText     = flag.String("job", "", "job to be done (required)")
		outPath     = flag.String("output", "", "output file (default analysis_<timestamp>.json)")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *personaText == "" || *jobText == "" {
		fmt.Fprintln(os.Stderr, "usage: docrank -persona <text> -job <text> [-input <dir> | -files <a,b,...>] [-output <path>]")
		os.Exit(2)
	}

	paths, err := collectPaths(*inputDir, *fileList)
	if err != nil {
		log.Error("collecting input files", "error", err)
		os.Exit(1)
	}
	if len(paths) == 0 {
		log.Error("no supported documents found")
		os.Exit(1)
	}

	cfg := config.Load()
	if err := cfg.Weights.Validate(); err != nil {
		log.Error("invalid ranking weights", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	embedder, err := embed.New(cfg.EmbedProvider, cfg.EmbedURL, cfg.EmbedModel, cfg.EmbedCacheDir)
	if err != nil {
		log.Error("embedder init failed", "provider", cfg.EmbedProvider, "error", err)
		os.Exit(1)
	}
	defer func() {
		if closer, ok := embedder.(interface{ Close() }); ok {
			closer.Close()
		}
	}()

	engine, err := ranking.NewEngine(cfg.Weights, embedder)
	if err != nil {
		log.Error("invalid ranking weights", "error", err)
		os.Exit(1)
	}

	// Parse.
	var docs []*document.Document
	for _, path := range paths {
		doc, err := parsePath(path)
		if err != nil {
			log.Warn("skipping document", "file", path, "error", err)
			continue
		}
		docs = append(docs, doc)
		log.Info("parsed document", "file", doc.Name, "pages", len(doc.Pages), "tables", len(doc.Tables))
	}
	if len(docs) == 0 {
		log.Error("no documents parsed")
		os.Exit(1)
	}

	// Segment.
	segCfg := segment.Config{
		MaxSectionLength: cfg.MaxSectionLength,
		MaxPagePreview:   cfg.MaxPagePreview,
	}
	var sections []document.Section
	for _, doc := range docs {
		sections = append(sections, segment.Sections(doc, segCfg)...)
	}
	log.Info("segmented documents", "sections", len(sections))
	if len(sections) == 0 {
		log.Error("no sections found")
		os.Exit(1)
	}

	// Persona context.
	pc, err := persona.NewBuilder(embedder).Build(ctx, *personaText, *jobText)
	if err != nil {
		log.Warn("persona embeddings unavailable", "error", err)
	}
	log.Info("persona context", "type", pc.Type, "actions", pc.Actions)

	// Rank.
	ranked := engine.Rank(ctx, sections, pc)
	if cfg.ScoreThreshold > 0 {
		ranked = ranking.FilterByThreshold(ranked, cfg.ScoreThreshold)
	}
	if cfg.TopSections > 0 {
		ranked = ranking.TopK(ranked, cfg.TopSections)
	}

	// Generate and write the result.
	result := output.Generate(docs, ranked, pc, output.Config{
		PreviewLength:  cfg.PreviewLength,
		MaxSubsections: cfg.MaxSubsections,
	})

	dest := *outPath
	if dest == "" {
		dest = fmt.Sprintf("analysis_%s.json", time.Now().Format("20060102_150405"))
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Error("encoding result", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		log.Error("writing result", "file", dest, "error", err)
		os.Exit(1)
	}
	log.Info("analysis written", "file", dest, "sections", len(ranked))
}

func collectPaths(dir, list string) ([]string, error) {
	var paths []string
	if dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read dir: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			path := filepath.Join(dir, e.Name())
			if parser.IsSupportedExtension(path) {
				paths = append(paths, path)
			}
		}
	}
	for _, p := range strings.Split(list, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths, nil
}

func parsePath(path string) (*document.Document, error) {
	name := filepath.Base(path)
	p, err := parser.ForFile(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.Parse(f, name)
}

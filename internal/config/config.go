package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"time"
)

// Weights are the five ranking factor weights. They must sum to 1.0.
type Weights struct {
	Semantic   float64
	Keyword    float64
	Heading    float64
	Positional float64
	Quality    float64
}

// Sum returns the total of all five weights.
func (w Weights) Sum() float64 {
	return w.Semantic + w.Keyword + w.Heading + w.Positional + w.Quality
}

// DefaultWeights returns the standard factor weights.
func DefaultWeights() Weights {
	return Weights{
		Semantic:   0.35,
		Keyword:    0.25,
		Heading:    0.20,
		Positional: 0.10,
		Quality:    0.10,
	}
}

type Config struct {
	Port string

	// Auth
	APIKey string

	// Embedding provider: "fastembed" (local ONNX) or "http" (TEI-style service).
	EmbedProvider  string
	EmbedURL       string
	EmbedModel     string
	EmbedCacheDir  string
	EmbedDimension int

	// Ranking
	Weights        Weights
	ScoreThreshold float64
	TopSections    int

	// Section extraction
	MaxSectionLength int // Stored content preview length for heading sections
	MaxPagePreview   int // Stored content preview length for page-fallback sections
	PreviewLength    int // content_preview length in the output schema
	MaxSubsections   int // Sections given detailed subsection analysis

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes     int64
	MaxFilesPerRequest int

	// Job state
	JobTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("DOCRANK_API_KEY"),

		EmbedProvider:  envOr("EMBED_PROVIDER", "fastembed"),
		EmbedURL:       envOr("EMBED_URL", "http://localhost:8088"),
		EmbedModel:     envOr("EMBED_MODEL", "sentence-transformers/all-MiniLM-L6-v2"),
		EmbedCacheDir:  envOr("EMBED_CACHE_DIR", "./local_cache"),
		EmbedDimension: envInt("EMBED_DIMENSION", 384),

		Weights: Weights{
			Semantic:   envFloat("WEIGHT_SEMANTIC", 0.35),
			Keyword:    envFloat("WEIGHT_KEYWORD", 0.25),
			Heading:    envFloat("WEIGHT_HEADING", 0.20),
			Positional: envFloat("WEIGHT_POSITION", 0.10),
			Quality:    envFloat("WEIGHT_QUALITY", 0.10),
		},
		ScoreThreshold: envFloat("SCORE_THRESHOLD", 0.1),
		TopSections:    envInt("MAX_EXTRACTED_SECTIONS", 50),

		MaxSectionLength: envInt("MAX_SECTION_LENGTH", 1000),
		MaxPagePreview:   envInt("MAX_PAGE_PREVIEW", 500),
		PreviewLength:    envInt("PREVIEW_LENGTH", 200),
		MaxSubsections:   envInt("MAX_SUBSECTION_ANALYSIS", 15),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes:     envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB
		MaxFilesPerRequest: envInt("MAX_FILES_PER_REQUEST", 10),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.MaxFilesPerRequest <= 0 {
		cfg.MaxFilesPerRequest = 10
	}
	if cfg.MaxSectionLength <= 0 {
		cfg.MaxSectionLength = 1000
	}
	if cfg.MaxPagePreview <= 0 {
		cfg.MaxPagePreview = 500
	}
	if cfg.PreviewLength <= 0 {
		cfg.PreviewLength = 200
	}
	if cfg.MaxSubsections <= 0 {
		cfg.MaxSubsections = 15
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

// Validate checks the configuration before any request is served.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("DOCRANK_API_KEY is required")
	}
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	switch c.EmbedProvider {
	case "fastembed", "http":
	default:
		return fmt.Errorf("EMBED_PROVIDER must be \"fastembed\" or \"http\", got %q", c.EmbedProvider)
	}
	if c.EmbedProvider == "http" && c.EmbedURL == "" {
		return fmt.Errorf("EMBED_URL is required when EMBED_PROVIDER is \"http\"")
	}
	return nil
}

// Validate checks that the weights sum to 1.0 within a 0.01 tolerance.
func (w Weights) Validate() error {
	if sum := w.Sum(); math.Abs(sum-1.0) > 0.01 {
		return fmt.Errorf("ranking weights sum to %.3f, want 1.0", sum)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

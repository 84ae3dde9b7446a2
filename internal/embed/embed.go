// Package embed provides text embedding behind a narrow interface so the
// persona builder and ranking engine can be tested with a stub.
package embed

import (
	"context"
	"fmt"
)

// Embedder turns text into a fixed-dimension vector. Implementations must be
// safe for concurrent use and deterministic for identical input and model
// version.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	// EmbedBatch embeds many texts in one call, amortizing inference
	// latency. The result is index-aligned with the input.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// New constructs the configured embedding provider. Supported providers are
// "fastembed" (local ONNX inference) and "http" (TEI-style service).
func New(provider, url, model, cacheDir string) (Embedder, error) {
	switch provider {
	case "fastembed":
		return NewFastEmbed(model, cacheDir)
	case "http":
		return NewHTTPClient(url), nil
	default:
		return nil, fmt.Errorf("unknown embed provider: %q", provider)
	}
}

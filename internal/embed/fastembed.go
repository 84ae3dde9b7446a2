package embed

import (
	"context"
	"fmt"

	fastembed "github.com/anush008/fastembed-go"
)

// FastEmbed runs a local ONNX embedding model. The underlying model is safe
// for concurrent inference.
type FastEmbed struct {
	model *fastembed.FlagEmbedding
}

// modelNames maps friendly model names to fastembed constants.
var modelNames = map[string]fastembed.EmbeddingModel{
	"sentence-transformers/all-MiniLM-L6-v2": fastembed.AllMiniLML6V2,
	"BAAI/bge-small-en-v1.5":                 fastembed.BGESmallENV15,
	"BAAI/bge-base-en-v1.5":                  fastembed.BGEBaseENV15,
}

const embedBatchSize = 256

func NewFastEmbed(model, cacheDir string) (*FastEmbed, error) {
	m, ok := modelNames[model]
	if !ok {
		return nil, fmt.Errorf("unsupported embedding model: %q", model)
	}
	showProgress := false
	fe, err := fastembed.NewFlagEmbedding(&fastembed.InitOptions{
		Model:                m,
		CacheDir:             cacheDir,
		MaxLength:            512,
		ShowDownloadProgress: &showProgress,
	})
	if err != nil {
		return nil, fmt.Errorf("init fastembed: %w", err)
	}
	return &FastEmbed{model: fe}, nil
}

func (f *FastEmbed) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := f.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (f *FastEmbed) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	vecs, err := f.model.Embed(texts, embedBatchSize)
	if err != nil {
		return nil, fmt.Errorf("fastembed: %w", err)
	}
	return vecs, nil
}

// Close frees the ONNX session.
func (f *FastEmbed) Close() {
	f.model.Destroy()
}

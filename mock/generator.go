package mock

import (
	"context"

	"github.com/siteask/siteask"
)

var _ siteask.Generator = (*Generator)(nil)

// Generator is a mock implementation of siteask.Generator.
type Generator struct {
	EmbedFn            func(ctx context.Context, text string) ([]float32, error)
	EmbedBatchFn       func(ctx context.Context, texts []string) ([][]float32, error)
	EmbeddingModelIDFn func() string
	CompleteFn         func(ctx context.Context, prompt string) (string, error)
}

func (g *Generator) Embed(ctx context.Context, text string) ([]float32, error) {
	return g.EmbedFn(ctx, text)
}

func (g *Generator) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return g.EmbedBatchFn(ctx, texts)
}

func (g *Generator) EmbeddingModelID() string {
	return g.EmbeddingModelIDFn()
}

func (g *Generator) Complete(ctx context.Context, prompt string) (string, error) {
	return g.CompleteFn(ctx, prompt)
}

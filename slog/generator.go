package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/siteask/siteask"
)

// Ensure LoggingGenerator implements siteask.Generator.
var _ siteask.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with debug logging of model calls.
type LoggingGenerator struct {
	next   siteask.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next siteask.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Embed delegates to the wrapped generator and logs the call.
func (g *LoggingGenerator) Embed(ctx context.Context, text string) (vector []float32, err error) {
	defer func(begin time.Time) {
		g.logger.Info("embed",
			"chars", len(text),
			"dims", len(vector),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Embed(ctx, text)
}

// EmbedBatch delegates to the wrapped generator and logs the call.
func (g *LoggingGenerator) EmbedBatch(ctx context.Context, texts []string) (vectors [][]float32, err error) {
	defer func(begin time.Time) {
		g.logger.Info("embed batch",
			"texts", len(texts),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.EmbedBatch(ctx, texts)
}

// EmbeddingModelID delegates to the wrapped generator.
func (g *LoggingGenerator) EmbeddingModelID() string {
	return g.next.EmbeddingModelID()
}

// Complete delegates to the wrapped generator and logs the call.
func (g *LoggingGenerator) Complete(ctx context.Context, prompt string) (text string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("complete",
			"prompt_chars", len(prompt),
			"response_chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Complete(ctx, prompt)
}

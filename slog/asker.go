package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/siteask/siteask"
)

// Ensure LoggingAsker implements siteask.Asker.
var _ siteask.Asker = (*LoggingAsker)(nil)

// LoggingAsker wraps an Asker with debug logging.
type LoggingAsker struct {
	next   siteask.Asker
	logger *slog.Logger
}

// NewLoggingAsker creates a new LoggingAsker.
func NewLoggingAsker(next siteask.Asker, logger *slog.Logger) *LoggingAsker {
	return &LoggingAsker{next: next, logger: logger}
}

// Ask delegates to the wrapped asker and logs the operation.
func (a *LoggingAsker) Ask(ctx context.Context, collection string, question string) (answer *siteask.Answer, err error) {
	defer func(begin time.Time) {
		var sources int
		if answer != nil {
			sources = len(answer.Sources)
		}
		a.logger.Info("ask",
			"collection", collection,
			"question_chars", len(question),
			"sources", sources,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Ask(ctx, collection, question)
}

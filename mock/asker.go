package mock

import (
	"context"

	"github.com/siteask/siteask"
)

var _ siteask.Asker = (*Asker)(nil)

// Asker is a mock implementation of siteask.Asker.
type Asker struct {
	AskFn func(ctx context.Context, collection string, question string) (*siteask.Answer, error)
}

func (a *Asker) Ask(ctx context.Context, collection string, question string) (*siteask.Answer, error) {
	return a.AskFn(ctx, collection, question)
}

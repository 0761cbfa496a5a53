package actions

import (
	"context"
	"errors"

	"github.com/glabrego/hntop/internal/app"
	"github.com/glabrego/hntop/internal/hn"
)

type Fetcher interface {
	FetchTopStories(ctx context.Context, progress app.ProgressReporter) ([]hn.Story, error)
}

// RunFetch runs one fetch generation to completion and reports exactly one
// terminal message through sender. A cancelled fetch reports nothing more.
func RunFetch(ctx context.Context, fetcher Fetcher, sender Sender) {
	stories, err := fetcher.FetchTopStories(ctx, sender)
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return
	}
	if err != nil {
		sender.Failed(err)
		return
	}
	sender.Loaded(stories)
}

// StartFetch launches RunFetch in the background and returns the func that
// cancels it.
func StartFetch(parent context.Context, fetcher Fetcher, sender Sender) context.CancelFunc {
	ctx, cancel := context.WithCancel(parent)
	go func() {
		defer cancel()
		RunFetch(ctx, fetcher, sender)
	}()
	return cancel
}

package app

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/glabrego/hntop/internal/hn"
)

const (
	DefaultTopLimit = 30

	progressStart     = 10
	progressIndexDone = 20
	progressItemsSpan = 79
	progressDone      = 100
)

type HNClient interface {
	TopStoryIDs(ctx context.Context, limit int) ([]uint64, error)
	Item(ctx context.Context, id uint64) (hn.Story, error)
}

type Repository interface {
	LoadPreferences(ctx context.Context) (map[string]string, error)
	SavePreferences(ctx context.Context, prefs map[string]string) error
}

// ProgressReporter receives fetch progress in percent. Implementations must
// not block.
type ProgressReporter interface {
	ReportProgress(percent int)
}

type Options struct {
	TopLimit          int
	Workers           int
	RequestsPerSecond float64
	Logger            *log.Logger
}

type Service struct {
	client  HNClient
	repo    Repository
	limit   int
	workers int
	limiter *rate.Limiter
	logger  *log.Logger
}

// NewService wires the fetcher. repo may be nil, in which case preferences
// are neither loaded nor saved.
func NewService(client HNClient, repo Repository, opts Options) *Service {
	if opts.TopLimit < 1 {
		opts.TopLimit = DefaultTopLimit
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{
		client:  client,
		repo:    repo,
		limit:   opts.TopLimit,
		workers: opts.Workers,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

// FetchTopStories resolves the current top stories in rank order. A failed
// index request is fatal; failed items are logged and dropped.
func (s *Service) FetchTopStories(ctx context.Context, progress ProgressReporter) ([]hn.Story, error) {
	progress.ReportProgress(progressStart)

	ids, err := s.client.TopStoryIDs(ctx, s.limit)
	if err != nil {
		return nil, fmt.Errorf("fetch top stories: %w", err)
	}
	if len(ids) > s.limit {
		ids = ids[:s.limit]
	}
	progress.ReportProgress(progressIndexDone)
	s.logger.Debug("resolved top stories index", "ids", len(ids))

	slots := make([]*hn.Story, len(ids))
	var (
		mu   sync.Mutex
		done int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, id := range ids {
		g.Go(func() error {
			if err := s.limiter.Wait(gctx); err != nil {
				return err
			}
			story, err := s.client.Item(gctx, id)
			if ctx.Err() != nil {
				return ctx.Err()
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.Warn("skipping story", "id", strconv.FormatUint(id, 10), "err", err)
			} else {
				slots[i] = &story
			}
			done++
			progress.ReportProgress(progressIndexDone + done*progressItemsSpan/len(ids))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stories := make([]hn.Story, 0, len(ids))
	for _, story := range slots {
		if story != nil {
			stories = append(stories, *story)
		}
	}
	progress.ReportProgress(progressDone)
	s.logger.Info("fetched top stories", "stories", len(stories), "skipped", len(ids)-len(stories))
	return stories, nil
}

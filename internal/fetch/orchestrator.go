// Package fetch runs the concurrent match ingestion: per-ID cache check,
// bounded retry with backoff, and fan-out with partial-failure isolation.
package fetch

import (
	"context"
	"strconv"
	"sync"

	"dota-tracker/internal/constants"
	"dota-tracker/internal/domain"
	"dota-tracker/internal/normalize"
	"dota-tracker/internal/provider"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// MatchProvider is the slice of the provider client the orchestrator needs.
type MatchProvider interface {
	GetMatch(ctx context.Context, matchID int64) (*provider.MatchResponse, error)
}

// FailedFetch reports one match ID that could not be fetched and why.
type FailedFetch struct {
	ID  int64
	Err error
}

// Result partitions a batch into the matches that made it and the IDs that
// did not. Order within Succeeded is not guaranteed to follow the input;
// callers key results by match ID.
type Result struct {
	Succeeded []*domain.Match
	Failed    []FailedFetch
}

type Orchestrator struct {
	provider    MatchProvider
	cache       *Cache
	logger      zerolog.Logger
	flight      singleflight.Group
	backoff     func() retry.Backoff
	concurrency int
	timeout     func(context.Context) (context.Context, context.CancelFunc)
}

type Option func(*Orchestrator)

// WithBackoff overrides the retry policy factory.
func WithBackoff(f func() retry.Backoff) Option {
	return func(o *Orchestrator) { o.backoff = f }
}

// WithConcurrency bounds the fan-out width.
func WithConcurrency(n int) Option {
	return func(o *Orchestrator) { o.concurrency = n }
}

func New(p MatchProvider, cache *Cache, logger zerolog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		provider:    p,
		cache:       cache,
		logger:      logger,
		backoff:     NewBackoff,
		concurrency: constants.FetchConcurrency,
		timeout: func(ctx context.Context) (context.Context, context.CancelFunc) {
			return context.WithTimeout(ctx, constants.FetchAttemptTimeout)
		},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// FetchMatches fetches every ID concurrently and waits for all of them to
// settle. One failing ID lands in Failed and never aborts its siblings.
func (o *Orchestrator) FetchMatches(ctx context.Context, ids []int64) Result {
	var mu sync.Mutex
	var res Result

	g := new(errgroup.Group)
	g.SetLimit(o.concurrency)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			m, err := o.fetchOne(ctx, id)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				o.logger.Warn().Err(err).Int64("match_id", id).Msg("match fetch failed")
				res.Failed = append(res.Failed, FailedFetch{ID: id, Err: err})
				return nil
			}
			res.Succeeded = append(res.Succeeded, m)
			return nil
		})
	}
	g.Wait()

	o.logger.Debug().
		Int("requested", len(ids)).
		Int("succeeded", len(res.Succeeded)).
		Int("failed", len(res.Failed)).
		Msg("match batch settled")
	return res
}

// fetchOne resolves a single ID: cache, then a deduplicated fetch. A second
// request for an ID already in flight awaits the first instead of issuing a
// duplicate network call.
func (o *Orchestrator) fetchOne(ctx context.Context, id int64) (*domain.Match, error) {
	if m, ok := o.cache.Get(id); ok {
		return m, nil
	}

	v, err, _ := o.flight.Do(strconv.FormatInt(id, 10), func() (interface{}, error) {
		if m, ok := o.cache.Get(id); ok {
			return m, nil
		}
		m, err := o.fetchWithRetry(ctx, id)
		if err != nil {
			return nil, err
		}
		o.cache.Put(m)
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Match), nil
}

func (o *Orchestrator) fetchWithRetry(ctx context.Context, id int64) (*domain.Match, error) {
	var match *domain.Match
	attempt := 0

	err := retry.Do(ctx, o.backoff(), func(ctx context.Context) error {
		attempt++
		attemptCtx, cancel := o.timeout(ctx)
		defer cancel()

		raw, err := o.provider.GetMatch(attemptCtx, id)
		if err != nil {
			if provider.Retryable(err) {
				o.logger.Debug().Err(err).Int64("match_id", id).Int("attempt", attempt).Msg("retryable fetch error")
				return retry.RetryableError(err)
			}
			return err
		}

		m, err := normalize.Match(raw)
		if err != nil {
			// Malformed payload; a retry would fetch the same bytes.
			return err
		}
		match = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return match, nil
}

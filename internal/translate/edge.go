// Package translate fans text out to the Edge translate endpoint in chunks
// and gathers the results back in input order.
//
// All chunks of a call, and all calls on one Edge, share a single pacer
// (dispatch spacing and server cooldowns) and a single bearer token. A chunk
// that fails permanently fails the whole call; there is no partial result.
package translate

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"edgetrans/internal/auth"
	"edgetrans/internal/chunk"
	"edgetrans/internal/client"
	"edgetrans/internal/pacer"
)

var ErrInvalidRequest = errors.New("invalid translate request")

// API is the remote surface the translator needs.
type API interface {
	FetchToken(ctx context.Context) (string, error)
	Translate(ctx context.Context, token string, req client.TranslateRequest) ([]client.TranslateItem, error)
}

type Result struct {
	Text string
	Lang Language
}

type Translator interface {
	Translate(ctx context.Context, to Language, parts []string, opts ...CallOption) ([]Result, error)
}

var _ Translator = (*Edge)(nil)

type Edge struct {
	api   API
	auth  *auth.Manager
	pacer *pacer.Pacer
	cache *chunkCache
	sem   *semaphore.Weighted
	opts  Options
	log   *log.Logger
}

// New builds a translator and, unless opts.Token is set, fetches the first
// token right away.
func New(ctx context.Context, api API, opts Options) (*Edge, error) {
	opts = opts.normalized()
	lg := opts.Logger
	if lg == nil {
		lg = log.New(io.Discard)
	}
	am, err := auth.New(ctx, api, opts.Token)
	if err != nil {
		return nil, newError(ErrAuthFetch, -1, err)
	}
	cache, err := newChunkCache(opts.CacheMaxCost, opts.CacheTTL)
	if err != nil {
		return nil, err
	}
	e := &Edge{
		api:   api,
		auth:  am,
		pacer: pacer.New(opts.Cushion, pacer.WithRequestsPerMinute(opts.RequestsPerMinute)),
		cache: cache,
		opts:  opts,
		log:   lg,
	}
	if opts.MaxConcurrent > 0 {
		e.sem = semaphore.NewWeighted(int64(opts.MaxConcurrent))
	}
	return e, nil
}

// Close releases the result cache.
func (e *Edge) Close() {
	e.cache.close()
}

// TranslateText translates a single string as a one-item sequence.
func (e *Edge) TranslateText(ctx context.Context, to Language, text string, opts ...CallOption) ([]Result, error) {
	return e.Translate(ctx, to, []string{text}, opts...)
}

// Translate returns one Result per part, in the order of parts.
func (e *Edge) Translate(ctx context.Context, to Language, parts []string, opts ...CallOption) ([]Result, error) {
	c := call{retry: e.opts.Retry, chunkSize: e.opts.ChunkSize}
	for _, opt := range opts {
		opt(&c)
	}
	if err := validateCall(to, c); err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return []Result{}, nil
	}
	chunks, err := chunk.Split(parts, c.chunkSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	e.log.Debug("translate", "items", len(parts), "chunks", len(chunks), "to", to, "from", c.from)
	slots := make([][]Result, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	for _, ch := range chunks {
		ch := ch
		g.Go(func() error {
			if e.sem != nil {
				if err := e.sem.Acquire(gctx, 1); err != nil {
					return err
				}
				defer e.sem.Release(1)
			}
			res, err := e.translateChunk(gctx, ch, to, c)
			if err != nil {
				return err
			}
			slots[ch.Index] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return chunk.Flatten(slots), nil
}

func validateCall(to Language, c call) error {
	if !to.Valid() {
		return fmt.Errorf("%w: unsupported target language %q", ErrInvalidRequest, to)
	}
	if c.from != "" && !c.from.Valid() {
		return fmt.Errorf("%w: unsupported source language %q", ErrInvalidRequest, c.from)
	}
	if c.retry < 0 {
		return fmt.Errorf("%w: retry must be >= 0, got %d", ErrInvalidRequest, c.retry)
	}
	if c.chunkSize < 1 {
		return fmt.Errorf("%w: chunk size must be >= 1, got %d", ErrInvalidRequest, c.chunkSize)
	}
	return nil
}

// Marquee - Deterministic Daily Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package pool

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/store"
)

// Defaults for Options.
const (
	DefaultTTL           = 24 * time.Hour
	DefaultPagesPerQuery = 2
	DefaultCacheKey      = "pool:candidates:v1"
	DefaultBuildTimeout  = 2 * time.Minute
)

// Options configures a Builder. Zero values take the defaults.
type Options struct {
	TTL           time.Duration
	PagesPerQuery int
	CacheKey      string
	Queries       []Query

	// BuildTimeout bounds one shared rebuild. It is owned by the builder,
	// so callers joining a rebuild never inherit each other's deadline.
	BuildTimeout time.Duration

	// ServeStale returns an expired cached pool when a rebuild fails
	// completely, instead of an empty one.
	ServeStale bool

	Now    func() time.Time
	Logger zerolog.Logger
}

func (o Options) withDefaults() Options {
	if o.TTL <= 0 {
		o.TTL = DefaultTTL
	}
	if o.PagesPerQuery <= 0 {
		o.PagesPerQuery = DefaultPagesPerQuery
	}
	if o.CacheKey == "" {
		o.CacheKey = DefaultCacheKey
	}
	if o.BuildTimeout <= 0 {
		o.BuildTimeout = DefaultBuildTimeout
	}
	if len(o.Queries) == 0 {
		o.Queries = DefaultQueries()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Builder produces the candidate pool. It is safe for concurrent use.
type Builder struct {
	fetcher catalog.Fetcher
	store   store.Store
	opts    Options
	logger  zerolog.Logger
	flight  singleflight.Group

	mu           sync.RWMutex
	onRebuild    []func(*Pool)
	onInvalidate []func()
}

// NewBuilder creates a Builder reading from fetcher and caching in st.
func NewBuilder(fetcher catalog.Fetcher, st store.Store, opts Options) *Builder {
	opts = opts.withDefaults()
	return &Builder{
		fetcher: fetcher,
		store:   st,
		opts:    opts,
		logger:  opts.Logger.With().Str("component", "pool").Logger(),
	}
}

// TTL returns the cache lifetime.
func (b *Builder) TTL() time.Duration {
	return b.opts.TTL
}

// OnRebuild registers fn to run after a freshly built pool is cached.
func (b *Builder) OnRebuild(fn func(*Pool)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onRebuild = append(b.onRebuild, fn)
}

// OnInvalidate registers fn to run after the cached pool is dropped.
func (b *Builder) OnInvalidate(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onInvalidate = append(b.onInvalidate, fn)
}

// Candidates returns the pool's items. See Pool.
func (b *Builder) Candidates(ctx context.Context) ([]Candidate, error) {
	p, err := b.Pool(ctx)
	if err != nil {
		return []Candidate{}, err
	}
	return p.Items, nil
}

// Pool returns the cached pool if it is younger than the TTL, otherwise
// rebuilds it. When every fetch fails it returns an empty pool and
// ErrNoCandidates (or the expired pool, with ServeStale).
func (b *Builder) Pool(ctx context.Context) (*Pool, error) {
	cached, fresh := b.load(ctx)
	if fresh {
		return cached, nil
	}

	p, err := b.rebuildShared(ctx)
	if err != nil && b.opts.ServeStale && cached != nil && len(cached.Items) > 0 {
		logging.FromContext(ctx, b.logger).Warn().
			Err(err).
			Time("built_at", cached.BuiltAt).
			Msg("Pool rebuild failed, serving expired pool")
		return cached, nil
	}
	return p, err
}

// Refresh rebuilds the pool regardless of the cache.
func (b *Builder) Refresh(ctx context.Context) (*Pool, error) {
	return b.rebuildShared(ctx)
}

// Invalidate drops the cached pool so the next call rebuilds.
func (b *Builder) Invalidate(ctx context.Context) error {
	if err := b.store.Delete(ctx, b.opts.CacheKey); err != nil {
		return fmt.Errorf("invalidate pool: %w", err)
	}

	b.mu.RLock()
	listeners := append([]func(){}, b.onInvalidate...)
	b.mu.RUnlock()
	for _, fn := range listeners {
		fn()
	}
	return nil
}

// load returns the cached pool and whether it is within the TTL. An
// expired but readable pool is returned with fresh=false.
func (b *Builder) load(ctx context.Context) (*Pool, bool) {
	raw, ok, err := b.store.Get(ctx, b.opts.CacheKey)
	if err != nil {
		metrics.PoolCacheLookups.WithLabelValues("error").Inc()
		logging.FromContext(ctx, b.logger).Warn().Err(err).Msg("Pool cache read failed")
		return nil, false
	}
	if !ok {
		metrics.PoolCacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}

	var p Pool
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		metrics.PoolCacheLookups.WithLabelValues("corrupt").Inc()
		logging.FromContext(ctx, b.logger).Warn().Err(err).Msg("Discarding corrupt pool cache entry")
		return nil, false
	}
	if p.Items == nil {
		p.Items = []Candidate{}
	}

	if age := b.opts.Now().Sub(p.BuiltAt); age < 0 || age >= b.opts.TTL {
		metrics.PoolCacheLookups.WithLabelValues("expired").Inc()
		return &p, false
	}

	metrics.PoolCacheLookups.WithLabelValues("hit").Inc()
	metrics.PoolSize.Set(float64(len(p.Items)))
	return &p, true
}

// rebuildShared joins or starts the single in-flight rebuild. The rebuild
// runs detached from ctx under BuildTimeout; ctx only bounds this caller's
// wait.
func (b *Builder) rebuildShared(ctx context.Context) (*Pool, error) {
	ch := b.flight.DoChan(b.opts.CacheKey, func() (interface{}, error) {
		buildCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.opts.BuildTimeout)
		defer cancel()
		return b.rebuild(buildCtx)
	})

	select {
	case res := <-ch:
		p, _ := res.Val.(*Pool)
		if p == nil {
			p = b.emptyPool()
		}
		return p, res.Err
	case <-ctx.Done():
		return b.emptyPool(), ctx.Err()
	}
}

func (b *Builder) emptyPool() *Pool {
	return &Pool{BuiltAt: b.opts.Now(), Items: []Candidate{}}
}

type fetchJob struct {
	query Query
	page  int
}

func (b *Builder) rebuild(ctx context.Context) (*Pool, error) {
	start := time.Now()
	log := logging.FromContext(ctx, b.logger)

	jobs := make([]fetchJob, 0, len(b.opts.Queries)*b.opts.PagesPerQuery)
	for _, q := range b.opts.Queries {
		for page := 1; page <= b.opts.PagesPerQuery; page++ {
			jobs = append(jobs, fetchJob{query: q, page: page})
		}
	}

	// Settle all: goroutines record their own failure and never return
	// an error, so one failure does not cancel its siblings.
	results := make([][]catalog.Movie, len(jobs))
	failures := make([]error, len(jobs))
	var g errgroup.Group
	for i, job := range jobs {
		g.Go(func() error {
			page, err := b.fetcher.Discover(ctx, job.query.Filter, job.page)
			if err != nil {
				failures[i] = err
				return nil
			}
			results[i] = page.Results
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, err := range failures {
		if err == nil {
			continue
		}
		failed++
		metrics.PoolFetchFailures.WithLabelValues(string(jobs[i].query.Source)).Inc()
		log.Warn().
			Err(err).
			Str("source", string(jobs[i].query.Source)).
			Int("page", jobs[i].page).
			Msg("Candidate fetch failed, continuing with remaining pages")
	}

	p := &Pool{BuiltAt: b.opts.Now(), Items: merge(jobs, results)}
	metrics.RecordPoolBuild(time.Since(start), len(p.Items), failed, len(jobs))

	if len(p.Items) == 0 {
		log.Error().Int("failed", failed).Int("total", len(jobs)).Msg("Candidate pool is empty")
		return p, ErrNoCandidates
	}

	b.save(ctx, p)

	counts := p.Counts()
	log.Info().
		Int("size", len(p.Items)).
		Int("mainstream", counts[SourceMainstream]).
		Int("hidden_gem", counts[SourceHiddenGem]).
		Int("failed_fetches", failed).
		Dur("duration", time.Since(start)).
		Msg("Candidate pool rebuilt")

	b.mu.RLock()
	listeners := append([]func(*Pool){}, b.onRebuild...)
	b.mu.RUnlock()
	for _, fn := range listeners {
		fn(p)
	}
	return p, nil
}

// merge deduplicates by movie ID in job order. A later job overwrites the
// movie data and Source of an earlier one but keeps its position.
func merge(jobs []fetchJob, results [][]catalog.Movie) []Candidate {
	items := make([]Candidate, 0, 64)
	index := make(map[int]int)
	for i, movies := range results {
		for _, m := range movies {
			c := Candidate{Movie: m, Source: jobs[i].query.Source}
			if at, seen := index[m.ID]; seen {
				items[at] = c
				continue
			}
			index[m.ID] = len(items)
			items = append(items, c)
		}
	}
	return items
}

// save writes p to the store. Failures are logged, never returned.
func (b *Builder) save(ctx context.Context, p *Pool) {
	data, err := json.Marshal(p)
	if err != nil {
		b.logger.Warn().Err(err).Msg("Pool cache encode failed")
		return
	}
	if err := b.store.Set(ctx, b.opts.CacheKey, string(data)); err != nil {
		logging.FromContext(ctx, b.logger).Warn().Err(err).Msg("Pool cache write failed, continuing uncached")
	}
}

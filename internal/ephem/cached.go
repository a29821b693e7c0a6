package ephem

import (
	"fmt"
	"sync"
	"time"
)

// DefaultRefresh is the cadence at which a CachedProvider re-queries its
// backend for the same body and frame.
const DefaultRefresh = 5 * time.Second

// staleWindow is how many refresh intervals a held value may lag the
// requested instant and still be served while its refresh runs.
const staleWindow = 4

// moonPhaseFrame keys the moon phase entry apart from any real frame.
const moonPhaseFrame Frame = -1

// CachedProvider adapts a slow (networked) provider to the render loop.
//
// Calls never block: they return the last good value for the body and frame
// and, when that value is older than the refresh interval relative to the
// requested instant, start a background fetch. A value is only served for
// instants within staleWindow refresh intervals of the one it describes;
// further away the call fails with ErrStale until the fetch lands. A fetch
// that completes after a newer one was requested is discarded.
type CachedProvider struct {
	inner   Provider
	refresh time.Duration

	mu      sync.Mutex
	entries map[cacheKey]*cacheEntry
	wg      sync.WaitGroup
}

type cacheKey struct {
	body  Body
	frame Frame
}

type cacheEntry struct {
	deg   float64
	valid bool
	at    time.Time // instant the value describes
	err   error     // last fetch error, reported until a value exists

	gen        uint64 // generation of the most recent request
	inflight   bool
	inflightAt time.Time
}

// NewCachedProvider wraps inner. A non-positive refresh uses DefaultRefresh.
func NewCachedProvider(inner Provider, refresh time.Duration) *CachedProvider {
	if refresh <= 0 {
		refresh = DefaultRefresh
	}
	return &CachedProvider{
		inner:   inner,
		refresh: refresh,
		entries: make(map[cacheKey]*cacheEntry),
	}
}

// Name implements Provider.
func (p *CachedProvider) Name() string {
	return p.inner.Name() + " (cached)"
}

// Longitude implements Provider.
func (p *CachedProvider) Longitude(body Body, t time.Time, frame Frame) (float64, error) {
	if !body.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownBody, int(body))
	}
	return p.lookup(cacheKey{body: body, frame: frame}, t, func() (float64, error) {
		return p.inner.Longitude(body, t, frame)
	})
}

// MoonPhase implements Provider.
func (p *CachedProvider) MoonPhase(t time.Time) (float64, error) {
	return p.lookup(cacheKey{body: Moon, frame: moonPhaseFrame}, t, func() (float64, error) {
		return p.inner.MoonPhase(t)
	})
}

// Wait blocks until every background fetch started so far has finished.
func (p *CachedProvider) Wait() {
	p.wg.Wait()
}

func (p *CachedProvider) lookup(key cacheKey, t time.Time, fetch func() (float64, error)) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[key]
	if !ok {
		e = &cacheEntry{}
		p.entries[key] = e
	}

	fresh := e.valid && within(t, e.at, p.refresh)
	pending := e.inflight && within(t, e.inflightAt, p.refresh)
	if !fresh && !pending {
		e.gen++
		e.inflight = true
		e.inflightAt = t
		p.wg.Add(1)
		go p.run(key, e.gen, t, fetch)
	}

	if e.valid && within(t, e.at, staleWindow*p.refresh) {
		return e.deg, nil
	}
	if e.err != nil {
		return 0, e.err
	}
	if e.valid {
		return 0, fmt.Errorf("%w (%s from %s)", ErrStale, e.at.Format(time.RFC3339), t.Format(time.RFC3339))
	}
	return 0, ErrNoData
}

func (p *CachedProvider) run(key cacheKey, gen uint64, t time.Time, fetch func() (float64, error)) {
	defer p.wg.Done()

	deg, err := fetch()
	if err == nil && !finite(deg) {
		err = fmt.Errorf("%w: non-finite value", ErrNoData)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	e := p.entries[key]
	if gen != e.gen {
		// Superseded by a request for a different instant.
		return
	}
	e.inflight = false
	if err != nil {
		e.err = err
		return
	}
	e.deg = deg
	e.valid = true
	e.at = t
	e.err = nil
}

func within(a, b time.Time, d time.Duration) bool {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return diff < d
}

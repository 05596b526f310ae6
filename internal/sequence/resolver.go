package sequence

import (
	"fmt"
	"sync/atomic"

	"github.com/agbru/fibseq/internal/fibonacci"
	"github.com/agbru/fibseq/internal/logging"
)

// Kind tells how a response was produced.
type Kind int

const (
	// KindEmpty is a request for zero terms.
	KindEmpty Kind = iota
	// KindCached is served entirely from the cache.
	KindCached
	// KindLive is the full cached prefix plus a live-computed tail.
	KindLive
)

// String returns the label used in logs, metrics and spans.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindCached:
		return "cached"
	case KindLive:
		return "live"
	default:
		return "unknown"
	}
}

// Result is a resolved query.
type Result struct {
	// Body is the serialized sequence, "[1, 1, 2]" or "[]".
	Body string
	// Kind tells how Body was produced.
	Kind Kind
	// LiveTerms is the number of terms computed outside the cache.
	LiveTerms int
}

// ResolverStats is a point-in-time copy of the resolver counters.
type ResolverStats struct {
	Empty     uint64 `json:"empty"`
	Cached    uint64 `json:"cached"`
	Live      uint64 `json:"live"`
	Invalid   uint64 `json:"invalid"`
	LiveTerms uint64 `json:"live_terms"`
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithResolverLogger sets the resolver logger.
func WithResolverLogger(l logging.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = l }
}

// WithTailStepFunc replaces the step function used for live tails.
func WithTailStepFunc(step fibonacci.StepFunc) ResolverOption {
	return func(r *Resolver) { r.step = step }
}

// Resolver answers "first N terms" queries from a shared Cache.
// It is safe for concurrent use.
type Resolver struct {
	cache  *Cache
	step   fibonacci.StepFunc
	logger logging.Logger

	empty, cached, live, invalid, liveTerms atomic.Uint64
}

// NewResolver creates a resolver over cache.
func NewResolver(cache *Cache, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		cache:  cache,
		step:   fibonacci.Step,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Cache returns the underlying cache.
func (r *Resolver) Cache() *Cache {
	return r.cache
}

// Resolve returns the serialized first count terms.
func (r *Resolver) Resolve(count int) (string, error) {
	res, err := r.Query(count)
	if err != nil {
		return fibonacci.EmptySequence, err
	}
	return res.Body, nil
}

// ResolveString parses raw as a term count and resolves it.
func (r *Resolver) ResolveString(raw string) (string, error) {
	res, err := r.QueryString(raw)
	if err != nil {
		return fibonacci.EmptySequence, err
	}
	return res.Body, nil
}

// QueryString parses raw as a term count and queries it.
func (r *Resolver) QueryString(raw string) (Result, error) {
	count, err := ParseCount(raw)
	if err != nil {
		r.invalid.Add(1)
		return Result{}, err
	}
	return r.Query(count)
}

// Query resolves count and reports how the body was produced.
//
// Counts within the cache ceiling are served from the cache, extending it
// first if needed. Larger counts take the whole cached prefix and continue
// the sequence live from the cache's committed cursor.
func (r *Resolver) Query(count int) (Result, error) {
	if count < 0 {
		r.invalid.Add(1)
		return Result{}, invalidCount(fmt.Sprintf("term count must be non-negative, got %d", count))
	}
	if count == 0 {
		r.empty.Add(1)
		return Result{Body: fibonacci.EmptySequence, Kind: KindEmpty}, nil
	}

	usable, snap := r.cache.Ensure(count)
	if usable == count {
		r.cached.Add(1)
		r.logger.Debug("result fully cached", logging.Int("count", count))
		return Result{Body: snap.Prefix(count) + fibonacci.CloseDelimiter, Kind: KindCached}, nil
	}

	extra := count - usable
	r.logger.Debug("result not fully cached",
		logging.Int("count", count),
		logging.Int("cached", usable),
		logging.Int("live", extra))

	out := make([]byte, 0, fibonacci.EstimateSize(count)+len(fibonacci.EmptySequence))
	out = append(out, snap.prefixBytes(usable)...)
	cur := snap.Cursor(r.step)
	for cur.Count < count {
		if cur.Count > 0 {
			out = append(out, fibonacci.Separator...)
		}
		out = cur.Next().Append(out, 10)
	}
	out = append(out, fibonacci.CloseDelimiter...)

	r.live.Add(1)
	r.liveTerms.Add(uint64(extra))
	return Result{Body: string(out), Kind: KindLive, LiveTerms: extra}, nil
}

// Stats returns the resolver counters.
func (r *Resolver) Stats() ResolverStats {
	return ResolverStats{
		Empty:     r.empty.Load(),
		Cached:    r.cached.Load(),
		Live:      r.live.Load(),
		Invalid:   r.invalid.Load(),
		LiveTerms: r.liveTerms.Load(),
	}
}

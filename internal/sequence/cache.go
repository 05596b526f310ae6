package sequence

import (
	"math/big"
	"sync"
	"time"

	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/fibonacci"
	"github.com/agbru/fibseq/internal/logging"
)

// ExtendObserver is notified after every committed extension with the
// materialized count before and after it and the time spent generating terms.
type ExtendObserver func(from, to int, elapsed time.Duration)

// Option configures a Cache during construction.
type Option func(*Cache)

// WithLogger sets the logger used for extension events.
func WithLogger(l logging.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

// WithStepFunc replaces the recurrence step used to extend the cache.
func WithStepFunc(step fibonacci.StepFunc) Option {
	return func(c *Cache) { c.step = step }
}

// WithObserver registers an extension observer.
func WithObserver(obs ExtendObserver) Option {
	return func(c *Cache) { c.observer = obs }
}

// Cache is the append-only serialized sequence, materialized up to a fixed
// ceiling.
//
// Lock discipline: state guards the published headers and the cursor and is
// only held long enough to copy or swap them. extend serializes extenders;
// an extender writes new bytes past the published tail while holding extend
// alone and takes state exclusively only to publish.
type Cache struct {
	ceiling  int
	step     fibonacci.StepFunc
	logger   logging.Logger
	observer ExtendObserver

	extend sync.Mutex

	state        sync.RWMutex
	buf          []byte
	offsets      []int
	materialized int
	prev1, prev2 *big.Int
}

// New creates a cache that will materialize at most ceiling terms.
// Storage is reserved up front from fibonacci.EstimateSize.
func New(ceiling int, opts ...Option) (*Cache, error) {
	if ceiling < 0 {
		return nil, apperrors.NewConfigError("cache ceiling must be non-negative, got %d", ceiling)
	}

	c := &Cache{
		ceiling: ceiling,
		step:    fibonacci.Step,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	est := fibonacci.EstimateSize(ceiling) + len(fibonacci.OpenDelimiter)
	c.buf = make([]byte, 0, est)
	c.buf = append(c.buf, fibonacci.OpenDelimiter...)
	c.offsets = make([]int, 0, ceiling)

	seed := fibonacci.NewCursor()
	c.prev1, c.prev2 = seed.Prev1, seed.Prev2

	c.logger.Debug("sequence cache initialized",
		logging.Int("ceiling", ceiling),
		logging.Int("reserved_bytes", est))
	return c, nil
}

// Ceiling returns the configured maximum number of cached terms.
func (c *Cache) Ceiling() int {
	return c.ceiling
}

// Materialized returns the number of terms currently cached.
func (c *Cache) Materialized() int {
	c.state.RLock()
	defer c.state.RUnlock()
	return c.materialized
}

// Snapshot returns the committed state under a shared lock.
func (c *Cache) Snapshot() Snapshot {
	c.state.RLock()
	defer c.state.RUnlock()
	return Snapshot{
		Count:   c.materialized,
		Prev1:   c.prev1,
		Prev2:   c.prev2,
		buf:     c.buf,
		offsets: c.offsets,
	}
}

// PrefixText returns the serialized first k terms with no trailing
// separator. It panics unless k is within the materialized count, which the
// caller establishes with a prior Ensure or Snapshot.
func (c *Cache) PrefixText(k int) string {
	return c.Snapshot().Prefix(k)
}

// Ensure makes sure min(requested, ceiling) terms are materialized and
// returns that count together with the committed state at return time.
//
// A request already covered by the cache returns without entering the
// extension section. Otherwise the caller becomes the single extender,
// re-reads the state (another extender may have done the work meanwhile)
// and appends the missing terms.
func (c *Cache) Ensure(requested int) (int, Snapshot) {
	snap := c.Snapshot()
	if requested <= snap.Count {
		return requested, snap
	}
	if snap.Count == c.ceiling {
		return c.ceiling, snap
	}

	c.extend.Lock()
	defer c.extend.Unlock()

	snap = c.Snapshot()
	target := min(requested, c.ceiling)
	if snap.Count >= target {
		return target, snap
	}

	start := time.Now()
	cur := snap.Cursor(c.step)
	buf, offsets := snap.buf, snap.offsets
	for cur.Count < target {
		buf = cur.Next().Append(buf, 10)
		buf = append(buf, fibonacci.Separator...)
		offsets = append(offsets, len(buf)-len(fibonacci.Separator))
	}
	elapsed := time.Since(start)

	c.state.Lock()
	c.buf, c.offsets = buf, offsets
	c.materialized = cur.Count
	c.prev1, c.prev2 = cur.Prev1, cur.Prev2
	c.state.Unlock()

	c.logger.Debug("sequence cache extended",
		logging.Int("from", snap.Count),
		logging.Int("to", target),
		logging.Int("bytes", len(buf)),
		logging.Duration("elapsed", elapsed))
	if c.observer != nil {
		c.observer(snap.Count, target, elapsed)
	}

	return target, Snapshot{Count: cur.Count, Prev1: cur.Prev1, Prev2: cur.Prev2, buf: buf, offsets: offsets}
}

package sequence

import (
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolve_ConcurrentReaders runs many goroutines resolving varied counts
// within the ceiling and checks every body against the single-threaded
// rendering. The final materialized count must equal the largest request.
func TestResolve_ConcurrentReaders(t *testing.T) {
	const (
		ceiling    = 400
		goroutines = 48
		perWorker  = 40
	)

	c, err := New(ceiling)
	require.NoError(t, err)
	r := NewResolver(c)

	want := make([]string, ceiling+1)
	for k := 1; k <= ceiling; k++ {
		want[k] = expectedBody(k)
	}

	counts := make([][]int, goroutines)
	maxK := 0
	rng := rand.New(rand.NewPCG(1, 2))
	for g := range counts {
		counts[g] = make([]int, perWorker)
		for i := range counts[g] {
			k := 1 + rng.IntN(ceiling-50)
			counts[g][i] = k
			maxK = max(maxK, k)
		}
	}

	var wg sync.WaitGroup
	barrier := make(chan struct{})
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(ks []int) {
			defer wg.Done()
			<-barrier
			for _, k := range ks {
				got, err := r.Resolve(k)
				if !assert.NoError(t, err) {
					return
				}
				if got != want[k] {
					t.Errorf("Resolve(%d) corrupted under concurrency", k)
					return
				}
			}
		}(counts[g])
	}
	close(barrier)
	wg.Wait()

	assert.Equal(t, maxK, c.Materialized())
}

// TestResolve_ConcurrentMixedLiveAndCached mixes requests beyond the ceiling
// with cached ones; live tails must never grow the cache.
func TestResolve_ConcurrentMixedLiveAndCached(t *testing.T) {
	const ceiling = 60

	c, err := New(ceiling)
	require.NoError(t, err)
	r := NewResolver(c)

	ks := []int{1, 2, 30, 59, 60, 61, 75, 120}
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		for _, k := range ks {
			wg.Add(1)
			go func(k int) {
				defer wg.Done()
				got, err := r.Resolve(k)
				assert.NoError(t, err)
				assert.Equal(t, expectedBody(k), got, "k=%d", k)
			}(k)
		}
	}
	wg.Wait()

	assert.Equal(t, ceiling, c.Materialized())
	stats := r.Stats()
	assert.Equal(t, uint64(32*3), stats.Live)
	assert.Equal(t, uint64(32*(1+15+60)), stats.LiveTerms)
}

package sequence

import (
	"math/big"

	"github.com/agbru/fibseq/internal/fibonacci"
)

// Snapshot is a consistent view of the cache's committed state.
//
// It holds the published buffer and offsets headers as they were at the time
// of the read; later extensions never modify the bytes a Snapshot can reach,
// so it stays valid indefinitely and may be used from any goroutine.
type Snapshot struct {
	// Count is the number of materialized terms.
	Count int
	// Prev1 and Prev2 are the cursor values at Count (see fibonacci.Cursor).
	Prev1, Prev2 *big.Int

	buf     []byte
	offsets []int
}

// Prefix returns the serialized first k terms without the closing delimiter
// or a trailing separator, e.g. "[1, 1, 2" for k = 3. Prefix(0) returns the
// opening delimiter alone. It panics unless 0 <= k <= Count.
func (s Snapshot) Prefix(k int) string {
	return string(s.prefixBytes(k))
}

func (s Snapshot) prefixBytes(k int) []byte {
	if k < 0 || k > s.Count {
		panic("sequence: prefix length out of published range")
	}
	if k == 0 {
		return s.buf[:len(fibonacci.OpenDelimiter)]
	}
	return s.buf[:s.offsets[k-1]]
}

// Cursor returns a cursor positioned after the snapshot's last term.
func (s Snapshot) Cursor(step fibonacci.StepFunc) *fibonacci.Cursor {
	return fibonacci.RestoreCursor(s.Count, s.Prev1, s.Prev2, step)
}

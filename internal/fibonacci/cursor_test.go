package fibonacci

import (
	"math/big"
	"testing"
)

func TestCursor_FirstTerms(t *testing.T) {
	t.Parallel()
	want := []int64{1, 1, 2, 3, 5, 8, 13, 21, 34, 55}
	c := NewCursor()
	for i, w := range want {
		got := c.Next()
		if got.Int64() != w {
			t.Errorf("term %d = %s, want %d", i+1, got, w)
		}
	}
	if c.Count != len(want) {
		t.Errorf("Count = %d, want %d", c.Count, len(want))
	}
}

func TestCursor_SeedsDoNotStep(t *testing.T) {
	t.Parallel()
	steps := 0
	counting := func(p1, p2 *big.Int) (*big.Int, *big.Int) {
		steps++
		return Step(p1, p2)
	}

	c := NewCursor().WithStep(counting)
	c.Next()
	c.Next()
	if steps != 0 {
		t.Errorf("seed terms used %d steps, want 0", steps)
	}
	c.Next()
	if steps != 1 {
		t.Errorf("third term used %d steps, want 1", steps)
	}
}

// TestRestoreCursor_ResumesSequence verifies that a cursor rebuilt from any
// committed state continues exactly where the original left off.
func TestRestoreCursor_ResumesSequence(t *testing.T) {
	t.Parallel()
	for stop := 0; stop <= 6; stop++ {
		orig := NewCursor()
		for i := 0; i < stop; i++ {
			orig.Next()
		}
		restored := RestoreCursor(orig.Count, orig.Prev1, orig.Prev2, nil)

		for k := stop + 1; k <= stop+5; k++ {
			got := restored.Next()
			if want := fibBig(k); got.Cmp(want) != 0 {
				t.Errorf("restored at %d: term %d = %s, want %s", stop, k, got, want)
			}
		}
	}
}

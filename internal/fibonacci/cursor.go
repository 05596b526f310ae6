package fibonacci

import "math/big"

// Cursor walks the sequence 1, 1, 2, 3, 5, ... one term at a time.
//
// It is the single owner of the seeding policy: terms 1 and 2 come straight
// from the seed pair, every later term is produced by the step function. The
// sequence cache drives a Cursor when it extends itself and the resolver
// drives one, restored from the cache's committed state, when it computes a
// live tail past the cache ceiling.
//
// A Cursor is not safe for concurrent use. The integers it hands out are never
// modified afterwards.
type Cursor struct {
	// Count is the number of terms already produced.
	Count int
	// Prev1 is the most recent term, or the first seed while Count < 2.
	Prev1 *big.Int
	// Prev2 is the term before Prev1, or the second seed while Count < 2.
	Prev2 *big.Int

	step StepFunc
}

// NewCursor returns a cursor positioned before term 1 with both seeds set to 1.
func NewCursor() *Cursor {
	one := big.NewInt(1)
	return &Cursor{Prev1: one, Prev2: one}
}

// RestoreCursor rebuilds a cursor from a committed (count, prev1, prev2) state.
// A nil step function selects Step.
func RestoreCursor(count int, prev1, prev2 *big.Int, step StepFunc) *Cursor {
	return &Cursor{Count: count, Prev1: prev1, Prev2: prev2, step: step}
}

// WithStep replaces the step function and returns the cursor.
func (c *Cursor) WithStep(step StepFunc) *Cursor {
	c.step = step
	return c
}

// Next returns the next term and advances the cursor.
func (c *Cursor) Next() *big.Int {
	var term *big.Int
	switch c.Count {
	case 0:
		term = c.Prev1
	case 1:
		term = c.Prev2
	default:
		step := c.step
		if step == nil {
			step = Step
		}
		c.Prev1, c.Prev2 = step(c.Prev1, c.Prev2)
		term = c.Prev1
	}
	c.Count++
	return term
}

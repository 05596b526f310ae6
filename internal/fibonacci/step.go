package fibonacci

import "math/big"

// StepFunc advances a two-value Fibonacci state by one step.
// Implementations must not modify their arguments.
type StepFunc func(prev1, prev2 *big.Int) (next1, next2 *big.Int)

// Step advances the recurrence by one term.
//
// It returns next1 = prev1 + prev2 in a freshly allocated integer and
// next2 = prev1. Neither argument is modified, so values handed out by a
// previous call may be shared freely between goroutines. next1 is the term
// produced by this step.
//
// Parameters:
//   - prev1: The most recent term.
//   - prev2: The term before prev1.
//
// Returns:
//   - next1: The new most recent term.
//   - next2: The new previous term (prev1).
func Step(prev1, prev2 *big.Int) (next1, next2 *big.Int) {
	return new(big.Int).Add(prev1, prev2), prev1
}

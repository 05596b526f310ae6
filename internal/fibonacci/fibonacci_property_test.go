package fibonacci

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// termsUpTo drives a fresh cursor for n terms.
func termsUpTo(n int) []*big.Int {
	c := NewCursor()
	out := make([]*big.Int, n)
	for i := range out {
		out[i] = c.Next()
	}
	return out
}

// TestCassinisIdentity_PropertyBased verifies Cassini's identity on the
// cursor's output:
//
//	F(n-1) * F(n+1) - F(n)² = (-1)ⁿ
func TestCassinisIdentity_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("cursor output satisfies Cassini's identity", prop.ForAll(
		func(n int) bool {
			terms := termsUpTo(n + 1)
			fnMinus1, fn, fnPlus1 := terms[n-2], terms[n-1], terms[n]

			leftSide := new(big.Int).Mul(fnMinus1, fnPlus1)
			leftSide.Sub(leftSide, new(big.Int).Mul(fn, fn))

			rightSide := big.NewInt(1)
			if n%2 != 0 {
				rightSide.Neg(rightSide)
			}
			return leftSide.Cmp(rightSide) == 0
		},
		gen.IntRange(2, 1500),
	))

	properties.TestingRun(t)
}

// TestOracleAgreement_PropertyBased checks the cursor against the
// independent iterative oracle at random positions.
func TestOracleAgreement_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("term k equals oracle F(k)", prop.ForAll(
		func(k int) bool {
			terms := termsUpTo(k)
			return terms[k-1].Cmp(fibBig(k)) == 0
		},
		gen.IntRange(1, 3000),
	))

	properties.TestingRun(t)
}

package sequence

import (
	"math/big"
	"strings"
	"sync/atomic"

	"github.com/agbru/fibseq/internal/fibonacci"
)

// expectedTerms renders the first n terms independently of the cache.
func expectedTerms(n int) []string {
	a, b := big.NewInt(1), big.NewInt(1)
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, a.String())
		a, b = b, new(big.Int).Add(a, b)
	}
	return out
}

// expectedBody renders the response body for n terms.
func expectedBody(n int) string {
	return "[" + strings.Join(expectedTerms(n), ", ") + "]"
}

// parseBody splits a response body back into its value list.
func parseBody(body string) []string {
	inner := strings.TrimSuffix(strings.TrimPrefix(body, "["), "]")
	if inner == "" {
		return []string{}
	}
	return strings.Split(inner, ", ")
}

// stepCounter wraps fibonacci.Step and counts invocations.
type stepCounter struct {
	n atomic.Int64
}

func (s *stepCounter) step(prev1, prev2 *big.Int) (*big.Int, *big.Int) {
	s.n.Add(1)
	return fibonacci.Step(prev1, prev2)
}

func (s *stepCounter) count() int64 { return s.n.Load() }

package fibonacci

import "math"

// ─────────────────────────────────────────────────────────────────────────────
// Serialization Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// OpenDelimiter starts every serialized sequence.
	OpenDelimiter = "["

	// CloseDelimiter terminates a serialized sequence. It is only ever added by
	// consumers at read time, never stored in the cache buffer.
	CloseDelimiter = "]"

	// Separator follows every term stored in the cache buffer and precedes
	// every live-computed term in a response.
	Separator = ", "

	// EmptySequence is the body returned for a request of zero terms.
	EmptySequence = OpenDelimiter + CloseDelimiter
)

// ─────────────────────────────────────────────────────────────────────────────
// Growth Constants
// ─────────────────────────────────────────────────────────────────────────────

// DecimalGrowthFactor is log10(phi), where phi ≈ 1.618 (golden ratio).
// Term k of the sequence has approximately k * DecimalGrowthFactor decimal digits.
var DecimalGrowthFactor = math.Log10((math.Sqrt(5) + 1) / 2)

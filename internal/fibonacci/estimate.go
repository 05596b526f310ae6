package fibonacci

// EstimateSize returns the estimated number of bytes needed to serialize the
// first termCount terms, separators included.
//
// Term k has roughly k * DecimalGrowthFactor digits, so the digits of terms
// 1..termCount sum to about DecimalGrowthFactor * termCount*(termCount+1)/2.
// One byte per term is added as rounding slack, plus one separator per term.
// The result is a pre-sizing hint, not a bound: buffers sized from it must be
// allowed to grow.
func EstimateSize(termCount int) int {
	if termCount <= 0 {
		return 0
	}
	n := uint64(termCount)
	triangle := n * (n + 1) / 2
	digits := int(float64(triangle) * DecimalGrowthFactor)
	return digits + termCount + termCount*len(Separator)
}

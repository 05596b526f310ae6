// Package fibonacci provides the arithmetic building blocks of the sequence
// service: the single-step recurrence on arbitrary-precision integers, a cursor
// that owns the seeding policy for the first two terms, and the buffer size
// estimator used to pre-size serialized output.
package fibonacci

package ports

// ProgressFunc receives batch completion fractions in [0, 1]. The runner
// guarantees monotonically increasing values: one call before each
// experiment and a final call at exactly 1.0.
type ProgressFunc func(fraction float64)

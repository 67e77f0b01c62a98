package timeval

// Time is the numeric capability set every algorithm in this module needs
// from a time domain: a total order, addition, subtraction, and a
// saturating infinity sentinel. T is the concrete representation (Int64,
// Rational, or a caller-supplied type); every method takes and returns T by
// value so implementations stay allocation-free.
//
// Add must saturate: once either operand is Infinity(), the result is
// Infinity(). Sub is only meaningful where the caller already knows the
// result is non-negative (all call sites in this module either subtract a
// smaller bound from a larger one, or clamp the result themselves); callers
// that need a clamped subtraction should compare first.
type Time[T any] interface {
	Add(other T) T
	Sub(other T) T
	Compare(other T) int // <0 if receiver < other, 0 if equal, >0 if receiver > other
	Infinity() T
}

// Zero reports the zero value of T. It is just `var z T`, spelled out as a
// helper so call sites don't need to repeat the declaration.
func Zero[T any]() T {
	var z T
	return z
}

// Min returns whichever of a, b compares smaller.
func Min[T Time[T]](a, b T) T {
	if a.Compare(b) <= 0 {
		return a
	}
	return b
}

// Max returns whichever of a, b compares larger.
func Max[T Time[T]](a, b T) T {
	if a.Compare(b) >= 0 {
		return a
	}
	return b
}

// Less reports whether a < b.
func Less[T Time[T]](a, b T) bool {
	return a.Compare(b) < 0
}

// LessEqual reports whether a <= b.
func LessEqual[T Time[T]](a, b T) bool {
	return a.Compare(b) <= 0
}

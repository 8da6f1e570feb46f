package calendar

// Signed lists the integer types the engine does floor arithmetic on.
type Signed interface {
	~int | ~int32 | ~int64
}

// DivFloor is integer division rounding towards negative infinity.
// Go's "/" truncates towards zero, which is wrong for instants before the epoch.
func DivFloor[T Signed](dividend, divisor T) T {
	q := dividend / divisor
	if (dividend%divisor != 0) && ((dividend < 0) != (divisor < 0)) {
		q--
	}
	return q
}

// PositiveRem returns the remainder in [0, divisor) for a positive divisor,
// even when the dividend is negative.
func PositiveRem[T Signed](dividend, divisor T) T {
	r := dividend % divisor
	if r < 0 {
		r += divisor
	}
	return r
}

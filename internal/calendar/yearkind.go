package calendar

// YearKind tells common years (365 days) from leap years (366 days).
type YearKind uint8

const (
	Common YearKind = iota
	Leap
)

// YearKindOf applies the Gregorian rule: a year is leap when it is a multiple
// of 4, except centuries that are not a multiple of 400.
// The rule is extended proleptically, so year 0 (1 BC) is leap.
func YearKindOf(year int32) YearKind {
	if isMultiple(year, 4) && (!isMultiple(year, 100) || isMultiple(year, 400)) {
		return Leap
	}
	return Common
}

// Days returns the length of a year of this kind.
func (k YearKind) Days() int32 {
	if k == Leap {
		return daysPerLeapYear
	}
	return daysPerCommonYear
}

func (k YearKind) String() string {
	if k == Leap {
		return "Leap"
	}
	return "Common"
}

func isMultiple(n, divisor int32) bool {
	return n%divisor == 0
}

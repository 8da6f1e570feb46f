package calendar

import (
	"fmt"
	"math"
)

const (
	SecondsPerMinute int64 = 60
	SecondsPerHour         = 60 * SecondsPerMinute
	SecondsPerDay          = 24 * SecondsPerHour

	daysPerCommonYear = 365
	daysPerLeapYear   = 366

	// The Gregorian leap schedule repeats every 400 years. One cycle holds
	// 100 multiples of 4, minus 4 multiples of 100, plus 1 multiple of 400.
	leapDaysPer400Years = 100 - 4 + 1
	daysPer400Years     = daysPerCommonYear*400 + leapDaysPer400Years

	unixEpochYear = 1970
)

// LeapDaysSinceYearZero counts the leap days between January 1st of year 0
// and January 1st of the given year. The result is negative for negative years,
// so that DaysSinceEpochStart stays monotonic across year 0.
func LeapDaysSinceYearZero(year int32) int64 {
	y := int64(year)
	if y > 0 {
		// February 29th of the given year, if any, is not counted.
		y--
		// +1 for year 0 itself, which is leap.
		return y/4 - y/100 + y/400 + 1
	}
	y = -y
	return -(y/4 - y/100 + y/400)
}

// DaysSinceEpochStart returns the number of days from January 1st of year 0
// to January 1st of the given year.
func DaysSinceEpochStart(year int32) int64 {
	return int64(year)*daysPerCommonYear + LeapDaysSinceYearZero(year)
}

var unixEpochDays = DaysSinceEpochStart(unixEpochYear)

// The instants FromUnixSeconds can render: January 1st of the first int32
// year and the last second of the last one.
var (
	MinUnixSeconds = ToUnixSeconds(NaiveDateTime{Year: math.MinInt32, Month: January, Day: 1})
	MaxUnixSeconds = ToUnixSeconds(NaiveDateTime{Year: math.MaxInt32, Month: December, Day: 31, Hour: 23, Minute: 59, Second: 59})
)

// DaysSinceUnixEpoch returns the signed number of days from 1970-01-01 to the
// date part of d.
func DaysSinceUnixEpoch(d NaiveDateTime) int64 {
	kind := YearKindOf(d.Year)
	return DaysSinceEpochStart(d.Year) - unixEpochDays +
		int64(d.Month.DaysSinceJanuary1st(kind)) +
		int64(d.Day) - 1
}

// ToUnixSeconds reads d as a UTC wall clock and returns seconds since the Unix epoch.
func ToUnixSeconds(d NaiveDateTime) int64 {
	return DaysSinceUnixEpoch(d)*SecondsPerDay +
		int64(d.Hour)*SecondsPerHour +
		int64(d.Minute)*SecondsPerMinute +
		int64(d.Second)
}

// FromUnixSeconds renders seconds since the Unix epoch as a UTC wall clock.
// seconds must lie in [MinUnixSeconds, MaxUnixSeconds]; the years outside
// are not representable and FromUnixSeconds panics for them.
func FromUnixSeconds(seconds int64) NaiveDateTime {
	if seconds < MinUnixSeconds || seconds > MaxUnixSeconds {
		panic(fmt.Sprintf("calendar: %d seconds since the epoch outside [%d, %d]", seconds, MinUnixSeconds, MaxUnixSeconds))
	}
	days := DivFloor(seconds, SecondsPerDay) + unixEpochDays
	year, dayOfTheYear := yearFromDays(days)
	month, day := MonthFromDayOfTheYear(dayOfTheYear, YearKindOf(year))

	return NaiveDateTime{
		Year:   year,
		Month:  month,
		Day:    day,
		Hour:   uint8(PositiveRem(DivFloor(seconds, SecondsPerHour), 24)),
		Minute: uint8(PositiveRem(DivFloor(seconds, SecondsPerMinute), 60)),
		Second: uint8(PositiveRem(seconds, 60)),
	}
}

// yearFromDays splits a day count from January 1st of year 0 into a year
// and a 0-based day of that year.
func yearFromDays(days int64) (int32, int32) {
	// Average year length over a full cycle. The estimate is exact except
	// around the end of some years, where it can be one year off. It may
	// leave the int32 range at both ends, where it is clamped.
	estimate := DivFloor(days*400, daysPer400Years)
	year := int32(max(math.MinInt32, min(math.MaxInt32, estimate)))
	dayOfTheYear := days - DaysSinceEpochStart(year)
	if dayOfTheYear < 0 {
		year--
		dayOfTheYear = days - DaysSinceEpochStart(year)
	} else if dayOfTheYear >= int64(YearKindOf(year).Days()) {
		year++
		dayOfTheYear = days - DaysSinceEpochStart(year)
	}
	return year, int32(dayOfTheYear)
}

// DayOfTheWeekOf returns the ISO day of the week of the date part of d.
func DayOfTheWeekOf(d NaiveDateTime) DayOfTheWeek {
	return unixEpochDayOfTheWeek.Add(DaysSinceUnixEpoch(d))
}

// LastWeekdayOfMonth returns the day of the month of the last given weekday.
func LastWeekdayOfMonth(year int32, month Month, weekday DayOfTheWeek) uint8 {
	lastDay := month.Length(YearKindOf(year))
	lastDayOfTheWeek := DayOfTheWeekOf(NaiveDateTime{Year: year, Month: month, Day: lastDay})
	difference := int64(lastDayOfTheWeek.ISONumber()) - int64(weekday.ISONumber())
	return lastDay - uint8(PositiveRem(difference, 7))
}

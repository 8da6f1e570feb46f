package calendar

import (
	"errors"
	"fmt"
)

// ErrMalformed reports a calendar value whose fields are out of their natural ranges.
var ErrMalformed = errors.New("malformed calendar value")

// NaiveDateTime is a date and time of day without any time zone information.
type NaiveDateTime struct {
	// Year number per ISO 8601: 2016 AD is 2016, 1 AD is 1, 1 BC is 0, 2 BC is -1.
	Year  int32
	Month Month
	// Day of the month, starting at 1.
	Day    uint8
	Hour   uint8
	Minute uint8
	Second uint8
}

// NewNaiveDateTime builds a validated NaiveDateTime.
func NewNaiveDateTime(year int32, month Month, day, hour, minute, second uint8) (NaiveDateTime, error) {
	d := NaiveDateTime{
		Year:   year,
		Month:  month,
		Day:    day,
		Hour:   hour,
		Minute: minute,
		Second: second,
	}
	if err := d.Validate(); err != nil {
		return NaiveDateTime{}, err
	}
	return d, nil
}

// MustNaiveDateTime is like NewNaiveDateTime but panics on invalid fields.
func MustNaiveDateTime(year int32, month Month, day, hour, minute, second uint8) NaiveDateTime {
	d, err := NewNaiveDateTime(year, month, day, hour, minute, second)
	if err != nil {
		panic(err)
	}
	return d
}

// Validate checks every field against its range. Values built as struct
// literals are not checked until this is called.
func (d NaiveDateTime) Validate() error {
	if _, ok := MonthFromNumber(uint8(d.Month)); !ok {
		return fmt.Errorf("%w: month %d", ErrMalformed, uint8(d.Month))
	}
	if length := d.Month.Length(YearKindOf(d.Year)); d.Day < 1 || d.Day > length {
		return fmt.Errorf("%w: day %d of %s %d", ErrMalformed, d.Day, d.Month, d.Year)
	}
	if d.Hour > 23 {
		return fmt.Errorf("%w: hour %d", ErrMalformed, d.Hour)
	}
	if d.Minute > 59 {
		return fmt.Errorf("%w: minute %d", ErrMalformed, d.Minute)
	}
	if d.Second > 59 {
		return fmt.Errorf("%w: second %d", ErrMalformed, d.Second)
	}
	return nil
}

func (d NaiveDateTime) YearKind() YearKind {
	return YearKindOf(d.Year)
}

func (d NaiveDateTime) DaysSinceUnixEpoch() int64 {
	return DaysSinceUnixEpoch(d)
}

func (d NaiveDateTime) DayOfTheWeek() DayOfTheWeek {
	return DayOfTheWeekOf(d)
}

// DayOfTheYear returns the ordinal day, 1 for January 1st.
func (d NaiveDateTime) DayOfTheYear() uint16 {
	return uint16(d.Month.DaysSinceJanuary1st(d.YearKind())) + uint16(d.Day)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to,
// or after other on the same naive clock.
func (d NaiveDateTime) Compare(other NaiveDateTime) int {
	a, b := ToUnixSeconds(d), ToUnixSeconds(other)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// String formats as YYYY-MM-DD HH:MM:SS.
func (d NaiveDateTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		d.Year, uint8(d.Month), d.Day, d.Hour, d.Minute, d.Second)
}

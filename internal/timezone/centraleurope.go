package timezone

import (
	"github.com/tartampluch/go-gregor/internal/calendar"
)

// CentralEurope is CET (UTC+01:00) with CEST (UTC+02:00) summer time.
//
// Directive 2000/84/EC: summer time starts at 01:00 GMT on the last Sunday
// in March and ends at 01:00 GMT on the last Sunday in October.
// The rule is applied to every year, including before its adoption.
type CentralEurope struct{}

// CentralEuropeanTime returns the CET/CEST zone.
func CentralEuropeanTime() DSTZone {
	return NewDSTZone(CentralEurope{})
}

func (CentralEurope) OffsetOutsideDST() FixedOffsetFromUTC {
	return FromHoursAndMinutes(1, 0)
}

func (CentralEurope) OffsetDuringDST() FixedOffsetFromUTC {
	return FromHoursAndMinutes(2, 0)
}

// IsInDST is true on [start, end) of the year t falls in, in UTC.
// Instants past the calendar's limits lie in winter.
func (r CentralEurope) IsInDST(t UnixTimestamp) bool {
	if !inCalendarRange(int64(t)) {
		return false
	}
	d := UTC{}.FromTimestamp(t)
	switch {
	case d.Month < calendar.March || d.Month > calendar.October:
		return false
	case d.Month > calendar.March && d.Month < calendar.October:
		return true
	}
	start, end := r.Transitions(d.Year)
	return t >= start && t < end
}

// Transitions returns the instants summer time starts and ends in year.
func (CentralEurope) Transitions(year int32) (start, end UnixTimestamp) {
	return lastSundayAt1AMUTC(year, calendar.March), lastSundayAt1AMUTC(year, calendar.October)
}

func (CentralEurope) String() string {
	return "CET"
}

func lastSundayAt1AMUTC(year int32, month calendar.Month) UnixTimestamp {
	day := calendar.LastWeekdayOfMonth(year, month, calendar.Sunday)
	return UTC{}.ToUnambiguousTimestamp(calendar.NaiveDateTime{
		Year:  year,
		Month: month,
		Day:   day,
		Hour:  1,
	})
}

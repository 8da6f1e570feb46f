package timezone

import (
	"fmt"

	"github.com/tartampluch/go-gregor/internal/calendar"
)

// UTC is the Coordinated Universal Time zone.
type UTC struct{}

func (UTC) FromTimestamp(t UnixTimestamp) calendar.NaiveDateTime {
	return calendar.FromUnixSeconds(int64(t))
}

func (u UTC) ToTimestamp(d calendar.NaiveDateTime) (UnixTimestamp, error) {
	return u.ToUnambiguousTimestamp(d), nil
}

func (UTC) ToUnambiguousTimestamp(d calendar.NaiveDateTime) UnixTimestamp {
	return UnixTimestamp(calendar.ToUnixSeconds(d))
}

func (UTC) String() string {
	return "UTC"
}

// FixedOffsetFromUTC is a zone whose clocks are always the same amount
// ahead of UTC: positive east of Greenwich, negative west.
type FixedOffsetFromUTC struct {
	secondsAheadOfUTC int32
}

// FromHoursAndMinutes builds an offset. Both components carry their own sign,
// so UTC-05:30 is FromHoursAndMinutes(-5, -30).
func FromHoursAndMinutes(hours, minutes int32) FixedOffsetFromUTC {
	return FixedOffsetFromUTC{secondsAheadOfUTC: (hours*60 + minutes) * 60}
}

func (o FixedOffsetFromUTC) SecondsAheadOfUTC() int32 {
	return o.secondsAheadOfUTC
}

func (o FixedOffsetFromUTC) FromTimestamp(t UnixTimestamp) calendar.NaiveDateTime {
	// Clocks ahead of UTC show a later wall time for the same instant,
	// so the offset is added before reading the UTC table.
	return UTC{}.FromTimestamp(t + UnixTimestamp(o.secondsAheadOfUTC))
}

func (o FixedOffsetFromUTC) ToTimestamp(d calendar.NaiveDateTime) (UnixTimestamp, error) {
	return o.ToUnambiguousTimestamp(d), nil
}

func (o FixedOffsetFromUTC) ToUnambiguousTimestamp(d calendar.NaiveDateTime) UnixTimestamp {
	return UTC{}.ToUnambiguousTimestamp(d) - UnixTimestamp(o.secondsAheadOfUTC)
}

// String formats as UTC+HH:MM.
func (o FixedOffsetFromUTC) String() string {
	sign := '+'
	seconds := o.secondsAheadOfUTC
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, seconds/3600, seconds/60%60)
}

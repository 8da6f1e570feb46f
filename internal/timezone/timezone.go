// Package timezone maps naive calendar values to instants through time-zone rules.
package timezone

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-gregor/internal/calendar"
)

// UnixTimestamp counts seconds since 1970-01-01 00:00:00 UTC, negative before.
type UnixTimestamp int64

// TimeZone converts between instants and local wall-clock values.
type TimeZone interface {
	FromTimestamp(t UnixTimestamp) calendar.NaiveDateTime

	// ToTimestamp fails with ErrLocalTimeConversion when the zone's UTC offset
	// changes around d.
	ToTimestamp(d calendar.NaiveDateTime) (UnixTimestamp, error)
}

// UnambiguousTimeZone is implemented by zones whose offset never changes,
// namely UTC and FixedOffsetFromUTC. ToTimestamp never fails for them.
type UnambiguousTimeZone interface {
	TimeZone
	ToUnambiguousTimestamp(d calendar.NaiveDateTime) UnixTimestamp
}

// ErrLocalTimeConversion is returned when a local time either occurred twice
// (clocks went back) or never occurred (clocks jumped forward).
// The two cases are not told apart.
var ErrLocalTimeConversion = errors.New("local time is ambiguous or does not exist")

// LocalTimeConversionError carries the local time that could not be converted.
// It unwraps to ErrLocalTimeConversion.
type LocalTimeConversionError struct {
	Local calendar.NaiveDateTime
	Zone  string
}

func (e *LocalTimeConversionError) Error() string {
	return fmt.Sprintf("%s in %s: %v", e.Local, e.Zone, ErrLocalTimeConversion)
}

func (e *LocalTimeConversionError) Unwrap() error {
	return ErrLocalTimeConversion
}

// ErrTimestampRange is returned for instants whose local year does not fit
// in an int32.
var ErrTimestampRange = errors.New("timestamp outside the representable years")

// CheckTimestamp reports whether tz can render t. FromTimestamp panics for
// the instants it rejects.
func CheckTimestamp(tz TimeZone, t UnixTimestamp) error {
	if inCalendarRange(int64(t)) {
		local := int64(t)
		switch z := tz.(type) {
		case FixedOffsetFromUTC:
			local += int64(z.secondsAheadOfUTC)
		case DSTZone:
			local += int64(z.OffsetAt(t).secondsAheadOfUTC)
		}
		if inCalendarRange(local) {
			return nil
		}
	}
	return fmt.Errorf("%w: %d in %s", ErrTimestampRange, t, zoneName(tz))
}

func inCalendarRange(seconds int64) bool {
	return seconds >= calendar.MinUnixSeconds && seconds <= calendar.MaxUnixSeconds
}

// zoneName renders a zone for messages.
func zoneName(tz any) string {
	if s, ok := tz.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", tz)
}

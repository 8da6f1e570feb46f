// Package hosttime bridges the engine and the standard library time package.
package hosttime

import (
	"time"

	"github.com/tartampluch/go-gregor/internal/timezone"
)

// Clock abstracts time.Now() to allow deterministic testing.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FromHostTime truncates t to whole seconds since the Unix epoch.
// Instants before the epoch round towards negative infinity.
func FromHostTime(t time.Time) timezone.UnixTimestamp {
	return timezone.UnixTimestamp(t.Unix())
}

// ToHostTime returns the instant of ts in the UTC location.
func ToHostTime(ts timezone.UnixTimestamp) time.Time {
	return time.Unix(int64(ts), 0).UTC()
}

// Now reads clock as a timestamp.
func Now(clock Clock) timezone.UnixTimestamp {
	return FromHostTime(clock.Now())
}

// DateTimeFromHost renders the instant t in tz.
func DateTimeFromHost[Tz timezone.TimeZone](t time.Time, tz Tz) timezone.DateTime[Tz] {
	return timezone.FromTimestamp(FromHostTime(t), tz)
}

// DateTimeToHost returns the instant dt denotes. Only unambiguous zones are
// accepted so the conversion cannot fail.
func DateTimeToHost[Tz timezone.UnambiguousTimeZone](dt timezone.DateTime[Tz]) time.Time {
	return ToHostTime(timezone.UnambiguousTimestamp(dt))
}

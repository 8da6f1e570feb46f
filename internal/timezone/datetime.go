package timezone

import (
	"fmt"

	"github.com/tartampluch/go-gregor/internal/calendar"
)

// DateTime is a naive value together with the zone it is expressed in.
// Naive must be the rendering of some instant under Zone's rules.
type DateTime[Tz TimeZone] struct {
	Naive calendar.NaiveDateTime
	Zone  Tz
}

// New validates the fields and binds them to tz. It does not check that the
// local time exists in tz; ToTimestamp reports that.
func New[Tz TimeZone](tz Tz, year int32, month calendar.Month, day, hour, minute, second uint8) (DateTime[Tz], error) {
	naive, err := calendar.NewNaiveDateTime(year, month, day, hour, minute, second)
	if err != nil {
		return DateTime[Tz]{}, err
	}
	return DateTime[Tz]{Naive: naive, Zone: tz}, nil
}

// FromTimestamp renders t in tz.
func FromTimestamp[Tz TimeZone](t UnixTimestamp, tz Tz) DateTime[Tz] {
	return DateTime[Tz]{Naive: tz.FromTimestamp(t), Zone: tz}
}

// ToTimestamp returns the instant dt denotes.
func (dt DateTime[Tz]) ToTimestamp() (UnixTimestamp, error) {
	return dt.Zone.ToTimestamp(dt.Naive)
}

func (dt DateTime[Tz]) Year() int32 {
	return dt.Naive.Year
}

func (dt DateTime[Tz]) Month() calendar.Month {
	return dt.Naive.Month
}

func (dt DateTime[Tz]) Day() uint8 {
	return dt.Naive.Day
}

func (dt DateTime[Tz]) Hour() uint8 {
	return dt.Naive.Hour
}

func (dt DateTime[Tz]) Minute() uint8 {
	return dt.Naive.Minute
}

func (dt DateTime[Tz]) Second() uint8 {
	return dt.Naive.Second
}

func (dt DateTime[Tz]) DayOfTheWeek() calendar.DayOfTheWeek {
	return dt.Naive.DayOfTheWeek()
}

func (dt DateTime[Tz]) String() string {
	return fmt.Sprintf("DateTime(%s, %s)", zoneName(dt.Zone), dt.Naive)
}

// ConvertTimeZone expresses the instant of dt in another zone.
// It fails when dt itself is ambiguous or nonexistent.
func ConvertTimeZone[From, To TimeZone](dt DateTime[From], tz To) (DateTime[To], error) {
	t, err := dt.ToTimestamp()
	if err != nil {
		return DateTime[To]{}, err
	}
	return FromTimestamp(t, tz), nil
}

// UnambiguousTimestamp is ToTimestamp for zones that never fail.
func UnambiguousTimestamp[Tz UnambiguousTimeZone](dt DateTime[Tz]) UnixTimestamp {
	return dt.Zone.ToUnambiguousTimestamp(dt.Naive)
}

// ConvertUnambiguous is ConvertTimeZone for source zones that never fail.
func ConvertUnambiguous[From UnambiguousTimeZone, To TimeZone](dt DateTime[From], tz To) DateTime[To] {
	return FromTimestamp(UnambiguousTimestamp(dt), tz)
}

package calendar

import "fmt"

// DayOfTheWeek is numbered per ISO 8601: 1 is Monday, 7 is Sunday.
type DayOfTheWeek uint8

const (
	Monday DayOfTheWeek = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayOfTheWeekNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// unixEpochDayOfTheWeek is the day of the week of 1970-01-01.
const unixEpochDayOfTheWeek = Thursday

// DayOfTheWeekFromISONumber maps 1..7 to a day. Other values report false.
func DayOfTheWeekFromISONumber(n uint8) (DayOfTheWeek, bool) {
	if n < 1 || n > 7 {
		return 0, false
	}
	return DayOfTheWeek(n), true
}

// ISONumber returns 1 for Monday through 7 for Sunday.
func (d DayOfTheWeek) ISONumber() uint8 {
	return uint8(d)
}

// Add moves the day by a signed number of days, wrapping around the week.
func (d DayOfTheWeek) Add(days int64) DayOfTheWeek {
	zeroBased := int64(d) - 1 + days
	return DayOfTheWeek(PositiveRem(zeroBased, 7) + 1)
}

func (d DayOfTheWeek) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("DayOfTheWeek(%d)", uint8(d))
	}
	return dayOfTheWeekNames[d-1]
}

package calendar

import "fmt"

// Month of the year, numbered 1 (January) to 12 (December).
type Month uint8

const (
	January Month = iota + 1
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

// monthSource is the only hand-written month data.
// Everything else in monthTable is derived from it once, at package initialization.
var monthSource = [12]struct {
	name         string
	lengthCommon uint8
	lengthLeap   uint8
}{
	{"January", 31, 31},
	{"February", 28, 29},
	{"March", 31, 31},
	{"April", 30, 30},
	{"May", 31, 31},
	{"June", 30, 30},
	{"July", 31, 31},
	{"August", 31, 31},
	{"September", 30, 30},
	{"October", 31, 31},
	{"November", 30, 30},
	{"December", 31, 31},
}

// monthInfo holds the derived facts for one month.
// Index 0 of the per-kind arrays is Common, index 1 is Leap.
type monthInfo struct {
	name     string
	number   uint8
	length   [2]uint8
	firstDay [2]int32 // 0-based day of the year of the 1st
	lastDay  [2]int32 // 0-based day of the year of the last day
}

var monthTable = buildMonthTable()

func buildMonthTable() [12]monthInfo {
	var table [12]monthInfo
	var runningSum [2]int32
	for i, src := range monthSource {
		info := monthInfo{
			name:   src.name,
			number: uint8(i + 1),
			length: [2]uint8{src.lengthCommon, src.lengthLeap},
		}
		for k := range runningSum {
			runningSum[k] += int32(info.length[k])
			info.firstDay[k] = runningSum[k] - int32(info.length[k])
			info.lastDay[k] = runningSum[k] - 1
		}
		table[i] = info
	}
	return table
}

func (m Month) info() monthInfo {
	if m < January || m > December {
		panic(fmt.Sprintf("calendar: invalid month %d", uint8(m)))
	}
	return monthTable[m-1]
}

// MonthFromNumber maps 1..12 to a Month. Other values report false.
func MonthFromNumber(n uint8) (Month, bool) {
	if n < 1 || n > 12 {
		return 0, false
	}
	return Month(n), true
}

// Number returns the 1-based ordinal of the month.
func (m Month) Number() uint8 {
	return m.info().number
}

// Length returns the number of days of the month in a year of the given kind.
func (m Month) Length(kind YearKind) uint8 {
	return m.info().length[kind]
}

// DaysSinceJanuary1st returns how many days of the year precede the 1st of this month.
func (m Month) DaysSinceJanuary1st(kind YearKind) int32 {
	return m.info().firstDay[kind]
}

func (m Month) String() string {
	if m < January || m > December {
		return fmt.Sprintf("Month(%d)", uint8(m))
	}
	return monthTable[m-1].name
}

// MonthFromDayOfTheYear resolves a 0-based day of the year (0 is January 1st)
// to a month and a 1-based day of that month.
//
// An offset outside the year can only come from an arithmetic bug upstream,
// so it panics instead of returning an error.
func MonthFromDayOfTheYear(dayOfTheYear int32, kind YearKind) (Month, uint8) {
	for i := range monthTable {
		info := &monthTable[i]
		if dayOfTheYear >= info.firstDay[kind] && dayOfTheYear <= info.lastDay[kind] {
			return Month(info.number), uint8(dayOfTheYear-info.firstDay[kind]) + 1
		}
	}
	panic(fmt.Sprintf("calendar: day of the year %d out of range for %s year", dayOfTheYear, kind))
}

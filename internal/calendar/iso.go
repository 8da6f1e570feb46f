package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseISO reads the fixed forms YYYY-MM-DD and YYYY-MM-DDTHH:MM:SS
// (a space may replace the T). The year may carry a sign and any number of
// digits; other fields are numeric. The result is validated.
func ParseISO(s string) (NaiveDateTime, error) {
	datePart, timePart, hasTime := strings.Cut(strings.TrimSpace(s), "T")
	if !hasTime {
		datePart, timePart, hasTime = strings.Cut(datePart, " ")
	}

	sign := ""
	if strings.HasPrefix(datePart, "-") || strings.HasPrefix(datePart, "+") {
		sign, datePart = datePart[:1], datePart[1:]
	}
	dateFields := strings.Split(datePart, "-")
	if len(dateFields) != 3 {
		return NaiveDateTime{}, fmt.Errorf("%w: %q", ErrMalformed, s)
	}

	year, err := strconv.ParseInt(sign+dateFields[0], 10, 32)
	if err != nil {
		return NaiveDateTime{}, fmt.Errorf("%w: year in %q", ErrMalformed, s)
	}

	fields := make([]uint8, 0, 5)
	rest := dateFields[1:]
	if hasTime {
		timeFields := strings.Split(timePart, ":")
		if len(timeFields) != 3 {
			return NaiveDateTime{}, fmt.Errorf("%w: %q", ErrMalformed, s)
		}
		rest = append(rest, timeFields...)
	}
	for _, f := range rest {
		n, err := strconv.ParseUint(f, 10, 8)
		if err != nil {
			return NaiveDateTime{}, fmt.Errorf("%w: field %q in %q", ErrMalformed, f, s)
		}
		fields = append(fields, uint8(n))
	}
	for len(fields) < 5 {
		fields = append(fields, 0)
	}

	return NewNaiveDateTime(int32(year), Month(fields[0]), fields[1], fields[2], fields[3], fields[4])
}

// ISO formats d as YYYY-MM-DDTHH:MM:SS, the form ParseISO reads.
func (d NaiveDateTime) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d",
		d.Year, uint8(d.Month), d.Day, d.Hour, d.Minute, d.Second)
}

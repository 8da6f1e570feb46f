package timezone

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownZone is returned by ParseZone for names it does not recognise.
var ErrUnknownZone = errors.New("unknown time zone")

// ParseZone resolves a zone identifier: "UTC" (also "Z", "GMT"), the Central
// European rule ("CET", "CEST", "Europe/Central"), or a fixed offset such as
// "+02:00", "-0530", "+2" or "UTC+01:00".
func ParseZone(name string) (TimeZone, error) {
	trimmed := strings.TrimSpace(name)
	switch strings.ToUpper(trimmed) {
	case "", "UTC", "Z", "GMT":
		return UTC{}, nil
	case "CET", "CEST", "EUROPE/CENTRAL":
		return CentralEuropeanTime(), nil
	}

	offset := trimmed
	for _, prefix := range []string{"UTC", "GMT"} {
		if len(offset) > len(prefix) && strings.EqualFold(offset[:len(prefix)], prefix) {
			offset = offset[len(prefix):]
			break
		}
	}
	fixed, err := parseOffset(offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownZone, name)
	}
	return fixed, nil
}

func parseOffset(s string) (FixedOffsetFromUTC, error) {
	if len(s) < 2 || (s[0] != '+' && s[0] != '-') {
		return FixedOffsetFromUTC{}, errors.New("missing sign")
	}
	negative := s[0] == '-'
	digits := strings.ReplaceAll(s[1:], ":", "")

	var hoursPart, minutesPart string
	switch len(digits) {
	case 1, 2:
		hoursPart = digits
	case 4:
		hoursPart, minutesPart = digits[:2], digits[2:]
	default:
		return FixedOffsetFromUTC{}, errors.New("bad length")
	}

	hours, err := strconv.ParseUint(hoursPart, 10, 8)
	if err != nil || hours > 23 {
		return FixedOffsetFromUTC{}, errors.New("bad hours")
	}
	var minutes uint64
	if minutesPart != "" {
		minutes, err = strconv.ParseUint(minutesPart, 10, 8)
		if err != nil || minutes > 59 {
			return FixedOffsetFromUTC{}, errors.New("bad minutes")
		}
	}

	h, m := int32(hours), int32(minutes)
	if negative {
		h, m = -h, -m
	}
	return FromHoursAndMinutes(h, m), nil
}

package timezone

import (
	"github.com/tartampluch/go-gregor/internal/calendar"
)

// DaylightSaving is a rule that switches a zone between two fixed offsets.
type DaylightSaving interface {
	OffsetOutsideDST() FixedOffsetFromUTC
	OffsetDuringDST() FixedOffsetFromUTC
	IsInDST(t UnixTimestamp) bool
}

// DSTZone turns a DaylightSaving rule into a TimeZone.
type DSTZone struct {
	Rule DaylightSaving
}

func NewDSTZone(rule DaylightSaving) DSTZone {
	return DSTZone{Rule: rule}
}

// OffsetAt returns the offset in effect at t.
func (z DSTZone) OffsetAt(t UnixTimestamp) FixedOffsetFromUTC {
	if z.Rule.IsInDST(t) {
		return z.Rule.OffsetDuringDST()
	}
	return z.Rule.OffsetOutsideDST()
}

func (z DSTZone) FromTimestamp(t UnixTimestamp) calendar.NaiveDateTime {
	return z.OffsetAt(t).FromTimestamp(t)
}

// ToTimestamp reads d under both offsets. The instant is one of the two
// candidates; the rule agrees on both only when no offset change lies
// between them. Otherwise d falls in the transition window: repeated when
// clocks go back, skipped when they go forward.
func (z DSTZone) ToTimestamp(d calendar.NaiveDateTime) (UnixTimestamp, error) {
	assumingOutside := z.Rule.OffsetOutsideDST().ToUnambiguousTimestamp(d)
	assumingDuring := z.Rule.OffsetDuringDST().ToUnambiguousTimestamp(d)

	outsideInDST := z.Rule.IsInDST(assumingOutside)
	duringInDST := z.Rule.IsInDST(assumingDuring)

	switch {
	case outsideInDST && duringInDST:
		return assumingDuring, nil
	case !outsideInDST && !duringInDST:
		return assumingOutside, nil
	default:
		return 0, &LocalTimeConversionError{Local: d, Zone: z.String()}
	}
}

func (z DSTZone) String() string {
	return zoneName(z.Rule)
}

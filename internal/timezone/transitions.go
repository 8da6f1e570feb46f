package timezone

import (
	"github.com/tartampluch/go-gregor/internal/calendar"
)

// TransitionRule is a DaylightSaving rule that can list its yearly switches.
type TransitionRule interface {
	DaylightSaving
	Transitions(year int32) (start, end UnixTimestamp)
}

// Transition is one change of UTC offset.
type Transition struct {
	At      UnixTimestamp
	Before  FixedOffsetFromUTC
	After   FixedOffsetFromUTC
	IntoDST bool
}

// TransitionsIn lists the offset changes of rule for the years from..to,
// both included, in chronological order. Two transitions are allocated per
// year, so callers bound the span.
func TransitionsIn(rule TransitionRule, from, to int32) []Transition {
	if to < from {
		return nil
	}
	outside, during := rule.OffsetOutsideDST(), rule.OffsetDuringDST()
	// Counting in int64 lets the loop end when to is math.MaxInt32.
	last := int64(to)
	transitions := make([]Transition, 0, 2*(last-int64(from)+1))
	for year := int64(from); year <= last; year++ {
		start, end := rule.Transitions(int32(year))
		transitions = append(transitions,
			Transition{At: start, Before: outside, After: during, IntoDST: true},
			Transition{At: end, Before: during, After: outside, IntoDST: false},
		)
	}
	return transitions
}

// LocalBefore is the wall clock just before the change, at the second the
// old offset stops applying.
func (t Transition) LocalBefore() calendar.NaiveDateTime {
	return t.Before.FromTimestamp(t.At - 1)
}

// LocalAfter is the wall clock at the instant of the change under the new offset.
func (t Transition) LocalAfter() calendar.NaiveDateTime {
	return t.After.FromTimestamp(t.At)
}

// RuleOf returns the transition rule behind tz, if it has one.
func RuleOf(tz TimeZone) (TransitionRule, bool) {
	z, ok := tz.(DSTZone)
	if !ok {
		return nil, false
	}
	rule, ok := z.Rule.(TransitionRule)
	return rule, ok
}

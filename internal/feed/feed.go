// Package feed publishes the daylight saving transitions of a zone as an
// iCalendar file.
package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-gregor/internal/calendar"
	"github.com/tartampluch/go-gregor/internal/config"
	"github.com/tartampluch/go-gregor/internal/hosttime"
	"github.com/tartampluch/go-gregor/internal/names"
	"github.com/tartampluch/go-gregor/internal/timezone"
)

// Generator builds the feed around the current year of its clock.
type Generator struct {
	Clock     hosttime.Clock   // Interface for time mocking.
	Localizer *names.Localizer // Optional; English fallbacks when nil.

	Rule timezone.TransitionRule
	TZID string // VTIMEZONE identifier, e.g. "CET".

	// Years of the feed around the current one.
	YearsBefore int
	YearsAfter  int
}

// Stats summarises one generation run.
type Stats struct {
	FromYear int32
	ToYear   int32
	Events   int
}

// Generate encodes the VTIMEZONE and one VEVENT per transition.
func (g *Generator) Generate(ctx context.Context) ([]byte, Stats, error) {
	start := time.Now()
	if g.Rule == nil {
		return nil, Stats{}, errors.New(config.ErrNoTransitions)
	}
	if g.YearsBefore < 0 || g.YearsAfter < 0 || g.YearsBefore+g.YearsAfter+1 > config.MaxFeedYears {
		return nil, Stats{}, errors.New(config.ErrYearRange)
	}

	clk := g.Clock
	if clk == nil {
		clk = hosttime.RealClock{}
	}
	now := hosttime.Now(clk)
	currentYear := timezone.UTC{}.FromTimestamp(now).Year
	stats := Stats{
		FromYear: currentYear - int32(g.YearsBefore),
		ToYear:   currentYear + int32(g.YearsAfter),
	}
	transitions := timezone.TransitionsIn(g.Rule, stats.FromYear, stats.ToYear)

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	cal.Children = append(cal.Children, g.timezoneComponent(transitions))

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(hosttime.ToHostTime(now))

	for _, tr := range transitions {
		if err := ctx.Err(); err != nil {
			return nil, Stats{}, err
		}
		event := g.transitionEvent(tr)
		event.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, event.Component)
		stats.Events++
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, Stats{}, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Info(config.MsgFeedGenerated,
		config.LogKeyComponent, config.CompFeed,
		config.LogKeyZone, g.TZID,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyEvents, stats.Events),
			slog.String(config.LogKeyYears, fmt.Sprintf("%d-%d", stats.FromYear, stats.ToYear)),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), stats, nil
}

// timezoneComponent describes the rule as STANDARD and DAYLIGHT observances.
// The first onset of each kind is the DTSTART, later ones are RDATEs.
func (g *Generator) timezoneComponent(transitions []timezone.Transition) *ical.Component {
	tz := ical.NewComponent(ical.CompTimezone)
	tz.Props.SetText(config.PropTZID, g.TZID)

	observances := map[bool]*ical.Component{}
	for _, tr := range transitions {
		obs, seen := observances[tr.IntoDST]
		onset := ical.NewProp(config.PropDTStart)
		if seen {
			onset = ical.NewProp(config.PropRDate)
		}
		// Onsets are written in the wall clock of the offset being left.
		onset.Value = localICalTime(tr.Before.FromTimestamp(tr.At))

		if !seen {
			name := config.ICalStandard
			if tr.IntoDST {
				name = config.ICalDaylight
			}
			obs = ical.NewComponent(name)
			from := ical.NewProp(config.PropTZOffsetFrom)
			from.Value = icalOffset(tr.Before)
			to := ical.NewProp(config.PropTZOffsetTo)
			to.Value = icalOffset(tr.After)
			obs.Props.Set(from)
			obs.Props.Set(to)
			obs.Props.SetText(config.PropTZName, tr.After.String())
			obs.Props.Set(onset)
			observances[tr.IntoDST] = obs
			tz.Children = append(tz.Children, obs)
			continue
		}
		obs.Props.Add(onset)
	}
	return tz
}

func (g *Generator) transitionEvent(tr timezone.Transition) *ical.Event {
	year := timezone.UTC{}.FromTimestamp(tr.At).Year
	direction, summaryKey, summaryFallback := config.ICalOutOfDST, config.TKeyEvtOutOfDST, config.FallbackOutOfDST
	if tr.IntoDST {
		direction, summaryKey, summaryFallback = config.ICalIntoDST, config.TKeyEvtIntoDST, config.FallbackIntoDST
	}

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, g.TZID, direction, year, config.ICalDomain))

	offset := tr.After.String()
	summary := g.Localizer.MsgOr(summaryKey, map[string]any{"Offset": offset}, fmt.Sprintf(summaryFallback, offset))
	event.Props.SetText(config.PropSummary, summary)

	before, after := clock(tr.Before.FromTimestamp(tr.At)), clock(tr.After.FromTimestamp(tr.At))
	description := g.Localizer.MsgOr(config.TKeyEvtDesc,
		map[string]any{"Before": before, "After": after},
		fmt.Sprintf(config.FallbackDesc, before, after))
	event.Props.SetText(config.PropDescription, description)

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDateTime(hosttime.ToHostTime(tr.At))
	event.Props.Set(dtStartProp)

	transp := ical.NewProp(config.PropTransp)
	transp.Value = config.ICalTransp
	event.Props.Set(transp)

	return event
}

func localICalTime(d calendar.NaiveDateTime) string {
	return fmt.Sprintf(config.ICalLocalLayout, d.Year, uint8(d.Month), d.Day, d.Hour, d.Minute, d.Second)
}

func clock(d calendar.NaiveDateTime) string {
	return fmt.Sprintf(config.FormatClock, d.Hour, d.Minute)
}

// icalOffset formats an offset as +HHMM.
func icalOffset(o timezone.FixedOffsetFromUTC) string {
	sign := '+'
	seconds := o.SecondsAheadOfUTC()
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	return fmt.Sprintf(config.FormatICalOff, sign, seconds/3600, seconds/60%60)
}

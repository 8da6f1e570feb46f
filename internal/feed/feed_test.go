package feed_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-gregor/internal/config"
	"github.com/tartampluch/go-gregor/internal/feed"
	"github.com/tartampluch/go-gregor/internal/names"
	"github.com/tartampluch/go-gregor/internal/timezone"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func newGenerator() *feed.Generator {
	return &feed.Generator{
		Clock:       MockClock{CurrentTime: time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)},
		Rule:        timezone.CentralEurope{},
		TZID:        "CET",
		YearsBefore: 1,
		YearsAfter:  1,
	}
}

func decode(t *testing.T, data []byte) *ical.Calendar {
	t.Helper()
	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)
	return cal
}

func findChild(c *ical.Component, name string) *ical.Component {
	for _, child := range c.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

func values(c *ical.Component, prop string) []string {
	var out []string
	for _, p := range c.Props.Values(prop) {
		out = append(out, p.Value)
	}
	return out
}

func TestGenerate_Headers(t *testing.T) {
	data, stats, err := newGenerator().Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2024), stats.FromYear)
	assert.Equal(t, int32(2026), stats.ToYear)
	assert.Equal(t, 6, stats.Events)

	cal := decode(t, data)
	assert.Equal(t, config.ICalVersion, cal.Props.Get(config.PropVersion).Value)
	assert.Equal(t, config.ICalProdid, cal.Props.Get(config.PropProdid).Value)
	assert.Equal(t, config.ICalMethod, cal.Props.Get(config.PropMethod).Value)
	assert.NotNil(t, cal.Props.Get(config.PropRefresh))
}

func TestGenerate_TimeZoneComponent(t *testing.T) {
	data, _, err := newGenerator().Generate(context.Background())
	require.NoError(t, err)
	cal := decode(t, data)

	tz := findChild(cal.Component, ical.CompTimezone)
	require.NotNil(t, tz)
	assert.Equal(t, "CET", tz.Props.Get(config.PropTZID).Value)

	daylight := findChild(tz, config.ICalDaylight)
	require.NotNil(t, daylight)
	assert.Equal(t, "+0100", daylight.Props.Get(config.PropTZOffsetFrom).Value)
	assert.Equal(t, "+0200", daylight.Props.Get(config.PropTZOffsetTo).Value)
	assert.Equal(t, "20240331T020000", daylight.Props.Get(config.PropDTStart).Value)
	assert.Equal(t, []string{"20250330T020000", "20260329T020000"}, values(daylight, config.PropRDate))

	standard := findChild(tz, config.ICalStandard)
	require.NotNil(t, standard)
	assert.Equal(t, "+0200", standard.Props.Get(config.PropTZOffsetFrom).Value)
	assert.Equal(t, "+0100", standard.Props.Get(config.PropTZOffsetTo).Value)
	assert.Equal(t, "20241027T030000", standard.Props.Get(config.PropDTStart).Value)
	assert.Equal(t, []string{"20251026T030000", "20261025T030000"}, values(standard, config.PropRDate))
}

func TestGenerate_Events(t *testing.T) {
	data, _, err := newGenerator().Generate(context.Background())
	require.NoError(t, err)
	events := decode(t, data).Events()
	require.Len(t, events, 6)

	tests := []struct {
		index   int
		uid     string
		start   time.Time
		summary string
		desc    string
	}{
		{0, "CET-dst-2024@gogregor", time.Unix(1_711_846_800, 0), "Clocks go forward (UTC+02:00)", "Local time jumps from 02:00 to 03:00."},
		{1, "CET-std-2024@gogregor", time.Unix(1_729_990_800, 0), "Clocks go back (UTC+01:00)", "Local time jumps from 03:00 to 02:00."},
		{2, "CET-dst-2025@gogregor", time.Unix(1_743_296_400, 0), "Clocks go forward (UTC+02:00)", "Local time jumps from 02:00 to 03:00."},
		{5, "CET-std-2026@gogregor", time.Unix(1_792_890_000, 0), "Clocks go back (UTC+01:00)", "Local time jumps from 03:00 to 02:00."},
	}

	for _, tt := range tests {
		t.Run(tt.uid, func(t *testing.T) {
			e := events[tt.index]
			assert.Equal(t, tt.uid, e.Props.Get(config.PropUID).Value)

			start, err := e.DateTimeStart(time.UTC)
			require.NoError(t, err)
			assert.True(t, tt.start.Equal(start), "got %s", start)

			summary, err := e.Props.Text(config.PropSummary)
			require.NoError(t, err)
			assert.Equal(t, tt.summary, summary)

			desc, err := e.Props.Text(config.PropDescription)
			require.NoError(t, err)
			assert.Equal(t, tt.desc, desc)

			assert.Equal(t, config.ICalTransp, e.Props.Get(config.PropTransp).Value)
			assert.NotNil(t, e.Props.Get(config.PropDTStamp))
		})
	}
}

func TestGenerate_Localized(t *testing.T) {
	bundle, err := names.LoadBundle()
	require.NoError(t, err)
	loc, err := bundle.Localizer("fr")
	require.NoError(t, err)

	g := newGenerator()
	g.Localizer = loc
	data, _, err := g.Generate(context.Background())
	require.NoError(t, err)

	events := decode(t, data).Events()
	require.NotEmpty(t, events)
	summary, err := events[0].Props.Text(config.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "Passage à l'heure d'été (UTC+02:00)", summary)
}

func TestGenerate_SingleYear(t *testing.T) {
	g := newGenerator()
	g.YearsBefore, g.YearsAfter = 0, 0

	data, stats, err := g.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Events)

	tz := findChild(decode(t, data).Component, ical.CompTimezone)
	require.NotNil(t, tz)
	assert.Empty(t, values(findChild(tz, config.ICalDaylight), config.PropRDate))
}

func TestGenerate_Errors(t *testing.T) {
	t.Run("no rule", func(t *testing.T) {
		g := newGenerator()
		g.Rule = nil
		_, _, err := g.Generate(context.Background())
		assert.EqualError(t, err, config.ErrNoTransitions)
	})

	t.Run("negative range", func(t *testing.T) {
		g := newGenerator()
		g.YearsBefore = -1
		_, _, err := g.Generate(context.Background())
		assert.EqualError(t, err, config.ErrYearRange)
	})

	t.Run("range too large", func(t *testing.T) {
		g := newGenerator()
		g.YearsAfter = config.MaxFeedYears
		_, _, err := g.Generate(context.Background())
		assert.EqualError(t, err, config.ErrYearRange)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := newGenerator().Generate(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-gregor/internal/calendar"
	"github.com/tartampluch/go-gregor/internal/config"
	"github.com/tartampluch/go-gregor/internal/feed"
	"github.com/tartampluch/go-gregor/internal/hosttime"
	"github.com/tartampluch/go-gregor/internal/names"
	"github.com/tartampluch/go-gregor/internal/timezone"
)

// cli holds the state shared by the subcommands once flags are parsed.
type cli struct {
	configPath string
	debug      bool
	zoneFlag   string
	langFlag   string

	clock     hosttime.Clock
	logCloser io.Closer

	settings config.Settings
	zone     timezone.TimeZone
	bundle   *names.Bundle
	names    *names.Localizer
}

func newCLI() *cli {
	return &cli{clock: hosttime.RealClock{}}
}

func (c *cli) close() {
	if c.logCloser != nil {
		_ = c.logCloser.Close() // Best effort close
		c.logCloser = nil
	}
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   config.CLIName,
		Short: "Proleptic Gregorian calendar and time-zone arithmetic",
		Long: `go-gregor converts between Unix timestamps and civil date-times
in UTC, fixed offsets and the Central European daylight saving rule.

Zones:
  UTC            - also Z or GMT
  CET            - Central European Time with summer time (also CEST)
  +02:00, -0530  - fixed offsets (with or without a UTC prefix)`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.prepare,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, config.FlagConfig, "", config.FlagDescConfig)
	flags.BoolVar(&c.debug, config.FlagDebug, false, config.FlagDescDebug)
	flags.StringVar(&c.zoneFlag, config.FlagZone, "", config.FlagDescZone)
	flags.StringVar(&c.langFlag, config.FlagLanguage, "", config.FlagDescLanguage)

	root.AddCommand(
		c.convertCommand(),
		c.timestampCommand(),
		c.weekdayCommand(),
		c.transitionsCommand(),
		c.feedCommand(),
		c.serveCommand(),
		c.versionCommand(),
	)
	return root
}

// prepare sets up logging, then resolves settings, zone and names.
// Flags win over the environment, which wins over the settings file.
func (c *cli) prepare(cmd *cobra.Command, _ []string) error {
	c.close()
	c.logCloser = setupLogging(cmd.ErrOrStderr(), c.debug)

	settings, err := config.LoadSettings(c.configPath)
	if err != nil {
		return err
	}
	if c.zoneFlag != "" {
		settings.Zone = c.zoneFlag
	}
	if c.langFlag != "" {
		settings.Language = c.langFlag
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	zone, err := timezone.ParseZone(settings.Zone)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrZone, err)
	}

	bundle, err := names.LoadBundle()
	if err != nil {
		return err
	}
	localizer, err := bundle.Localizer(settings.Language)
	if err != nil {
		return err
	}

	c.settings, c.zone, c.bundle, c.names = settings, zone, bundle, localizer
	return nil
}

func (c *cli) convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <timestamp>",
		Short: "Render a Unix timestamp as a local date-time",
		Example: `  go-gregor convert 1468769652 --tz CET
  go-gregor convert -- -1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", config.ErrTimestampParse, err)
			}
			ts := timezone.UnixTimestamp(seconds)
			if err := timezone.CheckTimestamp(c.zone, ts); err != nil {
				return fmt.Errorf("%s: %w", config.ErrTimestampParse, err)
			}
			local := c.zone.FromTimestamp(ts)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", local.ISO(), c.zone, c.names.LongDate(local))
			return err
		},
	}
}

func (c *cli) timestampCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "timestamp <date>",
		Short:   "Resolve a local YYYY-MM-DDTHH:MM:SS to a Unix timestamp",
		Example: `  go-gregor timestamp 2016-07-17T17:34:12 --tz +02:00`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			local, err := calendar.ParseISO(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", config.ErrDateParse, err)
			}
			ts, err := c.zone.ToTimestamp(local)
			if err != nil {
				return fmt.Errorf("%s: %w", config.ErrLocalTime, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), int64(ts))
			return err
		},
	}
}

func (c *cli) weekdayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "weekday <date>",
		Short: "Print the day of the week of a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := calendar.ParseISO(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", config.ErrDateParse, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), c.names.Weekday(d.DayOfTheWeek()))
			return err
		},
	}
}

func (c *cli) transitionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "transitions <year> [last-year]",
		Short: "List the daylight saving transitions of the zone",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, ok := timezone.RuleOf(c.zone)
			if !ok {
				return fmt.Errorf("%s: %s", config.ErrNoTransitions, c.zone)
			}
			from, err := parseYear(args[0])
			if err != nil {
				return err
			}
			to := from
			if len(args) == 2 {
				if to, err = parseYear(args[1]); err != nil {
					return err
				}
			}
			if to < from || int64(to)-int64(from) >= config.MaxFeedYears {
				return errors.New(config.ErrYearRange)
			}

			out := cmd.OutOrStdout()
			for _, tr := range timezone.TransitionsIn(rule, from, to) {
				if _, err := fmt.Fprintf(out, "%d %s -> %s %s -> %s\n",
					int64(tr.At), tr.LocalBefore().ISO(), tr.LocalAfter().ISO(), tr.Before, tr.After); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (c *cli) feedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "feed",
		Short: "Write the iCalendar feed of the zone's transitions to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen, err := c.generator()
			if err != nil {
				return err
			}
			data, _, err := gen.Generate(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s: %w", config.ErrFeedGenerate, err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func (c *cli) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// No settings needed.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}

// generator builds the feed generator for the configured zone.
func (c *cli) generator() (*feed.Generator, error) {
	rule, ok := timezone.RuleOf(c.zone)
	if !ok {
		return nil, fmt.Errorf("%s: %s", config.ErrNoTransitions, c.zone)
	}
	return &feed.Generator{
		Clock:       c.clock,
		Localizer:   c.names,
		Rule:        rule,
		TZID:        fmt.Sprint(c.zone),
		YearsBefore: c.settings.YearsBefore,
		YearsAfter:  c.settings.YearsAfter,
	}, nil
}

func parseYear(s string) (int32, error) {
	year, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", config.ErrYearParse, err)
	}
	return int32(year), nil
}

package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-gregor/internal/config"
	"github.com/tartampluch/go-gregor/internal/feed"
	"github.com/tartampluch/go-gregor/internal/server"
)

func (c *cli) serveCommand() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the feed and the conversion API over HTTP",
		Long: `Serve the iCalendar feed at / and the JSON endpoints

  /convert?ts=<seconds>&tz=<zone>&lang=<lang>
  /timestamp?date=<YYYY-MM-DDTHH:MM:SS>&tz=<zone>&lang=<lang>

on 127.0.0.1. The feed is regenerated every refresh_minutes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port != "" {
				if err := config.ValidatePort(port); err != nil {
					return err
				}
				c.settings.Port = port
			}
			logStartupInfo()

			ctx := cmd.Context()
			srv := server.NewCalendarServer(c.settings.Port)
			srv.Zone = c.zone
			srv.Names = c.bundle

			if gen, err := c.generator(); err == nil {
				go runFeedWorker(ctx, gen, srv, refreshInterval(c.settings.RefreshMin))
			} else {
				// Conversions still work; the feed route stays unavailable.
				slog.Warn(config.ErrNoTransitions,
					config.LogKeyComponent, config.CompMain,
					config.LogKeyZone, c.settings.Zone,
				)
			}

			if err := srv.Start(ctx); err != nil {
				return err
			}
			slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
			return nil
		},
	}
	cmd.Flags().StringVar(&port, config.FlagPort, "", config.FlagDescPort)
	return cmd
}

// refreshInterval converts the settings value, falling back to the default
// for zero.
func refreshInterval(minutes int) time.Duration {
	if minutes <= 0 {
		minutes = config.DefaultRefreshMin
	}
	return time.Duration(minutes) * time.Minute
}

// runFeedWorker publishes the feed immediately, then again on every tick,
// so the served year window follows the clock.
func runFeedWorker(ctx context.Context, gen *feed.Generator, srv *server.CalendarServer, interval time.Duration) {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	refreshFeed(ctx, gen, srv)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, interval)

	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-ticker.C:
			refreshFeed(ctx, gen, srv)
		}
	}
}

func refreshFeed(ctx context.Context, gen *feed.Generator, srv *server.CalendarServer) {
	data, _, err := gen.Generate(ctx)
	if err != nil {
		if ctx.Err() == nil {
			slog.Error(config.ErrFeedGenerate,
				config.LogKeyComponent, config.CompWorker,
				config.LogKeyError, err,
			)
		}
		return
	}
	srv.Update(data)
}

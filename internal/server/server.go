// Package server publishes the transition feed and the conversion endpoints over HTTP.
package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-gregor/internal/calendar"
	"github.com/tartampluch/go-gregor/internal/config"
	"github.com/tartampluch/go-gregor/internal/names"
	"github.com/tartampluch/go-gregor/internal/timezone"
)

// cacheItem stores the rendered calendar and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// CalendarServer serves the iCalendar feed and the conversion API.
type CalendarServer struct {
	// cache uses atomic.Pointer for lock-free reads.
	// The feed is read by every client but only replaced by the refresh worker.
	cache atomic.Pointer[cacheItem]
	Port  string

	// Zone is used when a request carries no tz parameter. Nil means UTC.
	Zone timezone.TimeZone
	// Names localizes weekday and date strings when a lang parameter is given.
	Names *names.Bundle
}

// Conversion is the JSON body of /convert and /timestamp.
type Conversion struct {
	Timestamp timezone.UnixTimestamp `json:"timestamp"`
	Zone      string                 `json:"zone"`
	Local     string                 `json:"local"`
	Weekday   string                 `json:"weekday"`
	LongDate  string                 `json:"long_date,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}

// NewCalendarServer creates a new instance of the server.
func NewCalendarServer(port string) *CalendarServer {
	return &CalendarServer{
		Port: port,
	}
}

// Handler returns the routes of the server.
func (s *CalendarServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.handleCalendarRequest)
	mux.HandleFunc(config.RouteConvert, s.handleConvert)
	mux.HandleFunc(config.RouteTimestamp, s.handleTimestamp)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(config.HeaderServer, config.UserAgent)
		mux.ServeHTTP(w, r)
	})
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *CalendarServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the served feed.
func (s *CalendarServer) Update(data []byte) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	item := &cacheItem{
		data:         data,
		etag:         etag,
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}

	// Readers see either the old or the new complete item.
	s.cache.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// handleCalendarRequest serves the ICS content with HTTP caching support.
func (s *CalendarServer) handleCalendarRequest(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r) {
		return
	}

	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

// handleConvert renders ?ts= in the requested zone.
func (s *CalendarServer) handleConvert(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r) {
		return
	}
	query := r.URL.Query()

	seconds, err := strconv.ParseInt(query.Get(config.QueryTimestamp), 10, 64)
	if err != nil {
		s.reject(w, r, http.StatusBadRequest, fmt.Errorf("%s: %w", config.ErrTimestampParse, err))
		return
	}
	tz, err := s.zone(query.Get(config.QueryZone))
	if err != nil {
		s.reject(w, r, http.StatusBadRequest, err)
		return
	}
	loc, err := s.localizer(query.Get(config.QueryLanguage))
	if err != nil {
		s.reject(w, r, http.StatusBadRequest, err)
		return
	}

	ts := timezone.UnixTimestamp(seconds)
	if err := timezone.CheckTimestamp(tz, ts); err != nil {
		s.reject(w, r, http.StatusBadRequest, fmt.Errorf("%s: %w", config.ErrTimestampParse, err))
		return
	}
	writeJSON(w, http.StatusOK, describe(ts, tz.FromTimestamp(ts), tz, loc))
}

// handleTimestamp resolves ?date= in the requested zone to an instant.
func (s *CalendarServer) handleTimestamp(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r) {
		return
	}
	query := r.URL.Query()

	local, err := calendar.ParseISO(query.Get(config.QueryDate))
	if err != nil {
		s.reject(w, r, http.StatusBadRequest, fmt.Errorf("%s: %w", config.ErrDateParse, err))
		return
	}
	tz, err := s.zone(query.Get(config.QueryZone))
	if err != nil {
		s.reject(w, r, http.StatusBadRequest, err)
		return
	}
	loc, err := s.localizer(query.Get(config.QueryLanguage))
	if err != nil {
		s.reject(w, r, http.StatusBadRequest, err)
		return
	}

	ts, err := tz.ToTimestamp(local)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, timezone.ErrLocalTimeConversion) {
			status = http.StatusUnprocessableEntity
		}
		s.reject(w, r, status, fmt.Errorf("%s: %w", config.ErrLocalTime, err))
		return
	}
	writeJSON(w, http.StatusOK, describe(ts, local, tz, loc))
}

func (s *CalendarServer) zone(name string) (timezone.TimeZone, error) {
	if name == "" && s.Zone != nil {
		return s.Zone, nil
	}
	tz, err := timezone.ParseZone(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrZone, err)
	}
	return tz, nil
}

// localizer returns nil when no language is requested.
func (s *CalendarServer) localizer(lang string) (*names.Localizer, error) {
	if lang == "" || s.Names == nil {
		return nil, nil
	}
	return s.Names.Localizer(lang)
}

func (s *CalendarServer) reject(w http.ResponseWriter, r *http.Request, status int, err error) {
	slog.Debug(config.MsgConvertFailed,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyPath, r.URL.Path,
		config.LogKeyError, err,
	)
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func describe(ts timezone.UnixTimestamp, local calendar.NaiveDateTime, tz timezone.TimeZone, loc *names.Localizer) Conversion {
	c := Conversion{
		Timestamp: ts,
		Zone:      fmt.Sprint(tz),
		Local:     local.ISO(),
		Weekday:   local.DayOfTheWeek().String(),
	}
	if loc != nil {
		c.Weekday = loc.Weekday(local.DayOfTheWeek())
		c.LongDate = loc.LongDate(local)
	}
	return c
}

func allowMethod(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}

package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP service.
var UserAgent = "Go-Gregor/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Gregor"
	AppID             = "com.github.tartampluch.go-gregor"
	CLIName           = "go-gregor"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagConfig   = "config"
	FlagDebug    = "debug"
	FlagZone     = "tz"
	FlagPort     = "port"
	FlagLanguage = "lang"

	FlagDescConfig   = "Settings file (.toml, .yaml or .yml)"
	FlagDescDebug    = "Enable debug logging"
	FlagDescZone     = "Time zone: UTC, CET, or a fixed offset such as +02:00"
	FlagDescPort     = "HTTP port to listen on"
	FlagDescLanguage = "Language for month and weekday names"

	MsgVersionOutput = "%s version %s (%s, %s/%s)\n"
)

// -----------------------------------------------------------------------------
// Settings File & Environment
// -----------------------------------------------------------------------------

const (
	ExtTOML = ".toml"
	ExtYAML = ".yaml"
	ExtYML  = ".yml"

	EnvZone     = "GO_GREGOR_ZONE"
	EnvPort     = "GO_GREGOR_PORT"
	EnvLanguage = "GO_GREGOR_LANG"
)

// SupportedLanguages defines the list of available name languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr", "de"}

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultZone        = "CET"
	DefaultPort        = "18081"
	DefaultLanguage    = "en"
	DefaultRefreshMin  = 60
	DefaultYearsBefore = 1 // Feed covers previous, current and next year
	DefaultYearsAfter  = 1
	MaxFeedYears       = 50

	// Limits
	MinPort = 1
	MaxPort = 65535
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyMonthPrefix   = "month_"   // month_1 .. month_12
	TKeyWeekdayPrefix = "weekday_" // weekday_1 (Monday) .. weekday_7
	TKeyLongDate      = "format_long_date"
	TKeyEvtIntoDST    = "event_into_dst"
	TKeyEvtOutOfDST   = "event_out_of_dst"
	TKeyEvtDesc       = "event_description"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion    = "2.0"
	ICalProdid     = "-//Go Gregor//Feed//EN"
	ICalCalName    = "Daylight Saving Time"
	ICalMethod     = "PUBLISH"
	ICalScale      = "GREGORIAN"
	ICalDomain     = "gogregor"
	ICalStandard   = "STANDARD"
	ICalDaylight   = "DAYLIGHT"
	ICalTransp     = "TRANSPARENT"
	ICalIntoDST    = "dst"
	ICalOutOfDST   = "std"

	PropUID          = "UID"
	PropSummary      = "SUMMARY"
	PropDescription  = "DESCRIPTION"
	PropDTStart      = "DTSTART"
	PropDTStamp      = "DTSTAMP"
	PropRefresh      = "REFRESH-INTERVAL"
	PropVersion      = "VERSION"
	PropProdid       = "PRODID"
	PropXWRCalName   = "X-WR-CALNAME"
	PropCalScale     = "CALSCALE"
	PropMethod       = "METHOD"
	PropTZID         = "TZID"
	PropTZName       = "TZNAME"
	PropTZOffsetFrom = "TZOFFSETFROM"
	PropTZOffsetTo   = "TZOFFSETTO"
	PropRDate        = "RDATE"
	PropTransp       = "TRANSP"

	DefaultICalRefresh = 1 * time.Hour

	// ICalLocalLayout is the floating local-time form used inside VTIMEZONE.
	ICalLocalLayout = "%04d%02d%02dT%02d%02d%02d"
	FormatUID       = "%s-%s-%d@%s"
	FormatICalOff   = "%c%02d%02d"
	FormatClock     = "%02d:%02d"

	// English texts used without a localizer.
	FallbackIntoDST  = "Clocks go forward (%s)"
	FallbackOutOfDST = "Clocks go back (%s)"
	FallbackDesc     = "Local time jumps from %s to %s."
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "10"
	AllowedMethods     = "GET, HEAD"
	RouteRoot          = "/"
	RouteConvert       = "/convert"
	RouteTimestamp     = "/timestamp"
	AddrSeparator      = ":"

	QueryTimestamp = "ts"
	QueryDate      = "date"
	QueryZone      = "tz"
	QueryLanguage  = "lang"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderServer          = "Server"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrPortNumber     = "server port must be a number"
	ErrPortRange      = "server port must be between 1 and 65535"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrDateParse      = "unable to parse date, expected YYYY-MM-DDTHH:MM:SS"
	ErrTimestampParse = "unable to parse timestamp"
	ErrYearParse      = "unable to parse year"
	ErrYearRange      = "year range is empty or too large"
	ErrZone           = "invalid time zone"
	ErrNoTransitions  = "time zone has no daylight saving transitions"
	ErrLocalTime      = "local time cannot be converted"
	ErrSettingsRead   = "failed to read settings file"
	ErrSettingsParse  = "failed to parse settings file"
	ErrSettingsFormat = "unsupported settings file extension"
	ErrSettingsValue  = "invalid settings value"
	ErrLanguage       = "unsupported language"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrFeedGenerate   = "feed generation failed"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Calendar cache updated"
	MsgWorkerStart   = "Background worker started"
	MsgWorkerStop    = "Worker stopping due to context cancellation"
	MsgFeedGenerated = "Feed generation successful"
	MsgSettingsLoad  = "Settings loaded"
	MsgEnvOverride   = "Settings overridden from environment"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgConvertFailed = "Conversion request rejected"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyZone      = "zone"
	LogKeyInterval  = "interval"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyStats     = "stats"
	LogKeyYears     = "years"
	LogKeyEvents    = "events"
	LogKeyDuration  = "duration_ms"
	LogKeyPath      = "path"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompFeed     = "feed"
	CompServer   = "server"
	CompWorker   = "worker"
	CompMain     = "main"
	CompI18n     = "i18n"
	CompSettings = "settings"
)

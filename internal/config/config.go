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

// UserAgent identifies the HTTP client.
var UserAgent = "Wagwan/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Wagwan"
	AppID             = "com.github.lowhung.wagwan"
	KeyringService    = "com.github.lowhung.wagwan"
	LocalhostBindAddr = "127.0.0.1"
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
	// Used for the data directory holding the database.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	// DefaultIntervalDays is the reminder cadence applied when a friend is
	// created without an explicit choice.
	DefaultIntervalDays = 30

	// DueSoonWindowDays is the number of whole days before the due date during
	// which a friend is classified as dueSoon rather than onTrack.
	DueSoonWindowDays = 3

	// StreakGraceDays is the grace beyond the due date during which a logged
	// contact still counts as on-time for streak purposes.
	StreakGraceDays = 1

	// UndoWindow is how long a removal stays pending before the cascade runs.
	UndoWindow = 5 * time.Second

	// DaysUntilDueUndefined is the sentinel returned when no due date can be
	// computed. Status classification resolves that case to overdue before
	// the sentinel could ever be used for ordering.
	DaysUntilDueUndefined = -999

	DefaultPort        = "18080"
	DefaultFeedRefresh = "1h"
	DefaultDBFile      = "wagwan.db"
	DefaultConfigDir   = "wagwan"
	DefaultConfigFile  = "config.toml"

	// UIDSalt keeps reminder artifact identifiers deterministic across feed
	// rebuilds while remaining opaque to the calendar client.
	UIDSalt = "wagwan-reminder-v1-"

	// UIDHashLength is the number of hash bytes kept in an artifact identifier.
	UIDHashLength = 16
)

// SuggestedIntervals are the cadences offered by default when creating a
// friend. Any positive integer is accepted; this set is advisory only.
var SuggestedIntervals = []int{7, 14, 30, 90}

// -----------------------------------------------------------------------------
// Environment & Flags
// -----------------------------------------------------------------------------

const (
	EnvDBPath     = "WAGWAN_DB"
	EnvConfigPath = "WAGWAN_CONFIG"

	FlagDB         = "db"
	FlagFormat     = "format"
	FlagDebug      = "debug"
	FlagDescDB     = "Database path (default: $WAGWAN_DB or ~/.local/share/wagwan/wagwan.db)"
	FlagDescFormat = "Output format: text or json"
	FlagDescDebug  = "Enable debug logging to stderr"

	FormatText = "text"
	FormatJSON = "json"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion   = "2.0"
	ICalProdid    = "-//Wagwan//Reminders//EN"
	ICalCalName   = "Friend Reminders"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "wagwan"

	// ReminderTrigger fires the alarm one hour before the all-day event.
	ReminderTrigger = "-PT1H"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	FormatUID          = "%s@%s"
	FormatHashInput    = "%s|%s"
	FormatETag         = `"%s"`
	ReminderSummaryFmt = "Catch up with %s"

	DefaultICalRefresh = 1 * time.Hour

	// StubVCalendar is served when no friends exist so calendar clients never
	// see an invalid feed.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//Wagwan//Reminders//EN\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Standards: vCard
// -----------------------------------------------------------------------------

const (
	VCardFN    = "FN"
	VCardN     = "N"
	VCardTel   = "TEL"
	VCardEmail = "EMAIL"
	VCardNote  = "NOTE"

	FallbackName = "Unknown"

	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB, generous for address books with photos
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	AddrSeparator       = ":"

	MinPort = 1
	MaxPort = 65535
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
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrNameRequired     = "validation error: name must not be empty"
	ErrIntervalPositive = "validation error: reminder interval must be positive"
	ErrUnknownMethod    = "validation error: unknown contact method"
	ErrFriendNotFound   = "friend not found"
	ErrRemovalPending   = "removal already pending for this friend"
	ErrNoRemovalPending = "no removal pending for this friend"
	ErrLocalPathEmpty   = "configuration error: local path is empty"
	ErrWebURLEmpty      = "configuration error: web URL is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrWriteResp        = "failed to write response body"
	ErrAppFailed        = "application failed unexpectedly"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Reminder feed initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Reminder feed cache updated"
	MsgFeedRefreshed  = "Reminder feed refreshed"
	MsgSyncFailed     = "Reminder sync failed"
	MsgFeedBuildFail  = "Reminder feed build failed"
	MsgReminderFail   = "Reminder update failed"
	MsgHandlePersist  = "Failed to persist reminder handle"
	MsgRemovalFailed  = "Removal failed"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgImportStarted  = "Import started"
	MsgImportDone     = "Import finished"
	MsgFriendAdded    = "Friend added"
	MsgFriendRemoved  = "Friend removed"
	MsgRemovalPending = "Removal pending"
	MsgRemovalUndone  = "Removal cancelled"
	MsgContactLogged  = "Contact logged"
	MsgMilestone      = "Streak milestone reached"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys & Components
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyPort      = "port"
	LogKeyFriend    = "friend"
	LogKeyFriendID  = "friend_id"
	LogKeyMethod    = "method"
	LogKeyStreak    = "streak"
	LogKeyMilestone = "milestone"
	LogKeyAdded     = "added"
	LogKeySkipped   = "skipped"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyDuration  = "duration_ms"

	CompMain     = "main"
	CompStore    = "store"
	CompService  = "service"
	CompCalendar = "calendar"
	CompImporter = "importer"
	CompServer   = "server"
	CompFetcher  = "fetcher"
)

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

// UserAgent identifies the HTTP client used to fetch recipient vCards.
var UserAgent = "Go-Birthday-Card/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Birthday Card"
	AppID             = "com.github.tartampluch.go-birthday-card"
	KeyringService    = "com.github.tartampluch.go-birthday-card"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	IconFile          = "Icon.svg"
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

	// TerminalEventBuffer is the queue depth between the tcell poller and the card loop.
	TerminalEventBuffer = 100
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagTUI          = "tui"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescTUI      = "Show the card in the terminal instead of a window"
	MsgVersionOutput = "%s version %s (%s/%s)\n"

	LogConsoleTimeFormat = time.Kitchen
)

// -----------------------------------------------------------------------------
// Card: Candles
// -----------------------------------------------------------------------------

const (
	// TotalCandles is the number of candle slots on the cake.
	TotalCandles = 6
)

// -----------------------------------------------------------------------------
// Card: Confetti
// -----------------------------------------------------------------------------

const (
	ConfettiCount        = 80
	ConfettiTickInterval = 16 * time.Millisecond // ~60fps
	ConfettiDuration     = 5000 * time.Millisecond

	// Spawn distributions (pixels and pixels per tick).
	ConfettiStartY    = -10.0
	ConfettiSpreadX   = 4.0 // speedX in [-SpreadX/2, SpreadX/2)
	ConfettiMinFall   = 2.0
	ConfettiFallRange = 3.0 // speedY in [MinFall, MinFall+FallRange)
	ConfettiMinSize   = 4.0
	ConfettiSizeRange = 8.0

	// ConfettiGravity is added to speedY every tick. There is no terminal velocity.
	ConfettiGravity = 0.08

	// ConfettiFloorMargin is how far below the viewport a particle may fall before it is dropped.
	ConfettiFloorMargin = 50.0
)

// -----------------------------------------------------------------------------
// Card: Ornaments
// -----------------------------------------------------------------------------

const (
	HeartCount         = 20
	HeartMinSize       = 4.0
	HeartSizeRange     = 8.0
	HeartMinPeriod     = 10 * time.Second
	HeartPeriodRange   = 20 * time.Second
	HeartMaxDelay      = 5 * time.Second
	SparkleCount       = 15
	SparkleMinSize     = 6.0
	SparkleSizeRange   = 8.0
	SparkleMinPeriod   = 2 * time.Second
	SparklePeriodRange = 3 * time.Second
	SparkleMaxDelay    = 2 * time.Second

	// OrnamentFloatDistance is the vertical travel of a floating heart in pixels.
	OrnamentFloatDistance = 20
	HeartAlpha            = 0x33
	SparkleAlpha          = 0x4D
)

// -----------------------------------------------------------------------------
// Card: Recipient & Wishes
// -----------------------------------------------------------------------------

const (
	DefaultRecipient = "Aiman"
	DefaultSender    = "Aleeha Fatima"

	// WishPlaceholderName is the misspelled name substituted by the recipient's name in new wishes.
	WishPlaceholderName = "Haram"
)

// DefaultWishes seeds the wish list.
var DefaultWishes = []string{
	"May your day be filled with happiness and joy! 🌟",
	"Wishing you all the best on your special day! 🎂",
	"Hope this year brings you endless smiles! 😊",
}

// -----------------------------------------------------------------------------
// Card: Clock
// -----------------------------------------------------------------------------

const (
	ClockRefreshInterval = time.Second
	DateTimeFormat       = "Monday, January 2, 2006 03:04 PM"
)

// -----------------------------------------------------------------------------
// Audio
// -----------------------------------------------------------------------------

const (
	AudioSampleRate     = 44100
	AudioBufferDuration = 100 * time.Millisecond
	PuffDuration        = 180 * time.Millisecond
	PuffAttack          = 5 * time.Millisecond
	PuffVolume          = 0.35
	FanfareNoteDuration = 150 * time.Millisecond
	FanfareAttack       = 10 * time.Millisecond
	FanfareRelease      = 60 * time.Millisecond
	FanfareVolume       = 0.5
)

// FanfareNotes are the arpeggio frequencies in Hz (C5 E5 G5 C6).
var FanfareNotes = []float64{523.25, 659.25, 783.99, 1046.50}

// -----------------------------------------------------------------------------
// Terminal Card
// -----------------------------------------------------------------------------

const (
	// A terminal cell is treated as an 8x16 pixel box when running the confetti simulation.
	CellPixelWidth  = 8
	CellPixelHeight = 16

	TUIFlameLit  = '^'
	TUIFlameOut  = '~'
	TUIStick     = '|'
	TUICake      = '█'
	TUIConfetti  = '•'
	TUIHeart     = '♥'
	TUIBarFull   = '#'
	TUIBarEmpty  = '.'
	TUIPrompt    = "> "
	TUIHelp      = "1-6/space: blow  r: relight  w: write a wish  q: quit"
	TUIWishHelp  = "Enter: add wish  Esc: cancel"
	TUIWishLimit = 5
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	SettingsWindowWidth = 600
	CardWindowWidth     = 900
	CardWindowHeight    = 800

	// Preference Keys
	PrefLanguage        = "language"
	PrefRecipientName   = "recipient_name"
	PrefSenderName      = "sender_name"
	PrefSourceMode      = "source_mode"
	PrefLocalPath       = "local_path"
	PrefCardDAVURL      = "carddav_url"
	PrefUsername        = "username"
	PrefServerPort      = "server_port"
	PrefSoundEnabled    = "sound_enabled"
	PrefReminderEnabled = "reminder_enabled"
	PrefReminderValue   = "reminder_value"
	PrefReminderUnit    = "reminder_unit"
	PrefReminderDir     = "reminder_direction"
	PrefLastRun         = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Card Layout
// -----------------------------------------------------------------------------

const (
	CandleMinWidth    = 24
	CandleMinHeight   = 72
	CandleStickWidth  = 12
	CandleFlameWidth  = 16
	CandleFlameHeight = 24
	CandleSmokePuffs  = 3
	CakeBottomWidth   = 320
	CakeMiddleWidth   = 256
	CakeTopWidth      = 192
	CakeLayerHeight   = 24
	WishListHeight    = 256
	WishBullet        = "💕 "
	TitleTextSize     = 48
	NameTextSize      = 36
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinCard         = "win_card_title"
	TKeyWinSettings     = "win_settings_title"
	TKeyMenuShowCard    = "menu_show_card"
	TKeyMenuRelight     = "menu_relight"
	TKeyMenuSettings    = "menu_settings"
	TKeyTitle           = "card_title"
	TKeyRecipientLine   = "card_recipient" // Requires Name
	TKeyMakeWish        = "card_make_wish"
	TKeyCandleHint      = "card_candle_hint"
	TKeyCandleProgress  = "card_candle_progress" // Requires Blown, Total
	TKeyCandleDone      = "card_candle_done"
	TKeyBtnRelight      = "btn_relight"
	TKeyWishesTitle     = "wishes_title"     // Requires Name
	TKeyWishPlaceholder = "wish_placeholder" // Requires Name
	TKeyBtnAddWish      = "btn_add_wish"
	TKeyLetterTitle     = "letter_title" // Requires Name
	TKeyLetterBody      = "letter_body"  // Requires Name
	TKeyLetterClosing   = "letter_closing"
	TKeyFooter          = "card_footer"
	TKeyFormatDateTime  = "format_datetime"
	TKeyNotifCelebrate  = "notif_celebrate" // Requires Name
	TKeyNotifError      = "notif_err_recipient"
	TKeyEvtSummary      = "event_summary"     // Requires Name
	TKeyEvtSummaryAge   = "event_summary_age" // Requires Name, Age

	// Settings
	TKeyLblGeneral   = "lbl_general"
	TKeyLblLanguage  = "lbl_language"
	TKeyHelpLanguage = "help_language"
	TKeyLblRecipient = "lbl_recipient"
	TKeyLblSender    = "lbl_sender"
	TKeyLblSound     = "lbl_sound"
	TKeyLblPort      = "lbl_server_port"
	TKeyHelpPort     = "help_port"
	TKeyLblSource    = "lbl_source"
	TKeyModeNone     = "mode_none"
	TKeyModeCardDAV  = "mode_carddav"
	TKeyModeLocal    = "mode_local"
	TKeyBtnBrowse    = "btn_browse"
	TKeyLblURL       = "lbl_url"
	TKeyHelpURL      = "help_carddav_url"
	TKeyLblUser      = "lbl_user"
	TKeyLblPass      = "lbl_pass"
	TKeyLblNotif     = "lbl_notifications"
	TKeyLblEnableRem = "lbl_enable_reminders"
	TKeyUnitDays     = "unit_days"
	TKeyUnitHours    = "unit_hours"
	TKeyUnitMinutes  = "unit_minutes"
	TKeyDirBefore    = "dir_before"
	TKeyDirAfter     = "dir_after"
	TKeyBtnSave      = "btn_save"
	TKeyBtnCancel    = "btn_cancel"
	TKeyLblFooter    = "lbl_footer"
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
	TKeyLblStartDay  = "lbl_start_day"
	TKeyHelpSender   = "help_sender"
	TKeyHelpSource   = "help_source"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeNone       = ""
	SourceModeWeb        = "web"
	SourceModeLocal      = "local"
	DefaultPort          = "18081"
	DefaultLanguage      = "en"
	DefaultLeapYear      = 2000 // Leap year fallback for dates like --02-29
	DefaultReminderValue = 1
	UIDSalt              = "go-birthday-card-v1-"
)

// ISO8601 Duration Components for Reminders
const (
	ISOPeriodPrefix   = "P"
	ISONegativePrefix = "-P"
	ISOTime           = "T"
	ISODay            = "D"
	ISOHour           = "H"
	ISOMinute         = "M"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Birthday Card//Feed//EN"
	ICalCalName   = "Birthday Card"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "gobirthdaycard"

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

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	DefaultICalRefresh = 24 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	MinPort = 1
	MaxPort = 65535

	FormatHashInput = "%s|%s|%d|%s"
	FormatUID       = "%s@%s"

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
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB, one contact card is enough
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	RouteCalendar       = "/birthday.ics"
	RouteMetrics        = "/metrics"
	AddrSeparator       = ":"
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
	MimeVCard           = "text/vcard"
	MimeXVCard          = "text/x-vcard"
	MimeDirectory       = "text/directory"
	MimeTextPlain       = "text/plain"
	MimeOctetStream     = "application/octet-stream"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Metrics
// -----------------------------------------------------------------------------

const (
	MetricsNamespace    = "card"
	MetricCandlesBlown  = "candles_blown_total"
	MetricCelebrations  = "celebrations_total"
	MetricWishesAdded   = "wishes_added_total"
	MetricParticles     = "confetti_particles"
	MetricHelpCandles   = "Candles extinguished by the user."
	MetricHelpCelebrate = "Confetti celebrations started."
	MetricHelpWishes    = "Wishes appended to the wish list."
	MetricHelpParticles = "Confetti particles currently on screen."
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty   = "configuration error: local path is empty"
	ErrWebURLEmpty      = "configuration error: web URL is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrModeUnsupport    = "configuration error: unsupported source mode"
	ErrRecipientLoad    = "failed to load recipient"
	ErrNoRecipient      = "no contact with a name found in vCard stream"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrRequest          = "failed to create request"
	ErrNetwork          = "network error during fetch"
	ErrHTTPStatus       = "server returned unexpected status"
	ErrContentType      = "response is not a vCard"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrDateParse        = "unable to parse date"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrLocNotInit       = "localizer not initialized"
	ErrSpeakerInit      = "audio output unavailable, chimes disabled"
	ErrChimeBuild       = "failed to build chime"
	ErrTerminalInit     = "failed to initialize terminal"
	ErrKeyringSave      = "failed to save credentials to keyring"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Birthday feed initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackTitle         = "Happy Birthday"
	FallbackRecipientLine = "%s! 💖"
	FallbackProgress      = "%d/%d candles blown - Keep wishing! ✨"
	FallbackDone          = "🎊 All wishes granted! Your dreams will come true! 🎊"
	FallbackSummary       = "Happy birthday, %s!"
	FallbackSummaryAge    = "%s turns %d today!"
	FallbackTrayLabel     = "Go Birthday Card"
	FallbackWishPrompt    = "Write a beautiful wish for %s..."

	// StubVCalendar is the minimal valid iCalendar object used when the birthday is unknown.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	TitleStartupError = "Startup Error"

	MsgPortBusy         = "Port %s is busy or unavailable."
	MsgAppStop          = "Application stopped gracefully"
	MsgCtxCancel        = "Context cancelled, shutting down UI"
	MsgAppStarting      = "Starting application"
	MsgServerListen     = "HTTP server listening"
	MsgServerStop       = "Shutting down HTTP server..."
	MsgHTTPRequest      = "HTTP request served"
	MsgCacheUpdated     = "Birthday feed updated"
	MsgLocaleBadName    = "Skipping malformed locale filename"
	MsgLocaleLoaded     = "Locale loaded successfully"
	MsgTransMissing     = "Missing translation key"
	MsgPassFail         = "Password retrieval failed (might be empty)"
	MsgLogWarning       = "Warning: %s at %s: %v\n"
	MsgSkippedDate      = "Ignoring invalid birthday format"
	MsgSkippedCard      = "Skipping malformed vCard entry"
	MsgRecipientLoaded  = "Recipient loaded"
	MsgRecipientFailed  = "Recipient load failed, keeping preferences"
	MsgFeedGenerated    = "Birthday feed generated"
	MsgCandleBlown      = "Candle blown"
	MsgCandlesReset     = "Candles relit"
	MsgCelebration      = "All candles blown, celebration starts"
	MsgConfettiStart    = "Confetti started"
	MsgConfettiDeferred = "Confetti deferred until viewport is measured"
	MsgConfettiExpired  = "Confetti expired"
	MsgConfettiStopped  = "Confetti stopped"
	MsgWishAdded        = "Wish added"
	MsgWishIgnored      = "Empty wish ignored"
	MsgTeardown         = "Tearing down card"
	MsgSettingsOpen     = "Opening settings window"
	MsgSettingsFocus    = "Settings window already open, requesting focus"
	MsgSettingsSaved    = "Saving preferences"
	MsgRemindersOff     = "Reminders disabled via settings (value is empty)"
	MsgDownloadStart    = "Initiating vCard download"
	MsgDownloading      = "vCard downloading"
	MsgBadStatus        = "Server returned error status"
	MsgBadContentType   = "Server returned a non-vCard document"
	MsgSpeakerReady     = "Audio output ready"
	MsgTerminalStart    = "Terminal card started"
	MsgTerminalStop     = "Terminal card stopped"
	MsgWorkerStart      = "Background worker started"
	MsgWorkerStop       = "Background worker stopped"
	MsgFeedRefresh      = "Periodic feed refresh"
	MsgCardOpen         = "Opening card window"
	MsgCardFocus        = "Card window already open, requesting focus"

	PlaceholderURL = "https://..."
)

// -----------------------------------------------------------------------------
// Reminder Units & Directions
// -----------------------------------------------------------------------------

const (
	UnitDays    = "d"
	UnitHours   = "h"
	UnitMinutes = "m"
	DirBefore   = "before"
	DirAfter    = "after"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyMime      = "content_type"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyUser      = "user"
	LogKeySizeBytes = "size_bytes"
	LogKeyLength    = "content_length"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyDOB       = "date_of_birth"
	LogKeyDuration  = "duration_ms"
	LogKeyBlown     = "blown"
	LogKeyRemaining = "remaining"
	LogKeyWidth     = "width"
	LogKeyHeight    = "height"
	LogKeyEvents    = "events"
	LogKeyYearKnown = "year_known"
	LogKeyMethod    = "method"
	LogKeyPath      = "path"
	LogKeyInterval  = "interval"
	LogKeyEnabled   = "enabled"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
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
	CompUI        = "ui"
	CompUISet     = "ui_settings"
	CompCandles   = "candles"
	CompConfetti  = "confetti"
	CompWishes    = "wishes"
	CompRecipient = "recipient"
	CompCalendar  = "calendar"
	CompServer    = "server"
	CompFetcher   = "fetcher"
	CompAudio     = "audio"
	CompTUI       = "tui"
	CompMain      = "main"
	CompWorker    = "worker"
	CompI18n      = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)

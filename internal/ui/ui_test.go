package ui

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-birthday-card/internal/config"
	"github.com/tartampluch/go-birthday-card/internal/engine"
	"github.com/tartampluch/go-birthday-card/internal/metrics"
	"github.com/tartampluch/go-birthday-card/internal/server"
	"github.com/zalando/go-keyring"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockFetcher simulates engine.ContactFetcher using testify/mock.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// fixedRand always returns the same value.
type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

// MockTray implements minimal system tray functionality for headless testing.
type MockTray struct {
	Menu *fyne.Menu
}

func (m *MockTray) SetSystemTrayMenu(menu *fyne.Menu) {
	m.Menu = menu
}

func (m *MockTray) SetSystemTrayIcon(icon fyne.Resource) {}
func (m *MockTray) SetSystemTrayWindow(w fyne.Window)    {}
func (m *MockTray) Run()                                 {}
func (m *MockTray) Quit()                                {}

// -----------------------------------------------------------------------------
// Test Setup Helper
// -----------------------------------------------------------------------------

type testEnv struct {
	app     *CardApp
	sched   *engine.ManualScheduler
	fetcher *MockFetcher
	tray    *MockTray
	metrics *metrics.Collector
}

// setupTestApp initializes a headless Fyne app on virtual time.
func setupTestApp(t *testing.T) *testEnv {
	t.Helper()
	keyring.MockInit()

	a := test.NewApp()
	t.Cleanup(a.Quit)

	env := &testEnv{
		sched:   engine.NewManualScheduler(),
		fetcher: new(MockFetcher),
		tray:    &MockTray{},
		metrics: metrics.New(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	env.app = NewCardApp(a, ctx, Deps{
		Server:    server.NewCardServer("0", env.metrics.Handler()),
		Fetcher:   env.fetcher,
		Clock:     MockClock{CurrentTime: time.Date(2025, 8, 14, 9, 30, 0, 0, time.UTC)},
		Scheduler: env.sched,
		Rand:      fixedRand(0.5),
		Metrics:   env.metrics,
	})
	env.app.Tray = env.tray

	// Run() is skipped, so load translations by hand.
	env.app.SetupI18n()
	return env
}

func scrape(t *testing.T, h http.Handler, path string) string {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w.Body.String()
}

// -----------------------------------------------------------------------------
// Localization Tests
// -----------------------------------------------------------------------------

func TestLocalization_Switching(t *testing.T) {
	app := setupTestApp(t).app

	app.Preferences.SetString(config.PrefLanguage, "en")
	app.UpdateLocalizer()
	assert.Equal(t, "Settings...", app.GetMsg(config.TKeyMenuSettings))

	app.Preferences.SetString(config.PrefLanguage, "fr")
	app.UpdateLocalizer()
	assert.Equal(t, "Paramètres...", app.GetMsg(config.TKeyMenuSettings))
}

func TestLocalization_DetectsEmbeddedLanguages(t *testing.T) {
	app := setupTestApp(t).app

	assert.ElementsMatch(t, []string{"en", "fr"}, app.SupportedLanguages)
}

func TestLocalization_Templates(t *testing.T) {
	app := setupTestApp(t).app

	assert.Equal(t, "Write a beautiful wish for Aiman...",
		app.GetMsgData(config.TKeyWishPlaceholder, map[string]interface{}{"Name": "Aiman"}))
	assert.Equal(t, "2/6 candles blown - Keep wishing! ✨",
		app.GetMsgData(config.TKeyCandleProgress, map[string]interface{}{"Blown": 2, "Total": 6}))
	assert.Equal(t, "no_such_key", app.GetMsg("no_such_key"))
}

func TestLocalization_LocaleCode(t *testing.T) {
	tests := []struct {
		file string
		want string
		ok   bool
	}{
		{"active.en.json", "en", true},
		{"active.fr.json", "fr", true},
		{"active..json", "", false},
		{"active.en.extra.json", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			got, ok := localeCode(tt.file)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocalization_FallbackWithoutBundle(t *testing.T) {
	app := setupTestApp(t).app
	app.Localizer = nil

	assert.Equal(t, config.TKeyTitle, app.GetMsg(config.TKeyTitle))
	assert.Equal(t, "Happy Birthday", app.msgOr(config.TKeyTitle, nil, config.FallbackTitle))
	assert.Equal(t, "Aiman! 💖", app.msgOr(config.TKeyRecipientLine, nil, config.FallbackRecipientLine, "Aiman"))
}

func TestLocalization_SummaryFormatter(t *testing.T) {
	app := setupTestApp(t).app
	formatter := app.buildSummaryFormatter()

	assert.Equal(t, "Aiman turns 24 today!", formatter("Aiman", 24, true))
	assert.Equal(t, "Happy birthday, Aiman!", formatter("Aiman", 0, false))
	assert.Equal(t, "Happy birthday, Baby!", formatter("Baby", 0, true), "no age on the day of birth")

	app.Preferences.SetString(config.PrefLanguage, "fr")
	app.UpdateLocalizer()
	assert.Equal(t, "Aiman fête ses 24 ans aujourd'hui !", formatter("Aiman", 24, true))
}

// -----------------------------------------------------------------------------
// Configuration & Preferences Tests
// -----------------------------------------------------------------------------

func TestConfiguration_RecipientMapping(t *testing.T) {
	app := setupTestApp(t).app
	require.NoError(t, keyring.Set(config.KeyringService, "aleeha", "s3cret"))

	app.Preferences.SetString(config.PrefSourceMode, config.SourceModeWeb)
	app.Preferences.SetString(config.PrefCardDAVURL, "https://dav.example.com/aiman.vcf")
	app.Preferences.SetString(config.PrefUsername, "aleeha")
	app.Preferences.SetString(config.PrefRecipientName, "Zara")
	app.Preferences.SetString(config.PrefSenderName, "Omar")

	cfg := app.recipientConfig()

	assert.Equal(t, config.SourceModeWeb, cfg.Mode)
	assert.Equal(t, "https://dav.example.com/aiman.vcf", cfg.WebURL)
	assert.Equal(t, "aleeha", cfg.WebUser)
	assert.Equal(t, "s3cret", cfg.WebPass)
	assert.Equal(t, "Zara", cfg.Name)
	assert.Equal(t, "Omar", cfg.Sender)
}

func TestConfiguration_ReminderTrigger(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		value   int
		unit    string
		dir     string
		want    string
	}{
		{"Disabled", false, 2, config.UnitDays, config.DirBefore, ""},
		{"Days before", true, 2, config.UnitDays, config.DirBefore, "-P2D"},
		{"Hours after", true, 3, config.UnitHours, config.DirAfter, "PT3H"},
		{"Minutes before", true, 15, config.UnitMinutes, config.DirBefore, "-PT15M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupTestApp(t).app
			app.Preferences.SetBool(config.PrefReminderEnabled, tt.enabled)
			app.Preferences.SetInt(config.PrefReminderValue, tt.value)
			app.Preferences.SetString(config.PrefReminderUnit, tt.unit)
			app.Preferences.SetString(config.PrefReminderDir, tt.dir)

			assert.Equal(t, tt.want, app.reminderTrigger())
		})
	}
}

func TestConfiguration_WorkerSignal(t *testing.T) {
	app := setupTestApp(t).app
	app.watchPreferences()

	app.Preferences.SetString(config.PrefRecipientName, "Zara")

	select {
	case <-app.configChan:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("changing a preference should notify the background worker")
	}
}

func TestConfiguration_InitialRecipientFromPreferences(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	a.Preferences().SetString(config.PrefRecipientName, "Zara")

	app := NewCardApp(a, context.Background(), Deps{Scheduler: engine.NewManualScheduler()})

	assert.Equal(t, "Zara", app.Recipient().Name)
	assert.Equal(t, config.DefaultSender, app.Recipient().Sender)
	wish, ok := app.Wishes.Add("Happy Haram!")
	assert.True(t, ok)
	assert.Equal(t, "Happy Zara!", wish)
}

// -----------------------------------------------------------------------------
// Recipient Pipeline Tests
// -----------------------------------------------------------------------------

func TestRefreshRecipient_WebSource(t *testing.T) {
	env := setupTestApp(t)
	app := env.app
	app.ShowCard()

	vcard := "BEGIN:VCARD\nVERSION:3.0\nFN:Aiman Khan\nBDAY:2001-08-14\nEND:VCARD"
	env.fetcher.On("Fetch", mock.Anything, "http://test.local", "", "").
		Return(io.NopCloser(strings.NewReader(vcard)), nil)

	app.Preferences.SetString(config.PrefSourceMode, config.SourceModeWeb)
	app.Preferences.SetString(config.PrefCardDAVURL, "http://test.local")
	app.Preferences.SetString(config.PrefSenderName, "Aleeha")

	app.refreshRecipient()

	env.fetcher.AssertExpectations(t)
	assert.Equal(t, "Aiman Khan", app.Recipient().Name)
	assert.Equal(t, "Aiman Khan! 💖", app.card.recipient.Text)
	assert.Equal(t, "Aleeha", app.card.sender.Text)
	assert.Equal(t, "Happy Birthday, Aiman Khan!", app.Window.Title())

	wish, _ := app.Wishes.Add("Happy Haram!")
	assert.Equal(t, "Happy Aiman Khan!", wish)

	feed := scrape(t, app.Server.Router(), config.RouteCalendar)
	assert.Contains(t, feed, "SUMMARY:Aiman Khan turns 24 today!")
	assert.Contains(t, feed, "DTSTART;VALUE=DATE:20250814")
}

func TestRefreshRecipient_FailureKeepsPreferences(t *testing.T) {
	env := setupTestApp(t)
	app := env.app

	env.fetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	app.Preferences.SetString(config.PrefSourceMode, config.SourceModeWeb)
	app.Preferences.SetString(config.PrefCardDAVURL, "http://test.local")
	app.Preferences.SetString(config.PrefRecipientName, "Zara")

	app.refreshRecipient()

	env.fetcher.AssertExpectations(t)
	assert.Equal(t, "Zara", app.Recipient().Name)
	assert.Equal(t, config.StubVCalendar, scrape(t, app.Server.Router(), config.RouteCalendar),
		"without a birthday the feed is an empty calendar")
}

func TestRefreshRecipient_NoSource(t *testing.T) {
	app := setupTestApp(t).app

	app.refreshRecipient()

	assert.Equal(t, config.DefaultRecipient, app.Recipient().Name)
	assert.Equal(t, config.DefaultSender, app.Recipient().Sender)
}

// -----------------------------------------------------------------------------
// Tray Tests
// -----------------------------------------------------------------------------

func TestTrayMenu_Labels(t *testing.T) {
	env := setupTestApp(t)
	app := env.app
	app.setupTrayMenu()

	require.NotNil(t, env.tray.Menu)
	assert.Equal(t, "Show card", app.TrayShowItem.Label)
	assert.Equal(t, "Light the candles again", app.TrayRelightItem.Label)

	app.Preferences.SetString(config.PrefLanguage, "fr")
	app.UpdateLocalizer()
	app.RefreshTrayMenu()

	assert.Equal(t, "Afficher la carte", app.TrayShowItem.Label)
	assert.Equal(t, "Paramètres...", app.TraySettingsItem.Label)
}

func TestTrayMenu_RelightResetsCandles(t *testing.T) {
	app := setupTestApp(t).app
	app.setupTrayMenu()
	app.Tracker.Blow()
	app.Tracker.Blow()

	app.TrayRelightItem.Action()

	assert.Equal(t, 0, app.Tracker.State().Blown)
}

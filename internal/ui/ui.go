package ui

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-birthday-card/internal/audio"
	"github.com/tartampluch/go-birthday-card/internal/config"
	"github.com/tartampluch/go-birthday-card/internal/engine"
	"github.com/tartampluch/go-birthday-card/internal/metrics"
	"github.com/tartampluch/go-birthday-card/internal/server"
	"github.com/zalando/go-keyring"
)

//go:embed Icon.svg
var appIconData []byte

// CardApp owns the card state, its windows, the tray menu and the feed server.
type CardApp struct {
	App            fyne.App
	Window         fyne.Window
	settingsWindow fyne.Window
	Preferences    fyne.Preferences
	I18nBundle     *i18n.Bundle
	Localizer      *i18n.Localizer
	Ctx            context.Context
	cancel         context.CancelFunc

	Server    *server.CardServer
	Fetcher   engine.ContactFetcher
	Clock     engine.Clock
	Scheduler engine.Scheduler
	Metrics   *metrics.Collector
	Player    *audio.Player

	Tracker  *engine.CandleTracker
	Animator *engine.Animator
	Wishes   *engine.WishList

	ornaments []engine.Ornament
	card      *cardView

	recipientMu sync.RWMutex
	recipient   engine.Recipient

	Tray desktop.App
	Menu *fyne.Menu

	TrayShowItem     *fyne.MenuItem
	TrayRelightItem  *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	SupportedLanguages []string
	configChan         chan struct{}
}

// Deps are the replaceable collaborators of a CardApp. Zero fields get production defaults.
type Deps struct {
	Server    *server.CardServer
	Fetcher   engine.ContactFetcher
	Clock     engine.Clock
	Scheduler engine.Scheduler
	Rand      engine.RandSource
	Metrics   *metrics.Collector
	Player    *audio.Player
}

// NewCardApp constructs the application and wires the card state machines together.
func NewCardApp(a fyne.App, ctx context.Context, deps Deps) *CardApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	if deps.Fetcher == nil {
		deps.Fetcher = engine.NewHTTPFetcher()
	}
	if deps.Clock == nil {
		deps.Clock = engine.RealClock{}
	}
	if deps.Scheduler == nil {
		deps.Scheduler = engine.RealScheduler{}
	}
	if deps.Rand == nil {
		deps.Rand = engine.SystemRand{}
	}
	if deps.Player == nil {
		deps.Player = audio.NewPlayer()
	}

	ctx, cancel := context.WithCancel(ctx)
	prefs := a.Preferences()
	rec := engine.Recipient{
		Name:   prefOr(prefs, config.PrefRecipientName, config.DefaultRecipient),
		Sender: prefOr(prefs, config.PrefSenderName, config.DefaultSender),
	}

	app := &CardApp{
		App:                a,
		Preferences:        prefs,
		Ctx:                ctx,
		cancel:             cancel,
		Server:             deps.Server,
		Fetcher:            deps.Fetcher,
		Clock:              deps.Clock,
		Scheduler:          deps.Scheduler,
		Metrics:            deps.Metrics,
		Player:             deps.Player,
		Tracker:            engine.NewCandleTracker(),
		Animator:           engine.NewAnimator(deps.Scheduler, deps.Rand),
		Wishes:             engine.NewWishList(rec.Name, config.DefaultWishes...),
		ornaments:          engine.GenerateOrnaments(deps.Rand),
		recipient:          rec,
		SupportedLanguages: config.SupportedLanguages,
		configChan:         make(chan struct{}, config.ChannelBufferSize),
	}
	app.Player.SetEnabled(prefs.BoolWithFallback(config.PrefSoundEnabled, true))

	app.Tracker.OnChange = func(s engine.CandleState) {
		fyne.Do(func() {
			if app.card != nil {
				app.card.applyCandles(s)
			}
		})
	}
	app.Tracker.OnCelebrate = app.celebrate
	app.Animator.OnFrame = func(frame []engine.Particle) {
		app.Metrics.SetParticles(len(frame))
		fyne.Do(func() {
			if app.card != nil {
				app.card.setParticles(frame)
			}
		})
	}

	return app
}

// Run launches the services and the main UI loop. It returns when the app quits.
func (app *CardApp) Run() {
	app.SetupI18n()
	app.watchPreferences()

	if app.Server != nil {
		go func() {
			if err := app.Server.Start(app.Ctx); err != nil {
				slog.Error(config.ErrServerStartup,
					config.LogKeyError, err,
					config.LogKeyComponent, config.CompUI)

				app.App.SendNotification(fyne.NewNotification(
					config.TitleStartupError,
					fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
			}
		}()
	}

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported, config.LogKeyComponent, config.CompUI)
	}

	go app.backgroundWorker()

	app.ShowCard()
	if app.Tray == nil && app.Window != nil {
		app.Window.SetMaster()
	}

	app.App.Run()
	app.Teardown()
}

// Recipient returns the name, sender and birthday currently shown on the card.
func (app *CardApp) Recipient() engine.Recipient {
	app.recipientMu.RLock()
	defer app.recipientMu.RUnlock()
	return app.recipient
}

func (app *CardApp) setRecipient(rec engine.Recipient) {
	app.recipientMu.Lock()
	app.recipient = rec
	app.recipientMu.Unlock()
	app.Wishes.SetRecipient(rec.Name)
}

// ShowCard opens the card window, or focuses it when it is already open.
func (app *CardApp) ShowCard() {
	if app.Window != nil {
		slog.Debug(config.MsgCardFocus, config.LogKeyComponent, config.CompUI)
		app.Window.RequestFocus()
		return
	}

	slog.Info(config.MsgCardOpen,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyName, app.Recipient().Name)

	w := app.App.NewWindow(app.cardTitle())
	v := newCardView(app)
	app.Window = w
	app.card = v

	w.SetContent(v.content)
	w.Resize(fyne.NewSize(config.CardWindowWidth, config.CardWindowHeight))
	w.SetOnClosed(app.closeCard)
	v.start()
	w.Show()
}

// closeCard tears down the card page: confetti timers, the clock and the ornaments.
func (app *CardApp) closeCard() {
	if app.card == nil {
		return
	}
	slog.Debug(config.MsgTeardown, config.LogKeyComponent, config.CompUI)

	app.Animator.Stop()
	app.card.stop()
	app.card = nil
	app.Window = nil
	app.Metrics.SetParticles(0)
}

// Teardown closes the card and stops the server and the background worker.
func (app *CardApp) Teardown() {
	w := app.Window
	app.closeCard()
	if w != nil {
		w.Close()
	}
	app.cancel()
	app.Player.Close()
}

func (app *CardApp) blowCandle() {
	if app.Tracker.Blow() {
		app.Metrics.CandleBlown()
		app.Player.Puff()
	}
}

func (app *CardApp) relightCandles() {
	app.Tracker.Reset()
}

func (app *CardApp) celebrate() {
	app.Metrics.Celebration()
	app.Player.Fanfare()
	app.Animator.Start()

	name := app.Recipient().Name
	app.App.SendNotification(fyne.NewNotification(config.AppName,
		app.GetMsgData(config.TKeyNotifCelebrate, map[string]interface{}{"Name": name})))
}

func (app *CardApp) cardTitle() string {
	name := app.Recipient().Name
	return app.msgOr(config.TKeyWinCard, map[string]interface{}{"Name": name}, config.FallbackSummary, name)
}

// watchPreferences wakes the worker whenever a setting changes.
func (app *CardApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		select {
		case app.configChan <- struct{}{}:
		default:
		}
	})
}

// setupTrayMenu constructs the system tray menu.
func (app *CardApp) setupTrayMenu() {
	app.TrayShowItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuShowCard), app.ShowCard)
	app.TrayRelightItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuRelight), app.relightCandles)
	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), app.ShowSettingsWindow)

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayShowItem,
		app.TrayRelightItem,
		fyne.NewMenuItemSeparator(),
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *CardApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayShowItem.Label = app.GetMsg(config.TKeyMenuShowCard)
	app.TrayRelightItem.Label = app.GetMsg(config.TKeyMenuRelight)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// backgroundWorker reloads the recipient on every settings change and
// regenerates the feed daily so ages stay current.
func (app *CardApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	app.refreshRecipient()

	timer := app.Scheduler.Every(config.DefaultICalRefresh, func() {
		log.Debug(config.MsgFeedRefresh)
		app.refreshRecipient()
	})
	defer timer.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, config.DefaultICalRefresh)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			return
		case <-app.configChan:
			app.Player.SetEnabled(app.Preferences.BoolWithFallback(config.PrefSoundEnabled, true))
			app.refreshRecipient()
		}
	}
}

// refreshRecipient runs the pipeline Load -> card texts -> BuildCalendar -> Server.Update.
// A failed load keeps the names from the preferences.
func (app *CardApp) refreshRecipient() {
	cfg := app.recipientConfig()
	loader := &engine.RecipientLoader{Fetcher: app.Fetcher}

	rec, err := loader.Load(app.Ctx, cfg)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return
		}
		slog.Warn(config.MsgRecipientFailed,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyMode, cfg.Mode,
			config.LogKeyError, err)
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifError)))
	}
	app.setRecipient(rec)

	fyne.Do(func() {
		if app.card != nil {
			app.card.applyTexts()
			app.Window.SetTitle(app.cardTitle())
		}
	})

	if app.Server == nil {
		return
	}
	ics, err := engine.BuildCalendar(rec, app.Clock.Now(), app.reminderTrigger(), app.buildSummaryFormatter())
	if err != nil {
		slog.Error(config.ErrICalEncode, config.LogKeyComponent, config.CompUI, config.LogKeyError, err)
		return
	}
	app.Server.Update(ics)
}

// recipientConfig assembles the loader configuration from preferences and the keyring.
func (app *CardApp) recipientConfig() engine.RecipientConfig {
	cfg := engine.RecipientConfig{
		Mode:      app.Preferences.String(config.PrefSourceMode),
		LocalPath: app.Preferences.String(config.PrefLocalPath),
		WebURL:    app.Preferences.String(config.PrefCardDAVURL),
		WebUser:   app.Preferences.String(config.PrefUsername),
		Name:      app.Preferences.String(config.PrefRecipientName),
		Sender:    app.Preferences.String(config.PrefSenderName),
	}

	if cfg.Mode == config.SourceModeWeb && cfg.WebUser != "" {
		if p, err := keyring.Get(config.KeyringService, cfg.WebUser); err == nil {
			cfg.WebPass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, cfg.WebUser,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}
	return cfg
}

// reminderTrigger returns the ISO 8601 VALARM trigger, or "" when reminders are off.
func (app *CardApp) reminderTrigger() string {
	if !app.Preferences.Bool(config.PrefReminderEnabled) {
		return ""
	}
	val := app.Preferences.IntWithFallback(config.PrefReminderValue, config.DefaultReminderValue)
	unit := app.Preferences.StringWithFallback(config.PrefReminderUnit, config.UnitDays)
	dir := app.Preferences.StringWithFallback(config.PrefReminderDir, config.DirBefore)

	sign := config.ISOPeriodPrefix
	if dir == config.DirBefore {
		sign = config.ISONegativePrefix
	}

	switch unit {
	case config.UnitHours:
		return fmt.Sprintf("%s%s%d%s", sign, config.ISOTime, val, config.ISOHour)
	case config.UnitMinutes:
		return fmt.Sprintf("%s%s%d%s", sign, config.ISOTime, val, config.ISOMinute)
	default:
		return fmt.Sprintf("%s%d%s", sign, val, config.ISODay)
	}
}

// buildSummaryFormatter returns a closure that localizes the event summary.
func (app *CardApp) buildSummaryFormatter() engine.SummaryFunc {
	return func(name string, age int, yearKnown bool) string {
		if yearKnown && age > 0 {
			return app.msgOr(config.TKeyEvtSummaryAge,
				map[string]interface{}{"Name": name, "Age": age},
				config.FallbackSummaryAge, name, age)
		}
		return app.msgOr(config.TKeyEvtSummary,
			map[string]interface{}{"Name": name},
			config.FallbackSummary, name)
	}
}

func prefOr(prefs fyne.Preferences, key, fallback string) string {
	if v := strings.TrimSpace(prefs.String(key)); v != "" {
		return v
	}
	return fallback
}

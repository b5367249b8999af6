package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-birthday-card/internal/config"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect    *widget.Select
	nameEntry     *widget.Entry
	senderEntry   *widget.Entry
	soundCheck    *widget.Check
	modeSelect    *widget.Select
	urlEntry      *widget.Entry
	userEntry     *widget.Entry
	passEntry     *widget.Entry
	pathEntry     *widget.Entry
	entryPort     *FilteredEntry
	checkReminder *widget.Check
	entryRemValue *FilteredEntry
	selectRemUnit *widget.Select
	selectRemDir  *widget.Select
}

// ShowSettingsWindow displays the configuration window, or focuses it when already open.
func (app *CardApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug(config.MsgSettingsFocus, config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgSettingsOpen, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := app.newSettingsWidgets()

	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}

	// Card
	itemName := widget.NewFormItem(app.GetMsg(config.TKeyLblRecipient), sw.nameEntry)
	itemSender := widget.NewFormItem(app.GetMsg(config.TKeyLblSender), sw.senderEntry)
	itemSender.HintText = app.GetMsg(config.TKeyHelpSender)
	cardCard := widget.NewCard(app.GetMsg(config.TKeyTitle), "", widget.NewForm(itemName, itemSender))

	sourceCard := app.buildSourceCard(w, sw, onLayoutChange)

	// General
	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)
	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)
	itemSound := widget.NewFormItem("", sw.soundCheck)
	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", widget.NewForm(itemLang, itemPort, itemSound))

	notifCard := app.buildNotifCard(sw, onLayoutChange)

	saveAction := func() {
		// Only the port blocks saving; an empty reminder value just disables reminders.
		if err := sw.entryPort.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw)
		w.Close()
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		cardCard,
		sourceCard,
		generalCard,
		notifCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	refreshLayout = func() {
		paddedContent.Refresh()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, paddedContent.MinSize().Height))
	}

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })

	refreshLayout()
	w.Show()
}

// newSettingsWidgets creates every input pre-filled from preferences and the keyring.
func (app *CardApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	rec := app.Recipient()
	sw.nameEntry = widget.NewEntry()
	sw.nameEntry.SetText(app.Preferences.String(config.PrefRecipientName))
	sw.nameEntry.SetPlaceHolder(rec.Name)
	sw.senderEntry = widget.NewEntry()
	sw.senderEntry.SetText(app.Preferences.String(config.PrefSenderName))
	sw.senderEntry.SetPlaceHolder(config.DefaultSender)

	sw.soundCheck = widget.NewCheck(app.GetMsg(config.TKeyLblSound), nil)
	sw.soundCheck.SetChecked(app.Preferences.BoolWithFallback(config.PrefSoundEnabled, true))

	sw.modeSelect = widget.NewSelect([]string{
		app.GetMsg(config.TKeyModeNone),
		app.GetMsg(config.TKeyModeCardDAV),
		app.GetMsg(config.TKeyModeLocal),
	}, nil)

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(app.Preferences.String(config.PrefCardDAVURL))
	sw.urlEntry.SetPlaceHolder(config.PlaceholderURL)

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(app.Preferences.String(config.PrefUsername))

	sw.passEntry = widget.NewPasswordEntry()
	if user := sw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}

	sw.pathEntry = widget.NewEntry()
	sw.pathEntry.SetText(app.Preferences.String(config.PrefLocalPath))

	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = app.validatePort

	sw.checkReminder = widget.NewCheck(app.GetMsg(config.TKeyLblEnableRem), nil)
	sw.checkReminder.Checked = app.Preferences.Bool(config.PrefReminderEnabled)

	sw.entryRemValue = NewNumericalEntry()
	sw.entryRemValue.SetText(strconv.Itoa(app.Preferences.IntWithFallback(config.PrefReminderValue, config.DefaultReminderValue)))

	sw.selectRemUnit = widget.NewSelect([]string{
		app.GetMsg(config.TKeyUnitDays),
		app.GetMsg(config.TKeyUnitHours),
		app.GetMsg(config.TKeyUnitMinutes),
	}, nil)
	switch app.Preferences.StringWithFallback(config.PrefReminderUnit, config.UnitDays) {
	case config.UnitHours:
		sw.selectRemUnit.SetSelected(app.GetMsg(config.TKeyUnitHours))
	case config.UnitMinutes:
		sw.selectRemUnit.SetSelected(app.GetMsg(config.TKeyUnitMinutes))
	default:
		sw.selectRemUnit.SetSelected(app.GetMsg(config.TKeyUnitDays))
	}

	sw.selectRemDir = widget.NewSelect([]string{
		app.GetMsg(config.TKeyDirBefore),
		app.GetMsg(config.TKeyDirAfter),
	}, nil)
	if app.Preferences.StringWithFallback(config.PrefReminderDir, config.DirBefore) == config.DirAfter {
		sw.selectRemDir.SetSelected(app.GetMsg(config.TKeyDirAfter))
	} else {
		sw.selectRemDir.SetSelected(app.GetMsg(config.TKeyDirBefore))
	}

	return sw
}

// validatePort accepts 1-65535.
func (app *CardApp) validatePort(s string) error {
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

// buildSourceCard constructs the recipient source selection UI.
func (app *CardApp) buildSourceCard(w fyne.Window, sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	browseBtn := widget.NewButton(app.GetMsg(config.TKeyBtnBrowse), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err == nil && r != nil {
				sw.pathEntry.SetText(r.URI().Path())
				_ = r.Close()
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
		d.Show()
	})

	itemURL := widget.NewFormItem(app.GetMsg(config.TKeyLblURL), sw.urlEntry)
	itemURL.HintText = app.GetMsg(config.TKeyHelpURL)
	webForm := widget.NewForm(
		itemURL,
		widget.NewFormItem(app.GetMsg(config.TKeyLblUser), sw.userEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPass), sw.passEntry),
	)
	localForm := container.NewBorder(nil, nil, nil, browseBtn, sw.pathEntry)

	applyVis := func(mode string) {
		webForm.Hide()
		localForm.Hide()
		switch mode {
		case config.SourceModeWeb:
			webForm.Show()
		case config.SourceModeLocal:
			localForm.Show()
		}
	}

	sw.modeSelect.OnChanged = func(label string) {
		applyVis(app.modeFromLabel(label))
		onLayoutChange()
	}
	sw.modeSelect.SetSelected(app.modeLabel(app.Preferences.String(config.PrefSourceMode)))
	applyVis(app.modeFromLabel(sw.modeSelect.Selected))

	return widget.NewCard(app.GetMsg(config.TKeyLblSource), app.GetMsg(config.TKeyHelpSource),
		container.NewVBox(sw.modeSelect, webForm, localForm))
}

// buildNotifCard constructs the calendar reminder UI.
func (app *CardApp) buildNotifCard(sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	lblStart := widget.NewLabel(app.GetMsg(config.TKeyLblStartDay))

	controls := container.NewHBox(sw.selectRemUnit, sw.selectRemDir, lblStart)
	row := container.NewBorder(nil, nil, nil, controls, sw.entryRemValue)

	sw.checkReminder.OnChanged = func(b bool) {
		if b {
			row.Show()
		} else {
			row.Hide()
		}
		onLayoutChange()
	}
	if !sw.checkReminder.Checked {
		row.Hide()
	}

	return widget.NewCard(app.GetMsg(config.TKeyLblNotif), "", container.NewVBox(sw.checkReminder, row))
}

func (app *CardApp) modeLabel(mode string) string {
	switch mode {
	case config.SourceModeWeb:
		return app.GetMsg(config.TKeyModeCardDAV)
	case config.SourceModeLocal:
		return app.GetMsg(config.TKeyModeLocal)
	default:
		return app.GetMsg(config.TKeyModeNone)
	}
}

func (app *CardApp) modeFromLabel(label string) string {
	switch label {
	case app.GetMsg(config.TKeyModeCardDAV):
		return config.SourceModeWeb
	case app.GetMsg(config.TKeyModeLocal):
		return config.SourceModeLocal
	default:
		return config.SourceModeNone
	}
}

// saveSettings persists the form. The preference listener then reloads the recipient.
func (app *CardApp) saveSettings(sw *settingsWidgets) {
	slog.Info(config.MsgSettingsSaved, config.LogKeyComponent, config.CompUISet)

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetString(config.PrefRecipientName, sw.nameEntry.Text)
	app.Preferences.SetString(config.PrefSenderName, sw.senderEntry.Text)
	app.Preferences.SetBool(config.PrefSoundEnabled, sw.soundCheck.Checked)
	app.Preferences.SetString(config.PrefSourceMode, app.modeFromLabel(sw.modeSelect.Selected))
	app.Preferences.SetString(config.PrefCardDAVURL, sw.urlEntry.Text)
	app.Preferences.SetString(config.PrefUsername, sw.userEntry.Text)
	app.Preferences.SetString(config.PrefLocalPath, sw.pathEntry.Text)

	if sw.userEntry.Text != "" && sw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, sw.userEntry.Text, sw.passEntry.Text); err != nil {
			slog.Error(config.ErrKeyringSave, config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		}
	}

	if sw.entryPort.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	}

	// An empty reminder value disables reminders even when the box is checked.
	if remValue := sw.entryRemValue.Text; remValue == "" {
		app.Preferences.SetBool(config.PrefReminderEnabled, false)
		slog.Info(config.MsgRemindersOff, config.LogKeyComponent, config.CompUISet)
	} else {
		app.Preferences.SetBool(config.PrefReminderEnabled, sw.checkReminder.Checked)
		if v, err := strconv.Atoi(remValue); err == nil {
			app.Preferences.SetInt(config.PrefReminderValue, v)
		}
	}

	unit := config.UnitDays
	switch sw.selectRemUnit.Selected {
	case app.GetMsg(config.TKeyUnitHours):
		unit = config.UnitHours
	case app.GetMsg(config.TKeyUnitMinutes):
		unit = config.UnitMinutes
	}
	app.Preferences.SetString(config.PrefReminderUnit, unit)

	dir := config.DirBefore
	if sw.selectRemDir.Selected == app.GetMsg(config.TKeyDirAfter) {
		dir = config.DirAfter
	}
	app.Preferences.SetString(config.PrefReminderDir, dir)

	app.Player.SetEnabled(sw.soundCheck.Checked)
	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	if app.card != nil {
		app.card.applyTexts()
	}
}

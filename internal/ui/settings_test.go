package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-birthday-card/internal/config"
	"github.com/zalando/go-keyring"
)

func TestSettings_PortValidation(t *testing.T) {
	app := setupTestApp(t).app

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"Valid", "18081", ""},
		{"Lowest", "1", ""},
		{"Highest", "65535", ""},
		{"Empty", "", "A port is required"},
		{"Zero", "0", "The port must be between 1 and 65535"},
		{"TooHigh", "70000", "The port must be between 1 and 65535"},
		{"Pasted text", "80a", "The port must be a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := app.validatePort(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestSettings_PrefilledFromPreferences(t *testing.T) {
	app := setupTestApp(t).app
	require.NoError(t, keyring.Set(config.KeyringService, "aleeha", "s3cret"))
	app.Preferences.SetString(config.PrefRecipientName, "Zara")
	app.Preferences.SetString(config.PrefUsername, "aleeha")
	app.Preferences.SetBool(config.PrefSoundEnabled, false)
	app.Preferences.SetString(config.PrefReminderUnit, config.UnitHours)
	app.Preferences.SetString(config.PrefReminderDir, config.DirAfter)

	sw := app.newSettingsWidgets()

	assert.Equal(t, "Zara", sw.nameEntry.Text)
	assert.Equal(t, "s3cret", sw.passEntry.Text)
	assert.False(t, sw.soundCheck.Checked)
	assert.Equal(t, config.DefaultPort, sw.entryPort.Text)
	assert.Equal(t, "hours", sw.selectRemUnit.Selected)
	assert.Equal(t, "after", sw.selectRemDir.Selected)
}

func TestSettings_SaveRoundTrip(t *testing.T) {
	app := setupTestApp(t).app
	sw := app.newSettingsWidgets()

	sw.langSelect.SetSelected("fr")
	sw.nameEntry.SetText("Zara")
	sw.senderEntry.SetText("Omar")
	sw.soundCheck.SetChecked(false)
	sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeCardDAV))
	sw.urlEntry.SetText("https://dav.example.com/zara.vcf")
	sw.userEntry.SetText("omar")
	sw.passEntry.SetText("hunter2")
	sw.entryPort.SetText("18090")
	sw.checkReminder.SetChecked(true)
	sw.entryRemValue.SetText("3")
	sw.selectRemUnit.SetSelected(app.GetMsg(config.TKeyUnitHours))
	sw.selectRemDir.SetSelected(app.GetMsg(config.TKeyDirAfter))

	app.saveSettings(sw)

	assert.Equal(t, "fr", app.Preferences.String(config.PrefLanguage))
	assert.Equal(t, "Zara", app.Preferences.String(config.PrefRecipientName))
	assert.Equal(t, "Omar", app.Preferences.String(config.PrefSenderName))
	assert.False(t, app.Preferences.Bool(config.PrefSoundEnabled))
	assert.False(t, app.Player.Enabled())
	assert.Equal(t, config.SourceModeWeb, app.Preferences.String(config.PrefSourceMode))
	assert.Equal(t, "18090", app.Preferences.String(config.PrefServerPort))
	assert.Equal(t, "PT3H", app.reminderTrigger())

	pass, err := keyring.Get(config.KeyringService, "omar")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", pass)

	assert.Equal(t, "Paramètres...", app.GetMsg(config.TKeyMenuSettings), "the localizer follows the saved language")
}

func TestSettings_EmptyReminderValueDisables(t *testing.T) {
	app := setupTestApp(t).app
	sw := app.newSettingsWidgets()
	sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeNone))
	sw.checkReminder.SetChecked(true)
	sw.entryRemValue.SetText("")

	app.saveSettings(sw)

	assert.False(t, app.Preferences.Bool(config.PrefReminderEnabled))
	assert.Empty(t, app.reminderTrigger())
	assert.Equal(t, config.SourceModeNone, app.Preferences.String(config.PrefSourceMode))
}

func TestSettings_ModeLabelsRoundTrip(t *testing.T) {
	app := setupTestApp(t).app

	for _, mode := range []string{config.SourceModeNone, config.SourceModeWeb, config.SourceModeLocal} {
		assert.Equal(t, mode, app.modeFromLabel(app.modeLabel(mode)))
	}
}

func TestSettingsWindow_Singleton(t *testing.T) {
	app := setupTestApp(t).app

	app.ShowSettingsWindow()
	require.NotNil(t, app.settingsWindow)
	first := app.settingsWindow

	app.ShowSettingsWindow()
	assert.Same(t, first, app.settingsWindow)

	first.Close()
	assert.Nil(t, app.settingsWindow)
}

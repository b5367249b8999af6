package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-birthday-card/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const localePattern = "locales/active.*.json"

// SetupI18n loads every embedded locale and selects the preferred language.
func (app *CardApp) SetupI18n() {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	paths, err := fs.Glob(localeFS, localePattern)
	if err != nil {
		slog.Error(config.ErrLocalesAccess, config.LogKeyComponent, config.CompI18n, config.LogKeyError, err)
		return
	}

	var loaded []string
	for _, p := range paths {
		lang, ok := localeCode(path.Base(p))
		if !ok {
			slog.Warn(config.MsgLocaleBadName, config.LogKeyComponent, config.CompI18n, config.LogKeyFile, p)
			continue
		}
		if _, err := bundle.LoadMessageFileFS(localeFS, p); err != nil {
			slog.Error(config.ErrLocaleLoad, config.LogKeyComponent, config.CompI18n, config.LogKeyFile, p, config.LogKeyError, err)
			continue
		}
		loaded = append(loaded, lang)
		slog.Debug(config.MsgLocaleLoaded, config.LogKeyComponent, config.CompI18n, config.LogKeyLang, lang)
	}

	app.SupportedLanguages = loaded
	app.I18nBundle = bundle
	app.UpdateLocalizer()
}

// localeCode extracts "fr" from "active.fr.json".
func localeCode(file string) (string, bool) {
	parts := strings.Split(file, ".")
	if len(parts) != 3 || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// UpdateLocalizer refreshes the translator based on the user's language preference.
func (app *CardApp) UpdateLocalizer() {
	if app.I18nBundle == nil {
		return
	}
	lang := app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage)
	app.Localizer = i18n.NewLocalizer(app.I18nBundle, lang)
}

// GetMsg translates a key, returning the key itself when it is unknown.
func (app *CardApp) GetMsg(key string) string {
	return app.GetMsgData(key, nil)
}

// GetMsgData translates a templated key such as "{{.Name}}".
func (app *CardApp) GetMsgData(key string, data map[string]interface{}) string {
	if app.Localizer == nil {
		return key
	}
	msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil || msg == "" {
		slog.Debug(config.MsgTransMissing, config.LogKeyComponent, config.CompI18n, config.LogKeyKey, key, config.LogKeyError, err)
		return key
	}
	return msg
}

// msgOr translates key and falls back to a printf-style English string.
func (app *CardApp) msgOr(key string, data map[string]interface{}, fallback string, args ...interface{}) string {
	if msg := app.GetMsgData(key, data); msg != key {
		return msg
	}
	return fmt.Sprintf(fallback, args...)
}

package ui_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-birthday-card/internal/config"
)

// keysToCheck lists every translation key referenced by the code.
var keysToCheck = []string{
	config.TKeyWinCard,
	config.TKeyWinSettings,
	config.TKeyMenuShowCard,
	config.TKeyMenuRelight,
	config.TKeyMenuSettings,
	config.TKeyTitle,
	config.TKeyRecipientLine,
	config.TKeyMakeWish,
	config.TKeyCandleHint,
	config.TKeyCandleProgress,
	config.TKeyCandleDone,
	config.TKeyBtnRelight,
	config.TKeyWishesTitle,
	config.TKeyWishPlaceholder,
	config.TKeyBtnAddWish,
	config.TKeyLetterTitle,
	config.TKeyLetterBody,
	config.TKeyLetterClosing,
	config.TKeyFooter,
	config.TKeyFormatDateTime,
	config.TKeyNotifCelebrate,
	config.TKeyNotifError,
	config.TKeyEvtSummary,
	config.TKeyEvtSummaryAge,
	config.TKeyLblGeneral,
	config.TKeyLblLanguage,
	config.TKeyHelpLanguage,
	config.TKeyLblRecipient,
	config.TKeyLblSender,
	config.TKeyLblSound,
	config.TKeyLblPort,
	config.TKeyHelpPort,
	config.TKeyLblSource,
	config.TKeyModeNone,
	config.TKeyModeCardDAV,
	config.TKeyModeLocal,
	config.TKeyBtnBrowse,
	config.TKeyLblURL,
	config.TKeyHelpURL,
	config.TKeyLblUser,
	config.TKeyLblPass,
	config.TKeyLblNotif,
	config.TKeyLblEnableRem,
	config.TKeyUnitDays,
	config.TKeyUnitHours,
	config.TKeyUnitMinutes,
	config.TKeyDirBefore,
	config.TKeyDirAfter,
	config.TKeyBtnSave,
	config.TKeyBtnCancel,
	config.TKeyLblFooter,
	config.TKeyErrPortReq,
	config.TKeyErrPortNum,
	config.TKeyErrPortRange,
	config.TKeyLblStartDay,
	config.TKeyHelpSender,
	config.TKeyHelpSource,
}

func loadLocale(t *testing.T, lang string) map[string]interface{} {
	t.Helper()
	content, err := os.ReadFile(filepath.Join("locales", "active."+lang+".json"))
	require.NoError(t, err, "must load active.%s.json", lang)

	var jsonMap map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be valid")
	return jsonMap
}

// TestI18nIntegrity ensures every key defined in config.go exists in every locale.
func TestI18nIntegrity(t *testing.T) {
	defined := make(map[string]bool, len(keysToCheck))
	for _, k := range keysToCheck {
		defined[k] = true
	}

	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			jsonMap := loadLocale(t, lang)

			for key := range defined {
				_, exists := jsonMap[key]
				assert.Truef(t, exists, "Key '%s' defined in config.go is missing in active.%s.json", key, lang)
			}

			for jsonKey := range jsonMap {
				if strings.HasPrefix(jsonKey, "_") {
					continue
				}
				assert.Truef(t, defined[jsonKey], "Key '%s' in active.%s.json is not used by the code", jsonKey, lang)
			}
		})
	}
}

// TestI18nTemplates keeps the template fields identical across languages.
func TestI18nTemplates(t *testing.T) {
	en := loadLocale(t, "en")
	fr := loadLocale(t, "fr")

	for _, field := range []string{"{{.Name}}", "{{.Age}}", "{{.Blown}}", "{{.Total}}"} {
		for key, value := range en {
			if strings.Contains(value.(string), field) {
				assert.Containsf(t, fr[key], field, "French %s lost %s", key, field)
			}
		}
	}
}

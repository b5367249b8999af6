package ui_test

import (
	"testing"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-birthday-card/internal/ui"
)

func TestFilteredEntry_Filters(t *testing.T) {
	tests := []struct {
		name  string
		entry *ui.FilteredEntry
		typed string
		want  string
	}{
		{"Port digits", ui.NewNumericalEntry(), "18081", "18081"},
		{"Port drops letters", ui.NewNumericalEntry(), "8a0Z8-1", "8081"},
		{"Port drops spaces", ui.NewNumericalEntry(), " 80 ", "80"},
		{"Wish keeps spaces", ui.NewWishEntry(), " hi there ", " hi there "},
		{"Wish drops tabs", ui.NewWishEntry(), "a\tb", "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := test.NewWindow(tt.entry)
			defer window.Close()

			for _, r := range tt.typed {
				tt.entry.TypedRune(r)
			}

			assert.Equal(t, tt.want, tt.entry.Text)
		})
	}
}

func TestNumericalEntry_Keyboard(t *testing.T) {
	assert.Equal(t, mobile.NumberKeyboard, ui.NewNumericalEntry().Keyboard())
}

// SetText bypasses the rune filter; validation happens separately.
func TestNumericalEntry_DirectSetText(t *testing.T) {
	entry := ui.NewNumericalEntry()

	entry.SetText("abc")

	assert.Equal(t, "abc", entry.Text)
}

func TestWishEntry_KeepsPrintableText(t *testing.T) {
	entry := ui.NewWishEntry()
	window := test.NewWindow(entry)
	defer window.Close()

	test.Type(entry, "Joy to Haram 🎂")
	entry.TypedRune('\x07')

	assert.Equal(t, "Joy to Haram 🎂", entry.Text)
	assert.Equal(t, mobile.DefaultKeyboard, entry.Keyboard())
}

func TestFilteredEntry_NilFilterAcceptsEverything(t *testing.T) {
	entry := ui.NewFilteredEntry(nil, mobile.DefaultKeyboard)
	window := test.NewWindow(entry)
	defer window.Close()

	test.Type(entry, "a1-")

	assert.Equal(t, "a1-", entry.Text)
}

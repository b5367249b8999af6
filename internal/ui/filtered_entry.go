package ui

import (
	"unicode"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// FilteredEntry is an Entry that drops typed runes rejected by Accept.
// Pasted text bypasses the filter; attach a Validator when that matters.
type FilteredEntry struct {
	widget.Entry

	Accept   func(rune) bool
	keyboard mobile.KeyboardType
}

// NewFilteredEntry creates an entry accepting only runes for which accept is true.
func NewFilteredEntry(accept func(rune) bool, keyboard mobile.KeyboardType) *FilteredEntry {
	entry := &FilteredEntry{Accept: accept, keyboard: keyboard}
	entry.ExtendBaseWidget(entry)
	return entry
}

// NewNumericalEntry accepts digits only and asks for a number pad on mobile.
func NewNumericalEntry() *FilteredEntry {
	return NewFilteredEntry(func(r rune) bool { return r >= '0' && r <= '9' }, mobile.NumberKeyboard)
}

// NewWishEntry is a single-line entry for wishes. Control characters are dropped.
func NewWishEntry() *FilteredEntry {
	return NewFilteredEntry(unicode.IsPrint, mobile.DefaultKeyboard)
}

// TypedRune intercepts text input events.
func (e *FilteredEntry) TypedRune(r rune) {
	if e.Accept == nil || e.Accept(r) {
		e.Entry.TypedRune(r)
	}
}

// Keyboard overrides the default keyboard type.
func (e *FilteredEntry) Keyboard() mobile.KeyboardType {
	return e.keyboard
}

package engine

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/tartampluch/go-birthday-card/internal/config"
)

// WishList is an append-only, in-memory list of wishes.
type WishList struct {
	mu        sync.RWMutex
	wishes    []string
	recipient string
}

// NewWishList returns a list seeded with the given wishes. New wishes have the
// placeholder name replaced by recipient.
func NewWishList(recipient string, seed ...string) *WishList {
	wishes := make([]string, len(seed))
	copy(wishes, seed)
	return &WishList{wishes: wishes, recipient: recipient}
}

// SetRecipient changes the name substituted into future wishes.
func (w *WishList) SetRecipient(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.recipient = name
}

// Add appends the trimmed text, with the first placeholder name replaced by the
// recipient's name. Blank text is ignored and reported with ok == false.
func (w *WishList) Add(text string) (wish string, ok bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		slog.Debug(config.MsgWishIgnored, config.LogKeyComponent, config.CompWishes)
		return "", false
	}

	w.mu.Lock()
	wish = strings.Replace(trimmed, config.WishPlaceholderName, w.recipient, 1)
	w.wishes = append(w.wishes, wish)
	count := len(w.wishes)
	w.mu.Unlock()

	slog.Debug(config.MsgWishAdded,
		config.LogKeyComponent, config.CompWishes,
		config.LogKeyCount, count)
	return wish, true
}

// All returns a copy of the wishes in insertion order.
func (w *WishList) All() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]string, len(w.wishes))
	copy(out, w.wishes)
	return out
}

// Len returns the number of wishes.
func (w *WishList) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.wishes)
}

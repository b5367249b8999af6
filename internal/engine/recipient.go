package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-birthday-card/internal/config"
)

// Recipient is the person the card is addressed to.
type Recipient struct {
	Name   string
	Sender string

	// Birthday is zero when the source carries no usable BDAY.
	Birthday  time.Time
	YearKnown bool
}

// HasBirthday reports whether a birth date is known.
func (r Recipient) HasBirthday() bool {
	return !r.Birthday.IsZero()
}

// RecipientConfig describes where the recipient comes from.
type RecipientConfig struct {
	Mode      string // config.SourceModeNone, config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Absolute path to the .vcf file
	WebURL    string // CardDAV or plain HTTP(S) vCard URL
	WebUser   string // HTTP Basic Auth Username
	WebPass   string // HTTP Basic Auth Password

	// Name and Sender come from the preferences. Name is the fallback when
	// the vCard has no usable name.
	Name   string
	Sender string
}

// RecipientLoader resolves a RecipientConfig into a Recipient.
type RecipientLoader struct {
	Fetcher ContactFetcher
}

// Load returns the recipient described by cfg. With no source mode the
// preference names are used as-is.
func (l *RecipientLoader) Load(ctx context.Context, cfg RecipientConfig) (Recipient, error) {
	rec := Recipient{
		Name:   firstNonEmpty(cfg.Name, config.DefaultRecipient),
		Sender: firstNonEmpty(cfg.Sender, config.DefaultSender),
	}
	if cfg.Mode == config.SourceModeNone {
		return rec, nil
	}

	log := slog.With(
		config.LogKeyComponent, config.CompRecipient,
		config.LogKeyMode, cfg.Mode,
	)

	reader, err := l.acquireStream(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return rec, ctx.Err()
		}
		return rec, fmt.Errorf("%s: %w", config.ErrRecipientLoad, err)
	}
	defer func() { _ = reader.Close() }()

	if err := ctx.Err(); err != nil {
		return rec, err
	}

	card, err := decodeRecipient(ctx, reader)
	if err != nil {
		return rec, err
	}

	if card.Name != "" {
		rec.Name = card.Name
	}
	rec.Birthday = card.Birthday
	rec.YearKnown = card.YearKnown

	log.Info(config.MsgRecipientLoaded,
		config.LogKeyName, rec.Name,
		config.LogKeyYearKnown, rec.YearKnown)
	return rec, nil
}

// acquireStream opens the appropriate data source based on configuration.
func (l *RecipientLoader) acquireStream(ctx context.Context, cfg RecipientConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if l.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return l.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

// decodeRecipient returns the first card carrying a name. Its BDAY is kept
// when it parses; an unparseable date leaves the birthday unknown.
func decodeRecipient(ctx context.Context, r io.Reader) (Recipient, error) {
	decoder := vcard.NewDecoder(r)
	for {
		if err := ctx.Err(); err != nil {
			return Recipient{}, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			return Recipient{}, errors.New(config.ErrNoRecipient)
		}
		if err != nil {
			// A broken stream cannot be resynchronised, so stop here.
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompRecipient,
				config.LogKeyError, err)
			return Recipient{}, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
		}

		name := cardName(card)
		if name == "" {
			continue
		}

		rec := Recipient{Name: name}
		if bday := card.Get(config.VCardBDAY); bday != nil && bday.Value != "" {
			birth, yearKnown, err := parseDate(bday.Value)
			if err != nil {
				slog.Debug(config.MsgSkippedDate,
					config.LogKeyComponent, config.CompRecipient,
					config.LogKeyValue, bday.Value)
			} else {
				rec.Birthday = birth
				rec.YearKnown = yearKnown
			}
		}
		return rec, nil
	}
}

// cardName prefers FN, then the given and family names of N.
func cardName(card vcard.Card) string {
	if fn := strings.TrimSpace(card.PreferredValue(config.VCardFN)); fn != "" {
		return fn
	}
	if n := card.Name(); n != nil {
		return strings.TrimSpace(strings.Join([]string{n.GivenName, n.FamilyName}, " "))
	}
	return ""
}

// parseDate handles the vCard date layouts seen in the wild.
func parseDate(value string) (time.Time, bool, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true, nil
		}
	}

	// Truncated dates carry no year; a leap year keeps --02-29 intact.
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

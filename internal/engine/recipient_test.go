package engine_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-birthday-card/internal/config"
	"github.com/tartampluch/go-birthday-card/internal/engine"
)

func webLoader(t *testing.T, body string) (*engine.RecipientLoader, *MockFetcher) {
	t.Helper()
	mockFetcher := new(MockFetcher)
	mockFetcher.On("Fetch", mock.Anything, "http://test.local", "user", "secret").
		Return(io.NopCloser(strings.NewReader(body)), nil)
	return &engine.RecipientLoader{Fetcher: mockFetcher}, mockFetcher
}

func webConfig() engine.RecipientConfig {
	return engine.RecipientConfig{
		Mode:    config.SourceModeWeb,
		WebURL:  "http://test.local",
		WebUser: "user",
		WebPass: "secret",
		Name:    "Pref Name",
		Sender:  "Pref Sender",
	}
}

func TestLoad_NoSourceUsesPreferences(t *testing.T) {
	loader := &engine.RecipientLoader{}

	rec, err := loader.Load(context.Background(), engine.RecipientConfig{Name: "Zara", Sender: "Omar"})

	require.NoError(t, err)
	assert.Equal(t, "Zara", rec.Name)
	assert.Equal(t, "Omar", rec.Sender)
	assert.False(t, rec.HasBirthday())
}

func TestLoad_NoSourceFallsBackToDefaults(t *testing.T) {
	loader := &engine.RecipientLoader{}

	rec, err := loader.Load(context.Background(), engine.RecipientConfig{Name: "  "})

	require.NoError(t, err)
	assert.Equal(t, config.DefaultRecipient, rec.Name)
	assert.Equal(t, config.DefaultSender, rec.Sender)
}

func TestLoad_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aiman.vcf")
	content := "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Aiman Khan\r\nBDAY:2001-08-14\r\nEND:VCARD\r\n"
	require.NoError(t, os.WriteFile(path, []byte(content), config.FilePermUserRW))

	loader := &engine.RecipientLoader{}
	rec, err := loader.Load(context.Background(), engine.RecipientConfig{
		Mode:      config.SourceModeLocal,
		LocalPath: path,
		Sender:    "Aleeha",
	})

	require.NoError(t, err)
	assert.Equal(t, "Aiman Khan", rec.Name)
	assert.Equal(t, "Aleeha", rec.Sender)
	assert.True(t, rec.YearKnown)
	assert.Equal(t, time.Date(2001, 8, 14, 0, 0, 0, 0, time.UTC), rec.Birthday)
}

func TestLoad_Web_FirstNamedCardWins(t *testing.T) {
	body := `BEGIN:VCARD
VERSION:3.0
BDAY:1990-01-01
END:VCARD
BEGIN:VCARD
VERSION:3.0
N:Khan;Aiman;;;
BDAY:--0229
END:VCARD
BEGIN:VCARD
VERSION:3.0
FN:Someone Else
END:VCARD`
	loader, mockFetcher := webLoader(t, body)

	rec, err := loader.Load(context.Background(), webConfig())

	require.NoError(t, err)
	assert.Equal(t, "Aiman Khan", rec.Name, "N is used when FN is absent")
	assert.False(t, rec.YearKnown)
	assert.Equal(t, time.Date(config.DefaultLeapYear, 2, 29, 0, 0, 0, 0, time.UTC), rec.Birthday)
	mockFetcher.AssertExpectations(t)
}

func TestLoad_Web_NoNamedCard(t *testing.T) {
	loader, _ := webLoader(t, "BEGIN:VCARD\nVERSION:3.0\nBDAY:1990-01-01\nEND:VCARD")

	rec, err := loader.Load(context.Background(), webConfig())

	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrNoRecipient)
	assert.Equal(t, "Pref Name", rec.Name, "preferences survive a failed load")
}

func TestLoad_Web_MalformedStream(t *testing.T) {
	loader, _ := webLoader(t, "this is not a vcard")

	_, err := loader.Load(context.Background(), webConfig())

	require.Error(t, err)
}

func TestLoad_Web_NetworkError(t *testing.T) {
	expectedErr := errors.New("network unreachable")
	mockFetcher := new(MockFetcher)
	mockFetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, expectedErr)
	loader := &engine.RecipientLoader{Fetcher: mockFetcher}

	rec, err := loader.Load(context.Background(), webConfig())

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Contains(t, err.Error(), config.ErrRecipientLoad)
	assert.Equal(t, "Pref Name", rec.Name)
}

func TestLoad_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name    string
		loader  *engine.RecipientLoader
		cfg     engine.RecipientConfig
		wantErr string
	}{
		{"Local without path", &engine.RecipientLoader{}, engine.RecipientConfig{Mode: config.SourceModeLocal}, config.ErrLocalPathEmpty},
		{"Web without URL", &engine.RecipientLoader{Fetcher: new(MockFetcher)}, engine.RecipientConfig{Mode: config.SourceModeWeb}, config.ErrWebURLEmpty},
		{"Web without fetcher", &engine.RecipientLoader{}, engine.RecipientConfig{Mode: config.SourceModeWeb, WebURL: "http://x"}, config.ErrFetcherMissing},
		{"Unknown mode", &engine.RecipientLoader{}, engine.RecipientConfig{Mode: "carrier-pigeon"}, config.ErrModeUnsupport},
		{"Missing file", &engine.RecipientLoader{}, engine.RecipientConfig{Mode: config.SourceModeLocal, LocalPath: "/does/not/exist.vcf"}, config.ErrRecipientLoad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.loader.Load(context.Background(), tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cancel.vcf")
	require.NoError(t, os.WriteFile(path, []byte("BEGIN:VCARD\nVERSION:3.0\nFN:X\nEND:VCARD"), config.FilePermUserRW))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := &engine.RecipientLoader{}
	_, err := loader.Load(ctx, engine.RecipientConfig{Mode: config.SourceModeLocal, LocalPath: path})

	assert.Equal(t, context.Canceled, err)
}

func TestLoad_DateFormats_TableDriven(t *testing.T) {
	tests := []struct {
		name      string
		bdayValue string
		want      time.Time
		yearKnown bool
	}{
		{"ISO8601 Standard", "1990-10-25", time.Date(1990, 10, 25, 0, 0, 0, 0, time.UTC), true},
		{"Basic Format", "19901025", time.Date(1990, 10, 25, 0, 0, 0, 0, time.UTC), true},
		{"RFC3339", "1990-10-25T00:00:00Z", time.Date(1990, 10, 25, 0, 0, 0, 0, time.UTC), true},
		{"Truncated (Month-Day)", "--10-25", time.Date(config.DefaultLeapYear, 10, 25, 0, 0, 0, 0, time.UTC), false},
		{"Truncated Basic", "--1025", time.Date(config.DefaultLeapYear, 10, 25, 0, 0, 0, 0, time.UTC), false},
		{"Garbage Data", "not-a-date", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := webLoader(t, "BEGIN:VCARD\nVERSION:3.0\nFN:Test\nBDAY:"+tt.bdayValue+"\nEND:VCARD")

			rec, err := loader.Load(context.Background(), webConfig())

			require.NoError(t, err, "a bad date never fails the load")
			assert.Equal(t, "Test", rec.Name)
			assert.Equal(t, tt.want, rec.Birthday)
			assert.Equal(t, tt.yearKnown, rec.YearKnown)
		})
	}
}

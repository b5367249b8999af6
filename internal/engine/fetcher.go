package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"

	"github.com/tartampluch/go-birthday-card/internal/config"
)

// ContactFetcher retrieves a vCard stream describing the card's recipient.
type ContactFetcher interface {
	Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error)
}

// HTTPFetcher implements ContactFetcher over HTTP(S) with optional basic auth.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher creates a fetcher with the configured request timeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{
			Timeout: config.HTTPTimeout,
		},
	}
}

// Fetch downloads the vCard at targetURL. Query strings are stripped from logs
// and the body is capped at MaxHTTPResponseSize. A 200 carrying some other
// document, such as the HTML login page of an expired share link, is an error.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL, user, pass string) (io.ReadCloser, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, u.Scheme+"://"+u.Host+u.Path),
	)
	log.Debug(config.MsgDownloadStart)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRequest, err)
	}
	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	if user != "" || pass != "" {
		req.SetBasicAuth(user, pass)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrNetwork, err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.Warn(config.MsgBadStatus, slog.Int(config.LogKeyStatus, resp.StatusCode))
		return nil, fmt.Errorf("%s: %d %s", config.ErrHTTPStatus, resp.StatusCode, resp.Status)
	}

	if ct := resp.Header.Get(config.HeaderContentType); !isContactType(ct) {
		_ = resp.Body.Close()
		log.Warn(config.MsgBadContentType, slog.String(config.LogKeyMime, ct))
		return nil, fmt.Errorf("%s: %s", config.ErrContentType, ct)
	}

	log.Info(config.MsgDownloading, slog.Int64(config.LogKeyLength, resp.ContentLength))

	return &limitedReadCloser{
		Reader: io.LimitReader(resp.Body, config.MaxHTTPResponseSize),
		Closer: resp.Body,
	}, nil
}

// isContactType accepts the vCard media types plus the generic ones plain
// file hosts serve .vcf files with.
func isContactType(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch mediaType {
	case config.MimeVCard, config.MimeXVCard, config.MimeDirectory,
		config.MimeTextPlain, config.MimeOctetStream:
		return true
	}
	return false
}

// limitedReadCloser closes the underlying body while reading through a limit.
type limitedReadCloser struct {
	io.Reader
	io.Closer
}

package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/tartampluch/go-birthday-card/internal/config"
)

// feed stores the rendered birthday calendar and its metadata for HTTP caching.
type feed struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// CardServer serves the recipient's birthday feed and the card metrics on localhost.
type CardServer struct {
	// Reads vastly outnumber updates, so the feed is swapped atomically
	// instead of guarded by a lock.
	cache   atomic.Pointer[feed]
	metrics http.Handler

	Port string
}

// NewCardServer creates a server. metrics may be nil to leave /metrics unrouted.
func NewCardServer(port string, metrics http.Handler) *CardServer {
	return &CardServer{
		Port:    port,
		metrics: metrics,
	}
}

// Router returns the HTTP routes of the server.
func (s *CardServer) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc(config.RouteRoot, s.handleFeed).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(config.RouteCalendar, s.handleFeed).Methods(http.MethodGet, http.MethodHead)
	if s.metrics != nil {
		r.Handle(config.RouteMetrics, s.metrics).Methods(http.MethodGet)
	}
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	r.Use(logRequests)
	return r
}

// Start runs the HTTP server and blocks until the context is cancelled.
func (s *CardServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Router(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the served feed.
func (s *CardServer) Update(data []byte) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	s.cache.Store(&feed{
		data:         data,
		etag:         etag,
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	})

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// handleFeed serves the iCalendar content with conditional request support.
func (s *CardServer) handleFeed(w http.ResponseWriter, r *http.Request) {
	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if notModified(r, item) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

// notModified evaluates If-None-Match first, then If-Modified-Since.
func notModified(r *http.Request, item *feed) bool {
	if match := r.Header.Get(config.HeaderIfNoneMatch); match != "" {
		return match == item.etag
	}
	since := r.Header.Get(config.HeaderIfModifiedSince)
	if since == "" {
		return false
	}
	clientTime, err := time.Parse(http.TimeFormat, since)
	if err != nil {
		return false
	}
	serverTime, err := time.Parse(http.TimeFormat, item.lastModified)
	if err != nil {
		return false
	}
	return !serverTime.After(clientTime)
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(config.HeaderAllow, config.AllowedMethods)
	http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
}

// logRequests is a mux middleware logging every request at debug level.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug(config.MsgHTTPRequest,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyMethod, r.Method,
			config.LogKeyPath, r.URL.Path,
			config.LogKeyDuration, time.Since(start).Milliseconds(),
		)
	})
}

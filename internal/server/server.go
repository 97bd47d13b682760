// Package server exposes the deck pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz             liveness and build version
//	GET  /v1/styles           highlight styles accepted by ?style=
//	POST /v1/decks?format=md  outline body in, rendered artifact out
//
// The outline encoding follows the request Content-Type (JSON unless it
// names TOML or YAML). Cached artifacts are scoped per X-Client-ID header.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/slidegen/pkg/buildinfo"
	"github.com/matzehuels/slidegen/pkg/cache"
	"github.com/matzehuels/slidegen/pkg/deck"
	apperrors "github.com/matzehuels/slidegen/pkg/errors"
	"github.com/matzehuels/slidegen/pkg/highlight"
	"github.com/matzehuels/slidegen/pkg/outline"
	"github.com/matzehuels/slidegen/pkg/pipeline"
)

// ClientHeader names the header whose value scopes cache keys.
const ClientHeader = "X-Client-ID"

// Default limits, used when Options leaves them zero.
const (
	DefaultMaxBody = 4 << 20
	DefaultTimeout = 30 * time.Second
)

var clientIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// Options configures a Server.
type Options struct {
	Theme   deck.Theme
	MaxBody int64
	Timeout time.Duration
}

// Server serves the HTTP API.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	theme   deck.Theme
	maxBody int64
	timeout time.Duration
}

// New returns a server rendering with runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if opts.Theme.Width == 0 {
		opts.Theme = deck.DefaultTheme()
	}
	if opts.MaxBody <= 0 {
		opts.MaxBody = DefaultMaxBody
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Server{
		runner:  runner,
		logger:  logger,
		theme:   opts.Theme,
		maxBody: opts.MaxBody,
		timeout: opts.Timeout,
	}
}

// Handler returns the chi router with middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/styles", s.styles)
		r.With(middleware.RequestSize(s.maxBody)).Post("/decks", s.createDeck)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.Info("request",
				"id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).Round(time.Millisecond))
		}()
		next.ServeHTTP(ww, r)
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) styles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"default": s.theme.Code.Style, "styles": highlight.Styles()})
}

func (s *Server) createDeck(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.DefaultFormat
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.fail(w, r, err)
		return
	}

	theme := s.theme
	if style := r.URL.Query().Get("style"); style != "" {
		if !highlight.HasStyle(style) {
			s.fail(w, r, apperrors.New(apperrors.ErrCodeInvalidTheme, "unknown style %q", style))
			return
		}
		theme.Code.Style = style
	}
	if lang := r.URL.Query().Get("language"); lang != "" {
		theme.Code.Language = lang
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE",
				fmt.Sprintf("outline exceeds %d bytes", tooLarge.Limit))
			return
		}
		s.fail(w, r, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	runner, err := s.scopedRunner(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	res, err := runner.Execute(r.Context(), pipeline.Options{
		Data:        body,
		InputFormat: outline.FormatFromContentType(r.Header.Get("Content-Type")),
		Formats:     []string{format},
		Theme:       theme,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", pipeline.ContentType(format))
	h.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s%s"`, Filename(res.Deck.Title), pipeline.Extension(format)))
	h.Set("X-Deck-ID", res.Deck.ID)
	h.Set("X-Slide-Count", fmt.Sprint(res.Stats.Slides))
	if res.CacheInfo.RenderHit {
		h.Set("X-Cache", "hit")
	} else {
		h.Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// scopedRunner returns a runner whose cache keys carry the client prefix.
func (s *Server) scopedRunner(r *http.Request) (*pipeline.Runner, error) {
	id := r.Header.Get(ClientHeader)
	if id == "" {
		return s.runner, nil
	}
	if !clientIDPattern.MatchString(id) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid %s header", ClientHeader)
	}
	scoped := *s.runner
	scoped.Keyer = cache.NewScopedKeyer(s.runner.Keyer, "client:"+id+":")
	return &scoped, nil
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= 500 {
		s.logger.Error("request failed", "id", middleware.GetReqID(r.Context()), "err", err)
	}
	code := string(apperrors.GetCode(err))
	if code == "" {
		code = string(apperrors.ErrCodeInternal)
	}
	writeError(w, status, code, apperrors.UserMessage(err))
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Error: msg, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var unsafeFilename = regexp.MustCompile(`[^a-z0-9]+`)

// Filename turns a deck title into a download name, "slides" when empty.
func Filename(title string) string {
	name := strings.Trim(unsafeFilename.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if name == "" {
		return "slides"
	}
	if len(name) > 64 {
		name = strings.TrimRight(name[:64], "-")
	}
	return name
}

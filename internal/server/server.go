package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"
	"golang.org/x/sync/semaphore"

	"github.com/example/go-piglatin/internal/config"
	"github.com/example/go-piglatin/internal/dictionary"
	"github.com/example/go-piglatin/internal/piglatin"
)

// ParseLogLevel converts a case-insensitive level string to slog.Level.
// An empty string returns slog.LevelInfo. Unknown strings return an error.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}

// NewTranslator opens the configured dictionary and builds a translator
// with the configured separators.
func NewTranslator(cfg config.Config) (*piglatin.Translator, error) {
	dict, err := dictionary.Open(cfg.Paths.DictionaryPath)
	if err != nil {
		return nil, err
	}
	tr, err := piglatin.New(dict, piglatin.WithSeparators(cfg.Translator.Separators))
	if err != nil {
		return nil, fmt.Errorf("build translator: %w", err)
	}
	return tr, nil
}

// ---------------------------------------------------------------------------
// Functional options
// ---------------------------------------------------------------------------

type options struct {
	maxTextBytes     int
	workers          int
	requestTimeout   time.Duration
	corsOrigins      []string
	normalizeUnicode bool
	logger           *slog.Logger
}

func defaultOptions() options {
	return options{
		maxTextBytes:   64 * 1024,
		workers:        4,
		requestTimeout: 10 * time.Second,
		logger:         slog.Default(),
	}
}

// Option configures the HTTP handler.
type Option func(*options)

// WithMaxTextBytes sets the maximum allowed text length in bytes for
// POST /encode and POST /decode.
func WithMaxTextBytes(n int) Option {
	return func(o *options) { o.maxTextBytes = n }
}

// WithWorkers sets the maximum number of concurrent translations. Zero or
// less disables the limit.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithRequestTimeout sets the per-request translation deadline.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) { o.requestTimeout = d }
}

// WithCORSOrigins sets the origins allowed to call the API from a browser.
// An empty list disables CORS handling.
func WithCORSOrigins(origins []string) Option {
	return func(o *options) { o.corsOrigins = origins }
}

// WithNormalizeUnicode composes request text to NFC before translating.
func WithNormalizeUnicode(on bool) Option {
	return func(o *options) { o.normalizeUnicode = on }
}

// WithLogger sets the slog.Logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// ---------------------------------------------------------------------------
// handler
// ---------------------------------------------------------------------------

// handler holds the dependencies needed to serve HTTP requests.
type handler struct {
	tr   *piglatin.Translator
	opts options
	sem  *semaphore.Weighted // worker pool, nil when unlimited
	log  *slog.Logger
}

// NewHandler returns an http.Handler that serves /health, /lookup,
// POST /encode and POST /decode.
func NewHandler(tr *piglatin.Translator, optFns ...Option) http.Handler {
	return newHandler(tr, optFns...).routes()
}

func newHandler(tr *piglatin.Translator, optFns ...Option) *handler {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.logger == nil {
		opts.logger = slog.Default()
	}

	h := &handler{
		tr:   tr,
		opts: opts,
		log:  opts.logger,
	}
	if opts.workers > 0 {
		h.sem = semaphore.NewWeighted(int64(opts.workers))
	}
	return h
}

func (h *handler) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/lookup", h.handleLookup)
	mux.HandleFunc("/encode", h.handleEncode)
	mux.HandleFunc("/decode", h.handleDecode)

	var next http.Handler = mux
	if len(h.opts.corsOrigins) > 0 {
		c := cors.New(cors.Options{
			AllowedOrigins: h.opts.corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", requestIDHeader},
			ExposedHeaders: []string{requestIDHeader},
		})
		next = c.Handler(next)
	}
	return withRequestID(next)
}

const requestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// withRequestID tags every request with the caller's X-Request-ID or a
// fresh UUID, and echoes it in the response.
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Words   int    `json:"words,omitempty"`
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{Status: "ok", Version: buildVersion()}
	if n, ok := h.tr.Dictionary().(interface{ Len() int }); ok {
		resp.Words = n.Len()
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ---------------------------------------------------------------------------
// Server: HTTP lifecycle around the handler
// ---------------------------------------------------------------------------

// Server wires the HTTP handler into a net/http.Server with graceful shutdown.
type Server struct {
	cfg             config.Config
	tr              *piglatin.Translator
	shutdownTimeout time.Duration
}

// New returns a Server for cfg. A nil translator is built from cfg when the
// server starts.
func New(cfg config.Config, tr *piglatin.Translator) *Server {
	shutdown := 30 * time.Second
	if cfg.Server.ShutdownTimeout > 0 {
		shutdown = time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	}
	return &Server{
		cfg:             cfg,
		tr:              tr,
		shutdownTimeout: shutdown,
	}
}

// WithShutdownTimeout overrides the graceful-shutdown drain period.
func (s *Server) WithShutdownTimeout(d time.Duration) *Server {
	s.shutdownTimeout = d
	return s
}

func (s *Server) handlerOptions() []Option {
	return []Option{
		WithWorkers(s.cfg.Server.Workers),
		WithMaxTextBytes(s.cfg.Server.MaxTextBytes),
		WithRequestTimeout(time.Duration(s.cfg.Server.RequestTimeout) * time.Second),
		WithCORSOrigins(s.cfg.Server.CORSOrigins),
		WithNormalizeUnicode(s.cfg.Translator.NormalizeUnicode),
	}
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	tr := s.tr
	if tr == nil {
		var err error
		tr, err = NewTranslator(s.cfg)
		if err != nil {
			return err
		}
	}

	httpServer := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           NewHandler(tr, s.handlerOptions()...),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("http listen: %w", err)
	}
}

// ProbeHTTP checks that a server answers GET /health on addr.
func ProbeHTTP(addr string) error {
	resp, err := http.Get("http://" + addr + "/health") //nolint:noctx
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status: %s", resp.Status)
	}
	return nil
}

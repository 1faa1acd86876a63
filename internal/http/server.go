package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kassenbuch/internal/cache"
	"kassenbuch/internal/core"
	"kassenbuch/internal/log"
	"kassenbuch/internal/middleware/ratelimit"
	"kassenbuch/internal/middleware/security"
	"kassenbuch/internal/middleware/trace"
	"kassenbuch/internal/view"
	appweb "kassenbuch/web"
)

// Ledger is what the UI needs from the configured backend.
type Ledger interface {
	SelectAllOrdered(ctx context.Context) ([]core.Entry, error)
	Create(ctx context.Context, in core.NewEntry) (core.Entry, error)
}

// Options configures NewServer. Zero values fall back to the defaults of the
// configuration layer.
type Options struct {
	Addr               string
	Ledger             Ledger
	Ready              func(ctx context.Context) error
	EventsHealthy      func() bool
	Locale             string
	Currency           string
	RateLimitPerMinute int
	MetricsEnabled     bool
	Logger             *log.Logger
}

// Server is the local ledger UI. It holds a single view.Session, so every
// browser tab looks at the same range and mode.
type Server struct {
	http.Server
	templates *template.Template
	ledger    Ledger
	ready     func(ctx context.Context) error
	publishOK func() bool
	session   *view.Session
	locale    core.Locale
	currency  string

	limiter *ratelimit.Limiter
	charts  *cache.LRUCache[string, []byte]
	caches  *cache.Manager

	logger  *log.Logger
	events  *log.StructuredLogger
	started time.Time

	shutdownOnce sync.Once
}

const storeTimeout = 7 * time.Second

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentHTTP)
	if opts.Currency == "" {
		opts.Currency = "€"
	}

	agg := view.NewAggregator(opts.Locale, opts.Currency)
	s := &Server{
		ledger:    opts.Ledger,
		ready:     opts.Ready,
		publishOK: opts.EventsHealthy,
		session:   view.NewSession(agg),
		locale:    agg.Locale,
		currency:  opts.Currency,
		limiter:   ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		charts:    cache.NewLRUCache[string, []byte](32, 10*time.Minute),
		caches:    cache.NewManager(logger.Logger),
		logger:    logger,
		events:    log.NewStructuredLogger(logger),
		started:   time.Now(),
	}
	s.caches.Register(s.charts)
	s.caches.StartCleanup(10 * time.Minute)

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Warn("Failed parsing templates", log.FieldError, err)
	} else {
		s.templates = t
	}

	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           s.routes(opts.MetricsEnabled),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes(metricsEnabled bool) http.Handler {
	r := chi.NewRouter()

	tracer := trace.NewMiddleware(s.logger, security.ClientIP)
	r.Use(middleware.Recoverer)
	r.Use(log.Middleware(s.logger))
	r.Use(tracer.Handler)
	r.Use(security.Headers(security.DefaultHeadersConfig()))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		r.With(security.StaticAssets(3600)).Handle("/static/*", static)
	} else {
		s.logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	limited := s.limiter.Middleware(security.ClientIP, func(w http.ResponseWriter, r *http.Request) {
		msg := "Zu viele Anfragen. Bitte später erneut versuchen."
		ErrorResponse(http.StatusTooManyRequests, msg).
			TriggerErrorNotification(msg).
			Header("Retry-After", "60").
			Write(w)
	})

	r.Get("/", s.handleIndex)
	r.With(limited).Post("/entries", s.handleCreateEntry)
	r.Route("/ui", func(r chi.Router) {
		r.Get("/ledger", s.handleLedger)
		r.Get("/latest", s.handleLatest)
		r.Get("/chart.png", s.handleChart)
		r.With(limited).Post("/range", s.handleRange)
		r.With(limited).Post("/mode", s.handleMode)
	})
	r.Get("/api/view", s.handleAPIView)

	return r
}

// Shutdown stops the background goroutines and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.caches.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// Session exposes the presentation state, mainly for tests and the CLI.
func (s *Server) Session() *view.Session {
	return s.session
}

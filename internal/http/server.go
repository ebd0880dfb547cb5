// Package http serves the pricing, overdue and report operations as a JSON
// API over net/http.
package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"pousada/internal/backend"
	"pousada/internal/cache"
	"pousada/internal/core"
	"pousada/internal/holiday"
	"pousada/internal/log"
	"pousada/internal/middleware/ratelimit"
	"pousada/internal/middleware/trace"
	"pousada/internal/overdue"
	"pousada/internal/pricing"
)

const (
	snapshotKey     = "all"
	sourceTimeout   = 7 * time.Second
	cleanupInterval = 10 * time.Minute
)

// Options configures NewServer. Zero values fall back to defaults.
type Options struct {
	Addr         string
	Source       backend.Backend
	DueSoonDays  int
	PendingLimit int
	// CacheTTL bounds how long a source snapshot is reused; 0 disables caching.
	CacheTTL  time.Duration
	RateLimit ratelimit.Config
	Logger    *log.Logger
	// Now is the server clock used for default reference dates.
	Now func() time.Time
}

type Server struct {
	http.Server
	source       backend.Backend
	calendar     *holiday.Calendar
	engine       *pricing.Engine
	classifier   overdue.Classifier
	pendingLimit int
	logger       *log.Logger
	now          func() time.Time
	started      time.Time

	rateLimiter     *ratelimit.Limiter
	traceMiddleware *trace.Middleware

	cacheTTL   time.Duration
	unitsCache *cache.LRUCache[[]core.Unit]
	txCache    *cache.LRUCache[[]core.Transaction]
	caches     *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := &Server{
		source:       opts.Source,
		calendar:     holiday.Default,
		engine:       pricing.NewEngine(holiday.Default),
		classifier:   overdue.Classifier{DueSoonDays: opts.DueSoonDays},
		pendingLimit: opts.PendingLimit,
		logger:       logger.WithComponent(log.ComponentHTTP),
		now:          now,
		started:      now(),
		rateLimiter:  ratelimit.NewLimiter(opts.RateLimit),
		cacheTTL:     opts.CacheTTL,
		unitsCache:   cache.NewLRUCache[[]core.Unit](1, opts.CacheTTL),
		txCache:      cache.NewLRUCache[[]core.Transaction](1, opts.CacheTTL),
	}
	s.traceMiddleware = trace.NewMiddleware(logger, extractClientIP)

	cacheLogger := logger.WithComponent(log.ComponentCache)
	s.caches = cache.NewManager(func(removed int) {
		cacheLogger.Debug("Cache cleanup completed", "entries_removed", removed)
	})
	s.caches.Register(s.unitsCache)
	s.caches.Register(s.txCache)
	s.caches.StartCleanup(context.Background(), cleanupInterval)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /api/holidays", s.handleHolidays)
	mux.HandleFunc("GET /api/units", s.handleUnits)
	mux.HandleFunc("GET /api/units/{id}/quote", s.handleQuote)
	mux.HandleFunc("GET /api/pending", s.handlePending)
	mux.HandleFunc("GET /api/reports", s.handleReport)
	mux.HandleFunc("GET /api/reports/export.xlsx", s.handleExportXLSX)
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)

	var h http.Handler = mux
	h = s.rateLimiter.Middleware(extractClientIP, s.onRateLimited)(h)
	h = log.RequestIDMiddleware(trace.RequestIDFromRequest)(h)
	h = log.Middleware(s.logger)(h)
	h = s.traceMiddleware.Middleware(h)

	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.caches.Stop()
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) onRateLimited(w http.ResponseWriter, r *http.Request) {
	log.FromContext(r.Context()).WithComponent(log.ComponentRateLimit).
		WarnContext(r.Context(), "Rate limit exceeded", log.FieldClientIP, extractClientIP(r))
	writeError(w, r, http.StatusTooManyRequests, "rate limit exceeded, retry later")
}

// units returns the unit list, served from cache while fresh.
func (s *Server) units(ctx context.Context) ([]core.Unit, error) {
	if s.cacheTTL > 0 {
		if units, ok := s.unitsCache.Get(snapshotKey); ok {
			return units, nil
		}
	}
	cctx, cancel := context.WithTimeout(ctx, sourceTimeout)
	defer cancel()
	units, err := s.source.ListUnits(cctx)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	if s.cacheTTL > 0 {
		s.unitsCache.Set(snapshotKey, units)
	}
	return units, nil
}

// transactions returns the transaction list, served from cache while fresh.
// Callers must not modify the returned slice.
func (s *Server) transactions(ctx context.Context) ([]core.Transaction, error) {
	if s.cacheTTL > 0 {
		if txs, ok := s.txCache.Get(snapshotKey); ok {
			log.FromContext(ctx).DebugContext(ctx, "Transactions cache hit", log.FieldCount, len(txs))
			return txs, nil
		}
	}
	cctx, cancel := context.WithTimeout(ctx, sourceTimeout)
	defer cancel()
	txs, err := s.source.ListTransactions(cctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	if s.cacheTTL > 0 {
		s.txCache.Set(snapshotKey, txs)
	}
	return txs, nil
}

// InvalidateCache drops the cached snapshots.
func (s *Server) InvalidateCache() {
	s.unitsCache.Purge()
	s.txCache.Purge()
}

// today is the server's reference date.
func (s *Server) today() core.Date {
	return core.DateOf(s.now())
}

// Package http exposes the JSON API: auth, the merged transaction
// feed, categories, accounts, budgets, goals, stats and the advisor
// chat.
package http

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"soldi/internal/auth"
	"soldi/internal/cache"
	"soldi/internal/core"
	applog "soldi/internal/log"
	"soldi/internal/services"
)

// Deps carries the wired services. Advisor may be nil when no API key
// is configured; its endpoint then answers 503.
type Deps struct {
	Auth           *auth.Service
	Transactions   *services.TransactionService
	Categories     *services.CategoryService
	Accounts       *services.AccountService
	Budgets        *services.BudgetService
	Stats          *services.StatsService
	PaymentMethods *services.PaymentMethodService
	Goals          *services.GoalService
	Advisor        *services.AdvisorService
	Logger         *applog.Logger
	CacheTTL       time.Duration
	CacheMaxSize   int
}

type Server struct {
	http.Server
	deps        Deps
	logger      *applog.Logger
	rateLimiter *rateLimiter

	// Read caches over the two hottest aggregations, keyed
	// (owner, collection). Any write for an owner drops all of that
	// owner's entries.
	feedCache     *cache.LRUCache[[]core.TaggedTransaction]
	categoryCache *cache.LRUCache[[]core.Category]
	cacheManager  *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a
// ready-to-run server.
func NewServer(addr string, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	ttl := deps.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	maxSize := deps.CacheMaxSize
	if maxSize <= 0 {
		maxSize = 1000
	}

	s := &Server{
		deps:          deps,
		logger:        logger.WithComponent(applog.ComponentHTTP),
		rateLimiter:   newRateLimiter(),
		feedCache:     cache.NewLRUCache[[]core.TaggedTransaction](maxSize, ttl),
		categoryCache: cache.NewLRUCache[[]core.Category](maxSize, ttl),
		cacheManager:  cache.NewManager(),
	}
	s.cacheManager.Register(s.feedCache)
	s.cacheManager.Register(s.categoryCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	protected := map[string]http.HandlerFunc{
		"GET /api/transactions":         s.handleListTransactions,
		"POST /api/transactions":        s.handleCreateTransaction,
		"PUT /api/transactions/{id}":    s.handleUpdateTransaction,
		"DELETE /api/transactions/{id}": s.handleDeleteTransaction,
		"POST /api/transfers":           s.handleCreateTransfer,

		"GET /api/categories":         s.handleListCategories,
		"POST /api/categories":        s.handleCreateCategory,
		"DELETE /api/categories/{id}": s.handleDeleteCategory,

		"GET /api/accounts":         s.handleListAccounts,
		"POST /api/accounts":        s.handleCreateAccount,
		"PUT /api/accounts/{id}":    s.handleUpdateAccount,
		"DELETE /api/accounts/{id}": s.handleDeleteAccount,
		"POST /api/accounts/setup":  s.handleSetupAccounts,

		"GET /api/budgets":          s.handleListBudgets,
		"POST /api/budgets":         s.handleCreateBudget,
		"DELETE /api/budgets/{id}":  s.handleDeleteBudget,
		"GET /api/budgets/overview": s.handleBudgetOverview,

		"GET /api/payment-methods":  s.handleListPaymentMethods,
		"POST /api/payment-methods": s.handleCreatePaymentMethod,

		"GET /api/goals":      s.handleListGoals,
		"POST /api/goals":     s.handleCreateGoal,
		"PUT /api/goals/{id}": s.handleUpdateGoal,

		"GET /api/stats/monthly":  s.handleMonthlyStats,
		"GET /api/stats/weekly":   s.handleWeeklyStats,
		"GET /api/stats/estimate": s.handleEstimate,

		"POST /api/advisor/chat": s.handleAdvisorChat,
	}
	for pattern, handler := range protected {
		mux.HandleFunc(pattern, s.withAuth(handler))
	}

	var handler http.Handler = mux
	handler = s.withObservability(handler)
	handler = applog.RequestIDMiddleware(func(*http.Request) string { return generateRequestID() })(handler)
	handler = applog.Middleware(logger)(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Shutdown stops the background cleanup goroutines and then the HTTP
// server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withObservability adds request IDs, security headers, write rate
// limiting and request logging around every route.
func (s *Server) withObservability(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ip := clientIP(r)
		ctx := r.Context()
		logger := applog.FromContext(ctx)

		if r.Method != http.MethodGet && !s.rateLimiter.allow(ip) {
			logger.WarnContext(ctx, "rate limit exceeded",
				applog.FieldClientIP, ip,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Cache-Control", "no-store")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		logger.InfoContext(ctx, "request completed",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rw.statusCode,
			applog.FieldDuration, time.Since(start).Milliseconds(),
			applog.FieldClientIP, ip)
	})
}

// withAuth validates the bearer token and puts the session in the
// request context.
func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			writeError(w, r, auth.ErrInvalidToken)
			return
		}
		session, err := s.deps.Auth.ParseToken(strings.TrimSpace(token))
		if err != nil {
			writeError(w, r, err)
			return
		}
		next(w, r.WithContext(auth.WithSession(r.Context(), session)))
	}
}

// session returns the request's session. The auth middleware
// guarantees presence on protected routes.
func session(r *http.Request) auth.Session {
	s, _ := auth.FromContext(r.Context())
	return s
}

// invalidateOwner drops every cached collection of the owner. Called
// after each successful write.
func (s *Server) invalidateOwner(owner string) {
	s.feedCache.DeletePrefix(cache.OwnerPrefix(owner))
	s.categoryCache.DeletePrefix(cache.OwnerPrefix(owner))
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

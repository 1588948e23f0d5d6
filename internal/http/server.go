package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"setlog/internal/backend"
	"setlog/internal/cache"
	"setlog/internal/core"
	applog "setlog/internal/log"
	appweb "setlog/web"
)

const workoutsCacheKey = "workouts"

// Server serves the entry form and the grouped workout list, backed by
// whichever storage backend the factory assembled.
type Server struct {
	http.Server
	templates   *template.Template
	store       backend.Backend
	rateLimiter *rateLimiter
	metrics     *securityMetrics

	// Cached full-collection listing; invalidated on every mutation.
	workoutsCache *cache.LRUCache[[]core.Workout]
	cacheManager  *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, store backend.Backend, logger *applog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		store:         store,
		rateLimiter:   newRateLimiter(60, time.Minute),
		metrics:       &securityMetrics{},
		workoutsCache: cache.NewLRUCache[[]core.Workout](8, time.Minute),
		cacheManager:  cache.NewManager(),
	}

	s.cacheManager.Register(s.workoutsCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/workouts", s.withSecurityHeaders(s.handleCreateWorkout))
	mux.HandleFunc("/workouts/", s.withSecurityHeaders(s.handleWorkoutSubpath))
	// UI partials
	mux.HandleFunc("/ui/workout-groups", s.withSecurityHeaders(s.handleWorkoutGroups))

	if logger != nil {
		s.Handler = applog.Middleware(logger)(mux)
	}

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.cacheManager != nil {
			s.cacheManager.Stop()
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request
// logging to responses.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := extractClientIP(r, s.metrics)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		if detectSuspiciousRequest(r, s.metrics) {
			slog.WarnContext(ctx, "Suspicious request blocked",
				"request_id", requestID,
				"client_ip", clientIP,
				"method", r.Method,
				"url", r.URL.Path)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP)

		// Rate limit mutations only; reads stay cheap.
		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP, s.metrics) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://unpkg.com 'unsafe-eval'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", clientIP)
	}
}

type ctxKey string

const requestIDKey ctxKey = "request_id"

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.ListAll(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Readiness check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// listWorkouts fetches the full collection through the cache.
func (s *Server) listWorkouts(ctx context.Context) ([]core.Workout, error) {
	if items, found := s.workoutsCache.Get(workoutsCacheKey); found {
		slog.DebugContext(ctx, "Workout list cache hit", "count", len(items))
		// Return a copy to prevent external mutation
		result := make([]core.Workout, len(items))
		copy(result, items)
		return result, nil
	}

	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	items, err := s.store.ListAll(cctx)
	if err != nil {
		return nil, err
	}

	s.workoutsCache.Set(workoutsCacheKey, items)
	slog.DebugContext(ctx, "Workout list cached", "count", len(items))
	return items, nil
}

func (s *Server) invalidateWorkouts() {
	s.workoutsCache.Delete(workoutsCacheKey)
}

// handleWorkoutSubpath dispatches /workouts/{id}/delete.
func (s *Server) handleWorkoutSubpath(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/delete") {
		s.handleDeleteWorkout(w, r)
		return
	}
	NotFoundError("Not found").Write(w)
}

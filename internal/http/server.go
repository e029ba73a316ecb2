package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"propdash/internal/core"
	"propdash/internal/view"
	appweb "propdash/web"
)

// FormLinks are the external hosted forms opened in a new browser tab for
// out-of-band data entry. New submissions only become visible once the
// upstream webhook reflects them on a later fetch.
type FormLinks struct {
	Rent  string
	Issue string
}

type Server struct {
	http.Server
	templates *template.Template

	tenants *view.Controller[core.Tenant]
	issues  *view.Controller[core.Issue]
	forms   FormLinks

	rateLimiter  *rateLimiter
	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, tenants *view.Controller[core.Tenant], issues *view.Controller[core.Issue], forms FormLinks) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		tenants:     tenants,
		issues:      issues,
		forms:       forms,
		rateLimiter: newRateLimiter(),
	}

	// Parse embedded templates at startup.
	t, err := template.New("").Funcs(template.FuncMap{
		"money": templateMoney,
	}).ParseFS(appweb.TemplatesFS, "templates/*.html")
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

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleHome))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	mux.HandleFunc("/tenants", s.withSecurityHeaders(s.handleTenantsPage))
	mux.HandleFunc("/tenants/detail", s.withSecurityHeaders(s.handleTenantDetail))
	mux.HandleFunc("/tenants/detail/close", s.withSecurityHeaders(s.handleTenantDetailClose))
	mux.HandleFunc("/tenants/refresh", s.withSecurityHeaders(s.handleTenantsRefresh))
	mux.HandleFunc("/api/tenants/stats", s.withSecurityHeaders(s.handleTenantStatsAPI))

	mux.HandleFunc("/issues", s.withSecurityHeaders(s.handleIssuesPage))
	mux.HandleFunc("/issues/detail", s.withSecurityHeaders(s.handleIssueDetail))
	mux.HandleFunc("/issues/detail/close", s.withSecurityHeaders(s.handleIssueDetailClose))
	mux.HandleFunc("/issues/refresh", s.withSecurityHeaders(s.handleIssuesRefresh))
	mux.HandleFunc("/api/issues/stats", s.withSecurityHeaders(s.handleIssueStatsAPI))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request
// logging to responses.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		// Rate limit the mutating-ish actions (refresh, detail close).
		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self' https://unpkg.com; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status_code", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// handleHome renders the landing page with the two dashboard entries and the
// external form links.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "path", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	data := struct {
		RentFormURL  string
		IssueFormURL string
	}{
		RentFormURL:  s.forms.Rent,
		IssueFormURL: s.forms.Issue,
	}
	if err := s.templates.ExecuteTemplate(w, "home.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Home template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

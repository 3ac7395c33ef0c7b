package handlers

import (
	"context"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"pickemleague/internal/security"
	"pickemleague/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const UserContextKey ContextKey = "user"

// SessionCookieName is the cookie carrying the session ID.
const SessionCookieName = "session_id"

// CSRFFieldName is the reserved form field carrying the CSRF token.
// Pick submissions must skip it when merging form fields into picks.
const CSRFFieldName = "csrf_token"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	limiter     *security.RateLimiter
	csrf        *security.CSRFGenerator
	logger      *zap.SugaredLogger
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, limiter *security.RateLimiter, csrf *security.CSRFGenerator, logger *zap.SugaredLogger) *Middleware {
	return &Middleware{
		authService: authService,
		limiter:     limiter,
		csrf:        csrf,
		logger:      logger,
	}
}

// RequireAuth requires a valid session. Unauthenticated requests are
// redirected to the login entry point, never hard-errored.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		username, err := m.authService.ValidateSession(cookie.Value)
		if err != nil {
			http.SetCookie(w, security.DeleteCookie(r, SessionCookieName))
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, username)
		next(w, r.WithContext(ctx))
	}
}

// RateLimit throttles requests per client IP.
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !m.limiter.Allow(ip) {
			m.logger.Warnf("Rate limit exceeded for %s", ip)
			http.Error(w, "Too many requests. Please try again later.", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// CSRFProtect validates the csrf_token form field against the
// requester's session.
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		if !m.csrf.ValidateToken(cookie.Value, r.PostFormValue(CSRFFieldName)) {
			m.logger.Warnf("Rejected %s %s: invalid CSRF token", r.Method, r.URL.Path)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(logger *zap.SugaredLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Infof("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// UsernameFromContext retrieves the authenticated username from the
// request context.
func UsernameFromContext(ctx context.Context) string {
	username, _ := ctx.Value(UserContextKey).(string)
	return username
}

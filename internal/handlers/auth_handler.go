package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"pickemleague/internal/security"
	"pickemleague/internal/service"
	"pickemleague/internal/validation"
)

// AuthHandler handles login, logout, and the landing page.
type AuthHandler struct {
	authService *service.AuthService
	source      service.ResultsSource
	templates   *template.Template
	logger      *zap.SugaredLogger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, source service.ResultsSource, templates *template.Template, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		source:      source,
		templates:   templates,
		logger:      logger,
	}
}

// Home redirects a logged-in user to the current week's picks and
// shows the login page to everyone else.
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if _, err := h.authService.ValidateSession(cookie.Value); err == nil {
			week := h.source.CurrentWeek(r.Context())
			http.Redirect(w, r, fmt.Sprintf("/week/%d", week), http.StatusSeeOther)
			return
		}
	}

	h.renderLogin(w, LoginViewData{Title: "Login - Pick'em League"})
}

// Login handles login form submission. An unseen username becomes a
// new account and is logged straight in.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	sess, created, err := h.authService.Login(username, password)
	if err != nil {
		data := LoginViewData{Title: "Login - Pick'em League"}
		var vErr validation.Error
		switch {
		case errors.As(err, &vErr):
			data.Error = "Username and password are required."
		case errors.Is(err, service.ErrInvalidCredentials):
			data.Error = "Incorrect password. Please try again."
		default:
			respondWithError(h.logger, w, http.StatusInternalServerError, "Internal server error", "Login failed", err)
			return
		}
		h.renderLogin(w, data)
		return
	}

	if created {
		h.logger.Infof("New player %s joined the league", sess.Username)
	}

	http.SetCookie(w, security.SessionCookie(r, SessionCookieName, sess.ID, sess.ExpiresAt))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// CheckUser is a small JSON endpoint the login page polls to tell a
// returning player apart from a new one.
func (h *AuthHandler) CheckUser(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid JSON body"})
		return
	}

	username := strings.TrimSpace(body.Username)
	if username == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Username required"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"exists": h.authService.UserExists(username)})
}

// Logout clears the session and redirects home. Always succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		h.authService.Logout(cookie.Value)
	}

	http.SetCookie(w, security.DeleteCookie(r, SessionCookieName))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, data LoginViewData) {
	if err := h.templates.ExecuteTemplate(w, "login.tmpl", data); err != nil {
		respondWithError(h.logger, w, http.StatusInternalServerError, "Internal server error", "Error rendering login template", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

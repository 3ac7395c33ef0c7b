package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"pickemleague/internal/security"
	"pickemleague/internal/service"
)

// PickHandler handles viewing and submitting weekly picks.
type PickHandler struct {
	pickService *service.PickService
	csrf        *security.CSRFGenerator
	templates   *template.Template
	logger      *zap.SugaredLogger
}

// NewPickHandler creates a new pick handler
func NewPickHandler(pickService *service.PickService, csrf *security.CSRFGenerator, templates *template.Template, logger *zap.SugaredLogger) *PickHandler {
	return &PickHandler{
		pickService: pickService,
		csrf:        csrf,
		templates:   templates,
		logger:      logger,
	}
}

// ShowWeek renders the schedule for a week with the viewer's stored
// picks and each game's lock state.
func (h *PickHandler) ShowWeek(w http.ResponseWriter, r *http.Request) {
	week, err := strconv.Atoi(r.PathValue("week"))
	if err != nil || week < 1 {
		http.Error(w, "Invalid week", http.StatusBadRequest)
		return
	}

	username := UsernameFromContext(r.Context())
	schedule, picks := h.pickService.WeekView(r.Context(), week, username)
	now := time.Now().UTC()

	data := WeekViewData{
		Title:    fmt.Sprintf("Week %d - Pick'em League", week),
		Username: username,
		Week:     week,
		Games:    make([]GameView, 0, len(schedule.Games)),
	}
	for _, game := range schedule.Games {
		data.Games = append(data.Games, GameView{
			Game:   game,
			Picked: picks[game.ID],
			Locked: game.Locked(now),
		})
	}

	// Submission feedback comes back through the redirect query.
	q := r.URL.Query()
	if q.Get("submitted") == "1" {
		data.Submitted = true
		data.Saved, _ = strconv.Atoi(q.Get("saved"))
		data.Blocked, _ = strconv.Atoi(q.Get("blocked"))
	}

	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if token, err := h.csrf.GenerateToken(cookie.Value); err == nil {
			data.CSRFToken = token
		}
	}

	if err := h.templates.ExecuteTemplate(w, "week.tmpl", data); err != nil {
		respondWithError(h.logger, w, http.StatusInternalServerError, "Internal server error", "Error rendering week template", err)
	}
}

// SubmitWeek merges the posted picks (form fields are game ID to team
// ID) and redirects back to the week view with saved/blocked counts.
func (h *PickHandler) SubmitWeek(w http.ResponseWriter, r *http.Request) {
	week, err := strconv.Atoi(r.PathValue("week"))
	if err != nil || week < 1 {
		http.Error(w, "Invalid week", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	submitted := make(map[string]string, len(r.PostForm))
	for gameID, teamIDs := range r.PostForm {
		if gameID == CSRFFieldName || len(teamIDs) == 0 {
			continue
		}
		submitted[gameID] = teamIDs[0]
	}

	username := UsernameFromContext(r.Context())
	saved, blocked, err := h.pickService.SubmitPicks(r.Context(), week, username, submitted, time.Now().UTC())
	if err != nil {
		respondWithError(h.logger, w, http.StatusInternalServerError, "Failed to save picks", "Error saving picks", err)
		return
	}

	target := fmt.Sprintf("/week/%d?submitted=1&saved=%d&blocked=%d", week, saved, blocked)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

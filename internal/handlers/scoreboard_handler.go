package handlers

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"pickemleague/internal/service"
)

// ScoreboardHandler renders the season leaderboard.
type ScoreboardHandler struct {
	scoreService *service.ScoreService
	templates    *template.Template
	logger       *zap.SugaredLogger
}

// NewScoreboardHandler creates a new scoreboard handler
func NewScoreboardHandler(scoreService *service.ScoreService, templates *template.Template, logger *zap.SugaredLogger) *ScoreboardHandler {
	return &ScoreboardHandler{
		scoreService: scoreService,
		templates:    templates,
		logger:       logger,
	}
}

// ShowScoreboard renders season and weekly standings for all players,
// with a detail section for the player picked via ?player= (the viewer
// by default).
func (h *ScoreboardHandler) ShowScoreboard(w http.ResponseWriter, r *http.Request) {
	username := UsernameFromContext(r.Context())

	player := r.URL.Query().Get("player")
	if player == "" {
		player = username
	}

	report := h.scoreService.Compute(r.Context(), player)

	data := ScoreboardViewData{
		Title:    "Scoreboard - Pick'em League",
		Username: username,
		Report:   report,
	}

	if err := h.templates.ExecuteTemplate(w, "scoreboard.tmpl", data); err != nil {
		respondWithError(h.logger, w, http.StatusInternalServerError, "Internal server error", "Error rendering scoreboard template", err)
	}
}

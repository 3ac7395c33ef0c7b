package handlers

import "pickemleague/internal/models"

type LoginViewData struct {
	Title string
	Error string
	Info  string

	// Username is always empty on the login page but keeps the shared
	// header template, which gates its nav on it, happy.
	Username string
}

// GameView pairs a scheduled game with the viewer's pick and its lock
// state.
type GameView struct {
	Game   models.Game
	Picked string
	Locked bool
}

type WeekViewData struct {
	Title     string
	Username  string
	Week      int
	Games     []GameView
	Saved     int
	Blocked   int
	Submitted bool
	CSRFToken string
}

type ScoreboardViewData struct {
	Title    string
	Username string
	Report   *models.ScoreReport
}

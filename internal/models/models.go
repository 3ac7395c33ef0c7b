package models

import "time"

// Team is one side of a game as reported by the results source.
type Team struct {
	ID   string
	Name string
	Logo string
}

// Game is a single scheduled game. Kickoff is the zero time when the
// upstream timestamp could not be parsed; such games never lock.
// WinnerID is empty until the game completes with a flagged winner
// (a tie stays empty).
type Game struct {
	ID        string
	Kickoff   time.Time
	Completed bool
	WinnerID  string
	Home      Team
	Away      Team
}

// Locked reports whether picks for the game are closed at the given
// time. A game with an unknown kickoff never locks; kickoff exactly at
// now counts as locked.
func (g Game) Locked(now time.Time) bool {
	return !g.Kickoff.IsZero() && !now.Before(g.Kickoff)
}

// Schedule is one week's worth of games, fetched fresh per request and
// never persisted.
type Schedule struct {
	Week  int
	Games []Game
}

// PlayerPicks maps game ID to the picked team ID.
type PlayerPicks map[string]string

// WeekPicks maps username to that player's picks for one week.
type WeekPicks map[string]PlayerPicks

// PickDocument is the root picks store: week (string-encoded integer)
// to per-player picks. At most one picked team per (week, user, game).
type PickDocument map[string]WeekPicks

// UserDocument maps username to password hash.
type UserDocument map[string]string

// SeasonTotal is one player's cumulative standing.
type SeasonTotal struct {
	Player      string
	Correct     int
	WeeksPlayed int
}

// TeamStat tracks how a selected player has done with one team.
type TeamStat struct {
	Team        Team
	TimesPicked int
	Wins        int
}

// PlayerDetail holds the per-player breakdown shown on the scoreboard.
type PlayerDetail struct {
	Player       string
	TotalPicks   int
	TotalWins    int
	WinRate      float64
	FavoriteTeam string
	TeamStats    []TeamStat
}

// ScoreReport is the full scoreboard computation: season standings
// sorted by correct picks descending, a two-week score snapshot, and a
// detail section for one selected player.
type ScoreReport struct {
	Players       []string
	CurrentWeek   int
	PreviousWeek  int
	SeasonTotals  []SeasonTotal
	WeeklyResults map[int]map[string]int
	Detail        PlayerDetail
}

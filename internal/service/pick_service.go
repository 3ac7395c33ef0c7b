package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"pickemleague/internal/models"
	"pickemleague/internal/store"
)

// PickService handles viewing and submitting weekly picks. Each game
// locks independently at its own kickoff.
type PickService struct {
	store  *store.Store
	source ResultsSource
	logger *zap.SugaredLogger
}

// NewPickService creates a new pick service.
func NewPickService(store *store.Store, source ResultsSource, logger *zap.SugaredLogger) *PickService {
	return &PickService{
		store:  store,
		source: source,
		logger: logger,
	}
}

// WeekView returns the week's schedule and the player's stored picks.
// Read-only: a player with no picks yet gets an empty map without
// anything being written.
func (s *PickService) WeekView(ctx context.Context, week int, username string) (models.Schedule, models.PlayerPicks) {
	schedule := s.source.FetchSchedule(ctx, week, 0)

	picks := s.store.LoadPicks()[strconv.Itoa(week)][username]
	if picks == nil {
		picks = models.PlayerPicks{}
	}
	return schedule, picks
}

// SubmitPicks merges a batch of picks into the store. A pick is
// accepted, overwriting any prior pick for that game, when the game is
// unknown to the fresh schedule or its kickoff is still ahead of now;
// otherwise it counts as blocked. Games whose kickoff could not be
// parsed never lock. The document is persisted once for the whole
// batch, and a blocked pick is a reported outcome, not an error.
func (s *PickService) SubmitPicks(ctx context.Context, week int, username string, submitted map[string]string, now time.Time) (saved, blocked int, err error) {
	schedule := s.source.FetchSchedule(ctx, week, 0)

	kickoffs := make(map[string]time.Time, len(schedule.Games))
	for _, game := range schedule.Games {
		if !game.Kickoff.IsZero() {
			kickoffs[game.ID] = game.Kickoff
		}
	}

	doc := s.store.LoadPicks()
	weekKey := strconv.Itoa(week)

	for gameID, teamID := range submitted {
		if kickoff, known := kickoffs[gameID]; known && !now.Before(kickoff) {
			blocked++
			continue
		}
		if doc[weekKey] == nil {
			doc[weekKey] = models.WeekPicks{}
		}
		if doc[weekKey][username] == nil {
			doc[weekKey][username] = models.PlayerPicks{}
		}
		doc[weekKey][username][gameID] = teamID
		saved++
	}

	if err := s.store.SavePicks(doc); err != nil {
		return saved, blocked, fmt.Errorf("failed to save picks: %w", err)
	}

	if blocked > 0 {
		s.logger.Infof("Picks for %s week %d: %d saved, %d blocked past kickoff", username, week, saved, blocked)
	}
	return saved, blocked, nil
}

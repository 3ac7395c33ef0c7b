package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pickemleague/internal/models"
	"pickemleague/internal/session"
	"pickemleague/internal/store"
)

const testSessionTTL = time.Hour

// stubSource serves canned schedules so tests control results without
// a network.
type stubSource struct {
	schedules map[int]models.Schedule
	current   int
	fetches   int
}

func (s *stubSource) FetchSchedule(_ context.Context, week, _ int) models.Schedule {
	s.fetches++
	schedule, ok := s.schedules[week]
	if !ok {
		return models.Schedule{Week: week}
	}
	return schedule
}

func (s *stubSource) CurrentWeek(context.Context) int {
	if s.current < 1 {
		return 1
	}
	return s.current
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(t.TempDir(), zap.NewNop().Sugar())
	require.NoError(t, err)
	return s
}

func newTestSessions() *session.Store {
	return session.NewStore(testSessionTTL)
}

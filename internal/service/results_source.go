package service

import (
	"context"

	"pickemleague/internal/models"
)

// ResultsSource provides schedules and the current week from the
// external results API. Implementations must degrade to an empty
// schedule or week 1 on failure rather than returning errors.
type ResultsSource interface {
	FetchSchedule(ctx context.Context, week, year int) models.Schedule
	CurrentWeek(ctx context.Context) int
}

package espn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pickemleague/internal/models"
)

func TestResolveWinners(t *testing.T) {
	tests := []struct {
		name     string
		schedule models.Schedule
		want     map[string]string
	}{
		{
			name:     "empty schedule",
			schedule: models.Schedule{},
			want:     map[string]string{},
		},
		{
			name: "completed game with winner",
			schedule: models.Schedule{Games: []models.Game{
				{ID: "100", Completed: true, WinnerID: "7"},
			}},
			want: map[string]string{"100": "7"},
		},
		{
			name: "in-progress game omitted",
			schedule: models.Schedule{Games: []models.Game{
				{ID: "100", Completed: false, WinnerID: "7"},
			}},
			want: map[string]string{},
		},
		{
			name: "completed tie without winner omitted",
			schedule: models.Schedule{Games: []models.Game{
				{ID: "100", Completed: true, WinnerID: ""},
			}},
			want: map[string]string{},
		},
		{
			name: "mixed schedule",
			schedule: models.Schedule{Games: []models.Game{
				{ID: "100", Completed: true, WinnerID: "7"},
				{ID: "101", Completed: false},
				{ID: "102", Completed: true, WinnerID: "9"},
				{ID: "103", Completed: true},
			}},
			want: map[string]string{"100": "7", "102": "9"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveWinners(tt.schedule))
		})
	}
}

func TestTeamLookup(t *testing.T) {
	schedule := models.Schedule{Games: []models.Game{
		{
			ID:   "100",
			Home: models.Team{ID: "1", Name: "Kansas City Chiefs", Logo: "kc.png"},
			Away: models.Team{ID: "2", Name: "Buffalo Bills", Logo: "buf.png"},
		},
		{
			ID:   "101",
			Home: models.Team{ID: "3", Name: "Dallas Cowboys"},
			Away: models.Team{}, // missing competitor
		},
	}}

	teams := TeamLookup(schedule)

	assert.Len(t, teams, 3)
	assert.Equal(t, "Buffalo Bills", teams["2"].Name)
	assert.Equal(t, "kc.png", teams["1"].Logo)
	_, ok := teams[""]
	assert.False(t, ok)
}

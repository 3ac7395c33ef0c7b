package espn

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const scoreboardFixture = `{
  "week": {"number": 5},
  "events": [
    {
      "id": "100",
      "date": "2025-09-07T17:00Z",
      "competitions": [{
        "status": {"type": {"completed": true}},
        "competitors": [
          {"homeAway": "home", "winner": true, "team": {"id": "1", "displayName": "Kansas City Chiefs", "logo": "kc.png"}},
          {"homeAway": "away", "team": {"id": "2", "displayName": "Buffalo Bills", "logo": "buf.png"}}
        ]
      }]
    },
    {
      "id": "101",
      "date": "not-a-timestamp",
      "competitions": [{
        "status": {"type": {"completed": false}},
        "competitors": [
          {"homeAway": "home", "team": {"id": "3", "displayName": "Dallas Cowboys", "logo": "dal.png"}},
          {"homeAway": "away", "team": {"id": "4", "displayName": "Philadelphia Eagles", "logo": "phi.png"}}
        ]
      }]
    },
    {
      "id": "102",
      "date": "2025-09-08T00:20Z",
      "competitions": []
    }
  ]
}`

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient(Config{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		Logger:     zap.NewNop().Sugar(),
	})
	return client, srv
}

func TestFetchScheduleMapsWireShape(t *testing.T) {
	var gotQuery map[string]string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"week":       r.URL.Query().Get("week"),
			"year":       r.URL.Query().Get("year"),
			"seasontype": r.URL.Query().Get("seasontype"),
			"limit":      r.URL.Query().Get("limit"),
		}
		w.Write([]byte(scoreboardFixture))
	})
	defer srv.Close()

	schedule := client.FetchSchedule(context.Background(), 5, 2025)

	assert.Equal(t, map[string]string{
		"week": "5", "year": "2025", "seasontype": "2", "limit": "100",
	}, gotQuery)

	assert.Equal(t, 5, schedule.Week)
	// Event 102 has no competition and is dropped.
	require.Len(t, schedule.Games, 2)

	game := schedule.Games[0]
	assert.Equal(t, "100", game.ID)
	assert.True(t, game.Completed)
	assert.Equal(t, "1", game.WinnerID)
	assert.Equal(t, time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC), game.Kickoff)
	assert.Equal(t, "Kansas City Chiefs", game.Home.Name)
	assert.Equal(t, "2", game.Away.ID)
	assert.Equal(t, "buf.png", game.Away.Logo)

	// Unparsable kickoff maps to the zero time so the game never locks.
	assert.Equal(t, "101", schedule.Games[1].ID)
	assert.True(t, schedule.Games[1].Kickoff.IsZero())
	assert.False(t, schedule.Games[1].Locked(time.Now()))
	assert.Empty(t, schedule.Games[1].WinnerID)
}

func TestFetchScheduleDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("{oops"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, srv := newTestClient(tt.handler)
			defer srv.Close()

			schedule := client.FetchSchedule(context.Background(), 3, 2025)
			assert.Equal(t, 3, schedule.Week)
			assert.Empty(t, schedule.Games)
		})
	}
}

func TestFetchScheduleUnreachableHost(t *testing.T) {
	client := NewClient(Config{
		BaseURL: "http://127.0.0.1:1",
		Timeout: 100 * time.Millisecond,
		Logger:  zap.NewNop().Sugar(),
	})

	schedule := client.FetchSchedule(context.Background(), 2, 2025)
	assert.Equal(t, 2, schedule.Week)
	assert.Empty(t, schedule.Games)
}

func TestCurrentWeek(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(scoreboardFixture))
	})
	defer srv.Close()

	assert.Equal(t, 5, client.CurrentWeek(context.Background()))
}

func TestCurrentWeekDefaultsToOne(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "upstream failure",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "missing week number",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"events": []}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, srv := newTestClient(tt.handler)
			defer srv.Close()

			assert.Equal(t, 1, client.CurrentWeek(context.Background()))
		})
	}
}

func TestSeasonYear(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"september belongs to its own year", time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC), 2025},
		{"january belongs to the previous season", time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), 2025},
		{"february belongs to the previous season", time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), 2025},
		{"march starts counting toward the new season", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 2026},
		{"december belongs to its own year", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), 2025},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SeasonYear(tt.now))
		})
	}
}

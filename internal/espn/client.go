package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"pickemleague/internal/models"
)

const (
	defaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports/football/nfl/scoreboard"
	defaultTimeout = 10 * time.Second

	// ESPN reports kickoff as e.g. "2025-09-07T17:00Z".
	kickoffLayout = "2006-01-02T15:04Z"

	regularSeason = 2
	resultLimit   = 100
)

// Config configures a scoreboard client. Zero values fall back to the
// public ESPN endpoint with a default timeout.
type Config struct {
	HTTPClient *http.Client
	BaseURL    string
	Timeout    time.Duration
	Logger     *zap.SugaredLogger
}

// Client fetches NFL schedules and results from the ESPN scoreboard
// API. Every call is a single best-effort attempt: failures degrade to
// an empty schedule or week 1 rather than surfacing to the user.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.SugaredLogger
}

// NewClient creates a scoreboard client.
func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
	}
}

// SeasonYear returns the season a given moment belongs to. An NFL
// season spans the year boundary, so January and February still count
// toward the previous calendar year.
func SeasonYear(now time.Time) int {
	year := now.Year()
	if now.Month() < time.March {
		year--
	}
	return year
}

// FetchSchedule fetches one week's schedule and results. A year of
// zero means the current season. On any transport or decode failure it
// returns an empty schedule for the week.
func (c *Client) FetchSchedule(ctx context.Context, week, year int) models.Schedule {
	if year <= 0 {
		year = SeasonYear(time.Now())
	}

	params := url.Values{}
	params.Set("week", strconv.Itoa(week))
	params.Set("year", strconv.Itoa(year))
	params.Set("seasontype", strconv.Itoa(regularSeason))
	params.Set("limit", strconv.Itoa(resultLimit))

	var resp scoreboardResponse
	if err := c.getJSON(ctx, params, &resp); err != nil {
		c.logger.Warnf("Failed to fetch schedule for week %d: %v", week, err)
		return models.Schedule{Week: week}
	}

	return mapSchedule(week, resp)
}

// CurrentWeek asks the scoreboard what week it is now. Returns 1 on
// any failure.
func (c *Client) CurrentWeek(ctx context.Context) int {
	var resp scoreboardResponse
	if err := c.getJSON(ctx, nil, &resp); err != nil {
		c.logger.Warnf("Failed to fetch current week: %v", err)
		return 1
	}
	if resp.Week.Number < 1 {
		return 1
	}
	return resp.Week.Number
}

func (c *Client) getJSON(ctx context.Context, params url.Values, v any) error {
	target := c.baseURL
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// mapSchedule converts the wire shape into domain entities. Events
// without a competition are skipped; an unparsable kickoff leaves the
// zero time so the game never locks.
func mapSchedule(week int, resp scoreboardResponse) models.Schedule {
	schedule := models.Schedule{Week: week}
	for _, ev := range resp.Events {
		if ev.ID == "" || len(ev.Competitions) == 0 {
			continue
		}
		comp := ev.Competitions[0]

		game := models.Game{
			ID:        ev.ID,
			Completed: comp.Status.Type.Completed,
		}
		if kickoff, err := time.Parse(kickoffLayout, ev.Date); err == nil {
			game.Kickoff = kickoff.UTC()
		}

		for _, ct := range comp.Competitors {
			team := models.Team{
				ID:   ct.Team.ID,
				Name: ct.Team.DisplayName,
				Logo: ct.Team.Logo,
			}
			if ct.HomeAway == "away" {
				game.Away = team
			} else {
				game.Home = team
			}
			if ct.Winner {
				game.WinnerID = ct.Team.ID
			}
		}

		schedule.Games = append(schedule.Games, game)
	}
	return schedule
}

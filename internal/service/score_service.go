package service

import (
	"context"
	"math"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"pickemleague/internal/espn"
	"pickemleague/internal/models"
	"pickemleague/internal/store"
)

// ScoreService computes the season leaderboard. Everything is
// recomputed from scratch per call against freshly fetched results;
// the dataset (weeks x players x games) is small enough that caching
// would buy nothing.
type ScoreService struct {
	store  *store.Store
	source ResultsSource
	logger *zap.SugaredLogger
}

// NewScoreService creates a new score service.
func NewScoreService(store *store.Store, source ResultsSource, logger *zap.SugaredLogger) *ScoreService {
	return &ScoreService{
		store:  store,
		source: source,
		logger: logger,
	}
}

// Compute builds the full scoreboard: season totals for every player
// who has ever picked, a score snapshot for the current and previous
// week, and a detail section for selectedPlayer. Weeks are walked in
// ascending numeric order and each player's picks in sorted game-id
// order, which fixes the encounter order used for tie-breaks.
func (s *ScoreService) Compute(ctx context.Context, selectedPlayer string) *models.ScoreReport {
	doc := s.store.LoadPicks()

	currentWeek := s.source.CurrentWeek(ctx)
	previousWeek := currentWeek - 1
	if previousWeek < 1 {
		previousWeek = 1
	}

	report := &models.ScoreReport{
		Players:      allPlayers(doc),
		CurrentWeek:  currentWeek,
		PreviousWeek: previousWeek,
		WeeklyResults: map[int]map[string]int{
			currentWeek:  {},
			previousWeek: {},
		},
		Detail: models.PlayerDetail{
			Player:       selectedPlayer,
			FavoriteTeam: "N/A",
		},
	}

	weeks := make([]int, 0, len(doc))
	for weekKey := range doc {
		week, err := strconv.Atoi(weekKey)
		if err != nil {
			s.logger.Warnf("Skipping unparsable week key %q in picks store", weekKey)
			continue
		}
		weeks = append(weeks, week)
	}
	sort.Ints(weeks)

	totals := make(map[string]*models.SeasonTotal)
	playerOrder := make([]string, 0, len(report.Players))
	teamStats := make(map[string]*models.TeamStat)
	teamOrder := make([]string, 0)

	for _, week := range weeks {
		weekPicks := doc[strconv.Itoa(week)]

		schedule := s.source.FetchSchedule(ctx, week, 0)
		winners := espn.ResolveWinners(schedule)
		teams := espn.TeamLookup(schedule)

		for _, player := range sortedKeys(weekPicks) {
			picks := weekPicks[player]

			total, ok := totals[player]
			if !ok {
				total = &models.SeasonTotal{Player: player}
				totals[player] = total
				playerOrder = append(playerOrder, player)
			}

			weekScore := 0
			for _, gameID := range sortedKeys(picks) {
				pickedTeamID := picks[gameID]
				winnerID, decided := winners[gameID]
				won := decided && winnerID == pickedTeamID
				if won {
					weekScore++
				}

				if player != selectedPlayer {
					continue
				}
				report.Detail.TotalPicks++
				if won {
					report.Detail.TotalWins++
				}
				stat, ok := teamStats[pickedTeamID]
				if !ok {
					team, found := teams[pickedTeamID]
					if !found {
						team = models.Team{ID: pickedTeamID, Name: "Unknown"}
					}
					stat = &models.TeamStat{Team: team}
					teamStats[pickedTeamID] = stat
					teamOrder = append(teamOrder, pickedTeamID)
				}
				stat.TimesPicked++
				if won {
					stat.Wins++
				}
			}

			if week == currentWeek || week == previousWeek {
				report.WeeklyResults[week][player] = weekScore
			}
			total.Correct += weekScore
			total.WeeksPlayed++
		}
	}

	report.SeasonTotals = make([]models.SeasonTotal, 0, len(playerOrder))
	for _, player := range playerOrder {
		report.SeasonTotals = append(report.SeasonTotals, *totals[player])
	}
	sort.SliceStable(report.SeasonTotals, func(i, j int) bool {
		return report.SeasonTotals[i].Correct > report.SeasonTotals[j].Correct
	})

	report.Detail.TeamStats = make([]models.TeamStat, 0, len(teamOrder))
	for _, teamID := range teamOrder {
		report.Detail.TeamStats = append(report.Detail.TeamStats, *teamStats[teamID])
	}

	if report.Detail.TotalPicks > 0 {
		rate := float64(report.Detail.TotalWins) / float64(report.Detail.TotalPicks) * 100
		report.Detail.WinRate = math.Round(rate*10) / 10
	}

	// Favorite team: most picks, first team to reach the max wins ties.
	best := 0
	for _, teamID := range teamOrder {
		if teamStats[teamID].TimesPicked > best {
			best = teamStats[teamID].TimesPicked
			report.Detail.FavoriteTeam = teamStats[teamID].Team.Name
		}
	}

	return report
}

// allPlayers lists every username that appears in any week, sorted
// ascending for display.
func allPlayers(doc models.PickDocument) []string {
	seen := make(map[string]struct{})
	for _, weekPicks := range doc {
		for player := range weekPicks {
			seen[player] = struct{}{}
		}
	}
	players := make([]string, 0, len(seen))
	for player := range seen {
		players = append(players, player)
	}
	sort.Strings(players)
	return players
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

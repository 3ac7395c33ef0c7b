package espn

import "pickemleague/internal/models"

// ResolveWinners extracts the winner of every completed game in the
// schedule. Games still in progress, and completed games without a
// flagged winner (ties), are omitted. An empty schedule yields an
// empty map.
func ResolveWinners(schedule models.Schedule) map[string]string {
	winners := make(map[string]string)
	for _, game := range schedule.Games {
		if game.Completed && game.WinnerID != "" {
			winners[game.ID] = game.WinnerID
		}
	}
	return winners
}

// TeamLookup indexes every competitor in the schedule by team ID, for
// resolving picked team IDs back to names and logos.
func TeamLookup(schedule models.Schedule) map[string]models.Team {
	teams := make(map[string]models.Team)
	for _, game := range schedule.Games {
		for _, team := range []models.Team{game.Home, game.Away} {
			if team.ID != "" {
				teams[team.ID] = team
			}
		}
	}
	return teams
}

package espn

// Wire types for the ESPN scoreboard API. Only the fields the league
// needs are mapped; everything else in the payload is ignored. The
// rest of the application never sees these shapes, only
// models.Schedule built at the boundary.

type scoreboardResponse struct {
	Week   weekInfo `json:"week"`
	Events []event  `json:"events"`
}

type weekInfo struct {
	Number int `json:"number"`
}

type event struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Competitions []competition `json:"competitions"`
}

type competition struct {
	Status      status       `json:"status"`
	Competitors []competitor `json:"competitors"`
}

type status struct {
	Type statusType `json:"type"`
}

type statusType struct {
	Completed bool `json:"completed"`
}

type competitor struct {
	HomeAway string   `json:"homeAway"`
	Winner   bool     `json:"winner"`
	Team     teamInfo `json:"team"`
}

type teamInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Logo        string `json:"logo"`
}

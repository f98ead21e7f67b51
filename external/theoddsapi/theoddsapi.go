package theoddsapi

type oddsEventItem struct {
	ID           string          `json:"id"`
	SportKey     string          `json:"sport_key"`
	SportTitle   string          `json:"sport_title"`
	CommenceTime string          `json:"commence_time"`
	HomeTeam     string          `json:"home_team"`
	AwayTeam     string          `json:"away_team"`
	Bookmakers   []bookmakerItem `json:"bookmakers"`
}

type bookmakerItem struct {
	Key        string       `json:"key"`
	Title      string       `json:"title"`
	LastUpdate string       `json:"last_update"`
	Markets    []marketItem `json:"markets"`
}

type marketItem struct {
	Key        string        `json:"key"`
	LastUpdate string        `json:"last_update"`
	Outcomes   []outcomeItem `json:"outcomes"`
}

type outcomeItem struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

type scoreEventItem struct {
	ID           string          `json:"id"`
	SportKey     string          `json:"sport_key"`
	SportTitle   string          `json:"sport_title"`
	CommenceTime string          `json:"commence_time"`
	Completed    bool            `json:"completed"`
	HomeTeam     string          `json:"home_team"`
	AwayTeam     string          `json:"away_team"`
	Scores       []teamScoreItem `json:"scores"` // null until the game starts
	LastUpdate   *string         `json:"last_update"`
}

type teamScoreItem struct {
	Name  string `json:"name"`
	Score string `json:"score"`
}

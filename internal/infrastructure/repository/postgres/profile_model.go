package postgres

import "time"

type profileTableModel struct {
	UserID          string    `db:"user_id"`
	Username        string    `db:"username"`
	PredictorPoints int       `db:"predictor_points"`
	WinnerBucks     float64   `db:"winner_bucks"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type profileWeekEntriesModel struct {
	WeekID  string `db:"week_id"`
	Entries int    `db:"entries"`
}

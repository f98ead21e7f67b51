package leaderboard

import "time"

// Entry is one ranked submission. A user with several entries in a week
// occupies several rows.
type Entry struct {
	UserID              string
	Username            string
	TotalCorrectPicks   int
	TotalWinnerBucksWon float64
	TieBreakerPoints    int
}

// Leaderboard is the final ranking of one week. It is replaced wholesale on
// every rebuild, never patched row by row.
type Leaderboard struct {
	WeekID                      string
	Entries                     []Entry
	ActualTieBreakerTotalPoints int
	BuiltAt                     time.Time
}

package leaderboard

import (
	"sort"
	"time"
)

// Build ranks the entries of a fully completed week. Ordering is total
// correct picks descending, then winner bucks won descending, then closeness
// of the tie breaker guess to the actual combined score. The sort is stable,
// identical input always produces the identical board.
func Build(weekID string, entries []Entry, actualTotalPoints int, builtAt time.Time) Leaderboard {
	ranked := make([]Entry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		left, right := ranked[i], ranked[j]
		if left.TotalCorrectPicks != right.TotalCorrectPicks {
			return left.TotalCorrectPicks > right.TotalCorrectPicks
		}
		if left.TotalWinnerBucksWon != right.TotalWinnerBucksWon {
			return left.TotalWinnerBucksWon > right.TotalWinnerBucksWon
		}
		return guessDistance(left.TieBreakerPoints, actualTotalPoints) < guessDistance(right.TieBreakerPoints, actualTotalPoints)
	})

	return Leaderboard{
		WeekID:                      weekID,
		Entries:                     ranked,
		ActualTieBreakerTotalPoints: actualTotalPoints,
		BuiltAt:                     builtAt,
	}
}

func guessDistance(guess, actual int) int {
	if guess > actual {
		return guess - actual
	}
	return actual - guess
}

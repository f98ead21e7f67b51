package week

// MergeGames folds freshly normalized game fragments into the stored list.
// Existing games keep their position, unseen games append in arrival order,
// so the list only ever grows. Merging the same input twice yields the same
// result as merging it once.
func MergeGames(existing, incoming []Game) []Game {
	merged := make([]Game, len(existing))
	index := make(map[string]int, len(existing))
	for i, game := range existing {
		merged[i] = game
		index[game.ID] = i
	}
	for _, fragment := range incoming {
		at, known := index[fragment.ID]
		if !known {
			index[fragment.ID] = len(merged)
			merged = append(merged, fragment)
			continue
		}
		merged[at] = mergeGame(merged[at], fragment)
	}
	return merged
}

// mergeGame overlays one fragment onto the stored game. Scores and completion
// come from score fetches, odds come from odds fetches, and each fetch must
// not disturb the fields owned by the other. Completed is sticky, a later
// in-progress report never reopens a finished game.
func mergeGame(current, fragment Game) Game {
	if fragment.HomeTeam != "" {
		current.HomeTeam = fragment.HomeTeam
	}
	if fragment.AwayTeam != "" {
		current.AwayTeam = fragment.AwayTeam
	}
	if !fragment.CommenceTime.IsZero() {
		current.CommenceTime = fragment.CommenceTime
	}
	if fragment.Moneyline != nil {
		current.Moneyline = fragment.Moneyline
	}
	if fragment.HomeScore != nil {
		current.HomeScore = fragment.HomeScore
	}
	if fragment.AwayScore != nil {
		current.AwayScore = fragment.AwayScore
	}
	if fragment.Completed {
		current.Completed = true
	}
	return current
}

package week

import (
	"reflect"
	"testing"
	"time"
)

func intPtr(v int) *int {
	return &v
}

func TestMergeGamesAppendsInOrder(t *testing.T) {
	existing := []Game{{ID: "g1"}, {ID: "g2"}}
	incoming := []Game{{ID: "g3"}, {ID: "g2"}, {ID: "g4"}}

	merged := MergeGames(existing, incoming)

	wantOrder := []string{"g1", "g2", "g3", "g4"}
	if len(merged) != len(wantOrder) {
		t.Fatalf("expected %d games, got %d", len(wantOrder), len(merged))
	}
	for i, id := range wantOrder {
		if merged[i].ID != id {
			t.Fatalf("expected %s at position %d, got %s", id, i, merged[i].ID)
		}
	}
}

func TestMergeGamesNeverShrinks(t *testing.T) {
	existing := []Game{{ID: "g1"}, {ID: "g2"}, {ID: "g3"}}

	merged := MergeGames(existing, []Game{{ID: "g2"}})

	if len(merged) != 3 {
		t.Fatalf("expected 3 games after partial update, got %d", len(merged))
	}
}

func TestMergeGamesCompletedSticky(t *testing.T) {
	existing := []Game{{
		ID:        "g1",
		HomeScore: intPtr(24),
		AwayScore: intPtr(17),
		Completed: true,
	}}
	incoming := []Game{{
		ID:        "g1",
		HomeScore: intPtr(10),
		AwayScore: intPtr(7),
		Completed: false,
	}}

	merged := MergeGames(existing, incoming)

	if !merged[0].Completed {
		t.Fatalf("expected completed to stay true")
	}
	if *merged[0].HomeScore != 10 || *merged[0].AwayScore != 7 {
		t.Fatalf("expected scores to follow the latest report, got %d-%d", *merged[0].HomeScore, *merged[0].AwayScore)
	}
}

func TestMergeGamesOddsReplaceWholesale(t *testing.T) {
	existing := []Game{{
		ID:        "g1",
		Moneyline: map[string]int{"Buffalo Bills": -150, "New York Jets": 130},
	}}

	merged := MergeGames(existing, []Game{{ID: "g1", Moneyline: map[string]int{"Buffalo Bills": -170}}})
	if !reflect.DeepEqual(merged[0].Moneyline, map[string]int{"Buffalo Bills": -170}) {
		t.Fatalf("expected odds replaced wholesale, got %v", merged[0].Moneyline)
	}

	// A bookmaker dropping out arrives as an empty map and clears stale prices.
	merged = MergeGames(merged, []Game{{ID: "g1", Moneyline: map[string]int{}}})
	if len(merged[0].Moneyline) != 0 {
		t.Fatalf("expected empty odds after bookmaker dropped, got %v", merged[0].Moneyline)
	}
}

func TestMergeGamesFragmentsDoNotCross(t *testing.T) {
	commence := time.Date(2025, time.September, 14, 13, 0, 0, 0, time.UTC)
	existing := []Game{{
		ID:           "g1",
		HomeTeam:     "Buffalo Bills",
		AwayTeam:     "New York Jets",
		CommenceTime: commence,
		Moneyline:    map[string]int{"Buffalo Bills": -150},
		HomeScore:    intPtr(24),
		AwayScore:    intPtr(17),
		Completed:    true,
	}}

	// An odds fragment carries no score fields and must not disturb them.
	merged := MergeGames(existing, []Game{{
		ID:           "g1",
		HomeTeam:     "Buffalo Bills",
		AwayTeam:     "New York Jets",
		CommenceTime: commence,
		Moneyline:    map[string]int{"Buffalo Bills": -160, "New York Jets": 140},
	}})
	if merged[0].HomeScore == nil || *merged[0].HomeScore != 24 {
		t.Fatalf("expected odds fragment to keep scores intact, got %+v", merged[0])
	}
	if !merged[0].Completed {
		t.Fatalf("expected odds fragment to keep completion intact")
	}

	// A score fragment carries no odds map and must not disturb prices.
	merged = MergeGames(merged, []Game{{
		ID:        "g1",
		HomeScore: intPtr(27),
		AwayScore: intPtr(17),
		Completed: true,
	}})
	if len(merged[0].Moneyline) != 2 {
		t.Fatalf("expected score fragment to keep odds intact, got %v", merged[0].Moneyline)
	}
	if *merged[0].HomeScore != 27 {
		t.Fatalf("expected home score 27, got %d", *merged[0].HomeScore)
	}
}

func TestMergeGamesIdempotent(t *testing.T) {
	existing := []Game{{ID: "g1", Completed: true, HomeScore: intPtr(21), AwayScore: intPtr(14)}}
	incoming := []Game{
		{ID: "g1", HomeScore: intPtr(28), AwayScore: intPtr(14), Completed: true},
		{ID: "g2", Moneyline: map[string]int{"Dallas Cowboys": -120}},
	}

	once := MergeGames(existing, incoming)
	twice := MergeGames(once, incoming)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("expected merge to be idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestWinner(t *testing.T) {
	tests := []struct {
		name     string
		game     Game
		wantTeam string
		wantOK   bool
	}{
		{
			name:     "home win",
			game:     Game{HomeTeam: "Buffalo Bills", AwayTeam: "New York Jets", HomeScore: intPtr(24), AwayScore: intPtr(17), Completed: true},
			wantTeam: "Buffalo Bills",
			wantOK:   true,
		},
		{
			name:     "away win",
			game:     Game{HomeTeam: "Buffalo Bills", AwayTeam: "New York Jets", HomeScore: intPtr(13), AwayScore: intPtr(20), Completed: true},
			wantTeam: "New York Jets",
			wantOK:   true,
		},
		{
			name:   "tie has no winner",
			game:   Game{HomeTeam: "Buffalo Bills", AwayTeam: "New York Jets", HomeScore: intPtr(21), AwayScore: intPtr(21), Completed: true},
			wantOK: false,
		},
		{
			name:   "incomplete game has no winner",
			game:   Game{HomeTeam: "Buffalo Bills", AwayTeam: "New York Jets", HomeScore: intPtr(24), AwayScore: intPtr(17)},
			wantOK: false,
		},
		{
			name:   "missing score has no winner",
			game:   Game{HomeTeam: "Buffalo Bills", AwayTeam: "New York Jets", HomeScore: intPtr(24), Completed: true},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			team, ok := tt.game.Winner()
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if team != tt.wantTeam {
				t.Fatalf("expected winner %q, got %q", tt.wantTeam, team)
			}
		})
	}
}

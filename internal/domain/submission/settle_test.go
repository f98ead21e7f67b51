package submission

import (
	"reflect"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/week"
)

func intPtr(v int) *int {
	return &v
}

func twoGameWeek() week.Week {
	kickoff := time.Date(2025, time.September, 14, 13, 0, 0, 0, time.UTC)
	return week.Week{
		ID: "2025-09-09",
		Games: []week.Game{
			{ID: "g1", HomeTeam: "Buffalo Bills", AwayTeam: "New York Jets", CommenceTime: kickoff},
			{ID: "g2", HomeTeam: "Dallas Cowboys", AwayTeam: "Philadelphia Eagles", CommenceTime: kickoff.Add(3 * time.Hour)},
		},
	}
}

func twoPickEntry() Submission {
	return Submission{
		ID:               "s1",
		UserID:           "u1",
		WeekID:           "2025-09-09",
		Tier:             50,
		TieBreakerPoints: 45,
		Picks: map[string]Pick{
			"g1": {GameID: "g1", Team: "Buffalo Bills", Tier: 50, Outcome: OutcomePending},
			"g2": {GameID: "g2", Team: "Philadelphia Eagles", Tier: 25, Outcome: OutcomePending},
		},
	}
}

func TestSettleBothGamesCompleted(t *testing.T) {
	wk := twoGameWeek()
	wk.Games[0].HomeScore = intPtr(24)
	wk.Games[0].AwayScore = intPtr(10)
	wk.Games[0].Completed = true
	wk.Games[1].HomeScore = intPtr(14)
	wk.Games[1].AwayScore = intPtr(20)
	wk.Games[1].Completed = true

	result := Settle(twoPickEntry(), wk, DefaultRules())

	if result.Picks["g1"].Outcome != OutcomeWin {
		t.Fatalf("expected g1 win, got %s", result.Picks["g1"].Outcome)
	}
	if result.Picks["g2"].Outcome != OutcomeWin {
		t.Fatalf("expected g2 win, got %s", result.Picks["g2"].Outcome)
	}
	if result.TotalCorrectPicks != 2 {
		t.Fatalf("expected 2 correct picks, got %d", result.TotalCorrectPicks)
	}
	if want := 50*0.12 + 25*0.10; result.TotalWinnerBucksWon != want {
		t.Fatalf("expected winnings %v, got %v", want, result.TotalWinnerBucksWon)
	}
	if !result.IsSettled {
		t.Fatalf("expected submission settled")
	}
	if !reflect.DeepEqual(result.Decided, []string{"g1", "g2"}) {
		t.Fatalf("expected both picks decided this pass, got %v", result.Decided)
	}
}

func TestSettlePartialWeek(t *testing.T) {
	wk := twoGameWeek()
	wk.Games[0].HomeScore = intPtr(24)
	wk.Games[0].AwayScore = intPtr(10)
	wk.Games[0].Completed = true

	result := Settle(twoPickEntry(), wk, DefaultRules())

	if result.Picks["g1"].Outcome != OutcomeWin {
		t.Fatalf("expected g1 win, got %s", result.Picks["g1"].Outcome)
	}
	if result.Picks["g2"].Outcome != OutcomePending {
		t.Fatalf("expected g2 pending, got %s", result.Picks["g2"].Outcome)
	}
	if result.IsSettled {
		t.Fatalf("expected submission to stay unsettled")
	}
	if result.TotalCorrectPicks != 1 {
		t.Fatalf("expected 1 correct pick, got %d", result.TotalCorrectPicks)
	}
	if want := 50 * 0.12; result.TotalWinnerBucksWon != want {
		t.Fatalf("expected winnings %v, got %v", want, result.TotalWinnerBucksWon)
	}
}

func TestSettleIdempotent(t *testing.T) {
	wk := twoGameWeek()
	wk.Games[0].HomeScore = intPtr(24)
	wk.Games[0].AwayScore = intPtr(10)
	wk.Games[0].Completed = true

	value := twoPickEntry()
	first := Settle(value, wk, DefaultRules())

	value.Picks = first.Picks
	value.TotalCorrectPicks = first.TotalCorrectPicks
	value.TotalWinnerBucksWon = first.TotalWinnerBucksWon
	second := Settle(value, wk, DefaultRules())

	if second.TotalCorrectPicks != first.TotalCorrectPicks {
		t.Fatalf("expected stable correct picks, got %d then %d", first.TotalCorrectPicks, second.TotalCorrectPicks)
	}
	if second.TotalWinnerBucksWon != first.TotalWinnerBucksWon {
		t.Fatalf("expected stable winnings, got %v then %v", first.TotalWinnerBucksWon, second.TotalWinnerBucksWon)
	}
	if len(second.Decided) != 0 {
		t.Fatalf("expected nothing newly decided on the second pass, got %v", second.Decided)
	}
}

func TestSettleNeverReversesDecidedPick(t *testing.T) {
	wk := twoGameWeek()
	wk.Games[0].HomeScore = intPtr(24)
	wk.Games[0].AwayScore = intPtr(10)
	wk.Games[0].Completed = true

	value := twoPickEntry()
	// g1 was decided by an earlier pass against a different reported score.
	value.Picks["g1"] = Pick{GameID: "g1", Team: "New York Jets", Tier: 50, Outcome: OutcomeWin, Winnings: 6}

	result := Settle(value, wk, DefaultRules())

	if result.Picks["g1"].Outcome != OutcomeWin {
		t.Fatalf("expected decided pick untouched, got %s", result.Picks["g1"].Outcome)
	}
	if result.Picks["g1"].Winnings != 6 {
		t.Fatalf("expected decided winnings untouched, got %v", result.Picks["g1"].Winnings)
	}
}

func TestSettleTieIsLoss(t *testing.T) {
	wk := twoGameWeek()
	wk.Games[0].HomeScore = intPtr(21)
	wk.Games[0].AwayScore = intPtr(21)
	wk.Games[0].Completed = true

	result := Settle(twoPickEntry(), wk, DefaultRules())

	if result.Picks["g1"].Outcome != OutcomeLoss {
		t.Fatalf("expected tie to settle as loss, got %s", result.Picks["g1"].Outcome)
	}
	if result.Picks["g1"].Winnings != 0 {
		t.Fatalf("expected zero winnings on a tie, got %v", result.Picks["g1"].Winnings)
	}
}

func TestSettleCompletedWithoutScoresStaysPending(t *testing.T) {
	wk := twoGameWeek()
	wk.Games[0].Completed = true

	result := Settle(twoPickEntry(), wk, DefaultRules())

	if result.Picks["g1"].Outcome != OutcomePending {
		t.Fatalf("expected pick to wait for reported scores, got %s", result.Picks["g1"].Outcome)
	}
	if result.IsSettled {
		t.Fatalf("expected submission to stay unsettled")
	}
}

func TestSettleMissingGameKeepsPickPending(t *testing.T) {
	wk := twoGameWeek()
	wk.Games = wk.Games[:1]
	wk.Games[0].HomeScore = intPtr(24)
	wk.Games[0].AwayScore = intPtr(10)
	wk.Games[0].Completed = true

	result := Settle(twoPickEntry(), wk, DefaultRules())

	if result.Picks["g2"].Outcome != OutcomePending {
		t.Fatalf("expected pick with missing game to stay pending, got %s", result.Picks["g2"].Outcome)
	}
	if result.IsSettled {
		t.Fatalf("expected submission to stay unsettled with a missing game")
	}
	if !reflect.DeepEqual(result.MissingGames, []string{"g2"}) {
		t.Fatalf("expected g2 reported missing, got %v", result.MissingGames)
	}
}

func TestSettleSettledSubmissionPassesThrough(t *testing.T) {
	wk := twoGameWeek()
	value := twoPickEntry()
	value.IsSettled = true
	value.TotalCorrectPicks = 2
	value.TotalWinnerBucksWon = 8.5
	value.Picks["g1"] = Pick{GameID: "g1", Team: "Buffalo Bills", Tier: 50, Outcome: OutcomeWin, Winnings: 6}
	value.Picks["g2"] = Pick{GameID: "g2", Team: "Philadelphia Eagles", Tier: 25, Outcome: OutcomeWin, Winnings: 2.5}

	result := Settle(value, wk, DefaultRules())

	if !result.IsSettled {
		t.Fatalf("expected submission to stay settled")
	}
	if result.TotalCorrectPicks != 2 || result.TotalWinnerBucksWon != 8.5 {
		t.Fatalf("expected totals untouched, got %d and %v", result.TotalCorrectPicks, result.TotalWinnerBucksWon)
	}
	if len(result.Decided) != 0 {
		t.Fatalf("expected nothing decided for a settled submission, got %v", result.Decided)
	}
}

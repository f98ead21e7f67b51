package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/pickem-league/internal/domain/week"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

// OddsProvider is the upstream odds and scores feed for one sport.
type OddsProvider interface {
	FetchOdds(ctx context.Context) ([]ExternalOddsEvent, error)
	FetchScores(ctx context.Context, daysFrom int) ([]ExternalScoreEvent, error)
}

type ExternalOddsEvent struct {
	ID           string
	HomeTeam     string
	AwayTeam     string
	CommenceTime time.Time
	Bookmakers   []ExternalBookmaker
}

type ExternalBookmaker struct {
	Key     string
	Markets []ExternalMarket
}

type ExternalMarket struct {
	Key      string
	Outcomes []ExternalOutcome
}

type ExternalOutcome struct {
	Name  string
	Price int
}

// ExternalScoreEvent mirrors one event of the scores feed. Scores stays nil
// while the provider has nothing to report for the event.
type ExternalScoreEvent struct {
	ID           string
	HomeTeam     string
	AwayTeam     string
	CommenceTime time.Time
	Completed    bool
	Scores       []ExternalTeamScore
}

type ExternalTeamScore struct {
	Name  string
	Score string
}

const (
	moneylineMarketKey        = "h2h"
	defaultScoresDaysFrom     = 3
	defaultPreferredBookmaker = "draftkings"
)

// GameSyncService pulls odds and scores from the provider, folds them into
// the stored week and keeps the tie breaker fields up to date. A failed
// fetch aborts the pass before anything is written.
type GameSyncService struct {
	weekRepo       week.Repository
	provider       OddsProvider
	logger         *logging.Logger
	location       *time.Location
	bookmaker      string
	scoresDaysFrom int
	now            func() time.Time
}

func NewGameSyncService(
	weekRepo week.Repository,
	provider OddsProvider,
	location *time.Location,
	bookmaker string,
	scoresDaysFrom int,
	logger *logging.Logger,
) *GameSyncService {
	if location == nil {
		location = time.UTC
	}
	if strings.TrimSpace(bookmaker) == "" {
		bookmaker = defaultPreferredBookmaker
	}
	if scoresDaysFrom <= 0 {
		scoresDaysFrom = defaultScoresDaysFrom
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &GameSyncService{
		weekRepo:       weekRepo,
		provider:       provider,
		logger:         logger,
		location:       location,
		bookmaker:      bookmaker,
		scoresDaysFrom: scoresDaysFrom,
		now:            time.Now,
	}
}

// SyncCurrentWeek refreshes the week containing now and returns its stored
// state after the pass.
func (s *GameSyncService) SyncCurrentWeek(ctx context.Context) (week.Week, error) {
	return s.SyncWeek(ctx, week.BoundsAt(s.now(), s.location))
}

// SyncWeek fetches odds and scores concurrently, normalizes both feeds into
// game fragments, merges them over the stored game list and persists the
// result. Nothing is written when either fetch fails, the caller retries on
// the next tick against unchanged state.
func (s *GameSyncService) SyncWeek(ctx context.Context, bounds week.Bounds) (week.Week, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameSyncService.SyncWeek")
	defer span.End()

	var (
		oddsEvents  []ExternalOddsEvent
		scoreEvents []ExternalScoreEvent
		oddsErr     error
		scoresErr   error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		oddsEvents, oddsErr = s.provider.FetchOdds(ctx)
	})
	wg.Go(func() {
		scoreEvents, scoresErr = s.provider.FetchScores(ctx, s.scoresDaysFrom)
	})
	wg.Wait()

	if oddsErr != nil {
		return week.Week{}, fmt.Errorf("fetch odds weekID=%s: %w", bounds.WeekID, oddsErr)
	}
	if scoresErr != nil {
		return week.Week{}, fmt.Errorf("fetch scores weekID=%s: %w", bounds.WeekID, scoresErr)
	}

	fragments := s.normalizeOddsEvents(ctx, oddsEvents, bounds)
	fragments = append(fragments, s.normalizeScoreEvents(ctx, scoreEvents, bounds)...)

	stored, found, err := s.weekRepo.Get(ctx, bounds.WeekID)
	if err != nil {
		return week.Week{}, fmt.Errorf("load week weekID=%s: %w", bounds.WeekID, err)
	}
	if !found {
		stored = week.Week{ID: bounds.WeekID}
	}

	stored.BettingWindowStart = bounds.BettingWindowStart
	stored.BettingWindowEnd = bounds.BettingWindowEnd
	stored.PicksRevealTime = bounds.PicksRevealTime
	stored.Games = week.MergeGames(stored.Games, fragments)

	if err := s.weekRepo.Upsert(ctx, stored); err != nil {
		return week.Week{}, fmt.Errorf("persist week weekID=%s: %w", bounds.WeekID, err)
	}

	if err := s.ensureTieBreaker(ctx, stored); err != nil {
		return week.Week{}, err
	}

	final, _, err := s.weekRepo.Get(ctx, bounds.WeekID)
	if err != nil {
		return week.Week{}, fmt.Errorf("reload week weekID=%s: %w", bounds.WeekID, err)
	}
	return final, nil
}

// ensureTieBreaker assigns the tie breaker game once the week has games and
// records its combined score once that game completes. Both stores are write
// once at the repository, a concurrent pass cannot overwrite them.
func (s *GameSyncService) ensureTieBreaker(ctx context.Context, stored week.Week) error {
	if stored.TieBreakerGameID == "" {
		gameID, ok := week.LastGameID(stored.Games)
		if !ok {
			return nil
		}
		set, err := s.weekRepo.SetTieBreakerGame(ctx, stored.ID, gameID)
		if err != nil {
			return fmt.Errorf("set tie breaker game weekID=%s: %w", stored.ID, err)
		}
		if set {
			stored.TieBreakerGameID = gameID
		} else {
			refreshed, _, err := s.weekRepo.Get(ctx, stored.ID)
			if err != nil {
				return fmt.Errorf("reload week weekID=%s: %w", stored.ID, err)
			}
			stored.TieBreakerGameID = refreshed.TieBreakerGameID
		}
	}

	if stored.ActualTieBreakerTotalPoints != nil || stored.TieBreakerGameID == "" {
		return nil
	}

	game, ok := stored.GameByID(stored.TieBreakerGameID)
	if !ok {
		s.logger.WarnContext(ctx, "tie breaker game missing from week",
			"week_id", stored.ID,
			"game_id", stored.TieBreakerGameID,
		)
		return nil
	}
	if !game.Completed {
		return nil
	}
	total, ok := game.TotalPoints()
	if !ok {
		s.logger.WarnContext(ctx, "tie breaker game completed without scores",
			"week_id", stored.ID,
			"game_id", game.ID,
		)
		return nil
	}

	if _, err := s.weekRepo.SetActualTieBreakerTotal(ctx, stored.ID, total); err != nil {
		return fmt.Errorf("set tie breaker total weekID=%s: %w", stored.ID, err)
	}
	return nil
}

// normalizeOddsEvents maps odds feed events into game fragments. The
// moneyline map is always present on an odds fragment, an event without the
// preferred bookmaker or without a moneyline market yields an empty map that
// clears stale prices on merge.
func (s *GameSyncService) normalizeOddsEvents(ctx context.Context, events []ExternalOddsEvent, bounds week.Bounds) []week.Game {
	fragments := make([]week.Game, 0, len(events))
	for _, event := range events {
		if !s.eventUsable(ctx, event.ID, event.HomeTeam, event.AwayTeam) {
			continue
		}
		if !bounds.Contains(event.CommenceTime.In(s.location)) {
			continue
		}
		fragments = append(fragments, week.Game{
			ID:           event.ID,
			HomeTeam:     event.HomeTeam,
			AwayTeam:     event.AwayTeam,
			CommenceTime: event.CommenceTime,
			Moneyline:    s.moneylineFrom(event),
		})
	}
	return fragments
}

// normalizeScoreEvents maps scores feed events into game fragments. A game
// is completed only when the provider says so. When a score list is present
// a side missing from it scores zero, when the list is absent the fragment
// carries no scores at all.
func (s *GameSyncService) normalizeScoreEvents(ctx context.Context, events []ExternalScoreEvent, bounds week.Bounds) []week.Game {
	fragments := make([]week.Game, 0, len(events))
	for _, event := range events {
		if !s.eventUsable(ctx, event.ID, event.HomeTeam, event.AwayTeam) {
			continue
		}
		if !bounds.Contains(event.CommenceTime.In(s.location)) {
			continue
		}

		fragment := week.Game{
			ID:           event.ID,
			HomeTeam:     event.HomeTeam,
			AwayTeam:     event.AwayTeam,
			CommenceTime: event.CommenceTime,
			Completed:    event.Completed,
		}
		if event.Scores != nil {
			home, away, err := s.splitScores(event)
			if err != nil {
				// Dropping the fragment keeps the game unsettled until a
				// readable report arrives.
				s.logger.WarnContext(ctx, "unreadable score payload",
					"game_id", event.ID,
					"error", err,
				)
				continue
			}
			fragment.HomeScore = &home
			fragment.AwayScore = &away
		}
		fragments = append(fragments, fragment)
	}
	return fragments
}

func (s *GameSyncService) eventUsable(ctx context.Context, id, homeTeam, awayTeam string) bool {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(homeTeam) == "" || strings.TrimSpace(awayTeam) == "" {
		s.logger.WarnContext(ctx, "skipping malformed provider event",
			"game_id", id,
			"home_team", homeTeam,
			"away_team", awayTeam,
		)
		return false
	}
	return true
}

func (s *GameSyncService) moneylineFrom(event ExternalOddsEvent) map[string]int {
	prices := make(map[string]int)
	for _, bookmaker := range event.Bookmakers {
		if bookmaker.Key != s.bookmaker {
			continue
		}
		for _, market := range bookmaker.Markets {
			if market.Key != moneylineMarketKey {
				continue
			}
			for _, outcome := range market.Outcomes {
				if outcome.Name == "" {
					continue
				}
				prices[outcome.Name] = outcome.Price
			}
		}
	}
	return prices
}

func (s *GameSyncService) splitScores(event ExternalScoreEvent) (int, int, error) {
	home, away := 0, 0
	for _, side := range event.Scores {
		value, err := strconv.Atoi(strings.TrimSpace(side.Score))
		if err != nil {
			return 0, 0, fmt.Errorf("parse score %q for %s: %w", side.Score, side.Name, err)
		}
		switch side.Name {
		case event.HomeTeam:
			home = value
		case event.AwayTeam:
			away = value
		}
	}
	return home, away, nil
}

package cache

import (
	"context"

	"github.com/riskibarqy/pickem-league/internal/domain/leaderboard"
	"github.com/riskibarqy/pickem-league/internal/domain/profile"
	"github.com/riskibarqy/pickem-league/internal/domain/week"
	basecache "github.com/riskibarqy/pickem-league/internal/platform/cache"
)

type WeekRepository struct {
	next  week.Repository
	cache *basecache.Store
}

func NewWeekRepository(next week.Repository, cache *basecache.Store) *WeekRepository {
	return &WeekRepository{next: next, cache: cache}
}

func (r *WeekRepository) Get(ctx context.Context, weekID string) (week.Week, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, weekKey(weekID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.Get(ctx, weekID)
		if err != nil {
			return nil, err
		}
		return cachedWeekByID{value: cloneWeek(item), exists: exists}, nil
	})
	if err != nil {
		return week.Week{}, false, err
	}

	cached, _ := v.(cachedWeekByID)
	return cloneWeek(cached.value), cached.exists, nil
}

func (r *WeekRepository) Upsert(ctx context.Context, value week.Week) error {
	if err := r.next.Upsert(ctx, value); err != nil {
		return err
	}
	r.cache.Delete(ctx, weekKey(value.ID))
	return nil
}

func (r *WeekRepository) SetTieBreakerGame(ctx context.Context, weekID, gameID string) (bool, error) {
	applied, err := r.next.SetTieBreakerGame(ctx, weekID, gameID)
	if err != nil {
		return false, err
	}
	// A false return means the write once guard rejected the call and the
	// stored row did not change, so the cached copy stays valid.
	if applied {
		r.cache.Delete(ctx, weekKey(weekID))
	}
	return applied, nil
}

func (r *WeekRepository) SetActualTieBreakerTotal(ctx context.Context, weekID string, totalPoints int) (bool, error) {
	applied, err := r.next.SetActualTieBreakerTotal(ctx, weekID, totalPoints)
	if err != nil {
		return false, err
	}
	if applied {
		r.cache.Delete(ctx, weekKey(weekID))
	}
	return applied, nil
}

type cachedWeekByID struct {
	value  week.Week
	exists bool
}

func cloneWeek(item week.Week) week.Week {
	out := item
	if item.ActualTieBreakerTotalPoints != nil {
		total := *item.ActualTieBreakerTotalPoints
		out.ActualTieBreakerTotalPoints = &total
	}
	if item.Games != nil {
		out.Games = make([]week.Game, 0, len(item.Games))
		for _, game := range item.Games {
			out.Games = append(out.Games, cloneGame(game))
		}
	}
	return out
}

func cloneGame(item week.Game) week.Game {
	out := item
	if item.Moneyline != nil {
		out.Moneyline = make(map[string]int, len(item.Moneyline))
		for team, price := range item.Moneyline {
			out.Moneyline[team] = price
		}
	}
	if item.HomeScore != nil {
		score := *item.HomeScore
		out.HomeScore = &score
	}
	if item.AwayScore != nil {
		score := *item.AwayScore
		out.AwayScore = &score
	}
	return out
}

func weekKey(weekID string) string {
	return "week:id:" + weekID
}

type ProfileRepository struct {
	next  profile.Repository
	cache *basecache.Store
}

func NewProfileRepository(next profile.Repository, cache *basecache.Store) *ProfileRepository {
	return &ProfileRepository{next: next, cache: cache}
}

func (r *ProfileRepository) GetByID(ctx context.Context, userID string) (profile.Profile, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, profileKey(userID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return cachedProfileByID{value: cloneProfile(item), exists: exists}, nil
	})
	if err != nil {
		return profile.Profile{}, false, err
	}

	cached, _ := v.(cachedProfileByID)
	return cloneProfile(cached.value), cached.exists, nil
}

func (r *ProfileRepository) Create(ctx context.Context, value profile.Profile) (bool, error) {
	created, err := r.next.Create(ctx, value)
	if err != nil {
		return false, err
	}
	// A fresh insert can shadow an earlier cached miss for the same user.
	if created {
		r.cache.Delete(ctx, profileKey(value.UserID))
	}
	return created, nil
}

func (r *ProfileRepository) CreditWinnerBucks(ctx context.Context, userID string, delta float64) error {
	if err := r.next.CreditWinnerBucks(ctx, userID, delta); err != nil {
		return err
	}
	r.cache.Delete(ctx, profileKey(userID))
	return nil
}

func (r *ProfileRepository) DebitPredictorPoints(ctx context.Context, userID string, amount int) (bool, error) {
	debited, err := r.next.DebitPredictorPoints(ctx, userID, amount)
	if err != nil {
		return false, err
	}
	if debited {
		r.cache.Delete(ctx, profileKey(userID))
	}
	return debited, nil
}

func (r *ProfileRepository) RefundPredictorPoints(ctx context.Context, userID string, amount int) error {
	if err := r.next.RefundPredictorPoints(ctx, userID, amount); err != nil {
		return err
	}
	r.cache.Delete(ctx, profileKey(userID))
	return nil
}

func (r *ProfileRepository) IncrementWeeklyEntries(ctx context.Context, userID, weekID string, maxEntries int) (bool, error) {
	incremented, err := r.next.IncrementWeeklyEntries(ctx, userID, weekID, maxEntries)
	if err != nil {
		return false, err
	}
	if incremented {
		r.cache.Delete(ctx, profileKey(userID))
	}
	return incremented, nil
}

func (r *ProfileRepository) DecrementWeeklyEntries(ctx context.Context, userID, weekID string) error {
	if err := r.next.DecrementWeeklyEntries(ctx, userID, weekID); err != nil {
		return err
	}
	r.cache.Delete(ctx, profileKey(userID))
	return nil
}

type cachedProfileByID struct {
	value  profile.Profile
	exists bool
}

func cloneProfile(item profile.Profile) profile.Profile {
	out := item
	if item.WeeklyEntries != nil {
		out.WeeklyEntries = make(map[string]int, len(item.WeeklyEntries))
		for weekID, entries := range item.WeeklyEntries {
			out.WeeklyEntries[weekID] = entries
		}
	}
	return out
}

func profileKey(userID string) string {
	return "profile:id:" + userID
}

type LeaderboardRepository struct {
	next  leaderboard.Repository
	cache *basecache.Store
}

func NewLeaderboardRepository(next leaderboard.Repository, cache *basecache.Store) *LeaderboardRepository {
	return &LeaderboardRepository{next: next, cache: cache}
}

func (r *LeaderboardRepository) GetByWeek(ctx context.Context, weekID string) (leaderboard.Leaderboard, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, leaderboardKey(weekID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByWeek(ctx, weekID)
		if err != nil {
			return nil, err
		}
		return cachedLeaderboardByWeek{value: cloneLeaderboard(item), exists: exists}, nil
	})
	if err != nil {
		return leaderboard.Leaderboard{}, false, err
	}

	cached, _ := v.(cachedLeaderboardByWeek)
	return cloneLeaderboard(cached.value), cached.exists, nil
}

func (r *LeaderboardRepository) Replace(ctx context.Context, value leaderboard.Leaderboard) error {
	if err := r.next.Replace(ctx, value); err != nil {
		return err
	}
	r.cache.Delete(ctx, leaderboardKey(value.WeekID))
	return nil
}

type cachedLeaderboardByWeek struct {
	value  leaderboard.Leaderboard
	exists bool
}

func cloneLeaderboard(item leaderboard.Leaderboard) leaderboard.Leaderboard {
	out := item
	if item.Entries != nil {
		out.Entries = append([]leaderboard.Entry(nil), item.Entries...)
	}
	return out
}

func leaderboardKey(weekID string) string {
	return "leaderboard:week:" + weekID
}

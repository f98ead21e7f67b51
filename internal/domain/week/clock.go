package week

import "time"

const (
	bettingCloseWeekdayOffset = 2
	bettingCloseHour          = 17
	revealWeekdayOffset       = 3
	revealHour                = 12
	weekStartMinute           = 1
)

// Bounds holds the temporal fields of one betting week. A week runs from
// Tuesday 00:01 local time until the next Tuesday 00:01, betting closes
// Thursday 17:00 and picks become public Friday 12:00.
type Bounds struct {
	WeekID             string
	BettingWindowStart time.Time
	BettingWindowEnd   time.Time
	PicksRevealTime    time.Time
}

// BoundsAt resolves the week containing the given instant. The mapping is
// deterministic, every instant belongs to exactly one week and the week id is
// the start date formatted as 2006-01-02.
func BoundsAt(at time.Time, loc *time.Location) Bounds {
	local := at.In(loc)
	start := weekStartFor(local)
	return Bounds{
		WeekID:             start.Format("2006-01-02"),
		BettingWindowStart: start,
		BettingWindowEnd:   wallTimeAfter(start, bettingCloseWeekdayOffset, bettingCloseHour),
		PicksRevealTime:    wallTimeAfter(start, revealWeekdayOffset, revealHour),
	}
}

// NextWeekStart is the instant the following week begins.
func (b Bounds) NextWeekStart() time.Time {
	start := b.BettingWindowStart
	return time.Date(start.Year(), start.Month(), start.Day()+7, 0, weekStartMinute, 0, 0, start.Location())
}

// Contains reports whether an instant falls inside this week.
func (b Bounds) Contains(t time.Time) bool {
	return !t.Before(b.BettingWindowStart) && t.Before(b.NextWeekStart())
}

// weekStartFor walks back to the most recent Tuesday 00:01 at or before the
// instant. An instant on Tuesday between 00:00 and 00:01 still belongs to the
// previous week.
func weekStartFor(local time.Time) time.Time {
	daysSinceTuesday := (int(local.Weekday()) - int(time.Tuesday) + 7) % 7
	candidate := time.Date(local.Year(), local.Month(), local.Day(), 0, weekStartMinute, 0, 0, local.Location())
	candidate = candidate.AddDate(0, 0, -daysSinceTuesday)
	if local.Before(candidate) {
		candidate = candidate.AddDate(0, 0, -7)
	}
	return candidate
}

// wallTimeAfter lands on a wall clock hour a number of days after the week
// start. Wall clock arithmetic keeps the deadlines stable across DST shifts.
func wallTimeAfter(start time.Time, days, hour int) time.Time {
	return time.Date(start.Year(), start.Month(), start.Day()+days, hour, 0, 0, 0, start.Location())
}

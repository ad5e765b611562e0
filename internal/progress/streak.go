package progress

import (
	"context"
	"time"
)

const dayLayout = "2006-01-02"

// StreakRecord is the persisted streak. LastActivityDate is a calendar day
// in the store's location.
type StreakRecord struct {
	CurrentStreak    int    `json:"currentStreak"`
	LastActivityDate string `json:"lastActivityDate"`
}

// Streak returns the number of consecutive days with at least one
// completion, as of now. A streak whose last activity was before yesterday
// reads as 0. Reading never changes what is stored; the stale value is
// replaced on the next completion.
func (s *Store) Streak(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.loadStreak(ctx)
	if !ok {
		return 0
	}
	today := s.now()
	switch rec.LastActivityDate {
	case dayKey(today), dayKey(yesterday(today)):
		return rec.CurrentStreak
	default:
		return 0
	}
}

// StreakRecord returns the stored streak as is, without lapsing it. The
// boolean is false when nothing valid is stored.
func (s *Store) StreakRecord(ctx context.Context) (StreakRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadStreak(ctx)
}

// advanceStreak records a completion on the current day. Callers hold s.mu.
func (s *Store) advanceStreak(ctx context.Context) {
	today := s.now()
	rec, ok := s.loadStreak(ctx)
	next, changed := advance(rec, ok, today)
	if changed {
		s.write(ctx, StreakKey, next)
	}
}

// advance computes the streak after a completion at now. The boolean is
// false when the stored value already reflects today.
func advance(rec StreakRecord, ok bool, now time.Time) (StreakRecord, bool) {
	today := dayKey(now)
	switch {
	case !ok:
		return StreakRecord{CurrentStreak: 1, LastActivityDate: today}, true
	case rec.LastActivityDate == today:
		return rec, false
	case rec.LastActivityDate == dayKey(yesterday(now)):
		return StreakRecord{CurrentStreak: rec.CurrentStreak + 1, LastActivityDate: today}, true
	default:
		// Gap of two or more days, or a date in the future.
		return StreakRecord{CurrentStreak: 1, LastActivityDate: today}, true
	}
}

func (s *Store) loadStreak(ctx context.Context) (StreakRecord, bool) {
	var rec StreakRecord
	if !s.read(ctx, StreakKey, &rec) {
		return StreakRecord{}, false
	}
	return rec, true
}

// dayKey formats t as a calendar day in t's own location.
func dayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// yesterday returns the same wall-clock time one calendar day earlier.
func yesterday(t time.Time) time.Time {
	return t.AddDate(0, 0, -1)
}

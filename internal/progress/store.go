// Package progress tracks a single learner's lesson progress, daily
// completion streak and settings on top of a durable key-value store.
//
// The store never fails a read: missing, unreadable or malformed data
// yields defaults. Storage write failures are logged and dropped, so the
// in-memory result of an operation may not survive a restart when the
// backend is unavailable.
package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/lessonhub/internal/store"
)

// Persisted keys. Each is an independent JSON blob.
const (
	ProgressKey = "lessonhub:progress"
	StreakKey   = "lessonhub:streak"
	SettingsKey = "lessonhub:settings"
)

// Keys returns every key the store reads or writes.
func Keys() []string {
	return []string{ProgressKey, StreakKey, SettingsKey}
}

// Store is the progress API. It is safe for concurrent use; each operation
// runs its read-modify-write under one lock.
type Store struct {
	mu       sync.Mutex
	kv       store.KV
	clock    func() time.Time
	loc      *time.Location
	logger   *zap.Logger
	activity store.ActivityLog
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source. Defaults to time.Now.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

// WithLocation sets the location whose calendar days the streak counts.
// Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *Store) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithLogger sets the logger used for storage problems.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithActivityLog records every status change in log.
func WithActivityLog(log store.ActivityLog) Option {
	return func(s *Store) { s.activity = log }
}

// NewStore returns a progress store over kv. A nil kv behaves as storage
// that is unavailable.
func NewStore(kv store.KV, opts ...Option) *Store {
	if kv == nil {
		kv = store.Unavailable{}
	}
	s := &Store{
		kv:     kv,
		clock:  time.Now,
		loc:    time.Local,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location returns the location streak days are counted in.
func (s *Store) Location() *time.Location {
	return s.loc
}

func (s *Store) now() time.Time {
	return s.clock().In(s.loc)
}

// All returns every stored record keyed by lesson id. Lessons without a
// record are not started.
func (s *Store) All(ctx context.Context) map[string]Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs := s.loadRecords(ctx)
	out := make(map[string]Record, len(rs.byID))
	for id, r := range rs.byID {
		out[id] = copyRecord(r)
	}
	return out
}

// Records returns every stored record in the order lessons were first
// touched.
func (s *Store) Records(ctx context.Context) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadRecords(ctx).list()
}

// Get returns the record for one lesson. When nothing is stored the result
// is a not_started record for id and false.
func (s *Store) Get(ctx context.Context, lessonID string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.loadRecords(ctx).get(lessonID); ok {
		return copyRecord(r), true
	}
	return Record{LessonID: lessonID, Status: NotStarted}, false
}

// SetStatus moves a lesson to status. Completing a lesson stamps its
// completion time and advances the streak. Moving it back to in_progress
// keeps the earlier completion time.
//
// not_started deletes the record, so the lesson reads exactly like one that
// was never touched and its completion time is gone too: completing it
// again later is its first recorded completion. The lesson id is not
// checked against any catalog.
func (s *Store) SetStatus(ctx context.Context, lessonID string, status Status) error {
	if lessonID == "" {
		return ErrEmptyLessonID
	}
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	rs := s.loadRecords(ctx)

	if status == NotStarted {
		if rs.remove(lessonID) {
			s.write(ctx, ProgressKey, rs)
		}
	} else {
		prev, _ := rs.get(lessonID)
		next := Record{LessonID: lessonID, Status: status, CompletedAt: prev.CompletedAt}
		if status == Completed {
			at := now.UTC().Truncate(time.Millisecond)
			next.CompletedAt = &at
		}
		rs.put(next)
		s.write(ctx, ProgressKey, rs)

		if status == Completed {
			s.advanceStreak(ctx)
		}
	}

	s.recordActivity(ctx, lessonID, status, now)
	return nil
}

// CompletedIDs returns the ids of completed lessons in first-touched order.
func (s *Store) CompletedIDs(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadRecords(ctx).idsWithStatus(Completed)
}

// InProgressIDs returns the ids of in-progress lessons in first-touched order.
func (s *Store) InProgressIDs(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadRecords(ctx).idsWithStatus(InProgress)
}

// ResetAll removes all progress and the streak together. Settings are kept.
func (s *Store) ResetAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, ProgressKey, StreakKey); err != nil {
		s.logger.Warn("reset progress failed", zap.Error(err))
	}
}

// History returns up to limit recent status changes, newest first. It
// returns nil when no activity log is configured.
func (s *Store) History(ctx context.Context, limit int) ([]store.ActivityEvent, error) {
	if s.activity == nil {
		return nil, nil
	}
	events, err := s.activity.Query(ctx, store.QueryOpts{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	return events, nil
}

// Raw returns the stored blobs for the given keys, skipping absent ones.
func (s *Store) Raw(ctx context.Context, keys ...string) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(keys))
	for _, k := range keys {
		v, ok, err := s.kv.Get(ctx, k)
		if err != nil {
			s.logger.Warn("read failed", zap.String("key", k), zap.Error(err))
			continue
		}
		if ok {
			out[k] = v
		}
	}
	return out
}

// Restore writes previously captured blobs back verbatim. Keys missing from
// blobs are deleted.
func (s *Store) Restore(ctx context.Context, blobs map[string]string, keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var missing []string
	for _, k := range keys {
		v, ok := blobs[k]
		if !ok {
			missing = append(missing, k)
			continue
		}
		if err := s.kv.Set(ctx, k, v); err != nil {
			s.logger.Warn("restore failed", zap.String("key", k), zap.Error(err))
		}
	}
	if len(missing) > 0 {
		if err := s.kv.Delete(ctx, missing...); err != nil {
			s.logger.Warn("restore failed", zap.Strings("keys", missing), zap.Error(err))
		}
	}
}

func (s *Store) loadRecords(ctx context.Context) *recordSet {
	rs := newRecordSet()
	if !s.read(ctx, ProgressKey, rs) {
		return newRecordSet()
	}
	return rs
}

func (s *Store) recordActivity(ctx context.Context, lessonID string, status Status, at time.Time) {
	if s.activity == nil {
		return
	}
	_, err := s.activity.Append(ctx, store.ActivityEvent{
		LessonID:  lessonID,
		Status:    string(status),
		Timestamp: at,
	})
	if err != nil {
		s.logger.Warn("record activity failed",
			zap.String("lesson_id", lessonID), zap.Error(err))
	}
}

// read loads key into v. It reports false when the key is absent,
// unreadable or fails its schema; problems other than absence are logged.
func (s *Store) read(ctx context.Context, key string, v any) bool {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Warn("read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := decodeBlob(key, raw, v); err != nil {
		s.logger.Warn("ignoring stored value", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *Store) write(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.kv.Set(ctx, key, string(b)); err != nil {
		s.logger.Warn("write failed", zap.String("key", key), zap.Error(err))
	}
}

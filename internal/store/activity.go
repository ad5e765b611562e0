package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// activityLog implements ActivityLog on the activity_events table.
type activityLog struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (a *activityLog) Append(ctx context.Context, ev ActivityEvent) (ActivityEvent, error) {
	seqNum, err := a.seq.Next(ctx)
	if err != nil {
		return ActivityEvent{}, fmt.Errorf("next sequence: %w", err)
	}
	ev = stampEvent(ev, seqNum)

	_, err = a.db.ExecContext(ctx,
		`INSERT INTO activity_events (id, sequence, timestamp, lesson_id, status) VALUES (?, ?, ?, ?, ?)`,
		ev.ID, ev.Sequence, ev.Timestamp.UnixMilli(), ev.LessonID, ev.Status,
	)
	if err != nil {
		return ActivityEvent{}, fmt.Errorf("save activity event: %w", err)
	}
	return ev, nil
}

func (a *activityLog) Query(ctx context.Context, opts QueryOpts) ([]ActivityEvent, error) {
	where, args := opts.where()
	q := `SELECT id, sequence, timestamp, lesson_id, status FROM activity_events` + where + " ORDER BY sequence DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := a.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query activity events: %w", err)
	}
	defer rows.Close()

	var events []ActivityEvent
	for rows.Next() {
		var (
			ev ActivityEvent
			ms int64
		)
		if err := rows.Scan(&ev.ID, &ev.Sequence, &ms, &ev.LessonID, &ev.Status); err != nil {
			return nil, fmt.Errorf("scan activity event: %w", err)
		}
		ev.Timestamp = time.UnixMilli(ms)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity events: %w", err)
	}
	return events, nil
}

// MemoryActivityLog is an in-process ActivityLog.
type MemoryActivityLog struct {
	mu     sync.Mutex
	next   int64
	events []ActivityEvent
}

// NewMemoryActivityLog returns an empty in-memory activity log.
func NewMemoryActivityLog() *MemoryActivityLog {
	return &MemoryActivityLog{next: 1}
}

func (m *MemoryActivityLog) Append(_ context.Context, ev ActivityEvent) (ActivityEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev = stampEvent(ev, m.next)
	m.next++
	m.events = append(m.events, ev)
	return ev, nil
}

func (m *MemoryActivityLog) Query(_ context.Context, opts QueryOpts) ([]ActivityEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []ActivityEvent
	for _, ev := range slices.Backward(m.events) {
		if opts.After > 0 && ev.Sequence <= opts.After {
			continue
		}
		if opts.Before > 0 && ev.Sequence >= opts.Before {
			continue
		}
		if !opts.From.IsZero() && ev.Timestamp.Before(opts.From) {
			continue
		}
		if !opts.To.IsZero() && ev.Timestamp.After(opts.To) {
			continue
		}
		out = append(out, ev)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}

func stampEvent(ev ActivityEvent, seq int64) ActivityEvent {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	ev.Sequence = seq
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	ev.Timestamp = ev.Timestamp.Truncate(time.Millisecond)
	return ev
}

package store

import (
	"context"
	"strings"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// where builds a WHERE clause over the sequence and timestamp columns.
// Timestamps are stored as Unix milliseconds.
func (o QueryOpts) where() (string, []any) {
	var (
		conds []string
		args  []any
	)
	if o.After > 0 {
		conds = append(conds, "sequence > ?")
		args = append(args, o.After)
	}
	if o.Before > 0 {
		conds = append(conds, "sequence < ?")
		args = append(args, o.Before)
	}
	if !o.From.IsZero() {
		conds = append(conds, "timestamp >= ?")
		args = append(args, o.From.UnixMilli())
	}
	if !o.To.IsZero() {
		conds = append(conds, "timestamp <= ?")
		args = append(args, o.To.UnixMilli())
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ActivityEvent records one lesson status change.
type ActivityEvent struct {
	ID        string
	Sequence  int64
	Timestamp time.Time
	LessonID  string
	Status    string
}

// ActivityLog is the append-only history of lesson status changes.
type ActivityLog interface {
	// Append assigns the event an id and sequence number and stores it.
	// A zero Timestamp is replaced with the current time.
	Append(ctx context.Context, ev ActivityEvent) (ActivityEvent, error)

	// Query returns matching events, newest first.
	Query(ctx context.Context, opts QueryOpts) ([]ActivityEvent, error)
}

// Snapshot is a point-in-time copy of selected KV entries, taken before a
// destructive operation so it can be undone.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Reason    string
	Data      map[string]string
}

// SnapshotRepo manages KV snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot. Sequence is filled from the global counter
	// when zero.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventRepo provides append access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	LLMRequestEventData
	Sequence  int64
	Timestamp time.Time
}

// LLMUsage aggregates LLM request events sharing a purpose or model.
type LLMUsage struct {
	Key          string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMEventReader reads back recorded LLM request events.
type LLMEventReader interface {
	// QueryLLMEvents returns matching events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates events by purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates events by model id.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}

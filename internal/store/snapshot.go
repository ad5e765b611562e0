package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// snapshotRepo implements SnapshotRepo on the snapshots table.
type snapshotRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now()
	}
	if snap.Sequence == 0 && r.seq != nil {
		if snap.Sequence, err = r.seq.Current(ctx); err != nil {
			return err
		}
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO snapshots (sequence, timestamp, reason, data) VALUES (?, ?, ?, ?)`,
		snap.Sequence, snap.Timestamp.UnixMilli(), snap.Reason, string(data),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		snap.ID = int(id)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	var (
		snap Snapshot
		ms   int64
		data string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, sequence, timestamp, reason, data FROM snapshots ORDER BY timestamp DESC, id DESC LIMIT 1`,
	).Scan(&snap.ID, &snap.Sequence, &ms, &snap.Reason, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	snap.Timestamp = time.UnixMilli(ms)
	if err := json.Unmarshal([]byte(data), &snap.Data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	return &snap, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	// Everything older than the keep-th newest snapshot goes.
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY timestamp DESC, id DESC LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

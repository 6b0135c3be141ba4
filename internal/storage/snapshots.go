package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ramonehamilton/proxygen/internal/cards"
)

// ErrNoSnapshot is returned when the database holds no dataset snapshot.
var ErrNoSnapshot = errors.New("no dataset snapshot")

// Snapshot describes one imported copy of the reference dataset.
type Snapshot struct {
	ID          string
	Source      string
	RecordCount int
	CreatedAt   time.Time
}

// SaveSnapshot stores records, in order, as a new snapshot. Either every
// record is written or none are.
func (db *DB) SaveSnapshot(ctx context.Context, source string, records []cards.RawRecord) (*Snapshot, error) {
	snap := &Snapshot{
		ID:          uuid.NewString(),
		Source:      source,
		RecordCount: len(records),
		CreatedAt:   time.Now().UTC(),
	}

	if err := db.writeSnapshot(ctx, snap, records); err != nil {
		return nil, err
	}
	return snap, nil
}

// LatestSnapshot returns the most recently saved snapshot.
func (db *DB) LatestSnapshot(ctx context.Context) (*Snapshot, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT id, source, record_count, created_at
		FROM snapshots
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1`)

	var snap Snapshot
	err := row.Scan(&snap.ID, &snap.Source, &snap.RecordCount, &snap.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest snapshot: %w", err)
	}
	return &snap, nil
}

// ListSnapshots returns every snapshot, newest first.
func (db *DB) ListSnapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, source, record_count, created_at
		FROM snapshots
		ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.Source, &s.RecordCount, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snaps = append(snaps, s)
	}
	return snaps, rows.Err()
}

// LoadRecords returns the records of the latest snapshot in the order they
// were saved.
func (db *DB) LoadRecords(ctx context.Context) ([]cards.RawRecord, *Snapshot, error) {
	snap, err := db.LatestSnapshot(ctx)
	if err != nil {
		return nil, nil, err
	}

	records, err := db.SnapshotRecords(ctx, snap.ID)
	if err != nil {
		return nil, nil, err
	}
	return records, snap, nil
}

// SnapshotRecords returns the records of one snapshot in saved order.
func (db *DB) SnapshotRecords(ctx context.Context, snapshotID string) ([]cards.RawRecord, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT name, layout, mana_cost, supertypes, types, subtypes, text,
		       power, toughness, loyalty, names
		FROM cards
		WHERE snapshot_id = ?
		ORDER BY position`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	var records []cards.RawRecord
	for rows.Next() {
		var (
			rec cards.RawRecord
			row cardRow
		)
		if err := rows.Scan(
			&rec.Name, &rec.Layout, &rec.ManaCost,
			&row.supertypes, &row.types, &row.subtypes, &rec.Text,
			&row.power, &row.toughness, &row.loyalty, &row.names,
		); err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		if err := row.apply(&rec); err != nil {
			return nil, fmt.Errorf("card %q: %w", rec.Name, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cards: %w", err)
	}
	return records, nil
}

// PruneSnapshots deletes all but the newest keep snapshots and reports how
// many were removed.
func (db *DB) PruneSnapshots(ctx context.Context, keep int) (int, error) {
	if keep < 1 {
		return 0, fmt.Errorf("keep must be at least 1, got %d", keep)
	}

	res, err := db.conn.ExecContext(ctx, `
		DELETE FROM snapshots
		WHERE id NOT IN (
			SELECT id FROM snapshots
			ORDER BY created_at DESC, rowid DESC
			LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned snapshots: %w", err)
	}
	return int(n), nil
}

// cardRow holds the columns of a card that need conversion.
type cardRow struct {
	supertypes string
	types      string
	subtypes   string
	power      sql.NullString
	toughness  sql.NullString
	loyalty    sql.NullString
	names      sql.NullString
}

func newCardRow(rec cards.RawRecord) (cardRow, error) {
	var (
		row cardRow
		err error
	)
	if row.supertypes, err = encodeList(rec.Supertypes); err != nil {
		return row, err
	}
	if row.types, err = encodeList(rec.Types); err != nil {
		return row, err
	}
	if row.subtypes, err = encodeList(rec.Subtypes); err != nil {
		return row, err
	}

	row.power = nullString(rec.Power)
	row.toughness = nullString(rec.Toughness)
	if rec.Loyalty != nil {
		row.loyalty = sql.NullString{String: string(*rec.Loyalty), Valid: true}
	}

	// NULL and "[]" are different: a composite record with an empty list
	// is malformed, one with no list at all has no names.
	if rec.Names != nil {
		names, err := json.Marshal(rec.Names)
		if err != nil {
			return row, err
		}
		row.names = sql.NullString{String: string(names), Valid: true}
	}
	return row, nil
}

func (row cardRow) apply(rec *cards.RawRecord) error {
	var err error
	if rec.Supertypes, err = decodeList(row.supertypes); err != nil {
		return err
	}
	if rec.Types, err = decodeList(row.types); err != nil {
		return err
	}
	if rec.Subtypes, err = decodeList(row.subtypes); err != nil {
		return err
	}

	rec.Power = stringPtr(row.power)
	rec.Toughness = stringPtr(row.toughness)
	if row.loyalty.Valid {
		l := cards.Loyalty(row.loyalty.String)
		rec.Loyalty = &l
	}

	if row.names.Valid {
		names := []string{}
		if err := json.Unmarshal([]byte(row.names.String), &names); err != nil {
			return fmt.Errorf("decode names: %w", err)
		}
		rec.Names = names
	}
	return nil
}

func encodeList(list []string) (string, error) {
	if len(list) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeList(s string) ([]string, error) {
	var list []string
	if err := json.Unmarshal([]byte(s), &list); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ramonehamilton/proxygen/internal/cards"
)

// WithTransaction runs fn in a transaction and commits when fn returns nil.
// The transaction is rolled back when fn fails or panics; a panic is not
// recovered.
func (db *DB) WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	finished := false
	defer func() {
		if !finished {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	finished = true
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// snapshotWriter writes one snapshot and its cards inside a transaction.
type snapshotWriter struct {
	insert *sql.Stmt
	snap   *Snapshot
	next   int
}

// writeSnapshot stores snap and records as a single unit of work.
func (db *DB) writeSnapshot(ctx context.Context, snap *Snapshot, records []cards.RawRecord) error {
	return db.WithTransaction(ctx, func(tx *sql.Tx) error {
		w, err := newSnapshotWriter(ctx, tx, snap)
		if err != nil {
			return err
		}
		defer w.insert.Close()

		for _, rec := range records {
			if err := w.add(ctx, rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func newSnapshotWriter(ctx context.Context, tx *sql.Tx, snap *Snapshot) (*snapshotWriter, error) {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, source, record_count, created_at) VALUES (?, ?, ?, ?)`,
		snap.ID, snap.Source, snap.RecordCount, snap.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cards (
			snapshot_id, position, key, name, layout, mana_cost,
			supertypes, types, subtypes, text, power, toughness, loyalty, names
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare card insert: %w", err)
	}

	return &snapshotWriter{insert: stmt, snap: snap}, nil
}

// add writes rec at the next position of the snapshot.
func (w *snapshotWriter) add(ctx context.Context, rec cards.RawRecord) error {
	row, err := newCardRow(rec)
	if err != nil {
		return fmt.Errorf("record %q: %w", rec.Name, err)
	}

	if _, err := w.insert.ExecContext(ctx,
		w.snap.ID, w.next, cards.Sanitize(rec.Name), rec.Name, rec.Layout, rec.ManaCost,
		row.supertypes, row.types, row.subtypes, rec.Text,
		row.power, row.toughness, row.loyalty, row.names,
	); err != nil {
		return fmt.Errorf("failed to insert card %q: %w", rec.Name, err)
	}
	w.next++
	return nil
}

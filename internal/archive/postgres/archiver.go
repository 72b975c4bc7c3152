package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"torque-lite-pro/internal/session"
)

const defaultSnapshotTable = "vehicle_snapshots"

// SnapshotArchiver is an optional consumer that persists the latest session
// per vehicle to Postgres. It keeps one row per vehicle; history is out of
// scope here.
type SnapshotArchiver struct {
	db    *sql.DB
	table string
}

// ArchiverOption configures the archiver.
type ArchiverOption func(*SnapshotArchiver)

// WithTable overrides the default table name.
func WithTable(table string) ArchiverOption {
	return func(a *SnapshotArchiver) {
		if table != "" {
			a.table = table
		}
	}
}

// NewSnapshotArchiver constructs an archiver.
func NewSnapshotArchiver(db *sql.DB, opts ...ArchiverOption) (*SnapshotArchiver, error) {
	if db == nil {
		return nil, errors.New("snapshot archiver: nil db")
	}
	archiver := &SnapshotArchiver{db: db, table: defaultSnapshotTable}
	for _, opt := range opts {
		opt(archiver)
	}
	return archiver, nil
}

// Notify upserts the vehicle's latest snapshot.
func (a *SnapshotArchiver) Notify(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return errors.New("snapshot archiver: nil session")
	}
	vehicleID := sess.VehicleID()
	if vehicleID == "" {
		return errors.New("snapshot archiver: session has no vehicle identity")
	}

	profile, err := json.Marshal(sess.Profile)
	if err != nil {
		return err
	}
	values, err := json.Marshal(sess.Values)
	if err != nil {
		return err
	}
	meta, err := json.Marshal(sess.Meta)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
INSERT INTO %s (
	vehicle_id,
	session_id,
	profile,
	readings,
	readings_meta,
	language,
	unit_preference,
	last_seen
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8
)
ON CONFLICT (vehicle_id)
DO UPDATE SET
	session_id = EXCLUDED.session_id,
	profile = EXCLUDED.profile,
	readings = EXCLUDED.readings,
	readings_meta = EXCLUDED.readings_meta,
	language = EXCLUDED.language,
	unit_preference = EXCLUDED.unit_preference,
	last_seen = EXCLUDED.last_seen,
	updated_at = NOW()`, a.table)

	_, err = a.db.ExecContext(ctx, query,
		vehicleID,
		sess.ID,
		profile,
		values,
		meta,
		sess.Language,
		string(sess.UnitPreference),
		sess.LastSeen,
	)
	return err
}

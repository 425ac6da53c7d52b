package snapshot

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/osmworks/osmh/errors"
	"github.com/osmworks/osmh/osm"
)

// Store persists snapshot extracts to the OSMH SQLite database. The
// schema lives in db/sqlite/migrations; callers open the database via
// db.OpenWithMigrations.
type Store struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// NewStore creates a Store. logger may be nil for silent operation.
func NewStore(db *sql.DB, logger *zap.SugaredLogger) *Store {
	return &Store{db: db, logger: logger}
}

// Run describes one persisted extraction.
type Run struct {
	ID          string
	ExtractedAt osm.Timestamp
	Source      string
	ObjectCount int
}

// SaveExtract stores the objects of one extraction under a fresh run ID.
// The whole run is written in a single transaction; a failed run leaves
// no rows behind.
func (s *Store) SaveExtract(ctx context.Context, at osm.Timestamp, source string, objs []osm.Object) (*Run, error) {
	run := &Run{
		ID:          uuid.NewString(),
		ExtractedAt: at,
		Source:      source,
		ObjectCount: len(objs),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "begin snapshot tx")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshot_runs (id, extracted_at, source, object_count) VALUES (?, ?, ?, ?)`,
		run.ID, int64(run.ExtractedAt), run.Source, run.ObjectCount)
	if err != nil {
		return nil, errors.Wrap(err, "insert snapshot run")
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO snapshot_objects (run_id, object_type, object_id, version, changeset, timestamp, uid, username)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, errors.Wrap(err, "prepare snapshot object insert")
	}
	defer stmt.Close()

	for _, obj := range objs {
		info := obj.ObjectInfo()
		_, err = stmt.ExecContext(ctx,
			run.ID, string(obj.ObjectType()), int64(obj.ObjectID()),
			info.Version, info.Changeset, int64(info.Timestamp), info.UID, info.User)
		if err != nil {
			return nil, errors.Wrapf(err, "insert %s %d", obj.ObjectType(), obj.ObjectID())
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit snapshot tx")
	}

	if s.logger != nil {
		s.logger.Infow("Snapshot saved",
			"run_id", run.ID,
			"extracted_at", run.ExtractedAt.String(),
			"objects", run.ObjectCount,
		)
	}
	return run, nil
}

// GetRun loads one run by ID. Returns errors.ErrNotFound for unknown IDs.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	var run Run
	var extractedAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, extracted_at, source, object_count FROM snapshot_runs WHERE id = ?`, id).
		Scan(&run.ID, &extractedAt, &run.Source, &run.ObjectCount)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError("snapshot run %s", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "query snapshot run")
	}
	run.ExtractedAt = osm.Timestamp(extractedAt)
	return &run, nil
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, extracted_at, source, object_count FROM snapshot_runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "query snapshot runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var extractedAt int64
		if err := rows.Scan(&run.ID, &extractedAt, &run.Source, &run.ObjectCount); err != nil {
			return nil, errors.Wrap(err, "scan snapshot run")
		}
		run.ExtractedAt = osm.Timestamp(extractedAt)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// CountByType returns per-type object counts for one run.
func (s *Store) CountByType(ctx context.Context, runID string) (map[osm.ObjectType]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT object_type, COUNT(*) FROM snapshot_objects WHERE run_id = ? GROUP BY object_type`, runID)
	if err != nil {
		return nil, errors.Wrap(err, "query snapshot object counts")
	}
	defer rows.Close()

	counts := make(map[osm.ObjectType]int)
	for rows.Next() {
		var typ string
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, errors.Wrap(err, "scan snapshot object count")
		}
		counts[osm.ObjectType(typ)] = n
	}
	return counts, rows.Err()
}

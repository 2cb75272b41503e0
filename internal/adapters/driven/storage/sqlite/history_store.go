package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/meridian-labs/relcut-cli/internal/core/domain"
	"github.com/meridian-labs/relcut-cli/internal/core/ports/driven"
)

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

const timeLayout = time.RFC3339Nano

// Save persists a record. Saving an existing ID updates it.
func (s *historyStore) Save(ctx context.Context, rec domain.ReleaseRecord) error {
	if rec.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO release_runs (id, project, version, next_snapshot, rc, rc_tag, commit_hash, published, outcome, failure, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project = excluded.project,
			version = excluded.version,
			next_snapshot = excluded.next_snapshot,
			rc = excluded.rc,
			rc_tag = excluded.rc_tag,
			commit_hash = excluded.commit_hash,
			published = excluded.published,
			outcome = excluded.outcome,
			failure = excluded.failure,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at
	`, rec.ID, rec.Project, rec.Version, rec.NextSnapshot, rec.RC, rec.RCTag, rec.Commit,
		boolToInt(rec.Published), string(rec.Outcome), rec.Failure,
		rec.StartedAt.UTC().Format(timeLayout), rec.FinishedAt.UTC().Format(timeLayout))

	if err != nil {
		return fmt.Errorf("saving release run: %w", err)
	}
	return nil
}

// Get retrieves a record by ID.
func (s *historyStore) Get(ctx context.Context, id string) (*domain.ReleaseRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, project, version, next_snapshot, rc, rc_tag, commit_hash, published, outcome, failure, started_at, finished_at
		FROM release_runs WHERE id = ?
	`, id)

	rec, err := scanReleaseRun(row)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns records ordered by start time, newest first.
func (s *historyStore) List(ctx context.Context, limit int) ([]domain.ReleaseRecord, error) {
	query := `
		SELECT id, project, version, next_snapshot, rc, rc_tag, commit_hash, published, outcome, failure, started_at, finished_at
		FROM release_runs ORDER BY started_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying release runs: %w", err)
	}
	defer rows.Close()

	var records []domain.ReleaseRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		rec, err := scanReleaseRun(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating release runs: %w", err)
	}

	return records, nil
}

// rowScanner abstracts over *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanReleaseRun scans one release_runs row.
func scanReleaseRun(row rowScanner) (*domain.ReleaseRecord, error) {
	var (
		rec       domain.ReleaseRecord
		published int
		outcome   string
		started   string
		finished  string
	)

	err := row.Scan(&rec.ID, &rec.Project, &rec.Version, &rec.NextSnapshot, &rec.RC, &rec.RCTag,
		&rec.Commit, &published, &outcome, &rec.Failure, &started, &finished)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning release run: %w", err)
	}

	rec.Published = published != 0
	rec.Outcome = domain.Outcome(outcome)

	if rec.StartedAt, err = time.Parse(timeLayout, started); err != nil {
		return nil, fmt.Errorf("parsing started_at: %w", err)
	}
	if rec.FinishedAt, err = time.Parse(timeLayout, finished); err != nil {
		return nil, fmt.Errorf("parsing finished_at: %w", err)
	}

	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

package ingest

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	CreateRun(ctx context.Context, run *Run) (string, error)
	UpdateRun(ctx context.Context, run *Run) error
	// ResumeCursor returns the last cursor of the latest run when that run
	// did not complete. ok is false when there is nothing to resume.
	ResumeCursor(ctx context.Context) (cursor string, ok bool, err error)
}

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) CreateRun(ctx context.Context, run *Run) (string, error) {
	const sql = `
		INSERT INTO sync_runs (status, start_cursor, last_cursor, started_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text`

	var id string
	err := r.db.QueryRow(ctx, sql, run.Status, run.StartCursor, run.LastCursor, run.StartedAt).Scan(&id)
	return id, err
}

func (r *PostgresRepo) UpdateRun(ctx context.Context, run *Run) error {
	const sql = `
		UPDATE sync_runs SET
			finished_at = $1,
			status = $2,
			last_cursor = $3,
			pages_fetched = $4,
			books_synced = $5,
			new_books = $6,
			images_stored = $7,
			images_failed = $8,
			error = $9
		WHERE id = $10`

	_, err := r.db.Exec(ctx, sql, run.FinishedAt, run.Status, run.LastCursor, run.PagesFetched,
		run.BooksSynced, run.NewBooks, run.ImagesStored, run.ImagesFailed, run.Error, run.ID)
	return err
}

func (r *PostgresRepo) ResumeCursor(ctx context.Context) (string, bool, error) {
	const sql = `
		SELECT status, last_cursor
		FROM sync_runs
		ORDER BY started_at DESC
		LIMIT 1`

	var status, cursor string
	err := r.db.QueryRow(ctx, sql).Scan(&status, &cursor)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if status == StatusCompleted || cursor == "" {
		return "", false, nil
	}
	return cursor, true, nil
}

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:generate mockgen -source=postgres_repo.go -destination=mock_repository.go -package=catalog

type Repository interface {
	UpsertBook(ctx context.Context, book *Book) error
	UpsertBookDetails(ctx context.Context, details []BookDetail) error
	ListBookIDs(ctx context.Context) (map[string]struct{}, error)
	GetBook(ctx context.Context, masterBookID string) (Book, error)
	List(ctx context.Context, q ListQuery) ([]Book, int, error)
	ListBookDetails(ctx context.Context, bookID string) ([]BookDetail, error)
}

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

const bookColumns = `master_book_id, name, description, cover_image, language, language_id,
	reading_level, total_pages, authors, tags, available_languages, updated_at`

func (r *PostgresRepo) UpsertBook(ctx context.Context, b *Book) error {
	const bookSQL = `
		INSERT INTO books (master_book_id, name, description, cover_image, language, language_id,
			reading_level, total_pages, authors, tags, available_languages, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
		ON CONFLICT (master_book_id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			cover_image = EXCLUDED.cover_image,
			language = EXCLUDED.language,
			language_id = EXCLUDED.language_id,
			reading_level = EXCLUDED.reading_level,
			total_pages = EXCLUDED.total_pages,
			authors = EXCLUDED.authors,
			tags = EXCLUDED.tags,
			available_languages = EXCLUDED.available_languages,
			updated_at = now()`

	_, err := r.db.Exec(ctx, bookSQL,
		b.MasterBookID, b.Name, b.Description, b.CoverImage, b.Language, b.LanguageID,
		b.ReadingLevel, b.TotalPages, b.Authors, nonNil(b.Tags), nonNil(b.AvailableLanguages),
	)
	if err != nil {
		return fmt.Errorf("upsert book %s: %w", b.MasterBookID, err)
	}
	return nil
}

// UpsertBookDetails writes all pages in one transaction.
func (r *PostgresRepo) UpsertBookDetails(ctx context.Context, details []BookDetail) error {
	if len(details) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const detailSQL = `
		INSERT INTO book_details (book_detail_id, book_id, content, content_raw, image_url, page_num)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (book_detail_id) DO UPDATE SET
			book_id = EXCLUDED.book_id,
			content = EXCLUDED.content,
			content_raw = EXCLUDED.content_raw,
			image_url = EXCLUDED.image_url,
			page_num = EXCLUDED.page_num`

	batch := &pgx.Batch{}
	for _, d := range details {
		batch.Queue(detailSQL, d.BookDetailID, d.BookID, d.Content, d.ContentRaw, d.ImageURL, d.PageNum)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("upsert book details for %s: %w", details[0].BookID, err)
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepo) ListBookIDs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.db.Query(ctx, "SELECT master_book_id FROM books")
	if err != nil {
		return nil, err
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}

	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

func (r *PostgresRepo) GetBook(ctx context.Context, masterBookID string) (Book, error) {
	query := "SELECT " + bookColumns + " FROM books WHERE master_book_id = $1"

	b, err := scanBook(r.db.QueryRow(ctx, query, masterBookID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, fmt.Errorf("book %s: %w", masterBookID, ErrNotFound)
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) List(ctx context.Context, q ListQuery) ([]Book, int, error) {
	const where = "WHERE ($1 = '' OR language = $1)"

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM books "+where, q.Language).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := "SELECT " + bookColumns + " FROM books " + where + `
		ORDER BY name ASC, master_book_id ASC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, dataSQL, q.Language, q.Limit, q.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepo) ListBookDetails(ctx context.Context, bookID string) ([]BookDetail, error) {
	const query = `
		SELECT book_detail_id, book_id, content, content_raw, image_url, page_num
		FROM book_details
		WHERE book_id = $1
		ORDER BY page_num ASC`

	rows, err := r.db.Query(ctx, query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BookDetail
	for rows.Next() {
		var d BookDetail
		if err := rows.Scan(&d.BookDetailID, &d.BookID, &d.Content, &d.ContentRaw, &d.ImageURL, &d.PageNum); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	err := row.Scan(
		&b.MasterBookID, &b.Name, &b.Description, &b.CoverImage, &b.Language, &b.LanguageID,
		&b.ReadingLevel, &b.TotalPages, &b.Authors, &b.Tags, &b.AvailableLanguages, &b.UpdatedAt,
	)
	return b, err
}

// nonNil keeps jsonb columns as [] rather than null.
func nonNil(v []IDName) []IDName {
	if v == nil {
		return []IDName{}
	}
	return v
}

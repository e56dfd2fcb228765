// Package ingest walks the upstream catalog by cursor and mirrors every book,
// its pages and its images into the local store.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"bookmirror/internal/catalog"
	"bookmirror/internal/expand"
	"bookmirror/internal/imagepipe"
	"bookmirror/internal/platform/letsread"
)

type Config struct {
	InitialCursor string
	// Resume starts from the last cursor of an unfinished run when there is one.
	Resume bool
}

type Upstream interface {
	CatalogPage(ctx context.Context, cursor string) (*letsread.CatalogPage, error)
	BookDetail(ctx context.Context, bookID string) (*letsread.BookDetail, error)
}

type CatalogRepository interface {
	UpsertBook(ctx context.Context, book *catalog.Book) error
	UpsertBookDetails(ctx context.Context, details []catalog.BookDetail) error
	ListBookIDs(ctx context.Context) (map[string]struct{}, error)
}

type ImageStore interface {
	Store(ctx context.Context, bookID string, images []catalog.ImageRef) imagepipe.Result
}

type Service struct {
	upstream    Upstream
	catalogRepo CatalogRepository
	runRepo     Repository
	images      ImageStore
	cfg         Config
	logger      *slog.Logger
}

func NewService(upstream Upstream, catalogRepo CatalogRepository, runRepo Repository, images ImageStore, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		upstream:    upstream,
		catalogRepo: catalogRepo,
		runRepo:     runRepo,
		images:      images,
		cfg:         cfg,
		logger:      logger,
	}
}

// Run performs one full sync pass. Upstream fetch errors, a missing AUTHOR
// role and any persistence error end the run with that error. Image
// failures never do.
func (s *Service) Run(ctx context.Context) (err error) {
	cursor := s.startCursor(ctx)

	run := &Run{
		Status:      StatusRunning,
		StartCursor: cursor,
		LastCursor:  cursor,
		StartedAt:   time.Now(),
	}
	if runID, rErr := s.runRepo.CreateRun(ctx, run); rErr != nil {
		s.logger.Warn("failed to record sync run", "error", rErr)
	} else {
		run.ID = runID
	}

	defer func() {
		now := time.Now()
		run.FinishedAt = &now
		if err != nil {
			run.Status = StatusFailed
			run.Error = err.Error()
		} else {
			run.Status = StatusCompleted
		}
		s.saveRun(context.WithoutCancel(ctx), run)
		s.logger.Info("sync finished",
			"status", run.Status,
			"pages", run.PagesFetched,
			"books", run.BooksSynced,
			"new_books", run.NewBooks,
			"images_stored", run.ImagesStored,
			"images_failed", run.ImagesFailed,
			"duration", now.Sub(run.StartedAt).Round(time.Millisecond),
		)
	}()

	known, err := s.catalogRepo.ListBookIDs(ctx)
	if err != nil {
		return fmt.Errorf("load synced book ids: %w", err)
	}
	s.logger.Info("starting sync", "cursor", cursor, "known_books", len(known))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		run.LastCursor = cursor
		page, err := s.upstream.CatalogPage(ctx, cursor)
		if err != nil {
			return err
		}
		run.PagesFetched++

		newInPage := 0
		for _, summary := range page.Books {
			if _, ok := known[summary.MasterBookID]; !ok {
				newInPage++
			}
		}
		s.logger.Info("fetched catalog page", "cursor", cursor, "books", len(page.Books), "unsynced", newInPage)

		for _, summary := range page.Books {
			if err := s.syncBook(ctx, run, summary, known); err != nil {
				return err
			}
		}

		s.logger.Info("done page", "cursor", cursor)

		next, ok := page.NextCursor()
		if !ok {
			return nil
		}
		cursor = next
		run.LastCursor = cursor
		s.saveRun(ctx, run)
	}
}

// syncBook writes the Book first so that images and pages always have a parent.
func (s *Service) syncBook(ctx context.Context, run *Run, summary letsread.BookSummary, known map[string]struct{}) error {
	_, synced := known[summary.MasterBookID]
	s.logger.Info("fetching book", "name", summary.Name, "book_id", summary.MasterBookID, "new", !synced)

	detail, err := s.upstream.BookDetail(ctx, summary.MasterBookID)
	if err != nil {
		return err
	}

	res, err := expand.Expand(summary, *detail)
	if err != nil {
		return err
	}

	if err := s.catalogRepo.UpsertBook(ctx, &res.Book); err != nil {
		return fmt.Errorf("save book %s: %w", summary.MasterBookID, err)
	}

	imgRes := s.images.Store(ctx, summary.MasterBookID, res.Images)
	run.ImagesStored += imgRes.Stored
	run.ImagesFailed += imgRes.Failed

	if err := s.catalogRepo.UpsertBookDetails(ctx, res.Details); err != nil {
		return fmt.Errorf("save pages of book %s: %w", summary.MasterBookID, err)
	}

	run.BooksSynced++
	if !synced {
		run.NewBooks++
	}
	s.logger.Info("synced book", "book_id", summary.MasterBookID, "pages", res.Book.TotalPages)
	return nil
}

func (s *Service) startCursor(ctx context.Context) string {
	if !s.cfg.Resume {
		return s.cfg.InitialCursor
	}
	cursor, ok, err := s.runRepo.ResumeCursor(ctx)
	if err != nil {
		s.logger.Warn("cannot read resume cursor, starting from the initial cursor", "error", err)
		return s.cfg.InitialCursor
	}
	if !ok {
		return s.cfg.InitialCursor
	}
	s.logger.Info("resuming unfinished sync", "cursor", cursor)
	return cursor
}

// saveRun records progress. Bookkeeping failures are logged, never fatal.
func (s *Service) saveRun(ctx context.Context, run *Run) {
	if run.ID == "" {
		return
	}
	if err := s.runRepo.UpdateRun(ctx, run); err != nil {
		s.logger.Warn("failed to update sync run", "run_id", run.ID, "error", err)
	}
}

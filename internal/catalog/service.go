package catalog

import (
	"context"
)

// Service serves the mirrored catalog read-only.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]Book, int, error) {
	return s.repo.List(ctx, q)
}

func (s *Service) GetBook(ctx context.Context, masterBookID string) (Book, error) {
	return s.repo.GetBook(ctx, masterBookID)
}

// Pages returns the pages of a book ordered by page number. An unknown book
// is ErrNotFound; a known book without pages yields an empty slice.
func (s *Service) Pages(ctx context.Context, masterBookID string) ([]BookDetail, error) {
	if _, err := s.repo.GetBook(ctx, masterBookID); err != nil {
		return nil, err
	}
	pages, err := s.repo.ListBookDetails(ctx, masterBookID)
	if err != nil {
		return nil, err
	}
	if pages == nil {
		pages = []BookDetail{}
	}
	return pages, nil
}

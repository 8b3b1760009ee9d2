package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ebodine/booklend/internal/domain"
)

// CatalogService handles the book catalog.
type CatalogService struct {
	books domain.BookRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(books domain.BookRepository) *CatalogService {
	return &CatalogService{books: books}
}

// List returns all books in the catalog.
func (s *CatalogService) List(ctx context.Context) ([]domain.Book, error) {
	return s.books.List(ctx)
}

// Seed inserts the fixed demo titles. It is idempotent — existing titles
// are skipped, so re-invoking the seed endpoint is safe.
func (s *CatalogService) Seed(ctx context.Context) error {
	for _, title := range seedTitles {
		_, err := s.books.GetByTitle(ctx, title)
		if err == nil {
			continue // already exists
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("check book %q: %w", title, err)
		}
		if err := s.books.Create(ctx, &domain.Book{Title: title}); err != nil {
			// A concurrent seed may have inserted the title first.
			if errors.Is(err, domain.ErrDuplicateTitle) {
				continue
			}
			return fmt.Errorf("seed book %q: %w", title, err)
		}
	}
	return nil
}

var seedTitles = []string{
	"Harry Potter",
	"Art War",
	"Game",
	"House",
}

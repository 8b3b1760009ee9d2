package domain

import (
	"context"
	"time"
)

// Book is a lendable title in the catalog. Titles are unique.
type Book struct {
	ID        int64
	Title     string
	CreatedAt time.Time
}

// BookRepository defines persistence operations for books.
type BookRepository interface {
	Create(ctx context.Context, book *Book) error
	GetByTitle(ctx context.Context, title string) (*Book, error)
	List(ctx context.Context) ([]Book, error)
}

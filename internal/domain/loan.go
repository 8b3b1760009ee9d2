package domain

import (
	"context"
	"time"
)

// Loan records a checkout of a book by a user. A nil ReturnDate means the
// loan is outstanding and the book is checked out.
type Loan struct {
	ID         int64
	BorrowerID int64
	BookID     int64
	LoanDate   time.Time
	ReturnDate *time.Time
}

// Outstanding reports whether the book has not been returned yet.
func (l *Loan) Outstanding() bool {
	return l.ReturnDate == nil
}

// LoanRepository defines persistence operations for loans.
type LoanRepository interface {
	// Create inserts a new outstanding loan. Returns ErrLoanConflict if the
	// book already has an outstanding loan.
	Create(ctx context.Context, loan *Loan) error
	GetByID(ctx context.Context, id int64) (*Loan, error)
	List(ctx context.Context) ([]Loan, error)
	// FindOutstandingByTitle returns the outstanding loan for the book with
	// the given title, or ErrNotFound if the book is available.
	FindOutstandingByTitle(ctx context.Context, title string) (*Loan, error)
	// MarkReturned sets the return date of an outstanding loan. Returns
	// ErrNotFound for an unknown id and ErrAlreadyReturned if the loan was
	// already closed.
	MarkReturned(ctx context.Context, id int64, returnedAt time.Time) error
	Delete(ctx context.Context, id int64) error
}

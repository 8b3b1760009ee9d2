package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/ebodine/booklend/internal/domain"
)

// emailPattern is a deliberately loose shape check (local@domain.tld),
// not an RFC 5321 validator.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// LoanService handles the checkout/return workflow.
type LoanService struct {
	users domain.UserRepository
	books domain.BookRepository
	loans domain.LoanRepository
	now   func() time.Time
}

// NewLoanService creates a new LoanService.
func NewLoanService(users domain.UserRepository, books domain.BookRepository, loans domain.LoanRepository) *LoanService {
	return &LoanService{users: users, books: books, loans: loans, now: time.Now}
}

// CheckoutResult describes the outcome of a checkout request. When the book
// is already checked out, Loan is the existing outstanding loan and
// Available is false; no new loan is created.
type CheckoutResult struct {
	Loan      *domain.Loan
	Title     string
	Available bool
}

// Request processes a checkout request for the given email and title.
//
// The user is created lazily on first sight of the email. A missing book is
// reported as domain.ErrNotFound; a malformed email as domain.ErrInvalidEmail,
// in which case the store is not touched at all.
func (s *LoanService) Request(ctx context.Context, email, title string) (*CheckoutResult, error) {
	if !emailPattern.MatchString(email) {
		return nil, domain.ErrInvalidEmail
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		user = &domain.User{Email: email}
		if err := s.users.Create(ctx, user); err != nil {
			// Lost a race with a concurrent request for the same email.
			if errors.Is(err, domain.ErrDuplicateEmail) {
				user, err = s.users.GetByEmail(ctx, email)
				if err != nil {
					return nil, fmt.Errorf("reload user: %w", err)
				}
			} else {
				return nil, fmt.Errorf("create user: %w", err)
			}
		}
	} else if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}

	book, err := s.books.GetByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: no book titled %q", domain.ErrNotFound, title)
		}
		return nil, fmt.Errorf("look up book: %w", err)
	}

	outstanding, err := s.loans.FindOutstandingByTitle(ctx, title)
	if err == nil {
		return &CheckoutResult{Loan: outstanding, Title: book.Title, Available: false}, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check outstanding loan: %w", err)
	}

	loan := &domain.Loan{
		BorrowerID: user.ID,
		BookID:     book.ID,
		LoanDate:   s.now().UTC(),
	}
	if err := s.loans.Create(ctx, loan); err != nil {
		// A concurrent checkout won the race between the availability check
		// and the insert; report the book as unavailable, same as if the
		// other loan had been observed up front.
		if errors.Is(err, domain.ErrLoanConflict) {
			existing, lookupErr := s.loans.FindOutstandingByTitle(ctx, title)
			if lookupErr != nil {
				return nil, fmt.Errorf("reload outstanding loan: %w", lookupErr)
			}
			return &CheckoutResult{Loan: existing, Title: book.Title, Available: false}, nil
		}
		return nil, fmt.Errorf("create loan: %w", err)
	}

	return &CheckoutResult{Loan: loan, Title: book.Title, Available: true}, nil
}

// Return closes an outstanding loan, making the book available again.
func (s *LoanService) Return(ctx context.Context, id int64) (*domain.Loan, error) {
	if err := s.loans.MarkReturned(ctx, id, s.now().UTC()); err != nil {
		return nil, err
	}
	return s.loans.GetByID(ctx, id)
}

// Get returns a single loan by id.
func (s *LoanService) Get(ctx context.Context, id int64) (*domain.Loan, error) {
	return s.loans.GetByID(ctx, id)
}

// List returns all loans, outstanding and closed.
func (s *LoanService) List(ctx context.Context) ([]domain.Loan, error) {
	return s.loans.List(ctx)
}

// Remove deletes a loan row outright and returns the deleted record.
// This is an administrative operation; returning a book is Return.
func (s *LoanService) Remove(ctx context.Context, id int64) (*domain.Loan, error) {
	loan, err := s.loans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.loans.Delete(ctx, id); err != nil {
		return nil, err
	}
	return loan, nil
}

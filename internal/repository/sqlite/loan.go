package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ebodine/booklend/internal/domain"
)

// LoanRepository implements domain.LoanRepository using SQLite.
type LoanRepository struct {
	db *sql.DB
}

func (r *LoanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO loans (borrower_id, book_id, loan_date, return_date) VALUES (?, ?, ?, NULL)",
		loan.BorrowerID, loan.BookID, loan.LoanDate,
	)
	if err != nil {
		// The partial unique index on (book_id) WHERE return_date IS NULL
		// rejects a second outstanding loan for the same book.
		if isUniqueConstraintError(err) {
			return domain.ErrLoanConflict
		}
		return fmt.Errorf("insert loan: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	loan.ID = id
	loan.ReturnDate = nil
	return nil
}

func (r *LoanRepository) GetByID(ctx context.Context, id int64) (*domain.Loan, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, borrower_id, book_id, loan_date, return_date FROM loans WHERE id = ?", id,
	)
	loan, err := scanLoan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query loan by id: %w", err)
	}
	return loan, nil
}

func (r *LoanRepository) List(ctx context.Context) ([]domain.Loan, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, borrower_id, book_id, loan_date, return_date FROM loans ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		loans = append(loans, *loan)
	}
	return loans, rows.Err()
}

func (r *LoanRepository) FindOutstandingByTitle(ctx context.Context, title string) (*domain.Loan, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT l.id, l.borrower_id, l.book_id, l.loan_date, l.return_date
		 FROM loans l
		 JOIN books b ON b.id = l.book_id
		 WHERE b.title = ? AND l.return_date IS NULL
		 ORDER BY l.id
		 LIMIT 1`, title,
	)
	loan, err := scanLoan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query outstanding loan: %w", err)
	}
	return loan, nil
}

func (r *LoanRepository) MarkReturned(ctx context.Context, id int64, returnedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE loans SET return_date = ? WHERE id = ? AND return_date IS NULL",
		returnedAt, id,
	)
	if err != nil {
		return fmt.Errorf("update loan return date: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// Nothing updated: the loan is either missing or already closed.
	var one int
	err = r.db.QueryRowContext(ctx, "SELECT 1 FROM loans WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("query loan by id: %w", err)
	}
	return domain.ErrAlreadyReturned
}

func (r *LoanRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM loans WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete loan: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanLoan(s scanner) (*domain.Loan, error) {
	loan := &domain.Loan{}
	var returnDate sql.NullTime
	if err := s.Scan(&loan.ID, &loan.BorrowerID, &loan.BookID, &loan.LoanDate, &returnDate); err != nil {
		return nil, err
	}
	if returnDate.Valid {
		loan.ReturnDate = &returnDate.Time
	}
	return loan, nil
}

package handler

import (
	"time"

	"github.com/ebodine/booklend/internal/domain"
	"github.com/ebodine/booklend/internal/service"
)

// UserDTO is the JSON representation of a user.
type UserDTO struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

func toUserDTOs(users []domain.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = UserDTO{ID: u.ID, Email: u.Email}
	}
	return dtos
}

// BookDTO is the JSON representation of a book.
type BookDTO struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func toBookDTOs(books []domain.Book) []BookDTO {
	dtos := make([]BookDTO, len(books))
	for i, b := range books {
		dtos[i] = BookDTO{ID: b.ID, Title: b.Title}
	}
	return dtos
}

// LoanDTO is the JSON representation of a loan. Foreign keys stay raw
// integers; return_date is null while the loan is outstanding.
type LoanDTO struct {
	ID         int64   `json:"id"`
	BorrowerID int64   `json:"borrower_id"`
	BookID     int64   `json:"book_id"`
	LoanDate   string  `json:"loan_date"`
	ReturnDate *string `json:"return_date"`
}

func toLoanDTO(l *domain.Loan) LoanDTO {
	dto := LoanDTO{
		ID:         l.ID,
		BorrowerID: l.BorrowerID,
		BookID:     l.BookID,
		LoanDate:   l.LoanDate.Format(time.RFC3339),
	}
	if l.ReturnDate != nil {
		t := l.ReturnDate.Format(time.RFC3339)
		dto.ReturnDate = &t
	}
	return dto
}

func toLoanDTOs(loans []domain.Loan) []LoanDTO {
	dtos := make([]LoanDTO, len(loans))
	for i := range loans {
		dtos[i] = toLoanDTO(&loans[i])
	}
	return dtos
}

// CheckoutDTO is the JSON representation of a checkout outcome. When the
// book is unavailable, ID and Timestamp describe the existing outstanding
// loan rather than a new one.
type CheckoutDTO struct {
	ID        int64  `json:"id"`
	Available bool   `json:"available"`
	Title     string `json:"title"`
	Timestamp string `json:"timestamp"`
}

func toCheckoutDTO(res *service.CheckoutResult) CheckoutDTO {
	return CheckoutDTO{
		ID:        res.Loan.ID,
		Available: res.Available,
		Title:     res.Title,
		Timestamp: res.Loan.LoanDate.Format(time.RFC3339),
	}
}

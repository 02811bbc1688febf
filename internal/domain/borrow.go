package domain

import "time"

// Borrow records a user taking a book.
type Borrow struct {
	ID           int64     `json:"id"`
	DateBorrowed time.Time `json:"date_borrowed"`
	BookID       int64     `json:"book_id"`
	BorrowerID   int64     `json:"borrower_id"`
}

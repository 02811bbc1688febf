package repository

import (
	"context"

	"github.com/utafrali/bookborrower/internal/domain"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts user and sets its generated ID.
	Create(ctx context.Context, user *domain.User) error

	// GetByID returns apperrors.ErrNotFound when no row matches.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// List returns every user ordered by id.
	List(ctx context.Context) ([]domain.User, error)
}

// BookRepository defines the interface for book persistence operations.
type BookRepository interface {
	// Create inserts book and sets its generated ID. An unknown owner yields
	// apperrors.ErrInvalidReference.
	Create(ctx context.Context, book *domain.Book) error

	GetByID(ctx context.Context, id int64) (*domain.Book, error)

	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Book, error)
}

// BookReviewRepository defines the interface for book review persistence.
type BookReviewRepository interface {
	Create(ctx context.Context, review *domain.BookReview) error
	ListByBook(ctx context.Context, bookID int64) ([]domain.BookReview, error)
	ListByReviewer(ctx context.Context, reviewerID int64) ([]domain.BookReview, error)
}

// UserReviewRepository defines the interface for user review persistence.
type UserReviewRepository interface {
	Create(ctx context.Context, review *domain.UserReview) error
	ListByReviewer(ctx context.Context, reviewerID int64) ([]domain.UserReview, error)
	ListByReviewee(ctx context.Context, revieweeID int64) ([]domain.UserReview, error)
}

// BorrowRepository defines the interface for borrow persistence.
type BorrowRepository interface {
	// Create inserts borrow and sets its generated ID. DateBorrowed must be set
	// by the caller.
	Create(ctx context.Context, borrow *domain.Borrow) error
	ListByBook(ctx context.Context, bookID int64) ([]domain.Borrow, error)
	ListByBorrower(ctx context.Context, borrowerID int64) ([]domain.Borrow, error)
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/utafrali/bookborrower/internal/domain"
	"github.com/utafrali/bookborrower/internal/event"
	"github.com/utafrali/bookborrower/internal/repository"
)

// CreateBorrowInput holds the parameters for recording a borrow.
// A nil DateBorrowed means "now".
type CreateBorrowInput struct {
	BookID       int64
	BorrowerID   int64
	DateBorrowed *time.Time
}

// BorrowService implements borrow operations.
type BorrowService struct {
	borrows  repository.BorrowRepository
	users    repository.UserRepository
	books    repository.BookRepository
	producer *event.Producer
	logger   *slog.Logger
	now      func() time.Time
}

// NewBorrowService creates a new borrow service. producer may be nil.
func NewBorrowService(
	borrows repository.BorrowRepository,
	users repository.UserRepository,
	books repository.BookRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *BorrowService {
	return &BorrowService{
		borrows:  borrows,
		users:    users,
		books:    books,
		producer: producer,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateBorrow records a user borrowing a book. The date is stored in UTC at
// microsecond precision, which is what Postgres keeps.
func (s *BorrowService) CreateBorrow(ctx context.Context, input *CreateBorrowInput) (*domain.Borrow, error) {
	if err := requireID("book_id", input.BookID); err != nil {
		return nil, err
	}
	if err := requireID("borrower_id", input.BorrowerID); err != nil {
		return nil, err
	}

	when := s.now()
	if input.DateBorrowed != nil {
		when = *input.DateBorrowed
	}

	borrow := &domain.Borrow{
		DateBorrowed: when.UTC().Truncate(time.Microsecond),
		BookID:       input.BookID,
		BorrowerID:   input.BorrowerID,
	}

	if err := s.borrows.Create(ctx, borrow); err != nil {
		return nil, fmt.Errorf("create borrow: %w", err)
	}

	if err := s.producer.PublishBorrowRecorded(ctx, borrow); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish borrow.recorded event",
			slog.Int64("borrow_id", borrow.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "borrow recorded",
		slog.Int64("borrow_id", borrow.ID),
		slog.Int64("book_id", borrow.BookID),
		slog.Int64("borrower_id", borrow.BorrowerID),
		slog.Time("date_borrowed", borrow.DateBorrowed),
	)

	return borrow, nil
}

// ListBorrowsByBook returns the borrow history of a book.
func (s *BorrowService) ListBorrowsByBook(ctx context.Context, bookID int64) ([]domain.Borrow, error) {
	if err := ensureBook(ctx, s.books, bookID); err != nil {
		return nil, err
	}
	borrows, err := s.borrows.ListByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("list borrows by book: %w", err)
	}
	return borrows, nil
}

// ListBorrowsByBorrower returns the borrow history of a user.
func (s *BorrowService) ListBorrowsByBorrower(ctx context.Context, userID int64) ([]domain.Borrow, error) {
	if err := ensureUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	borrows, err := s.borrows.ListByBorrower(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list borrows by borrower: %w", err)
	}
	return borrows, nil
}

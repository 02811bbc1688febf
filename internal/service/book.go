package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/bookborrower/internal/domain"
	"github.com/utafrali/bookborrower/internal/event"
	"github.com/utafrali/bookborrower/internal/repository"
	apperrors "github.com/utafrali/bookborrower/pkg/errors"
)

// CreateBookInput holds the parameters for creating a book.
type CreateBookInput struct {
	Title     string
	Author    string
	ISBN      string
	ImageLink string
	Genre     string
	Pages     int
	OwnerID   int64
}

// BookService implements book operations.
type BookService struct {
	books    repository.BookRepository
	users    repository.UserRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewBookService creates a new book service. producer may be nil.
func NewBookService(books repository.BookRepository, users repository.UserRepository, producer *event.Producer, logger *slog.Logger) *BookService {
	return &BookService{
		books:    books,
		users:    users,
		producer: producer,
		logger:   logger,
	}
}

// CreateBook persists a new book. An owner_id with no matching user fails
// with an invalid-reference error raised by the storage layer.
func (s *BookService) CreateBook(ctx context.Context, input *CreateBookInput) (*domain.Book, error) {
	if err := requireID("owner_id", input.OwnerID); err != nil {
		return nil, err
	}
	if input.Pages < 0 {
		return nil, apperrors.InvalidInput("pages must not be negative")
	}

	book := &domain.Book{
		Title:     input.Title,
		Author:    input.Author,
		ISBN:      input.ISBN,
		ImageLink: input.ImageLink,
		Genre:     input.Genre,
		Pages:     input.Pages,
		OwnerID:   input.OwnerID,
	}

	if err := s.books.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	if err := s.producer.PublishBookCreated(ctx, book); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish book.created event",
			slog.Int64("book_id", book.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "book created",
		slog.Int64("book_id", book.ID),
		slog.Int64("owner_id", book.OwnerID),
	)

	return book, nil
}

// GetBook retrieves a book by id.
func (s *BookService) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	return s.books.GetByID(ctx, id)
}

// ListBooksByOwner returns the books a user owns.
func (s *BookService) ListBooksByOwner(ctx context.Context, userID int64) ([]domain.Book, error) {
	if err := ensureUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	books, err := s.books.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list books by owner: %w", err)
	}
	return books, nil
}

package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/utafrali/bookborrower/internal/domain"
	"github.com/utafrali/bookborrower/internal/event"
	pkgkafka "github.com/utafrali/bookborrower/pkg/kafka"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- Repository mocks ---

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

type mockBookRepository struct {
	mock.Mock
}

func (m *mockBookRepository) Create(ctx context.Context, b *domain.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBookRepository) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Book), args.Error(1)
}

func (m *mockBookRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Book, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Book), args.Error(1)
}

type mockBookReviewRepository struct {
	mock.Mock
}

func (m *mockBookReviewRepository) Create(ctx context.Context, rv *domain.BookReview) error {
	args := m.Called(ctx, rv)
	return args.Error(0)
}

func (m *mockBookReviewRepository) ListByBook(ctx context.Context, bookID int64) ([]domain.BookReview, error) {
	args := m.Called(ctx, bookID)
	return args.Get(0).([]domain.BookReview), args.Error(1)
}

func (m *mockBookReviewRepository) ListByReviewer(ctx context.Context, reviewerID int64) ([]domain.BookReview, error) {
	args := m.Called(ctx, reviewerID)
	return args.Get(0).([]domain.BookReview), args.Error(1)
}

type mockUserReviewRepository struct {
	mock.Mock
}

func (m *mockUserReviewRepository) Create(ctx context.Context, rv *domain.UserReview) error {
	args := m.Called(ctx, rv)
	return args.Error(0)
}

func (m *mockUserReviewRepository) ListByReviewer(ctx context.Context, reviewerID int64) ([]domain.UserReview, error) {
	args := m.Called(ctx, reviewerID)
	return args.Get(0).([]domain.UserReview), args.Error(1)
}

func (m *mockUserReviewRepository) ListByReviewee(ctx context.Context, revieweeID int64) ([]domain.UserReview, error) {
	args := m.Called(ctx, revieweeID)
	return args.Get(0).([]domain.UserReview), args.Error(1)
}

type mockBorrowRepository struct {
	mock.Mock
}

func (m *mockBorrowRepository) Create(ctx context.Context, b *domain.Borrow) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *mockBorrowRepository) ListByBook(ctx context.Context, bookID int64) ([]domain.Borrow, error) {
	args := m.Called(ctx, bookID)
	return args.Get(0).([]domain.Borrow), args.Error(1)
}

func (m *mockBorrowRepository) ListByBorrower(ctx context.Context, borrowerID int64) ([]domain.Borrow, error) {
	args := m.Called(ctx, borrowerID)
	return args.Get(0).([]domain.Borrow), args.Error(1)
}

// --- Event publisher mock ---

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, topic string, e *pkgkafka.Event) error {
	args := m.Called(ctx, topic, e)
	return args.Error(0)
}

func newTestProducer(pub *mockPublisher) *event.Producer {
	return event.NewProducer(pub, newTestLogger())
}

// setID mimics RETURNING id by assigning id to the entity passed to Create.
func setID(id int64) func(mock.Arguments) {
	return func(args mock.Arguments) {
		switch v := args.Get(1).(type) {
		case *domain.User:
			v.ID = id
		case *domain.Book:
			v.ID = id
		case *domain.BookReview:
			v.ID = id
		case *domain.UserReview:
			v.ID = id
		case *domain.Borrow:
			v.ID = id
		}
	}
}

package http

import (
	"context"
	"sync"

	"github.com/utafrali/bookborrower/internal/domain"
	apperrors "github.com/utafrali/bookborrower/pkg/errors"
)

// memStore is an in-memory stand-in for Postgres that enforces the same
// foreign keys and hands out sequential ids per table.
type memStore struct {
	mu          sync.Mutex
	users       []domain.User
	books       []domain.Book
	bookReviews []domain.BookReview
	userReviews []domain.UserReview
	borrows     []domain.Borrow
}

func newMemStore() *memStore { return &memStore{} }

func (s *memStore) hasUser(id int64) bool {
	for _, u := range s.users {
		if u.ID == id {
			return true
		}
	}
	return false
}

func (s *memStore) hasBook(id int64) bool {
	for _, b := range s.books {
		if b.ID == id {
			return true
		}
	}
	return false
}

type memUsers struct{ *memStore }

func (m memUsers) Create(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = int64(len(m.users) + 1)
	m.users = append(m.users, *u)
	return nil
}

func (m memUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, apperrors.NotFound("user", id)
}

func (m memUsers) List(_ context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.User{}, m.users...), nil
}

type memBooks struct{ *memStore }

func (m memBooks) Create(_ context.Context, b *domain.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hasUser(b.OwnerID) {
		return apperrors.InvalidReference("book", "owner_id", b.OwnerID)
	}
	b.ID = int64(len(m.books) + 1)
	m.books = append(m.books, *b)
	return nil
}

func (m memBooks) GetByID(_ context.Context, id int64) (*domain.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.books {
		if b.ID == id {
			b := b
			return &b, nil
		}
	}
	return nil, apperrors.NotFound("book", id)
}

func (m memBooks) ListByOwner(_ context.Context, ownerID int64) ([]domain.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Book{}
	for _, b := range m.books {
		if b.OwnerID == ownerID {
			out = append(out, b)
		}
	}
	return out, nil
}

type memBookReviews struct{ *memStore }

func (m memBookReviews) Create(_ context.Context, rv *domain.BookReview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hasBook(rv.BookID) {
		return apperrors.InvalidReference("book review", "book_id", rv.BookID)
	}
	if !m.hasUser(rv.ReviewerID) {
		return apperrors.InvalidReference("book review", "reviewer_id", rv.ReviewerID)
	}
	rv.ID = int64(len(m.bookReviews) + 1)
	m.bookReviews = append(m.bookReviews, *rv)
	return nil
}

func (m memBookReviews) ListByBook(_ context.Context, bookID int64) ([]domain.BookReview, error) {
	return m.filter(func(rv domain.BookReview) bool { return rv.BookID == bookID }), nil
}

func (m memBookReviews) ListByReviewer(_ context.Context, reviewerID int64) ([]domain.BookReview, error) {
	return m.filter(func(rv domain.BookReview) bool { return rv.ReviewerID == reviewerID }), nil
}

func (m memBookReviews) filter(keep func(domain.BookReview) bool) []domain.BookReview {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.BookReview{}
	for _, rv := range m.bookReviews {
		if keep(rv) {
			out = append(out, rv)
		}
	}
	return out
}

type memUserReviews struct{ *memStore }

func (m memUserReviews) Create(_ context.Context, rv *domain.UserReview) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hasUser(rv.ReviewerID) {
		return apperrors.InvalidReference("user review", "reviewer_id", rv.ReviewerID)
	}
	if !m.hasUser(rv.RevieweeID) {
		return apperrors.InvalidReference("user review", "reviewee_id", rv.RevieweeID)
	}
	rv.ID = int64(len(m.userReviews) + 1)
	m.userReviews = append(m.userReviews, *rv)
	return nil
}

func (m memUserReviews) ListByReviewer(_ context.Context, reviewerID int64) ([]domain.UserReview, error) {
	return m.filter(func(rv domain.UserReview) bool { return rv.ReviewerID == reviewerID }), nil
}

func (m memUserReviews) ListByReviewee(_ context.Context, revieweeID int64) ([]domain.UserReview, error) {
	return m.filter(func(rv domain.UserReview) bool { return rv.RevieweeID == revieweeID }), nil
}

func (m memUserReviews) filter(keep func(domain.UserReview) bool) []domain.UserReview {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.UserReview{}
	for _, rv := range m.userReviews {
		if keep(rv) {
			out = append(out, rv)
		}
	}
	return out
}

type memBorrows struct{ *memStore }

func (m memBorrows) Create(_ context.Context, b *domain.Borrow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.hasBook(b.BookID) {
		return apperrors.InvalidReference("borrow", "book_id", b.BookID)
	}
	if !m.hasUser(b.BorrowerID) {
		return apperrors.InvalidReference("borrow", "borrower_id", b.BorrowerID)
	}
	b.ID = int64(len(m.borrows) + 1)
	m.borrows = append(m.borrows, *b)
	return nil
}

func (m memBorrows) ListByBook(_ context.Context, bookID int64) ([]domain.Borrow, error) {
	return m.filter(func(b domain.Borrow) bool { return b.BookID == bookID }), nil
}

func (m memBorrows) ListByBorrower(_ context.Context, borrowerID int64) ([]domain.Borrow, error) {
	return m.filter(func(b domain.Borrow) bool { return b.BorrowerID == borrowerID }), nil
}

func (m memBorrows) filter(keep func(domain.Borrow) bool) []domain.Borrow {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Borrow{}
	for _, b := range m.borrows {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

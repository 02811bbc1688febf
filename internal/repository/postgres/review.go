package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/bookborrower/internal/domain"
	"github.com/utafrali/bookborrower/pkg/database"
)

// --- Book reviews ---

const bookReviewColumns = "id, rating, body, book_id, reviewer_id"

// BookReviewRepository implements repository.BookReviewRepository using PostgreSQL.
type BookReviewRepository struct {
	db database.DBTX
}

// NewBookReviewRepository creates a new PostgreSQL-backed book review repository.
func NewBookReviewRepository(db database.DBTX) *BookReviewRepository {
	return &BookReviewRepository{db: db}
}

// Create inserts a new book review and stores the generated id in rv.ID.
func (r *BookReviewRepository) Create(ctx context.Context, rv *domain.BookReview) (err error) {
	query := `
		INSERT INTO book_reviews (rating, body, book_id, reviewer_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	ctx, end := database.TraceQuery(ctx, "CreateBookReview", query)
	defer func() { end(err) }()

	err = r.db.QueryRow(ctx, query, rv.Rating, rv.Body, rv.BookID, rv.ReviewerID).Scan(&rv.ID)
	if err != nil {
		return mapWriteError(err, "insert book review", "book review", map[string]any{
			"book_id":     rv.BookID,
			"reviewer_id": rv.ReviewerID,
		})
	}
	return nil
}

// ListByBook returns the reviews of a book, ordered by id.
func (r *BookReviewRepository) ListByBook(ctx context.Context, bookID int64) ([]domain.BookReview, error) {
	return r.list(ctx, "ListBookReviewsByBook", "book_id", bookID)
}

// ListByReviewer returns the book reviews written by a user, ordered by id.
func (r *BookReviewRepository) ListByReviewer(ctx context.Context, reviewerID int64) ([]domain.BookReview, error) {
	return r.list(ctx, "ListBookReviewsByReviewer", "reviewer_id", reviewerID)
}

// list selects reviews by one foreign-key column. column is always a constant.
func (r *BookReviewRepository) list(ctx context.Context, op, column string, id int64) (_ []domain.BookReview, err error) {
	query := `SELECT ` + bookReviewColumns + ` FROM book_reviews WHERE ` + column + ` = $1 ORDER BY id`

	ctx, end := database.TraceQuery(ctx, op, query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("list book reviews by %s: %w", column, err)
	}
	reviews, err := collect(rows, scanBookReview)
	if err != nil {
		return nil, fmt.Errorf("scan book reviews: %w", err)
	}
	return reviews, nil
}

func scanBookReview(row pgx.Row) (domain.BookReview, error) {
	var rv domain.BookReview
	err := row.Scan(&rv.ID, &rv.Rating, &rv.Body, &rv.BookID, &rv.ReviewerID)
	return rv, err
}

// --- User reviews ---

const userReviewColumns = "id, rating, body, reviewer_id, reviewee_id"

// UserReviewRepository implements repository.UserReviewRepository using PostgreSQL.
type UserReviewRepository struct {
	db database.DBTX
}

// NewUserReviewRepository creates a new PostgreSQL-backed user review repository.
func NewUserReviewRepository(db database.DBTX) *UserReviewRepository {
	return &UserReviewRepository{db: db}
}

// Create inserts a new user review and stores the generated id in rv.ID.
func (r *UserReviewRepository) Create(ctx context.Context, rv *domain.UserReview) (err error) {
	query := `
		INSERT INTO user_reviews (rating, body, reviewer_id, reviewee_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	ctx, end := database.TraceQuery(ctx, "CreateUserReview", query)
	defer func() { end(err) }()

	err = r.db.QueryRow(ctx, query, rv.Rating, rv.Body, rv.ReviewerID, rv.RevieweeID).Scan(&rv.ID)
	if err != nil {
		return mapWriteError(err, "insert user review", "user review", map[string]any{
			"reviewer_id": rv.ReviewerID,
			"reviewee_id": rv.RevieweeID,
		})
	}
	return nil
}

// ListByReviewer returns the reviews a user has written about others.
func (r *UserReviewRepository) ListByReviewer(ctx context.Context, reviewerID int64) ([]domain.UserReview, error) {
	return r.list(ctx, "ListUserReviewsByReviewer", "reviewer_id", reviewerID)
}

// ListByReviewee returns the reviews others have written about a user.
func (r *UserReviewRepository) ListByReviewee(ctx context.Context, revieweeID int64) ([]domain.UserReview, error) {
	return r.list(ctx, "ListUserReviewsByReviewee", "reviewee_id", revieweeID)
}

func (r *UserReviewRepository) list(ctx context.Context, op, column string, id int64) (_ []domain.UserReview, err error) {
	query := `SELECT ` + userReviewColumns + ` FROM user_reviews WHERE ` + column + ` = $1 ORDER BY id`

	ctx, end := database.TraceQuery(ctx, op, query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("list user reviews by %s: %w", column, err)
	}
	reviews, err := collect(rows, scanUserReview)
	if err != nil {
		return nil, fmt.Errorf("scan user reviews: %w", err)
	}
	return reviews, nil
}

func scanUserReview(row pgx.Row) (domain.UserReview, error) {
	var rv domain.UserReview
	err := row.Scan(&rv.ID, &rv.Rating, &rv.Body, &rv.ReviewerID, &rv.RevieweeID)
	return rv, err
}

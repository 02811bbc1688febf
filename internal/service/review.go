package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/bookborrower/internal/domain"
	"github.com/utafrali/bookborrower/internal/event"
	"github.com/utafrali/bookborrower/internal/repository"
)

// CreateBookReviewInput holds the parameters for reviewing a book.
type CreateBookReviewInput struct {
	Rating     int
	Body       string
	BookID     int64
	ReviewerID int64
}

// CreateUserReviewInput holds the parameters for reviewing a user.
type CreateUserReviewInput struct {
	Rating     int
	Body       string
	ReviewerID int64
	RevieweeID int64
}

// ReviewService implements book and user review operations. Ratings are
// stored as given.
type ReviewService struct {
	bookReviews repository.BookReviewRepository
	userReviews repository.UserReviewRepository
	users       repository.UserRepository
	books       repository.BookRepository
	producer    *event.Producer
	logger      *slog.Logger
}

// NewReviewService creates a new review service. producer may be nil.
func NewReviewService(
	bookReviews repository.BookReviewRepository,
	userReviews repository.UserReviewRepository,
	users repository.UserRepository,
	books repository.BookRepository,
	producer *event.Producer,
	logger *slog.Logger,
) *ReviewService {
	return &ReviewService{
		bookReviews: bookReviews,
		userReviews: userReviews,
		users:       users,
		books:       books,
		producer:    producer,
		logger:      logger,
	}
}

// CreateBookReview persists a review of a book.
func (s *ReviewService) CreateBookReview(ctx context.Context, input *CreateBookReviewInput) (*domain.BookReview, error) {
	if err := requireID("book_id", input.BookID); err != nil {
		return nil, err
	}
	if err := requireID("reviewer_id", input.ReviewerID); err != nil {
		return nil, err
	}

	review := &domain.BookReview{
		Rating:     input.Rating,
		Body:       input.Body,
		BookID:     input.BookID,
		ReviewerID: input.ReviewerID,
	}

	if err := s.bookReviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create book review: %w", err)
	}

	if err := s.producer.PublishBookReviewCreated(ctx, review); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish book_review.created event",
			slog.Int64("book_review_id", review.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "book review created",
		slog.Int64("book_review_id", review.ID),
		slog.Int64("book_id", review.BookID),
		slog.Int64("reviewer_id", review.ReviewerID),
		slog.Int("rating", review.Rating),
	)

	return review, nil
}

// CreateUserReview persists a review of one user by another. A user may
// review themselves.
func (s *ReviewService) CreateUserReview(ctx context.Context, input *CreateUserReviewInput) (*domain.UserReview, error) {
	if err := requireID("reviewer_id", input.ReviewerID); err != nil {
		return nil, err
	}
	if err := requireID("reviewee_id", input.RevieweeID); err != nil {
		return nil, err
	}

	review := &domain.UserReview{
		Rating:     input.Rating,
		Body:       input.Body,
		ReviewerID: input.ReviewerID,
		RevieweeID: input.RevieweeID,
	}

	if err := s.userReviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create user review: %w", err)
	}

	if err := s.producer.PublishUserReviewCreated(ctx, review); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user_review.created event",
			slog.Int64("user_review_id", review.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user review created",
		slog.Int64("user_review_id", review.ID),
		slog.Int64("reviewer_id", review.ReviewerID),
		slog.Int64("reviewee_id", review.RevieweeID),
		slog.Int("rating", review.Rating),
	)

	return review, nil
}

// ListBookReviewsByBook returns the reviews of a book.
func (s *ReviewService) ListBookReviewsByBook(ctx context.Context, bookID int64) ([]domain.BookReview, error) {
	if err := ensureBook(ctx, s.books, bookID); err != nil {
		return nil, err
	}
	reviews, err := s.bookReviews.ListByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("list book reviews: %w", err)
	}
	return reviews, nil
}

// ListBookReviewsByReviewer returns the book reviews a user has written.
func (s *ReviewService) ListBookReviewsByReviewer(ctx context.Context, userID int64) ([]domain.BookReview, error) {
	if err := ensureUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	reviews, err := s.bookReviews.ListByReviewer(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list book reviews: %w", err)
	}
	return reviews, nil
}

// ListUserReviewsByReviewer returns the reviews a user has written about others.
func (s *ReviewService) ListUserReviewsByReviewer(ctx context.Context, userID int64) ([]domain.UserReview, error) {
	if err := ensureUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	reviews, err := s.userReviews.ListByReviewer(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user reviews: %w", err)
	}
	return reviews, nil
}

// ListUserReviewsByReviewee returns the reviews others have written about a user.
func (s *ReviewService) ListUserReviewsByReviewee(ctx context.Context, userID int64) ([]domain.UserReview, error) {
	if err := ensureUser(ctx, s.users, userID); err != nil {
		return nil, err
	}
	reviews, err := s.userReviews.ListByReviewee(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user reviews: %w", err)
	}
	return reviews, nil
}

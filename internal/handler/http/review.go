package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/bookborrower/internal/service"
	"github.com/utafrali/bookborrower/pkg/httputil"
)

// ReviewHandler handles HTTP requests for book and user review endpoints.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// CreateBookReviewRequest is the JSON request body for reviewing a book.
// Rating is not range-checked beyond fitting the INTEGER column.
type CreateBookReviewRequest struct {
	Rating     int32  `json:"rating"`
	Body       string `json:"body"`
	BookID     int64  `json:"book_id" validate:"required,gt=0"`
	ReviewerID int64  `json:"reviewer_id" validate:"required,gt=0"`
}

// CreateUserReviewRequest is the JSON request body for reviewing a user.
type CreateUserReviewRequest struct {
	Rating     int32  `json:"rating"`
	Body       string `json:"body"`
	ReviewerID int64  `json:"reviewer_id" validate:"required,gt=0"`
	RevieweeID int64  `json:"reviewee_id" validate:"required,gt=0"`
}

// --- Handlers ---

// CreateBookReview handles POST /api/book-reviews
func (h *ReviewHandler) CreateBookReview(w http.ResponseWriter, r *http.Request) {
	var req CreateBookReviewRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	review, err := h.service.CreateBookReview(r.Context(), &service.CreateBookReviewInput{
		Rating:     int(req.Rating),
		Body:       req.Body,
		BookID:     req.BookID,
		ReviewerID: req.ReviewerID,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, review)
}

// CreateUserReview handles POST /api/user-reviews
func (h *ReviewHandler) CreateUserReview(w http.ResponseWriter, r *http.Request) {
	var req CreateUserReviewRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	review, err := h.service.CreateUserReview(r.Context(), &service.CreateUserReviewInput{
		Rating:     int(req.Rating),
		Body:       req.Body,
		ReviewerID: req.ReviewerID,
		RevieweeID: req.RevieweeID,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, review)
}

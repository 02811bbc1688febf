package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/bookborrower/internal/service"
	"github.com/utafrali/bookborrower/pkg/httputil"
)

// UserHandler handles HTTP requests for user endpoints, including the
// per-user navigation lists.
type UserHandler struct {
	users   *service.UserService
	books   *service.BookService
	reviews *service.ReviewService
	borrows *service.BorrowService
	logger  *slog.Logger
}

// NewUserHandler creates a new user HTTP handler.
func NewUserHandler(
	users *service.UserService,
	books *service.BookService,
	reviews *service.ReviewService,
	borrows *service.BorrowService,
	logger *slog.Logger,
) *UserHandler {
	return &UserHandler{
		users:   users,
		books:   books,
		reviews: reviews,
		borrows: borrows,
		logger:  logger,
	}
}

// CreateUserRequest is the JSON request body for creating a user.
type CreateUserRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// CreateUser handles POST /api/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	user, err := h.users.CreateUser(r.Context(), &service.CreateUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, users)
}

// GetUser handles GET /api/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// ListBooks handles GET /api/users/{id}/books
func (h *UserHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	books, err := h.books.ListBooksByOwner(r.Context(), id)
	h.writeList(w, r, books, err)
}

// ListBookReviews handles GET /api/users/{id}/book-reviews
func (h *UserHandler) ListBookReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	reviews, err := h.reviews.ListBookReviewsByReviewer(r.Context(), id)
	h.writeList(w, r, reviews, err)
}

// ListReviewsGiven handles GET /api/users/{id}/reviews-given
func (h *UserHandler) ListReviewsGiven(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	reviews, err := h.reviews.ListUserReviewsByReviewer(r.Context(), id)
	h.writeList(w, r, reviews, err)
}

// ListReviewsReceived handles GET /api/users/{id}/reviews-received
func (h *UserHandler) ListReviewsReceived(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	reviews, err := h.reviews.ListUserReviewsByReviewee(r.Context(), id)
	h.writeList(w, r, reviews, err)
}

// ListBorrows handles GET /api/users/{id}/borrows
func (h *UserHandler) ListBorrows(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	borrows, err := h.borrows.ListBorrowsByBorrower(r.Context(), id)
	h.writeList(w, r, borrows, err)
}

func (h *UserHandler) writeList(w http.ResponseWriter, r *http.Request, list any, err error) {
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, list)
}

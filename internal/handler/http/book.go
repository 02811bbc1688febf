package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/bookborrower/internal/service"
	"github.com/utafrali/bookborrower/pkg/httputil"
)

// BookHandler handles HTTP requests for book endpoints.
type BookHandler struct {
	books   *service.BookService
	reviews *service.ReviewService
	borrows *service.BorrowService
	logger  *slog.Logger
}

// NewBookHandler creates a new book HTTP handler.
func NewBookHandler(books *service.BookService, reviews *service.ReviewService, borrows *service.BorrowService, logger *slog.Logger) *BookHandler {
	return &BookHandler{
		books:   books,
		reviews: reviews,
		borrows: borrows,
		logger:  logger,
	}
}

// CreateBookRequest is the JSON request body for creating a book. Pages is
// int32 to match the INTEGER column.
type CreateBookRequest struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	ISBN      string `json:"isbn"`
	ImageLink string `json:"image_link"`
	Genre     string `json:"genre"`
	Pages     int32  `json:"pages" validate:"gte=0"`
	OwnerID   int64  `json:"owner_id" validate:"required,gt=0"`
}

// CreateBook handles POST /api/books
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	book, err := h.books.CreateBook(r.Context(), &service.CreateBookInput{
		Title:     req.Title,
		Author:    req.Author,
		ISBN:      req.ISBN,
		ImageLink: req.ImageLink,
		Genre:     req.Genre,
		Pages:     int(req.Pages),
		OwnerID:   req.OwnerID,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, book)
}

// GetBook handles GET /api/books/{id}
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	book, err := h.books.GetBook(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, book)
}

// ListReviews handles GET /api/books/{id}/reviews
func (h *BookHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	reviews, err := h.reviews.ListBookReviewsByBook(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, reviews)
}

// ListBorrows handles GET /api/books/{id}/borrows
func (h *BookHandler) ListBorrows(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	borrows, err := h.borrows.ListBorrowsByBook(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, borrows)
}

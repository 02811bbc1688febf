package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/utafrali/bookborrower/internal/service"
	"github.com/utafrali/bookborrower/pkg/httputil"
)

// naiveLayouts are ISO 8601 forms without a zone offset. They are read as UTC.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// timestamp accepts RFC 3339 as well as zone-less ISO 8601 datetimes such as
// "2024-03-01T12:00:00.123456".
type timestamp struct {
	time.Time
}

func (t *timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("datetime must be a string: %w", err)
	}
	if v, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = v
		return nil
	}
	for _, layout := range naiveLayouts {
		if v, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time = v
			return nil
		}
	}
	return fmt.Errorf("%q is not an ISO 8601 datetime", s)
}

// BorrowHandler handles HTTP requests for borrow endpoints.
type BorrowHandler struct {
	service *service.BorrowService
	logger  *slog.Logger
}

// NewBorrowHandler creates a new borrow HTTP handler.
func NewBorrowHandler(svc *service.BorrowService, logger *slog.Logger) *BorrowHandler {
	return &BorrowHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateBorrowRequest is the JSON request body for recording a borrow.
// When DateBorrowed is omitted the server time is used.
type CreateBorrowRequest struct {
	DateBorrowed *timestamp `json:"date_borrowed"`
	BookID       int64      `json:"book_id" validate:"required,gt=0"`
	BorrowerID   int64      `json:"borrower_id" validate:"required,gt=0"`
}

// CreateBorrow handles POST /api/borrows
func (h *BorrowHandler) CreateBorrow(w http.ResponseWriter, r *http.Request) {
	var req CreateBorrowRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	input := &service.CreateBorrowInput{
		BookID:     req.BookID,
		BorrowerID: req.BorrowerID,
	}
	if req.DateBorrowed != nil {
		input.DateBorrowed = &req.DateBorrowed.Time
	}

	borrow, err := h.service.CreateBorrow(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, borrow)
}

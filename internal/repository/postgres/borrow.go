package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/bookborrower/internal/domain"
	"github.com/utafrali/bookborrower/pkg/database"
)

const borrowColumns = "id, date_borrowed, book_id, borrower_id"

// BorrowRepository implements repository.BorrowRepository using PostgreSQL.
type BorrowRepository struct {
	db database.DBTX
}

// NewBorrowRepository creates a new PostgreSQL-backed borrow repository.
func NewBorrowRepository(db database.DBTX) *BorrowRepository {
	return &BorrowRepository{db: db}
}

// Create inserts a new borrow record and stores the generated id in b.ID.
func (r *BorrowRepository) Create(ctx context.Context, b *domain.Borrow) (err error) {
	query := `
		INSERT INTO borrows (date_borrowed, book_id, borrower_id)
		VALUES ($1, $2, $3)
		RETURNING id`

	ctx, end := database.TraceQuery(ctx, "CreateBorrow", query)
	defer func() { end(err) }()

	err = r.db.QueryRow(ctx, query, b.DateBorrowed, b.BookID, b.BorrowerID).Scan(&b.ID)
	if err != nil {
		return mapWriteError(err, "insert borrow", "borrow", map[string]any{
			"book_id":     b.BookID,
			"borrower_id": b.BorrowerID,
		})
	}
	return nil
}

// ListByBook returns the borrow history of a book, oldest first.
func (r *BorrowRepository) ListByBook(ctx context.Context, bookID int64) ([]domain.Borrow, error) {
	return r.list(ctx, "ListBorrowsByBook", "book_id", bookID)
}

// ListByBorrower returns the borrow history of a user, oldest first.
func (r *BorrowRepository) ListByBorrower(ctx context.Context, borrowerID int64) ([]domain.Borrow, error) {
	return r.list(ctx, "ListBorrowsByBorrower", "borrower_id", borrowerID)
}

func (r *BorrowRepository) list(ctx context.Context, op, column string, id int64) (_ []domain.Borrow, err error) {
	query := `SELECT ` + borrowColumns + ` FROM borrows WHERE ` + column + ` = $1 ORDER BY date_borrowed, id`

	ctx, end := database.TraceQuery(ctx, op, query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("list borrows by %s: %w", column, err)
	}
	borrows, err := collect(rows, scanBorrow)
	if err != nil {
		return nil, fmt.Errorf("scan borrows: %w", err)
	}
	return borrows, nil
}

func scanBorrow(row pgx.Row) (domain.Borrow, error) {
	var b domain.Borrow
	if err := row.Scan(&b.ID, &b.DateBorrowed, &b.BookID, &b.BorrowerID); err != nil {
		return b, err
	}
	b.DateBorrowed = b.DateBorrowed.UTC()
	return b, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/bookborrower/internal/domain"
	"github.com/utafrali/bookborrower/pkg/database"
	apperrors "github.com/utafrali/bookborrower/pkg/errors"
)

const bookColumns = "id, title, author, isbn, image_link, genre, pages, owner_id"

// BookRepository implements repository.BookRepository using PostgreSQL.
type BookRepository struct {
	db database.DBTX
}

// NewBookRepository creates a new PostgreSQL-backed book repository.
func NewBookRepository(db database.DBTX) *BookRepository {
	return &BookRepository{db: db}
}

// Create inserts a new book and stores the generated id in b.ID.
func (r *BookRepository) Create(ctx context.Context, b *domain.Book) (err error) {
	query := `
		INSERT INTO books (title, author, isbn, image_link, genre, pages, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	ctx, end := database.TraceQuery(ctx, "CreateBook", query)
	defer func() { end(err) }()

	err = r.db.QueryRow(ctx, query,
		b.Title,
		b.Author,
		b.ISBN,
		b.ImageLink,
		b.Genre,
		b.Pages,
		b.OwnerID,
	).Scan(&b.ID)
	if err != nil {
		return mapWriteError(err, "insert book", "book", map[string]any{"owner_id": b.OwnerID})
	}
	return nil
}

// GetByID retrieves a book by id.
func (r *BookRepository) GetByID(ctx context.Context, id int64) (_ *domain.Book, err error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "GetBook", query)
	defer func() { end(err) }()

	b, err := scanBook(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("book", id)
		}
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}
	return &b, nil
}

// ListByOwner returns the books owned by a user, ordered by id.
func (r *BookRepository) ListByOwner(ctx context.Context, ownerID int64) (_ []domain.Book, err error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE owner_id = $1 ORDER BY id`

	ctx, end := database.TraceQuery(ctx, "ListBooksByOwner", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list books by owner: %w", err)
	}
	books, err := collect(rows, scanBook)
	if err != nil {
		return nil, fmt.Errorf("scan books: %w", err)
	}
	return books, nil
}

func scanBook(row pgx.Row) (domain.Book, error) {
	var b domain.Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.ImageLink, &b.Genre, &b.Pages, &b.OwnerID)
	return b, err
}

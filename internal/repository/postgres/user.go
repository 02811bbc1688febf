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

const userColumns = "id, email, first_name, last_name"

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	db database.DBTX
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(db database.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and stores the generated id in u.ID.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (err error) {
	query := `
		INSERT INTO users (email, first_name, last_name)
		VALUES ($1, $2, $3)
		RETURNING id`

	ctx, end := database.TraceQuery(ctx, "CreateUser", query)
	defer func() { end(err) }()

	if err = r.db.QueryRow(ctx, query, u.Email, u.FirstName, u.LastName).Scan(&u.ID); err != nil {
		return mapWriteError(err, "insert user", "user", nil)
	}
	return nil
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (_ *domain.User, err error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "GetUser", query)
	defer func() { end(err) }()

	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user", id)
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &u, nil
}

// List returns all users ordered by id.
func (r *UserRepository) List(ctx context.Context) (_ []domain.User, err error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	ctx, end := database.TraceQuery(ctx, "ListUsers", query)
	defer func() { end(err) }()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users, err := collect(rows, scanUser)
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}
	return users, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName)
	return u, err
}

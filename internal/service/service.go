package service

import (
	"context"
	"fmt"

	"github.com/utafrali/bookborrower/internal/repository"
	apperrors "github.com/utafrali/bookborrower/pkg/errors"
)

// requireID rejects non-positive foreign-key ids before they reach the database.
func requireID(field string, id int64) error {
	if id <= 0 {
		return apperrors.InvalidInput(fmt.Sprintf("%s must be a positive integer", field))
	}
	return nil
}

// ensureUser returns a NotFound error when no user has the given id.
func ensureUser(ctx context.Context, users repository.UserRepository, id int64) error {
	if _, err := users.GetByID(ctx, id); err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	return nil
}

// ensureBook returns a NotFound error when no book has the given id.
func ensureBook(ctx context.Context, books repository.BookRepository, id int64) error {
	if _, err := books.GetByID(ctx, id); err != nil {
		return fmt.Errorf("get book: %w", err)
	}
	return nil
}

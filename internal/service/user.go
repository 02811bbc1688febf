package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/bookborrower/internal/domain"
	"github.com/utafrali/bookborrower/internal/event"
	"github.com/utafrali/bookborrower/internal/repository"
)

// CreateUserInput holds the parameters for creating a user.
type CreateUserInput struct {
	Email     string
	FirstName string
	LastName  string
}

// UserService implements user operations.
type UserService struct {
	users    repository.UserRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewUserService creates a new user service. producer may be nil.
func NewUserService(users repository.UserRepository, producer *event.Producer, logger *slog.Logger) *UserService {
	return &UserService{
		users:    users,
		producer: producer,
		logger:   logger,
	}
}

// CreateUser persists a new user and returns it with its assigned id.
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*domain.User, error) {
	user := &domain.User{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.producer.PublishUserCreated(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.created event",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user created",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// GetUser retrieves a user by id.
func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// ListUsers returns every user.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

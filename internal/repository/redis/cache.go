package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/bookborrower/internal/domain"
	"github.com/utafrali/bookborrower/internal/repository"
)

const (
	userKeyPrefix = "bookborrower:user:"
	bookKeyPrefix = "bookborrower:book:"
)

// readThrough serves key from Redis, falling back to load on a miss and
// storing the result for ttl. Redis failures are logged and never surface:
// the database stays the source of truth.
func readThrough[T any](
	ctx context.Context,
	client redis.UniversalClient,
	logger *slog.Logger,
	key string,
	ttl time.Duration,
	load func(context.Context) (*T, error),
) (*T, error) {
	data, err := client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var v T
		if jerr := json.Unmarshal(data, &v); jerr == nil {
			return &v, nil
		}
		logger.WarnContext(ctx, "discarding undecodable cache entry", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		logger.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	v, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(v); err == nil {
		if err := client.Set(ctx, key, data, ttl).Err(); err != nil {
			logger.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
	return v, nil
}

// CachedUserRepository caches GetByID results. Users are never updated or
// deleted, so entries are only dropped by TTL.
type CachedUserRepository struct {
	repository.UserRepository
	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedUserRepository wraps next with a Redis read-through cache.
func NewCachedUserRepository(next repository.UserRepository, client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *CachedUserRepository {
	return &CachedUserRepository{UserRepository: next, client: client, ttl: ttl, logger: logger}
}

// GetByID returns the cached user or loads it from the wrapped repository.
func (r *CachedUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return readThrough(ctx, r.client, r.logger, userKeyPrefix+strconv.FormatInt(id, 10), r.ttl,
		func(ctx context.Context) (*domain.User, error) { return r.UserRepository.GetByID(ctx, id) })
}

// CachedBookRepository caches GetByID results.
type CachedBookRepository struct {
	repository.BookRepository
	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedBookRepository wraps next with a Redis read-through cache.
func NewCachedBookRepository(next repository.BookRepository, client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *CachedBookRepository {
	return &CachedBookRepository{BookRepository: next, client: client, ttl: ttl, logger: logger}
}

// GetByID returns the cached book or loads it from the wrapped repository.
func (r *CachedBookRepository) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	return readThrough(ctx, r.client, r.logger, bookKeyPrefix+strconv.FormatInt(id, 10), r.ttl,
		func(ctx context.Context) (*domain.Book, error) { return r.BookRepository.GetByID(ctx, id) })
}

package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/utafrali/bookborrower/internal/domain"
	pkgkafka "github.com/utafrali/bookborrower/pkg/kafka"
	"github.com/utafrali/bookborrower/pkg/logger"
)

// Kafka topics for book borrower domain events.
const (
	TopicUserCreated       = "bookborrower.user.created"
	TopicBookCreated       = "bookborrower.book.created"
	TopicBookReviewCreated = "bookborrower.book_review.created"
	TopicUserReviewCreated = "bookborrower.user_review.created"
	TopicBorrowRecorded    = "bookborrower.borrow.recorded"
)

// Aggregate types.
const (
	AggregateUser       = "user"
	AggregateBook       = "book"
	AggregateBookReview = "book_review"
	AggregateUserReview = "user_review"
	AggregateBorrow     = "borrow"
)

// Source identifies this service on every event.
const Source = "bookborrower"

// Publisher sends an event to a topic. *pkgkafka.Producer implements it.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes domain events. A nil *Producer is valid and publishes
// nothing, which is how the service runs with Kafka disabled.
type Producer struct {
	publisher Publisher
	logger    *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(publisher Publisher, logger *slog.Logger) *Producer {
	return &Producer{publisher: publisher, logger: logger}
}

// PublishUserCreated publishes a user.created event carrying the new user.
func (p *Producer) PublishUserCreated(ctx context.Context, u *domain.User) error {
	return p.publish(ctx, TopicUserCreated, "user.created", AggregateUser, u.ID, u)
}

// PublishBookCreated publishes a book.created event carrying the new book.
func (p *Producer) PublishBookCreated(ctx context.Context, b *domain.Book) error {
	return p.publish(ctx, TopicBookCreated, "book.created", AggregateBook, b.ID, b)
}

// PublishBookReviewCreated publishes a book_review.created event.
func (p *Producer) PublishBookReviewCreated(ctx context.Context, rv *domain.BookReview) error {
	return p.publish(ctx, TopicBookReviewCreated, "book_review.created", AggregateBookReview, rv.ID, rv)
}

// PublishUserReviewCreated publishes a user_review.created event.
func (p *Producer) PublishUserReviewCreated(ctx context.Context, rv *domain.UserReview) error {
	return p.publish(ctx, TopicUserReviewCreated, "user_review.created", AggregateUserReview, rv.ID, rv)
}

// PublishBorrowRecorded publishes a borrow.recorded event.
func (p *Producer) PublishBorrowRecorded(ctx context.Context, b *domain.Borrow) error {
	return p.publish(ctx, TopicBorrowRecorded, "borrow.recorded", AggregateBorrow, b.ID, b)
}

func (p *Producer) publish(ctx context.Context, topic, eventType, aggregate string, id int64, data any) error {
	if p == nil || p.publisher == nil {
		return nil
	}

	evt, err := pkgkafka.NewEvent(eventType, aggregate, strconv.FormatInt(id, 10), Source, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", eventType, err)
	}
	evt.CorrelationID = logger.CorrelationIDFromContext(ctx)

	if err := p.publisher.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}

	p.logger.DebugContext(ctx, "published "+eventType+" event",
		slog.String("event_id", evt.EventID),
		slog.Int64(aggregate+"_id", id),
	)
	return nil
}

package event

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/bookborrower/internal/domain"
	pkgkafka "github.com/utafrali/bookborrower/pkg/kafka"
	"github.com/utafrali/bookborrower/pkg/logger"
)

type published struct {
	topic string
	event *pkgkafka.Event
}

type recordingPublisher struct {
	sent []published
	err  error
}

func (r *recordingPublisher) Publish(_ context.Context, topic string, e *pkgkafka.Event) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, published{topic: topic, event: e})
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProducer_NilIsNoop(t *testing.T) {
	var p *Producer
	assert.NoError(t, p.PublishUserCreated(context.Background(), &domain.User{ID: 1}))
	assert.NoError(t, NewProducer(nil, discardLogger()).PublishBookCreated(context.Background(), &domain.Book{ID: 1}))
}

func TestProducer_PublishesEnvelope(t *testing.T) {
	pub := &recordingPublisher{}
	p := NewProducer(pub, discardLogger())
	ctx := logger.WithCorrelationID(context.Background(), "corr-9")

	borrow := &domain.Borrow{ID: 12, DateBorrowed: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), BookID: 3, BorrowerID: 4}
	require.NoError(t, p.PublishBorrowRecorded(ctx, borrow))
	require.Len(t, pub.sent, 1)

	sent := pub.sent[0]
	assert.Equal(t, TopicBorrowRecorded, sent.topic)
	assert.Equal(t, "borrow.recorded", sent.event.EventType)
	assert.Equal(t, AggregateBorrow, sent.event.AggregateType)
	assert.Equal(t, "12", sent.event.AggregateID)
	assert.Equal(t, Source, sent.event.Source)
	assert.Equal(t, "corr-9", sent.event.CorrelationID)

	var data domain.Borrow
	require.NoError(t, sent.event.UnmarshalData(&data))
	assert.Equal(t, *borrow, data)
}

func TestProducer_AllTopics(t *testing.T) {
	pub := &recordingPublisher{}
	p := NewProducer(pub, discardLogger())
	ctx := context.Background()

	require.NoError(t, p.PublishUserCreated(ctx, &domain.User{ID: 1}))
	require.NoError(t, p.PublishBookCreated(ctx, &domain.Book{ID: 2}))
	require.NoError(t, p.PublishBookReviewCreated(ctx, &domain.BookReview{ID: 3}))
	require.NoError(t, p.PublishUserReviewCreated(ctx, &domain.UserReview{ID: 4}))

	topics := make([]string, 0, len(pub.sent))
	for _, s := range pub.sent {
		topics = append(topics, s.topic)
	}
	assert.Equal(t, []string{TopicUserCreated, TopicBookCreated, TopicBookReviewCreated, TopicUserReviewCreated}, topics)
}

func TestProducer_PublishErrorWrapped(t *testing.T) {
	p := NewProducer(&recordingPublisher{err: errors.New("broker down")}, discardLogger())

	err := p.PublishUserCreated(context.Background(), &domain.User{ID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish user.created event")
}

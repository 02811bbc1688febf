package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewEvent(t *testing.T) {
	type bookData struct {
		Title string `json:"title"`
	}

	event, err := NewEvent("book.created", "book", "42", "bookborrower", bookData{Title: "Dune"})
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "book.created", event.EventType)
	assert.Equal(t, "book", event.AggregateType)
	assert.Equal(t, "42", event.AggregateID)
	assert.Equal(t, 1, event.Version)
	assert.WithinDuration(t, time.Now().UTC(), event.Timestamp, 2*time.Second)

	var got bookData
	require.NoError(t, event.UnmarshalData(&got))
	assert.Equal(t, "Dune", got.Title)
}

func TestNewEvent_UnserializablePayload(t *testing.T) {
	_, err := NewEvent("x", "y", "1", "svc", make(chan int))
	require.Error(t, err)
}

func TestProducer_Publish(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	prevProp := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prevProp) })

	ctx, span := tp.Tracer("test").Start(context.Background(), "publish")
	defer span.End()

	w := &fakeWriter{}
	metrics, err := NewProducerMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	p := newProducer(w, []string{"localhost:9092"}, metrics, discardLogger())

	event, err := NewEvent("user.created", "user", "7", "bookborrower", map[string]string{"name": "Ada"})
	require.NoError(t, err)
	event.CorrelationID = "corr-1"

	require.NoError(t, p.Publish(ctx, "bookborrower.user.created", event))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "bookborrower.user.created", msg.Topic)
	assert.Equal(t, "7", string(msg.Key))

	headers := NewHeaderCarrier(&msg.Headers)
	assert.Equal(t, "user.created", headers.Get("event_type"))
	assert.Equal(t, "corr-1", headers.Get("correlation_id"))
	assert.Contains(t, headers.Get("traceparent"), span.SpanContext().TraceID().String())

	decoded, err := UnmarshalEvent(msg.Value)
	require.NoError(t, err)
	assert.Equal(t, event.EventID, decoded.EventID)
}

func TestProducer_PublishError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	p := newProducer(w, nil, nil, discardLogger())

	event, err := NewEvent("book.created", "book", "1", "bookborrower", nil)
	require.NoError(t, err)

	err = p.Publish(context.Background(), "bookborrower.book.created", event)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish event to bookborrower.book.created")
}

func TestProducer_Close(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, nil, nil, discardLogger())

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPingBrokers_NoneConfigured(t *testing.T) {
	assert.Error(t, PingBrokers(context.Background(), nil))
}

func TestHeaderCarrier_SetOverwrites(t *testing.T) {
	headers := []kafka.Header{{Key: "a", Value: []byte("1")}}
	c := NewHeaderCarrier(&headers)

	c.Set("a", "2")
	c.Set("b", "3")

	assert.Equal(t, "2", c.Get("a"))
	assert.Equal(t, "3", c.Get("b"))
	assert.Equal(t, "", c.Get("missing"))
	assert.ElementsMatch(t, []string{"a", "b"}, c.Keys())
}

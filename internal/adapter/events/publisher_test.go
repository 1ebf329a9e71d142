package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/devxankit/Electrici-toys/internal/config"
	"github.com/devxankit/Electrici-toys/internal/domain/model"
	testhelpers "github.com/devxankit/Electrici-toys/internal/test"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestPublishWritesKeyedMessage(t *testing.T) {
	writer := &fakeWriter{}
	publisher := newPublisher(writer, "orders", testLogger())
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	err := publisher.Publish(context.Background(), model.OutboxEvent{
		ID:        7,
		EventID:   "evt-1",
		Type:      model.EventOrderPlaced,
		OrderID:   "ord-1",
		Payload:   []byte(`{"orderId":"ord-1"}`),
		CreatedAt: created,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(writer.messages) != 1 {
		t.Fatalf("expected one message, got %d", len(writer.messages))
	}
	msg := writer.messages[0]
	if string(msg.Key) != "ord-1" || string(msg.Value) != `{"orderId":"ord-1"}` || !msg.Time.Equal(created) {
		t.Fatalf("unexpected message: %+v", msg)
	}
	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	if headers[headerEventID] != "evt-1" || headers[headerEventType] != "order.placed" {
		t.Fatalf("unexpected headers: %v", headers)
	}
}

func TestPublishWrapsWriterError(t *testing.T) {
	boom := errors.New("broker down")
	publisher := newPublisher(&fakeWriter{err: boom}, "orders", testLogger())
	err := publisher.Publish(context.Background(), model.OutboxEvent{Type: model.EventOrderStatusChanged, OrderID: "ord-2"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped writer error, got %v", err)
	}
}

func TestCloseClosesWriter(t *testing.T) {
	writer := &fakeWriter{}
	if err := newPublisher(writer, "orders", testLogger()).Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !writer.closed {
		t.Fatal("expected writer to be closed")
	}
}

func TestNewKafkaPublisherConfiguresWriter(t *testing.T) {
	publisher := NewKafkaPublisher([]string{"localhost:9092"}, "orders", testLogger())
	writer, ok := publisher.writer.(*kafka.Writer)
	if !ok {
		t.Fatalf("expected kafka writer, got %T", publisher.writer)
	}
	if writer.Topic != "orders" || writer.RequiredAcks != kafka.RequireAll {
		t.Fatalf("unexpected writer settings: topic=%s acks=%v", writer.Topic, writer.RequiredAcks)
	}
	if _, ok := writer.Balancer.(*kafka.Hash); !ok {
		t.Fatalf("expected hash balancer, got %T", writer.Balancer)
	}
}

func TestNewPublisherFromConfigWithoutBrokers(t *testing.T) {
	lc := &testhelpers.LifecycleRecorder{}
	publisher := newPublisherFromConfig(publisherParams{Lifecycle: lc, Config: &config.Config{}, Logger: testLogger()})
	if publisher != nil {
		t.Fatal("expected nil publisher without brokers")
	}
	if len(lc.Hooks) != 0 {
		t.Fatalf("expected no hooks, got %d", len(lc.Hooks))
	}
}

func TestNewPublisherFromConfigRegistersClose(t *testing.T) {
	lc := &testhelpers.LifecycleRecorder{}
	cfg := &config.Config{KafkaBrokers: []string{"localhost:9092"}, KafkaTopic: "orders"}
	publisher := newPublisherFromConfig(publisherParams{Lifecycle: lc, Config: cfg, Logger: testLogger()})
	if publisher == nil {
		t.Fatal("expected publisher")
	}
	if len(lc.Hooks) != 1 || lc.Hooks[0].OnStop == nil {
		t.Fatalf("expected stop hook, got %+v", lc.Hooks)
	}
	if err := lc.Stop(context.Background()); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
}

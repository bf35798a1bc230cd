package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/angelmondragon/stylin-backend/pkg/config"
	"github.com/angelmondragon/stylin-backend/pkg/enums"
	"github.com/angelmondragon/stylin-backend/pkg/logger"
	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	fail   error
	closed bool
	block  chan struct{}
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func TestKafkaPublisherWritesEnvelope(t *testing.T) {
	w := &fakeWriter{}
	pub := newKafkaPublisher(w, 4, time.Second, logger.Nop())

	ev, err := New(enums.EventDeckSwiped, "sess-1", DeckSwipedPayload{ProductID: "p1", Direction: "left", Cursor: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := pub.Publish(context.Background(), ev); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if !w.closed || len(w.msgs) != 1 {
		t.Fatalf("expected one flushed message and a closed writer, got %d closed=%v", len(w.msgs), w.closed)
	}
	msg := w.msgs[0]
	if string(msg.Key) != "sess-1" || headerValue(msg, "x-event-type") != "deck.swiped" {
		t.Fatalf("unexpected key/headers: %s %+v", msg.Key, msg.Headers)
	}

	var decoded struct {
		Type      string            `json:"type"`
		SessionID string            `json:"session_id"`
		Payload   DeckSwipedPayload `json:"payload"`
	}
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Type != "deck.swiped" || decoded.Payload.Direction != "left" || decoded.Payload.Cursor != 1 {
		t.Fatalf("unexpected envelope %+v", decoded)
	}
}

func TestKafkaPublisherAfterClose(t *testing.T) {
	pub := newKafkaPublisher(&fakeWriter{}, 1, time.Second, logger.Nop())
	if err := pub.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if err := pub.Publish(context.Background(), Event{Type: enums.EventOrderPlaced}); !errors.Is(err, ErrPublisherClosed) {
		t.Fatalf("expected closed error, got %v", err)
	}
}

func TestKafkaPublisherBufferFull(t *testing.T) {
	w := &fakeWriter{block: make(chan struct{})}
	pub := newKafkaPublisher(w, 1, time.Second, logger.Nop())

	ev := Event{Type: enums.EventCartItemAdded, SessionID: "s"}
	var full bool
	for i := 0; i < 5; i++ {
		if err := pub.Publish(context.Background(), ev); errors.Is(err, ErrBufferFull) {
			full = true
			break
		}
	}
	close(w.block)
	_ = pub.Close()
	if !full {
		t.Fatal("expected the tiny buffer to fill while the writer is blocked")
	}
}

func TestKafkaPublisherLogsWriteFailures(t *testing.T) {
	w := &fakeWriter{fail: errors.New("broker down")}
	pub := newKafkaPublisher(w, 2, time.Second, logger.Nop())
	if err := pub.Publish(context.Background(), Event{Type: enums.EventSavedToggled, SessionID: "s"}); err != nil {
		t.Fatalf("Publish should enqueue even if the broker later fails: %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if len(w.msgs) != 0 {
		t.Fatal("failed writes should not be recorded")
	}
}

func TestNewKafkaPublisherRequiresBrokers(t *testing.T) {
	if _, err := NewKafkaPublisher(config.EventsConfig{Topic: "t"}, logger.Nop()); err == nil {
		t.Fatal("expected error without brokers")
	}
	if _, err := NewKafkaPublisher(config.EventsConfig{Brokers: []string{"localhost:9092"}}, logger.Nop()); err == nil {
		t.Fatal("expected error without topic")
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	if err := p.Publish(context.Background(), Event{}); err != nil {
		t.Fatalf("nop publish: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("nop close: %v", err)
	}
}

package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/stylin-backend/pkg/config"
	"github.com/angelmondragon/stylin-backend/pkg/logger"
	"github.com/segmentio/kafka-go"
)

const defaultBuffer = 256

var (
	ErrPublisherClosed = errors.New("event publisher closed")
	ErrBufferFull      = errors.New("event buffer full")
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher queues events and writes them from a single background loop so
// request handlers never wait on the brokers.
type KafkaPublisher struct {
	w       messageWriter
	logg    *logger.Logger
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	inbox  chan kafka.Message
	done   chan struct{}
}

// NewKafkaPublisher builds a publisher for the configured brokers and topic.
func NewKafkaPublisher(cfg config.EventsConfig, logg *logger.Logger) (*KafkaPublisher, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("no kafka brokers configured")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: cfg.Timeout,
		Transport:    &kafka.Transport{ClientID: cfg.ClientID},
	}
	return newKafkaPublisher(w, defaultBuffer, cfg.Timeout, logg), nil
}

func newKafkaPublisher(w messageWriter, buffer int, timeout time.Duration, logg *logger.Logger) *KafkaPublisher {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	p := &KafkaPublisher{
		w:       w,
		logg:    logg,
		timeout: timeout,
		inbox:   make(chan kafka.Message, buffer),
		done:    make(chan struct{}),
	}
	go p.loop()
	return p
}

// Publish enqueues the event keyed by session so one shopper's events stay ordered.
func (p *KafkaPublisher) Publish(ctx context.Context, ev Event) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(ev.SessionID),
		Value: value,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(ev.Type)},
			{Key: "x-event-version", Value: []byte(envelopeVersion)},
		},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}
	select {
	case p.inbox <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrBufferFull
	}
}

func (p *KafkaPublisher) loop() {
	defer close(p.done)
	for msg := range p.inbox {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		err := p.w.WriteMessages(ctx, msg)
		cancel()
		if err != nil {
			logCtx := p.logg.WithFields(context.Background(), map[string]any{
				"event_type": headerValue(msg, "x-event-type"),
				"session_id": string(msg.Key),
			})
			p.logg.Error(logCtx, "failed to publish event", err)
		}
	}
}

// Close stops accepting events, flushes the queue and closes the writer.
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.inbox)
	p.mu.Unlock()

	<-p.done
	return p.w.Close()
}

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

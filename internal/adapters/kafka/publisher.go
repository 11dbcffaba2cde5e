package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/ports/events"

	kgo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// publishTimeout bounds a synchronous write so a stalled broker cannot hold up a request.
const publishTimeout = 2 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kgo.Message) error
	Close() error
}

// Publisher writes interaction events as JSON, keyed by target id so events about one
// target stay ordered within a partition.
type Publisher struct {
	w       messageWriter
	timeout time.Duration
}

// NewPublisher builds a publisher. In async mode Publish only enqueues and delivery
// failures are logged.
func NewPublisher(brokers []string, topic string, async bool) *Publisher {
	return &Publisher{
		w: &kgo.Writer{
			Addr:                   kgo.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kgo.Hash{},
			RequiredAcks:           kgo.RequireOne,
			Async:                  async,
			Completion:             logFailed,
			BatchTimeout:           50 * time.Millisecond,
			AllowAutoTopicCreation: true,
		},
		timeout: publishTimeout,
	}
}

func (p *Publisher) Publish(ctx context.Context, e events.Event) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	msg := kgo.Message{
		Key:   []byte(e.TargetID),
		Value: b,
		Time:  e.CreatedAt,
		Headers: []kgo.Header{
			{Key: "type", Value: []byte(e.Type)},
		},
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.w.Close()
}

func logFailed(msgs []kgo.Message, err error) {
	if err == nil {
		return
	}
	config.Logger.Warn("Could not deliver events", zap.Int("count", len(msgs)), zap.Error(err))
}

// Package kafkabus publishes order events and relayed notifications to kafka.
package kafkabus

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"mfgorders/internal/core/ports"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Config struct {
	Brokers []string
	Topic   string
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements ports.MessagePublisher. A batch is written
// synchronously and fails as a whole.
type Publisher struct {
	writer messageWriter
	topic  string
}

func NewPublisher(cfg Config, logger *zap.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Logger:       kafkaLogger{logger: logger},
		ErrorLogger:  kafkaLogger{logger: logger, errors: true},
	}
	return newPublisher(writer, cfg.Topic)
}

func newPublisher(writer messageWriter, topic string) *Publisher {
	return &Publisher{writer: writer, topic: topic}
}

func (p *Publisher) Publish(ctx context.Context, msgs ...ports.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	out := make([]kafka.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toKafka(m))
	}
	if err := p.writer.WriteMessages(ctx, out...); err != nil {
		return fmt.Errorf("publish %d message(s) to %s: %w", len(out), p.topic, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func toKafka(m ports.Message) kafka.Message {
	keys := make([]string, 0, len(m.Headers))
	for k := range m.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	headers := make([]kafka.Header, 0, len(keys))
	for _, k := range keys {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(m.Headers[k])})
	}
	return kafka.Message{Key: []byte(m.Key), Value: m.Value, Headers: headers}
}

// NoopPublisher drops every message. Used when no brokers are configured.
type NoopPublisher struct {
	logger *zap.Logger
}

func NewNoopPublisher(logger *zap.Logger) NoopPublisher {
	return NoopPublisher{logger: logger}
}

func (n NoopPublisher) Publish(_ context.Context, msgs ...ports.Message) error {
	if n.logger != nil && len(msgs) > 0 {
		n.logger.Debug("message bus disabled, dropping messages", zap.Int("count", len(msgs)))
	}
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}

type kafkaLogger struct {
	logger *zap.Logger
	errors bool
}

func (k kafkaLogger) Printf(msg string, args ...any) {
	if k.logger == nil {
		return
	}
	line := strings.TrimSpace(fmt.Sprintf(msg, args...))
	if k.errors {
		k.logger.Warn(line, zap.String("component", "kafka"))
		return
	}
	k.logger.Debug(line, zap.String("component", "kafka"))
}

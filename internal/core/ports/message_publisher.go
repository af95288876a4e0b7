package ports

import "context"

// Message is an event handed to the message bus.
type Message struct {
	Key     string
	Value   []byte
	Headers map[string]string
}

// MessagePublisher writes events to the message bus.
type MessagePublisher interface {
	Publish(ctx context.Context, msgs ...Message) error
}

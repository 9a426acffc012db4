package queue

import (
	"context"
	"errors"
)

var (
	// ErrQueueFull is returned by LocalQueue.Send when the buffer has no room.
	ErrQueueFull = errors.New("queue full")
	// ErrClosed is returned once a queue has started shutting down.
	ErrClosed = errors.New("queue closed")
)

// Client sends messages to a queue backend.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

// Handler consumes one message. A returned error is logged by in-process queues.
type Handler func(ctx context.Context, msg Message) error

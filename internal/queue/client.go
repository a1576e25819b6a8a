package queue

import "context"

// Client sends messages to a queue backend. Delivery is fire-and-forget:
// at-most-once, no acknowledgment, no retry.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

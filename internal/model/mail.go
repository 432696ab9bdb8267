package model

import "context"

// Mailer delivers a message synchronously.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Notifier queues a message for delivery without waiting for it.
type Notifier interface {
	Dispatch(msg Message)
}

// Message is an outbound HTML email.
type Message struct {
	To       string
	From     string
	Subject  string
	HTMLBody string
}

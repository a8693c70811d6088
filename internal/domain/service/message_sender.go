package service

import "context"

// Message is an out-of-band message such as a one-time code.
type Message struct {
	Template   string            // Template name resolved by the delivery channel.
	Params     map[string]string // Template parameters, e.g. "code" and "ttl".
	Recipients []string          // Phone numbers, email addresses or device tokens.
}

// Receipt acknowledges a delivery.
type Receipt struct {
	ID       string
	Provider string
}

// MessageSender delivers messages over an external channel (SMS, email, push).
type MessageSender interface {
	Send(ctx context.Context, msg *Message) (*Receipt, error)
}

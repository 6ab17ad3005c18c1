package service

import (
	"context"
	"time"
)

// AccountEventType names what happened to an account.
type AccountEventType string

const (
	AccountRegistered AccountEventType = "account.registered"
	AccountUpdated    AccountEventType = "account.updated"
	AccountDeleted    AccountEventType = "account.deleted"
)

// AccountEvent is published after an account mutation has been persisted.
type AccountEvent struct {
	EventID    string           `json:"event_id"`
	RequestID  string           `json:"request_id,omitempty"` // For distributed tracing
	Type       AccountEventType `json:"type"`
	AccountID  string           `json:"account_id"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishAccountEvent publishes an account lifecycle event
	PublishAccountEvent(ctx context.Context, event *AccountEvent) error

	// Close releases any resources held by the publisher
	Close() error
}

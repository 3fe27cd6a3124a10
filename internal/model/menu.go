// Package model defines the core menu and conversation data types.
package model

import "time"

// DefaultCategory is used when a category cannot be inferred from a command.
const DefaultCategory = "Principales"

// MenuEntry represents a single dish in the catalog.
type MenuEntry struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Category  string `json:"category"`
	Available bool   `json:"available"`
}

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser   Sender = "user"
	SenderSystem Sender = "system"
)

// Status is the delivery state of a message.
type Status string

const (
	StatusSending   Status = "sending"
	StatusSent      Status = "sent"
	StatusProcessed Status = "processed"
	// StatusDelivered is the fixed state of system messages.
	StatusDelivered Status = "delivered"
)

// Message represents a single entry in the conversation log.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	Status    Status    `json:"status"`
}

// IsUser reports whether the message was written by the restaurant owner.
func (m Message) IsUser() bool { return m.Sender == SenderUser }

// ValidStatusTransition reports whether a user message may move from one
// status to the next. Only single forward steps are allowed.
func ValidStatusTransition(from, to Status) bool {
	switch from {
	case StatusSending:
		return to == StatusSent
	case StatusSent:
		return to == StatusProcessed
	}
	return false
}

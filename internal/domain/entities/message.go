package entities

import (
	"time"

	"github.com/google/uuid"
)

// Content length bounds enforced at intake.
const (
	MessageMinLen = 10
	MessageMaxLen = 300
)

// Message represents one anonymous note in a user's mailbox
type Message struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"-"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// SendMessageInput represents input for the public anonymous send endpoint
type SendMessageInput struct {
	Username string `json:"username" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// SuggestInput represents input for the suggestion helper
type SuggestInput struct {
	Type string `json:"type"`
}

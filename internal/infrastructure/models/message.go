package models

import (
	"time"

	"github.com/google/uuid"
)

// Message rows carry two identities: Seq is the insertion counter used
// only for deterministic ordering of equal timestamps, ID is the
// external handle senders and owners address messages by.
type Message struct {
	Seq       int64     `gorm:"primaryKey;autoIncrement"`
	ID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	OwnerID   uuid.UUID `gorm:"type:uuid;index:idx_messages_owner_created;not null"`
	Content   string    `gorm:"type:varchar(300);not null"`
	CreatedAt time.Time `gorm:"index:idx_messages_owner_created"`
}

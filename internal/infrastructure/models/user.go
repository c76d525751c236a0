package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Username            string    `gorm:"type:varchar(32);uniqueIndex;not null"`
	Email               string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash        string    `gorm:"type:varchar(255);not null"`
	VerifyCode          string    `gorm:"type:varchar(6);not null"`
	VerifyCodeExpiresAt time.Time `gorm:"not null"`
	IsVerified          bool      `gorm:"not null;default:false"`
	IsAcceptingMessages bool      `gorm:"not null;default:true"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           gorm.DeletedAt `gorm:"index"`
}

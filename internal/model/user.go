package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a read-only projection of the platform user table; grouphub
// only needs display data for member lists and leaderboards.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DisplayName string    `gorm:"type:varchar(100);not null" json:"display_name"`
	AvatarURL   string    `gorm:"type:text" json:"avatar_url"`
	CreatedAt   time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }

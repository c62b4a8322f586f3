package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GroupRole int

const (
	RoleOwner  GroupRole = 1
	RoleAdmin  GroupRole = 2
	RoleMember GroupRole = 3
)

func (r GroupRole) String() string {
	switch r {
	case RoleOwner:
		return "owner"
	case RoleAdmin:
		return "admin"
	case RoleMember:
		return "member"
	}
	return "unknown"
}

type GroupMembership struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	GroupID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"group_id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Role      GroupRole      `gorm:"type:smallint;not null;default:3" json:"role"`
	JoinedAt  time.Time      `gorm:"not null" json:"joined_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (GroupMembership) TableName() string { return "group_memberships" }

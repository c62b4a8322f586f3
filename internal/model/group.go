package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PeriodType int

const (
	PeriodDaily   PeriodType = 1
	PeriodWeekly  PeriodType = 2
	PeriodMonthly PeriodType = 3
	PeriodCustom  PeriodType = 4
)

func (p PeriodType) Valid() bool {
	return p >= PeriodDaily && p <= PeriodCustom
}

type Group struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string         `gorm:"type:varchar(50);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	CreatorID   uuid.UUID      `gorm:"type:uuid;not null" json:"creator_id"`
	IsPublic    bool           `gorm:"not null;default:false" json:"is_public"`
	JoinCode    *string        `gorm:"type:varchar(8)" json:"-"`
	PeriodType  PeriodType     `gorm:"type:smallint;not null;default:1" json:"period_type"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Derived from group_memberships on read, never written through the entity.
	MemberCount int64 `gorm:"-" json:"member_count"`
}

func (Group) TableName() string { return "groups" }

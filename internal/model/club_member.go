package model

import (
	"time"
)

// ClubMember joins a club to one normalized ENS name.
//
// The (club_name, name) pair is unique; adds are idempotent inserts on that
// composite key and rows are never updated in place.
type ClubMember struct {
	ID uint32 `gorm:"column:id;primaryKey;autoIncrement"`

	ClubName string `gorm:"column:club_name;type:VARCHAR(50);not null;uniqueIndex:idx_club_member"`
	Name     string `gorm:"column:name;type:VARCHAR(255);not null;uniqueIndex:idx_club_member"`

	AddedAt time.Time `gorm:"column:added_at;not null;autoCreateTime"`
}

// TableName specifies the table name for ClubMember
func (*ClubMember) TableName() string {
	return "club_members"
}

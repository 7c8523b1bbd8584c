package model

import (
	"time"
)

// ClubClassifications is the fixed vocabulary of classification tags a club
// may carry. Requests referencing a tag outside this list are rejected at
// validation time.
var ClubClassifications = []string{
	"community",
	"collection",
	"numbers",
	"letters",
	"words",
	"emoji",
	"curated",
}

// IsValidClassification reports whether tag belongs to the fixed vocabulary.
func IsValidClassification(tag string) bool {
	for _, c := range ClubClassifications {
		if c == tag {
			return true
		}
	}
	return false
}

// Club is a named, curated collection of ENS names.
//
// NameCount is denormalized from the club_members table and maintained by a
// database trigger. Application code must never write it; it recomputes from
// the membership set inside the same transaction as the mutation.
type Club struct {
	// Primary key
	ID uint32 `gorm:"column:id;primaryKey;autoIncrement"`

	// Core fields
	Name            string   `gorm:"column:name;type:VARCHAR(50);not null;uniqueIndex:idx_club_name"` // slug, lowercase alphanumeric + underscore
	DisplayName     string   `gorm:"column:display_name;type:VARCHAR(100)"`
	Description     string   `gorm:"column:description;type:VARCHAR(500)"`
	Classifications []string `gorm:"column:classifications;type:text;serializer:json"`

	// Trigger-maintained membership cardinality (read-only for the app)
	NameCount int64 `gorm:"column:name_count;not null;default:0"`

	// Opaque storage pointers into the image bucket
	AvatarImageKey *string `gorm:"column:avatar_image_key;type:VARCHAR(255)"`
	HeaderImageKey *string `gorm:"column:header_image_key;type:VARCHAR(255)"`

	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

// TableName specifies the table name for Club
func (*Club) TableName() string {
	return "clubs"
}

// NewClub creates a new Club instance
func NewClub(name, displayName, description string, classifications []string) *Club {
	return &Club{
		Name:            name,
		DisplayName:     displayName,
		Description:     description,
		Classifications: classifications,
	}
}

package model

import (
	"time"
)

// ENSName is one row of the local directory of known/registered ENS names.
// It is populated out-of-band from the upstream marketplace; the reconciler
// only reads it to validate membership adds. A club membership may reference
// a name that is missing here; that is a tolerated state, not corruption.
type ENSName struct {
	ID uint32 `gorm:"column:id;primaryKey;autoIncrement"`

	Name  string `gorm:"column:name;type:VARCHAR(255);not null;uniqueIndex:idx_ens_name"` // normalized form
	Owner string `gorm:"column:owner;type:VARCHAR(64)"`

	ExpiresAt *time.Time `gorm:"column:expires_at"`
	CreatedAt time.Time  `gorm:"column:created_at;not null"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null"`
}

// TableName specifies the table name for ENSName
func (*ENSName) TableName() string {
	return "ens_names"
}

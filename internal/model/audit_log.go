package model

import (
	"time"

	"gorm.io/datatypes"
)

// Audit log operations
const (
	AuditInsert = "INSERT"
	AuditUpdate = "UPDATE"
	AuditDelete = "DELETE"
)

// Audited table names
const (
	AuditTableClubs       = "clubs"
	AuditTableClubMembers = "club_members"
)

// AuditLog is one immutable row of the append-only change ledger.
//
// Rows are written exclusively by database triggers on the clubs and
// club_members tables; the application only reads them. ActorAddress comes
// from the transaction-local app.actor_address setting stamped by
// database.WithActorTransaction; nil means the change was
// system/trigger-originated.
type AuditLog struct {
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`

	Table     string `gorm:"column:table_name;type:VARCHAR(64);not null;index"`
	Operation string `gorm:"column:operation;type:VARCHAR(16);not null;index"`

	// Stable identifier for the changed row: the club name, or
	// "club:name" for memberships.
	RecordKey string `gorm:"column:record_key;type:VARCHAR(320);not null;index"`

	// Full row snapshots; nil depending on operation (no old on INSERT,
	// no new on DELETE).
	OldData datatypes.JSON `gorm:"column:old_data"`
	NewData datatypes.JSON `gorm:"column:new_data"`

	ActorAddress *string `gorm:"column:actor_address;type:VARCHAR(64);index"`

	CreatedAt time.Time `gorm:"column:created_at;not null;index"`
}

// TableName specifies the table name for AuditLog
func (*AuditLog) TableName() string {
	return "audit_log"
}

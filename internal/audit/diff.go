package audit

import (
	"encoding/json"

	"github.com/enslabs/clubs-admin-api/internal/model"
)

// FieldChange is one changed column in an UPDATE entry, ready for
// "field: old to new" rendering.
type FieldChange struct {
	Field string `json:"field"`
	Old   any    `json:"old"`
	New   any    `json:"new"`
}

// Changes computes the set of meaningfully changed fields for an UPDATE
// entry by comparing the old and new snapshots value by value. Bookkeeping
// columns (created_at, updated_at, name_count, added_at) are excluded, so a
// trigger-driven counter bump diffs to nothing.
//
// Non-UPDATE entries and undecodable snapshots diff to nil.
func Changes(entry *model.AuditLog) []FieldChange {
	if entry.Operation != model.AuditUpdate {
		return nil
	}

	switch entry.Table {
	case model.AuditTableClubs:
		oldSnap, err := decodeClubSnapshot(entry.OldData)
		if err != nil || oldSnap == nil {
			return nil
		}
		newSnap, err := decodeClubSnapshot(entry.NewData)
		if err != nil || newSnap == nil {
			return nil
		}
		return diffClub(oldSnap, newSnap)

	case model.AuditTableClubMembers:
		oldSnap, err := decodeMembershipSnapshot(entry.OldData)
		if err != nil || oldSnap == nil {
			return nil
		}
		newSnap, err := decodeMembershipSnapshot(entry.NewData)
		if err != nil || newSnap == nil {
			return nil
		}
		return diffMembership(oldSnap, newSnap)
	}

	return nil
}

func diffClub(oldSnap, newSnap *ClubSnapshot) []FieldChange {
	var changes []FieldChange

	appendChange(&changes, "name", oldSnap.Name, newSnap.Name)
	appendChange(&changes, "display_name", stringValue(oldSnap.DisplayName), stringValue(newSnap.DisplayName))
	appendChange(&changes, "description", stringValue(oldSnap.Description), stringValue(newSnap.Description))
	appendChange(&changes, "classifications", rawValue(oldSnap.Classifications), rawValue(newSnap.Classifications))
	appendChange(&changes, "avatar_image_key", stringValue(oldSnap.AvatarImageKey), stringValue(newSnap.AvatarImageKey))
	appendChange(&changes, "header_image_key", stringValue(oldSnap.HeaderImageKey), stringValue(newSnap.HeaderImageKey))
	// name_count, created_at, updated_at are bookkeeping, never diffed

	return changes
}

func diffMembership(oldSnap, newSnap *MembershipSnapshot) []FieldChange {
	var changes []FieldChange

	appendChange(&changes, "club_name", oldSnap.ClubName, newSnap.ClubName)
	appendChange(&changes, "name", oldSnap.Name, newSnap.Name)
	// added_at is bookkeeping, never diffed

	return changes
}

func appendChange(changes *[]FieldChange, field string, oldValue, newValue any) {
	if canonicalJSON(oldValue) == canonicalJSON(newValue) {
		return
	}
	*changes = append(*changes, FieldChange{Field: field, Old: oldValue, New: newValue})
}

// canonicalJSON gives a stable serialization for deep-equality comparison,
// so e.g. a nil pointer and JSON null compare equal.
func canonicalJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// stringValue unwraps a nullable column for display; JSON null stays nil.
func stringValue(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// rawValue decodes a raw JSON fragment into a comparable Go value. The
// round trip normalizes whitespace and key order.
func rawValue(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

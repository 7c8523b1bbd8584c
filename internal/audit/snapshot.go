package audit

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// Row snapshots in old_data/new_data are written by the audit triggers as
// to_jsonb of the full row, keyed by column name. Decoding into a typed
// snapshot per table keeps the field diff exhaustive instead of probing an
// open map.

// ClubSnapshot mirrors one clubs row as captured in an audit entry.
type ClubSnapshot struct {
	Name            string          `json:"name"`
	DisplayName     *string         `json:"display_name"`
	Description     *string         `json:"description"`
	Classifications json.RawMessage `json:"classifications"`
	NameCount       int64           `json:"name_count"`
	AvatarImageKey  *string         `json:"avatar_image_key"`
	HeaderImageKey  *string         `json:"header_image_key"`

	// bookkeeping columns, captured but never diffed
	CreatedAt json.RawMessage `json:"created_at"`
	UpdatedAt json.RawMessage `json:"updated_at"`
}

// MembershipSnapshot mirrors one club_members row as captured in an audit
// entry. Membership rows are insert/delete only, so UPDATE diffs on this
// table should never occur in practice.
type MembershipSnapshot struct {
	ID       int64  `json:"id"`
	ClubName string `json:"club_name"`
	Name     string `json:"name"`

	AddedAt json.RawMessage `json:"added_at"`
}

func decodeClubSnapshot(data datatypes.JSON) (*ClubSnapshot, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var snap ClubSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode club snapshot: %w", err)
	}
	return &snap, nil
}

func decodeMembershipSnapshot(data datatypes.JSON) (*MembershipSnapshot, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var snap MembershipSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode membership snapshot: %w", err)
	}
	return &snap, nil
}

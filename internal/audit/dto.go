package audit

import (
	"encoding/json"
	"time"

	"github.com/enslabs/clubs-admin-api/internal/shared/handler"
)

// SystemActor is what the API reports for entries with no attribution.
const SystemActor = "system"

type EventResponse struct {
	ID        int64     `json:"id"`
	Table     string    `json:"table"`
	Operation string    `json:"operation"`
	RecordKey string    `json:"recordKey"`
	Actor     string    `json:"actor"`
	CreatedAt time.Time `json:"createdAt"`

	OldData json.RawMessage `json:"oldData,omitempty"`
	NewData json.RawMessage `json:"newData,omitempty"`

	Changes   []FieldChange   `json:"changes,omitempty"`
	Triggered []EventResponse `json:"triggered,omitempty"`
}

type ActivityResponse struct {
	Entries    []EventResponse    `json:"entries"`
	Pagination handler.Pagination `json:"pagination"`
}

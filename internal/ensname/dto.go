package ensname

import (
	"time"

	"github.com/enslabs/clubs-admin-api/internal/grails"
)

// LookupResponse combines the local directory view of a name with the
// upstream market view. Either side may be absent: a name can be known
// locally with no market data, or listed upstream before the directory
// catches up.
type LookupResponse struct {
	Name        string          `json:"name"`
	InDirectory bool            `json:"inDirectory"`
	Owner       string          `json:"owner,omitempty"`
	ExpiresAt   *time.Time      `json:"expiresAt,omitempty"`
	Market      *grails.Listing `json:"market,omitempty"`
}

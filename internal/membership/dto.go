package membership

import (
	"time"

	"github.com/enslabs/clubs-admin-api/internal/shared/handler"
)

type NamesRequest struct {
	Names []string `json:"names" binding:"required,min=1"`
}

// InvalidFormatEntry explains why one submitted name was rejected at the
// format gate, including the canonical form when one exists.
type InvalidFormatEntry struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// InvalidDetails splits rejected names by sub-reason: names that fail
// normalization vs. names that normalize fine but are unknown to the
// directory of registered ENS names.
type InvalidDetails struct {
	InvalidFormat []InvalidFormatEntry `json:"invalidFormat"`
	NotInDatabase []string             `json:"notInDatabase"`
}

type AddNamesResponse struct {
	Success      bool            `json:"success"`
	Added        int64           `json:"added"`
	Skipped      int64           `json:"skipped"`
	InvalidNames []string        `json:"invalidNames,omitempty"`
	Details      *InvalidDetails `json:"details,omitempty"`
}

type RemoveNamesResponse struct {
	Success bool  `json:"success"`
	Removed int64 `json:"removed"`
}

type MemberResponse struct {
	Name    string    `json:"name"`
	AddedAt time.Time `json:"addedAt"`
}

type ListMembersResponse struct {
	Members    []MemberResponse   `json:"members"`
	Pagination handler.Pagination `json:"pagination"`
}

type InvalidNameEntry struct {
	Name    string    `json:"name"`
	Reason  string    `json:"reason"`
	AddedAt time.Time `json:"addedAt"`
}

type ScanResponse struct {
	TotalScanned int                `json:"totalScanned"`
	InvalidCount int                `json:"invalidCount"`
	InvalidNames []InvalidNameEntry `json:"invalidNames"`
}

package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/enslabs/clubs-admin-api/internal/model"
	"github.com/enslabs/clubs-admin-api/internal/shared/handler"
	"gorm.io/gorm"
)

type AuditService struct {
	db              *gorm.DB
	auditRepository *AuditRepository
}

func NewAuditService(db *gorm.DB, auditRepository *AuditRepository) *AuditService {
	return &AuditService{
		db:              db,
		auditRepository: auditRepository,
	}
}

// Activity reads one page of the audit ledger and folds it into grouped,
// display-ready events. Pagination counts raw ledger rows: grouping can only
// shrink a page, so offsets stay stable across reads.
func (s *AuditService) Activity(ctx context.Context, filter Filter, page, limit int) (*ActivityResponse, error) {
	entries, total, err := s.auditRepository.List(ctx, s.db, filter, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}

	events := Group(entries)

	responses := make([]EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, toEventResponse(event))
	}

	return &ActivityResponse{
		Entries:    responses,
		Pagination: handler.NewPagination(page, limit, total),
	}, nil
}

func toEventResponse(event GroupedEvent) EventResponse {
	response := eventFields(event.Entry)
	response.Changes = event.Changes

	for _, sub := range event.Triggered {
		subResponse := eventFields(sub.Entry)
		subResponse.Changes = sub.Changes
		response.Triggered = append(response.Triggered, subResponse)
	}

	return response
}

func eventFields(entry *model.AuditLog) EventResponse {
	actor := SystemActor
	if entry.ActorAddress != nil {
		actor = *entry.ActorAddress
	}

	return EventResponse{
		ID:        entry.ID,
		Table:     entry.Table,
		Operation: entry.Operation,
		RecordKey: entry.RecordKey,
		Actor:     actor,
		CreatedAt: entry.CreatedAt,
		OldData:   json.RawMessage(entry.OldData),
		NewData:   json.RawMessage(entry.NewData),
	}
}

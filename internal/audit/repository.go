package audit

import (
	"context"
	"strings"
	"time"

	"github.com/enslabs/clubs-admin-api/internal/model"
	"gorm.io/gorm"
)

// Filter narrows the audit ledger read. Zero values mean "no filter".
type Filter struct {
	Table      string // clubs | club_members
	Operation  string // INSERT | UPDATE | DELETE
	Actor      string // admin wallet address, matched case-insensitively
	HideSystem bool   // drop entries with no actor attribution
	Club       string // correlate by club name (club rows and its memberships)
	Name       string // correlate by member name
	Days       int    // recency window; 0 means unbounded
}

type AuditRepository struct{}

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

// List reads one page of the ledger, newest first, with the total count of
// matching rows alongside. The ledger is append-only; this is the only
// access path the application has to it.
func (r *AuditRepository) List(ctx context.Context, db *gorm.DB, filter Filter, offset, limit int) ([]*model.AuditLog, int64, error) {
	query := r.apply(db.WithContext(ctx).Model(&model.AuditLog{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []*model.AuditLog
	err := query.
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *AuditRepository) apply(query *gorm.DB, filter Filter) *gorm.DB {
	if filter.Table != "" {
		query = query.Where("table_name = ?", filter.Table)
	}
	if filter.Operation != "" {
		query = query.Where("operation = ?", strings.ToUpper(filter.Operation))
	}
	if filter.Actor != "" {
		query = query.Where("LOWER(actor_address) = ?", strings.ToLower(filter.Actor))
	}
	if filter.HideSystem {
		query = query.Where("actor_address IS NOT NULL")
	}
	if filter.Club != "" {
		// club rows key on the bare name, membership rows on "club:name"
		club := strings.ToLower(filter.Club)
		query = query.Where("LOWER(record_key) = ? OR LOWER(record_key) LIKE ?", club, club+":%")
	}
	if filter.Name != "" {
		query = query.Where("LOWER(record_key) LIKE ?", "%:"+strings.ToLower(filter.Name))
	}
	if filter.Days > 0 {
		cutoff := time.Now().AddDate(0, 0, -filter.Days)
		query = query.Where("created_at >= ?", cutoff)
	}
	return query
}

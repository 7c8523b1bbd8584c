package membership

import (
	"context"
	"strings"

	"github.com/enslabs/clubs-admin-api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MembershipRepository struct{}

func NewMembershipRepository() *MembershipRepository {
	return &MembershipRepository{}
}

// InsertIgnoreDuplicates inserts memberships, silently skipping rows whose
// (club_name, name) pair already exists. The returned count is the number of
// rows actually written, which is how concurrent identical requests stay
// safe: at most one inserts, the others see zero affected rows.
func (r *MembershipRepository) InsertIgnoreDuplicates(ctx context.Context, db *gorm.DB, members []model.ClubMember) (int64, error) {
	if len(members) == 0 {
		return 0, nil
	}

	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&members)

	return result.RowsAffected, result.Error
}

// DeleteNames removes memberships case-insensitively and reports how many
// rows were actually deleted. Names that were never members delete nothing
// and are not errors.
func (r *MembershipRepository) DeleteNames(ctx context.Context, db *gorm.DB, clubName string, names []string) (int64, error) {
	if len(names) == 0 {
		return 0, nil
	}

	lowered := make([]string, 0, len(names))
	for _, n := range names {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(n)))
	}

	result := db.WithContext(ctx).
		Where("club_name = ? AND LOWER(name) IN ?", clubName, lowered).
		Delete(&model.ClubMember{})

	return result.RowsAffected, result.Error
}

func (r *MembershipRepository) ListByClub(ctx context.Context, db *gorm.DB, clubName string, offset, limit int) ([]model.ClubMember, int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&model.ClubMember{}).
		Where("club_name = ?", clubName).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var members []model.ClubMember
	err = db.WithContext(ctx).
		Where("club_name = ?", clubName).
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&members).Error
	if err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

// AllByClub loads every membership of one club, for the invalid-name scan.
func (r *MembershipRepository) AllByClub(ctx context.Context, db *gorm.DB, clubName string) ([]model.ClubMember, error) {
	var members []model.ClubMember
	err := db.WithContext(ctx).
		Where("club_name = ?", clubName).
		Order("added_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *MembershipRepository) CountByClub(ctx context.Context, db *gorm.DB, clubName string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&model.ClubMember{}).
		Where("club_name = ?", clubName).
		Count(&total).Error
	return total, err
}

package club

import (
	"context"

	"github.com/enslabs/clubs-admin-api/internal/model"
	"gorm.io/gorm"
)

type ClubRepository struct{}

func NewClubRepository() *ClubRepository {
	return &ClubRepository{}
}

func (r *ClubRepository) IsExist(ctx context.Context, db *gorm.DB, name string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.Club{}).
		Where("name = ?", name).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *ClubRepository) Create(ctx context.Context, db *gorm.DB, club *model.Club) error {
	return db.WithContext(ctx).Create(club).Error
}

func (r *ClubRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*model.Club, error) {
	var club model.Club
	err := db.WithContext(ctx).Where("name = ?", name).First(&club).Error
	if err != nil {
		return nil, err
	}
	return &club, nil
}

func (r *ClubRepository) List(ctx context.Context, db *gorm.DB, offset, limit int) ([]model.Club, int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&model.Club{}).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var clubs []model.Club
	err = db.WithContext(ctx).
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&clubs).Error
	if err != nil {
		return nil, 0, err
	}

	return clubs, total, nil
}

// UpdateFields applies a partial update. name_count is trigger-owned and must
// never appear in fields.
func (r *ClubRepository) UpdateFields(ctx context.Context, db *gorm.DB, name string, fields map[string]interface{}) (int64, error) {
	result := db.WithContext(ctx).
		Model(&model.Club{}).
		Where("name = ?", name).
		Updates(fields)

	return result.RowsAffected, result.Error
}

// Delete removes the club row. Memberships are deleted first by the service
// inside the same transaction so both removals share one audit attribution.
func (r *ClubRepository) Delete(ctx context.Context, db *gorm.DB, name string) (int64, error) {
	result := db.WithContext(ctx).
		Where("name = ?", name).
		Delete(&model.Club{})

	return result.RowsAffected, result.Error
}

package ensname

import (
	"context"
	"strings"

	"github.com/enslabs/clubs-admin-api/internal/model"
	"gorm.io/gorm"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

// FilterKnown returns the subset of names that exist in the local directory
// of registered ENS names, keyed by lowercase form. The lookup is
// case-insensitive; population/freshness of the directory is out of scope.
func (r *Repository) FilterKnown(ctx context.Context, db *gorm.DB, names []string) (map[string]bool, error) {
	if len(names) == 0 {
		return map[string]bool{}, nil
	}

	lowered := make([]string, 0, len(names))
	for _, n := range names {
		lowered = append(lowered, strings.ToLower(n))
	}

	var found []string
	err := db.WithContext(ctx).
		Model(&model.ENSName{}).
		Where("LOWER(name) IN ?", lowered).
		Pluck("name", &found).Error
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(found))
	for _, n := range found {
		known[strings.ToLower(n)] = true
	}
	return known, nil
}

// FindByName looks up one directory row case-insensitively.
func (r *Repository) FindByName(ctx context.Context, db *gorm.DB, name string) (*model.ENSName, error) {
	var row model.ENSName
	err := db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

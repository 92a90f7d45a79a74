package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/roastline/beanbot/internal/domain/entity"
)

type InventoryStorage struct {
	db *gorm.DB
}

func NewInventoryStorage(db *gorm.DB) *InventoryStorage {
	return &InventoryStorage{
		db: db,
	}
}

func (s *InventoryStorage) GetByOwner(ctx context.Context, ownerID string) ([]entity.InventoryItem, error) {
	var items []entity.InventoryItem
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Find(&items).Error
	return items, err
}

// Owners returns the distinct owner ids that have at least one
// inventory item, for the periodic full rescan.
func (s *InventoryStorage) Owners(ctx context.Context) ([]string, error) {
	var owners []string
	err := s.db.WithContext(ctx).
		Model(&entity.InventoryItem{}).
		Distinct("owner_id").
		Pluck("owner_id", &owners).Error
	return owners, err
}

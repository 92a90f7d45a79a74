package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/roastline/beanbot/internal/domain/entity"
)

type ListingStorage struct {
	db *gorm.DB
}

func NewListingStorage(db *gorm.DB) *ListingStorage {
	return &ListingStorage{
		db: db,
	}
}

func (s *ListingStorage) Get(ctx context.Context, id string) (*entity.Listing, error) {
	var listing entity.Listing
	err := s.db.WithContext(ctx).First(&listing, "id = ?", id).Error
	return &listing, err
}

package service

import (
	"context"

	"github.com/roastline/beanbot/internal/domain/entity"
)

type ListingStorage interface {
	Get(ctx context.Context, id string) (*entity.Listing, error)
}

type ListingService struct {
	storage ListingStorage
}

func NewListingService(storage ListingStorage) *ListingService {
	return &ListingService{
		storage: storage,
	}
}

func (s *ListingService) Get(ctx context.Context, id string) (*entity.Listing, error) {
	return s.storage.Get(ctx, id)
}

package service

import (
	"context"

	"github.com/roastline/beanbot/internal/domain/dto"
	"github.com/roastline/beanbot/internal/domain/entity"
)

type InventoryStorage interface {
	GetByOwner(ctx context.Context, ownerID string) ([]entity.InventoryItem, error)
	Owners(ctx context.Context) ([]string, error)
}

type InventoryService struct {
	storage InventoryStorage
}

func NewInventoryService(storage InventoryStorage) *InventoryService {
	return &InventoryService{
		storage: storage,
	}
}

// Classify buckets an item by its remaining quantity against the two
// configured cutoffs: at or below MinAlert is critical, at or below
// WarnLevel is warning, anything above is healthy.
func Classify(item entity.InventoryItem) dto.StockBucket {
	switch {
	case item.Quantity <= item.MinAlert:
		return dto.StockCritical
	case item.Quantity <= item.WarnLevel:
		return dto.StockWarning
	default:
		return dto.StockHealthy
	}
}

// Scan loads the owner's full inventory and classifies every item.
func (s *InventoryService) Scan(ctx context.Context, ownerID string) (*dto.StockReport, error) {
	items, err := s.storage.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	report := &dto.StockReport{OwnerID: ownerID}
	for _, item := range items {
		switch Classify(item) {
		case dto.StockCritical:
			report.Critical = append(report.Critical, item)
		case dto.StockWarning:
			report.Warning = append(report.Warning, item)
		default:
			report.Healthy = append(report.Healthy, item)
		}
	}

	return report, nil
}

func (s *InventoryService) Owners(ctx context.Context) ([]string, error) {
	return s.storage.Owners(ctx)
}

package dto

import "github.com/roastline/beanbot/internal/domain/entity"

type StockBucket string

const (
	StockHealthy  StockBucket = "healthy"
	StockWarning  StockBucket = "warning"
	StockCritical StockBucket = "critical"
)

// StockReport is the result of one inventory scan for one owner, with
// every item classified into exactly one bucket.
type StockReport struct {
	OwnerID  string
	Critical []entity.InventoryItem
	Warning  []entity.InventoryItem
	Healthy  []entity.InventoryItem
}

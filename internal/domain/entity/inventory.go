package entity

import "time"

type InventoryItem struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time
	OwnerID   string  `gorm:"not null;type:uuid;index" json:"owner_id"`
	Name      string  `gorm:"not null" json:"name"`
	Quantity  float64 `json:"quantity"`
	MinAlert  float64 `json:"min_alert"`
	WarnLevel float64 `json:"warn_level"`
}

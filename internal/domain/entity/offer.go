package entity

import "time"

type Offer struct {
	ID         string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	SupplierID string  `gorm:"not null;type:uuid" json:"supplier_id"`
	Title      string  `gorm:"not null" json:"title"`
	Price      float64 `json:"price"`
	IsActive   bool    `json:"is_active"`
}

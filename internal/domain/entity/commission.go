package entity

import "time"

type CommissionStatus string

const (
	CommissionStatusPending   CommissionStatus = "pending"
	CommissionStatusCompleted CommissionStatus = "completed"
	CommissionStatusCancelled CommissionStatus = "cancelled"
)

type Commission struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time
	OrderID   string           `gorm:"not null;type:uuid" json:"order_id"`
	FarmerID  string           `gorm:"not null;type:uuid" json:"farmer_id"`
	Amount    float64          `gorm:"not null" json:"amount"`
	Status    CommissionStatus `gorm:"not null" json:"status"`
}

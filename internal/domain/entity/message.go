package entity

import "time"

type Message struct {
	ID         string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CreatedAt  time.Time
	SenderID   string `gorm:"not null;type:uuid" json:"sender_id"`
	ReceiverID string `gorm:"not null;type:uuid" json:"receiver_id"`
	Body       string `gorm:"not null" json:"body"`
}

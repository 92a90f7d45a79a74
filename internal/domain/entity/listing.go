package entity

import (
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Listing struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
	SellerID    string         `gorm:"not null;type:uuid" json:"seller_id"`
	Name        string         `gorm:"not null" json:"name"`
	Origin      string         `json:"origin"`
	Process     string         `json:"process"`
	Price       float64        `gorm:"not null" json:"price"`
	QuantityKg  float64        `json:"quantity_kg"`
	IsActive    bool           `json:"is_active"`
	FlavorNotes pq.StringArray `gorm:"type:text[]" json:"flavor_notes"`
}

// Link generates a deep link to the listing in the bot
//
// The link is in the format https://t.me/<botName>?start=listing_<listingID>
func (l *Listing) Link(botName string) string {
	return fmt.Sprintf("https://t.me/%s?start=listing_%s", botName, l.ID)
}

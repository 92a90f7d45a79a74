package entity

import "time"

type Role string

const (
	RoleFarmer      Role = "farmer"
	RoleSupplier    Role = "supplier"
	RoleRoaster     Role = "roaster"
	RoleCafe        Role = "cafe"
	RoleMaintenance Role = "maintenance"
	RoleAdmin       Role = "admin"
)

type User struct {
	ID         string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	TelegramID int64  `gorm:"uniqueIndex;not null" json:"telegram_id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Role       Role   `gorm:"not null" json:"role"`
	Locale     string `json:"locale"`
	IsBanned   bool   `json:"is_banned"`
}

package entity

import "time"

type ReportStatus string

const (
	ReportStatusOpen   ReportStatus = "open"
	ReportStatusSent   ReportStatus = "sent"
	ReportStatusFailed ReportStatus = "failed"
)

// MaintenanceReport is a machine-maintenance report filed by a cafe or
// roaster and routed to the maintenance team.
type MaintenanceReport struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time
	AuthorID  string       `gorm:"not null;type:uuid" json:"author_id"`
	Subject   string       `gorm:"not null" json:"subject"`
	Status    ReportStatus `gorm:"not null" json:"status"`
}

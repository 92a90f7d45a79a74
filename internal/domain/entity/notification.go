package entity

import "time"

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// NotificationIntent is the resolved notification ready to deliver,
// built by an observer once its relevance predicate has passed.
type NotificationIntent struct {
	Title        string
	Body         string
	URL          string
	Tag          string
	Severity     Severity
	Duration     time.Duration
	HighPriority bool
	Photo        []byte
}

// PermissionState is a user's push opt-in status. Denied and
// unsupported are terminal for the session.
type PermissionState string

const (
	PermissionUnrequested PermissionState = "unrequested"
	PermissionGranted     PermissionState = "granted"
	PermissionDenied      PermissionState = "denied"
	PermissionUnsupported PermissionState = "unsupported"
)

// SentNotification records a delivered notification for auditing
type SentNotification struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"not null"`
	ChatID    int64     `gorm:"not null"`
	Tag       string
	Channel   string `gorm:"not null"`
}

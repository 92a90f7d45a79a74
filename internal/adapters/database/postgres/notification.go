package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/roastline/beanbot/internal/domain/entity"
)

type NotificationStorage struct {
	db *gorm.DB
}

func NewNotificationStorage(db *gorm.DB) *NotificationStorage {
	return &NotificationStorage{
		db: db,
	}
}

func (s *NotificationStorage) Create(ctx context.Context, notification *entity.SentNotification) error {
	return s.db.WithContext(ctx).Create(notification).Error
}

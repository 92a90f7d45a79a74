package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/roastline/beanbot/internal/domain/entity"
)

type UserStorage struct {
	db *gorm.DB
}

func NewUserStorage(db *gorm.DB) *UserStorage {
	return &UserStorage{
		db: db,
	}
}

func (s *UserStorage) Get(ctx context.Context, id string) (*entity.User, error) {
	var user entity.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	return &user, err
}

func (s *UserStorage) GetByTelegramID(ctx context.Context, telegramID int64) (*entity.User, error) {
	var user entity.User
	err := s.db.WithContext(ctx).First(&user, "telegram_id = ?", telegramID).Error
	return &user, err
}

func (s *UserStorage) GetByRoles(ctx context.Context, roles ...entity.Role) ([]entity.User, error) {
	var users []entity.User
	err := s.db.WithContext(ctx).
		Where("role IN ? AND is_banned = false", roles).
		Find(&users).Error
	return users, err
}

// Role reads the current role of a user straight from the database so
// authorization checks never rely on a cached value.
func (s *UserStorage) Role(ctx context.Context, id string) (entity.Role, error) {
	var user entity.User
	err := s.db.WithContext(ctx).Select("role").First(&user, "id = ?", id).Error
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

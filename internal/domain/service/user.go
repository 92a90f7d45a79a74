package service

import (
	"context"

	"github.com/roastline/beanbot/internal/domain/entity"
)

type UserStorage interface {
	Get(ctx context.Context, id string) (*entity.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*entity.User, error)
	GetByRoles(ctx context.Context, roles ...entity.Role) ([]entity.User, error)
	Role(ctx context.Context, id string) (entity.Role, error)
}

type UserService struct {
	storage UserStorage
}

func NewUserService(storage UserStorage) *UserService {
	return &UserService{
		storage: storage,
	}
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	return s.storage.Get(ctx, id)
}

func (s *UserService) GetByTelegramID(ctx context.Context, telegramID int64) (*entity.User, error) {
	return s.storage.GetByTelegramID(ctx, telegramID)
}

func (s *UserService) GetByRoles(ctx context.Context, roles ...entity.Role) ([]entity.User, error) {
	return s.storage.GetByRoles(ctx, roles...)
}

func (s *UserService) Role(ctx context.Context, id string) (entity.Role, error) {
	return s.storage.Role(ctx, id)
}

package perms

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Storage persists each user's push permission answer across restarts.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func (s *Storage) Get(chatID int64) (string, error) {
	return s.redis.Get(context.Background(), fmt.Sprintf("%d", chatID)).Result()
}

func (s *Storage) Set(chatID int64, state string) {
	s.redis.Set(context.Background(), fmt.Sprintf("%d", chatID), state, 0)
}

package tags

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage maps (chat, tag) to the id of the last push message sent with
// that tag, so a later push with the same tag replaces the message
// instead of stacking a new one.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func (s *Storage) Get(chatID int64, tag string) (int, error) {
	return s.redis.Get(context.Background(), fmt.Sprintf("%d:%s", chatID, tag)).Int()
}

func (s *Storage) Set(chatID int64, tag string, messageID int, expiration time.Duration) {
	s.redis.Set(context.Background(), fmt.Sprintf("%d:%s", chatID, tag), messageID, expiration)
}

func (s *Storage) Clear(chatID int64, tag string) {
	s.redis.Del(context.Background(), fmt.Sprintf("%d:%s", chatID, tag))
}

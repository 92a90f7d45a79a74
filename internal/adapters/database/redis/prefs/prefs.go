package prefs

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	soundKey  = "sound"
	localeKey = "locale"
)

// Storage keeps per-user preferences that survive bot restarts: the
// audio cue flag and the preferred locale.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

// SoundEnabled reports whether audible notifications are enabled for
// the chat. Sound is on unless the user has switched it off.
func (s *Storage) SoundEnabled(chatID int64) bool {
	val, err := s.redis.Get(context.Background(), fmt.Sprintf("%s:%d", soundKey, chatID)).Result()
	if err != nil {
		return true
	}
	return val != "off"
}

func (s *Storage) SetSoundEnabled(chatID int64, enabled bool) {
	val := "on"
	if !enabled {
		val = "off"
	}
	s.redis.Set(context.Background(), fmt.Sprintf("%s:%d", soundKey, chatID), val, 0)
}

func (s *Storage) Locale(chatID int64) string {
	val, err := s.redis.Get(context.Background(), fmt.Sprintf("%s:%d", localeKey, chatID)).Result()
	if err != nil {
		return ""
	}
	return val
}

func (s *Storage) SetLocale(chatID int64, locale string) {
	s.redis.Set(context.Background(), fmt.Sprintf("%s:%d", localeKey, chatID), locale, 0)
}

package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/roastline/beanbot/internal/adapters/database/redis/perms"
	"github.com/roastline/beanbot/internal/adapters/database/redis/prefs"
	"github.com/roastline/beanbot/internal/adapters/database/redis/tags"
)

type Client struct {
	Prefs *prefs.Storage
	Tags  *tags.Storage
	Perms *perms.Storage
}

type Options struct {
	Host     string
	Port     string
	Password string
}

func New(opts Options) (*Client, error) {
	prefsStorage := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       0,
	})
	if err := prefsStorage.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping prefs storage: %w", err)
	}

	tagStorage := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       1,
	})
	if err := tagStorage.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping tags storage: %w", err)
	}

	permStorage := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       2,
	})
	if err := permStorage.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping perms storage: %w", err)
	}

	return &Client{
		Prefs: prefs.NewStorage(prefsStorage),
		Tags:  tags.NewStorage(tagStorage),
		Perms: perms.NewStorage(permStorage),
	}, nil
}

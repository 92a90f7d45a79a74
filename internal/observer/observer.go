// Package observer holds the per-concern change observers: each one
// subscribes to a narrow slice of the realtime feed, applies its
// relevance predicate and hands at most one notification per event to
// the delivery services.
package observer

import (
	"context"

	"github.com/roastline/beanbot/internal/adapters/realtime"
	"github.com/roastline/beanbot/internal/domain/entity"
	"github.com/roastline/beanbot/pkg/logger/types"
)

type Observer interface {
	Name() string
	Mount(ctx context.Context) error
	Close()
}

type feed interface {
	Subscribe(sub realtime.Subscription, handler realtime.Handler) (*realtime.Handle, error)
}

type sink interface {
	Show(ctx context.Context, chatID int64, intent entity.NotificationIntent) error
}

type userService interface {
	Get(ctx context.Context, id string) (*entity.User, error)
	GetByRoles(ctx context.Context, roles ...entity.Role) ([]entity.User, error)
	Role(ctx context.Context, id string) (entity.Role, error)
}

type formatter interface {
	TextLocale(locale, key string, args ...interface{}) string
}

// base carries the subscription bookkeeping shared by all observers.
type base struct {
	name   string
	feed   feed
	logger *types.Logger

	handles []*realtime.Handle
}

func (b *base) Name() string {
	return b.name
}

func (b *base) Close() {
	for _, h := range b.handles {
		h.Close()
	}
	b.handles = nil
}

// subscribe opens one feed subscription whose handler is wrapped so a
// failure inside this concern never reaches sibling concerns. The mount
// context is captured per subscription, so a handler left over from an
// earlier mount stays bound to its own cancelled context. Handlers are
// skipped once that context is cancelled: an in-flight lookup finishing
// after teardown must not produce a notification.
func (b *base) subscribe(ctx context.Context, sub realtime.Subscription, fn func(ctx context.Context, ev realtime.Event) error) error {
	handler := func(ev realtime.Event) {
		defer func() {
			if r := recover(); r != nil {
				b.logger.Errorf("%s: panic in handler: %v", b.name, r)
			}
		}()
		if ctx.Err() != nil {
			return
		}
		if err := fn(ctx, ev); err != nil {
			b.logger.Errorf("%s: %v", b.name, err)
		}
	}

	h, err := b.feed.Subscribe(sub, handler)
	if err != nil {
		return err
	}
	b.handles = append(b.handles, h)

	return nil
}

func localeOf(user *entity.User) string {
	if user == nil || user.Locale == "" {
		return "en"
	}
	return user.Locale
}

package observer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/roastline/beanbot/internal/adapters/realtime"
	"github.com/roastline/beanbot/internal/domain/entity"
	"github.com/roastline/beanbot/pkg/logger/types"
)

func testLogger() *types.Logger {
	return &types.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

type activeSub struct {
	sub     realtime.Subscription
	handler realtime.Handler
}

// fakeFeed delivers events synchronously to matching subscriptions,
// applying the same kind filter the real feed does.
type fakeFeed struct {
	mu   sync.Mutex
	subs []activeSub
}

func (f *fakeFeed) Subscribe(sub realtime.Subscription, handler realtime.Handler) (*realtime.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, activeSub{sub: sub, handler: handler})
	return &realtime.Handle{}, nil
}

func (f *fakeFeed) subCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

func (f *fakeFeed) emit(t *testing.T, table string, kind realtime.EventKind, oldRow, newRow interface{}) {
	t.Helper()

	ev := realtime.Event{Table: table, Kind: kind}
	if oldRow != nil {
		raw, err := json.Marshal(oldRow)
		require.NoError(t, err)
		ev.Old = raw
	}
	if newRow != nil {
		raw, err := json.Marshal(newRow)
		require.NoError(t, err)
		ev.New = raw
	}

	f.mu.Lock()
	subs := append([]activeSub(nil), f.subs...)
	f.mu.Unlock()

	for _, s := range subs {
		if s.sub.Table != table {
			continue
		}
		if s.sub.Kind != realtime.KindAll && s.sub.Kind != kind {
			continue
		}
		s.handler(ev)
	}
}

type fakeSink struct {
	mu      sync.Mutex
	intents map[int64][]entity.NotificationIntent
}

func newFakeSink() *fakeSink {
	return &fakeSink{intents: make(map[int64][]entity.NotificationIntent)}
}

func (s *fakeSink) Show(_ context.Context, chatID int64, intent entity.NotificationIntent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intents[chatID] = append(s.intents[chatID], intent)
	return nil
}

func (s *fakeSink) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, intents := range s.intents {
		n += len(intents)
	}
	return n
}

func (s *fakeSink) forChat(chatID int64) []entity.NotificationIntent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.intents[chatID]
}

type fakeUsers struct {
	users map[string]entity.User
	// roles overrides what Role reports, standing in for a role change
	// committed after the user row was listed.
	roles map[string]entity.Role
}

func newFakeUsers(users ...entity.User) *fakeUsers {
	f := &fakeUsers{users: make(map[string]entity.User), roles: make(map[string]entity.Role)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Get(_ context.Context, id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return &u, nil
}

func (f *fakeUsers) GetByRoles(_ context.Context, roles ...entity.Role) ([]entity.User, error) {
	var out []entity.User
	for _, u := range f.users {
		for _, role := range roles {
			if u.Role == role {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeUsers) Role(_ context.Context, id string) (entity.Role, error) {
	if role, ok := f.roles[id]; ok {
		return role, nil
	}
	u, ok := f.users[id]
	if !ok {
		return "", errors.New("user not found")
	}
	return u.Role, nil
}

type fakeFormatter struct{}

func (fakeFormatter) TextLocale(locale, key string, args ...interface{}) string {
	if len(args) == 0 {
		return key
	}
	return key + " " + fmt.Sprint(args...)
}

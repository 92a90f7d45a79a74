package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/roastline/beanbot/internal/domain/entity"
	"github.com/roastline/beanbot/pkg/logger/types"
)

func testLogger() *types.Logger {
	return &types.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

type sentMessage struct {
	chatID int64
	what   interface{}
	opts   []interface{}
}

type fakeBot struct {
	mu       sync.Mutex
	sent     []sentMessage
	edits    []sentMessage
	deleted  int
	noChat   map[int64]bool
	failEdit bool
	nextID   int
}

func newFakeBot() *fakeBot {
	return &fakeBot{noChat: make(map[int64]bool)}
}

func (b *fakeBot) ChatByID(id int64) (*tele.Chat, error) {
	if b.noChat[id] {
		return nil, errors.New("chat not found")
	}
	return &tele.Chat{ID: id}, nil
}

func (b *fakeBot) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	chat, _ := to.(*tele.Chat)
	b.sent = append(b.sent, sentMessage{chatID: chat.ID, what: what, opts: opts})
	b.nextID++
	return &tele.Message{ID: b.nextID, Chat: chat}, nil
}

func (b *fakeBot) Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failEdit {
		return nil, errors.New("message to edit not found")
	}
	b.edits = append(b.edits, sentMessage{what: what, opts: opts})
	return &tele.Message{}, nil
}

func (b *fakeBot) Delete(msg tele.Editable) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleted++
	return nil
}

func (b *fakeBot) sentCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sent)
}

func (b *fakeBot) deletedCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.deleted
}

func hasSilent(opts []interface{}) bool {
	for _, opt := range opts {
		if opt == tele.Silent {
			return true
		}
	}
	return false
}

type fakeLayout struct{}

func (fakeLayout) TextLocale(locale, key string, args ...interface{}) string {
	return key
}

func (fakeLayout) MarkupLocale(locale, key string, args ...interface{}) *tele.ReplyMarkup {
	return &tele.ReplyMarkup{}
}

type fakePerms struct {
	mu     sync.Mutex
	states map[int64]string
}

func newFakePerms() *fakePerms {
	return &fakePerms{states: make(map[int64]string)}
}

func (p *fakePerms) Get(chatID int64) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	state, ok := p.states[chatID]
	if !ok {
		return "", errors.New("not found")
	}
	return state, nil
}

func (p *fakePerms) Set(chatID int64, state string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.states[chatID] = state
}

type fakeTags struct {
	mu   sync.Mutex
	tags map[string]int
}

func newFakeTags() *fakeTags {
	return &fakeTags{tags: make(map[string]int)}
}

func (t *fakeTags) key(chatID int64, tag string) string {
	return strconv.FormatInt(chatID, 10) + ":" + tag
}

func (t *fakeTags) Get(chatID int64, tag string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id, ok := t.tags[t.key(chatID, tag)]
	if !ok {
		return 0, errors.New("not found")
	}
	return id, nil
}

func (t *fakeTags) Set(chatID int64, tag string, messageID int, expiration time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tags[t.key(chatID, tag)] = messageID
}

func (t *fakeTags) Clear(chatID int64, tag string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.tags, t.key(chatID, tag))
}

type fakeNotifications struct {
	mu      sync.Mutex
	created []entity.SentNotification
}

func (n *fakeNotifications) Create(_ context.Context, notification *entity.SentNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, *notification)
	return nil
}

type fakeCue struct {
	audible bool
}

func (c fakeCue) Cue(chatID int64) bool {
	return c.audible
}

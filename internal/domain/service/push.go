package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/roastline/beanbot/internal/domain/entity"
	"github.com/roastline/beanbot/pkg/logger/types"
)

const tagExpiration = 48 * time.Hour

type pushBot interface {
	ChatByID(id int64) (*tele.Chat, error)
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type pushFormatter interface {
	TextLocale(locale, key string, args ...interface{}) string
	MarkupLocale(locale, key string, args ...interface{}) *tele.ReplyMarkup
}

type permStorage interface {
	Get(chatID int64) (string, error)
	Set(chatID int64, state string)
}

type tagStorage interface {
	Get(chatID int64, tag string) (int, error)
	Set(chatID int64, tag string, messageID int, expiration time.Duration)
	Clear(chatID int64, tag string)
}

// PushService delivers persistent notifications behind an explicit
// per-user opt-in. Sending while the user has not granted permission is
// a silent no-op. Intents sharing a tag replace the previous message
// for that tag instead of stacking.
type PushService struct {
	bot           pushBot
	layout        pushFormatter
	perms         permStorage
	tags          tagStorage
	audio         cuePlayer
	notifications notificationStorage
	logger        *types.Logger

	mu      sync.Mutex
	states  map[int64]entity.PermissionState
	pending map[int64]struct{}
}

func NewPushService(
	bot pushBot,
	layout pushFormatter,
	perms permStorage,
	tags tagStorage,
	audio cuePlayer,
	notifications notificationStorage,
	logger *types.Logger,
) *PushService {
	return &PushService{
		bot:           bot,
		layout:        layout,
		perms:         perms,
		tags:          tags,
		audio:         audio,
		notifications: notifications,
		logger:        logger,
		states:        make(map[int64]entity.PermissionState),
		pending:       make(map[int64]struct{}),
	}
}

// State returns the user's current permission state, falling back to
// the persisted record and finally to unrequested.
func (s *PushService) State(chatID int64) entity.PermissionState {
	s.mu.Lock()
	if state, ok := s.states[chatID]; ok {
		s.mu.Unlock()
		return state
	}
	s.mu.Unlock()

	stored, err := s.perms.Get(chatID)
	if err != nil {
		return entity.PermissionUnrequested
	}

	state := entity.PermissionState(stored)
	s.mu.Lock()
	s.states[chatID] = state
	s.mu.Unlock()

	return state
}

// RequestPermission asks the user to opt in to push notifications.
// Exactly one prompt is sent: repeated calls while a prompt is
// outstanding do nothing. Granted and unsupported are terminal. A
// denial suppresses automatic prompts, but an explicit user request
// (userInitiated) may ask again.
func (s *PushService) RequestPermission(ctx context.Context, chatID int64, locale string, userInitiated bool) (entity.PermissionState, error) {
	state := s.State(chatID)
	switch state {
	case entity.PermissionGranted, entity.PermissionUnsupported:
		return state, nil
	case entity.PermissionDenied:
		if !userInitiated {
			return state, nil
		}
	}

	s.mu.Lock()
	if _, outstanding := s.pending[chatID]; outstanding {
		s.mu.Unlock()
		return state, nil
	}
	s.pending[chatID] = struct{}{}
	s.mu.Unlock()

	chat, err := s.bot.ChatByID(chatID)
	if err != nil {
		s.setState(chatID, entity.PermissionUnsupported)
		return entity.PermissionUnsupported, nil
	}

	_, err = s.bot.Send(chat,
		s.layout.TextLocale(locale, "push_permission_prompt"),
		s.layout.MarkupLocale(locale, "pushPermission"),
	)
	if err != nil {
		s.mu.Lock()
		delete(s.pending, chatID)
		s.mu.Unlock()
		return state, fmt.Errorf("failed to send permission prompt to %d: %w", chatID, err)
	}

	return state, nil
}

// Grant records the user's opt-in, Deny records the refusal. Denied
// stops automatic prompts until the user asks again themselves.
func (s *PushService) Grant(chatID int64) {
	s.setState(chatID, entity.PermissionGranted)
}

func (s *PushService) Deny(chatID int64) {
	s.setState(chatID, entity.PermissionDenied)
}

func (s *PushService) setState(chatID int64, state entity.PermissionState) {
	s.mu.Lock()
	s.states[chatID] = state
	delete(s.pending, chatID)
	s.mu.Unlock()
	s.perms.Set(chatID, string(state))
}

// Show delivers the intent as a push message. In any state other than
// granted this is a silent no-op.
func (s *PushService) Show(ctx context.Context, chatID int64, intent entity.NotificationIntent) error {
	if s.State(chatID) != entity.PermissionGranted {
		return nil
	}

	chat, err := s.bot.ChatByID(chatID)
	if err != nil {
		return fmt.Errorf("failed to resolve chat %d: %w", chatID, err)
	}

	var opts []interface{}
	if markup := urlMarkup(intent.URL); markup != nil {
		opts = append(opts, markup)
	}

	// Photo pushes are always fresh sends, text pushes replace the
	// previous message carrying the same tag.
	if intent.Photo == nil && intent.Tag != "" {
		if messageID, errTag := s.tags.Get(chatID, intent.Tag); errTag == nil {
			stored := tele.StoredMessage{
				MessageID: strconv.Itoa(messageID),
				ChatID:    chatID,
			}
			if _, errEdit := s.bot.Edit(stored, formatToast(intent), opts...); errEdit == nil {
				return nil
			}
			// Replaced message is gone or not editable, drop the stale
			// mapping and fall through to a fresh send.
			s.tags.Clear(chatID, intent.Tag)
		}
	}

	if !intent.HighPriority || !s.audio.Cue(chatID) {
		opts = append(opts, tele.Silent)
	}

	var payload interface{} = formatToast(intent)
	if intent.Photo != nil {
		payload = &tele.Photo{
			File:    tele.FromReader(bytes.NewReader(intent.Photo)),
			Caption: formatToast(intent),
		}
	}

	msg, err := s.bot.Send(chat, payload, opts...)
	if err != nil {
		return fmt.Errorf("failed to send push to %d: %w", chatID, err)
	}

	if intent.Photo == nil && intent.Tag != "" {
		s.tags.Set(chatID, intent.Tag, msg.ID, tagExpiration)
	}

	if err = s.notifications.Create(ctx, &entity.SentNotification{
		ChatID:  chatID,
		Tag:     intent.Tag,
		Channel: "push",
	}); err != nil {
		s.logger.Errorf("failed to record push for chat %d: %v", chatID, err)
	}

	return nil
}

func urlMarkup(url string) *tele.ReplyMarkup {
	if url == "" {
		return nil
	}
	return &tele.ReplyMarkup{
		InlineKeyboard: [][]tele.InlineButton{{{Text: "Open", URL: url}}},
	}
}

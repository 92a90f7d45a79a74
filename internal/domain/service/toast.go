package service

import (
	"context"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/roastline/beanbot/internal/domain/entity"
	"github.com/roastline/beanbot/pkg/logger/types"
)

type toastBot interface {
	ChatByID(id int64) (*tele.Chat, error)
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Delete(msg tele.Editable) error
}

type cuePlayer interface {
	Cue(chatID int64) bool
}

type notificationStorage interface {
	Create(ctx context.Context, notification *entity.SentNotification) error
}

// ToastService delivers transient in-app notifications: each one is
// sent as its own message and removed again once its duration elapses.
// Concurrent toasts stack, they never replace one another.
type ToastService struct {
	bot           toastBot
	audio         cuePlayer
	notifications notificationStorage
	logger        *types.Logger
}

func NewToastService(bot toastBot, audio cuePlayer, notifications notificationStorage, logger *types.Logger) *ToastService {
	return &ToastService{
		bot:           bot,
		audio:         audio,
		notifications: notifications,
		logger:        logger,
	}
}

func (s *ToastService) Show(ctx context.Context, chatID int64, intent entity.NotificationIntent) error {
	chat, err := s.bot.ChatByID(chatID)
	if err != nil {
		return fmt.Errorf("failed to resolve chat %d: %w", chatID, err)
	}

	var opts []interface{}
	if !intent.HighPriority || !s.audio.Cue(chatID) {
		opts = append(opts, tele.Silent)
	}

	msg, err := s.bot.Send(chat, formatToast(intent), opts...)
	if err != nil {
		return fmt.Errorf("failed to send toast to %d: %w", chatID, err)
	}

	duration := intent.Duration
	if duration <= 0 {
		duration = durationFor(intent.Severity)
	}
	time.AfterFunc(duration, func() {
		if errDelete := s.bot.Delete(msg); errDelete != nil {
			s.logger.Debugf("failed to dismiss toast in chat %d: %v", chatID, errDelete)
		}
	})

	if err = s.notifications.Create(ctx, &entity.SentNotification{
		ChatID:  chatID,
		Tag:     intent.Tag,
		Channel: "toast",
	}); err != nil {
		s.logger.Errorf("failed to record toast for chat %d: %v", chatID, err)
	}

	return nil
}

func formatToast(intent entity.NotificationIntent) string {
	if intent.Title == "" {
		return intent.Body
	}
	return fmt.Sprintf("<b>%s</b>\n%s", intent.Title, intent.Body)
}

func durationFor(severity entity.Severity) time.Duration {
	switch severity {
	case entity.SeverityCritical:
		return 3 * time.Minute
	case entity.SeverityWarning:
		return time.Minute
	default:
		return 15 * time.Second
	}
}

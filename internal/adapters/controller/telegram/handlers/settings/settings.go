package settings

import (
	"context"

	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"

	"github.com/roastline/beanbot/cmd/bot"
	"github.com/roastline/beanbot/internal/domain/service"
	"github.com/roastline/beanbot/pkg/logger/types"
)

type Handler struct {
	layout *layout.Layout
	logger *types.Logger
	audio  *service.AudioCueService
	push   *service.PushService
}

func New(b *bot.Bot) *Handler {
	return &Handler{
		layout: b.Layout,
		logger: b.Logger,
		audio:  b.Audio,
		push:   b.Push,
	}
}

// Sound flips the audible notification flag for the chat.
func (h *Handler) Sound(c tele.Context) error {
	chatID := c.Sender().ID
	enabled := !h.audio.Enabled(chatID)
	h.audio.SetEnabled(chatID, enabled)

	key := "sound_disabled"
	if enabled {
		key = "sound_enabled"
	}
	return c.Send(h.layout.Text(c, key))
}

// Notifications asks the user to opt in to push notifications. Being an
// explicit request it may re-prompt after an earlier denial; only one
// prompt is ever outstanding.
func (h *Handler) Notifications(c tele.Context) error {
	_, err := h.push.RequestPermission(context.Background(), c.Sender().ID, c.Sender().LanguageCode, true)
	return err
}

func (h *Handler) AllowPush(c tele.Context) error {
	h.push.Grant(c.Sender().ID)
	h.logger.Infof("(user: %d) push granted", c.Sender().ID)
	return c.Edit(h.layout.Text(c, "push_enabled"))
}

func (h *Handler) DenyPush(c tele.Context) error {
	h.push.Deny(c.Sender().ID)
	h.logger.Infof("(user: %d) push denied", c.Sender().ID)
	return c.Edit(h.layout.Text(c, "push_disabled"))
}

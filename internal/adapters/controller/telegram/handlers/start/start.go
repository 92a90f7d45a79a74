package start

import (
	"context"
	"strings"

	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"

	"github.com/roastline/beanbot/cmd/bot"
	"github.com/roastline/beanbot/internal/adapters/database/redis/prefs"
	"github.com/roastline/beanbot/internal/domain/service"
	"github.com/roastline/beanbot/pkg/logger/types"
)

type Handler struct {
	layout   *layout.Layout
	logger   *types.Logger
	listings *service.ListingService
	users    *service.UserService
	push     *service.PushService
	prefs    *prefs.Storage
}

func New(b *bot.Bot) *Handler {
	return &Handler{
		layout:   b.Layout,
		logger:   b.Logger,
		listings: b.Listings,
		users:    b.Users,
		push:     b.Push,
		prefs:    b.Redis.Prefs,
	}
}

// Start greets new chats and resolves listing deep links produced by
// the QR cards ("/start listing_<id>").
func (h *Handler) Start(c tele.Context) error {
	sender := c.Sender()
	if sender.LanguageCode != "" {
		h.prefs.SetLocale(sender.ID, sender.LanguageCode)
	}

	if user, err := h.users.GetByTelegramID(context.Background(), sender.ID); err == nil && user.IsBanned {
		h.logger.Warnf("(user: %d) banned user ignored", sender.ID)
		return nil
	}

	payload := c.Message().Payload
	if listingID, ok := strings.CutPrefix(payload, "listing_"); ok {
		return h.sendListing(c, listingID)
	}

	if err := c.Send(h.layout.Text(c, "welcome")); err != nil {
		return err
	}
	_, err := h.push.RequestPermission(context.Background(), sender.ID, sender.LanguageCode, false)
	return err
}

func (h *Handler) sendListing(c tele.Context, listingID string) error {
	listing, err := h.listings.Get(context.Background(), listingID)
	if err != nil {
		h.logger.Warnf("(user: %d) unknown listing %s: %v", c.Sender().ID, listingID, err)
		return c.Send(h.layout.Text(c, "listing_not_found"))
	}
	return c.Send(h.layout.Text(c, "listing_details", listing))
}

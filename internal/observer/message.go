package observer

import (
	"context"
	"fmt"

	"github.com/roastline/beanbot/internal/adapters/realtime"
	"github.com/roastline/beanbot/internal/domain/entity"
	"github.com/roastline/beanbot/pkg/logger/types"
)

const messagesTable = "messages"

// MessageObserver notifies the receiver of an inbound marketplace
// message. Messages a user sends to themselves are ignored.
type MessageObserver struct {
	base
	users  userService
	layout formatter
	toast  sink
	push   sink
}

func NewMessageObserver(
	feed feed,
	logger *types.Logger,
	users userService,
	layout formatter,
	toast sink,
	push sink,
) *MessageObserver {
	return &MessageObserver{
		base:   base{name: "message", feed: feed, logger: logger},
		users:  users,
		layout: layout,
		toast:  toast,
		push:   push,
	}
}

func (o *MessageObserver) Mount(ctx context.Context) error {
	return o.subscribe(ctx, realtime.Subscription{Table: messagesTable, Kind: realtime.KindInsert}, o.onInsert)
}

func (o *MessageObserver) onInsert(ctx context.Context, ev realtime.Event) error {
	_, message, err := realtime.DecodeRows[entity.Message](ev)
	if err != nil {
		return err
	}
	if message == nil || message.SenderID == message.ReceiverID {
		return nil
	}

	receiver, err := o.users.Get(ctx, message.ReceiverID)
	if err != nil {
		return fmt.Errorf("failed to resolve receiver %s: %w", message.ReceiverID, err)
	}
	locale := localeOf(receiver)

	// Sender name is cosmetic, fall back to a placeholder on failure.
	senderName := o.layout.TextLocale(locale, "unknown_user")
	if sender, errSender := o.users.Get(ctx, message.SenderID); errSender == nil {
		senderName = sender.FullName
	} else {
		o.logger.Warnf("failed to resolve sender %s: %v", message.SenderID, errSender)
	}

	intent := entity.NotificationIntent{
		Title:    o.layout.TextLocale(locale, "new_message_title", senderName),
		Body:     message.Body,
		Tag:      "message:" + message.SenderID,
		Severity: entity.SeverityInfo,
	}
	if errShow := o.toast.Show(ctx, receiver.TelegramID, intent); errShow != nil {
		o.logger.Errorf("toast to %d: %v", receiver.TelegramID, errShow)
	}
	if errShow := o.push.Show(ctx, receiver.TelegramID, intent); errShow != nil {
		o.logger.Errorf("push to %d: %v", receiver.TelegramID, errShow)
	}

	return nil
}

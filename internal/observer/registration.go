package observer

import (
	"context"
	"fmt"

	"github.com/roastline/beanbot/internal/adapters/realtime"
	"github.com/roastline/beanbot/internal/domain/entity"
	"github.com/roastline/beanbot/pkg/logger/types"
)

const usersTable = "users"

// RegistrationObserver tells admins about new marketplace
// registrations. Each candidate admin's role is re-read from the
// database per event, never cached, and an admin registering
// themselves is not notified about it.
type RegistrationObserver struct {
	base
	users  userService
	layout formatter
	toast  sink
	push   sink
}

func NewRegistrationObserver(
	feed feed,
	logger *types.Logger,
	users userService,
	layout formatter,
	toast sink,
	push sink,
) *RegistrationObserver {
	return &RegistrationObserver{
		base:   base{name: "registration", feed: feed, logger: logger},
		users:  users,
		layout: layout,
		toast:  toast,
		push:   push,
	}
}

func (o *RegistrationObserver) Mount(ctx context.Context) error {
	return o.subscribe(ctx, realtime.Subscription{Table: usersTable, Kind: realtime.KindInsert}, o.onInsert)
}

func (o *RegistrationObserver) onInsert(ctx context.Context, ev realtime.Event) error {
	_, registered, err := realtime.DecodeRows[entity.User](ev)
	if err != nil {
		return err
	}
	if registered == nil {
		return nil
	}

	admins, err := o.users.GetByRoles(ctx, entity.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to list admins: %w", err)
	}

	for _, admin := range admins {
		if admin.ID == registered.ID {
			continue
		}

		role, errRole := o.users.Role(ctx, admin.ID)
		if errRole != nil || role != entity.RoleAdmin {
			continue
		}

		locale := localeOf(&admin)
		intent := entity.NotificationIntent{
			Title:        o.layout.TextLocale(locale, "new_registration_title"),
			Body:         o.layout.TextLocale(locale, "new_registration_body", registered),
			Tag:          "registration:" + registered.ID,
			Severity:     entity.SeverityInfo,
			HighPriority: true,
		}
		if errShow := o.toast.Show(ctx, admin.TelegramID, intent); errShow != nil {
			o.logger.Errorf("toast to %d: %v", admin.TelegramID, errShow)
		}
		if errShow := o.push.Show(ctx, admin.TelegramID, intent); errShow != nil {
			o.logger.Errorf("push to %d: %v", admin.TelegramID, errShow)
		}
	}

	return nil
}

package observer

import (
	"context"
	"fmt"

	"github.com/roastline/beanbot/internal/adapters/realtime"
	"github.com/roastline/beanbot/internal/domain/entity"
	"github.com/roastline/beanbot/pkg/logger/types"
)

// PriceObserver watches listing updates. A price change raises a price
// alert; any other update only shows a low-severity "listing updated"
// toast and never touches the price-alert channel.
type PriceObserver struct {
	base
	users  userService
	layout formatter
	toast  sink
	push   sink
}

func NewPriceObserver(
	feed feed,
	logger *types.Logger,
	users userService,
	layout formatter,
	toast sink,
	push sink,
) *PriceObserver {
	return &PriceObserver{
		base:   base{name: "price", feed: feed, logger: logger},
		users:  users,
		layout: layout,
		toast:  toast,
		push:   push,
	}
}

func (o *PriceObserver) Mount(ctx context.Context) error {
	return o.subscribe(ctx, realtime.Subscription{Table: listingsTable, Kind: realtime.KindUpdate}, o.onUpdate)
}

func (o *PriceObserver) onUpdate(ctx context.Context, ev realtime.Event) error {
	before, after, err := realtime.DecodeRows[entity.Listing](ev)
	if err != nil {
		return err
	}
	if before == nil || after == nil {
		return nil
	}

	priceChanged := before.Price != after.Price

	buyers, err := o.users.GetByRoles(ctx, entity.RoleRoaster, entity.RoleCafe)
	if err != nil {
		return fmt.Errorf("failed to resolve price alert audience: %w", err)
	}

	for _, buyer := range buyers {
		locale := localeOf(&buyer)

		if !priceChanged {
			intent := entity.NotificationIntent{
				Title:    o.layout.TextLocale(locale, "listing_updated_title"),
				Body:     o.layout.TextLocale(locale, "listing_updated_body", after),
				Tag:      "listing:" + after.ID,
				Severity: entity.SeverityInfo,
			}
			if errShow := o.toast.Show(ctx, buyer.TelegramID, intent); errShow != nil {
				o.logger.Errorf("toast to %d: %v", buyer.TelegramID, errShow)
			}
			continue
		}

		intent := entity.NotificationIntent{
			Title:    o.layout.TextLocale(locale, "price_alert_title"),
			Body:     o.layout.TextLocale(locale, "price_alert_body", map[string]interface{}{"Listing": after, "OldPrice": before.Price}),
			Tag:      "price:" + after.ID,
			Severity: entity.SeverityWarning,
		}
		if errShow := o.toast.Show(ctx, buyer.TelegramID, intent); errShow != nil {
			o.logger.Errorf("toast to %d: %v", buyer.TelegramID, errShow)
		}
		if errShow := o.push.Show(ctx, buyer.TelegramID, intent); errShow != nil {
			o.logger.Errorf("push to %d: %v", buyer.TelegramID, errShow)
		}
	}

	return nil
}

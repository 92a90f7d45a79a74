package observer

import (
	"context"
	"fmt"

	"github.com/roastline/beanbot/internal/adapters/realtime"
	"github.com/roastline/beanbot/internal/domain/entity"
	"github.com/roastline/beanbot/pkg/logger/types"
)

const offersTable = "offers"

// OfferObserver announces active supplier offers to roasters and
// cafes. Inactive offers are silently skipped.
type OfferObserver struct {
	base
	users  userService
	layout formatter
	toast  sink
	push   sink
}

func NewOfferObserver(
	feed feed,
	logger *types.Logger,
	users userService,
	layout formatter,
	toast sink,
	push sink,
) *OfferObserver {
	return &OfferObserver{
		base:   base{name: "offer", feed: feed, logger: logger},
		users:  users,
		layout: layout,
		toast:  toast,
		push:   push,
	}
}

func (o *OfferObserver) Mount(ctx context.Context) error {
	return o.subscribe(ctx, realtime.Subscription{Table: offersTable, Kind: realtime.KindInsert}, o.onInsert)
}

func (o *OfferObserver) onInsert(ctx context.Context, ev realtime.Event) error {
	_, offer, err := realtime.DecodeRows[entity.Offer](ev)
	if err != nil {
		return err
	}
	if offer == nil || !offer.IsActive {
		return nil
	}

	buyers, err := o.users.GetByRoles(ctx, entity.RoleRoaster, entity.RoleCafe)
	if err != nil {
		return fmt.Errorf("failed to resolve offer audience: %w", err)
	}

	for _, buyer := range buyers {
		locale := localeOf(&buyer)

		supplierName := o.layout.TextLocale(locale, "unknown_user")
		if supplier, errSupplier := o.users.Get(ctx, offer.SupplierID); errSupplier == nil {
			supplierName = supplier.FullName
		} else {
			o.logger.Warnf("failed to resolve supplier %s: %v", offer.SupplierID, errSupplier)
		}

		intent := entity.NotificationIntent{
			Title:    o.layout.TextLocale(locale, "new_offer_title", supplierName),
			Body:     o.layout.TextLocale(locale, "new_offer_body", offer),
			Tag:      "offer:" + offer.ID,
			Severity: entity.SeverityInfo,
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

package observer

import (
	"context"
	"fmt"

	"github.com/roastline/beanbot/internal/adapters/realtime"
	"github.com/roastline/beanbot/internal/domain/entity"
	"github.com/roastline/beanbot/pkg/logger/types"
)

const commissionsTable = "commissions"

// CommissionObserver notifies a farmer when a commission completes.
// Only the pending to completed transition is relevant, every other
// status change stays silent.
type CommissionObserver struct {
	base
	users  userService
	layout formatter
	toast  sink
	push   sink
}

func NewCommissionObserver(
	feed feed,
	logger *types.Logger,
	users userService,
	layout formatter,
	toast sink,
	push sink,
) *CommissionObserver {
	return &CommissionObserver{
		base:   base{name: "commission", feed: feed, logger: logger},
		users:  users,
		layout: layout,
		toast:  toast,
		push:   push,
	}
}

func (o *CommissionObserver) Mount(ctx context.Context) error {
	return o.subscribe(ctx, realtime.Subscription{Table: commissionsTable, Kind: realtime.KindUpdate}, o.onUpdate)
}

func (o *CommissionObserver) onUpdate(ctx context.Context, ev realtime.Event) error {
	before, after, err := realtime.DecodeRows[entity.Commission](ev)
	if err != nil {
		return err
	}
	if before == nil || after == nil {
		return nil
	}
	if before.Status != entity.CommissionStatusPending || after.Status != entity.CommissionStatusCompleted {
		return nil
	}

	farmer, err := o.users.Get(ctx, after.FarmerID)
	if err != nil {
		return fmt.Errorf("failed to resolve farmer %s: %w", after.FarmerID, err)
	}
	locale := localeOf(farmer)

	intent := entity.NotificationIntent{
		Title:        o.layout.TextLocale(locale, "commission_completed_title"),
		Body:         o.layout.TextLocale(locale, "commission_completed_body", after),
		Tag:          "commission:" + after.ID,
		Severity:     entity.SeverityInfo,
		HighPriority: true,
	}
	if errShow := o.toast.Show(ctx, farmer.TelegramID, intent); errShow != nil {
		o.logger.Errorf("toast to %d: %v", farmer.TelegramID, errShow)
	}
	if errShow := o.push.Show(ctx, farmer.TelegramID, intent); errShow != nil {
		o.logger.Errorf("push to %d: %v", farmer.TelegramID, errShow)
	}

	return nil
}

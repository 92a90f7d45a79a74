package observer

import (
	"context"
	"time"

	"github.com/roastline/beanbot/internal/adapters/realtime"
	"github.com/roastline/beanbot/internal/domain/dto"
	"github.com/roastline/beanbot/internal/domain/entity"
	"github.com/roastline/beanbot/pkg/logger/types"
)

const (
	inventoryTable = "inventory_items"
	rescanInterval = 5 * time.Minute
)

type inventoryService interface {
	Scan(ctx context.Context, ownerID string) (*dto.StockReport, error)
	Owners(ctx context.Context) ([]string, error)
}

type stockMailer interface {
	SendStockAlert(to string, subject string, lines []string)
}

// InventoryMonitor keeps farmers informed about stock levels. Any
// change to an inventory row triggers a rescan of that owner's stock,
// and a periodic full rescan backstops events lost during transport
// gaps. Each scan raises at most one aggregated notification per
// non-healthy bucket, never one per item.
type InventoryMonitor struct {
	base
	inventory inventoryService
	users     userService
	layout    formatter
	toast     sink
	mailer    stockMailer
	interval  time.Duration
	done      chan struct{}
}

func NewInventoryMonitor(
	feed feed,
	logger *types.Logger,
	inventory inventoryService,
	users userService,
	layout formatter,
	toast sink,
	mailer stockMailer,
) *InventoryMonitor {
	return &InventoryMonitor{
		base:      base{name: "inventory", feed: feed, logger: logger},
		inventory: inventory,
		users:     users,
		layout:    layout,
		toast:     toast,
		mailer:    mailer,
		interval:  rescanInterval,
	}
}

func (o *InventoryMonitor) Mount(ctx context.Context) error {
	o.done = make(chan struct{})

	err := o.subscribe(ctx, realtime.Subscription{Table: inventoryTable, Kind: realtime.KindAll}, o.onChange)
	if err != nil {
		return err
	}

	go o.runScheduler(ctx)

	return nil
}

func (o *InventoryMonitor) Close() {
	if o.done != nil {
		close(o.done)
		o.done = nil
	}
	o.base.Close()
}

func (o *InventoryMonitor) runScheduler(ctx context.Context) {
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-o.done:
			return
		case <-ticker.C:
			o.rescanAll(ctx)
		}
	}
}

func (o *InventoryMonitor) rescanAll(ctx context.Context) {
	owners, err := o.inventory.Owners(ctx)
	if err != nil {
		o.logger.Errorf("inventory: failed to list owners: %v", err)
		return
	}
	for _, ownerID := range owners {
		o.rescanOwner(ctx, ownerID)
	}
}

func (o *InventoryMonitor) onChange(ctx context.Context, ev realtime.Event) error {
	oldItem, newItem, err := realtime.DecodeRows[entity.InventoryItem](ev)
	if err != nil {
		return err
	}

	item := newItem
	if item == nil {
		item = oldItem
	}
	if item == nil {
		return nil
	}

	o.rescanOwner(ctx, item.OwnerID)
	return nil
}

func (o *InventoryMonitor) rescanOwner(ctx context.Context, ownerID string) {
	report, err := o.inventory.Scan(ctx, ownerID)
	if err != nil {
		o.logger.Errorf("inventory: scan for %s failed: %v", ownerID, err)
		return
	}
	if len(report.Critical) == 0 && len(report.Warning) == 0 {
		return
	}

	owner, err := o.users.Get(ctx, ownerID)
	if err != nil {
		o.logger.Errorf("inventory: failed to resolve owner %s: %v", ownerID, err)
		return
	}
	locale := localeOf(owner)

	if len(report.Critical) > 0 {
		intent := entity.NotificationIntent{
			Title:        o.layout.TextLocale(locale, "stock_critical_title"),
			Body:         o.layout.TextLocale(locale, "stock_critical_body", len(report.Critical)),
			Tag:          "stock:critical:" + ownerID,
			Severity:     entity.SeverityCritical,
			HighPriority: true,
		}
		if errShow := o.toast.Show(ctx, owner.TelegramID, intent); errShow != nil {
			o.logger.Errorf("toast to %d: %v", owner.TelegramID, errShow)
		}
		if owner.Email != "" {
			lines := make([]string, 0, len(report.Critical))
			for _, item := range report.Critical {
				lines = append(lines, o.layout.TextLocale(locale, "stock_email_line", item))
			}
			o.mailer.SendStockAlert(owner.Email, o.layout.TextLocale(locale, "stock_email_subject"), lines)
		}
	}

	if len(report.Warning) > 0 {
		intent := entity.NotificationIntent{
			Title:    o.layout.TextLocale(locale, "stock_warning_title"),
			Body:     o.layout.TextLocale(locale, "stock_warning_body", len(report.Warning)),
			Tag:      "stock:warning:" + ownerID,
			Severity: entity.SeverityWarning,
		}
		if errShow := o.toast.Show(ctx, owner.TelegramID, intent); errShow != nil {
			o.logger.Errorf("toast to %d: %v", owner.TelegramID, errShow)
		}
	}
}

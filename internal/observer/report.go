package observer

import (
	"context"
	"fmt"

	"github.com/roastline/beanbot/internal/adapters/realtime"
	"github.com/roastline/beanbot/internal/domain/entity"
	"github.com/roastline/beanbot/pkg/logger/types"
)

const reportsTable = "maintenance_reports"

// ReportObserver tells a report author that their maintenance report
// could not be delivered to the maintenance team.
type ReportObserver struct {
	base
	users  userService
	layout formatter
	toast  sink
	push   sink
}

func NewReportObserver(
	feed feed,
	logger *types.Logger,
	users userService,
	layout formatter,
	toast sink,
	push sink,
) *ReportObserver {
	return &ReportObserver{
		base:   base{name: "report", feed: feed, logger: logger},
		users:  users,
		layout: layout,
		toast:  toast,
		push:   push,
	}
}

func (o *ReportObserver) Mount(ctx context.Context) error {
	return o.subscribe(ctx, realtime.Subscription{Table: reportsTable, Kind: realtime.KindUpdate}, o.onUpdate)
}

func (o *ReportObserver) onUpdate(ctx context.Context, ev realtime.Event) error {
	before, after, err := realtime.DecodeRows[entity.MaintenanceReport](ev)
	if err != nil {
		return err
	}
	if before == nil || after == nil {
		return nil
	}
	if after.Status != entity.ReportStatusFailed || before.Status == entity.ReportStatusFailed {
		return nil
	}

	author, err := o.users.Get(ctx, after.AuthorID)
	if err != nil {
		return fmt.Errorf("failed to resolve report author %s: %w", after.AuthorID, err)
	}
	locale := localeOf(author)

	intent := entity.NotificationIntent{
		Title:    o.layout.TextLocale(locale, "report_failed_title"),
		Body:     o.layout.TextLocale(locale, "report_failed_body", after),
		Tag:      "report:" + after.ID,
		Severity: entity.SeverityCritical,
	}
	if errShow := o.toast.Show(ctx, author.TelegramID, intent); errShow != nil {
		o.logger.Errorf("toast to %d: %v", author.TelegramID, errShow)
	}
	if errShow := o.push.Show(ctx, author.TelegramID, intent); errShow != nil {
		o.logger.Errorf("push to %d: %v", author.TelegramID, errShow)
	}

	return nil
}

package observer

import (
	"context"
	"fmt"

	"github.com/roastline/beanbot/internal/adapters/realtime"
	"github.com/roastline/beanbot/internal/domain/entity"
	"github.com/roastline/beanbot/pkg/logger/types"
)

const listingsTable = "listings"

type cardRenderer interface {
	Render(link string) ([]byte, error)
}

// ListingObserver announces freshly inserted coffee listings to every
// roaster and cafe. Inserts are always relevant.
type ListingObserver struct {
	base
	users   userService
	layout  formatter
	toast   sink
	push    sink
	card    cardRenderer
	botName string
}

func NewListingObserver(
	feed feed,
	logger *types.Logger,
	users userService,
	layout formatter,
	toast sink,
	push sink,
	card cardRenderer,
	botName string,
) *ListingObserver {
	return &ListingObserver{
		base:    base{name: "listing", feed: feed, logger: logger},
		users:   users,
		layout:  layout,
		toast:   toast,
		push:    push,
		card:    card,
		botName: botName,
	}
}

func (o *ListingObserver) Mount(ctx context.Context) error {
	return o.subscribe(ctx, realtime.Subscription{Table: listingsTable, Kind: realtime.KindInsert}, o.onInsert)
}

func (o *ListingObserver) onInsert(ctx context.Context, ev realtime.Event) error {
	_, listing, err := realtime.DecodeRows[entity.Listing](ev)
	if err != nil {
		return err
	}
	if listing == nil {
		return nil
	}

	// The deep link survives a failed card render, only the photo is
	// dropped.
	link := listing.Link(o.botName)
	var photo []byte
	if o.card != nil {
		if photo, err = o.card.Render(link); err != nil {
			o.logger.Warnf("listing card for %s failed, sending without it: %v", listing.ID, err)
			photo = nil
		}
	}

	buyers, err := o.users.GetByRoles(ctx, entity.RoleRoaster, entity.RoleCafe)
	if err != nil {
		return fmt.Errorf("failed to resolve listing audience: %w", err)
	}

	for _, buyer := range buyers {
		locale := localeOf(&buyer)
		intent := entity.NotificationIntent{
			Title:    o.layout.TextLocale(locale, "new_listing_title"),
			Body:     o.layout.TextLocale(locale, "new_listing_body", listing),
			URL:      link,
			Tag:      "listing:" + listing.ID,
			Severity: entity.SeverityInfo,
			Photo:    photo,
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

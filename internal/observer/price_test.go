package observer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roastline/beanbot/internal/adapters/realtime"
	"github.com/roastline/beanbot/internal/domain/entity"
)

func TestPriceChangeRaisesAlert(t *testing.T) {
	roaster := entity.User{ID: "r1", TelegramID: 10, Role: entity.RoleRoaster}
	cafe := entity.User{ID: "c1", TelegramID: 20, Role: entity.RoleCafe}
	farmer := entity.User{ID: "f1", TelegramID: 30, Role: entity.RoleFarmer}

	feed := &fakeFeed{}
	toast := newFakeSink()
	push := newFakeSink()
	obs := NewPriceObserver(feed, testLogger(), newFakeUsers(roaster, cafe, farmer), fakeFormatter{}, toast, push)
	require.NoError(t, obs.Mount(context.Background()))
	defer obs.Close()

	feed.emit(t, listingsTable, realtime.KindUpdate,
		entity.Listing{ID: "l1", Price: 10, IsActive: true},
		entity.Listing{ID: "l1", Price: 12.5, IsActive: true},
	)

	for _, buyer := range []entity.User{roaster, cafe} {
		require.Len(t, toast.forChat(buyer.TelegramID), 1)
		require.Len(t, push.forChat(buyer.TelegramID), 1)
		intent := toast.forChat(buyer.TelegramID)[0]
		assert.Equal(t, "price:l1", intent.Tag)
		assert.Equal(t, entity.SeverityWarning, intent.Severity)
	}
	assert.Empty(t, toast.forChat(farmer.TelegramID))
}

func TestUnchangedPriceOnlyUpdateToast(t *testing.T) {
	roaster := entity.User{ID: "r1", TelegramID: 10, Role: entity.RoleRoaster}

	feed := &fakeFeed{}
	toast := newFakeSink()
	push := newFakeSink()
	obs := NewPriceObserver(feed, testLogger(), newFakeUsers(roaster), fakeFormatter{}, toast, push)
	require.NoError(t, obs.Mount(context.Background()))
	defer obs.Close()

	feed.emit(t, listingsTable, realtime.KindUpdate,
		entity.Listing{ID: "l1", Price: 10, QuantityKg: 50},
		entity.Listing{ID: "l1", Price: 10, QuantityKg: 45},
	)

	require.Len(t, toast.forChat(roaster.TelegramID), 1)
	assert.Equal(t, "listing:l1", toast.forChat(roaster.TelegramID)[0].Tag)
	assert.Zero(t, push.total())
}

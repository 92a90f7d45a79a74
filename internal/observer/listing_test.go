package observer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roastline/beanbot/internal/adapters/realtime"
	"github.com/roastline/beanbot/internal/domain/entity"
)

type fakeCard struct {
	fail bool
}

func (c fakeCard) Render(link string) ([]byte, error) {
	if c.fail {
		return nil, errors.New("render failed")
	}
	return []byte{0x89, 0x50}, nil
}

func TestListingInsertCarriesCard(t *testing.T) {
	roaster := entity.User{ID: "r1", TelegramID: 10, Role: entity.RoleRoaster}

	feed := &fakeFeed{}
	push := newFakeSink()
	obs := NewListingObserver(feed, testLogger(), newFakeUsers(roaster), fakeFormatter{}, newFakeSink(), push, fakeCard{}, "beanbot")
	require.NoError(t, obs.Mount(context.Background()))
	defer obs.Close()

	feed.emit(t, listingsTable, realtime.KindInsert, nil,
		entity.Listing{ID: "l1", Name: "Yirgacheffe", Price: 12.5, IsActive: true})

	intents := push.forChat(roaster.TelegramID)
	require.Len(t, intents, 1)
	assert.Equal(t, "listing:l1", intents[0].Tag)
	assert.Equal(t, "https://t.me/beanbot?start=listing_l1", intents[0].URL)
	assert.NotEmpty(t, intents[0].Photo)
}

func TestListingInsertSurvivesCardFailure(t *testing.T) {
	roaster := entity.User{ID: "r1", TelegramID: 10, Role: entity.RoleRoaster}

	feed := &fakeFeed{}
	toast := newFakeSink()
	obs := NewListingObserver(feed, testLogger(), newFakeUsers(roaster), fakeFormatter{}, toast, newFakeSink(), fakeCard{fail: true}, "beanbot")
	require.NoError(t, obs.Mount(context.Background()))
	defer obs.Close()

	feed.emit(t, listingsTable, realtime.KindInsert, nil,
		entity.Listing{ID: "l1", Name: "Yirgacheffe", Price: 12.5, IsActive: true})

	// The deep link is kept, only the photo is dropped.
	intents := toast.forChat(roaster.TelegramID)
	require.Len(t, intents, 1)
	assert.Empty(t, intents[0].Photo)
	assert.Equal(t, "https://t.me/beanbot?start=listing_l1", intents[0].URL)
}

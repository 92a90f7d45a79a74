package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roastline/beanbot/internal/domain/entity"
)

func TestToastStacks(t *testing.T) {
	bot := newFakeBot()
	notifications := &fakeNotifications{}
	svc := NewToastService(bot, fakeCue{audible: true}, notifications, testLogger())

	ctx := context.Background()
	require.NoError(t, svc.Show(ctx, 1, entity.NotificationIntent{Title: "first", Body: "a", Duration: time.Hour}))
	require.NoError(t, svc.Show(ctx, 1, entity.NotificationIntent{Title: "second", Body: "b", Duration: time.Hour}))

	assert.Equal(t, 2, bot.sentCount())
	assert.Equal(t, 0, bot.deletedCount())
	require.Len(t, notifications.created, 2)
	assert.Equal(t, "toast", notifications.created[0].Channel)
}

func TestToastSilentUnlessHighPriority(t *testing.T) {
	bot := newFakeBot()
	svc := NewToastService(bot, fakeCue{audible: true}, &fakeNotifications{}, testLogger())

	ctx := context.Background()
	require.NoError(t, svc.Show(ctx, 1, entity.NotificationIntent{Body: "quiet", Duration: time.Hour}))
	require.NoError(t, svc.Show(ctx, 1, entity.NotificationIntent{Body: "loud", HighPriority: true, Duration: time.Hour}))

	assert.True(t, hasSilent(bot.sent[0].opts))
	assert.False(t, hasSilent(bot.sent[1].opts))
}

func TestToastHighPriorityStillSilentWhenCueDebounced(t *testing.T) {
	bot := newFakeBot()
	svc := NewToastService(bot, fakeCue{audible: false}, &fakeNotifications{}, testLogger())

	require.NoError(t, svc.Show(context.Background(), 1, entity.NotificationIntent{Body: "x", HighPriority: true, Duration: time.Hour}))

	assert.True(t, hasSilent(bot.sent[0].opts))
}

func TestToastAutoDismiss(t *testing.T) {
	bot := newFakeBot()
	svc := NewToastService(bot, fakeCue{}, &fakeNotifications{}, testLogger())

	require.NoError(t, svc.Show(context.Background(), 1, entity.NotificationIntent{Body: "gone soon", Duration: 10 * time.Millisecond}))

	assert.Eventually(t, func() bool {
		return bot.deletedCount() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestToastFormat(t *testing.T) {
	assert.Equal(t, "<b>title</b>\nbody", formatToast(entity.NotificationIntent{Title: "title", Body: "body"}))
	assert.Equal(t, "body only", formatToast(entity.NotificationIntent{Body: "body only"}))
}

func TestDurationForSeverity(t *testing.T) {
	assert.Equal(t, 15*time.Second, durationFor(entity.SeverityInfo))
	assert.Equal(t, time.Minute, durationFor(entity.SeverityWarning))
	assert.Equal(t, 3*time.Minute, durationFor(entity.SeverityCritical))
}

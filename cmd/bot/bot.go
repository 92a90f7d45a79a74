package bot

import (
	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"
	"gorm.io/gorm"

	"github.com/roastline/beanbot/internal/adapters/config"
	postgresStorage "github.com/roastline/beanbot/internal/adapters/database/postgres"
	"github.com/roastline/beanbot/internal/adapters/database/redis"
	"github.com/roastline/beanbot/internal/adapters/realtime"
	"github.com/roastline/beanbot/internal/domain/service"
	"github.com/roastline/beanbot/internal/observer"
	"github.com/roastline/beanbot/pkg/generator"
	"github.com/roastline/beanbot/pkg/logger"
	"github.com/roastline/beanbot/pkg/logger/types"
	"github.com/roastline/beanbot/pkg/smtp"
)

type Bot struct {
	*tele.Bot
	Layout     *layout.Layout
	DB         *gorm.DB
	Redis      *redis.Client
	SMTPDialer *gomail.Dialer
	Logger     *types.Logger

	Listings   *service.ListingService
	Users      *service.UserService
	Audio      *service.AudioCueService
	Push       *service.PushService
	Aggregator *observer.Aggregator
}

func New(config *config.Config) (*Bot, error) {
	lt, err := layout.New("telegram.yml")
	if err != nil {
		return nil, err
	}

	settings := lt.Settings()
	botLogger, err := logger.Named("bot")
	if err != nil {
		return nil, err
	}
	settings.OnError = func(err error, ctx tele.Context) {
		if ctx.Callback() == nil {
			botLogger.Errorf("(user: %d) | Error: %v", ctx.Sender().ID, err)
		} else {
			botLogger.Errorf("(user: %d) | unique: %s | Error: %v", ctx.Sender().ID, ctx.Callback().Unique, err)
		}
	}

	b, err := tele.NewBot(settings)
	if err != nil {
		return nil, err
	}

	if cmds := lt.Commands(); cmds != nil {
		if err = b.SetCommands(cmds); err != nil {
			return nil, err
		}
	}

	feedLogger, err := logger.Named("realtime")
	if err != nil {
		return nil, err
	}
	notifyLogger, err := logger.Named("notify")
	if err != nil {
		return nil, err
	}
	observerLogger, err := logger.Named("observer")
	if err != nil {
		return nil, err
	}

	userStorage := postgresStorage.NewUserStorage(config.Database)
	listingStorage := postgresStorage.NewListingStorage(config.Database)
	inventoryStorage := postgresStorage.NewInventoryStorage(config.Database)
	notificationStorage := postgresStorage.NewNotificationStorage(config.Database)

	userService := service.NewUserService(userStorage)
	listingService := service.NewListingService(listingStorage)
	inventoryService := service.NewInventoryService(inventoryStorage)

	audio := service.NewAudioCueService(config.Redis.Prefs, 0)
	toast := service.NewToastService(b, audio, notificationStorage, notifyLogger)
	push := service.NewPushService(b, lt, config.Redis.Perms, config.Redis.Tags, audio, notificationStorage, notifyLogger)
	mailer := smtp.NewClient(config.SMTPDialer)
	card := generator.NewListingCard(generator.Roastline)

	feed := realtime.NewFeed(config.RealtimeDSN, feedLogger)

	aggregator := observer.NewAggregator(observerLogger)
	aggregator.Register(observer.NewListingObserver(feed, observerLogger, userService, lt, toast, push, card, viper.GetString("bot.username")))
	aggregator.Register(observer.NewPriceObserver(feed, observerLogger, userService, lt, toast, push))
	aggregator.Register(observer.NewMessageObserver(feed, observerLogger, userService, lt, toast, push))
	aggregator.Register(observer.NewOfferObserver(feed, observerLogger, userService, lt, toast, push))
	aggregator.Register(observer.NewCommissionObserver(feed, observerLogger, userService, lt, toast, push))
	aggregator.Register(observer.NewRegistrationObserver(feed, observerLogger, userService, lt, toast, push))
	aggregator.Register(observer.NewReportObserver(feed, observerLogger, userService, lt, toast, push))
	aggregator.Register(observer.NewInventoryMonitor(feed, observerLogger, inventoryService, userService, lt, toast, mailer))

	bot := &Bot{
		Bot:        b,
		Layout:     lt,
		DB:         config.Database,
		Redis:      config.Redis,
		SMTPDialer: config.SMTPDialer,
		Logger:     botLogger,
		Listings:   listingService,
		Users:      userService,
		Audio:      audio,
		Push:       push,
		Aggregator: aggregator,
	}

	return bot, nil
}

func (b *Bot) Start() {
	logger.Log.Info("Bot starting")
	b.Aggregator.Mount()
	b.Bot.Start()
}

func (b *Bot) Stop() {
	b.Aggregator.Release()
	b.Bot.Stop()
	logger.Log.Info("Bot stopped")
}

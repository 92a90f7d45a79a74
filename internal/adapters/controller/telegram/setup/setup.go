package setup

import (
	"strconv"

	"github.com/spf13/viper"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"

	"github.com/roastline/beanbot/cmd/bot"
	"github.com/roastline/beanbot/internal/adapters/controller/telegram/handlers/settings"
	"github.com/roastline/beanbot/internal/adapters/controller/telegram/handlers/start"
)

func Setup(b *bot.Bot) {
	settingsHandler := settings.New(b)
	startHandler := start.New(b)

	if viper.GetBool("settings.debug") {
		b.Use(middleware.Logger())
	}
	b.Use(b.Layout.Middleware("en", func(r tele.Recipient) string {
		id, err := strconv.ParseInt(r.Recipient(), 10, 64)
		if err != nil {
			return "en"
		}
		if locale := b.Redis.Prefs.Locale(id); locale != "" {
			return locale
		}
		return "en"
	}))
	b.Use(middleware.AutoRespond())

	b.Handle("/start", startHandler.Start)
	b.Handle("/sound", settingsHandler.Sound)
	b.Handle("/notifications", settingsHandler.Notifications)
	b.Handle(b.Layout.Callback("pushAllow"), settingsHandler.AllowPush)
	b.Handle(b.Layout.Callback("pushDeny"), settingsHandler.DenyPush)
}

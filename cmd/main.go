package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "time/tzdata"

	"github.com/roastline/beanbot/cmd/bot"
	"github.com/roastline/beanbot/internal/adapters/config"
	setupBot "github.com/roastline/beanbot/internal/adapters/controller/telegram/setup"
)

func main() {
	cfg := config.Get()
	b, err := bot.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	setupBot.Setup(b)

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		b.Stop()
	}()

	b.Start()
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hallconsole/internal/app"
	"hallconsole/internal/bot"

	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := app.Bootstrap(ctx, app.ConfigPath(), "bot-main")
	if err != nil {
		return err
	}
	defer rt.Close()

	cfg := rt.Config
	if err := cfg.ValidateTelegram(); err != nil {
		rt.Logger.Error().Err(err).Msg("Set the bot token in config.yaml")
		return err
	}

	botAPI, err := bot.NewBotWrapper(cfg.Telegram)
	if err != nil {
		rt.Logger.Error().Err(err).Msg("Failed to create BotAPI")
		return err
	}

	telegramBot, err := bot.NewBot(bot.Options{
		Telegram:  botAPI,
		API:       rt.API,
		Catalog:   rt.Catalog,
		Events:    rt.Events,
		States:    rt.States,
		Metrics:   bot.NewMetrics(prometheus.DefaultRegisterer),
		Logger:    rt.Logger,
		Location:  rt.Location,
		NoticeTTL: cfg.Console.NoticeTTL(),
		DraftLen:  cfg.Console.DraftLength(),
	})
	if err != nil {
		rt.Logger.Error().Err(err).Msg("Failed to create bot")
		return err
	}

	rt.ServeHealth(ctx)

	go func() {
		<-ctx.Done()
		telegramBot.Stop()
	}()

	rt.Logger.Info().Msg("Bot started...")
	telegramBot.Start(ctx)

	rt.Logger.Info().Msg("Shutdown complete.")
	return nil
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hallconsole/internal/app"
	"hallconsole/internal/console"
	"hallconsole/internal/logging"
	"hallconsole/internal/terminal"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := app.Bootstrap(ctx, app.ConfigPath(), "console-main")
	if err != nil {
		return err
	}
	defer rt.Close()

	rt.ServeHealth(ctx)

	cfg := rt.Config
	presenter := terminal.NewPresenter(os.Stdout, rt.Catalog)
	confirmer := terminal.NewLineConfirmer(presenter, rt.Catalog)

	con, err := console.New(console.Options{
		API:         rt.API,
		Presenter:   presenter,
		Confirmer:   confirmer,
		Catalog:     rt.Catalog,
		Events:      rt.Events,
		Logger:      logging.Component(rt.Logger, "console"),
		Location:    rt.Location,
		NoticeTTL:   cfg.Console.NoticeTTL(),
		DraftLength: cfg.Console.DraftLength(),
	})
	if err != nil {
		return err
	}
	defer con.Close()

	shell := terminal.NewShell(terminal.ShellOptions{
		Input:     os.Stdin,
		Console:   con,
		Presenter: presenter,
		Confirmer: confirmer,
		Catalog:   rt.Catalog,
		Location:  rt.Location,
		ExportDir: cfg.Console.ExportPath,
		Logger:    logging.Component(rt.Logger, "shell"),
	})

	rt.Logger.Info().Msg("Console started")
	err = shell.Run(ctx)
	rt.Logger.Info().Msg("Shutdown complete.")
	return err
}

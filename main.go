package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"library-console/api"
	"library-console/cli"
	"library-console/config"
	"library-console/history"
	"library-console/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		return err
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	client, err := api.New(api.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Logger:  log,
	})
	if err != nil {
		return err
	}

	store := session.NewStore(cfg.SessionFile)
	manager := session.NewManager(store, client.Auth(), log)
	client.SetTokenSource(manager)

	activity, err := history.Open(cfg.ActivityDB)
	if err != nil {
		return fmt.Errorf("open activity log: %w", err)
	}
	defer activity.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Config:  cfg,
		API:     client,
		Session: manager,
		History: activity,
		Log:     log,
		In:      os.Stdin,
		Out:     os.Stdout,
	}
	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/shopkeeper/internal/cli"
	"github.com/dmitrijs2005/shopkeeper/internal/config"
	"github.com/dmitrijs2005/shopkeeper/internal/db"
	"github.com/dmitrijs2005/shopkeeper/internal/logging"
	"github.com/dmitrijs2005/shopkeeper/internal/repositories/repomanager"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := logging.NewJSONLogger(os.Stderr, cfg.LogLevel)

	conn, err := db.Connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Disconnect(); err != nil {
			logger.Warn(ctx, "disconnect failed", "err", err)
		}
	}()

	rm := repomanager.NewPostgresRepositoryManager()
	if cfg.RunMigrations {
		if err := rm.RunMigrations(ctx, conn.DB()); err != nil {
			return err
		}
		logger.Info(ctx, "migrations applied")
	}

	cli.NewApp(conn, rm, logger, os.Stdin, os.Stdout).Run(ctx)
	return nil
}

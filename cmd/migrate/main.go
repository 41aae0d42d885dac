package main

import (
	"context"
	"flag"

	"bookreview/internal/platform/logger"
	"bookreview/internal/platform/postgres"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	cfg := loadSettings()
	log := logger.New("bookreview-migrate", cfg.Env, cfg.LogLevel)
	dir := cfg.MigrationsDir

	if *command == "create" {
		if *name == "" {
			log.Fatal("name is required for 'create' command")
		}
		if err := goose.Create(nil, dir, *name, "sql"); err != nil {
			log.WithError(err).Fatal("failed to create migration")
		}
		log.WithField("name", *name).Info("migration created")
		return
	}

	ctx := context.Background()
	pool, err := postgres.Open(ctx, cfg.DSN, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.WithError(err).Fatal("failed to set goose dialect")
	}
	goose.SetLogger(log)

	switch *command {
	case "up":
		err = goose.UpContext(ctx, db, dir)
	case "down":
		err = goose.DownContext(ctx, db, dir)
	case "status":
		err = goose.StatusContext(ctx, db, dir)
	default:
		log.Fatalf("unknown command: %s. Use: up, down, status, create", *command)
	}
	if err != nil {
		log.WithError(err).WithField("command", *command).Fatal("migration failed")
	}
	log.WithField("command", *command).Info("migrations done")
}

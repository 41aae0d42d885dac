package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookreview/internal/book"
	"bookreview/internal/config"
	"bookreview/internal/memstore"
	"bookreview/internal/platform/logger"
	"bookreview/internal/platform/postgres"
	"bookreview/internal/review"
	"bookreview/internal/server"
	"bookreview/internal/session"
	"bookreview/internal/user"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("bookreview-api", cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

func run(ctx context.Context, cfg config.Config, log *logrus.Logger) error {
	stores, cleanup, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			return fmt.Errorf("ping redis at %s: %w", cfg.RedisAddr, err)
		}
		stores.Revocations = session.NewRevocationRedisRepo(rdb, "bookreview:revoked", cfg.DBTimeout)
		log.WithField("addr", cfg.RedisAddr).Info("token revocations stored in redis")
	}

	if pgRevocations, ok := stores.Revocations.(*session.RevocationPostgresRepo); ok {
		go cleanupRevocations(ctx, pgRevocations, log)
	}

	return server.New(cfg, stores, log).ListenAndServe(ctx, cfg.Addr)
}

func openStores(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (server.Stores, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		log.Warn("using in-memory store; data is lost on restart")
		store := memstore.New()
		return server.Stores{
			Users:       store.Users(),
			Books:       store.Books(),
			Reviews:     store.Reviews(),
			Revocations: store.Revocations(),
			Health:      store,
		}, func() {}, nil
	}

	pool, err := postgres.Open(ctx, cfg.DatabaseDSN, log)
	if err != nil {
		return server.Stores{}, nil, err
	}
	return server.Stores{
		Users:       user.NewPostgresRepo(pool, cfg.DBTimeout),
		Books:       book.NewPostgresRepo(pool, cfg.DBTimeout),
		Reviews:     review.NewPostgresRepo(pool, cfg.DBTimeout),
		Revocations: session.NewRevocationPostgresRepo(pool, cfg.DBTimeout),
		Health:      pool,
	}, pool.Close, nil
}

func cleanupRevocations(ctx context.Context, repo *session.RevocationPostgresRepo, log logrus.FieldLogger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.CleanupExpired(ctx)
			if err != nil {
				log.WithError(err).Warn("revocation cleanup failed")
				continue
			}
			if n > 0 {
				log.WithField("removed", n).Info("expired revocations removed")
			}
		}
	}
}

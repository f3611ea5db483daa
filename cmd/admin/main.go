package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/maybecook/mealbot/internal/admin"
	"github.com/maybecook/mealbot/internal/config"
	"github.com/maybecook/mealbot/internal/domain/history"
	"github.com/maybecook/mealbot/internal/domain/purchases"
	"github.com/maybecook/mealbot/internal/domain/recipes"
	"github.com/maybecook/mealbot/internal/domain/stats"
	"github.com/maybecook/mealbot/internal/domain/users"
	"github.com/maybecook/mealbot/internal/entitlement"
	"github.com/maybecook/mealbot/internal/infra/cache"
	"github.com/maybecook/mealbot/internal/infra/db"
	"github.com/maybecook/mealbot/internal/infra/logger"
)

func main() {
	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// схему накатывает бот, админке достаточно подключения
	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	c, err := cache.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Error("redis connect failed", "err", err)
		return
	}
	if c != nil {
		defer func() { _ = c.Close() }()
		log.Info("redis connected", "addr", cfg.Redis.Addr)
	}

	eval := entitlement.NewEvaluator(cfg.Limits.FreeDaysVisible, cfg.Limits.FreeQuestionsPerDay)
	srv := admin.New(log, cfg, eval, c,
		stats.NewRepo(pool), users.NewRepo(pool), recipes.NewRepo(pool),
		history.NewRepo(pool), purchases.NewRepo(pool))

	go func() {
		if err := srv.Run(cfg.Admin.Addr); err != nil {
			log.Error("admin server error", "err", err)
			stop()
		}
	}()
	log.Info("admin panel started", "addr", cfg.Admin.Addr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/maybecook/mealbot/internal/bot"
	"github.com/maybecook/mealbot/internal/config"
	"github.com/maybecook/mealbot/internal/dialog"
	"github.com/maybecook/mealbot/internal/domain/favorites"
	"github.com/maybecook/mealbot/internal/domain/history"
	"github.com/maybecook/mealbot/internal/domain/purchases"
	"github.com/maybecook/mealbot/internal/domain/recipes"
	"github.com/maybecook/mealbot/internal/domain/users"
	"github.com/maybecook/mealbot/internal/entitlement"
	"github.com/maybecook/mealbot/internal/infra/db"
	httpx "github.com/maybecook/mealbot/internal/infra/http"
	"github.com/maybecook/mealbot/internal/infra/logger"
	"github.com/maybecook/mealbot/internal/infra/payments"
)

func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

// buildPlans Сетка тарифов: дефолты, поверх них цены и сроки из конфига.
func buildPlans(cfg config.Config) map[entitlement.Tier]entitlement.Plan {
	plans := entitlement.DefaultPlans()
	for name, p := range cfg.Plans {
		tier := entitlement.NormalizeTier(name)
		base := plans[tier]
		if p.Price > 0 {
			base.Price = p.Price
		}
		if p.Days > 0 {
			base.Days = p.Days
		}
		plans[tier] = base
	}
	return plans
}

func main() {
	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram api init failed", "err", err)
		return
	}
	log.Info("telegram api ready", "bot", api.Self.UserName)

	usersRepo := users.NewRepo(pool)
	recipesRepo := recipes.NewRepo(pool)
	favsRepo := favorites.NewRepo(pool)
	historyRepo := history.NewRepo(pool)
	buysRepo := purchases.NewRepo(pool)
	statesRepo := dialog.NewRepo(pool)

	plans := buildPlans(cfg)
	eval := entitlement.NewEvaluator(cfg.Limits.FreeDaysVisible, cfg.Limits.FreeQuestionsPerDay)
	pay := payments.NewService(cfg.HTTP.BaseURL)

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, pool.Ping)
	srv.Handle("/payments/pay", payments.NewHandler(log, buysRepo, usersRepo, plans))
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	b := bot.New(api, log, eval, plans, pay, cfg.Limits.TrialDays,
		usersRepo, recipesRepo, favsRepo, historyRepo, buysRepo, statesRepo)
	go func() {
		if err := b.Run(ctx, cfg.Telegram.PollTimeoutSec); err != nil && ctx.Err() == nil {
			log.Error("bot stopped", "err", err)
			stop()
		}
	}()
	log.Info("bot started")

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}

package bot

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/maybecook/mealbot/internal/dialog"
	"github.com/maybecook/mealbot/internal/domain/favorites"
	"github.com/maybecook/mealbot/internal/domain/history"
	"github.com/maybecook/mealbot/internal/domain/purchases"
	"github.com/maybecook/mealbot/internal/domain/recipes"
	"github.com/maybecook/mealbot/internal/domain/users"
	"github.com/maybecook/mealbot/internal/entitlement"
	"github.com/maybecook/mealbot/internal/infra/metrics"
	"github.com/maybecook/mealbot/internal/infra/payments"
)

// DaysTotal Длина программы питания в днях.
const DaysTotal = 30

type Bot struct {
	api       *tgbotapi.BotAPI
	log       *slog.Logger
	eval      entitlement.Evaluator
	plans     map[entitlement.Tier]entitlement.Plan
	pay       *payments.Service
	trialDays int

	users   *users.Repo
	recipes *recipes.Repo
	favs    *favorites.Repo
	history *history.Repo
	buys    *purchases.Repo
	states  *dialog.Repo
}

func New(api *tgbotapi.BotAPI, log *slog.Logger,
	eval entitlement.Evaluator, plans map[entitlement.Tier]entitlement.Plan,
	pay *payments.Service, trialDays int,
	usersRepo *users.Repo, recipesRepo *recipes.Repo,
	favsRepo *favorites.Repo, historyRepo *history.Repo,
	buysRepo *purchases.Repo, statesRepo *dialog.Repo) *Bot {

	return &Bot{
		api: api, log: log, eval: eval, plans: plans,
		pay: pay, trialDays: trialDays,
		users: usersRepo, recipes: recipesRepo,
		favs: favsRepo, history: historyRepo,
		buys: buysRepo, states: statesRepo,
	}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				metrics.UpdatesTotal.WithLabelValues("message").Inc()
				b.onMessage(ctx, upd)
			} else if upd.CallbackQuery != nil {
				metrics.UpdatesTotal.WithLabelValues("callback").Inc()
				b.onCallback(ctx, upd)
			}
		}
	}
}

func (b *Bot) onMessage(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	b.handleStateMessage(ctx, msg)
}

func (b *Bot) onCallback(ctx context.Context, upd tgbotapi.Update) {
	b.handleCallback(ctx, upd.CallbackQuery)
}

package payments

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/maybecook/mealbot/internal/domain/purchases"
	"github.com/maybecook/mealbot/internal/domain/users"
	"github.com/maybecook/mealbot/internal/entitlement"
)

type Handler struct {
	log   *slog.Logger
	buys  *purchases.Repo
	users *users.Repo
	plans map[entitlement.Tier]entitlement.Plan
}

func NewHandler(
	log *slog.Logger,
	buys *purchases.Repo,
	usersRepo *users.Repo,
	plans map[entitlement.Tier]entitlement.Plan,
) *Handler {
	return &Handler{
		log:   log,
		buys:  buys,
		users: usersRepo,
		plans: plans,
	}
}

// ServeHTTP эмулирует "успешную оплату":
// /payments/pay?purchase=123 -> заявка переводится в paid, подписка продлевается,
// в ответ простая HTML-страница. Повторный переход по ссылке ничего не меняет.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	purchaseStr := r.URL.Query().Get("purchase")
	if purchaseStr == "" {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("missing purchase parameter"))
		return
	}

	purchaseID, err := strconv.ParseInt(purchaseStr, 10, 64)
	if err != nil || purchaseID <= 0 {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("invalid purchase parameter"))
		return
	}

	p, err := h.buys.MarkPaid(ctx, purchaseID)
	if err != nil {
		h.log.Error("failed to mark purchase as paid",
			"purchase_id", purchaseID,
			"err", err,
		)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("failed to update purchase status"))
		return
	}
	if p == nil {
		// заявки нет или она уже оплачена
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprintf(w,
			"<html><body><h1>Заявка обработана</h1><p>Заявка #%d уже оплачена либо не существует.</p></body></html>",
			purchaseID,
		)
		return
	}

	plan, ok := h.plans[entitlement.NormalizeTier(p.Plan)]
	if !ok || plan.Days <= 0 {
		h.log.Error("purchase references unknown plan",
			"purchase_id", p.ID,
			"plan", p.Plan,
		)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("unknown plan"))
		return
	}

	until := time.Now().Add(time.Duration(plan.Days) * 24 * time.Hour)
	if err := h.users.SetSubscription(ctx, p.UserID, string(plan.Tier), until); err != nil {
		h.log.Error("failed to activate subscription",
			"purchase_id", p.ID,
			"user_id", p.UserID,
			"err", err,
		)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("failed to activate subscription"))
		return
	}

	h.log.Info("purchase paid",
		"purchase_id", p.ID,
		"user_id", p.UserID,
		"plan", plan.Tier,
		"until", until.Format("2006-01-02"),
	)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = fmt.Fprintf(w,
		"<html><body><h1>Оплата прошла</h1><p>Тариф «%s» активен до %s. Возвращайся в бот!</p></body></html>",
		plan.Name,
		until.Format("02.01.2006"),
	)
}

package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/maybecook/mealbot/internal/domain/users"
	"github.com/maybecook/mealbot/internal/entitlement"
)

func (b *Bot) subscriptionText(u *users.User) string {
	st := b.eval.Evaluate(u, time.Now())
	basic := b.plans[entitlement.TierBasic]
	pro := b.plans[entitlement.TierPro]

	status := "FREE"
	if st.Active {
		status = fmt.Sprintf("%s — ещё %d дн.", strings.ToUpper(string(st.Tier)), st.DaysLeft)
	}

	return fmt.Sprintf(`💎 *ПОДПИСКА MAYBECOOK*

*Твой статус:* %s

━━━━━━━━━━━━━━━━━━━━━

*🆓 FREE — 0₽*
Попробуй бесплатно:
• Дни 1-%d программы
• %d AI-вопросов/день
• Избранное и история готовки

❌ Нет дней %d-%d
❌ Нет безлимитного AI

━━━━━━━━━━━━━━━━━━━━━

*💎 BASIC — %d₽/мес*
Всё для комфортного питания:

🔥 Полный доступ ко всем %d дням
🔥 Безлимитный AI-помощник
🔥 Персональный расчёт калорий и БЖУ
🔥 Списки закупок на день

✨ Экономия времени — не думай, что готовить!

━━━━━━━━━━━━━━━━━━━━━

*👑 PRO — %d₽/мес*
Максимум результата для семьи:

Всё из Basic, плюс:

👑 Семейный режим (до 5 профилей)
👑 Личный диетолог-куратор
👑 Ранний доступ к новым рецептам
👑 Челленджи и призы

✨ Экономия 10+ часов в неделю!

━━━━━━━━━━━━━━━━━━━━━

_Выбери тариф и оплати по ссылке — подписка включится автоматически._`,
		status,
		b.eval.FreeDaysVisible, b.eval.FreeQuestionsPerDay,
		b.eval.FreeDaysVisible+1, DaysTotal,
		basic.Price, DaysTotal,
		pro.Price,
	)
}

func (b *Bot) showSubscription(chatID int64, editMsgID int, u *users.User) {
	basic := b.plans[entitlement.TierBasic]
	pro := b.plans[entitlement.TierPro]

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("💎 Basic — %d₽", basic.Price), "sub:buy:basic"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("👑 Pro — %d₽", pro.Price), "sub:buy:pro"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад в меню", "nav:main"),
		),
	)
	b.editMarkdown(chatID, editMsgID, b.subscriptionText(u), kb)
}

// buyPlan Создаёт pending-заявку и отдаёт ссылку на оплату.
// Подписку включит обработчик подтверждения, когда заявка будет оплачена.
func (b *Bot) buyPlan(ctx context.Context, cb *tgbotapi.CallbackQuery, u *users.User, planStr string) {
	tier := entitlement.NormalizeTier(planStr)
	plan, ok := b.plans[tier]
	if !ok || tier == entitlement.TierFree {
		_ = b.answerCallback(cb, "Некорректный тариф", false)
		return
	}

	purchaseID, err := b.buys.Create(ctx, u.ID, string(tier), plan.Price)
	if err != nil {
		b.log.Error("create purchase", "err", err, "user_id", u.ID, "plan", tier)
		_ = b.answerCallback(cb, "Ошибка, попробуйте ещё раз", true)
		return
	}

	text := fmt.Sprintf(`💳 *Оплата тарифа %s*

Сумма: %d₽
Счёт №%d

Перейди по ссылке для оплаты:
%s

После оплаты подписка включится автоматически.`,
		plan.Name, plan.Price, purchaseID, b.pay.PaymentURL(purchaseID))

	b.editMarkdown(cb.Message.Chat.ID, cb.Message.MessageID, text,
		backKeyboard("🔙 К тарифам", "sub:info"))
	_ = b.answerCallback(cb, "", false)
}

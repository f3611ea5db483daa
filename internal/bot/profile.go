package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/maybecook/mealbot/internal/dialog"
	"github.com/maybecook/mealbot/internal/domain/users"
)

func (b *Bot) showProfile(chatID int64, editMsgID int, u *users.User) {
	now := time.Now()
	st := b.eval.Evaluate(u, now)

	status := "🆓 Free"
	if st.Active {
		status = fmt.Sprintf("💎 %s, ещё %d дн.", strings.ToUpper(string(st.Tier)), st.DaysLeft)
	}

	questions := "безлимит"
	if left := b.eval.QuestionsLeft(u, now); left >= 0 {
		questions = fmt.Sprintf("%d из %d", left, b.eval.FreeQuestionsPerDay)
	}

	goal := goalTitle(u.Goal)
	if goal == "" {
		goal = "не выбрана"
	}

	text := fmt.Sprintf(`👤 *ТВОЙ ПРОФИЛЬ*

Подписка: %s
AI-вопросы сегодня: %s

🎯 Норма калорий: %d ккал/день
👨‍👩‍👧 Размер семьи: %d
🥗 Цель: %s

Настрой под себя — учтём в планах и итогах дня.`,
		status, questions, u.DailyCalories, u.FamilySize, goal)

	b.editMarkdown(chatID, editMsgID, text, profileKeyboard())
}

// goalTitle Русское название цели, пустая строка для неизвестной.
func goalTitle(goal string) string {
	return map[string]string{
		"loss":     "Похудение",
		"maintain": "Поддержание",
		"mass":     "Набор массы",
	}[goal]
}

func (b *Bot) startCaloriesInput(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	b.editMarkdown(chatID, cb.Message.MessageID,
		"🎯 Сколько ккал в день твоя цель?\n\nВведи число от 1000 до 6000:", cancelKeyboard())
	b.saveLastStep(ctx, chatID, dialog.StateAwaitCalories, nil, cb.Message.MessageID)
	_ = b.answerCallback(cb, "", false)
}

func (b *Bot) startFamilyInput(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	b.editMarkdown(chatID, cb.Message.MessageID,
		"👨‍👩‍👧 На сколько человек готовишь?\n\nВведи число от 1 до 10:", cancelKeyboard())
	b.saveLastStep(ctx, chatID, dialog.StateAwaitFamilySize, nil, cb.Message.MessageID)
	_ = b.answerCallback(cb, "", false)
}

func (b *Bot) startGoalSelect(cb *tgbotapi.CallbackQuery) {
	b.editMarkdown(cb.Message.Chat.ID, cb.Message.MessageID,
		"🥗 Какая у тебя цель?\n\nУчтём её в рекомендациях.", goalKeyboard())
	_ = b.answerCallback(cb, "", false)
}

func (b *Bot) setGoal(ctx context.Context, cb *tgbotapi.CallbackQuery, u *users.User, goal string) {
	title := goalTitle(goal)
	if title == "" {
		_ = b.answerCallback(cb, "Некорректная цель", false)
		return
	}
	if err := b.users.SetGoal(ctx, u.ID, goal); err != nil {
		b.log.Error("set goal failed", "user_id", u.ID, "err", err)
		_ = b.answerCallback(cb, "Ошибка, попробуйте ещё раз", true)
		return
	}
	u.Goal = goal
	b.showProfile(cb.Message.Chat.ID, cb.Message.MessageID, u)
	_ = b.answerCallback(cb, "Цель: "+title, false)
}

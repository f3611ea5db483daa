package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/maybecook/mealbot/internal/assistant"
	"github.com/maybecook/mealbot/internal/dialog"
	"github.com/maybecook/mealbot/internal/domain/users"
	"github.com/maybecook/mealbot/internal/infra/metrics"
)

func (b *Bot) quotaDeniedText() string {
	return fmt.Sprintf("❌ *Лимит вопросов исчерпан*\n\nFree: %d вопросов/день\n💎 Оформи подписку для безлимита!",
		b.eval.FreeQuestionsPerDay)
}

func subscribeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return backKeyboard("💎 Оформить подписку", "sub:info")
}

// startQuestion Вход в диалог с помощником. Проверка квоты здесь чистая,
// списание случится после реально отвеченного вопроса.
func (b *Bot) startQuestion(ctx context.Context, cb *tgbotapi.CallbackQuery, u *users.User, fromRecipe bool) {
	chatID := cb.Message.Chat.ID

	if !b.eval.CanAskQuestion(u, time.Now()) {
		metrics.QuestionsDenied.Inc()
		b.editMarkdown(chatID, cb.Message.MessageID, b.quotaDeniedText(), subscribeKeyboard())
		_ = b.answerCallback(cb, "", false)
		return
	}

	recipe := ""
	if fromRecipe {
		st, _ := b.states.Get(ctx, chatID)
		recipe, _ = dialog.GetString(st.Payload, "recipe")
	}

	header := "общий вопрос"
	if recipe != "" {
		header = "про: " + recipe
	}

	text := fmt.Sprintf(`🤖 *Задай вопрос (%s)*

Примеры:
• Чем заменить курицу?
• Сколько готовить в духовке?
• Как хранить готовое?

Напиши сообщением:`, header)

	b.editMarkdown(chatID, cb.Message.MessageID, text, cancelKeyboard())
	b.saveLastStep(ctx, chatID, dialog.StateAwaitQuestion, dialog.Payload{"recipe": recipe}, cb.Message.MessageID)
	_ = b.answerCallback(cb, "", false)
}

// handleQuestionText Ответ на вопрос. Free-тариф: сначала атомарное списание
// квоты, ответ уходит только после успешного списания — гонка двух сообщений
// не пробьёт лимит.
func (b *Bot) handleQuestionText(ctx context.Context, msg *tgbotapi.Message, u *users.User, payload dialog.Payload) {
	chatID := msg.Chat.ID
	now := time.Now()

	recipe, _ := dialog.GetString(payload, "recipe")
	question := strings.TrimSpace(msg.Text)

	answer := assistant.Answer(question, recipe)

	if !b.eval.Unlimited(u, now) {
		left, err := b.users.ConsumeQuestion(ctx, u.ID, now, b.eval.FreeQuestionsPerDay)
		if err != nil {
			if errors.Is(err, users.ErrQuotaExhausted) {
				metrics.QuestionsDenied.Inc()
				b.clearPrevStep(ctx, chatID)
				_ = b.states.Reset(ctx, chatID)
				kb := subscribeKeyboard()
				b.sendMarkdown(chatID, b.quotaDeniedText(), &kb)
				return
			}
			b.log.Error("consume question", "err", err, "user_id", u.ID)
			b.send(tgbotapi.NewMessage(chatID, "Ошибка, попробуйте ещё раз."))
			return
		}
		answer += fmt.Sprintf("\n\n📊 Осталось вопросов сегодня: %d", left)
	}

	metrics.QuestionsAnswered.Inc()
	b.clearPrevStep(ctx, chatID)
	_ = b.states.Reset(ctx, chatID)

	b.sendMarkdown(chatID, truncate("🤖 *Ответ:*\n\n"+answer, maxMessageLen), nil)

	followUp := tgbotapi.NewMessage(chatID, "Ещё вопрос? Нажми 🤖 AI Помощник в меню!")
	followUp.ReplyMarkup = backKeyboard("📋 Меню", "nav:main")
	b.send(followUp)
}

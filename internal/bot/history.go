package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/maybecook/mealbot/internal/dialog"
	"github.com/maybecook/mealbot/internal/domain/history"
	"github.com/maybecook/mealbot/internal/domain/recipes"
	"github.com/maybecook/mealbot/internal/domain/users"
)

// historyPageSize Сколько последних записей показываем в истории.
const historyPageSize = 10

// logCooked Запись «я приготовил» и сразу предложение оценить.
func (b *Bot) logCooked(ctx context.Context, cb *tgbotapi.CallbackQuery, u *users.User, day int, meal recipes.MealType) {
	rec, err := b.recipes.GetByDayMeal(ctx, day, meal)
	if err != nil {
		b.log.Error("get recipe", "err", err, "day", day, "meal", meal)
		_ = b.answerCallback(cb, "❌ Ошибка!", false)
		return
	}
	if rec == nil {
		_ = b.answerCallback(cb, "❌ Ошибка!", false)
		return
	}

	entryID, err := b.history.Add(ctx, u.ID, rec.ID)
	if err != nil {
		b.log.Error("add history entry", "err", err, "user_id", u.ID, "recipe_id", rec.ID)
		_ = b.answerCallback(cb, "❌ Ошибка!", false)
		return
	}

	_ = b.answerCallback(cb, "✅ Записано!", false)
	text := fmt.Sprintf("✅ *Приготовлено: %s*\n\nОцени блюдо:", shortTitle(rec.Title))
	b.editMarkdown(cb.Message.Chat.ID, cb.Message.MessageID, text, ratingKeyboard(entryID, day))
}

func (b *Bot) rateCooked(ctx context.Context, cb *tgbotapi.CallbackQuery, u *users.User, entryID int64, rating int) {
	if err := b.history.SetRating(ctx, entryID, u.ID, rating); err != nil {
		if errors.Is(err, history.ErrNotFound) {
			_ = b.answerCallback(cb, "Действие неактуально", false)
			return
		}
		b.log.Error("set rating", "err", err, "entry_id", entryID)
		_ = b.answerCallback(cb, "❌ Ошибка!", false)
		return
	}

	_ = b.answerCallback(cb, fmt.Sprintf("⭐ Оценка сохранена: %d/5", rating), false)
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Добавить заметку", fmt.Sprintf("cook:note:%d", entryID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Главное меню", "nav:main"),
		),
	)
	b.editMarkdown(cb.Message.Chat.ID, cb.Message.MessageID,
		fmt.Sprintf("⭐ Оценка сохранена: %d/5\n\nХочешь добавить заметку к блюду?", rating), kb)
}

// startCookNote Диалог заметки: id записи кладём в payload, ждём текст.
func (b *Bot) startCookNote(ctx context.Context, cb *tgbotapi.CallbackQuery, entryID int64) {
	chatID := cb.Message.Chat.ID
	b.editMarkdown(chatID, cb.Message.MessageID,
		"📝 Напиши заметку к блюду одним сообщением:", cancelKeyboard())
	b.saveLastStep(ctx, chatID, dialog.StateAwaitCookNote,
		dialog.Payload{"entry_id": float64(entryID)}, cb.Message.MessageID)
	_ = b.answerCallback(cb, "", false)
}

func (b *Bot) handleCookNoteText(ctx context.Context, msg *tgbotapi.Message, u *users.User, payload dialog.Payload) {
	chatID := msg.Chat.ID

	entryID, ok := dialog.GetInt64(payload, "entry_id")
	if !ok {
		_ = b.states.Reset(ctx, chatID)
		b.send(tgbotapi.NewMessage(chatID, "Действие неактуально"))
		return
	}

	notes := strings.TrimSpace(msg.Text)
	if err := b.history.SetNotes(ctx, entryID, u.ID, notes); err != nil {
		if errors.Is(err, history.ErrNotFound) {
			_ = b.states.Reset(ctx, chatID)
			b.send(tgbotapi.NewMessage(chatID, "Действие неактуально"))
			return
		}
		b.log.Error("set notes", "err", err, "entry_id", entryID)
		b.send(tgbotapi.NewMessage(chatID, "Ошибка, попробуйте ещё раз."))
		return
	}

	b.clearPrevStep(ctx, chatID)
	_ = b.states.Reset(ctx, chatID)
	kb := backKeyboard("📋 Меню", "nav:main")
	b.sendMarkdown(chatID, "📝 Заметка сохранена.", &kb)
}

func (b *Bot) showHistory(ctx context.Context, chatID int64, editMsgID int, u *users.User) {
	list, err := b.history.ListByUser(ctx, u.ID, historyPageSize)
	if err != nil {
		b.log.Error("list history", "err", err, "user_id", u.ID)
		b.editMarkdown(chatID, editMsgID, "Ошибка: не удалось загрузить историю.",
			backKeyboard("🔙 Назад", "profile:show"))
		return
	}

	if len(list) == 0 {
		b.editMarkdown(chatID, editMsgID,
			"📖 *История пуста*\n\nОтмечай приготовленные блюда кнопкой '✅ Я приготовил!'",
			backKeyboard("🔙 Назад", "profile:show"))
		return
	}

	var sb strings.Builder
	sb.WriteString("📖 *ИСТОРИЯ ГОТОВКИ:*\n\n")
	for _, it := range list {
		fmt.Fprintf(&sb, "• %s: День %d — %s", it.CookedAt.Format("02.01"), it.DayNumber, shortTitle(it.Title))
		if it.Rating > 0 {
			fmt.Fprintf(&sb, " ⭐%d", it.Rating)
		}
		sb.WriteString("\n")
	}

	b.editMarkdown(chatID, editMsgID, sb.String(), backKeyboard("🔙 Назад", "profile:show"))
}

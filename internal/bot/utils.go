package bot

import (
	"context"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/maybecook/mealbot/internal/dialog"
	"github.com/maybecook/mealbot/internal/domain/recipes"
	"github.com/maybecook/mealbot/internal/domain/users"
)

/*** HELPERS ***/

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string, alert bool) error {
	resp := tgbotapi.NewCallback(cb.ID, text)
	resp.ShowAlert = alert
	_, err := b.api.Request(resp)
	return err
}

// upsertUser Профиль по каждому контакту: новому пользователю выдаётся
// триал на trialDays, у существующего обновляются имя и last_active.
func (b *Bot) upsertUser(ctx context.Context, from *tgbotapi.User) (*users.User, error) {
	trialUntil := time.Now().Add(time.Duration(b.trialDays) * 24 * time.Hour)
	return b.users.UpsertFromTelegram(ctx, users.Telegram{
		ID:        from.ID,
		Username:  from.UserName,
		FirstName: from.FirstName,
		LastName:  from.LastName,
	}, &trialUntil)
}

func (b *Bot) editTextAndClear(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID, messageID, text,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}},
	)
	b.send(edit)
}

// editMarkdown редактирует сообщение с Markdown-разметкой и клавиатурой.
func (b *Bot) editMarkdown(chatID int64, messageID int, text string, kb tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, kb)
	edit.ParseMode = tgbotapi.ModeMarkdown
	b.send(edit)
}

// sendMarkdown отправляет новое сообщение с Markdown-разметкой.
func (b *Bot) sendMarkdown(chatID int64, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	m := tgbotapi.NewMessage(chatID, text)
	m.ParseMode = tgbotapi.ModeMarkdown
	if kb != nil {
		m.ReplyMarkup = *kb
	}
	b.send(m)
}

// clearPrevStep убрать inline-кнопки у прошлого шага, если он был
func (b *Bot) clearPrevStep(ctx context.Context, chatID int64) {
	st, _ := b.states.Get(ctx, chatID)
	if st == nil || st.Payload == nil {
		return
	}
	if v, ok := st.Payload["last_mid"]; ok {
		mid := int(v.(float64)) // payload хранится через JSON
		// просто чистим markup, текст оставляем как есть
		rm := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
		b.send(tgbotapi.NewEditMessageReplyMarkup(chatID, mid, rm))
	}
}

// saveLastStep сохранить id текущего бот-сообщения как «последний»
func (b *Bot) saveLastStep(ctx context.Context, chatID int64, nextState dialog.State, payload dialog.Payload, newMID int) {
	if payload == nil {
		payload = dialog.Payload{}
	}
	payload["last_mid"] = float64(newMID)
	_ = b.states.Set(ctx, chatID, nextState, payload)
}

// parseDay разбирает номер дня из callback-суффикса, 1..DaysTotal.
func parseDay(s string) (int, bool) {
	day, err := strconv.Atoi(s)
	if err != nil || day < 1 || day > DaysTotal {
		return 0, false
	}
	return day, true
}

// parseDayMeal разбирает суффикс вида "12:lunch".
func parseDayMeal(s string) (int, recipes.MealType, bool) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, "", false
	}
	day, ok := parseDay(parts[0])
	if !ok {
		return 0, "", false
	}
	meal := recipes.MealType(parts[1])
	if !meal.Valid() {
		return 0, "", false
	}
	return day, meal, true
}

const maxMessageLen = 4000

// truncate обрезает текст под лимит телеграма, не разрывая руну.
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit]) + "..."
}

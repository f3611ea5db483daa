package bot

import (
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/maybecook/mealbot/internal/domain/users"
)

const lockedDayText = "🔒 Доступно по подписке!\n\nОформите Basic или Pro для доступа к дням 8-30."

// showDaysMenu Сетка дней 1..30. Недоступные дни помечаем замком,
// нажатие на них даёт alert, а не переход.
func (b *Bot) showDaysMenu(chatID int64, editMsgID int, u *users.User) {
	now := time.Now()
	st := b.eval.Evaluate(u, now)

	var text string
	if st.Active {
		text = fmt.Sprintf("📅 Выбери день (1-%d):", DaysTotal)
	} else {
		text = fmt.Sprintf("📅 Выбери день (1-%d бесплатно):\n\n🔒 Дни %d-%d доступны по подписке!",
			b.eval.FreeDaysVisible, b.eval.FreeDaysVisible+1, DaysTotal)
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for day := 1; day <= DaysTotal; day++ {
		if b.eval.CanViewDay(u, day, now) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(
				strconv.Itoa(day), fmt.Sprintf("day:%d", day)))
		} else {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(
				"🔒", fmt.Sprintf("locked:%d", day)))
		}
		if len(row) == 7 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "nav:main")))

	b.editMarkdown(chatID, editMsgID, text, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// showDay Экран одного дня: выбор приёма пищи.
func (b *Bot) showDay(chatID int64, editMsgID int, u *users.User, day int) {
	if !b.eval.CanViewDay(u, day, time.Now()) {
		b.editMarkdown(chatID, editMsgID, lockedDayText, lockedKeyboard())
		return
	}

	text := fmt.Sprintf("📅 *ДЕНЬ %d*\n\nВыбери приём пищи:", day)
	b.editMarkdown(chatID, editMsgID, text, dayKeyboard(day))
}

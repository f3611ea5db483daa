package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/maybecook/mealbot/internal/domain/recipes"
)

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 План на день", "menu:days"),
			tgbotapi.NewInlineKeyboardButtonData("🔥 Аэрогриль", "menu:aeroguide"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛒 Закупки", "menu:shopping"),
			tgbotapi.NewInlineKeyboardButtonData("⭐ Избранное", "fav:list"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🤖 AI Помощник", "qa:start"),
			tgbotapi.NewInlineKeyboardButtonData("💎 Подписка", "sub:info"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👤 Профиль", "profile:show"),
			tgbotapi.NewInlineKeyboardButtonData("❓ Помощь", "menu:help"),
		),
	)
}

// backKeyboard Одна кнопка возврата с произвольной подписью.
func backKeyboard(label, data string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, data),
		),
	)
}

func dayKeyboard(day int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🌅 Завтрак", fmt.Sprintf("meal:%d:breakfast", day)),
			tgbotapi.NewInlineKeyboardButtonData("🍽 Обед", fmt.Sprintf("meal:%d:lunch", day)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("☕ Полдник", fmt.Sprintf("meal:%d:snack", day)),
			tgbotapi.NewInlineKeyboardButtonData("🌙 Ужин", fmt.Sprintf("meal:%d:dinner", day)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🛒 Закупки на день", fmt.Sprintf("shopday:%d", day)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Итого день", fmt.Sprintf("total:%d", day)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 К дням", "menu:days"),
		),
	)
}

func mealKeyboard(day int, meal recipes.MealType) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⭐ В избранное", fmt.Sprintf("fav:add:%d:%s", day, meal)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Я приготовил!", fmt.Sprintf("cook:log:%d:%s", day, meal)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🤖 Вопрос про блюдо", "qa:recipe"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", fmt.Sprintf("day:%d", day)),
		),
	)
}

// lockedKeyboard Страница «доступно по подписке».
func lockedKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💎 Подписка", "sub:info"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "menu:days"),
		),
	)
}

// ratingKeyboard Оценка записи «я приготовил» 1..5.
func ratingKeyboard(entryID int64, day int) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{}
	for n := 1; n <= 5; n++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%d⭐", n),
			fmt.Sprintf("cook:rate:%d:%d", entryID, n),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		row,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 К дню", fmt.Sprintf("day:%d", day)),
		),
	)
}

func profileKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🎯 Норма калорий", "profile:calories"),
			tgbotapi.NewInlineKeyboardButtonData("👨‍👩‍👧 Семья", "profile:family"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🥗 Цель", "profile:goal"),
			tgbotapi.NewInlineKeyboardButtonData("📖 История готовки", "cook:list"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "nav:main"),
		),
	)
}

func goalKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📉 Похудение", "profile:goal:loss"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚖️ Поддержание", "profile:goal:maintain"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💪 Набор массы", "profile:goal:mass"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "profile:show"),
		),
	)
}

func cancelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return backKeyboard("🔙 Отмена", "nav:main")
}

package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/maybecook/mealbot/internal/domain/recipes"
	"github.com/maybecook/mealbot/internal/domain/users"
)

// shortTitle Название до первого двоеточия. В списках полный заголовок
// с описанием не нужен.
func shortTitle(title string) string {
	if i := strings.Index(title, ":"); i >= 0 {
		return title[:i]
	}
	return title
}

func (b *Bot) addFavorite(ctx context.Context, cb *tgbotapi.CallbackQuery, u *users.User, day int, meal recipes.MealType) {
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

	added, err := b.favs.Add(ctx, u.ID, rec.ID)
	if err != nil {
		b.log.Error("add favorite", "err", err, "user_id", u.ID, "recipe_id", rec.ID)
		_ = b.answerCallback(cb, "❌ Ошибка!", false)
		return
	}
	if added {
		_ = b.answerCallback(cb, "⭐ Добавлено в избранное!", false)
	} else {
		_ = b.answerCallback(cb, "⭐ Уже в избранном!", false)
	}
}

func (b *Bot) showFavorites(ctx context.Context, chatID int64, editMsgID int, u *users.User) {
	list, err := b.favs.ListByUser(ctx, u.ID)
	if err != nil {
		b.log.Error("list favorites", "err", err, "user_id", u.ID)
		b.editMarkdown(chatID, editMsgID, "Ошибка: не удалось загрузить избранное.",
			backKeyboard("🔙 Назад", "nav:main"))
		return
	}

	if len(list) == 0 {
		b.editMarkdown(chatID, editMsgID,
			"⭐ *Избранное пусто*\n\nДобавляй блюда через кнопку '⭐ В избранное'",
			backKeyboard("🔙 Назад", "nav:main"))
		return
	}

	var sb strings.Builder
	sb.WriteString("⭐ *ТВОЁ ИЗБРАННОЕ:*\n\n")
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, it := range list {
		fmt.Fprintf(&sb, "• День %d — %s\n", it.DayNumber, shortTitle(it.Title))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("🗑 День %d — %s", it.DayNumber, shortTitle(it.Title)),
				fmt.Sprintf("fav:rm:%d", it.RecipeID),
			),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "nav:main")))

	b.editMarkdown(chatID, editMsgID, sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// removeFavorite Удаляем и сразу перерисовываем список.
func (b *Bot) removeFavorite(ctx context.Context, cb *tgbotapi.CallbackQuery, u *users.User, recipeID int64) {
	if err := b.favs.Remove(ctx, u.ID, recipeID); err != nil {
		b.log.Error("remove favorite", "err", err, "user_id", u.ID, "recipe_id", recipeID)
		_ = b.answerCallback(cb, "❌ Ошибка!", false)
		return
	}
	_ = b.answerCallback(cb, "🗑 Удалено из избранного", false)
	b.showFavorites(ctx, cb.Message.Chat.ID, cb.Message.MessageID, u)
}

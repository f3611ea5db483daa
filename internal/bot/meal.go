package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/maybecook/mealbot/internal/dialog"
	"github.com/maybecook/mealbot/internal/domain/recipes"
	"github.com/maybecook/mealbot/internal/domain/users"
	"github.com/maybecook/mealbot/internal/infra/metrics"
)

// mealCardText Собирает карточку блюда из текстовых блоков рецепта.
func mealCardText(r *recipes.Recipe) string {
	parts := []string{r.Title, r.Shopping, r.Portion, r.Instructions, r.CaloriesText}
	return strings.Join(parts, "\n\n")
}

// splitShopping Разбирает блок закупок на позиции по маркеру '•'.
func splitShopping(shopping string) []string {
	var items []string
	for _, part := range strings.Split(shopping, "•") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		items = append(items, part)
	}
	return items
}

// totalsText Сводка дня: калории по приёмам пищи, суммарное БЖУ и вердикт
// относительно нормы пользователя. Отклонение строго меньше 100 ккал
// считается попаданием в норму.
func totalsText(day int, list []recipes.Recipe, dailyCalories int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 *ИТОГО ДЕНЬ %d*\n\n", day)
	sb.WriteString("*По приёмам пищи:*\n")

	total := 0
	var proteins, fats, carbs float64
	for _, r := range list {
		total += r.CaloriesValue
		proteins += r.Proteins
		fats += r.Fats
		carbs += r.Carbs
		fmt.Fprintf(&sb, "  %s %d ккал\n", r.MealType.Emoji(), r.CaloriesValue)
	}

	sb.WriteString("\n*🔥 Всего за день:*\n")
	fmt.Fprintf(&sb, "  Калории: %d ккал\n", total)
	if proteins > 0 {
		fmt.Fprintf(&sb, "  Белки: %.1fг\n", proteins)
		fmt.Fprintf(&sb, "  Жиры: %.1fг\n", fats)
		fmt.Fprintf(&sb, "  Углеводы: %.1fг\n", carbs)
	}

	if dailyCalories > 0 {
		diff := dailyCalories - total
		switch {
		case diff > -100 && diff < 100:
			fmt.Fprintf(&sb, "\n✅ *Идеально!* Соответствует твоей норме (%d ккал)", dailyCalories)
		case diff > 0:
			fmt.Fprintf(&sb, "\n⚡ *Ниже нормы* на %d ккал\nМожно добавить перекус!", diff)
		default:
			fmt.Fprintf(&sb, "\n⚠️ *Выше нормы* на %d ккал\nУчти при планировании!", -diff)
		}
	}
	return sb.String()
}

// showMeal Карточка блюда. Название запоминаем в payload диалога, чтобы
// кнопка «Вопрос про блюдо» знала контекст.
func (b *Bot) showMeal(ctx context.Context, chatID int64, editMsgID int, u *users.User, day int, meal recipes.MealType) {
	if !b.eval.CanViewDay(u, day, time.Now()) {
		b.editMarkdown(chatID, editMsgID, lockedDayText, lockedKeyboard())
		return
	}

	rec, err := b.recipes.GetByDayMeal(ctx, day, meal)
	if err != nil {
		b.log.Error("get recipe", "err", err, "day", day, "meal", meal)
		b.editMarkdown(chatID, editMsgID, "Ошибка: не удалось загрузить рецепт.", backKeyboard("🔙 К дню", fmt.Sprintf("day:%d", day)))
		return
	}
	if rec == nil {
		b.editMarkdown(chatID, editMsgID, "❌ Рецепт не найден", backKeyboard("🔙 К дню", fmt.Sprintf("day:%d", day)))
		return
	}

	if err := b.states.Set(ctx, chatID, dialog.StateIdle, dialog.Payload{"recipe": rec.Title}); err != nil {
		b.log.Error("save recipe context", "err", err, "chat_id", chatID)
	}
	metrics.RecipeViews.Inc()

	b.editMarkdown(chatID, editMsgID, truncate(mealCardText(rec), maxMessageLen), mealKeyboard(day, meal))
}

// showShopDay Список закупок на день одним сообщением.
func (b *Bot) showShopDay(ctx context.Context, chatID int64, editMsgID int, u *users.User, day int) {
	if !b.eval.CanViewDay(u, day, time.Now()) {
		b.editMarkdown(chatID, editMsgID, lockedDayText, lockedKeyboard())
		return
	}

	list, err := b.recipes.ListByDay(ctx, day)
	if err != nil {
		b.log.Error("list recipes", "err", err, "day", day)
		b.editMarkdown(chatID, editMsgID, "Ошибка: не удалось загрузить закупки.", backKeyboard("🔙 К дню", fmt.Sprintf("day:%d", day)))
		return
	}
	if len(list) == 0 {
		b.editMarkdown(chatID, editMsgID, "Рецепты не найдены.", backKeyboard("🔙 К дням", "menu:days"))
		return
	}

	var items []string
	for _, r := range list {
		items = append(items, splitShopping(r.Shopping)...)
	}
	if len(items) == 0 {
		b.editMarkdown(chatID, editMsgID, "Список закупок пуст.", backKeyboard("🔙 К дню", fmt.Sprintf("day:%d", day)))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🛒 *ЗАКУПКИ НА ДЕНЬ %d*\n\n", day)
	for i, item := range items {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, item)
	}
	fmt.Fprintf(&sb, "\n_Всего позиций: %d_", len(items))

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 К дню", fmt.Sprintf("day:%d", day)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🏠 В главное меню", "nav:main"),
		),
	)
	b.editMarkdown(chatID, editMsgID, truncate(sb.String(), maxMessageLen), kb)
}

// showTotalDay Калорийность дня против нормы пользователя.
func (b *Bot) showTotalDay(ctx context.Context, chatID int64, editMsgID int, u *users.User, day int) {
	if !b.eval.CanViewDay(u, day, time.Now()) {
		b.editMarkdown(chatID, editMsgID, lockedDayText, lockedKeyboard())
		return
	}

	list, err := b.recipes.ListByDay(ctx, day)
	if err != nil {
		b.log.Error("list recipes", "err", err, "day", day)
		b.editMarkdown(chatID, editMsgID, "Ошибка: не удалось посчитать итог.", backKeyboard("🔙 К дню", fmt.Sprintf("day:%d", day)))
		return
	}
	if len(list) == 0 {
		b.editMarkdown(chatID, editMsgID, "Рецепты не найдены.", backKeyboard("🔙 К дням", "menu:days"))
		return
	}

	b.editMarkdown(chatID, editMsgID, totalsText(day, list, u.DailyCalories),
		backKeyboard("🔙 К дню", fmt.Sprintf("day:%d", day)))
}

package bot

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/maybecook/mealbot/internal/dialog"
)

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	u, err := b.upsertUser(ctx, msg.From)
	if err != nil {
		b.log.Error("upsert user failed", "tg_id", msg.From.ID, "err", err)
		b.send(tgbotapi.NewMessage(chatID, "Ошибка: не удалось сохранить профиль"))
		return
	}

	switch msg.Command() {
	case "start", "menu":
		_ = b.states.Reset(ctx, chatID)
		b.showMainMenu(chatID, nil, u)
		return

	case "help":
		b.sendHelp(chatID)
		return

	default:
		b.send(tgbotapi.NewMessage(chatID, "Не знаю такую команду. Наберите /help"))
		return
	}
}

func (b *Bot) handleStateMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	st, _ := b.states.Get(ctx, chatID)

	switch st.State {
	case dialog.StateAwaitQuestion:
		u, err := b.upsertUser(ctx, msg.From)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, "Ошибка, попробуйте ещё раз."))
			return
		}
		b.handleQuestionText(ctx, msg, u, st.Payload)
		return

	case dialog.StateAwaitCookNote:
		u, err := b.upsertUser(ctx, msg.From)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, "Ошибка, попробуйте ещё раз."))
			return
		}
		b.handleCookNoteText(ctx, msg, u, st.Payload)
		return

	case dialog.StateAwaitCalories:
		s := strings.TrimSpace(msg.Text)
		calories, err := strconv.Atoi(s)
		if err != nil || calories < 1000 || calories > 6000 {
			b.send(tgbotapi.NewMessage(chatID, "Введите число от 1000 до 6000 (ккал в день)."))
			return
		}
		u, err := b.upsertUser(ctx, msg.From)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, "Ошибка, попробуйте ещё раз."))
			return
		}
		if err := b.users.SetDailyCalories(ctx, u.ID, calories); err != nil {
			b.log.Error("set daily calories failed", "user_id", u.ID, "err", err)
			b.send(tgbotapi.NewMessage(chatID, "Ошибка, попробуйте ещё раз."))
			return
		}
		b.clearPrevStep(ctx, chatID)
		_ = b.states.Reset(ctx, chatID)
		kb := backKeyboard("📋 Меню", "nav:main")
		b.sendMarkdown(chatID, "🎯 Норма обновлена: *"+s+" ккал* в день.", &kb)
		return

	case dialog.StateAwaitFamilySize:
		s := strings.TrimSpace(msg.Text)
		size, err := strconv.Atoi(s)
		if err != nil || size < 1 || size > 10 {
			b.send(tgbotapi.NewMessage(chatID, "Введите число от 1 до 10 (человек в семье)."))
			return
		}
		u, err := b.upsertUser(ctx, msg.From)
		if err != nil {
			b.send(tgbotapi.NewMessage(chatID, "Ошибка, попробуйте ещё раз."))
			return
		}
		if err := b.users.SetFamilySize(ctx, u.ID, size); err != nil {
			b.log.Error("set family size failed", "user_id", u.ID, "err", err)
			b.send(tgbotapi.NewMessage(chatID, "Ошибка, попробуйте ещё раз."))
			return
		}
		b.clearPrevStep(ctx, chatID)
		_ = b.states.Reset(ctx, chatID)
		kb := backKeyboard("📋 Меню", "nav:main")
		b.sendMarkdown(chatID, "👨‍👩‍👧 Размер семьи обновлён: *"+s+"*.", &kb)
		return
	}

	// Свободный текст вне диалога считается вопросом помощнику; контекст
	// рецепта, если последней открывалась карточка, уже лежит в payload.
	if strings.TrimSpace(msg.Text) == "" {
		return
	}
	u, err := b.upsertUser(ctx, msg.From)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, "Ошибка, попробуйте ещё раз."))
		return
	}
	b.handleQuestionText(ctx, msg, u, st.Payload)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	data := cb.Data
	chatID := cb.Message.Chat.ID

	u, err := b.upsertUser(ctx, cb.From)
	if err != nil {
		b.log.Error("upsert user failed", "tg_id", cb.From.ID, "err", err)
		_ = b.answerCallback(cb, "Ошибка, попробуйте ещё раз", true)
		return
	}

	switch {
	case data == "nav:main":
		_ = b.states.Reset(ctx, chatID)
		b.showMainMenu(chatID, &cb.Message.MessageID, u)
		_ = b.answerCallback(cb, "", false)

	case data == "menu:days":
		b.showDaysMenu(chatID, cb.Message.MessageID, u)
		_ = b.answerCallback(cb, "", false)

	case strings.HasPrefix(data, "day:"):
		day, ok := parseDay(strings.TrimPrefix(data, "day:"))
		if !ok {
			_ = b.answerCallback(cb, "Некорректный день", false)
			return
		}
		b.showDay(chatID, cb.Message.MessageID, u, day)
		_ = b.answerCallback(cb, "", false)

	case strings.HasPrefix(data, "locked:"):
		_ = b.answerCallback(cb, "🔒 Доступно по подписке!", true)

	case strings.HasPrefix(data, "meal:"):
		day, meal, ok := parseDayMeal(strings.TrimPrefix(data, "meal:"))
		if !ok {
			_ = b.answerCallback(cb, "Некорректный запрос", false)
			return
		}
		b.showMeal(ctx, chatID, cb.Message.MessageID, u, day, meal)
		_ = b.answerCallback(cb, "", false)

	case strings.HasPrefix(data, "shopday:"):
		day, ok := parseDay(strings.TrimPrefix(data, "shopday:"))
		if !ok {
			_ = b.answerCallback(cb, "Некорректный день", false)
			return
		}
		b.showShopDay(ctx, chatID, cb.Message.MessageID, u, day)
		_ = b.answerCallback(cb, "", false)

	case strings.HasPrefix(data, "total:"):
		day, ok := parseDay(strings.TrimPrefix(data, "total:"))
		if !ok {
			_ = b.answerCallback(cb, "Некорректный день", false)
			return
		}
		b.showTotalDay(ctx, chatID, cb.Message.MessageID, u, day)
		_ = b.answerCallback(cb, "", false)

	case strings.HasPrefix(data, "fav:add:"):
		day, meal, ok := parseDayMeal(strings.TrimPrefix(data, "fav:add:"))
		if !ok {
			_ = b.answerCallback(cb, "Некорректный запрос", false)
			return
		}
		b.addFavorite(ctx, cb, u, day, meal)

	case data == "fav:list":
		b.showFavorites(ctx, chatID, cb.Message.MessageID, u)
		_ = b.answerCallback(cb, "", false)

	case strings.HasPrefix(data, "fav:rm:"):
		recipeID, err := strconv.ParseInt(strings.TrimPrefix(data, "fav:rm:"), 10, 64)
		if err != nil {
			_ = b.answerCallback(cb, "Некорректный запрос", false)
			return
		}
		b.removeFavorite(ctx, cb, u, recipeID)

	case strings.HasPrefix(data, "cook:log:"):
		day, meal, ok := parseDayMeal(strings.TrimPrefix(data, "cook:log:"))
		if !ok {
			_ = b.answerCallback(cb, "Некорректный запрос", false)
			return
		}
		b.logCooked(ctx, cb, u, day, meal)

	case strings.HasPrefix(data, "cook:rate:"):
		parts := strings.Split(strings.TrimPrefix(data, "cook:rate:"), ":")
		if len(parts) != 2 {
			_ = b.answerCallback(cb, "Некорректный запрос", false)
			return
		}
		entryID, err1 := strconv.ParseInt(parts[0], 10, 64)
		rating, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil || rating < 1 || rating > 5 {
			_ = b.answerCallback(cb, "Некорректный запрос", false)
			return
		}
		b.rateCooked(ctx, cb, u, entryID, rating)

	case strings.HasPrefix(data, "cook:note:"):
		entryID, err := strconv.ParseInt(strings.TrimPrefix(data, "cook:note:"), 10, 64)
		if err != nil {
			_ = b.answerCallback(cb, "Некорректный запрос", false)
			return
		}
		b.startCookNote(ctx, cb, entryID)

	case data == "cook:list":
		b.showHistory(ctx, chatID, cb.Message.MessageID, u)
		_ = b.answerCallback(cb, "", false)

	case data == "qa:start":
		b.startQuestion(ctx, cb, u, false)

	case data == "qa:recipe":
		b.startQuestion(ctx, cb, u, true)

	case data == "sub:info":
		b.showSubscription(chatID, cb.Message.MessageID, u)
		_ = b.answerCallback(cb, "", false)

	case strings.HasPrefix(data, "sub:buy:"):
		b.buyPlan(ctx, cb, u, strings.TrimPrefix(data, "sub:buy:"))

	case data == "profile:show":
		b.showProfile(chatID, cb.Message.MessageID, u)
		_ = b.answerCallback(cb, "", false)

	case data == "profile:calories":
		b.startCaloriesInput(ctx, cb)

	case data == "profile:family":
		b.startFamilyInput(ctx, cb)

	case data == "profile:goal":
		b.startGoalSelect(cb)

	case strings.HasPrefix(data, "profile:goal:"):
		b.setGoal(ctx, cb, u, strings.TrimPrefix(data, "profile:goal:"))

	case data == "menu:aeroguide":
		b.showAeroguide(chatID, cb.Message.MessageID)
		_ = b.answerCallback(cb, "", false)

	case data == "menu:help":
		b.showHelp(chatID, cb.Message.MessageID)
		_ = b.answerCallback(cb, "", false)

	case data == "menu:shopping":
		b.showStub(chatID, cb.Message.MessageID)
		_ = b.answerCallback(cb, "", false)

	default:
		_ = b.answerCallback(cb, "Действие неактуально", false)
	}
}

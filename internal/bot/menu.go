package bot

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/maybecook/mealbot/internal/domain/users"
	"github.com/maybecook/mealbot/internal/entitlement"
)

// showMainMenu Главный экран. editMsgID == nil — новое сообщение (команды),
// иначе редактируем текущее (возврат по кнопке).
func (b *Bot) showMainMenu(chatID int64, editMsgID *int, u *users.User) {
	st := b.eval.Evaluate(u, time.Now())

	text := fmt.Sprintf(`👋 Привет, %s!

🍽 Это MaybeCook — твой персональный план питания на %d дней!

✅ Что внутри:
• Полные рецепты с граммовкой
• Списки закупок
• Всё для аэрогриля
• AI-помощник

`, u.FirstName, DaysTotal)

	if st.Active {
		text += fmt.Sprintf("🎁 У тебя %d дней доступа!", st.DaysLeft)
	} else {
		text += fmt.Sprintf("🔒 Подписка неактивна. Дни 1-%d открыты бесплатно!", b.eval.FreeDaysVisible)
	}

	kb := mainMenuKeyboard()
	if editMsgID != nil {
		b.editMarkdown(chatID, *editMsgID, text, kb)
	} else {
		b.sendMarkdown(chatID, text, &kb)
	}
}

const aeroguideText = `🔥 *СПРАВОЧНИК АЭРОГРИЛЯ*

*🍗 КУРИЦА:*
• Бёдра — 190°C, 35-40 мин (кожей вверх!)
• Филе — 180°C, 25-30 мин (в фольге для сочности)
• Крылышки — 200°C, 30-35 мин (перевернуть на 15 мин)
• Голени — 190°C, 40 мин (перевернуть на 25 мин)

*🥩 СВИНИНА:*
• Стейки — 190°C, 25-30 мин (отдых 5 мин!)
• Рёбрышки — 180°C, 45-50 мин (фольга 30 мин)
• Котлеты — 190°C, 20-25 мин
• Тушение — 180°C, 50-60 мин

*🥩 ГОВЯДИНА:*
• Стейк medium — 160°C, 15-20 мин
• Ростбиф — 150°C, 40-50 мин

*🐟 РЫБА:*
• Филе белой рыбы — 160°C, 12-15 мин
• Лосось — 150°C, 10-12 мин
• Креветки — 180°C, 5-7 мин

*🥔 ГАРНИРЫ:*
• Картофель по-деревенски — 200°C, 25-30 мин
• Овощи гриль — 180°C, 20-25 мин
• Брокколи — 180°C, 8-10 мин
• Перец — 180°C, 10-12 мин
• Кабачки — 170°C, 12-15 мин

*💡 ЗОЛОТЫЕ СОВЕТЫ:*
• Разогревай аэрогриль 5 минут перед готовкой
• Не складывай продукты внахлёст — готовь одним слоем
• Переворачивай на половине времени
• Давай мясу отдохнуть 5 минут после готовки
• Маринуй минимум 20 минут для вкуса
• Смазывай решётку маслом
• Добавляй специи за 10 минут до готовности

*❌ ЧТО НЕЛЬЗЯ:*
• Слишком высокая температура — снаружи горит, внутри сыро
• Много еды сразу — готовится неравномерно
• Не прогрел аэрогриль — добавь 3-5 минут к времени`

func (b *Bot) showAeroguide(chatID int64, editMsgID int) {
	b.editMarkdown(chatID, editMsgID, aeroguideText, backKeyboard("🔙 Назад в меню", "nav:main"))
}

func (b *Bot) helpText() string {
	basic := b.plans[entitlement.TierBasic]
	pro := b.plans[entitlement.TierPro]

	return fmt.Sprintf(`👋 *ПРИВЕТ! Я ПОМОГУ РАЗОБРАТЬСЯ*

*🚀 КАК НАЧАТЬ ГОТОВИТЬ?*
Всё просто:
1️⃣ Жми *"📅 План на день"*
2️⃣ Выбирай день (1-%d) — начни с 1-го!
3️⃣ Выбирай приём пищи: завтрак, обед, ужин
4️⃣ Следуй рецепту — там всё расписано пошагово

*💡 ЛАЙФХАКИ:*

*Как не потерять классный рецепт?*
Нажми ⭐ внизу рецепта — он сохранится в "Избранное". Больше не ищешь по 5 минут!

*AI — твой друг!*
Задавай вопросы: "Чем заменить курицу?" или "Сколько калорий в порции?"
Free: %d вопросов/день | Basic и Pro: безлимит!

*Что делать, если нет продукта?*
Спроси AI — он подскажет замену. Или загляни в "Аэрогриль" — там таблица замен!

*🎁 БЕСПЛАТНО vs ПЛАТНО:*

*Бесплатно:*
• Дни 1-%d программы
• %d AI-вопросов в день

*Basic (%d₽):*
• Все %d дней питания
• Безлимитный AI
• Расчёт калорий под тебя
• Закупки на день

*Pro (%d₽):*
• Всё из Basic
• Готовь для всей семьи (5 чел)
• Личный диетолог-куратор
• Рецепты раньше всех!

*❓ ЧАСТЫЕ ВОПРОСЫ:*

*Q: Можно ли заморозить блюдо?*
A: Конечно! Укажу в рецепте, что замораживается. Обычно до 3 месяцев.

*Q: Не ем мясо, есть ли альтернативы?*
A: AI подберёт замены — спроси его. Или пиши в поддержку!

*Q: Как рассчитать порции на 3 человека?*
A: Укажи размер семьи в профиле — учтём при планировании!

*🆘 НЕ РАБОТАЕТ / ЕСТЬ ВОПРОС?*
Пиши сюда: @your_support_username
Отвечаем быстро, помогаем всем! 💪`,
		DaysTotal,
		b.eval.FreeQuestionsPerDay,
		b.eval.FreeDaysVisible, b.eval.FreeQuestionsPerDay,
		basic.Price, DaysTotal,
		pro.Price,
	)
}

func helpKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔥 Справочник аэрогриля", "menu:aeroguide"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💎 Оформить подписку", "sub:info"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад в меню", "nav:main"),
		),
	)
}

func (b *Bot) showHelp(chatID int64, editMsgID int) {
	b.editMarkdown(chatID, editMsgID, b.helpText(), helpKeyboard())
}

func (b *Bot) sendHelp(chatID int64) {
	kb := helpKeyboard()
	b.sendMarkdown(chatID, b.helpText(), &kb)
}

// showStub Разделы, которых пока нет.
func (b *Bot) showStub(chatID int64, editMsgID int) {
	b.editMarkdown(chatID, editMsgID,
		"🚧 *В разработке*\n\nЭта функция скоро будет доступна!",
		backKeyboard("🔙 Назад", "nav:main"))
}

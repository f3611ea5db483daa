// Package assistant отвечает на вопросы о меню без внешних API:
// готовые ответы подбираются по ключевым словам в тексте вопроса.
package assistant

import (
	"fmt"
	"strings"
)

// topic — блок знаний и слова-триггеры, по которым он выбирается.
type topic struct {
	triggers []string
	answer   string
}

// Порядок тем фиксирован: выигрывает первая совпавшая.
var topics = []topic{
	{
		triggers: []string{"замен", "вместо", "нет", "другой"},
		answer: `🔄 *ЗАМЕНА ПРОДУКТОВ*

*Мясо:*
• Курица ↔️ Индейка (1:1)
• Свинина ↔️ Говядина (+10 мин)
• Фарш — любой вид

*Крупы:*
• Рис ↔️ Булгур ↔️ Кус-кус
• Гречка ↔️ Киноа
• Макароны — любые

*Молочка:*
• Сметана ↔️ Йогурт греческий
• Молоко ↔️ Кефир/Ряженка
• Творог — любой % жирности

*Овощи:*
• Любые сезонные замены`,
	},
	{
		triggers: []string{"время", "сколько", "готовить", "духовк"},
		answer: `⏱ *ВРЕМЯ ПРИГОТОВЛЕНИЯ*

*Если нет аэрогриля:*
• Духовка: +20°C, время ×1.5
• Сковорода: средний огонь, с крышкой
• Мультиварка: режим "Выпечка"

*Проверка готовности:*
• Курица: 74°C внутри
• Свинина: 71°C
• Дать отдохнуть 5 минут`,
	},
	{
		triggers: []string{"хран", "холодильник", "замороз"},
		answer: `❄️ *ХРАНЕНИЕ*

• Готовое мясо: 3 дня в холодильнике
• Супы: 2 дня
• Каши: 2 дня
• Заморозка: до 3 месяцев

💡 *Совет:* Готовь на 2 дня — экономь время!`,
	},
	{
		triggers: []string{"бжу", "белок", "калор", "питани"},
		answer: `📊 *БЖУ НА ДЕНЬ (2500 ккал)*

• Белки: 150г (25%)
• Жиры: 85г (30%)
• Углеводы: 280г (45%)

*Увеличить белок:*
• Протеин (+30г)
• Орехи (+10г)
• Творог (+15г)`,
	},
}

const recipeAdviceFmt = `💡 *Совет по блюду:* %s

• Можно приготовить заранее на 2 дня
• Хранить в закрытом контейнере
• Разогревать в аэрогриле 5 минут при 160°C

❓ Уточни вопрос:
• "Замена продуктов"
• "Время приготовления"
• "Хранение"
• "БЖУ/калории"`

const fallbackAnswer = `🤖 *Я готов помочь!*

Напиши вопрос про:
• Замену продуктов
• Время приготовления
• Хранение блюд
• БЖУ и калории

Или опиши свою ситуацию!`

// Answer подбирает ответ на вопрос. recipeContext — название блюда,
// если вопрос задан из карточки рецепта; тогда при отсутствии
// совпадений вернётся совет по этому блюду, иначе общая подсказка.
func Answer(question, recipeContext string) string {
	q := strings.ToLower(question)
	for _, t := range topics {
		for _, w := range t.triggers {
			if strings.Contains(q, w) {
				return t.answer
			}
		}
	}
	if recipeContext != "" {
		return fmt.Sprintf(recipeAdviceFmt, recipeContext)
	}
	return fallbackAnswer
}

package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maybecook/mealbot/internal/domain/recipes"
)

func TestMealCardText(t *testing.T) {
	r := &recipes.Recipe{
		Title:        "🌅 ЗАВТРАК ДЕНЬ 1: Овсянка с бананом",
		Shopping:     "• Овсянка — 120г\n• Банан — 1 шт",
		Portion:      "🍽 НА ПОРЦИЮ (1 человек): 260г",
		Instructions: "📝 ПРИГОТОВЛЕНИЕ:\n1. Залей овсянку молоком",
		CaloriesText: "🔥 КАЛОРИЙНОСТЬ: 550 ккал | Б: 20г | Ж: 12г | У: 80г",
	}

	text := mealCardText(r)

	assert.True(t, strings.HasPrefix(text, "🌅 ЗАВТРАК ДЕНЬ 1: Овсянка с бананом\n\n"))
	assert.Contains(t, text, "• Овсянка — 120г")
	assert.Contains(t, text, "1. Залей овсянку молоком")
	assert.True(t, strings.HasSuffix(text, "У: 80г"))
}

func TestSplitShopping(t *testing.T) {
	items := splitShopping("• Овсянка — 120г\n• Банан — 1 шт\n• Молоко — 200мл")
	assert.Equal(t, []string{"Овсянка — 120г", "Банан — 1 шт", "Молоко — 200мл"}, items)
}

func TestSplitShopping_Empty(t *testing.T) {
	assert.Nil(t, splitShopping(""))
	assert.Nil(t, splitShopping("   \n  "))
}

func TestTotalsText_InsideNorm(t *testing.T) {
	list := []recipes.Recipe{
		{MealType: recipes.MealBreakfast, CaloriesValue: 550, Proteins: 20, Fats: 12, Carbs: 80},
		{MealType: recipes.MealLunch, CaloriesValue: 700, Proteins: 45, Fats: 20, Carbs: 60},
		{MealType: recipes.MealSnack, CaloriesValue: 300, Proteins: 10, Fats: 8, Carbs: 40},
		{MealType: recipes.MealDinner, CaloriesValue: 900, Proteins: 50, Fats: 30, Carbs: 70},
	}

	text := totalsText(3, list, 2500)

	assert.Contains(t, text, "ИТОГО ДЕНЬ 3")
	assert.Contains(t, text, "🌅 550 ккал")
	assert.Contains(t, text, "Калории: 2450 ккал")
	assert.Contains(t, text, "Белки: 125.0г")
	assert.Contains(t, text, "✅ *Идеально!* Соответствует твоей норме (2500 ккал)")
}

func TestTotalsText_BelowNorm(t *testing.T) {
	list := []recipes.Recipe{
		{MealType: recipes.MealBreakfast, CaloriesValue: 400},
		{MealType: recipes.MealLunch, CaloriesValue: 500},
	}

	text := totalsText(1, list, 2500)

	assert.Contains(t, text, "Калории: 900 ккал")
	assert.Contains(t, text, "⚡ *Ниже нормы* на 1600 ккал")
	// без заполненного БЖУ строки белков/жиров не печатаются
	assert.NotContains(t, text, "Белки")
}

func TestTotalsText_AboveNorm(t *testing.T) {
	list := []recipes.Recipe{
		{MealType: recipes.MealDinner, CaloriesValue: 3000},
	}

	text := totalsText(9, list, 2500)

	assert.Contains(t, text, "⚠️ *Выше нормы* на 500 ккал")
}

// Граница допуска: отклонение строго меньше 100 ккал — норма,
// ровно 100 — уже нет.
func TestTotalsText_NormBoundary(t *testing.T) {
	inside := totalsText(1, []recipes.Recipe{{MealType: recipes.MealLunch, CaloriesValue: 2401}}, 2500)
	assert.Contains(t, inside, "✅ *Идеально!*")

	atEdge := totalsText(1, []recipes.Recipe{{MealType: recipes.MealLunch, CaloriesValue: 2400}}, 2500)
	assert.Contains(t, atEdge, "⚡ *Ниже нормы* на 100 ккал")
}

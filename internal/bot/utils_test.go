package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maybecook/mealbot/internal/domain/recipes"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		in  string
		day int
		ok  bool
	}{
		{"1", 1, true},
		{"30", 30, true},
		{"0", 0, false},
		{"31", 0, false},
		{"-5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		day, ok := parseDay(tt.in)
		assert.Equal(t, tt.ok, ok, "parseDay(%q)", tt.in)
		assert.Equal(t, tt.day, day, "parseDay(%q)", tt.in)
	}
}

func TestParseDayMeal(t *testing.T) {
	day, meal, ok := parseDayMeal("12:lunch")
	assert.True(t, ok)
	assert.Equal(t, 12, day)
	assert.Equal(t, recipes.MealLunch, meal)

	_, _, ok = parseDayMeal("12")
	assert.False(t, ok)

	_, _, ok = parseDayMeal("99:lunch")
	assert.False(t, ok)

	_, _, ok = parseDayMeal("5:brunch")
	assert.False(t, ok)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "абв", truncate("абв", 5))
	assert.Equal(t, "абвгд", truncate("абвгд", 5))

	// лимит считается в рунах, кириллица не рвётся посередине
	got := truncate("абвгде", 5)
	assert.Equal(t, "абвгд...", got)
}

func TestShortTitle(t *testing.T) {
	assert.Equal(t, "🌅 ЗАВТРАК ДЕНЬ 1", shortTitle("🌅 ЗАВТРАК ДЕНЬ 1: Овсянка с бананом"))
	assert.Equal(t, "Просто название", shortTitle("Просто название"))
}

func TestDayKeyboardCallbacks(t *testing.T) {
	kb := dayKeyboard(12)

	var datas []string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			if btn.CallbackData != nil {
				datas = append(datas, *btn.CallbackData)
			}
		}
	}
	joined := strings.Join(datas, " ")
	assert.Contains(t, joined, "meal:12:breakfast")
	assert.Contains(t, joined, "meal:12:dinner")
	assert.Contains(t, joined, "shopday:12")
	assert.Contains(t, joined, "total:12")
}

package admin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/maybecook/mealbot/internal/domain/recipes"
	"github.com/maybecook/mealbot/internal/domain/users"
	"github.com/maybecook/mealbot/internal/entitlement"
)

func TestRecipesXLSXRoundTrip(t *testing.T) {
	src := []recipes.Recipe{
		{
			DayNumber:     1,
			MealType:      recipes.MealBreakfast,
			Title:         "Овсянка с ягодами",
			Shopping:      "• Овсянка — 50г\n• Ягоды — 100г",
			Portion:       "1 порция",
			Instructions:  "Залить кипятком, добавить ягоды.",
			CaloriesText:  "🔥 350 ккал",
			CaloriesValue: 350,
			Proteins:      12.5,
			Fats:          8,
			Carbs:         45,
			CookingTime:   10,
			Tags:          []string{"пп", "быстро"},
		},
		{DayNumber: 15, MealType: recipes.MealDinner, Title: "Рыба с овощами", IsPremium: true},
	}

	f, err := buildRecipesXLSX(src)
	require.NoError(t, err)
	defer f.Close()

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	got, rowErrs, err := parseRecipesXLSX(buf.Bytes())
	require.NoError(t, err)
	require.Empty(t, rowErrs)
	require.Len(t, got, 2)

	require.Equal(t, 1, got[0].DayNumber)
	require.Equal(t, recipes.MealBreakfast, got[0].MealType)
	require.Equal(t, "Овсянка с ягодами", got[0].Title)
	require.Equal(t, 350, got[0].CaloriesValue)
	require.InDelta(t, 12.5, got[0].Proteins, 0.001)
	require.Equal(t, 10, got[0].CookingTime)
	require.Equal(t, []string{"пп", "быстро"}, got[0].Tags)
	require.False(t, got[0].IsPremium)

	require.Equal(t, 15, got[1].DayNumber)
	require.Equal(t, recipes.MealDinner, got[1].MealType)
	require.True(t, got[1].IsPremium)
	require.Nil(t, got[1].Tags)
}

func TestParseRecipesXLSX_SkipsBadRows(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	require.NoError(t, f.SetSheetRow(sheet, "A1", &recipesHeader))

	rows := [][]interface{}{
		{5, "lunch", "Суп с чечевицей"},
		{42, "lunch", "День за пределами каталога"},
		{6, "brunch", "Нет такого приёма пищи"},
		{7, "dinner", ""},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &rows[i]))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	got, rowErrs, err := parseRecipesXLSX(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Суп с чечевицей", got[0].Title)

	require.Len(t, rowErrs, 3)
	require.Contains(t, rowErrs[0], "строка 3")
	require.Contains(t, rowErrs[0], "day_number")
	require.Contains(t, rowErrs[1], "meal_type")
	require.Contains(t, rowErrs[2], "title")
}

func TestParseRecipesXLSX_BadFile(t *testing.T) {
	_, _, err := parseRecipesXLSX([]byte("это не excel"))
	require.Error(t, err)

	// только заголовок, без данных
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	require.NoError(t, f.SetSheetRow(sheet, "A1", &recipesHeader))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, _, err = parseRecipesXLSX(buf.Bytes())
	require.Error(t, err)
}

func TestBuildUsersXLSX(t *testing.T) {
	now := time.Now()
	until := now.Add(72 * time.Hour)
	list := []users.User{
		{
			ID:                  1,
			TelegramID:          100500,
			Username:            "anna",
			FirstName:           "Анна",
			SubscriptionType:    "pro",
			SubscriptionExpires: &until,
			DailyCalories:       2200,
			FamilySize:          2,
			CreatedAt:           now,
			LastActive:          now,
		},
		{ID: 2, TelegramID: 100501, FirstName: "Борис", SubscriptionType: "free",
			CreatedAt: now, LastActive: now},
	}

	f, err := buildUsersXLSX(list, entitlement.NewEvaluator(7, 5), now)
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.Equal(t, "id", rows[0][0])
	require.Equal(t, "anna", rows[1][2])
	require.Equal(t, "yes", rows[1][6])
	require.Equal(t, "3", rows[1][7])
	require.Equal(t, "no", rows[2][6])
}

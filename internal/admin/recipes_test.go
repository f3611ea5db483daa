package admin

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/maybecook/mealbot/internal/domain/recipes"
)

func TestRecipeFormValidation(t *testing.T) {
	val := validator.New()

	ok := recipeForm{DayNumber: 5, MealType: "lunch", Title: "Суп с чечевицей"}
	require.NoError(t, val.Struct(ok))

	require.Error(t, val.Struct(recipeForm{DayNumber: 0, MealType: "lunch", Title: "Суп"}))
	require.Error(t, val.Struct(recipeForm{DayNumber: 31, MealType: "lunch", Title: "Суп"}))
	require.Error(t, val.Struct(recipeForm{DayNumber: 5, MealType: "brunch", Title: "Суп"}))
	require.Error(t, val.Struct(recipeForm{DayNumber: 5, MealType: "lunch", Title: ""}))
	require.Error(t, val.Struct(recipeForm{DayNumber: 5, MealType: "lunch", Title: "Суп", Proteins: -1}))
}

func TestRecipeFormToRecipe(t *testing.T) {
	form := recipeForm{
		ID:            7,
		DayNumber:     12,
		MealType:      "dinner",
		Title:         "  Рыба с овощами  ",
		Shopping:      "• Треска — 400г\n• Брокколи — 300г",
		CaloriesValue: 520,
		IsPremium:     true,
		Tags:          "пп, быстро, , без глютена",
	}
	rec := form.recipe()

	require.Equal(t, int64(7), rec.ID)
	require.Equal(t, 12, rec.DayNumber)
	require.Equal(t, recipes.MealDinner, rec.MealType)
	require.Equal(t, "Рыба с овощами", rec.Title)
	require.True(t, rec.IsPremium)
	require.Equal(t, []string{"пп", "быстро", "без глютена"}, rec.Tags)
}

func TestParseTags(t *testing.T) {
	require.Nil(t, parseTags(""))
	require.Nil(t, parseTags(" , ,"))
	require.Equal(t, []string{"пп"}, parseTags("пп"))
	require.Equal(t, []string{"пп", "быстро"}, parseTags(" пп ,быстро "))
}

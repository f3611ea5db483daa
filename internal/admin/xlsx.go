package admin

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/maybecook/mealbot/internal/domain/recipes"
	"github.com/maybecook/mealbot/internal/domain/users"
	"github.com/maybecook/mealbot/internal/entitlement"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// recipesHeader Формат файла каталога: этот же порядок колонок принимает импорт.
var recipesHeader = []interface{}{
	"day_number",
	"meal_type",
	"title",
	"shopping",
	"portion",
	"instructions",
	"calories_text",
	"calories_value",
	"proteins",
	"fats",
	"carbs",
	"cooking_time",
	"is_premium",
	"tags",
}

func buildRecipesXLSX(list []recipes.Recipe) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	if err := f.SetSheetRow(sheet, "A1", &recipesHeader); err != nil {
		_ = f.Close()
		return nil, err
	}

	row := 2
	for _, rec := range list {
		excelRow := []interface{}{
			rec.DayNumber,
			string(rec.MealType),
			rec.Title,
			rec.Shopping,
			rec.Portion,
			rec.Instructions,
			rec.CaloriesText,
			rec.CaloriesValue,
			rec.Proteins,
			rec.Fats,
			rec.Carbs,
			rec.CookingTime,
			map[bool]string{true: "yes", false: "no"}[rec.IsPremium],
			strings.Join(rec.Tags, ", "),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			_ = f.Close()
			return nil, err
		}
		row++
	}
	return f, nil
}

func buildUsersXLSX(list []users.User, eval entitlement.Evaluator, now time.Time) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"id",
		"telegram_id",
		"username",
		"first_name",
		"last_name",
		"subscription_type",
		"subscription_active",
		"days_left",
		"subscription_expires",
		"trial_used",
		"ai_questions_today",
		"daily_calories",
		"family_size",
		"created_at",
		"last_active",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		_ = f.Close()
		return nil, err
	}

	row := 2
	for i := range list {
		u := &list[i]
		st := eval.Evaluate(u, now)

		expires := ""
		if u.SubscriptionExpires != nil {
			expires = u.SubscriptionExpires.Format("2006-01-02")
		}
		excelRow := []interface{}{
			u.ID,
			u.TelegramID,
			u.Username,
			u.FirstName,
			u.LastName,
			u.SubscriptionType,
			map[bool]string{true: "yes", false: "no"}[st.Active],
			st.DaysLeft,
			expires,
			map[bool]string{true: "yes", false: "no"}[u.TrialUsed],
			u.AIQuestionsToday,
			u.DailyCalories,
			u.FamilySize,
			u.CreatedAt.Format("2006-01-02 15:04"),
			u.LastActive.Format("2006-01-02 15:04"),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			_ = f.Close()
			return nil, err
		}
		row++
	}
	return f, nil
}

// cellAt Хвостовые пустые ячейки excelize не возвращает, поэтому короткая
// строка — это не ошибка, а пустые значения.
func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseBoolCell(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "", "no", "false", "0", "нет":
		return false, nil
	case "yes", "true", "1", "да":
		return true, nil
	}
	return false, fmt.Errorf("некорректное значение %q", raw)
}

func parseFloatCell(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("некорректное значение %q", raw)
	}
	return v, nil
}

func parseIntCell(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("некорректное значение %q", raw)
	}
	return v, nil
}

// parseRecipesXLSX Читает файл в формате buildRecipesXLSX. Возвращает
// корректные рецепты и список причин, по которым строки были пропущены;
// ошибка — только когда файл целиком непригоден.
func parseRecipesXLSX(data []byte) ([]recipes.Recipe, []string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("файл повреждён или не .xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		return nil, nil, fmt.Errorf("файл не содержит строк с рецептами")
	}
	if len(rows[0]) < len(recipesHeader) {
		return nil, nil, fmt.Errorf("ожидается минимум %d колонок (day_number ... tags)", len(recipesHeader))
	}

	var (
		out     []recipes.Recipe
		rowErrs []string
	)
	for i := 1; i < len(rows); i++ {
		row := rows[i]

		dayStr := cellAt(row, 0)
		mealStr := cellAt(row, 1)
		title := cellAt(row, 2)
		if dayStr == "" && mealStr == "" && title == "" {
			continue
		}

		day, err := strconv.Atoi(dayStr)
		if err != nil || day < 1 || day > 30 {
			rowErrs = append(rowErrs, fmt.Sprintf("строка %d: некорректный day_number (%q)", i+1, dayStr))
			continue
		}
		meal := recipes.MealType(strings.ToLower(mealStr))
		if !meal.Valid() {
			rowErrs = append(rowErrs, fmt.Sprintf("строка %d: некорректный meal_type (%q)", i+1, mealStr))
			continue
		}
		if title == "" {
			rowErrs = append(rowErrs, fmt.Sprintf("строка %d: пустой title", i+1))
			continue
		}

		caloriesValue, err := parseIntCell(cellAt(row, 7))
		if err != nil {
			rowErrs = append(rowErrs, fmt.Sprintf("строка %d: calories_value: %v", i+1, err))
			continue
		}
		proteins, err := parseFloatCell(cellAt(row, 8))
		if err != nil {
			rowErrs = append(rowErrs, fmt.Sprintf("строка %d: proteins: %v", i+1, err))
			continue
		}
		fats, err := parseFloatCell(cellAt(row, 9))
		if err != nil {
			rowErrs = append(rowErrs, fmt.Sprintf("строка %d: fats: %v", i+1, err))
			continue
		}
		carbs, err := parseFloatCell(cellAt(row, 10))
		if err != nil {
			rowErrs = append(rowErrs, fmt.Sprintf("строка %d: carbs: %v", i+1, err))
			continue
		}
		cookingTime, err := parseIntCell(cellAt(row, 11))
		if err != nil {
			rowErrs = append(rowErrs, fmt.Sprintf("строка %d: cooking_time: %v", i+1, err))
			continue
		}
		isPremium, err := parseBoolCell(cellAt(row, 12))
		if err != nil {
			rowErrs = append(rowErrs, fmt.Sprintf("строка %d: is_premium: %v", i+1, err))
			continue
		}

		out = append(out, recipes.Recipe{
			DayNumber:     day,
			MealType:      meal,
			Title:         title,
			Shopping:      cellAt(row, 3),
			Portion:       cellAt(row, 4),
			Instructions:  cellAt(row, 5),
			CaloriesText:  cellAt(row, 6),
			CaloriesValue: caloriesValue,
			Proteins:      proteins,
			Fats:          fats,
			Carbs:         carbs,
			CookingTime:   cookingTime,
			IsPremium:     isPremium,
			Tags:          parseTags(cellAt(row, 13)),
		})
	}
	return out, rowErrs, nil
}

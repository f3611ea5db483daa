package admin

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/maybecook/mealbot/internal/domain/recipes"
)

const recipesPerPage = 50

type recipeForm struct {
	ID            int64   `form:"id"`
	DayNumber     int     `form:"day_number" validate:"required,min=1,max=30"`
	MealType      string  `form:"meal_type" validate:"required,oneof=breakfast lunch snack dinner"`
	Title         string  `form:"title" validate:"required,max=500"`
	Shopping      string  `form:"shopping"`
	Portion       string  `form:"portion"`
	Instructions  string  `form:"instructions"`
	CaloriesText  string  `form:"calories_text"`
	CaloriesValue int     `form:"calories_value" validate:"min=0"`
	Proteins      float64 `form:"proteins" validate:"min=0"`
	Fats          float64 `form:"fats" validate:"min=0"`
	Carbs         float64 `form:"carbs" validate:"min=0"`
	CookingTime   int     `form:"cooking_time" validate:"min=0"`
	IsPremium     bool    `form:"is_premium"`
	Tags          string  `form:"tags"`
}

func (f recipeForm) recipe() recipes.Recipe {
	return recipes.Recipe{
		ID:            f.ID,
		DayNumber:     f.DayNumber,
		MealType:      recipes.MealType(f.MealType),
		Title:         strings.TrimSpace(f.Title),
		Shopping:      strings.TrimSpace(f.Shopping),
		Portion:       strings.TrimSpace(f.Portion),
		Instructions:  strings.TrimSpace(f.Instructions),
		CaloriesText:  strings.TrimSpace(f.CaloriesText),
		CaloriesValue: f.CaloriesValue,
		Proteins:      f.Proteins,
		Fats:          f.Fats,
		Carbs:         f.Carbs,
		CookingTime:   f.CookingTime,
		IsPremium:     f.IsPremium,
		Tags:          parseTags(f.Tags),
	}
}

// parseTags Теги в форме и в excel — строка через запятую.
func parseTags(raw string) []string {
	var out []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func dayOptions() []int {
	days := make([]int, 30)
	for i := range days {
		days[i] = i + 1
	}
	return days
}

func (s *Server) handleRecipes(c *fiber.Ctx) error {
	ctx := c.UserContext()

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	filter := recipes.ListFilter{
		Day:      c.QueryInt("day"),
		MealType: c.Query("meal_type"),
		Search:   strings.TrimSpace(c.Query("search")),
		Limit:    recipesPerPage,
		Offset:   (page - 1) * recipesPerPage,
	}

	total, err := s.recipes.Count(ctx, filter)
	if err != nil {
		s.log.Error("не удалось посчитать рецепты", "err", err)
		return fiber.NewError(fiber.StatusInternalServerError, "recipes unavailable")
	}
	list, err := s.recipes.List(ctx, filter)
	if err != nil {
		s.log.Error("не удалось загрузить рецепты", "err", err)
		return fiber.NewError(fiber.StatusInternalServerError, "recipes unavailable")
	}

	return c.Render("recipes", fiber.Map{
		"Admin":      c.Locals(sessionAdminKey),
		"Recipes":    list,
		"Total":      total,
		"Page":       page,
		"TotalPages": totalPages(total, recipesPerPage),
		"PrevPage":   page - 1,
		"NextPage":   page + 1,
		"Day":        filter.Day,
		"MealType":   filter.MealType,
		"Search":     filter.Search,
		"Days":       dayOptions(),
		"MealTypes":  recipes.MealTypes,
		"Imported":   c.Query("imported"),
		"Skipped":    c.Query("skipped"),
		"Error":      c.Query("error"),
	})
}

func (s *Server) handleRecipeNew(c *fiber.Ctx) error {
	return c.Render("recipe_edit", fiber.Map{
		"Admin":     c.Locals(sessionAdminKey),
		"Recipe":    &recipes.Recipe{DayNumber: 1, MealType: recipes.MealBreakfast},
		"IsNew":     true,
		"TagsLine":  "",
		"Days":      dayOptions(),
		"MealTypes": recipes.MealTypes,
		"Error":     c.Query("error"),
	})
}

func (s *Server) handleRecipeEdit(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.ErrNotFound
	}
	rec, err := s.recipes.GetByID(c.UserContext(), int64(id))
	if err != nil {
		s.log.Error("не удалось загрузить рецепт", "recipe_id", id, "err", err)
		return fiber.NewError(fiber.StatusInternalServerError, "recipe unavailable")
	}
	if rec == nil {
		return fiber.ErrNotFound
	}
	return c.Render("recipe_edit", fiber.Map{
		"Admin":     c.Locals(sessionAdminKey),
		"Recipe":    rec,
		"TagsLine":  strings.Join(rec.Tags, ", "),
		"Days":      dayOptions(),
		"MealTypes": recipes.MealTypes,
		"Success":   c.Query("success"),
		"Error":     c.Query("error"),
	})
}

// handleRecipeSave С id правит существующий рецепт, без id создаёт новый.
// Создание идёт через upsert: новая карточка вытесняет занявшую ту же
// клетку (день, приём пищи).
func (s *Server) handleRecipeSave(c *fiber.Ctx) error {
	var form recipeForm
	if err := c.BodyParser(&form); err != nil {
		return c.Redirect("/admin/recipes/new?error=bad_form", fiber.StatusSeeOther)
	}
	if err := s.val.Struct(form); err != nil {
		if form.ID > 0 {
			return c.Redirect(fmt.Sprintf("/admin/recipes/%d?error=bad_form", form.ID), fiber.StatusSeeOther)
		}
		return c.Redirect("/admin/recipes/new?error=bad_form", fiber.StatusSeeOther)
	}

	ctx := c.UserContext()
	rec := form.recipe()

	if rec.ID > 0 {
		if err := s.recipes.Update(ctx, &rec); err != nil {
			if errors.Is(err, recipes.ErrNotFound) {
				return fiber.ErrNotFound
			}
			s.log.Error("не удалось сохранить рецепт", "recipe_id", rec.ID, "err", err)
			return c.Redirect(fmt.Sprintf("/admin/recipes/%d?error=save_failed", rec.ID), fiber.StatusSeeOther)
		}
	} else {
		id, err := s.recipes.UpsertByDayMeal(ctx, &rec)
		if err != nil {
			s.log.Error("не удалось создать рецепт", "day", rec.DayNumber, "meal", rec.MealType, "err", err)
			return c.Redirect("/admin/recipes/new?error=save_failed", fiber.StatusSeeOther)
		}
		rec.ID = id
	}

	s.log.Info("рецепт сохранён из админки",
		"recipe_id", rec.ID, "day", rec.DayNumber, "meal", rec.MealType)
	s.invalidateStats(c)
	return c.Redirect(fmt.Sprintf("/admin/recipes/%d?success=saved", rec.ID), fiber.StatusSeeOther)
}

func (s *Server) handleRecipeDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.ErrNotFound
	}
	if err := s.recipes.Delete(c.UserContext(), int64(id)); err != nil {
		if errors.Is(err, recipes.ErrNotFound) {
			return fiber.ErrNotFound
		}
		s.log.Error("не удалось удалить рецепт", "recipe_id", id, "err", err)
		return fiber.NewError(fiber.StatusInternalServerError, "delete failed")
	}
	s.log.Info("рецепт удалён из админки", "recipe_id", id)
	s.invalidateStats(c)
	return c.Redirect("/admin/recipes", fiber.StatusSeeOther)
}

// handleRecipesExport Выгрузка каталога в xlsx, фильтры списка учитываются.
func (s *Server) handleRecipesExport(c *fiber.Ctx) error {
	list, err := s.recipes.List(c.UserContext(), recipes.ListFilter{
		Day:      c.QueryInt("day"),
		MealType: c.Query("meal_type"),
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		s.log.Error("не удалось выгрузить рецепты", "err", err)
		return fiber.NewError(fiber.StatusInternalServerError, "export failed")
	}

	f, err := buildRecipesXLSX(list)
	if err != nil {
		s.log.Error("не удалось собрать xlsx", "err", err)
		return fiber.NewError(fiber.StatusInternalServerError, "export failed")
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "export failed")
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="recipes_%s.xlsx"`, time.Now().Format("2006-01-02")))
	return c.Send(buf.Bytes())
}

// handleRecipesImport Загрузка каталога из xlsx. Каждая корректная строка
// апсертится по клетке (день, приём пищи), битые строки пропускаются
// с записью в лог.
func (s *Server) handleRecipesImport(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Redirect("/admin/recipes?error=no_file", fiber.StatusSeeOther)
	}
	src, err := fh.Open()
	if err != nil {
		return c.Redirect("/admin/recipes?error=bad_file", fiber.StatusSeeOther)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.Redirect("/admin/recipes?error=bad_file", fiber.StatusSeeOther)
	}

	recs, rowErrs, err := parseRecipesXLSX(data)
	if err != nil {
		s.log.Error("импорт рецептов не удался", "file", fh.Filename, "err", err)
		return c.Redirect("/admin/recipes?error=bad_file", fiber.StatusSeeOther)
	}

	ctx := c.UserContext()
	imported := 0
	for i := range recs {
		if _, err := s.recipes.UpsertByDayMeal(ctx, &recs[i]); err != nil {
			s.log.Error("строка импорта не сохранилась",
				"day", recs[i].DayNumber, "meal", recs[i].MealType, "err", err)
			rowErrs = append(rowErrs, fmt.Sprintf("день %d, %s: ошибка записи", recs[i].DayNumber, recs[i].MealType))
			continue
		}
		imported++
	}
	for _, e := range rowErrs {
		s.log.Warn("строка импорта пропущена", "reason", e)
	}

	s.log.Info("импорт рецептов завершён",
		"file", fh.Filename, "imported", imported, "skipped", len(rowErrs))
	s.invalidateStats(c)
	return c.Redirect(fmt.Sprintf("/admin/recipes?imported=%d&skipped=%d", imported, len(rowErrs)),
		fiber.StatusSeeOther)
}

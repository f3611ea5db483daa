package recipes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("recipes: not found")

const recipeCols = `id, day_number, meal_type, title, shopping, portion, instructions,
	calories_text, COALESCE(calories_value, 0), COALESCE(proteins, 0), COALESCE(fats, 0),
	COALESCE(carbs, 0), COALESCE(cooking_time, 0), is_premium, tags`

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func scanRecipe(row pgx.Row) (*Recipe, error) {
	var rec Recipe
	err := row.Scan(
		&rec.ID,
		&rec.DayNumber,
		&rec.MealType,
		&rec.Title,
		&rec.Shopping,
		&rec.Portion,
		&rec.Instructions,
		&rec.CaloriesText,
		&rec.CaloriesValue,
		&rec.Proteins,
		&rec.Fats,
		&rec.Carbs,
		&rec.CookingTime,
		&rec.IsPremium,
		&rec.Tags,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Recipe, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+recipeCols+` FROM recipes WHERE id = $1`, id)
	rec, err := scanRecipe(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (r *Repo) GetByDayMeal(ctx context.Context, day int, meal MealType) (*Recipe, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+recipeCols+` FROM recipes WHERE day_number = $1 AND meal_type = $2`, day, meal)
	rec, err := scanRecipe(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

// ListByDay Рецепты одного дня в порядке приёмов пищи.
func (r *Repo) ListByDay(ctx context.Context, day int) ([]Recipe, error) {
	const q = `SELECT ` + recipeCols + ` FROM recipes
	           WHERE day_number = $1
	           ORDER BY CASE meal_type
	               WHEN 'breakfast' THEN 1
	               WHEN 'lunch' THEN 2
	               WHEN 'snack' THEN 3
	               ELSE 4
	           END`
	rows, err := r.pool.Query(ctx, q, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Recipe
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// ListFilter Фильтры админского списка. Limit <= 0 — без пагинации.
type ListFilter struct {
	Day      int
	MealType string
	Search   string
	Limit    int
	Offset   int
}

func (f ListFilter) where(args *[]any) string {
	var conds []string
	if f.Day > 0 {
		*args = append(*args, f.Day)
		conds = append(conds, fmt.Sprintf("day_number = $%d", len(*args)))
	}
	if f.MealType != "" {
		*args = append(*args, f.MealType)
		conds = append(conds, fmt.Sprintf("meal_type = $%d", len(*args)))
	}
	if f.Search != "" {
		*args = append(*args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf("title ILIKE $%d", len(*args)))
	}
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func (r *Repo) List(ctx context.Context, f ListFilter) ([]Recipe, error) {
	var args []any
	q := `SELECT ` + recipeCols + ` FROM recipes` + f.where(&args) + ` ORDER BY day_number, meal_type`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, f.Offset)
		q += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Recipe
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func (r *Repo) Count(ctx context.Context, f ListFilter) (int, error) {
	var args []any
	q := `SELECT count(*) FROM recipes` + f.where(&args)
	var n int
	if err := r.pool.QueryRow(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Update Правка существующего рецепта по ID.
func (r *Repo) Update(ctx context.Context, rec *Recipe) error {
	const q = `
UPDATE recipes SET
    day_number = $2, meal_type = $3, title = $4, shopping = $5, portion = $6,
    instructions = $7, calories_text = $8, calories_value = $9, proteins = $10,
    fats = $11, carbs = $12, cooking_time = $13, is_premium = $14, tags = $15
WHERE id = $1
`
	tag, err := r.pool.Exec(ctx, q,
		rec.ID, rec.DayNumber, rec.MealType, rec.Title, rec.Shopping, rec.Portion,
		rec.Instructions, rec.CaloriesText, rec.CaloriesValue, rec.Proteins,
		rec.Fats, rec.Carbs, rec.CookingTime, rec.IsPremium, rec.Tags)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertByDayMeal Создать рецепт или заменить занимающий ту же клетку
// (день, приём пищи); используется формой создания и excel-импортом.
func (r *Repo) UpsertByDayMeal(ctx context.Context, rec *Recipe) (int64, error) {
	const q = `
INSERT INTO recipes (day_number, meal_type, title, shopping, portion, instructions,
                     calories_text, calories_value, proteins, fats, carbs,
                     cooking_time, is_premium, tags)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
ON CONFLICT (day_number, meal_type)
DO UPDATE SET
    title = EXCLUDED.title,
    shopping = EXCLUDED.shopping,
    portion = EXCLUDED.portion,
    instructions = EXCLUDED.instructions,
    calories_text = EXCLUDED.calories_text,
    calories_value = EXCLUDED.calories_value,
    proteins = EXCLUDED.proteins,
    fats = EXCLUDED.fats,
    carbs = EXCLUDED.carbs,
    cooking_time = EXCLUDED.cooking_time,
    is_premium = EXCLUDED.is_premium,
    tags = EXCLUDED.tags
RETURNING id
`
	var id int64
	err := r.pool.QueryRow(ctx, q,
		rec.DayNumber, rec.MealType, rec.Title, rec.Shopping, rec.Portion, rec.Instructions,
		rec.CaloriesText, rec.CaloriesValue, rec.Proteins, rec.Fats, rec.Carbs,
		rec.CookingTime, rec.IsPremium, rec.Tags).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package favorites

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Add Добавить рецепт в избранное. Возвращает false, если он там уже был.
func (r *Repo) Add(ctx context.Context, userID, recipeID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO favorites (user_id, recipe_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, recipe_id) DO NOTHING
	`, userID, recipeID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repo) Remove(ctx context.Context, userID, recipeID int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND recipe_id = $2`, userID, recipeID)
	return err
}

func (r *Repo) ListByUser(ctx context.Context, userID int64) ([]Item, error) {
	const q = `SELECT f.recipe_id, r.day_number, r.title, f.added_at
	           FROM favorites f
	           JOIN recipes r ON r.id = f.recipe_id
	           WHERE f.user_id = $1
	           ORDER BY f.added_at`
	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.RecipeID, &it.DayNumber, &it.Title, &it.AddedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

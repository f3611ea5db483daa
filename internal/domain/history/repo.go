package history

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("history: entry not found")

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Add(ctx context.Context, userID, recipeID int64) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO cooking_history (user_id, recipe_id)
		VALUES ($1, $2)
		RETURNING id
	`, userID, recipeID).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// SetRating Оценка 1..5 к своей записи; чужие записи не трогаем.
func (r *Repo) SetRating(ctx context.Context, id, userID int64, rating int) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE cooking_history SET rating = $3
		WHERE id = $1 AND user_id = $2
	`, id, userID, rating)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) SetNotes(ctx context.Context, id, userID int64, notes string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE cooking_history SET notes = $3
		WHERE id = $1 AND user_id = $2
	`, id, userID, notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) ListByUser(ctx context.Context, userID int64, limit int) ([]Item, error) {
	const q = `SELECT h.id, h.user_id, h.recipe_id, h.cooked_at,
	                  COALESCE(h.rating, 0), COALESCE(h.photo_url, ''), COALESCE(h.notes, ''),
	                  r.day_number, r.title
	           FROM cooking_history h
	           JOIN recipes r ON r.id = h.recipe_id
	           WHERE h.user_id = $1
	           ORDER BY h.cooked_at DESC
	           LIMIT $2`
	rows, err := r.pool.Query(ctx, q, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID, &it.UserID, &it.RecipeID, &it.CookedAt,
			&it.Rating, &it.PhotoURL, &it.Notes,
			&it.DayNumber, &it.Title,
		); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

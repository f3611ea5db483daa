package purchases

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, userID int64, plan string, amount int) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO purchases (user_id, plan, amount, status)
		VALUES ($1, $2, $3, 'pending')
		RETURNING id
	`, userID, plan, amount).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// MarkPaid Перевести pending-заявку в paid. Возвращает nil, если заявки нет
// или она уже обработана — подтверждение идемпотентно.
func (r *Repo) MarkPaid(ctx context.Context, id int64) (*Purchase, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE purchases SET status = 'paid', paid_at = now()
		WHERE id = $1 AND status = 'pending'
		RETURNING id, user_id, plan, amount, status, created_at, paid_at
	`, id)

	var p Purchase
	err := row.Scan(&p.ID, &p.UserID, &p.Plan, &p.Amount, &p.Status, &p.CreatedAt, &p.PaidAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repo) ListByUser(ctx context.Context, userID int64, limit int) ([]Purchase, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, plan, amount, status, created_at, paid_at
		FROM purchases
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Purchase
	for rows.Next() {
		var p Purchase
		if err := rows.Scan(&p.ID, &p.UserID, &p.Plan, &p.Amount, &p.Status, &p.CreatedAt, &p.PaidAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

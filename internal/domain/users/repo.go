package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("users: not found")

	// ErrQuotaExhausted Дневной лимит вопросов выбран.
	ErrQuotaExhausted = errors.New("users: question quota exhausted")
)

const userCols = `id, telegram_id, username, first_name, last_name,
	subscription_type, subscription_expires, trial_used,
	ai_questions_today, ai_questions_reset,
	goal, daily_calories, family_size, created_at, last_active`

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.TelegramID,
		&u.Username,
		&u.FirstName,
		&u.LastName,
		&u.SubscriptionType,
		&u.SubscriptionExpires,
		&u.TrialUsed,
		&u.AIQuestionsToday,
		&u.AIQuestionsReset,
		&u.Goal,
		&u.DailyCalories,
		&u.FamilySize,
		&u.CreatedAt,
		&u.LastActive,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) GetByTelegramID(ctx context.Context, tgID int64) (*User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE telegram_id = $1`, tgID)
	u, err := scanUser(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// UpsertFromTelegram Upsert по Telegram-профилю. trialUntil применяется только
// при создании: существующему пользователю триал повторно не выдаётся,
// у него лишь обновляются имя и last_active.
func (r *Repo) UpsertFromTelegram(ctx context.Context, tg Telegram, trialUntil *time.Time) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (telegram_id, username, first_name, last_name, subscription_expires, trial_used)
		VALUES ($1,$2,$3,$4,$5,$5 IS NOT NULL)
		ON CONFLICT (telegram_id)
		DO UPDATE SET
			username    = EXCLUDED.username,
			first_name  = EXCLUDED.first_name,
			last_name   = EXCLUDED.last_name,
			last_active = now()
		RETURNING `+userCols, tg.ID, tg.Username, tg.FirstName, tg.LastName, trialUntil)

	return scanUser(row)
}

// SetSubscription Назначить тариф и срок (админка и подтверждение покупки).
func (r *Repo) SetSubscription(ctx context.Context, id int64, tier string, until time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET subscription_type = $2, subscription_expires = $3 WHERE id = $1
	`, id, tier, until)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ConsumeQuestion Атомарное списание вопроса из дневной квоты.
// Если дата последнего сброса (по UTC) старее текущей — счётчик начинается
// заново с 1, иначе инкремент под условием ai_questions_today < limit.
// Ноль затронутых строк означает исчерпанную квоту (или отсутствие пользователя).
func (r *Repo) ConsumeQuestion(ctx context.Context, id int64, now time.Time, limit int) (int, error) {
	const q = `
UPDATE users SET
    ai_questions_today = CASE
        WHEN (ai_questions_reset AT TIME ZONE 'UTC')::date <> ($2::timestamptz AT TIME ZONE 'UTC')::date THEN 1
        ELSE ai_questions_today + 1
    END,
    ai_questions_reset = $2
WHERE id = $1
  AND ((ai_questions_reset AT TIME ZONE 'UTC')::date <> ($2::timestamptz AT TIME ZONE 'UTC')::date
       OR ai_questions_today < $3)
RETURNING ai_questions_today
`
	var today int
	if err := r.pool.QueryRow(ctx, q, id, now, limit).Scan(&today); err != nil {
		if err == pgx.ErrNoRows {
			return 0, ErrQuotaExhausted
		}
		return 0, err
	}
	left := limit - today
	if left < 0 {
		left = 0
	}
	return left, nil
}

func (r *Repo) SetDailyCalories(ctx context.Context, id int64, calories int) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET daily_calories = $2 WHERE id = $1`, id, calories)
	return err
}

func (r *Repo) SetFamilySize(ctx context.Context, id int64, size int) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET family_size = $2 WHERE id = $1`, id, size)
	return err
}

func (r *Repo) SetGoal(ctx context.Context, id int64, goal string) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET goal = $2 WHERE id = $1`, id, goal)
	return err
}

// ListFilter Фильтры админского списка. Limit <= 0 — без пагинации.
type ListFilter struct {
	Search string
	Tier   string
	Limit  int
	Offset int
}

func (f ListFilter) where(args *[]any) string {
	var conds []string
	if f.Search != "" {
		*args = append(*args, "%"+f.Search+"%")
		p := fmt.Sprintf("$%d", len(*args))
		conds = append(conds, fmt.Sprintf(
			"(username ILIKE %s OR first_name ILIKE %s OR telegram_id::text ILIKE %s)", p, p, p))
	}
	if f.Tier != "" {
		*args = append(*args, f.Tier)
		conds = append(conds, fmt.Sprintf("subscription_type = $%d", len(*args)))
	}
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}

func (r *Repo) List(ctx context.Context, f ListFilter) ([]User, error) {
	var args []any
	q := `SELECT ` + userCols + ` FROM users` + f.where(&args) + ` ORDER BY created_at DESC`
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

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *Repo) Count(ctx context.Context, f ListFilter) (int, error) {
	var args []any
	q := `SELECT count(*) FROM users` + f.where(&args)
	var n int
	if err := r.pool.QueryRow(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

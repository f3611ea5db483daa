package stats

import (
	"context"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Users(ctx context.Context, now time.Time) (UserStats, error) {
	const q = `
SELECT
    count(*),
    count(*) FILTER (WHERE created_at >= $1::timestamptz - interval '24 hours'),
    count(*) FILTER (WHERE created_at >= $1::timestamptz - interval '7 days'),
    count(*) FILTER (WHERE last_active >= $1::timestamptz - interval '24 hours'),
    count(*) FILTER (WHERE subscription_type = 'free'),
    count(*) FILTER (WHERE subscription_type = 'basic'),
    count(*) FILTER (WHERE subscription_type = 'pro'),
    count(*) FILTER (WHERE subscription_expires IS NOT NULL AND subscription_expires > $1::timestamptz)
FROM users
`
	var s UserStats
	var free, basic, pro int
	err := r.pool.QueryRow(ctx, q, now).Scan(
		&s.Total, &s.Last24h, &s.Last7d, &s.ActiveToday,
		&free, &basic, &pro, &s.WithActiveSubscription,
	)
	if err != nil {
		return UserStats{}, err
	}
	s.ByTier = map[string]int{"free": free, "basic": basic, "pro": pro}
	if s.Total > 0 {
		s.ConversionRate = math.Round(float64(s.WithActiveSubscription)/float64(s.Total)*100*100) / 100
	}
	return s, nil
}

func (r *Repo) Recipes(ctx context.Context) (RecipeStats, error) {
	const q = `
SELECT
    count(*),
    count(*) FILTER (WHERE meal_type = 'breakfast'),
    count(*) FILTER (WHERE meal_type = 'lunch'),
    count(*) FILTER (WHERE meal_type = 'snack'),
    count(*) FILTER (WHERE meal_type = 'dinner'),
    count(*) FILTER (WHERE is_premium)
FROM recipes
`
	var s RecipeStats
	var breakfast, lunch, snack, dinner int
	err := r.pool.QueryRow(ctx, q).Scan(&s.Total, &breakfast, &lunch, &snack, &dinner, &s.Premium)
	if err != nil {
		return RecipeStats{}, err
	}
	s.ByMealType = map[string]int{
		"breakfast": breakfast,
		"lunch":     lunch,
		"snack":     snack,
		"dinner":    dinner,
	}
	s.Free = s.Total - s.Premium
	return s, nil
}

func (r *Repo) Engagement(ctx context.Context) (Engagement, error) {
	const q = `
SELECT
    (SELECT count(*) FROM favorites),
    (SELECT count(*) FROM cooking_history),
    (SELECT COALESCE(avg(rating), 0)::float8 FROM cooking_history WHERE rating IS NOT NULL)
`
	var e Engagement
	if err := r.pool.QueryRow(ctx, q).Scan(&e.TotalFavorites, &e.TotalCooked, &e.AverageRating); err != nil {
		return Engagement{}, err
	}
	e.AverageRating = math.Round(e.AverageRating*100) / 100

	const topQ = `
SELECT r.title, count(f.id) AS cnt
FROM recipes r
JOIN favorites f ON f.recipe_id = r.id
GROUP BY r.id, r.title
ORDER BY cnt DESC, r.title
LIMIT 10
`
	rows, err := r.pool.Query(ctx, topQ)
	if err != nil {
		return Engagement{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var t TopRecipe
		if err := rows.Scan(&t.Title, &t.Count); err != nil {
			return Engagement{}, err
		}
		e.TopFavorites = append(e.TopFavorites, t)
	}
	return e, rows.Err()
}

// Retention Когорты по дате регистрации за последние 14 дней (UTC).
func (r *Repo) Retention(ctx context.Context, now time.Time) ([]Cohort, error) {
	const q = `
SELECT gs.day::date,
       count(u.id),
       count(u.id) FILTER (WHERE u.last_active >= $1::timestamptz - interval '24 hours')
FROM generate_series(
         ($1::timestamptz AT TIME ZONE 'UTC')::date - 13,
         ($1::timestamptz AT TIME ZONE 'UTC')::date,
         interval '1 day') AS gs(day)
LEFT JOIN users u ON (u.created_at AT TIME ZONE 'UTC')::date = gs.day::date
GROUP BY gs.day
ORDER BY gs.day DESC
`
	rows, err := r.pool.Query(ctx, q, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Cohort
	for rows.Next() {
		var day time.Time
		var c Cohort
		if err := rows.Scan(&day, &c.Registered, &c.ActiveToday); err != nil {
			return nil, err
		}
		c.Date = day.Format("2006-01-02")
		if c.Registered > 0 {
			c.Retention = math.Round(float64(c.ActiveToday)/float64(c.Registered)*100*10) / 10
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) Overview(ctx context.Context, now time.Time) (Overview, error) {
	users, err := r.Users(ctx, now)
	if err != nil {
		return Overview{}, err
	}
	rec, err := r.Recipes(ctx)
	if err != nil {
		return Overview{}, err
	}
	eng, err := r.Engagement(ctx)
	if err != nil {
		return Overview{}, err
	}
	cohorts, err := r.Retention(ctx, now)
	if err != nil {
		return Overview{}, err
	}
	return Overview{Users: users, Recipes: rec, Engagement: eng, Cohorts: cohorts}, nil
}

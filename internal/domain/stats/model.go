package stats

// Сводки для админ-панели. JSON-теги повторяют названия полей /admin/api/stats,
// эти же структуры складываются в кэш.

type UserStats struct {
	Total                  int            `json:"total"`
	Last24h                int            `json:"last_24h"`
	Last7d                 int            `json:"last_7d"`
	ActiveToday            int            `json:"active_today"`
	ByTier                 map[string]int `json:"subscription_types"`
	WithActiveSubscription int            `json:"with_active_subscription"`
	ConversionRate         float64        `json:"conversion_rate"`
}

type RecipeStats struct {
	Total      int            `json:"total"`
	ByMealType map[string]int `json:"by_meal_type"`
	Premium    int            `json:"premium"`
	Free       int            `json:"free"`
}

type TopRecipe struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

type Engagement struct {
	TotalFavorites int         `json:"total_favorites"`
	TotalCooked    int         `json:"total_cooked"`
	AverageRating  float64     `json:"average_rating"`
	TopFavorites   []TopRecipe `json:"top_favorites"`
}

// Cohort Дневная когорта по дате регистрации: сколько пришло и кто из них
// был активен за последние сутки.
type Cohort struct {
	Date        string  `json:"date"`
	Registered  int     `json:"registered"`
	ActiveToday int     `json:"active_today"`
	Retention   float64 `json:"retention"`
}

type Overview struct {
	Users      UserStats   `json:"users"`
	Recipes    RecipeStats `json:"recipes"`
	Engagement Engagement  `json:"engagement"`
	Cohorts    []Cohort    `json:"retention"`
}

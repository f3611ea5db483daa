package recipes

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealSnack     MealType = "snack"
	MealDinner    MealType = "dinner"
)

// MealTypes Порядок приёмов пищи в течение дня.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealSnack, MealDinner}

func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealSnack, MealDinner:
		return true
	}
	return false
}

func (m MealType) Emoji() string {
	switch m {
	case MealBreakfast:
		return "🌅"
	case MealLunch:
		return "🍽"
	case MealSnack:
		return "☕"
	case MealDinner:
		return "🌙"
	}
	return "🍽"
}

func (m MealType) Title() string {
	switch m {
	case MealBreakfast:
		return "Завтрак"
	case MealLunch:
		return "Обед"
	case MealSnack:
		return "Полдник"
	case MealDinner:
		return "Ужин"
	}
	return string(m)
}

// Recipe Карточка блюда. Текстовые блоки хранятся как есть и показываются
// пользователю без обработки; числовые поля нужны фильтрам и «итого дня».
type Recipe struct {
	ID            int64
	DayNumber     int // 1..30
	MealType      MealType
	Title         string
	Shopping      string // блок «на закупку», позиции через '•'
	Portion       string
	Instructions  string
	CaloriesText  string
	CaloriesValue int
	Proteins      float64
	Fats          float64
	Carbs         float64
	CookingTime   int // минуты
	IsPremium     bool
	Tags          []string
}

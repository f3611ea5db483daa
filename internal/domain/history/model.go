package history

import "time"

// Entry Запись «я приготовил»: журнал только добавляется, одно блюдо может
// встречаться много раз. Rating 0 — оценка не ставилась.
type Entry struct {
	ID       int64
	UserID   int64
	RecipeID int64
	CookedAt time.Time
	Rating   int
	PhotoURL string
	Notes    string
}

// Item Запись журнала вместе с названием рецепта.
type Item struct {
	Entry
	DayNumber int
	Title     string
}

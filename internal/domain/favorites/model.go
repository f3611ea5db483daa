package favorites

import "time"

type Favorite struct {
	ID       int64
	UserID   int64
	RecipeID int64
	AddedAt  time.Time
}

// Item Избранное вместе с данными рецепта для вывода списком.
type Item struct {
	RecipeID  int64
	DayNumber int
	Title     string
	AddedAt   time.Time
}

package users

import "time"

type User struct {
	ID                  int64
	TelegramID          int64
	Username            string
	FirstName           string
	LastName            string
	SubscriptionType    string // free | basic | pro
	SubscriptionExpires *time.Time
	TrialUsed           bool
	AIQuestionsToday    int
	AIQuestionsReset    time.Time
	Goal                string // mass | loss | maintain
	DailyCalories       int
	FamilySize          int
	CreatedAt           time.Time
	LastActive          time.Time
}

// Telegram Профиль из апдейта, источник для upsert.
type Telegram struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

package purchases

import "time"

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// Purchase Заявка на покупку тарифа. Реальной оплаты нет: запись создаётся
// кнопкой в боте и помечается оплаченной тестовой ссылкой подтверждения.
type Purchase struct {
	ID        int64
	UserID    int64
	Plan      string
	Amount    int
	Status    string
	CreatedAt time.Time
	PaidAt    *time.Time
}

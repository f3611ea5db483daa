package dialog

type State string

const (
	StateIdle State = "idle"

	// Вопрос помощнику: следующий текст — вопрос
	StateAwaitQuestion State = "await_question"

	// Заметка к записи «я приготовил»
	StateAwaitCookNote State = "await_cook_note"

	// Профиль
	StateAwaitCalories   State = "await_calories"
	StateAwaitFamilySize State = "await_family_size"
)

type Payload map[string]any

type Item struct {
	ChatID  int64
	State   State
	Payload Payload
}

package assistant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswer_Topics(t *testing.T) {
	cases := []struct {
		name     string
		question string
		want     string
	}{
		{"substitution", "Чем заменить курицу?", "ЗАМЕНА ПРОДУКТОВ"},
		{"substitution alt word", "У меня нет булгура", "ЗАМЕНА ПРОДУКТОВ"},
		{"cooking time", "Сколько готовить в духовке?", "ВРЕМЯ ПРИГОТОВЛЕНИЯ"},
		{"storage", "Можно ли заморозить суп?", "ХРАНЕНИЕ"},
		{"macros", "Как добрать белок за день?", "БЖУ НА ДЕНЬ"},
		{"case insensitive", "ЗАМЕНА для свинины", "ЗАМЕНА ПРОДУКТОВ"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Answer(tc.question, "")
			assert.Contains(t, got, tc.want)
		})
	}
}

func TestAnswer_FirstTopicWins(t *testing.T) {
	// "вместо" и "духовк" вместе — порядок тем отдаёт приоритет замене
	got := Answer("что вместо духовки", "")
	assert.Contains(t, got, "ЗАМЕНА ПРОДУКТОВ")
}

func TestAnswer_RecipeFallback(t *testing.T) {
	got := Answer("как подать красиво", "Куриные котлеты")

	assert.Contains(t, got, "Совет по блюду")
	assert.Contains(t, got, "Куриные котлеты")
	assert.Contains(t, got, "Уточни вопрос")
}

func TestAnswer_GeneralFallback(t *testing.T) {
	got := Answer("привет", "")

	assert.Contains(t, got, "Я готов помочь")
	assert.False(t, strings.Contains(got, "Совет по блюду"))
}

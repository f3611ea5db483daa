package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoalTitle(t *testing.T) {
	cases := []struct {
		goal string
		want string
	}{
		{"loss", "Похудение"},
		{"maintain", "Поддержание"},
		{"mass", "Набор массы"},
		{"", ""},
		{"bulk", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, goalTitle(tc.goal), "goal %q", tc.goal)
	}
}

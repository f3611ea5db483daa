package dialog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetString(t *testing.T) {
	p := Payload{"question": "чем заменить сметану?", "recipe_id": float64(7)}

	s, ok := GetString(p, "question")
	assert.True(t, ok)
	assert.Equal(t, "чем заменить сметану?", s)

	_, ok = GetString(p, "missing")
	assert.False(t, ok)

	// значение не того типа
	_, ok = GetString(p, "recipe_id")
	assert.False(t, ok)
}

func TestGetInt64(t *testing.T) {
	p := Payload{"a": float64(42), "b": int64(7), "c": 3, "d": "nope"}

	for key, want := range map[string]int64{"a": 42, "b": 7, "c": 3} {
		got, ok := GetInt64(p, key)
		assert.True(t, ok, "key %q", key)
		assert.Equal(t, want, got, "key %q", key)
	}

	_, ok := GetInt64(p, "d")
	assert.False(t, ok)
	_, ok = GetInt64(p, "missing")
	assert.False(t, ok)
}

func TestGetInt64_AfterJSONRound(t *testing.T) {
	raw, err := json.Marshal(Payload{"entry_id": int64(123)})
	require.NoError(t, err)

	var p Payload
	require.NoError(t, json.Unmarshal(raw, &p))

	got, ok := GetInt64(p, "entry_id")
	assert.True(t, ok)
	assert.Equal(t, int64(123), got)
}

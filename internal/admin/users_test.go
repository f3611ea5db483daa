package admin

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	require.Equal(t, 1, totalPages(0, 50))
	require.Equal(t, 1, totalPages(1, 50))
	require.Equal(t, 1, totalPages(50, 50))
	require.Equal(t, 2, totalPages(51, 50))
	require.Equal(t, 2, totalPages(100, 50))
	require.Equal(t, 3, totalPages(101, 50))
}

func TestSubscriptionFormValidation(t *testing.T) {
	val := validator.New()

	require.NoError(t, val.Struct(subscriptionForm{Tier: "basic", Days: 30}))
	require.NoError(t, val.Struct(subscriptionForm{Tier: "pro", Days: 365}))
	require.NoError(t, val.Struct(subscriptionForm{Tier: "free", Days: 0}))

	require.Error(t, val.Struct(subscriptionForm{Tier: "", Days: 30}))
	require.Error(t, val.Struct(subscriptionForm{Tier: "vip", Days: 30}))
	require.Error(t, val.Struct(subscriptionForm{Tier: "pro", Days: -1}))
	require.Error(t, val.Struct(subscriptionForm{Tier: "pro", Days: 10000}))
}

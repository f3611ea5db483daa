package entitlement

import (
	"testing"
	"time"

	"github.com/maybecook/mealbot/internal/domain/users"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func expiresAt(t time.Time) *time.Time { return &t }

func TestEvaluate_NoExpiry(t *testing.T) {
	e := NewEvaluator(7, 5)
	st := e.Evaluate(&users.User{SubscriptionType: "free"}, testNow)

	assert.False(t, st.Active)
	assert.Equal(t, TierExpired, st.Tier)
	assert.Equal(t, 0, st.DaysLeft)
}

func TestEvaluate_PastExpiry(t *testing.T) {
	e := NewEvaluator(7, 5)
	u := &users.User{
		SubscriptionType:    "pro",
		SubscriptionExpires: expiresAt(testNow.Add(-time.Hour)),
	}
	st := e.Evaluate(u, testNow)

	assert.False(t, st.Active)
	assert.Equal(t, TierExpired, st.Tier)
	assert.Equal(t, 0, st.DaysLeft)
}

func TestEvaluate_ExpiryExactlyNow(t *testing.T) {
	e := NewEvaluator(7, 5)
	u := &users.User{
		SubscriptionType:    "basic",
		SubscriptionExpires: expiresAt(testNow),
	}
	// граница: строгое "позже now", совпадение момента — уже неактивна
	assert.False(t, e.Evaluate(u, testNow).Active)
}

func TestEvaluate_DaysLeft(t *testing.T) {
	e := NewEvaluator(7, 5)

	cases := []struct {
		name string
		in   time.Duration
		want int
	}{
		{"ten days", 10 * 24 * time.Hour, 10},
		{"ten days minus a second", 10*24*time.Hour - time.Second, 9},
		{"under a day", 6 * time.Hour, 0},
		{"thirty days", 30 * 24 * time.Hour, 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := &users.User{
				SubscriptionType:    "basic",
				SubscriptionExpires: expiresAt(testNow.Add(tc.in)),
			}
			st := e.Evaluate(u, testNow)
			assert.True(t, st.Active)
			assert.Equal(t, TierBasic, st.Tier)
			assert.Equal(t, tc.want, st.DaysLeft)
		})
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	e := NewEvaluator(7, 5)
	u := &users.User{
		SubscriptionType:    "pro",
		SubscriptionExpires: expiresAt(testNow.Add(72 * time.Hour)),
	}
	assert.Equal(t, e.Evaluate(u, testNow), e.Evaluate(u, testNow))
}

func TestCanViewDay_InactiveMonotonic(t *testing.T) {
	e := NewEvaluator(7, 5)
	u := &users.User{SubscriptionType: "free"}

	for day := 1; day <= 30; day++ {
		got := e.CanViewDay(u, day, testNow)
		assert.Equal(t, day <= 7, got, "day %d", day)
	}
}

func TestCanViewDay_ActiveSeesEverything(t *testing.T) {
	e := NewEvaluator(7, 5)
	u := &users.User{
		SubscriptionType:    "basic",
		SubscriptionExpires: expiresAt(testNow.Add(24 * time.Hour)),
	}
	for _, day := range []int{1, 7, 8, 30} {
		assert.True(t, e.CanViewDay(u, day, testNow), "day %d", day)
	}
}

func TestQuestionsLeft_RolloverOnNewDay(t *testing.T) {
	e := NewEvaluator(7, 5)
	u := &users.User{
		SubscriptionType: "free",
		AIQuestionsToday: 5,
		AIQuestionsReset: testNow.Add(-24 * time.Hour), // вчера
	}

	assert.True(t, e.CanAskQuestion(u, testNow))
	assert.Equal(t, 5, e.QuestionsLeft(u, testNow))
}

func TestQuestionsLeft_ExhaustedToday(t *testing.T) {
	e := NewEvaluator(7, 5)
	u := &users.User{
		SubscriptionType: "free",
		AIQuestionsToday: 5,
		AIQuestionsReset: testNow,
	}

	assert.False(t, e.CanAskQuestion(u, testNow))
	assert.Equal(t, 0, e.QuestionsLeft(u, testNow))
}

func TestQuestionsLeft_FreeCountsDown(t *testing.T) {
	e := NewEvaluator(7, 5)
	u := &users.User{
		SubscriptionType: "free",
		AIQuestionsToday: 4,
		AIQuestionsReset: testNow,
	}

	// четыре израсходованы — пятый ещё доступен
	assert.True(t, e.CanAskQuestion(u, testNow))
	assert.Equal(t, 1, e.QuestionsLeft(u, testNow))

	u.AIQuestionsToday = 5
	assert.False(t, e.CanAskQuestion(u, testNow))
}

func TestQuestionsLeft_ProBypassesCounter(t *testing.T) {
	e := NewEvaluator(7, 5)
	u := &users.User{
		SubscriptionType:    "pro",
		SubscriptionExpires: expiresAt(testNow.Add(24 * time.Hour)),
		AIQuestionsToday:    99,
		AIQuestionsReset:    testNow,
	}

	assert.True(t, e.Unlimited(u, testNow))
	assert.True(t, e.CanAskQuestion(u, testNow))
	assert.Equal(t, -1, e.QuestionsLeft(u, testNow))
}

func TestQuestionsLeft_ExpiredProFallsBackToQuota(t *testing.T) {
	e := NewEvaluator(7, 5)
	u := &users.User{
		SubscriptionType:    "pro",
		SubscriptionExpires: expiresAt(testNow.Add(-time.Minute)),
		AIQuestionsToday:    5,
		AIQuestionsReset:    testNow,
	}

	assert.False(t, e.Unlimited(u, testNow))
	assert.False(t, e.CanAskQuestion(u, testNow))
}

func TestQuestionsLeft_UTCBoundary(t *testing.T) {
	e := NewEvaluator(7, 5)

	// 23:59 UTC вчера против 00:01 UTC сегодня — разные сутки
	reset := time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC)
	now := time.Date(2025, 3, 10, 0, 1, 0, 0, time.UTC)
	u := &users.User{SubscriptionType: "free", AIQuestionsToday: 5, AIQuestionsReset: reset}

	assert.True(t, e.CanAskQuestion(u, now))

	// тот же момент в другом поясе остаётся теми же сутками UTC
	msk := time.FixedZone("MSK", 3*60*60)
	assert.True(t, e.CanAskQuestion(u, now.In(msk)))
}

func TestNormalizeTier(t *testing.T) {
	cases := []struct {
		in   string
		want Tier
	}{
		{"free", TierFree},
		{"basic", TierBasic},
		{"pro", TierPro},
		{" PRO ", TierPro},
		{"Basic", TierBasic},
		{"", TierFree},
		{"enterprise", TierFree},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeTier(tc.in), "input %q", tc.in)
	}
}

func TestNewEvaluator_Defaults(t *testing.T) {
	e := NewEvaluator(0, 0)
	assert.Equal(t, DefaultFreeDaysVisible, e.FreeDaysVisible)
	assert.Equal(t, DefaultFreeQuestionsPerDay, e.FreeQuestionsPerDay)
}

func TestDefaultPlans(t *testing.T) {
	plans := DefaultPlans()

	assert.Equal(t, 0, plans[TierFree].Price)
	assert.Equal(t, 299, plans[TierBasic].Price)
	assert.Equal(t, 599, plans[TierPro].Price)
	assert.Equal(t, 30, plans[TierBasic].Days)
	assert.Equal(t, 30, plans[TierPro].Days)
}

// Package entitlement отвечает на вопросы доступа: активна ли подписка,
// какой день программы виден и можно ли задать вопрос помощнику.
//
// Все решения — чистые функции над записью пользователя и моментом времени;
// никакого состояния пакет не меняет. Списание вопроса из квоты — отдельная
// атомарная операция в репозитории пользователей (users.Repo.ConsumeQuestion).
// Календарные сутки везде считаются по UTC.
package entitlement

import (
	"time"

	"github.com/maybecook/mealbot/internal/domain/users"
)

const (
	DefaultFreeDaysVisible     = 7
	DefaultFreeQuestionsPerDay = 5
)

// Status Результат оценки подписки. Для неактивной подписки Tier == TierExpired
// и DaysLeft == 0 независимо от того, что хранится в записи пользователя.
type Status struct {
	Active   bool
	Tier     Tier
	DaysLeft int
}

type Evaluator struct {
	FreeDaysVisible     int
	FreeQuestionsPerDay int
}

func NewEvaluator(freeDaysVisible, freeQuestionsPerDay int) Evaluator {
	if freeDaysVisible <= 0 {
		freeDaysVisible = DefaultFreeDaysVisible
	}
	if freeQuestionsPerDay <= 0 {
		freeQuestionsPerDay = DefaultFreeQuestionsPerDay
	}
	return Evaluator{
		FreeDaysVisible:     freeDaysVisible,
		FreeQuestionsPerDay: freeQuestionsPerDay,
	}
}

// Evaluate Подписка активна, только когда срок задан и строго позже now.
// DaysLeft — целые дни до конца срока, округление вниз.
func (e Evaluator) Evaluate(u *users.User, now time.Time) Status {
	if u == nil || u.SubscriptionExpires == nil || !u.SubscriptionExpires.After(now) {
		return Status{Active: false, Tier: TierExpired, DaysLeft: 0}
	}
	days := int(u.SubscriptionExpires.Sub(now).Hours() / 24)
	return Status{Active: true, Tier: NormalizeTier(u.SubscriptionType), DaysLeft: days}
}

// CanViewDay С активной подпиской открыты все дни, без неё — первые
// FreeDaysVisible. Номер дня здесь не валидируется: за пределами 1..30
// контента просто нет, это забота вызывающего кода.
func (e Evaluator) CanViewDay(u *users.User, day int, now time.Time) bool {
	if e.Evaluate(u, now).Active {
		return true
	}
	return day <= e.FreeDaysVisible
}

// Unlimited Активные basic и pro не ограничены дневной квотой вопросов.
func (e Evaluator) Unlimited(u *users.User, now time.Time) bool {
	st := e.Evaluate(u, now)
	return st.Active && (st.Tier == TierBasic || st.Tier == TierPro)
}

// CanAskQuestion Чистая проверка квоты. Счётчик с датой сброса из прошлых
// суток (UTC) считается нулевым — сам сброс здесь не выполняется, его делает
// ConsumeQuestion при списании.
func (e Evaluator) CanAskQuestion(u *users.User, now time.Time) bool {
	return e.QuestionsLeft(u, now) != 0
}

// QuestionsLeft Остаток дневной квоты; -1 — безлимит.
func (e Evaluator) QuestionsLeft(u *users.User, now time.Time) int {
	if e.Unlimited(u, now) {
		return -1
	}
	if u == nil || !sameUTCDate(u.AIQuestionsReset, now) {
		return e.FreeQuestionsPerDay
	}
	left := e.FreeQuestionsPerDay - u.AIQuestionsToday
	if left < 0 {
		left = 0
	}
	return left
}

func sameUTCDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

package entitlement

import "strings"

type Tier string

const (
	TierFree  Tier = "free"
	TierBasic Tier = "basic"
	TierPro   Tier = "pro"

	// TierExpired Виртуальный тариф неактивной подписки. В БД не хранится:
	// в subscription_type всегда лежит один из free/basic/pro.
	TierExpired Tier = "expired"
)

// NormalizeTier Приводит строку из БД/формы к известному тарифу.
// Пустое и неизвестное значение трактуется как free.
func NormalizeTier(s string) Tier {
	switch Tier(strings.ToLower(strings.TrimSpace(s))) {
	case TierBasic:
		return TierBasic
	case TierPro:
		return TierPro
	default:
		return TierFree
	}
}

package entitlement

// Plan Витрина тарифа: цена в рублях за период и длительность в днях.
type Plan struct {
	Tier  Tier
	Name  string
	Price int
	Days  int
}

// DefaultPlans Базовая сетка тарифов; цены и сроки платных тарифов
// переопределяются конфигом.
func DefaultPlans() map[Tier]Plan {
	return map[Tier]Plan{
		TierFree:  {Tier: TierFree, Name: "Free", Price: 0, Days: 7},
		TierBasic: {Tier: TierBasic, Name: "Basic", Price: 299, Days: 30},
		TierPro:   {Tier: TierPro, Name: "Pro", Price: 599, Days: 30},
	}
}

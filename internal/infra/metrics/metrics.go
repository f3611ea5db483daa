package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpdatesTotal Входящие telegram-апдейты по типу (message | callback).
	UpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mealbot_updates_total",
		Help: "Incoming telegram updates by type.",
	}, []string{"type"})

	QuestionsAnswered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mealbot_questions_answered_total",
		Help: "Assistant questions answered.",
	})

	QuestionsDenied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mealbot_questions_denied_total",
		Help: "Assistant questions denied by quota.",
	})

	RecipeViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mealbot_recipe_views_total",
		Help: "Recipe cards shown to users.",
	})
)

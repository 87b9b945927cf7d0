// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitplan_sessions_created_total",
			Help: "Total number of onboarding sessions created",
		},
	)

	IntakeCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitplan_intake_completed_total",
			Help: "Total number of questionnaires completed with plans generated",
		},
	)

	GenerationFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitplan_generation_failed_total",
			Help: "Total number of assessment/plan generations that failed",
		},
	)

	SubscriptionTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitplan_subscription_transitions_total",
			Help: "Subscription state transitions by kind",
		},
		[]string{"transition"},
	)

	MonthsRenewed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitplan_months_renewed_total",
			Help: "Total number of plan months unlocked by renewal",
		},
	)

	ProgressEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitplan_progress_events_total",
			Help: "Progress events applied, by kind",
		},
		[]string{"kind"},
	)

	AchievementsUnlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitplan_achievements_unlocked_total",
			Help: "Achievements unlocked, by achievement id",
		},
		[]string{"achievement"},
	)

	SnapshotFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitplan_snapshot_failures_total",
			Help: "Snapshot store operations that failed, by operation and key",
		},
		[]string{"op", "key"},
	)
)

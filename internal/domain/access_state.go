package domain

import "time"

// SubscriptionPlan is the billing option picked when subscribing.
type SubscriptionPlan string

const (
	PlanMonthly SubscriptionPlan = "monthly"
	PlanAnnual  SubscriptionPlan = "annual"
)

// Valid reports whether p is a known plan.
func (p SubscriptionPlan) Valid() bool {
	return p == PlanMonthly || p == PlanAnnual
}

// Phase is the access state machine position derived from AccessState flags.
type Phase string

const (
	PhaseQuizIncomplete       Phase = "quiz_incomplete"
	PhaseAwaitingSubscription Phase = "awaiting_subscription"
	PhaseSubscriptionActive   Phase = "subscription_active"
	PhaseSubscriptionExpired  Phase = "subscription_expired"
)

// AccessState gates the plan and progress views.
type AccessState struct {
	IntakeCompleted       bool             `json:"intakeCompleted"`
	SubscriptionActive    bool             `json:"subscriptionActive"`
	SubscriptionExpired   bool             `json:"subscriptionExpired"`
	CurrentUnlockedMonth  int              `json:"currentUnlockedMonth"`
	SubscriptionPlan      SubscriptionPlan `json:"subscriptionPlan,omitempty"`
	SubscriptionStartedAt *time.Time       `json:"subscriptionStartedAt,omitempty"`
}

// NewAccessState returns the initial Quiz_Incomplete state.
func NewAccessState() AccessState {
	return AccessState{CurrentUnlockedMonth: 1}
}

// CanAccessGated is the single gating predicate for protected views.
func (s AccessState) CanAccessGated() bool {
	return s.IntakeCompleted && s.SubscriptionActive
}

// OfferVisible reports whether the subscription offer should be shown.
func (s AccessState) OfferVisible() bool {
	return s.IntakeCompleted && !s.SubscriptionActive
}

func (s AccessState) Phase() Phase {
	switch {
	case !s.IntakeCompleted:
		return PhaseQuizIncomplete
	case s.SubscriptionActive:
		return PhaseSubscriptionActive
	case s.SubscriptionExpired:
		return PhaseSubscriptionExpired
	default:
		return PhaseAwaitingSubscription
	}
}

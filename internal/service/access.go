package service

import (
	"errors"
	"fmt"
	"time"

	"alcyxob/fitplan/internal/domain"
)

var (
	ErrTransitionNotPermitted = errors.New("transition not permitted in current state")
	ErrInvalidPlan            = errors.New("unknown subscription plan")
	ErrMonthOutOfRange        = errors.New("month out of range")
	ErrPlansNotGenerated      = errors.New("monthly plans have not been generated")
	ErrUnknownView            = errors.New("unknown view")
)

// View is a navigable section of the app.
type View string

const (
	ViewIntake   View = "intake"
	ViewPricing  View = "pricing"
	ViewPlans    View = "plans"
	ViewProgress View = "progress"
)

// Gated reports whether v needs CanAccessGated.
func (v View) Gated() bool {
	return v == ViewPlans || v == ViewProgress
}

func (v View) valid() bool {
	switch v {
	case ViewIntake, ViewPricing, ViewPlans, ViewProgress:
		return true
	}
	return false
}

// AccessController is the subscription state machine. It owns AccessState; the
// monthly plans it unlocks are passed in by the caller.
type AccessController struct {
	state domain.AccessState
	view  View
}

// NewAccessController starts in Quiz_Incomplete on the intake view.
func NewAccessController() *AccessController {
	return RestoreAccessController(domain.NewAccessState(), ViewIntake)
}

// RestoreAccessController resumes from persisted state. A gated view that is
// no longer reachable falls back to the intake view.
func RestoreAccessController(state domain.AccessState, view View) *AccessController {
	if state.CurrentUnlockedMonth < 1 {
		state.CurrentUnlockedMonth = 1
	}
	c := &AccessController{state: state, view: ViewIntake}
	_, _ = c.Navigate(view)
	return c
}

func (c *AccessController) State() domain.AccessState { return c.state }
func (c *AccessController) Phase() domain.Phase       { return c.state.Phase() }
func (c *AccessController) ActiveView() View          { return c.view }

// CanAccessGated reports whether plan and progress views are reachable.
func (c *AccessController) CanAccessGated() bool {
	return c.state.CanAccessGated()
}

// CompleteIntake moves Quiz_Incomplete to awaiting subscription and shows the
// offer.
func (c *AccessController) CompleteIntake() error {
	if c.state.Phase() != domain.PhaseQuizIncomplete {
		return ErrTransitionNotPermitted
	}
	c.state.IntakeCompleted = true
	c.view = ViewPricing
	return nil
}

// ConfirmSubscription activates the subscription once payment succeeded.
func (c *AccessController) ConfirmSubscription(plan domain.SubscriptionPlan, now time.Time) error {
	if !plan.Valid() {
		return ErrInvalidPlan
	}
	if c.state.Phase() != domain.PhaseAwaitingSubscription {
		return ErrTransitionNotPermitted
	}
	started := now.UTC()
	c.state.SubscriptionActive = true
	c.state.SubscriptionExpired = false
	c.state.SubscriptionPlan = plan
	c.state.SubscriptionStartedAt = &started
	c.view = ViewPlans
	return nil
}

// RenewMonth unlocks month and every locked month before it, keeping the
// unlock frontier contiguous. Renewing an unlocked month is a no-op.
func (c *AccessController) RenewMonth(plans []domain.MonthlyPlan, month int, now time.Time) error {
	if c.state.Phase() != domain.PhaseSubscriptionActive {
		return ErrTransitionNotPermitted
	}
	if len(plans) == 0 {
		return ErrPlansNotGenerated
	}
	if month < 1 || month > len(plans) {
		return fmt.Errorf("%w: %d", ErrMonthOutOfRange, month)
	}

	renewed := now.UTC()
	for i := range plans {
		if plans[i].Month <= month && !plans[i].Unlocked {
			plans[i].Unlocked = true
			plans[i].RenewedAt = &renewed
		}
	}
	if month > c.state.CurrentUnlockedMonth {
		c.state.CurrentUnlockedMonth = month
	}
	return nil
}

// Expire moves an active subscription to expired. Gated views close.
func (c *AccessController) Expire() error {
	if c.state.Phase() != domain.PhaseSubscriptionActive {
		return ErrTransitionNotPermitted
	}
	c.state.SubscriptionActive = false
	c.state.SubscriptionExpired = true
	if c.view.Gated() {
		c.view = ViewPricing
	}
	return nil
}

// Reactivate restores an expired subscription.
func (c *AccessController) Reactivate() error {
	if c.state.Phase() != domain.PhaseSubscriptionExpired {
		return ErrTransitionNotPermitted
	}
	c.state.SubscriptionActive = true
	c.state.SubscriptionExpired = false
	return nil
}

// Reset returns to Quiz_Incomplete.
func (c *AccessController) Reset() {
	c.state = domain.NewAccessState()
	c.view = ViewIntake
}

// Navigate switches the active view. Requests for a gated view are ignored
// while access is closed; the returned bool tells whether the view changed.
func (c *AccessController) Navigate(view View) (bool, error) {
	if !view.valid() {
		return false, ErrUnknownView
	}
	if view.Gated() && !c.state.CanAccessGated() {
		return false, nil
	}
	changed := c.view != view
	c.view = view
	return changed, nil
}

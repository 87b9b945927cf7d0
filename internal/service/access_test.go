package service

import (
	"testing"
	"time"

	"alcyxob/fitplan/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func activeController(t *testing.T) *AccessController {
	t.Helper()
	c := NewAccessController()
	require.NoError(t, c.CompleteIntake())
	require.NoError(t, c.ConfirmSubscription(domain.PlanMonthly, fixedNow))
	return c
}

func TestAccess_Scenario(t *testing.T) {
	c := NewAccessController()
	assert.Equal(t, domain.PhaseQuizIncomplete, c.Phase())
	assert.False(t, c.CanAccessGated())

	require.NoError(t, c.CompleteIntake())
	assert.Equal(t, domain.PhaseAwaitingSubscription, c.Phase())
	assert.False(t, c.CanAccessGated())
	assert.True(t, c.State().OfferVisible())
	assert.Equal(t, ViewPricing, c.ActiveView())

	require.NoError(t, c.ConfirmSubscription(domain.PlanMonthly, fixedNow))
	assert.True(t, c.CanAccessGated())
	assert.Equal(t, 1, c.State().CurrentUnlockedMonth)
	require.NotNil(t, c.State().SubscriptionStartedAt)
	assert.Equal(t, fixedNow, *c.State().SubscriptionStartedAt)
	assert.Equal(t, ViewPlans, c.ActiveView())
}

func TestAccess_InvalidTransitions(t *testing.T) {
	c := NewAccessController()
	assert.ErrorIs(t, c.ConfirmSubscription(domain.PlanMonthly, fixedNow), ErrTransitionNotPermitted)
	assert.ErrorIs(t, c.Expire(), ErrTransitionNotPermitted)
	assert.ErrorIs(t, c.Reactivate(), ErrTransitionNotPermitted)
	assert.ErrorIs(t, c.RenewMonth([]domain.MonthlyPlan{{Month: 1}}, 1, fixedNow), ErrTransitionNotPermitted)

	require.NoError(t, c.CompleteIntake())
	assert.ErrorIs(t, c.CompleteIntake(), ErrTransitionNotPermitted)
	assert.ErrorIs(t, c.ConfirmSubscription("weekly", fixedNow), ErrInvalidPlan)
	assert.Equal(t, domain.PhaseAwaitingSubscription, c.Phase())
}

func TestAccess_ExpireAndReactivate(t *testing.T) {
	c := activeController(t)

	require.NoError(t, c.Expire())
	assert.Equal(t, domain.PhaseSubscriptionExpired, c.Phase())
	assert.False(t, c.CanAccessGated())
	assert.True(t, c.State().IntakeCompleted)
	assert.Equal(t, ViewPricing, c.ActiveView())
	assert.ErrorIs(t, c.ConfirmSubscription(domain.PlanAnnual, fixedNow), ErrTransitionNotPermitted)

	require.NoError(t, c.Reactivate())
	assert.Equal(t, domain.PhaseSubscriptionActive, c.Phase())
	assert.True(t, c.CanAccessGated())
}

func TestAccess_RenewMonthKeepsFrontierContiguous(t *testing.T) {
	plans, err := NewPlanGenerator().Generate(sampleAnswers(t, nil))
	require.NoError(t, err)
	c := activeController(t)

	require.NoError(t, c.RenewMonth(plans, 4, fixedNow))
	assert.Equal(t, 4, c.State().CurrentUnlockedMonth)
	assertMonotonic(t, plans)
	assert.Equal(t, 4, domain.UnlockFrontier(plans))
	assert.Nil(t, plans[0].RenewedAt, "month 1 was already unlocked")
	require.NotNil(t, plans[1].RenewedAt)

	later := fixedNow.Add(24 * time.Hour)
	require.NoError(t, c.RenewMonth(plans, 2, later))
	assert.Equal(t, 4, c.State().CurrentUnlockedMonth, "frontier never moves back")
	assert.Equal(t, fixedNow, *plans[1].RenewedAt, "re-renewing is a no-op")

	assert.ErrorIs(t, c.RenewMonth(plans, 0, fixedNow), ErrMonthOutOfRange)
	assert.ErrorIs(t, c.RenewMonth(plans, 13, fixedNow), ErrMonthOutOfRange)
	assert.ErrorIs(t, c.RenewMonth(nil, 2, fixedNow), ErrPlansNotGenerated)
}

func TestAccess_RenewSequenceProperty(t *testing.T) {
	plans, err := NewPlanGenerator().Generate(sampleAnswers(t, nil))
	require.NoError(t, err)
	c := activeController(t)

	for _, m := range []int{3, 1, 7, 5, 12, 2} {
		require.NoError(t, c.RenewMonth(plans, m, fixedNow))
		assertMonotonic(t, plans)
		assert.Equal(t, c.State().CurrentUnlockedMonth, domain.UnlockFrontier(plans))
	}
}

func assertMonotonic(t *testing.T, plans []domain.MonthlyPlan) {
	t.Helper()
	for i := range plans {
		if !plans[i].Unlocked {
			continue
		}
		for j := 0; j < i; j++ {
			assert.True(t, plans[j].Unlocked, "month %d unlocked but month %d locked", plans[i].Month, plans[j].Month)
		}
	}
}

func TestAccess_GatingPredicateOverReachableStates(t *testing.T) {
	c := NewAccessController()
	check := func() {
		s := c.State()
		assert.Equal(t, s.IntakeCompleted && s.SubscriptionActive, c.CanAccessGated())
	}
	check()
	require.NoError(t, c.CompleteIntake())
	check()
	require.NoError(t, c.ConfirmSubscription(domain.PlanAnnual, fixedNow))
	check()
	require.NoError(t, c.Expire())
	check()
	require.NoError(t, c.Reactivate())
	check()
	c.Reset()
	check()
	assert.Equal(t, domain.NewAccessState(), c.State())
}

func TestAccess_Navigate(t *testing.T) {
	c := NewAccessController()

	changed, err := c.Navigate(ViewPlans)
	require.NoError(t, err)
	assert.False(t, changed, "gated view is a no-op")
	assert.Equal(t, ViewIntake, c.ActiveView())

	_, err = c.Navigate("settings")
	assert.ErrorIs(t, err, ErrUnknownView)

	c = activeController(t)
	changed, err = c.Navigate(ViewProgress)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, ViewProgress, c.ActiveView())
}

func TestAccess_RestoreDropsUnreachableView(t *testing.T) {
	c := RestoreAccessController(domain.AccessState{IntakeCompleted: true}, ViewProgress)
	assert.Equal(t, ViewIntake, c.ActiveView())
	assert.Equal(t, 1, c.State().CurrentUnlockedMonth)
}

package billing

import (
	"time"

	"fitops/internal/models"
)

// LifecycleState is the single authoritative answer to "what state is this
// tenant in". Every view derives it through DeriveTenantState instead of
// re-combining the underlying flags.
type LifecycleState string

const (
	StateInactive            LifecycleState = "inactive"
	StateFree                LifecycleState = "free"
	StateTrial               LifecycleState = "trial"
	StateTrialExpired        LifecycleState = "trial_expired"
	StateActive              LifecycleState = "active"
	StateMissingSubscription LifecycleState = "missing_subscription"
)

// DeriveTenantState computes the lifecycle state from the tenant row and
// whether a subscription row exists. Expiry is passive: a lapsed trial shows
// as trial_expired here but nothing flips is_active until an admin acts.
func DeriveTenantState(t *models.Tenant, hasSubscription bool, now time.Time) LifecycleState {
	if !t.IsActive {
		return StateInactive
	}
	if t.IsFree {
		return StateFree
	}
	if t.SubscriptionStatus == models.TenantStatusTrial || t.TrialEndsAt != nil {
		if t.TrialEndsAt != nil && !t.TrialEndsAt.After(now) {
			return StateTrialExpired
		}
		return StateTrial
	}
	if hasSubscription {
		return StateActive
	}
	return StateMissingSubscription
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription is the single current billing record for a tenant. The
// subscriptions table carries a unique constraint on tenant_id; renewals and
// plan changes update the row in place.
type Subscription struct {
	ID                 uuid.UUID          `json:"id" db:"id"`
	TenantID           uuid.UUID          `json:"tenant_id" db:"tenant_id"`
	PlanName           string             `json:"plan_name" db:"plan_name"`
	Amount             float64            `json:"amount" db:"amount"`
	Currency           string             `json:"currency" db:"currency"`
	Status             SubscriptionStatus `json:"status" db:"status"`
	BillingPeriodStart time.Time          `json:"billing_period_start" db:"billing_period_start"`
	BillingPeriodEnd   time.Time          `json:"billing_period_end" db:"billing_period_end"`
	CreatedAt          time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" db:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// PlanRequest is a tenant's request to change subscription terms. It is only
// resolved after a matching payment proof has been approved.
type PlanRequest struct {
	ID              uuid.UUID     `json:"id" db:"id"`
	TenantID        uuid.UUID     `json:"tenant_id" db:"tenant_id"`
	PlanID          string        `json:"plan_id" db:"plan_id"`
	PlanName        string        `json:"plan_name" db:"plan_name"`
	Amount          float64       `json:"amount" db:"amount"`
	Currency        string        `json:"currency" db:"currency"`
	BillingCycle    BillingCycle  `json:"billing_cycle" db:"billing_cycle"`
	Status          RequestStatus `json:"status" db:"status"`
	RejectionReason *string       `json:"rejection_reason" db:"rejection_reason"`
	RequestedAt     time.Time     `json:"requested_at" db:"requested_at"`
	ReviewedBy      *uuid.UUID    `json:"reviewed_by" db:"reviewed_by"`
	ReviewedAt      *time.Time    `json:"reviewed_at" db:"reviewed_at"`
}

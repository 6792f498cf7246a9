package models

import "fmt"

// TenantStatus is the subscription standing recorded on the tenant row.
type TenantStatus string

const (
	TenantStatusTrial    TenantStatus = "trial"
	TenantStatusActive   TenantStatus = "active"
	TenantStatusInactive TenantStatus = "inactive"
)

func (s TenantStatus) Valid() bool {
	switch s {
	case TenantStatusTrial, TenantStatusActive, TenantStatusInactive:
		return true
	}
	return false
}

// ProofStatus is the review state of a payment proof. Approved and rejected
// are terminal; subsequent payments require a new proof.
type ProofStatus string

const (
	ProofStatusPending  ProofStatus = "pending"
	ProofStatusApproved ProofStatus = "approved"
	ProofStatusRejected ProofStatus = "rejected"
)

func (s ProofStatus) Valid() bool {
	switch s {
	case ProofStatusPending, ProofStatusApproved, ProofStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether the proof can no longer be reviewed.
func (s ProofStatus) Terminal() bool {
	return s == ProofStatusApproved || s == ProofStatusRejected
}

// RequestStatus is the review state of a plan-change request.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusRejected:
		return true
	}
	return false
}

// SubscriptionStatus is the standing of a subscription row.
type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// BillingCycle determines the billing window length for a requested plan.
type BillingCycle string

const (
	BillingCycleMonthly   BillingCycle = "monthly"
	BillingCycleQuarterly BillingCycle = "quarterly"
	BillingCycleAnnual    BillingCycle = "annual"
)

func ParseBillingCycle(s string) (BillingCycle, error) {
	switch BillingCycle(s) {
	case BillingCycleMonthly, BillingCycleQuarterly, BillingCycleAnnual:
		return BillingCycle(s), nil
	}
	return "", fmt.Errorf("billing cycle must be one of: monthly, quarterly, annual")
}

// JobStatus is the service-job workflow state.
type JobStatus string

const (
	JobStatusReceived   JobStatus = "received"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusReady      JobStatus = "ready"
	JobStatusDelivered  JobStatus = "delivered"
	JobStatusCancelled  JobStatus = "cancelled"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusReceived, JobStatusInProgress, JobStatusReady, JobStatusDelivered, JobStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo enforces the forward-only job workflow. Cancellation is
// allowed from any non-terminal state.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	if s == JobStatusDelivered || s == JobStatusCancelled {
		return false
	}
	if next == JobStatusCancelled {
		return true
	}
	order := map[JobStatus]int{
		JobStatusReceived:   0,
		JobStatusInProgress: 1,
		JobStatusReady:      2,
		JobStatusDelivered:  3,
	}
	from, ok1 := order[s]
	to, ok2 := order[next]
	return ok1 && ok2 && to == from+1
}

// RequirementStatus tracks sourcing of a needed part or accessory.
type RequirementStatus string

const (
	RequirementStatusOpen     RequirementStatus = "open"
	RequirementStatusOrdered  RequirementStatus = "ordered"
	RequirementStatusReceived RequirementStatus = "received"
)

func (s RequirementStatus) Valid() bool {
	switch s {
	case RequirementStatusOpen, RequirementStatusOrdered, RequirementStatusReceived:
		return true
	}
	return false
}

// UserRole is the coarse role model: tenant admins, tenant staff and the
// cross-tenant super admin.
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleStaff      UserRole = "staff"
	RoleSuperAdmin UserRole = "super_admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleSuperAdmin:
		return true
	}
	return false
}

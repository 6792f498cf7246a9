package models

import (
	"time"

	"github.com/google/uuid"
)

type Tenant struct {
	ID                 uuid.UUID    `json:"id" db:"id"`
	Name               string       `json:"name" db:"name"`
	WorkspaceSlug      string       `json:"workspace_url" db:"workspace_url"`
	TenantCode         *string      `json:"tenant_code" db:"tenant_code"`
	IsActive           bool         `json:"is_active" db:"is_active"`
	IsFree             bool         `json:"is_free" db:"is_free"`
	SubscriptionStatus TenantStatus `json:"subscription_status" db:"subscription_status"`
	TrialEndsAt        *time.Time   `json:"trial_ends_at" db:"trial_ends_at"`
	CreatedAt          time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at" db:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Requirement is a part or accessory that must be sourced before a job can
// proceed.
type Requirement struct {
	ID        uuid.UUID         `json:"id" db:"id"`
	TenantID  uuid.UUID         `json:"tenant_id" db:"tenant_id"`
	JobID     *uuid.UUID        `json:"job_id" db:"job_id"`
	PartName  string            `json:"part_name" db:"part_name"`
	Quantity  int               `json:"quantity" db:"quantity"`
	Status    RequirementStatus `json:"status" db:"status"`
	Notes     *string           `json:"notes" db:"notes"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" db:"updated_at"`
}

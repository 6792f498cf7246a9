package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceJob is one accessory-installation job on a vehicle, moving through
// received -> in_progress -> ready -> delivered.
type ServiceJob struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	TenantID    uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	VehicleID   uuid.UUID  `json:"vehicle_id" db:"vehicle_id"`
	Title       string     `json:"title" db:"title"`
	Accessory   string     `json:"accessory" db:"accessory"`
	Status      JobStatus  `json:"status" db:"status"`
	AssignedTo  *uuid.UUID `json:"assigned_to" db:"assigned_to"`
	Notes       *string    `json:"notes" db:"notes"`
	CompletedAt *time.Time `json:"completed_at" db:"completed_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

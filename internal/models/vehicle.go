package models

import (
	"time"

	"github.com/google/uuid"
)

// Vehicle is one intake record: the customer's car as received at the shop.
type Vehicle struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	TenantID      uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	PlateNumber   string     `json:"plate_number" db:"plate_number"`
	Make          string     `json:"make" db:"make"`
	Model         string     `json:"model" db:"model"`
	OwnerName     string     `json:"owner_name" db:"owner_name"`
	OwnerPhone    string     `json:"owner_phone" db:"owner_phone"`
	IntakeNotes   *string    `json:"intake_notes" db:"intake_notes"`
	ReceivedAt    time.Time  `json:"received_at" db:"received_at"`
	DeliveredAt   *time.Time `json:"delivered_at" db:"delivered_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

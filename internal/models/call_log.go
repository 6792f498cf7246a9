package models

import (
	"time"

	"github.com/google/uuid"
)

// CallLog records a customer follow-up call and whether another one is due.
type CallLog struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	TenantID     uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	CustomerName string     `json:"customer_name" db:"customer_name"`
	Phone        string     `json:"phone" db:"phone"`
	Outcome      *string    `json:"outcome" db:"outcome"`
	FollowUpAt   *time.Time `json:"follow_up_at" db:"follow_up_at"`
	Done         bool       `json:"done" db:"done"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

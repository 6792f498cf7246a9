package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentProof is tenant-submitted evidence of an offline payment awaiting
// admin review.
type PaymentProof struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	TenantID      uuid.UUID   `json:"tenant_id" db:"tenant_id"`
	TransactionID string      `json:"transaction_id" db:"transaction_id"`
	PaymentDate   *time.Time  `json:"payment_date" db:"payment_date"`
	Amount        float64     `json:"amount" db:"amount"`
	Currency      string      `json:"currency" db:"currency"`
	Status        ProofStatus `json:"status" db:"status"`
	Notes         *string     `json:"notes" db:"notes"`
	ProofURL      *string     `json:"payment_proof_url" db:"payment_proof_url"`
	ReviewedBy    *uuid.UUID  `json:"reviewed_by" db:"reviewed_by"`
	ReviewedAt    *time.Time  `json:"reviewed_at" db:"reviewed_at"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
}

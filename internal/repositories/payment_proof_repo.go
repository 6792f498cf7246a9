package repositories

import (
	"context"
	"time"

	"fitops/internal/models"

	"github.com/google/uuid"
)

type PaymentProofRepository interface {
	Create(ctx context.Context, proof *models.PaymentProof) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.PaymentProof, error)
	// GetForReview locks the row for the duration of the surrounding
	// transaction so two admins cannot review the same proof at once.
	GetForReview(ctx context.Context, tenantID, id uuid.UUID) (*models.PaymentProof, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.PaymentProof, error)
	ListPending(ctx context.Context) ([]*models.PaymentProof, error)
	// SetProofURL stores the evidence file's object name. The stable object
	// name is persisted, not a presigned URL, which would expire.
	SetProofURL(ctx context.Context, tenantID, id uuid.UUID, proofURL string) error
	MarkReviewed(ctx context.Context, tenantID, id uuid.UUID, status models.ProofStatus, reviewedBy uuid.UUID, reviewedAt time.Time, notes *string) error
}

type paymentProofRepo struct {
	db Database
}

func NewPaymentProofRepo(db Database) PaymentProofRepository {
	return &paymentProofRepo{db: db}
}

const proofColumns = `id, tenant_id, transaction_id, payment_date, amount, currency, status, notes, payment_proof_url, reviewed_by, reviewed_at, created_at`

func scanProof(row interface{ Scan(dest ...any) error }) (*models.PaymentProof, error) {
	proof := &models.PaymentProof{}
	err := row.Scan(&proof.ID, &proof.TenantID, &proof.TransactionID, &proof.PaymentDate, &proof.Amount, &proof.Currency, &proof.Status, &proof.Notes, &proof.ProofURL, &proof.ReviewedBy, &proof.ReviewedAt, &proof.CreatedAt)
	if err != nil {
		return nil, err
	}
	return proof, nil
}

func (r *paymentProofRepo) Create(ctx context.Context, proof *models.PaymentProof) error {
	query := `
		INSERT INTO tenant_payment_proofs (id, tenant_id, transaction_id, payment_date, amount, currency, status, notes, payment_proof_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
	`
	_, err := r.db.Exec(ctx, query, proof.ID, proof.TenantID, proof.TransactionID, proof.PaymentDate, proof.Amount, proof.Currency, proof.Status, proof.Notes, proof.ProofURL)
	return err
}

func (r *paymentProofRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.PaymentProof, error) {
	query := `SELECT ` + proofColumns + ` FROM tenant_payment_proofs WHERE tenant_id = $1 AND id = $2`
	return scanProof(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *paymentProofRepo) GetForReview(ctx context.Context, tenantID, id uuid.UUID) (*models.PaymentProof, error) {
	query := `SELECT ` + proofColumns + ` FROM tenant_payment_proofs WHERE tenant_id = $1 AND id = $2 FOR UPDATE`
	return scanProof(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *paymentProofRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.PaymentProof, error) {
	query := `
		SELECT ` + proofColumns + `
		FROM tenant_payment_proofs
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var proofs []*models.PaymentProof
	for rows.Next() {
		proof, err := scanProof(rows)
		if err != nil {
			return nil, err
		}
		proofs = append(proofs, proof)
	}
	return proofs, rows.Err()
}

func (r *paymentProofRepo) ListPending(ctx context.Context) ([]*models.PaymentProof, error) {
	query := `
		SELECT ` + proofColumns + `
		FROM tenant_payment_proofs
		WHERE status = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, models.ProofStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var proofs []*models.PaymentProof
	for rows.Next() {
		proof, err := scanProof(rows)
		if err != nil {
			return nil, err
		}
		proofs = append(proofs, proof)
	}
	return proofs, rows.Err()
}

func (r *paymentProofRepo) SetProofURL(ctx context.Context, tenantID, id uuid.UUID, proofURL string) error {
	query := `UPDATE tenant_payment_proofs SET payment_proof_url = $1 WHERE tenant_id = $2 AND id = $3`
	_, err := r.db.Exec(ctx, query, proofURL, tenantID, id)
	return err
}

func (r *paymentProofRepo) MarkReviewed(ctx context.Context, tenantID, id uuid.UUID, status models.ProofStatus, reviewedBy uuid.UUID, reviewedAt time.Time, notes *string) error {
	query := `
		UPDATE tenant_payment_proofs
		SET status = $1, reviewed_by = $2, reviewed_at = $3, notes = COALESCE($4, notes)
		WHERE tenant_id = $5 AND id = $6
	`
	_, err := r.db.Exec(ctx, query, status, reviewedBy, reviewedAt, notes, tenantID, id)
	return err
}

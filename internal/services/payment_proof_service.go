package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"fitops/internal/common"
	"fitops/internal/models"
	"fitops/internal/repositories"

	"github.com/google/uuid"
)

const proofURLExpiry = 24 * time.Hour

// PaymentProofService covers the tenant side of payment review: submitting
// proofs and attaching evidence files. Review itself belongs to the
// lifecycle engine.
type PaymentProofService interface {
	Submit(ctx context.Context, req *SubmitProofRequest) (*models.PaymentProof, error)
	AttachFile(ctx context.Context, tenantID, proofID uuid.UUID, filename, contentType string, reader io.Reader, size int64) (string, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.PaymentProof, error)
	ListPending(ctx context.Context) ([]*models.PaymentProof, error)
	GetByID(ctx context.Context, tenantID, proofID uuid.UUID) (*models.PaymentProof, error)
}

type SubmitProofRequest struct {
	TenantID      uuid.UUID
	TransactionID string  `json:"transaction_id"`
	PaymentDate   string  `json:"payment_date"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Notes         *string `json:"notes"`
}

type paymentProofService struct {
	proofRepo repositories.PaymentProofRepository
	storage   StorageService
	now       func() time.Time
}

func NewPaymentProofService(proofRepo repositories.PaymentProofRepository, storage StorageService) PaymentProofService {
	return &paymentProofService{proofRepo: proofRepo, storage: storage, now: time.Now}
}

func (s *paymentProofService) Submit(ctx context.Context, req *SubmitProofRequest) (*models.PaymentProof, error) {
	if err := common.ValidateRequiredString(req.TransactionID, "transaction_id"); err != nil {
		return nil, err
	}
	if err := common.ValidatePositiveFloat(req.Amount, "amount", 10000000); err != nil {
		return nil, err
	}
	if err := common.ValidateDateFormat(req.PaymentDate, "payment_date"); err != nil {
		return nil, err
	}

	var paymentDate *time.Time
	if strings.TrimSpace(req.PaymentDate) != "" {
		parsed, _ := time.Parse("2006-01-02", req.PaymentDate)
		paymentDate = &parsed
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "INR"
	}

	proof := &models.PaymentProof{
		ID:            uuid.New(),
		TenantID:      req.TenantID,
		TransactionID: strings.TrimSpace(req.TransactionID),
		PaymentDate:   paymentDate,
		Amount:        req.Amount,
		Currency:      currency,
		Status:        models.ProofStatusPending,
		Notes:         req.Notes,
		CreatedAt:     s.now(),
	}
	if err := s.proofRepo.Create(ctx, proof); err != nil {
		return nil, fmt.Errorf("create payment proof: %w", err)
	}
	return proof, nil
}

// AttachFile uploads the evidence file and returns a presigned URL for it.
func (s *paymentProofService) AttachFile(ctx context.Context, tenantID, proofID uuid.UUID, filename, contentType string, reader io.Reader, size int64) (string, error) {
	proof, err := s.proofRepo.GetByID(ctx, tenantID, proofID)
	if err != nil {
		return "", fmt.Errorf("load payment proof: %w", err)
	}
	if proof.Status.Terminal() {
		return "", ErrProofAlreadyReviewed
	}

	objectName := fmt.Sprintf("%s/%s/%s", tenantID, proofID, filename)
	if err := s.storage.Upload(ctx, ProofBucket, objectName, contentType, reader, size); err != nil {
		return "", fmt.Errorf("upload proof file: %w", err)
	}
	// Persist the object name so the evidence stays reachable after the
	// presigned URL expires.
	if err := s.proofRepo.SetProofURL(ctx, tenantID, proofID, objectName); err != nil {
		return "", fmt.Errorf("store proof file reference: %w", err)
	}
	url, err := s.storage.GetPresignedURL(ProofBucket, objectName, proofURLExpiry)
	if err != nil {
		return "", fmt.Errorf("presign proof file: %w", err)
	}
	return url, nil
}

func (s *paymentProofService) ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.PaymentProof, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.proofRepo.ListByTenant(ctx, tenantID, limit, offset)
}

func (s *paymentProofService) ListPending(ctx context.Context) ([]*models.PaymentProof, error) {
	return s.proofRepo.ListPending(ctx)
}

func (s *paymentProofService) GetByID(ctx context.Context, tenantID, proofID uuid.UUID) (*models.PaymentProof, error) {
	return s.proofRepo.GetByID(ctx, tenantID, proofID)
}

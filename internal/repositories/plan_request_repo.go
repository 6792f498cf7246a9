package repositories

import (
	"context"
	"time"

	"fitops/internal/models"

	"github.com/google/uuid"
)

type PlanRequestRepository interface {
	Create(ctx context.Context, request *models.PlanRequest) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.PlanRequest, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.PlanRequest, error)
	// ListPending returns all pending requests across tenants, most recent
	// first. The reconciler relies on this ordering.
	ListPending(ctx context.Context) ([]*models.PlanRequest, error)
	MarkApproved(ctx context.Context, tenantID, id uuid.UUID, reviewedBy uuid.UUID, reviewedAt time.Time) error
	MarkRejected(ctx context.Context, tenantID, id uuid.UUID, reviewedBy uuid.UUID, reviewedAt time.Time, reason string) error
}

type planRequestRepo struct {
	db Database
}

func NewPlanRequestRepo(db Database) PlanRequestRepository {
	return &planRequestRepo{db: db}
}

const planRequestColumns = `id, tenant_id, plan_id, plan_name, amount, currency, billing_cycle, status, rejection_reason, requested_at, reviewed_by, reviewed_at`

func scanPlanRequest(row interface{ Scan(dest ...any) error }) (*models.PlanRequest, error) {
	request := &models.PlanRequest{}
	err := row.Scan(&request.ID, &request.TenantID, &request.PlanID, &request.PlanName, &request.Amount, &request.Currency, &request.BillingCycle, &request.Status, &request.RejectionReason, &request.RequestedAt, &request.ReviewedBy, &request.ReviewedAt)
	if err != nil {
		return nil, err
	}
	return request, nil
}

func (r *planRequestRepo) Create(ctx context.Context, request *models.PlanRequest) error {
	query := `
		INSERT INTO subscription_plan_requests (id, tenant_id, plan_id, plan_name, amount, currency, billing_cycle, status, requested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query, request.ID, request.TenantID, request.PlanID, request.PlanName, request.Amount, request.Currency, request.BillingCycle, request.Status, request.RequestedAt)
	return err
}

func (r *planRequestRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.PlanRequest, error) {
	query := `SELECT ` + planRequestColumns + ` FROM subscription_plan_requests WHERE tenant_id = $1 AND id = $2`
	return scanPlanRequest(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *planRequestRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.PlanRequest, error) {
	query := `
		SELECT ` + planRequestColumns + `
		FROM subscription_plan_requests
		WHERE tenant_id = $1
		ORDER BY requested_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*models.PlanRequest
	for rows.Next() {
		request, err := scanPlanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

func (r *planRequestRepo) ListPending(ctx context.Context) ([]*models.PlanRequest, error) {
	query := `
		SELECT ` + planRequestColumns + `
		FROM subscription_plan_requests
		WHERE status = $1
		ORDER BY requested_at DESC
	`
	rows, err := r.db.Query(ctx, query, models.RequestStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*models.PlanRequest
	for rows.Next() {
		request, err := scanPlanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

func (r *planRequestRepo) MarkApproved(ctx context.Context, tenantID, id uuid.UUID, reviewedBy uuid.UUID, reviewedAt time.Time) error {
	query := `
		UPDATE subscription_plan_requests
		SET status = $1, reviewed_by = $2, reviewed_at = $3
		WHERE tenant_id = $4 AND id = $5
	`
	_, err := r.db.Exec(ctx, query, models.RequestStatusApproved, reviewedBy, reviewedAt, tenantID, id)
	return err
}

func (r *planRequestRepo) MarkRejected(ctx context.Context, tenantID, id uuid.UUID, reviewedBy uuid.UUID, reviewedAt time.Time, reason string) error {
	query := `
		UPDATE subscription_plan_requests
		SET status = $1, reviewed_by = $2, reviewed_at = $3, rejection_reason = $4
		WHERE tenant_id = $5 AND id = $6
	`
	_, err := r.db.Exec(ctx, query, models.RequestStatusRejected, reviewedBy, reviewedAt, reason, tenantID, id)
	return err
}

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fitops/internal/common"
	"fitops/internal/models"
	"fitops/internal/repositories"

	"github.com/google/uuid"
)

// PlanRequestService surfaces plan-change requests. It never activates a
// tenant itself; approval is delegated to the lifecycle engine's
// ApplyPlanFromRequest.
type PlanRequestService interface {
	Submit(ctx context.Context, req *SubmitPlanRequest) (*models.PlanRequest, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.PlanRequest, error)
	// PendingByTenant returns the one actionable pending request per
	// tenant: the most recently requested.
	PendingByTenant(ctx context.Context) (map[uuid.UUID]*models.PlanRequest, error)
	Reject(ctx context.Context, tenantID, requestID, reviewerID uuid.UUID, reason string) error
}

type SubmitPlanRequest struct {
	TenantID     uuid.UUID
	PlanID       string  `json:"plan_id"`
	PlanName     string  `json:"plan_name"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	BillingCycle string  `json:"billing_cycle"`
}

type planRequestService struct {
	planRequestRepo repositories.PlanRequestRepository
	now             func() time.Time
}

func NewPlanRequestService(planRequestRepo repositories.PlanRequestRepository) PlanRequestService {
	return &planRequestService{planRequestRepo: planRequestRepo, now: time.Now}
}

func (s *planRequestService) Submit(ctx context.Context, req *SubmitPlanRequest) (*models.PlanRequest, error) {
	if err := common.ValidateRequiredString(req.PlanName, "plan_name"); err != nil {
		return nil, err
	}
	if err := common.ValidatePositiveFloat(req.Amount, "amount", 10000000); err != nil {
		return nil, err
	}
	cycle, err := models.ParseBillingCycle(req.BillingCycle)
	if err != nil {
		return nil, err
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		return nil, fmt.Errorf("currency is required")
	}

	request := &models.PlanRequest{
		ID:           uuid.New(),
		TenantID:     req.TenantID,
		PlanID:       req.PlanID,
		PlanName:     req.PlanName,
		Amount:       req.Amount,
		Currency:     currency,
		BillingCycle: cycle,
		Status:       models.RequestStatusPending,
		RequestedAt:  s.now(),
	}
	if err := s.planRequestRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("create plan request: %w", err)
	}
	return request, nil
}

func (s *planRequestService) ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.PlanRequest, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.planRequestRepo.ListByTenant(ctx, tenantID, limit, offset)
}

func (s *planRequestService) PendingByTenant(ctx context.Context) (map[uuid.UUID]*models.PlanRequest, error) {
	pending, err := s.planRequestRepo.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	return latestPendingByTenant(pending), nil
}

func (s *planRequestService) Reject(ctx context.Context, tenantID, requestID, reviewerID uuid.UUID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrRejectionReasonRequired
	}
	request, err := s.planRequestRepo.GetByID(ctx, tenantID, requestID)
	if err != nil {
		return fmt.Errorf("load plan request: %w", err)
	}
	if request.Status != models.RequestStatusPending {
		return ErrRequestAlreadyResolved
	}
	return s.planRequestRepo.MarkRejected(ctx, tenantID, requestID, reviewerID, s.now(), reason)
}

// latestPendingByTenant keys pending requests by tenant. Input rows are
// ordered requested_at descending, so the first row seen per tenant is the
// most recent; older pending requests stay pending but are not surfaced.
func latestPendingByTenant(requests []*models.PlanRequest) map[uuid.UUID]*models.PlanRequest {
	byTenant := make(map[uuid.UUID]*models.PlanRequest, len(requests))
	for _, request := range requests {
		if _, seen := byTenant[request.TenantID]; !seen {
			byTenant[request.TenantID] = request
		}
	}
	return byTenant
}

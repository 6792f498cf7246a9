package services

import (
	"context"
	"fmt"
	"time"

	"fitops/internal/common"
	"fitops/internal/models"
	"fitops/internal/repositories"

	"github.com/google/uuid"
)

type CallLogService interface {
	Create(ctx context.Context, req *CreateCallLogRequest) (*models.CallLog, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.CallLog, error)
	Update(ctx context.Context, callLog *models.CallLog) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.CallLog, error)
	ListDue(ctx context.Context, tenantID uuid.UUID) ([]*models.CallLog, error)
}

type CreateCallLogRequest struct {
	TenantID     uuid.UUID
	CustomerName string  `json:"customer_name" validate:"required"`
	Phone        string  `json:"phone" validate:"required"`
	Outcome      *string `json:"outcome"`
	FollowUpAt   *string `json:"follow_up_at"`
}

type callLogService struct {
	callLogRepo repositories.CallLogRepository
}

func NewCallLogService(callLogRepo repositories.CallLogRepository) CallLogService {
	return &callLogService{callLogRepo: callLogRepo}
}

func (s *callLogService) Create(ctx context.Context, req *CreateCallLogRequest) (*models.CallLog, error) {
	if err := common.ValidateRequiredString(req.CustomerName, "customer_name"); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(req.Phone, "phone"); err != nil {
		return nil, err
	}

	var followUpAt *time.Time
	if req.FollowUpAt != nil && *req.FollowUpAt != "" {
		parsed, err := time.Parse(time.RFC3339, *req.FollowUpAt)
		if err != nil {
			return nil, fmt.Errorf("follow_up_at must be RFC3339: %v", err)
		}
		followUpAt = &parsed
	}

	callLog := &models.CallLog{
		ID:           uuid.New(),
		TenantID:     req.TenantID,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Outcome:      req.Outcome,
		FollowUpAt:   followUpAt,
	}
	if err := s.callLogRepo.Create(ctx, callLog); err != nil {
		return nil, fmt.Errorf("create call log: %w", err)
	}
	return callLog, nil
}

func (s *callLogService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.CallLog, error) {
	return s.callLogRepo.GetByID(ctx, tenantID, id)
}

func (s *callLogService) Update(ctx context.Context, callLog *models.CallLog) error {
	return s.callLogRepo.Update(ctx, callLog)
}

func (s *callLogService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.callLogRepo.Delete(ctx, tenantID, id)
}

func (s *callLogService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.CallLog, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.callLogRepo.List(ctx, tenantID, limit, offset)
}

func (s *callLogService) ListDue(ctx context.Context, tenantID uuid.UUID) ([]*models.CallLog, error) {
	return s.callLogRepo.ListDue(ctx, tenantID)
}

package services

import (
	"context"
	"fmt"

	"fitops/internal/common"
	"fitops/internal/models"
	"fitops/internal/repositories"

	"github.com/google/uuid"
)

type RequirementService interface {
	Create(ctx context.Context, req *CreateRequirementRequest) (*models.Requirement, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Requirement, error)
	Update(ctx context.Context, requirement *models.Requirement) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Requirement, error)
}

type CreateRequirementRequest struct {
	TenantID uuid.UUID
	JobID    *uuid.UUID `json:"job_id"`
	PartName string     `json:"part_name" validate:"required"`
	Quantity int        `json:"quantity"`
	Notes    *string    `json:"notes"`
}

type requirementService struct {
	requirementRepo repositories.RequirementRepository
}

func NewRequirementService(requirementRepo repositories.RequirementRepository) RequirementService {
	return &requirementService{requirementRepo: requirementRepo}
}

func (s *requirementService) Create(ctx context.Context, req *CreateRequirementRequest) (*models.Requirement, error) {
	if err := common.ValidateRequiredString(req.PartName, "part_name"); err != nil {
		return nil, err
	}
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	requirement := &models.Requirement{
		ID:       uuid.New(),
		TenantID: req.TenantID,
		JobID:    req.JobID,
		PartName: req.PartName,
		Quantity: quantity,
		Status:   models.RequirementStatusOpen,
		Notes:    req.Notes,
	}
	if err := s.requirementRepo.Create(ctx, requirement); err != nil {
		return nil, fmt.Errorf("create requirement: %w", err)
	}
	return requirement, nil
}

func (s *requirementService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Requirement, error) {
	return s.requirementRepo.GetByID(ctx, tenantID, id)
}

func (s *requirementService) Update(ctx context.Context, requirement *models.Requirement) error {
	if !requirement.Status.Valid() {
		return fmt.Errorf("invalid requirement status: %s", requirement.Status)
	}
	return s.requirementRepo.Update(ctx, requirement)
}

func (s *requirementService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.requirementRepo.Delete(ctx, tenantID, id)
}

func (s *requirementService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Requirement, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.requirementRepo.List(ctx, tenantID, limit, offset)
}

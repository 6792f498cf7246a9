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

type ServiceJobService interface {
	Create(ctx context.Context, req *CreateJobRequest) (*models.ServiceJob, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.ServiceJob, error)
	Update(ctx context.Context, job *models.ServiceJob) error
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status models.JobStatus) (*models.ServiceJob, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.ServiceJob, error)
	ListByVehicle(ctx context.Context, tenantID, vehicleID uuid.UUID) ([]*models.ServiceJob, error)
}

type CreateJobRequest struct {
	TenantID   uuid.UUID
	VehicleID  uuid.UUID  `json:"vehicle_id" validate:"required"`
	Title      string     `json:"title" validate:"required"`
	Accessory  string     `json:"accessory" validate:"required"`
	AssignedTo *uuid.UUID `json:"assigned_to"`
	Notes      *string    `json:"notes"`
}

type serviceJobService struct {
	jobRepo     repositories.ServiceJobRepository
	vehicleRepo repositories.VehicleRepository
	notifier    NotificationService
	now         func() time.Time
}

func NewServiceJobService(jobRepo repositories.ServiceJobRepository, vehicleRepo repositories.VehicleRepository, notifier NotificationService) ServiceJobService {
	return &serviceJobService{jobRepo: jobRepo, vehicleRepo: vehicleRepo, notifier: notifier, now: time.Now}
}

func (s *serviceJobService) Create(ctx context.Context, req *CreateJobRequest) (*models.ServiceJob, error) {
	if err := common.ValidateRequiredString(req.Title, "title"); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(req.Accessory, "accessory"); err != nil {
		return nil, err
	}
	// The vehicle must belong to the same tenant.
	if _, err := s.vehicleRepo.GetByID(ctx, req.TenantID, req.VehicleID); err != nil {
		return nil, fmt.Errorf("load vehicle: %w", err)
	}

	job := &models.ServiceJob{
		ID:         uuid.New(),
		TenantID:   req.TenantID,
		VehicleID:  req.VehicleID,
		Title:      req.Title,
		Accessory:  req.Accessory,
		Status:     models.JobStatusReceived,
		AssignedTo: req.AssignedTo,
		Notes:      req.Notes,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create service job: %w", err)
	}
	return job, nil
}

func (s *serviceJobService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.ServiceJob, error) {
	return s.jobRepo.GetByID(ctx, tenantID, id)
}

func (s *serviceJobService) Update(ctx context.Context, job *models.ServiceJob) error {
	return s.jobRepo.Update(ctx, job)
}

// UpdateStatus moves a job along the workflow. Invalid transitions are
// rejected before any write.
func (s *serviceJobService) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status models.JobStatus) (*models.ServiceJob, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid job status: %s", status)
	}
	job, err := s.jobRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !job.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("cannot move job from %s to %s", job.Status, status)
	}

	job.Status = status
	if status == models.JobStatusDelivered {
		now := s.now()
		job.CompletedAt = &now
	}
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("update job status: %w", err)
	}

	if status == models.JobStatusReady || status == models.JobStatusDelivered {
		s.notifyStatus(ctx, job, status)
	}
	return job, nil
}

func (s *serviceJobService) notifyStatus(ctx context.Context, job *models.ServiceJob, status models.JobStatus) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, job.TenantID, job.VehicleID)
	if err != nil {
		return
	}
	event := EventJobReady
	message := fmt.Sprintf("Hi %s, the %s work on your %s (%s) is ready for pickup.", vehicle.OwnerName, job.Accessory, vehicle.Model, vehicle.PlateNumber)
	if status == models.JobStatusDelivered {
		event = EventJobDelivered
		message = fmt.Sprintf("Hi %s, the %s work on your %s (%s) has been delivered.", vehicle.OwnerName, job.Accessory, vehicle.Model, vehicle.PlateNumber)
	}
	s.notifier.NotifyVehicleEvent(ctx, event, vehicle.OwnerPhone, message)
}

func (s *serviceJobService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.jobRepo.Delete(ctx, tenantID, id)
}

func (s *serviceJobService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.ServiceJob, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.jobRepo.List(ctx, tenantID, limit, offset)
}

func (s *serviceJobService) ListByVehicle(ctx context.Context, tenantID, vehicleID uuid.UUID) ([]*models.ServiceJob, error) {
	return s.jobRepo.ListByVehicle(ctx, tenantID, vehicleID)
}

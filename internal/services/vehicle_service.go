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

type VehicleService interface {
	Create(ctx context.Context, req *CreateVehicleRequest) (*models.Vehicle, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Vehicle, error)
	Update(ctx context.Context, vehicle *models.Vehicle) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Vehicle, error)
	Search(ctx context.Context, tenantID uuid.UUID, plate string, limit, offset int) ([]*models.Vehicle, error)
	MarkDelivered(ctx context.Context, tenantID, id uuid.UUID) (*models.Vehicle, error)
}

type CreateVehicleRequest struct {
	TenantID    uuid.UUID
	PlateNumber string  `json:"plate_number" validate:"required"`
	Make        string  `json:"make"`
	Model       string  `json:"model"`
	OwnerName   string  `json:"owner_name" validate:"required"`
	OwnerPhone  string  `json:"owner_phone" validate:"required"`
	IntakeNotes *string `json:"intake_notes"`
}

type vehicleService struct {
	vehicleRepo repositories.VehicleRepository
	notifier    NotificationService
	now         func() time.Time
}

func NewVehicleService(vehicleRepo repositories.VehicleRepository, notifier NotificationService) VehicleService {
	return &vehicleService{vehicleRepo: vehicleRepo, notifier: notifier, now: time.Now}
}

func (s *vehicleService) Create(ctx context.Context, req *CreateVehicleRequest) (*models.Vehicle, error) {
	if err := common.ValidateRequiredString(req.PlateNumber, "plate_number"); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(req.OwnerName, "owner_name"); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(req.OwnerPhone, "owner_phone"); err != nil {
		return nil, err
	}

	vehicle := &models.Vehicle{
		ID:          uuid.New(),
		TenantID:    req.TenantID,
		PlateNumber: strings.ToUpper(strings.TrimSpace(req.PlateNumber)),
		Make:        strings.TrimSpace(req.Make),
		Model:       strings.TrimSpace(req.Model),
		OwnerName:   strings.TrimSpace(req.OwnerName),
		OwnerPhone:  strings.TrimSpace(req.OwnerPhone),
		IntakeNotes: req.IntakeNotes,
		ReceivedAt:  s.now(),
	}
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}

	s.notifier.NotifyVehicleEvent(ctx, EventVehicleReceived, vehicle.OwnerPhone,
		fmt.Sprintf("Hi %s, your %s %s (%s) has been received for accessory work.", vehicle.OwnerName, vehicle.Make, vehicle.Model, vehicle.PlateNumber))
	return vehicle, nil
}

func (s *vehicleService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, tenantID, id)
}

func (s *vehicleService) Update(ctx context.Context, vehicle *models.Vehicle) error {
	return s.vehicleRepo.Update(ctx, vehicle)
}

func (s *vehicleService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.vehicleRepo.Delete(ctx, tenantID, id)
}

func (s *vehicleService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Vehicle, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.vehicleRepo.List(ctx, tenantID, limit, offset)
}

func (s *vehicleService) Search(ctx context.Context, tenantID uuid.UUID, plate string, limit, offset int) ([]*models.Vehicle, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.vehicleRepo.Search(ctx, tenantID, strings.TrimSpace(plate), limit, offset)
}

func (s *vehicleService) MarkDelivered(ctx context.Context, tenantID, id uuid.UUID) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	vehicle.DeliveredAt = &now
	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("mark vehicle delivered: %w", err)
	}

	s.notifier.NotifyVehicleEvent(ctx, EventJobDelivered, vehicle.OwnerPhone,
		fmt.Sprintf("Hi %s, your %s (%s) has been delivered. Thank you!", vehicle.OwnerName, vehicle.Model, vehicle.PlateNumber))
	return vehicle, nil
}

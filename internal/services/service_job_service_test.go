package services

import (
	"context"
	"testing"

	"fitops/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockServiceJobRepository struct {
	mock.Mock
}

func (m *MockServiceJobRepository) Create(ctx context.Context, job *models.ServiceJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockServiceJobRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.ServiceJob, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceJob), args.Error(1)
}

func (m *MockServiceJobRepository) Update(ctx context.Context, job *models.ServiceJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockServiceJobRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockServiceJobRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.ServiceJob, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	return args.Get(0).([]*models.ServiceJob), args.Error(1)
}

func (m *MockServiceJobRepository) ListByVehicle(ctx context.Context, tenantID, vehicleID uuid.UUID) ([]*models.ServiceJob, error) {
	args := m.Called(ctx, tenantID, vehicleID)
	return args.Get(0).([]*models.ServiceJob), args.Error(1)
}

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Vehicle, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Update(ctx context.Context, vehicle *models.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockVehicleRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Vehicle, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Search(ctx context.Context, tenantID uuid.UUID, plate string, limit, offset int) ([]*models.Vehicle, error) {
	args := m.Called(ctx, tenantID, plate, limit, offset)
	return args.Get(0).([]*models.Vehicle), args.Error(1)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) NotifyVehicleEvent(ctx context.Context, event VehicleEvent, phone, message string) {
	m.Called(ctx, event, phone, message)
}

type ServiceJobServiceTestSuite struct {
	suite.Suite
	jobRepo     *MockServiceJobRepository
	vehicleRepo *MockVehicleRepository
	notifier    *MockNotificationService
	service     ServiceJobService
	ctx         context.Context
	tenantID    uuid.UUID
	vehicleID   uuid.UUID
	jobID       uuid.UUID
}

func (suite *ServiceJobServiceTestSuite) SetupTest() {
	suite.jobRepo = &MockServiceJobRepository{}
	suite.vehicleRepo = &MockVehicleRepository{}
	suite.notifier = &MockNotificationService{}
	suite.jobRepo.Test(suite.T())
	suite.vehicleRepo.Test(suite.T())
	suite.notifier.Test(suite.T())

	suite.service = NewServiceJobService(suite.jobRepo, suite.vehicleRepo, suite.notifier)
	suite.ctx = context.Background()
	suite.tenantID = uuid.New()
	suite.vehicleID = uuid.New()
	suite.jobID = uuid.New()
}

func (suite *ServiceJobServiceTestSuite) TearDownTest() {
	suite.jobRepo.AssertExpectations(suite.T())
	suite.vehicleRepo.AssertExpectations(suite.T())
	suite.notifier.AssertExpectations(suite.T())
}

func TestServiceJobServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceJobServiceTestSuite))
}

func (suite *ServiceJobServiceTestSuite) vehicle() *models.Vehicle {
	return &models.Vehicle{
		ID:          suite.vehicleID,
		TenantID:    suite.tenantID,
		PlateNumber: "KA01AB1234",
		Model:       "Thar",
		OwnerName:   "Priya",
		OwnerPhone:  "+919800000000",
	}
}

func (suite *ServiceJobServiceTestSuite) TestCreate_ChecksVehicleOwnership() {
	suite.vehicleRepo.On("GetByID", suite.ctx, suite.tenantID, suite.vehicleID).Return(nil, assert.AnError)

	job, err := suite.service.Create(suite.ctx, &CreateJobRequest{
		TenantID:  suite.tenantID,
		VehicleID: suite.vehicleID,
		Title:     "Stereo install",
		Accessory: "stereo",
	})
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), job)
}

func (suite *ServiceJobServiceTestSuite) TestUpdateStatus_ValidStep() {
	job := &models.ServiceJob{
		ID:        suite.jobID,
		TenantID:  suite.tenantID,
		VehicleID: suite.vehicleID,
		Status:    models.JobStatusReceived,
	}

	suite.jobRepo.On("GetByID", suite.ctx, suite.tenantID, suite.jobID).Return(job, nil)
	suite.jobRepo.On("Update", suite.ctx, job).Return(nil)

	updated, err := suite.service.UpdateStatus(suite.ctx, suite.tenantID, suite.jobID, models.JobStatusInProgress)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.JobStatusInProgress, updated.Status)
}

func (suite *ServiceJobServiceTestSuite) TestUpdateStatus_RejectsSkippedStep() {
	job := &models.ServiceJob{
		ID:       suite.jobID,
		TenantID: suite.tenantID,
		Status:   models.JobStatusReceived,
	}

	suite.jobRepo.On("GetByID", suite.ctx, suite.tenantID, suite.jobID).Return(job, nil)

	_, err := suite.service.UpdateStatus(suite.ctx, suite.tenantID, suite.jobID, models.JobStatusDelivered)
	assert.Error(suite.T(), err)
	suite.jobRepo.AssertNotCalled(suite.T(), "Update")
}

func (suite *ServiceJobServiceTestSuite) TestUpdateStatus_ReadyNotifiesOwner() {
	job := &models.ServiceJob{
		ID:        suite.jobID,
		TenantID:  suite.tenantID,
		VehicleID: suite.vehicleID,
		Accessory: "seat covers",
		Status:    models.JobStatusInProgress,
	}

	suite.jobRepo.On("GetByID", suite.ctx, suite.tenantID, suite.jobID).Return(job, nil)
	suite.jobRepo.On("Update", suite.ctx, job).Return(nil)
	suite.vehicleRepo.On("GetByID", suite.ctx, suite.tenantID, suite.vehicleID).Return(suite.vehicle(), nil)
	suite.notifier.On("NotifyVehicleEvent", suite.ctx, EventJobReady, "+919800000000", mock.AnythingOfType("string")).Return()

	updated, err := suite.service.UpdateStatus(suite.ctx, suite.tenantID, suite.jobID, models.JobStatusReady)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.JobStatusReady, updated.Status)
}

func (suite *ServiceJobServiceTestSuite) TestUpdateStatus_DeliveredStampsCompletion() {
	job := &models.ServiceJob{
		ID:        suite.jobID,
		TenantID:  suite.tenantID,
		VehicleID: suite.vehicleID,
		Accessory: "alloy wheels",
		Status:    models.JobStatusReady,
	}

	suite.jobRepo.On("GetByID", suite.ctx, suite.tenantID, suite.jobID).Return(job, nil)
	suite.jobRepo.On("Update", suite.ctx, job).Return(nil)
	suite.vehicleRepo.On("GetByID", suite.ctx, suite.tenantID, suite.vehicleID).Return(suite.vehicle(), nil)
	suite.notifier.On("NotifyVehicleEvent", suite.ctx, EventJobDelivered, "+919800000000", mock.AnythingOfType("string")).Return()

	updated, err := suite.service.UpdateStatus(suite.ctx, suite.tenantID, suite.jobID, models.JobStatusDelivered)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), updated.CompletedAt)
}

package services

import (
	"context"
	"testing"
	"time"

	"fitops/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockPlanRequestRepository struct {
	mock.Mock
}

func (m *MockPlanRequestRepository) Create(ctx context.Context, request *models.PlanRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockPlanRequestRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.PlanRequest, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlanRequest), args.Error(1)
}

func (m *MockPlanRequestRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.PlanRequest, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	return args.Get(0).([]*models.PlanRequest), args.Error(1)
}

func (m *MockPlanRequestRepository) ListPending(ctx context.Context) ([]*models.PlanRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.PlanRequest), args.Error(1)
}

func (m *MockPlanRequestRepository) MarkApproved(ctx context.Context, tenantID, id uuid.UUID, reviewedBy uuid.UUID, reviewedAt time.Time) error {
	args := m.Called(ctx, tenantID, id, reviewedBy, reviewedAt)
	return args.Error(0)
}

func (m *MockPlanRequestRepository) MarkRejected(ctx context.Context, tenantID, id uuid.UUID, reviewedBy uuid.UUID, reviewedAt time.Time, reason string) error {
	args := m.Called(ctx, tenantID, id, reviewedBy, reviewedAt, reason)
	return args.Error(0)
}

type PlanRequestServiceTestSuite struct {
	suite.Suite
	mockRepo *MockPlanRequestRepository
	service  PlanRequestService
}

func (suite *PlanRequestServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockPlanRequestRepository{}
	suite.mockRepo.Test(suite.T())
	suite.service = NewPlanRequestService(suite.mockRepo)
}

func (suite *PlanRequestServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestPlanRequestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PlanRequestServiceTestSuite))
}

func (suite *PlanRequestServiceTestSuite) TestSubmit_Success() {
	ctx := context.Background()
	tenantID := uuid.New()

	suite.mockRepo.On("Create", ctx, mock.AnythingOfType("*models.PlanRequest")).Return(nil).Run(func(args mock.Arguments) {
		request := args.Get(1).(*models.PlanRequest)
		assert.Equal(suite.T(), tenantID, request.TenantID)
		assert.Equal(suite.T(), models.RequestStatusPending, request.Status)
		assert.Equal(suite.T(), models.BillingCycleQuarterly, request.BillingCycle)
		assert.Equal(suite.T(), "INR", request.Currency)
	})

	request, err := suite.service.Submit(ctx, &SubmitPlanRequest{
		TenantID:     tenantID,
		PlanID:       "plan-quarterly",
		PlanName:     "Quarterly",
		Amount:       3500,
		Currency:     "inr",
		BillingCycle: "quarterly",
	})
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), request)
}

func (suite *PlanRequestServiceTestSuite) TestSubmit_RejectsUnknownCycle() {
	ctx := context.Background()

	request, err := suite.service.Submit(ctx, &SubmitPlanRequest{
		TenantID:     uuid.New(),
		PlanName:     "Weekly",
		Amount:       100,
		Currency:     "INR",
		BillingCycle: "weekly",
	})
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), request)
}

func (suite *PlanRequestServiceTestSuite) TestPendingByTenant_MostRecentWins() {
	ctx := context.Background()
	tenantA := uuid.New()
	tenantB := uuid.New()
	newest := &models.PlanRequest{ID: uuid.New(), TenantID: tenantA, PlanName: "Annual"}
	older := &models.PlanRequest{ID: uuid.New(), TenantID: tenantA, PlanName: "Monthly"}
	other := &models.PlanRequest{ID: uuid.New(), TenantID: tenantB, PlanName: "Quarterly"}

	// Repository returns rows ordered requested_at DESC.
	suite.mockRepo.On("ListPending", ctx).Return([]*models.PlanRequest{newest, other, older}, nil)

	pending, err := suite.service.PendingByTenant(ctx)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), pending, 2)
	assert.Equal(suite.T(), newest, pending[tenantA])
	assert.Equal(suite.T(), other, pending[tenantB])
}

func (suite *PlanRequestServiceTestSuite) TestReject_ReasonRequired() {
	ctx := context.Background()

	err := suite.service.Reject(ctx, uuid.New(), uuid.New(), uuid.New(), "")
	assert.ErrorIs(suite.T(), err, ErrRejectionReasonRequired)
}

func (suite *PlanRequestServiceTestSuite) TestReject_AlreadyResolved() {
	ctx := context.Background()
	tenantID := uuid.New()
	requestID := uuid.New()

	suite.mockRepo.On("GetByID", ctx, tenantID, requestID).Return(&models.PlanRequest{
		ID:       requestID,
		TenantID: tenantID,
		Status:   models.RequestStatusApproved,
	}, nil)

	err := suite.service.Reject(ctx, tenantID, requestID, uuid.New(), "no longer offered")
	assert.ErrorIs(suite.T(), err, ErrRequestAlreadyResolved)
}

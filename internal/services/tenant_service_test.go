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

type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) GetBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Update(ctx context.Context, tenant *models.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) UpdateActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockTenantRepository) SetActivated(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTenantRepository) List(ctx context.Context, limit, offset int) ([]*models.Tenant, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]*models.Tenant), args.Error(1)
}

func (m *MockTenantRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type TenantServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockTenantRepository
	mockCache *MockCacheService
	service   *tenantService
	now       time.Time
}

func (suite *TenantServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockTenantRepository{}
	suite.mockCache = &MockCacheService{}
	suite.mockRepo.Test(suite.T())
	suite.mockCache.Test(suite.T())

	svc := NewTenantService(suite.mockRepo, suite.mockCache, 24)
	suite.service = svc.(*tenantService)
	suite.now = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	suite.service.now = func() time.Time { return suite.now }
}

func (suite *TenantServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func TestTenantServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TenantServiceTestSuite))
}

func (suite *TenantServiceTestSuite) TestCreate_StartsTrialAtCreation() {
	ctx := context.Background()
	req := &CreateTenantRequest{
		Name:          "Speedy Fitments",
		WorkspaceSlug: "speedy-fitments",
	}

	suite.mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Tenant")).Return(nil)

	tenant, err := suite.service.Create(ctx, req)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), tenant.IsActive)
	assert.Equal(suite.T(), models.TenantStatusTrial, tenant.SubscriptionStatus)
	assert.NotNil(suite.T(), tenant.TrialEndsAt)
	assert.Equal(suite.T(), time.Date(2024, 1, 25, 9, 0, 0, 0, time.UTC), *tenant.TrialEndsAt)
}

func (suite *TenantServiceTestSuite) TestCreate_FreeTenantHasNoTrial() {
	ctx := context.Background()
	req := &CreateTenantRequest{
		Name:          "House Shop",
		WorkspaceSlug: "house-shop",
		IsFree:        true,
	}

	suite.mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Tenant")).Return(nil)

	tenant, err := suite.service.Create(ctx, req)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.TenantStatusActive, tenant.SubscriptionStatus)
	assert.Nil(suite.T(), tenant.TrialEndsAt)
}

func (suite *TenantServiceTestSuite) TestCreate_RejectsBadSlug() {
	ctx := context.Background()

	for _, slug := range []string{"Has Spaces", "UPPER", "trailing-", "-leading", "dots.not.ok"} {
		tenant, err := suite.service.Create(ctx, &CreateTenantRequest{Name: "Shop", WorkspaceSlug: slug})
		assert.Error(suite.T(), err, "slug %q should be rejected", slug)
		assert.Nil(suite.T(), tenant)
	}
}

func (suite *TenantServiceTestSuite) TestCreate_NormalizesSlug() {
	ctx := context.Background()

	suite.mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Tenant")).Return(nil)

	tenant, err := suite.service.Create(ctx, &CreateTenantRequest{Name: "Shop", WorkspaceSlug: "  my-shop  "})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "my-shop", tenant.WorkspaceSlug)
}

func (suite *TenantServiceTestSuite) TestGetBySlug_CacheHit() {
	ctx := context.Background()
	cached := &models.Tenant{ID: uuid.New(), WorkspaceSlug: "cached-shop"}

	suite.mockCache.On("GetTenantBySlug", ctx, "cached-shop").Return(cached, nil)

	tenant, err := suite.service.GetBySlug(ctx, "cached-shop")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), cached, tenant)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetBySlug")
}

func (suite *TenantServiceTestSuite) TestGetBySlug_CacheMissFallsThrough() {
	ctx := context.Background()
	stored := &models.Tenant{ID: uuid.New(), WorkspaceSlug: "fresh-shop"}

	suite.mockCache.On("GetTenantBySlug", ctx, "fresh-shop").Return(nil, assert.AnError)
	suite.mockRepo.On("GetBySlug", ctx, "fresh-shop").Return(stored, nil)
	suite.mockCache.On("SetTenantBySlug", ctx, stored, tenantSlugCacheTTL).Return(nil)

	tenant, err := suite.service.GetBySlug(ctx, "fresh-shop")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), stored, tenant)
}

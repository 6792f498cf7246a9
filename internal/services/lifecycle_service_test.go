package services

import (
	"context"
	"testing"
	"time"

	"fitops/internal/billing"
	"fitops/internal/models"
	"fitops/internal/repositories"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockCacheService mocks caching.CacheService.
type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tenant), args.Error(1)
}

func (m *MockCacheService) SetTenantBySlug(ctx context.Context, tenant *models.Tenant, ttl time.Duration) error {
	args := m.Called(ctx, tenant, ttl)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateTenant(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

func (m *MockCacheService) GetJSON(ctx context.Context, key string, dest any) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *MockCacheService) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type LifecycleServiceTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	cache      *MockCacheService
	service    *lifecycleService
	ctx        context.Context
	tenantID   uuid.UUID
	proofID    uuid.UUID
	requestID  uuid.UUID
	reviewerID uuid.UUID
	now        time.Time
}

func (suite *LifecycleServiceTestSuite) SetupTest() {
	mockPool, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mockPool
	suite.cache = &MockCacheService{}
	suite.cache.Test(suite.T())

	svc := NewLifecycleService(
		mockPool,
		repositories.NewTenantRepo(mockPool),
		repositories.NewSubscriptionRepo(mockPool),
		repositories.NewPaymentProofRepo(mockPool),
		repositories.NewPlanRequestRepo(mockPool),
		suite.cache,
		nil,
	)
	suite.service = svc.(*lifecycleService)
	suite.now = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	suite.service.now = func() time.Time { return suite.now }

	suite.ctx = context.Background()
	suite.tenantID = uuid.New()
	suite.proofID = uuid.New()
	suite.requestID = uuid.New()
	suite.reviewerID = uuid.New()
}

func (suite *LifecycleServiceTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.cache.AssertExpectations(suite.T())
	suite.mock.Close()
}

func TestLifecycleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LifecycleServiceTestSuite))
}

func (suite *LifecycleServiceTestSuite) proofRows(status models.ProofStatus, paymentDate *time.Time) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "tenant_id", "transaction_id", "payment_date", "amount", "currency",
		"status", "notes", "payment_proof_url", "reviewed_by", "reviewed_at", "created_at",
	}).AddRow(
		suite.proofID, suite.tenantID, "TXN-1001", paymentDate, 12000.0, "INR",
		status, (*string)(nil), (*string)(nil), (*uuid.UUID)(nil), (*time.Time)(nil), suite.now,
	)
}

func (suite *LifecycleServiceTestSuite) expectActivation() {
	// The subscription write must be an upsert keyed on tenant_id so a
	// repeated activation updates the existing row instead of inserting a
	// second one.
	suite.mock.ExpectExec(`INSERT INTO subscriptions .+ ON CONFLICT \(tenant_id\) DO UPDATE`).
		WithArgs(pgxmock.AnyArg(), suite.tenantID, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`UPDATE tenants`).
		WithArgs(models.TenantStatusActive, suite.tenantID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
}

func (suite *LifecycleServiceTestSuite) TestApprovePayment_AnchorsOnPaymentDate() {
	paymentDate := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT .+ FROM tenant_payment_proofs WHERE tenant_id = \$1 AND id = \$2 FOR UPDATE`).
		WithArgs(suite.tenantID, suite.proofID).
		WillReturnRows(suite.proofRows(models.ProofStatusPending, &paymentDate))
	suite.mock.ExpectExec(`UPDATE tenant_payment_proofs`).
		WithArgs(models.ProofStatusApproved, suite.reviewerID, suite.now, pgxmock.AnyArg(), suite.tenantID, suite.proofID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.expectActivation()
	suite.mock.ExpectCommit()

	suite.cache.On("Delete", suite.ctx, "admin:subscription_overview").Return(nil)

	subscription, err := suite.service.ApprovePayment(suite.ctx, suite.tenantID, suite.proofID, suite.reviewerID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), billing.DefaultPlan.Name, subscription.PlanName)
	assert.Equal(suite.T(), billing.DefaultPlan.Amount, subscription.Amount)
	assert.Equal(suite.T(), models.SubscriptionStatusActive, subscription.Status)
	assert.Equal(suite.T(), time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), subscription.BillingPeriodStart)
	assert.Equal(suite.T(), time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC), subscription.BillingPeriodEnd)
}

func (suite *LifecycleServiceTestSuite) TestApprovePayment_AlreadyReviewed() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT .+ FROM tenant_payment_proofs WHERE tenant_id = \$1 AND id = \$2 FOR UPDATE`).
		WithArgs(suite.tenantID, suite.proofID).
		WillReturnRows(suite.proofRows(models.ProofStatusApproved, nil))
	suite.mock.ExpectRollback()

	subscription, err := suite.service.ApprovePayment(suite.ctx, suite.tenantID, suite.proofID, suite.reviewerID)
	assert.ErrorIs(suite.T(), err, ErrProofAlreadyReviewed)
	assert.Nil(suite.T(), subscription)
}

func (suite *LifecycleServiceTestSuite) TestRejectPayment_ReasonRequired() {
	err := suite.service.RejectPayment(suite.ctx, suite.tenantID, suite.proofID, suite.reviewerID, "   ")
	assert.ErrorIs(suite.T(), err, ErrRejectionReasonRequired)
}

func (suite *LifecycleServiceTestSuite) TestRejectPayment_Success() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT .+ FROM tenant_payment_proofs WHERE tenant_id = \$1 AND id = \$2 FOR UPDATE`).
		WithArgs(suite.tenantID, suite.proofID).
		WillReturnRows(suite.proofRows(models.ProofStatusPending, nil))
	suite.mock.ExpectExec(`UPDATE tenant_payment_proofs`).
		WithArgs(models.ProofStatusRejected, suite.reviewerID, suite.now, pgxmock.AnyArg(), suite.tenantID, suite.proofID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	suite.cache.On("Delete", suite.ctx, "admin:subscription_overview").Return(nil)

	err := suite.service.RejectPayment(suite.ctx, suite.tenantID, suite.proofID, suite.reviewerID, "amount does not match invoice")
	assert.NoError(suite.T(), err)
}

func (suite *LifecycleServiceTestSuite) TestActivateTenant_AnchorsAtNow() {
	suite.mock.ExpectBegin()
	suite.expectActivation()
	suite.mock.ExpectCommit()

	suite.cache.On("Delete", suite.ctx, "admin:subscription_overview").Return(nil)

	subscription, err := suite.service.ActivateTenant(suite.ctx, suite.tenantID, suite.reviewerID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), subscription.BillingPeriodStart)
	assert.Equal(suite.T(), time.Date(2025, 3, 15, 23, 59, 59, 0, time.UTC), subscription.BillingPeriodEnd)
}

func (suite *LifecycleServiceTestSuite) TestActivateTenant_TwiceUpsertsSingleRow() {
	for i := 0; i < 2; i++ {
		suite.mock.ExpectBegin()
		suite.expectActivation()
		suite.mock.ExpectCommit()
	}

	suite.cache.On("Delete", suite.ctx, "admin:subscription_overview").Return(nil)

	first, err := suite.service.ActivateTenant(suite.ctx, suite.tenantID, suite.reviewerID)
	assert.NoError(suite.T(), err)
	second, err := suite.service.ActivateTenant(suite.ctx, suite.tenantID, suite.reviewerID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), first.TenantID, second.TenantID)
}

func (suite *LifecycleServiceTestSuite) TestApplyPlanFromRequest_QuarterlyWindow() {
	requestRows := pgxmock.NewRows([]string{
		"id", "tenant_id", "plan_id", "plan_name", "amount", "currency", "billing_cycle",
		"status", "rejection_reason", "requested_at", "reviewed_by", "reviewed_at",
	}).AddRow(
		suite.requestID, suite.tenantID, "plan-quarterly", "Quarterly", 3500.0, "INR", models.BillingCycleQuarterly,
		models.RequestStatusPending, (*string)(nil), suite.now.AddDate(0, 0, -1), (*uuid.UUID)(nil), (*time.Time)(nil),
	)

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT .+ FROM subscription_plan_requests WHERE tenant_id = \$1 AND id = \$2`).
		WithArgs(suite.tenantID, suite.requestID).
		WillReturnRows(requestRows)
	suite.mock.ExpectExec(`UPDATE subscription_plan_requests`).
		WithArgs(models.RequestStatusApproved, suite.reviewerID, suite.now, suite.tenantID, suite.requestID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.expectActivation()
	suite.mock.ExpectCommit()

	suite.cache.On("Delete", suite.ctx, "admin:subscription_overview").Return(nil)

	subscription, err := suite.service.ApplyPlanFromRequest(suite.ctx, suite.tenantID, suite.requestID, nil, suite.reviewerID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Quarterly", subscription.PlanName)
	assert.Equal(suite.T(), 3500.0, subscription.Amount)
	assert.Equal(suite.T(), time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), subscription.BillingPeriodStart)
	assert.Equal(suite.T(), time.Date(2024, 6, 15, 23, 59, 59, 0, time.UTC), subscription.BillingPeriodEnd)
}

func (suite *LifecycleServiceTestSuite) TestDeleteTenant_RequiresTypedConfirmation() {
	err := suite.service.DeleteTenant(suite.ctx, suite.tenantID, "delete")
	assert.ErrorIs(suite.T(), err, ErrDeleteNotConfirmed)

	err = suite.service.DeleteTenant(suite.ctx, suite.tenantID, "")
	assert.ErrorIs(suite.T(), err, ErrDeleteNotConfirmed)
}

func (suite *LifecycleServiceTestSuite) TestDeleteTenant_CascadesInOneTransaction() {
	tenantRows := pgxmock.NewRows([]string{
		"id", "name", "workspace_url", "tenant_code", "is_active", "is_free",
		"subscription_status", "trial_ends_at", "created_at", "updated_at",
	}).AddRow(
		suite.tenantID, "Speedy Fitments", "speedy", (*string)(nil), true, false,
		models.TenantStatusTrial, (*time.Time)(nil), suite.now, suite.now,
	)

	suite.mock.ExpectQuery(`SELECT .+ FROM tenants WHERE id = \$1`).
		WithArgs(suite.tenantID).
		WillReturnRows(tenantRows)

	suite.mock.ExpectBegin()
	for _, table := range []string{
		"call_logs", "requirements", "service_jobs", "vehicles",
		"subscription_plan_requests", "tenant_payment_proofs", "subscriptions", "users",
	} {
		suite.mock.ExpectExec(`DELETE FROM ` + table).
			WithArgs(suite.tenantID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
	}
	suite.mock.ExpectExec(`DELETE FROM tenants`).
		WithArgs(suite.tenantID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.mock.ExpectCommit()

	suite.cache.On("Delete", suite.ctx, "admin:subscription_overview").Return(nil)
	suite.cache.On("InvalidateTenant", suite.ctx, "speedy").Return(nil)

	err := suite.service.DeleteTenant(suite.ctx, suite.tenantID, "DELETE")
	assert.NoError(suite.T(), err)
}

func (suite *LifecycleServiceTestSuite) TestToggleActive_OnlyFlipsFlag() {
	suite.mock.ExpectExec(`UPDATE tenants SET is_active = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(false, suite.tenantID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	suite.cache.On("Delete", suite.ctx, "admin:subscription_overview").Return(nil)

	err := suite.service.ToggleActive(suite.ctx, suite.tenantID, false)
	assert.NoError(suite.T(), err)
}

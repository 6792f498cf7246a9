package repositories

import (
	"context"
	"testing"
	"time"

	"fitops/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type VehicleRepoTestSuite struct {
	suite.Suite
	mock      pgxmock.PgxPoolIface
	repo      VehicleRepository
	tenantID1 uuid.UUID
	tenantID2 uuid.UUID
	context   context.Context
}

func (suite *VehicleRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewVehicleRepo(mock)
	suite.tenantID1 = uuid.New()
	suite.tenantID2 = uuid.New()
	suite.context = context.Background()
}

func (suite *VehicleRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestVehicleRepoTestSuite(t *testing.T) {
	suite.Run(t, new(VehicleRepoTestSuite))
}

func (suite *VehicleRepoTestSuite) vehicleRows(id, tenantID uuid.UUID, plate string) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "tenant_id", "plate_number", "make", "model", "owner_name", "owner_phone",
		"intake_notes", "received_at", "delivered_at", "created_at", "updated_at",
	}).AddRow(
		id, tenantID, plate, "Mahindra", "Thar", "Priya", "+919800000000",
		(*string)(nil), now, (*time.Time)(nil), now, now,
	)
}

func (suite *VehicleRepoTestSuite) TestCreate() {
	vehicle := &models.Vehicle{
		ID:          uuid.New(),
		TenantID:    suite.tenantID1,
		PlateNumber: "KA01AB1234",
		Make:        "Mahindra",
		Model:       "Thar",
		OwnerName:   "Priya",
		OwnerPhone:  "+919800000000",
		ReceivedAt:  time.Now(),
	}

	suite.mock.ExpectExec(`INSERT INTO vehicles`).
		WithArgs(vehicle.ID, vehicle.TenantID, vehicle.PlateNumber, vehicle.Make, vehicle.Model, vehicle.OwnerName, vehicle.OwnerPhone, vehicle.IntakeNotes, vehicle.ReceivedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, vehicle)
	assert.NoError(suite.T(), err)
}

func (suite *VehicleRepoTestSuite) TestGetByID_ScopedToTenant() {
	id := uuid.New()

	suite.mock.ExpectQuery(`SELECT .+ FROM vehicles WHERE tenant_id = \$1 AND id = \$2`).
		WithArgs(suite.tenantID1, id).
		WillReturnRows(suite.vehicleRows(id, suite.tenantID1, "KA01AB1234"))

	vehicle, err := suite.repo.GetByID(suite.context, suite.tenantID1, id)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.tenantID1, vehicle.TenantID)
}

func (suite *VehicleRepoTestSuite) TestGetByID_OtherTenantSeesNothing() {
	id := uuid.New()

	// Same row exists under tenant 1; tenant 2's scoped query returns nothing.
	suite.mock.ExpectQuery(`SELECT .+ FROM vehicles WHERE tenant_id = \$1 AND id = \$2`).
		WithArgs(suite.tenantID2, id).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "tenant_id", "plate_number", "make", "model", "owner_name", "owner_phone",
			"intake_notes", "received_at", "delivered_at", "created_at", "updated_at",
		}))

	vehicle, err := suite.repo.GetByID(suite.context, suite.tenantID2, id)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), vehicle)
}

func (suite *VehicleRepoTestSuite) TestList_FiltersByTenant() {
	suite.mock.ExpectQuery(`SELECT .+ FROM vehicles\s+WHERE tenant_id = \$1`).
		WithArgs(suite.tenantID1, 50, 0).
		WillReturnRows(suite.vehicleRows(uuid.New(), suite.tenantID1, "KA01AB1234"))

	vehicles, err := suite.repo.List(suite.context, suite.tenantID1, 50, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), vehicles, 1)
	assert.Equal(suite.T(), suite.tenantID1, vehicles[0].TenantID)
}

func (suite *VehicleRepoTestSuite) TestSearch_ByPlate() {
	suite.mock.ExpectQuery(`SELECT .+ FROM vehicles\s+WHERE tenant_id = \$1 AND plate_number ILIKE`).
		WithArgs(suite.tenantID1, "AB12", 50, 0).
		WillReturnRows(suite.vehicleRows(uuid.New(), suite.tenantID1, "KA01AB1234"))

	vehicles, err := suite.repo.Search(suite.context, suite.tenantID1, "AB12", 50, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), vehicles, 1)
}

func (suite *VehicleRepoTestSuite) TestDelete_ScopedToTenant() {
	id := uuid.New()

	suite.mock.ExpectExec(`DELETE FROM vehicles WHERE tenant_id = \$1 AND id = \$2`).
		WithArgs(suite.tenantID1, id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.context, suite.tenantID1, id)
	assert.NoError(suite.T(), err)
}

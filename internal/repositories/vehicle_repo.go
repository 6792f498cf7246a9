package repositories

import (
	"context"

	"fitops/internal/models"

	"github.com/google/uuid"
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Vehicle, error)
	Update(ctx context.Context, vehicle *models.Vehicle) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Vehicle, error)
	Search(ctx context.Context, tenantID uuid.UUID, plate string, limit, offset int) ([]*models.Vehicle, error)
}

type vehicleRepo struct {
	db Database
}

func NewVehicleRepo(db Database) VehicleRepository {
	return &vehicleRepo{db: db}
}

const vehicleColumns = `id, tenant_id, plate_number, make, model, owner_name, owner_phone, intake_notes, received_at, delivered_at, created_at, updated_at`

func scanVehicle(row interface{ Scan(dest ...any) error }) (*models.Vehicle, error) {
	vehicle := &models.Vehicle{}
	err := row.Scan(&vehicle.ID, &vehicle.TenantID, &vehicle.PlateNumber, &vehicle.Make, &vehicle.Model, &vehicle.OwnerName, &vehicle.OwnerPhone, &vehicle.IntakeNotes, &vehicle.ReceivedAt, &vehicle.DeliveredAt, &vehicle.CreatedAt, &vehicle.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (r *vehicleRepo) Create(ctx context.Context, vehicle *models.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, tenant_id, plate_number, make, model, owner_name, owner_phone, intake_notes, received_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, vehicle.ID, vehicle.TenantID, vehicle.PlateNumber, vehicle.Make, vehicle.Model, vehicle.OwnerName, vehicle.OwnerPhone, vehicle.IntakeNotes, vehicle.ReceivedAt)
	return err
}

func (r *vehicleRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE tenant_id = $1 AND id = $2`
	return scanVehicle(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *vehicleRepo) Update(ctx context.Context, vehicle *models.Vehicle) error {
	query := `
		UPDATE vehicles
		SET plate_number = $1, make = $2, model = $3, owner_name = $4, owner_phone = $5, intake_notes = $6, delivered_at = $7, updated_at = NOW()
		WHERE tenant_id = $8 AND id = $9
	`
	_, err := r.db.Exec(ctx, query, vehicle.PlateNumber, vehicle.Make, vehicle.Model, vehicle.OwnerName, vehicle.OwnerPhone, vehicle.IntakeNotes, vehicle.DeliveredAt, vehicle.TenantID, vehicle.ID)
	return err
}

func (r *vehicleRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM vehicles WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

func (r *vehicleRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE tenant_id = $1
		ORDER BY received_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryVehicles(ctx, query, tenantID, limit, offset)
}

func (r *vehicleRepo) Search(ctx context.Context, tenantID uuid.UUID, plate string, limit, offset int) ([]*models.Vehicle, error) {
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		WHERE tenant_id = $1 AND plate_number ILIKE '%' || $2 || '%'
		ORDER BY received_at DESC
		LIMIT $3 OFFSET $4
	`
	return r.queryVehicles(ctx, query, tenantID, plate, limit, offset)
}

func (r *vehicleRepo) queryVehicles(ctx context.Context, query string, args ...any) ([]*models.Vehicle, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*models.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}
	return vehicles, rows.Err()
}

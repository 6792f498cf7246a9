package repositories

import (
	"context"

	"fitops/internal/models"

	"github.com/google/uuid"
)

type ServiceJobRepository interface {
	Create(ctx context.Context, job *models.ServiceJob) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.ServiceJob, error)
	Update(ctx context.Context, job *models.ServiceJob) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.ServiceJob, error)
	ListByVehicle(ctx context.Context, tenantID, vehicleID uuid.UUID) ([]*models.ServiceJob, error)
}

type serviceJobRepo struct {
	db Database
}

func NewServiceJobRepo(db Database) ServiceJobRepository {
	return &serviceJobRepo{db: db}
}

const jobColumns = `id, tenant_id, vehicle_id, title, accessory, status, assigned_to, notes, completed_at, created_at, updated_at`

func scanJob(row interface{ Scan(dest ...any) error }) (*models.ServiceJob, error) {
	job := &models.ServiceJob{}
	err := row.Scan(&job.ID, &job.TenantID, &job.VehicleID, &job.Title, &job.Accessory, &job.Status, &job.AssignedTo, &job.Notes, &job.CompletedAt, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (r *serviceJobRepo) Create(ctx context.Context, job *models.ServiceJob) error {
	query := `
		INSERT INTO service_jobs (id, tenant_id, vehicle_id, title, accessory, status, assigned_to, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, job.ID, job.TenantID, job.VehicleID, job.Title, job.Accessory, job.Status, job.AssignedTo, job.Notes)
	return err
}

func (r *serviceJobRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.ServiceJob, error) {
	query := `SELECT ` + jobColumns + ` FROM service_jobs WHERE tenant_id = $1 AND id = $2`
	return scanJob(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *serviceJobRepo) Update(ctx context.Context, job *models.ServiceJob) error {
	query := `
		UPDATE service_jobs
		SET title = $1, accessory = $2, status = $3, assigned_to = $4, notes = $5, completed_at = $6, updated_at = NOW()
		WHERE tenant_id = $7 AND id = $8
	`
	_, err := r.db.Exec(ctx, query, job.Title, job.Accessory, job.Status, job.AssignedTo, job.Notes, job.CompletedAt, job.TenantID, job.ID)
	return err
}

func (r *serviceJobRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM service_jobs WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

func (r *serviceJobRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.ServiceJob, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM service_jobs
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryJobs(ctx, query, tenantID, limit, offset)
}

func (r *serviceJobRepo) ListByVehicle(ctx context.Context, tenantID, vehicleID uuid.UUID) ([]*models.ServiceJob, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM service_jobs
		WHERE tenant_id = $1 AND vehicle_id = $2
		ORDER BY created_at DESC
	`
	return r.queryJobs(ctx, query, tenantID, vehicleID)
}

func (r *serviceJobRepo) queryJobs(ctx context.Context, query string, args ...any) ([]*models.ServiceJob, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*models.ServiceJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

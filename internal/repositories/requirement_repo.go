package repositories

import (
	"context"

	"fitops/internal/models"

	"github.com/google/uuid"
)

type RequirementRepository interface {
	Create(ctx context.Context, requirement *models.Requirement) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Requirement, error)
	Update(ctx context.Context, requirement *models.Requirement) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Requirement, error)
}

type requirementRepo struct {
	db Database
}

func NewRequirementRepo(db Database) RequirementRepository {
	return &requirementRepo{db: db}
}

const requirementColumns = `id, tenant_id, job_id, part_name, quantity, status, notes, created_at, updated_at`

func scanRequirement(row interface{ Scan(dest ...any) error }) (*models.Requirement, error) {
	requirement := &models.Requirement{}
	err := row.Scan(&requirement.ID, &requirement.TenantID, &requirement.JobID, &requirement.PartName, &requirement.Quantity, &requirement.Status, &requirement.Notes, &requirement.CreatedAt, &requirement.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return requirement, nil
}

func (r *requirementRepo) Create(ctx context.Context, requirement *models.Requirement) error {
	query := `
		INSERT INTO requirements (id, tenant_id, job_id, part_name, quantity, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, requirement.ID, requirement.TenantID, requirement.JobID, requirement.PartName, requirement.Quantity, requirement.Status, requirement.Notes)
	return err
}

func (r *requirementRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Requirement, error) {
	query := `SELECT ` + requirementColumns + ` FROM requirements WHERE tenant_id = $1 AND id = $2`
	return scanRequirement(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *requirementRepo) Update(ctx context.Context, requirement *models.Requirement) error {
	query := `
		UPDATE requirements
		SET part_name = $1, quantity = $2, status = $3, notes = $4, updated_at = NOW()
		WHERE tenant_id = $5 AND id = $6
	`
	_, err := r.db.Exec(ctx, query, requirement.PartName, requirement.Quantity, requirement.Status, requirement.Notes, requirement.TenantID, requirement.ID)
	return err
}

func (r *requirementRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM requirements WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

func (r *requirementRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Requirement, error) {
	query := `
		SELECT ` + requirementColumns + `
		FROM requirements
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requirements []*models.Requirement
	for rows.Next() {
		requirement, err := scanRequirement(rows)
		if err != nil {
			return nil, err
		}
		requirements = append(requirements, requirement)
	}
	return requirements, rows.Err()
}

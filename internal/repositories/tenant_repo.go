package repositories

import (
	"context"

	"fitops/internal/models"

	"github.com/google/uuid"
)

type TenantRepository interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	Update(ctx context.Context, tenant *models.Tenant) error
	UpdateActive(ctx context.Context, id uuid.UUID, active bool) error
	SetActivated(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Tenant, error)
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

type tenantRepo struct {
	db Database
}

func NewTenantRepo(db Database) TenantRepository {
	return &tenantRepo{db: db}
}

const tenantColumns = `id, name, workspace_url, tenant_code, is_active, is_free, subscription_status, trial_ends_at, created_at, updated_at`

func scanTenant(row interface{ Scan(dest ...any) error }) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	err := row.Scan(&tenant.ID, &tenant.Name, &tenant.WorkspaceSlug, &tenant.TenantCode, &tenant.IsActive, &tenant.IsFree, &tenant.SubscriptionStatus, &tenant.TrialEndsAt, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

func (r *tenantRepo) Create(ctx context.Context, tenant *models.Tenant) error {
	query := `
		INSERT INTO tenants (id, name, workspace_url, tenant_code, is_active, is_free, subscription_status, trial_ends_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	`
	_, err := r.db.Exec(ctx, query, tenant.ID, tenant.Name, tenant.WorkspaceSlug, tenant.TenantCode, tenant.IsActive, tenant.IsFree, tenant.SubscriptionStatus, tenant.TrialEndsAt, tenant.CreatedAt)
	return err
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	return scanTenant(r.db.QueryRow(ctx, query, id))
}

func (r *tenantRepo) GetBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE workspace_url = $1`
	return scanTenant(r.db.QueryRow(ctx, query, slug))
}

func (r *tenantRepo) Update(ctx context.Context, tenant *models.Tenant) error {
	query := `
		UPDATE tenants
		SET name = $1, workspace_url = $2, tenant_code = $3, is_free = $4, updated_at = NOW()
		WHERE id = $5
	`
	_, err := r.db.Exec(ctx, query, tenant.Name, tenant.WorkspaceSlug, tenant.TenantCode, tenant.IsFree, tenant.ID)
	return err
}

// UpdateActive flips is_active only. Deactivation deliberately leaves the
// subscription row and trial fields untouched.
func (r *tenantRepo) UpdateActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE tenants SET is_active = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, active, id)
	return err
}

// SetActivated moves a tenant into the active-subscription state: active,
// status 'active', trial cleared.
func (r *tenantRepo) SetActivated(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE tenants
		SET is_active = TRUE, subscription_status = $1, trial_ends_at = NULL, updated_at = NOW()
		WHERE id = $2
	`
	_, err := r.db.Exec(ctx, query, models.TenantStatusActive, id)
	return err
}

func (r *tenantRepo) List(ctx context.Context, limit, offset int) ([]*models.Tenant, error) {
	query := `
		SELECT ` + tenantColumns + `
		FROM tenants
		ORDER BY tenant_code ASC NULLS LAST, created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}
	return tenants, rows.Err()
}

// tenantOwnedTables lists every table keyed by tenant_id, in FK-safe delete
// order. DeleteCascade must run inside a transaction so a failure partway
// never leaves orphans.
var tenantOwnedTables = []string{
	"call_logs",
	"requirements",
	"service_jobs",
	"vehicles",
	"subscription_plan_requests",
	"tenant_payment_proofs",
	"subscriptions",
	"users",
}

func (r *tenantRepo) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	for _, table := range tenantOwnedTables {
		if _, err := r.db.Exec(ctx, `DELETE FROM `+table+` WHERE tenant_id = $1`, id); err != nil {
			return err
		}
	}
	_, err := r.db.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, id)
	return err
}

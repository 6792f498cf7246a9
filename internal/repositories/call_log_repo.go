package repositories

import (
	"context"

	"fitops/internal/models"

	"github.com/google/uuid"
)

type CallLogRepository interface {
	Create(ctx context.Context, callLog *models.CallLog) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.CallLog, error)
	Update(ctx context.Context, callLog *models.CallLog) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.CallLog, error)
	ListDue(ctx context.Context, tenantID uuid.UUID) ([]*models.CallLog, error)
}

type callLogRepo struct {
	db Database
}

func NewCallLogRepo(db Database) CallLogRepository {
	return &callLogRepo{db: db}
}

const callLogColumns = `id, tenant_id, customer_name, phone, outcome, follow_up_at, done, created_at, updated_at`

func scanCallLog(row interface{ Scan(dest ...any) error }) (*models.CallLog, error) {
	callLog := &models.CallLog{}
	err := row.Scan(&callLog.ID, &callLog.TenantID, &callLog.CustomerName, &callLog.Phone, &callLog.Outcome, &callLog.FollowUpAt, &callLog.Done, &callLog.CreatedAt, &callLog.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return callLog, nil
}

func (r *callLogRepo) Create(ctx context.Context, callLog *models.CallLog) error {
	query := `
		INSERT INTO call_logs (id, tenant_id, customer_name, phone, outcome, follow_up_at, done, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, callLog.ID, callLog.TenantID, callLog.CustomerName, callLog.Phone, callLog.Outcome, callLog.FollowUpAt, callLog.Done)
	return err
}

func (r *callLogRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.CallLog, error) {
	query := `SELECT ` + callLogColumns + ` FROM call_logs WHERE tenant_id = $1 AND id = $2`
	return scanCallLog(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *callLogRepo) Update(ctx context.Context, callLog *models.CallLog) error {
	query := `
		UPDATE call_logs
		SET customer_name = $1, phone = $2, outcome = $3, follow_up_at = $4, done = $5, updated_at = NOW()
		WHERE tenant_id = $6 AND id = $7
	`
	_, err := r.db.Exec(ctx, query, callLog.CustomerName, callLog.Phone, callLog.Outcome, callLog.FollowUpAt, callLog.Done, callLog.TenantID, callLog.ID)
	return err
}

func (r *callLogRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM call_logs WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

func (r *callLogRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.CallLog, error) {
	query := `
		SELECT ` + callLogColumns + `
		FROM call_logs
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryCallLogs(ctx, query, tenantID, limit, offset)
}

func (r *callLogRepo) ListDue(ctx context.Context, tenantID uuid.UUID) ([]*models.CallLog, error) {
	query := `
		SELECT ` + callLogColumns + `
		FROM call_logs
		WHERE tenant_id = $1 AND done = FALSE AND follow_up_at IS NOT NULL AND follow_up_at <= NOW()
		ORDER BY follow_up_at ASC
	`
	return r.queryCallLogs(ctx, query, tenantID)
}

func (r *callLogRepo) queryCallLogs(ctx context.Context, query string, args ...any) ([]*models.CallLog, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var callLogs []*models.CallLog
	for rows.Next() {
		callLog, err := scanCallLog(rows)
		if err != nil {
			return nil, err
		}
		callLogs = append(callLogs, callLog)
	}
	return callLogs, rows.Err()
}

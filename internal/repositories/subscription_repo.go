package repositories

import (
	"context"

	"fitops/internal/models"

	"github.com/google/uuid"
)

type SubscriptionRepository interface {
	// Upsert inserts the subscription or, when the tenant already has one,
	// updates that row in place. At most one row per tenant ever exists.
	Upsert(ctx context.Context, subscription *models.Subscription) error
	GetByTenant(ctx context.Context, tenantID uuid.UUID) (*models.Subscription, error)
	ListAll(ctx context.Context) ([]*models.Subscription, error)
}

type subscriptionRepo struct {
	db Database
}

func NewSubscriptionRepo(db Database) SubscriptionRepository {
	return &subscriptionRepo{db: db}
}

const subscriptionColumns = `id, tenant_id, plan_name, amount, currency, status, billing_period_start, billing_period_end, created_at, updated_at`

func scanSubscription(row interface{ Scan(dest ...any) error }) (*models.Subscription, error) {
	sub := &models.Subscription{}
	err := row.Scan(&sub.ID, &sub.TenantID, &sub.PlanName, &sub.Amount, &sub.Currency, &sub.Status, &sub.BillingPeriodStart, &sub.BillingPeriodEnd, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (r *subscriptionRepo) Upsert(ctx context.Context, subscription *models.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, tenant_id, plan_name, amount, currency, status, billing_period_start, billing_period_end, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (tenant_id) DO UPDATE
		SET plan_name = EXCLUDED.plan_name, amount = EXCLUDED.amount, currency = EXCLUDED.currency,
		    status = EXCLUDED.status, billing_period_start = EXCLUDED.billing_period_start,
		    billing_period_end = EXCLUDED.billing_period_end, updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, subscription.ID, subscription.TenantID, subscription.PlanName, subscription.Amount, subscription.Currency, subscription.Status, subscription.BillingPeriodStart, subscription.BillingPeriodEnd)
	return err
}

func (r *subscriptionRepo) GetByTenant(ctx context.Context, tenantID uuid.UUID) (*models.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE tenant_id = $1`
	return scanSubscription(r.db.QueryRow(ctx, query, tenantID))
}

func (r *subscriptionRepo) ListAll(ctx context.Context) ([]*models.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subscriptions []*models.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		subscriptions = append(subscriptions, sub)
	}
	return subscriptions, rows.Err()
}

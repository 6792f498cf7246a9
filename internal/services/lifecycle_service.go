package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"fitops/internal/billing"
	"fitops/internal/caching"
	"fitops/internal/models"
	"fitops/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DeleteConfirmationToken is the literal an admin must type before a tenant
// is destroyed.
const DeleteConfirmationToken = "DELETE"

// overviewCacheKey holds the cached admin overview.
const overviewCacheKey = "admin:subscription_overview"

const overviewCacheTTL = 5 * time.Minute

var (
	// ErrProofAlreadyReviewed is returned when approve/reject hits a proof
	// whose status is already terminal. Review never re-executes.
	ErrProofAlreadyReviewed = errors.New("payment proof has already been reviewed")
	// ErrRequestAlreadyResolved is returned for plan requests that are no
	// longer pending.
	ErrRequestAlreadyResolved = errors.New("plan request has already been resolved")
	// ErrRejectionReasonRequired is returned before any write when a
	// rejection carries no reason.
	ErrRejectionReasonRequired = errors.New("rejection reason is required")
	// ErrDeleteNotConfirmed is returned before any write when the typed
	// confirmation does not match exactly.
	ErrDeleteNotConfirmed = errors.New("tenant deletion requires typed confirmation")
)

// TenantOverview is one row of the admin subscription view: the tenant, its
// derived lifecycle state, and everything the console displays next to it.
type TenantOverview struct {
	Tenant              *models.Tenant          `json:"tenant"`
	State               billing.LifecycleState  `json:"state"`
	Subscription        *models.Subscription    `json:"subscription"`
	DaysRemaining       *int                    `json:"days_remaining"`
	Trial               *billing.TrialRemaining `json:"trial"`
	PriceDisplay        string                  `json:"price_display,omitempty"`
	MissingSubscription bool                    `json:"missing_subscription"`
	PendingProofs       int                     `json:"pending_proofs"`
	PendingPlanRequest  *models.PlanRequest     `json:"pending_plan_request"`
}

// LifecycleService moves one tenant at a time between trial, pending-payment
// and active-subscription states. Every transition runs inside a single
// database transaction; partial writes cannot occur.
type LifecycleService interface {
	ApprovePayment(ctx context.Context, tenantID, proofID, reviewerID uuid.UUID) (*models.Subscription, error)
	RejectPayment(ctx context.Context, tenantID, proofID, reviewerID uuid.UUID, reason string) error
	ActivateTenant(ctx context.Context, tenantID, reviewerID uuid.UUID) (*models.Subscription, error)
	ApplyPlanFromRequest(ctx context.Context, tenantID, requestID uuid.UUID, proofID *uuid.UUID, reviewerID uuid.UUID) (*models.Subscription, error)
	ToggleActive(ctx context.Context, tenantID uuid.UUID, active bool) error
	DeleteTenant(ctx context.Context, tenantID uuid.UUID, confirmation string) error
	Overview(ctx context.Context) ([]*TenantOverview, error)
	RefreshOverview(ctx context.Context) error
}

type lifecycleService struct {
	db               repositories.TxDatabase
	tenantRepo       repositories.TenantRepository
	subscriptionRepo repositories.SubscriptionRepository
	proofRepo        repositories.PaymentProofRepository
	planRequestRepo  repositories.PlanRequestRepository
	cache            caching.CacheService
	receipts         ReceiptService
	now              func() time.Time
}

// NewLifecycleService creates the engine. receipts may be nil; receipt
// generation is best-effort and never blocks a transition.
func NewLifecycleService(
	db repositories.TxDatabase,
	tenantRepo repositories.TenantRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	proofRepo repositories.PaymentProofRepository,
	planRequestRepo repositories.PlanRequestRepository,
	cache caching.CacheService,
	receipts ReceiptService,
) LifecycleService {
	return &lifecycleService{
		db:               db,
		tenantRepo:       tenantRepo,
		subscriptionRepo: subscriptionRepo,
		proofRepo:        proofRepo,
		planRequestRepo:  planRequestRepo,
		cache:            cache,
		receipts:         receipts,
		now:              time.Now,
	}
}

func (s *lifecycleService) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ApprovePayment marks the proof approved and activates the tenant on the
// default annual plan. The billing period anchors on the proof's payment
// date when present, otherwise on the approval instant.
func (s *lifecycleService) ApprovePayment(ctx context.Context, tenantID, proofID, reviewerID uuid.UUID) (*models.Subscription, error) {
	now := s.now()
	var subscription *models.Subscription

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		proofs := repositories.NewPaymentProofRepo(tx)
		proof, err := proofs.GetForReview(ctx, tenantID, proofID)
		if err != nil {
			return fmt.Errorf("load payment proof: %w", err)
		}
		if proof.Status != models.ProofStatusPending {
			return ErrProofAlreadyReviewed
		}
		if err := proofs.MarkReviewed(ctx, tenantID, proofID, models.ProofStatusApproved, reviewerID, now, nil); err != nil {
			return fmt.Errorf("approve payment proof: %w", err)
		}

		anchor := now
		if proof.PaymentDate != nil {
			anchor = *proof.PaymentDate
		}
		start, end := billing.AnnualWindow(anchor)
		subscription = defaultPlanSubscription(tenantID, start, end)

		return activateWithSubscription(ctx, tx, tenantID, subscription)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateOverview(ctx)
	s.issueReceipt(ctx, tenantID, subscription)
	return subscription, nil
}

// RejectPayment marks the proof rejected with the operator's reason. No
// tenant or subscription state changes.
func (s *lifecycleService) RejectPayment(ctx context.Context, tenantID, proofID, reviewerID uuid.UUID, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrRejectionReasonRequired
	}
	now := s.now()

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		proofs := repositories.NewPaymentProofRepo(tx)
		proof, err := proofs.GetForReview(ctx, tenantID, proofID)
		if err != nil {
			return fmt.Errorf("load payment proof: %w", err)
		}
		if proof.Status != models.ProofStatusPending {
			return ErrProofAlreadyReviewed
		}
		return proofs.MarkReviewed(ctx, tenantID, proofID, models.ProofStatusRejected, reviewerID, now, &reason)
	})
	if err != nil {
		return err
	}

	s.invalidateOverview(ctx)
	return nil
}

// ActivateTenant is the administrative override for the missing-subscription
// recovery case: it needs no payment proof and anchors the billing window at
// the current instant.
func (s *lifecycleService) ActivateTenant(ctx context.Context, tenantID, reviewerID uuid.UUID) (*models.Subscription, error) {
	start, end := billing.AnnualWindow(s.now())
	subscription := defaultPlanSubscription(tenantID, start, end)

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		return activateWithSubscription(ctx, tx, tenantID, subscription)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateOverview(ctx)
	s.issueReceipt(ctx, tenantID, subscription)
	return subscription, nil
}

// ApplyPlanFromRequest honors the requested plan's terms: it approves the
// associated proof when given, writes the subscription with the requested
// amount, currency and cycle-derived window, resolves the request and
// activates the tenant.
func (s *lifecycleService) ApplyPlanFromRequest(ctx context.Context, tenantID, requestID uuid.UUID, proofID *uuid.UUID, reviewerID uuid.UUID) (*models.Subscription, error) {
	now := s.now()
	var subscription *models.Subscription

	err := s.withTx(ctx, func(tx pgx.Tx) error {
		requests := repositories.NewPlanRequestRepo(tx)
		request, err := requests.GetByID(ctx, tenantID, requestID)
		if err != nil {
			return fmt.Errorf("load plan request: %w", err)
		}
		if request.Status != models.RequestStatusPending {
			return ErrRequestAlreadyResolved
		}

		if proofID != nil {
			proofs := repositories.NewPaymentProofRepo(tx)
			proof, err := proofs.GetForReview(ctx, tenantID, *proofID)
			if err != nil {
				return fmt.Errorf("load payment proof: %w", err)
			}
			if proof.Status != models.ProofStatusPending {
				return ErrProofAlreadyReviewed
			}
			if err := proofs.MarkReviewed(ctx, tenantID, *proofID, models.ProofStatusApproved, reviewerID, now, nil); err != nil {
				return fmt.Errorf("approve payment proof: %w", err)
			}
		}

		start, end := billing.Window(now, request.BillingCycle)
		subscription = &models.Subscription{
			ID:                 uuid.New(),
			TenantID:           tenantID,
			PlanName:           request.PlanName,
			Amount:             request.Amount,
			Currency:           request.Currency,
			Status:             models.SubscriptionStatusActive,
			BillingPeriodStart: start,
			BillingPeriodEnd:   end,
		}

		if err := requests.MarkApproved(ctx, tenantID, requestID, reviewerID, now); err != nil {
			return fmt.Errorf("approve plan request: %w", err)
		}
		return activateWithSubscription(ctx, tx, tenantID, subscription)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateOverview(ctx)
	s.issueReceipt(ctx, tenantID, subscription)
	return subscription, nil
}

// ToggleActive flips is_active without touching the subscription row or
// trial fields. This runs on the server's elevated credentials because the
// acting admin is not a member of the target tenant.
func (s *lifecycleService) ToggleActive(ctx context.Context, tenantID uuid.UUID, active bool) error {
	if err := s.tenantRepo.UpdateActive(ctx, tenantID, active); err != nil {
		return fmt.Errorf("toggle tenant active: %w", err)
	}
	s.invalidateOverview(ctx)
	return nil
}

// DeleteTenant validates the typed confirmation and then removes the tenant
// together with every row it owns, all inside one transaction.
func (s *lifecycleService) DeleteTenant(ctx context.Context, tenantID uuid.UUID, confirmation string) error {
	if confirmation != DeleteConfirmationToken {
		return ErrDeleteNotConfirmed
	}
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("load tenant: %w", err)
	}

	err = s.withTx(ctx, func(tx pgx.Tx) error {
		return repositories.NewTenantRepo(tx).DeleteCascade(ctx, tenantID)
	})
	if err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}

	s.invalidateOverview(ctx)
	if cacheErr := s.cache.InvalidateTenant(ctx, tenant.WorkspaceSlug); cacheErr != nil {
		log.Printf("WARN: failed to invalidate tenant cache: %v", cacheErr)
	}
	return nil
}

// Overview returns the admin subscription view, cached for a short TTL.
// Expiry is computed against the current time at read; nothing here mutates
// tenant state.
func (s *lifecycleService) Overview(ctx context.Context) ([]*TenantOverview, error) {
	var cached []*TenantOverview
	if err := s.cache.GetJSON(ctx, overviewCacheKey, &cached); err == nil {
		return cached, nil
	}

	overview, err := s.buildOverview(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(ctx, overviewCacheKey, overview, overviewCacheTTL); err != nil {
		log.Printf("WARN: failed to cache admin overview: %v", err)
	}
	return overview, nil
}

// RefreshOverview recomputes and re-caches the overview. Used by the
// background refresher; read-only with respect to tenant state.
func (s *lifecycleService) RefreshOverview(ctx context.Context) error {
	overview, err := s.buildOverview(ctx)
	if err != nil {
		return err
	}
	return s.cache.SetJSON(ctx, overviewCacheKey, overview, overviewCacheTTL)
}

func (s *lifecycleService) buildOverview(ctx context.Context) ([]*TenantOverview, error) {
	now := s.now()

	tenants, err := s.tenantRepo.List(ctx, 1000, 0)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	subscriptions, err := s.subscriptionRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	pendingProofs, err := s.proofRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending proofs: %w", err)
	}
	pendingRequests, err := s.planRequestRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending plan requests: %w", err)
	}

	subsByTenant := make(map[uuid.UUID]*models.Subscription, len(subscriptions))
	for _, sub := range subscriptions {
		subsByTenant[sub.TenantID] = sub
	}
	proofCounts := make(map[uuid.UUID]int)
	for _, proof := range pendingProofs {
		proofCounts[proof.TenantID]++
	}
	requestsByTenant := latestPendingByTenant(pendingRequests)

	overview := make([]*TenantOverview, 0, len(tenants))
	for _, tenant := range tenants {
		sub := subsByTenant[tenant.ID]
		row := &TenantOverview{
			Tenant:             tenant,
			State:              billing.DeriveTenantState(tenant, sub != nil, now),
			Subscription:       sub,
			Trial:              billing.TrialTimeRemaining(tenant.TrialEndsAt, now),
			PendingProofs:      proofCounts[tenant.ID],
			PendingPlanRequest: requestsByTenant[tenant.ID],
		}
		if sub != nil {
			row.DaysRemaining = billing.DaysRemaining(&sub.BillingPeriodEnd, now)
			row.PriceDisplay = billing.FormatSubscriptionPrice(sub.Amount)
		} else {
			row.DaysRemaining = billing.DaysRemaining(tenant.TrialEndsAt, now)
		}
		row.MissingSubscription = row.State == billing.StateMissingSubscription
		overview = append(overview, row)
	}
	return overview, nil
}

func (s *lifecycleService) invalidateOverview(ctx context.Context) {
	if err := s.cache.Delete(ctx, overviewCacheKey); err != nil {
		log.Printf("WARN: failed to invalidate admin overview cache: %v", err)
	}
}

func (s *lifecycleService) issueReceipt(ctx context.Context, tenantID uuid.UUID, subscription *models.Subscription) {
	if s.receipts == nil || subscription == nil {
		return
	}
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		log.Printf("WARN: receipt skipped, failed to load tenant %s: %v", tenantID, err)
		return
	}
	if _, err := s.receipts.Generate(ctx, tenant, subscription); err != nil {
		log.Printf("WARN: failed to generate subscription receipt for tenant %s: %v", tenantID, err)
	}
}

// defaultPlanSubscription builds the subscription row for activation paths
// that do not go through a plan request.
func defaultPlanSubscription(tenantID uuid.UUID, start, end time.Time) *models.Subscription {
	return &models.Subscription{
		ID:                 uuid.New(),
		TenantID:           tenantID,
		PlanName:           billing.DefaultPlan.Name,
		Amount:             billing.DefaultPlan.Amount,
		Currency:           billing.DefaultPlan.Currency,
		Status:             models.SubscriptionStatusActive,
		BillingPeriodStart: start,
		BillingPeriodEnd:   end,
	}
}

// activateWithSubscription performs the shared tail of every activation
// path: upsert the subscription row, then mark the tenant active and clear
// its trial. Must run inside the caller's transaction.
func activateWithSubscription(ctx context.Context, tx pgx.Tx, tenantID uuid.UUID, subscription *models.Subscription) error {
	if err := repositories.NewSubscriptionRepo(tx).Upsert(ctx, subscription); err != nil {
		return fmt.Errorf("upsert subscription: %w", err)
	}
	if err := repositories.NewTenantRepo(tx).SetActivated(ctx, tenantID); err != nil {
		return fmt.Errorf("activate tenant: %w", err)
	}
	return nil
}

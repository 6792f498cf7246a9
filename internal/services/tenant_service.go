package services

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"
	"time"

	"fitops/internal/billing"
	"fitops/internal/caching"
	"fitops/internal/models"
	"fitops/internal/repositories"

	"github.com/google/uuid"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

const tenantSlugCacheTTL = 10 * time.Minute

type TenantService interface {
	Create(ctx context.Context, req *CreateTenantRequest) (*models.Tenant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	Update(ctx context.Context, req *UpdateTenantRequest) error
	List(ctx context.Context, limit, offset int) ([]*models.Tenant, error)
}

type tenantService struct {
	tenantRepo repositories.TenantRepository
	cache      caching.CacheService
	trialDays  int
	now        func() time.Time
}

func NewTenantService(tenantRepo repositories.TenantRepository, cache caching.CacheService, trialDays int) TenantService {
	return &tenantService{tenantRepo: tenantRepo, cache: cache, trialDays: trialDays, now: time.Now}
}

type CreateTenantRequest struct {
	Name          string `json:"name" validate:"required"`
	WorkspaceSlug string `json:"workspace_url" validate:"required"`
	IsFree        bool   `json:"is_free"`
}

type UpdateTenantRequest struct {
	ID            uuid.UUID
	Name          string  `json:"name" validate:"required"`
	WorkspaceSlug string  `json:"workspace_url" validate:"required"`
	TenantCode    *string `json:"tenant_code"`
	IsFree        bool    `json:"is_free"`
}

// Create registers a new tenant. The trial starts immediately: trial_ends_at
// is exactly created_at plus the configured trial-day count. Free tenants
// carry no trial window.
func (s *tenantService) Create(ctx context.Context, req *CreateTenantRequest) (*models.Tenant, error) {
	if req.Name == "" || req.WorkspaceSlug == "" {
		return nil, errors.New("name and workspace_url are required")
	}
	slug := strings.ToLower(strings.TrimSpace(req.WorkspaceSlug))
	if !slugPattern.MatchString(slug) {
		return nil, errors.New("workspace_url may only contain lowercase letters, digits and hyphens")
	}

	now := s.now()
	tenant := &models.Tenant{
		ID:            uuid.New(),
		Name:          req.Name,
		WorkspaceSlug: slug,
		IsActive:      true,
		IsFree:        req.IsFree,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.IsFree {
		tenant.SubscriptionStatus = models.TenantStatusActive
	} else {
		trialEnd := billing.TrialEnd(now, s.trialDays)
		tenant.SubscriptionStatus = models.TenantStatusTrial
		tenant.TrialEndsAt = &trialEnd
	}

	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *tenantService) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	return s.tenantRepo.GetByID(ctx, id)
}

func (s *tenantService) GetBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	if slug == "" {
		return nil, errors.New("workspace_url is required")
	}
	if tenant, err := s.cache.GetTenantBySlug(ctx, slug); err == nil {
		return tenant, nil
	}
	tenant, err := s.tenantRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if cacheErr := s.cache.SetTenantBySlug(ctx, tenant, tenantSlugCacheTTL); cacheErr != nil {
		log.Printf("WARN: failed to cache tenant %s: %v", slug, cacheErr)
	}
	return tenant, nil
}

func (s *tenantService) Update(ctx context.Context, req *UpdateTenantRequest) error {
	existing, err := s.tenantRepo.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}

	existing.Name = req.Name
	existing.WorkspaceSlug = req.WorkspaceSlug
	existing.TenantCode = req.TenantCode
	existing.IsFree = req.IsFree

	if err := s.tenantRepo.Update(ctx, existing); err != nil {
		return err
	}
	if cacheErr := s.cache.InvalidateTenant(ctx, existing.WorkspaceSlug); cacheErr != nil {
		log.Printf("WARN: failed to invalidate tenant cache: %v", cacheErr)
	}
	return nil
}

func (s *tenantService) List(ctx context.Context, limit, offset int) ([]*models.Tenant, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return s.tenantRepo.List(ctx, limit, offset)
}

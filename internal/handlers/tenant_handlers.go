package handlers

import (
	"errors"
	"net/http"

	"fitops/internal/common"
	"fitops/internal/repositories"
	"fitops/internal/services"

	"github.com/labstack/echo/v4"
)

// TenantHandlers serves the tenant resolver plus the super-admin tenant
// console: overview, activation toggle, recovery activation and deletion.
type TenantHandlers struct {
	tenantService    services.TenantService
	lifecycleService services.LifecycleService
	userRepo         repositories.UserRepository
}

func NewTenantHandlers(tenantService services.TenantService, lifecycleService services.LifecycleService, userRepo repositories.UserRepository) *TenantHandlers {
	return &TenantHandlers{
		tenantService:    tenantService,
		lifecycleService: lifecycleService,
		userRepo:         userRepo,
	}
}

// Resolve maps a workspace slug to its tenant. Public; used before login to
// route the caller to the right workspace.
func (h *TenantHandlers) Resolve(c echo.Context) error {
	ctx := c.Request().Context()

	slug := c.QueryParam("workspace_url")
	if slug == "" {
		return common.SendValidationError(c, "workspace_url", "workspace_url is required")
	}

	tenant, err := h.tenantService.GetBySlug(ctx, slug)
	if err != nil {
		return common.SendNotFoundError(c, "Workspace")
	}
	if !tenant.IsActive {
		return common.SendForbiddenError(c)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":            tenant.ID,
		"name":          tenant.Name,
		"workspace_url": tenant.WorkspaceSlug,
	})
}

// Overview returns the admin subscription view: one row per tenant with
// derived lifecycle state, subscription, countdowns and pending work.
func (h *TenantHandlers) Overview(c echo.Context) error {
	ctx := c.Request().Context()

	overview, err := h.lifecycleService.Overview(ctx)
	if err != nil {
		return common.SendServerError(c, "Failed to load tenant overview")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"tenants": overview})
}

// TenantAdmin returns contact details of the tenant's primary admin, the
// oldest admin user of the tenant.
func (h *TenantHandlers) TenantAdmin(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, err := common.ValidateUUID(c.Param("id"), "tenant id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	admin, err := h.userRepo.GetTenantAdmin(ctx, tenantID)
	if err != nil {
		return common.SendNotFoundError(c, "Tenant admin")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"admin": map[string]interface{}{
			"id":    admin.ID,
			"name":  admin.Name,
			"email": admin.Email,
			"phone": admin.Phone,
		},
	})
}

// ToggleActiveRequest represents the activation toggle payload
type ToggleActiveRequest struct {
	IsActive bool `json:"isActive"`
}

// ToggleActive flips a tenant's is_active flag without touching its
// subscription or trial fields.
func (h *TenantHandlers) ToggleActive(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, err := common.ValidateUUID(c.Param("id"), "tenant id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var req ToggleActiveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	if err := h.lifecycleService.ToggleActive(ctx, tenantID, req.IsActive); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update tenant"})
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// Delete destroys a tenant and everything it owns. The caller must pass
// ?confirm=DELETE; anything else is refused before any write.
func (h *TenantHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, err := common.ValidateUUID(c.Param("id"), "tenant id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	confirmation := c.QueryParam("confirm")
	if err := h.lifecycleService.DeleteTenant(ctx, tenantID, confirmation); err != nil {
		if errors.Is(err, services.ErrDeleteNotConfirmed) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Type DELETE to confirm tenant deletion"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete tenant"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Tenant deleted"})
}

// Activate is the recovery path for tenants stuck without a subscription
// row: it writes a default-plan subscription anchored at now and activates
// the tenant. No payment proof involved.
func (h *TenantHandlers) Activate(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	tenantID, err := common.ValidateUUID(c.Param("id"), "tenant id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	subscription, err := h.lifecycleService.ActivateTenant(ctx, tenantID, scope.UserID)
	if err != nil {
		return common.SendServerError(c, "Failed to activate tenant")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"subscription": subscription})
}

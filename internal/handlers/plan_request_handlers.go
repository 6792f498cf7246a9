package handlers

import (
	"errors"
	"net/http"

	"fitops/internal/common"
	"fitops/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PlanRequestHandlers covers plan-change requests: tenants submit them, the
// super admin applies or rejects them.
type PlanRequestHandlers struct {
	planRequestService services.PlanRequestService
	lifecycleService   services.LifecycleService
}

func NewPlanRequestHandlers(planRequestService services.PlanRequestService, lifecycleService services.LifecycleService) *PlanRequestHandlers {
	return &PlanRequestHandlers{
		planRequestService: planRequestService,
		lifecycleService:   lifecycleService,
	}
}

// Submit records a plan-change request for the caller's tenant.
func (h *PlanRequestHandlers) Submit(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.SubmitPlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	req.TenantID = scope.TenantID

	request, err := h.planRequestService.Submit(ctx, &req)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, request)
}

// List returns the caller's tenant's plan requests.
func (h *PlanRequestHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	limit, offset := paginationFromQuery(c)
	requests, err := h.planRequestService.ListByTenant(ctx, scope.TenantID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list plan requests")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"plan_requests": requests})
}

// ApplyRequest represents the admin apply payload
type ApplyRequest struct {
	TenantID string  `json:"tenant_id"`
	ProofID  *string `json:"proofId"`
	Reason   string  `json:"reason"`
}

// Apply honors the requested plan's terms: approves the linked proof when
// given, writes the subscription and activates the tenant.
func (h *PlanRequestHandlers) Apply(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	requestID, err := common.ValidateUUID(c.Param("id"), "request id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req ApplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	tenantID, err := common.ValidateUUID(req.TenantID, "tenant_id")
	if err != nil {
		return common.SendValidationError(c, "tenant_id", err.Error())
	}

	var proofID *uuid.UUID
	if req.ProofID != nil && *req.ProofID != "" {
		parsed, err := common.ValidateUUID(*req.ProofID, "proofId")
		if err != nil {
			return common.SendValidationError(c, "proofId", err.Error())
		}
		proofID = &parsed
	}

	subscription, err := h.lifecycleService.ApplyPlanFromRequest(ctx, tenantID, requestID, proofID, scope.UserID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRequestAlreadyResolved):
			return c.JSON(http.StatusConflict, map[string]string{"error": "Plan request has already been resolved"})
		case errors.Is(err, services.ErrProofAlreadyReviewed):
			return c.JSON(http.StatusConflict, map[string]string{"error": "Payment proof has already been reviewed"})
		}
		return common.SendServerError(c, "Failed to apply plan request")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"subscription": subscription})
}

// Reject resolves a pending plan request with the operator's reason.
func (h *PlanRequestHandlers) Reject(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	requestID, err := common.ValidateUUID(c.Param("id"), "request id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req ApplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	tenantID, err := common.ValidateUUID(req.TenantID, "tenant_id")
	if err != nil {
		return common.SendValidationError(c, "tenant_id", err.Error())
	}

	if err := h.planRequestService.Reject(ctx, tenantID, requestID, scope.UserID, req.Reason); err != nil {
		switch {
		case errors.Is(err, services.ErrRejectionReasonRequired):
			return common.SendValidationError(c, "reason", "rejection reason is required")
		case errors.Is(err, services.ErrRequestAlreadyResolved):
			return c.JSON(http.StatusConflict, map[string]string{"error": "Plan request has already been resolved"})
		}
		return common.SendServerError(c, "Failed to reject plan request")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Plan request rejected"})
}

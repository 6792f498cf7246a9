package handlers

import (
	"errors"
	"net/http"

	"fitops/internal/common"
	"fitops/internal/services"

	"github.com/labstack/echo/v4"
)

// PaymentProofHandlers covers both sides of payment review: tenants submit
// proofs and attach evidence files, the super admin approves or rejects them.
type PaymentProofHandlers struct {
	proofService     services.PaymentProofService
	lifecycleService services.LifecycleService
}

func NewPaymentProofHandlers(proofService services.PaymentProofService, lifecycleService services.LifecycleService) *PaymentProofHandlers {
	return &PaymentProofHandlers{
		proofService:     proofService,
		lifecycleService: lifecycleService,
	}
}

// Submit records a new payment proof for the caller's tenant.
func (h *PaymentProofHandlers) Submit(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.SubmitProofRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	req.TenantID = scope.TenantID

	proof, err := h.proofService.Submit(ctx, &req)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, proof)
}

// Upload attaches the evidence file to a pending proof and returns a
// presigned URL for it.
func (h *PaymentProofHandlers) Upload(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	proofID, err := common.ValidateUUID(c.Param("id"), "proof id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return common.SendValidationError(c, "file", "file is required")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read uploaded file")
	}
	defer src.Close()

	url, err := h.proofService.AttachFile(ctx, scope.TenantID, proofID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), src, fileHeader.Size)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"proof_url": url})
}

// List returns the caller's tenant's payment proofs.
func (h *PaymentProofHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	limit, offset := paginationFromQuery(c)
	proofs, err := h.proofService.ListByTenant(ctx, scope.TenantID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list payment proofs")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"payment_proofs": proofs})
}

// ListPending returns pending proofs across all tenants for review.
func (h *PaymentProofHandlers) ListPending(c echo.Context) error {
	ctx := c.Request().Context()

	proofs, err := h.proofService.ListPending(ctx)
	if err != nil {
		return common.SendServerError(c, "Failed to list pending proofs")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"payment_proofs": proofs})
}

// ReviewRequest represents the admin review payload
type ReviewRequest struct {
	TenantID string `json:"tenant_id"`
	Reason   string `json:"reason"`
}

// Approve marks the proof approved and activates the tenant on the default
// annual plan.
func (h *PaymentProofHandlers) Approve(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	proofID, err := common.ValidateUUID(c.Param("id"), "proof id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	tenantID, err := common.ValidateUUID(req.TenantID, "tenant_id")
	if err != nil {
		return common.SendValidationError(c, "tenant_id", err.Error())
	}

	subscription, err := h.lifecycleService.ApprovePayment(ctx, tenantID, proofID, scope.UserID)
	if err != nil {
		if errors.Is(err, services.ErrProofAlreadyReviewed) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "Payment proof has already been reviewed"})
		}
		return common.SendServerError(c, "Failed to approve payment")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"subscription": subscription})
}

// Reject marks the proof rejected with the operator's reason.
func (h *PaymentProofHandlers) Reject(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	proofID, err := common.ValidateUUID(c.Param("id"), "proof id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	tenantID, err := common.ValidateUUID(req.TenantID, "tenant_id")
	if err != nil {
		return common.SendValidationError(c, "tenant_id", err.Error())
	}

	if err := h.lifecycleService.RejectPayment(ctx, tenantID, proofID, scope.UserID, req.Reason); err != nil {
		switch {
		case errors.Is(err, services.ErrRejectionReasonRequired):
			return common.SendValidationError(c, "reason", "rejection reason is required")
		case errors.Is(err, services.ErrProofAlreadyReviewed):
			return c.JSON(http.StatusConflict, map[string]string{"error": "Payment proof has already been reviewed"})
		}
		return common.SendServerError(c, "Failed to reject payment")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Payment proof rejected"})
}

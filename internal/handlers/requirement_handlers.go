package handlers

import (
	"net/http"

	"fitops/internal/common"
	"fitops/internal/services"

	"github.com/labstack/echo/v4"
)

// RequirementHandlers handles part-requirement HTTP requests
type RequirementHandlers struct {
	requirementService services.RequirementService
}

func NewRequirementHandlers(requirementService services.RequirementService) *RequirementHandlers {
	return &RequirementHandlers{requirementService: requirementService}
}

func (h *RequirementHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.CreateRequirementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	req.TenantID = scope.TenantID

	requirement, err := h.requirementService.Create(ctx, &req)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, requirement)
}

func (h *RequirementHandlers) Get(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "requirement id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	requirement, err := h.requirementService.GetByID(ctx, scope.TenantID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Requirement")
	}
	return c.JSON(http.StatusOK, requirement)
}

func (h *RequirementHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	limit, offset := paginationFromQuery(c)
	requirements, err := h.requirementService.List(ctx, scope.TenantID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list requirements")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"requirements": requirements})
}

func (h *RequirementHandlers) Update(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "requirement id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	requirement, err := h.requirementService.GetByID(ctx, scope.TenantID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Requirement")
	}
	if err := c.Bind(requirement); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	requirement.ID = id
	requirement.TenantID = scope.TenantID

	if err := h.requirementService.Update(ctx, requirement); err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, requirement)
}

func (h *RequirementHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "requirement id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.requirementService.Delete(ctx, scope.TenantID, id); err != nil {
		return common.SendServerError(c, "Failed to delete requirement")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Requirement deleted"})
}

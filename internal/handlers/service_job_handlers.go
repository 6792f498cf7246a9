package handlers

import (
	"net/http"

	"fitops/internal/common"
	"fitops/internal/models"
	"fitops/internal/services"

	"github.com/labstack/echo/v4"
)

// ServiceJobHandlers handles accessory-installation job HTTP requests
type ServiceJobHandlers struct {
	jobService services.ServiceJobService
}

func NewServiceJobHandlers(jobService services.ServiceJobService) *ServiceJobHandlers {
	return &ServiceJobHandlers{jobService: jobService}
}

func (h *ServiceJobHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.CreateJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	req.TenantID = scope.TenantID

	job, err := h.jobService.Create(ctx, &req)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, job)
}

func (h *ServiceJobHandlers) Get(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "job id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	job, err := h.jobService.GetByID(ctx, scope.TenantID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Service job")
	}
	return c.JSON(http.StatusOK, job)
}

// List returns the tenant's jobs; ?vehicle_id= narrows to one vehicle.
func (h *ServiceJobHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	if vehicleParam := c.QueryParam("vehicle_id"); vehicleParam != "" {
		vehicleID, err := common.ValidateUUID(vehicleParam, "vehicle_id")
		if err != nil {
			return common.SendValidationError(c, "vehicle_id", err.Error())
		}
		jobs, err := h.jobService.ListByVehicle(ctx, scope.TenantID, vehicleID)
		if err != nil {
			return common.SendServerError(c, "Failed to list service jobs")
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"service_jobs": jobs})
	}

	limit, offset := paginationFromQuery(c)
	jobs, err := h.jobService.List(ctx, scope.TenantID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list service jobs")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"service_jobs": jobs})
}

func (h *ServiceJobHandlers) Update(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "job id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	job, err := h.jobService.GetByID(ctx, scope.TenantID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Service job")
	}
	if err := c.Bind(job); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	job.ID = id
	job.TenantID = scope.TenantID

	if err := h.jobService.Update(ctx, job); err != nil {
		return common.SendServerError(c, "Failed to update service job")
	}
	return c.JSON(http.StatusOK, job)
}

// StatusRequest represents the workflow transition payload
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus moves a job along received -> in_progress -> ready ->
// delivered. Owner notifications fire on ready and delivered.
func (h *ServiceJobHandlers) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "job id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	job, err := h.jobService.UpdateStatus(ctx, scope.TenantID, id, models.JobStatus(req.Status))
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusOK, job)
}

func (h *ServiceJobHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "job id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.jobService.Delete(ctx, scope.TenantID, id); err != nil {
		return common.SendServerError(c, "Failed to delete service job")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Service job deleted"})
}

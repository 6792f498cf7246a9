package handlers

import (
	"net/http"

	"fitops/internal/common"
	"fitops/internal/services"

	"github.com/labstack/echo/v4"
)

// VehicleHandlers handles vehicle intake HTTP requests
type VehicleHandlers struct {
	vehicleService services.VehicleService
}

func NewVehicleHandlers(vehicleService services.VehicleService) *VehicleHandlers {
	return &VehicleHandlers{vehicleService: vehicleService}
}

// Create registers a vehicle intake and notifies the owner.
func (h *VehicleHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.CreateVehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	req.TenantID = scope.TenantID

	vehicle, err := h.vehicleService.Create(ctx, &req)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, vehicle)
}

func (h *VehicleHandlers) Get(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "vehicle id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	vehicle, err := h.vehicleService.GetByID(ctx, scope.TenantID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Vehicle")
	}
	return c.JSON(http.StatusOK, vehicle)
}

// List returns the tenant's vehicles; ?plate= switches to plate search.
func (h *VehicleHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	limit, offset := paginationFromQuery(c)
	if plate := c.QueryParam("plate"); plate != "" {
		vehicles, err := h.vehicleService.Search(ctx, scope.TenantID, plate, limit, offset)
		if err != nil {
			return common.SendServerError(c, "Failed to search vehicles")
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"vehicles": vehicles})
	}

	vehicles, err := h.vehicleService.List(ctx, scope.TenantID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list vehicles")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"vehicles": vehicles})
}

func (h *VehicleHandlers) Update(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "vehicle id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	vehicle, err := h.vehicleService.GetByID(ctx, scope.TenantID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Vehicle")
	}
	if err := c.Bind(vehicle); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	vehicle.ID = id
	vehicle.TenantID = scope.TenantID

	if err := h.vehicleService.Update(ctx, vehicle); err != nil {
		return common.SendServerError(c, "Failed to update vehicle")
	}
	return c.JSON(http.StatusOK, vehicle)
}

// Deliver marks the vehicle as handed back to its owner.
func (h *VehicleHandlers) Deliver(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "vehicle id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	vehicle, err := h.vehicleService.MarkDelivered(ctx, scope.TenantID, id)
	if err != nil {
		return common.SendServerError(c, "Failed to mark vehicle delivered")
	}
	return c.JSON(http.StatusOK, vehicle)
}

func (h *VehicleHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "vehicle id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.vehicleService.Delete(ctx, scope.TenantID, id); err != nil {
		return common.SendServerError(c, "Failed to delete vehicle")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Vehicle deleted"})
}

package handlers

import (
	"net/http"

	"fitops/internal/common"
	"fitops/internal/services"

	"github.com/labstack/echo/v4"
)

// CallLogHandlers handles customer follow-up call HTTP requests
type CallLogHandlers struct {
	callLogService services.CallLogService
}

func NewCallLogHandlers(callLogService services.CallLogService) *CallLogHandlers {
	return &CallLogHandlers{callLogService: callLogService}
}

func (h *CallLogHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.CreateCallLogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	req.TenantID = scope.TenantID

	callLog, err := h.callLogService.Create(ctx, &req)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	return c.JSON(http.StatusCreated, callLog)
}

func (h *CallLogHandlers) Get(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "call log id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	callLog, err := h.callLogService.GetByID(ctx, scope.TenantID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Call log")
	}
	return c.JSON(http.StatusOK, callLog)
}

// List returns the tenant's call logs; ?due=true narrows to follow-ups due.
func (h *CallLogHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	if c.QueryParam("due") == "true" {
		callLogs, err := h.callLogService.ListDue(ctx, scope.TenantID)
		if err != nil {
			return common.SendServerError(c, "Failed to list due call logs")
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"call_logs": callLogs})
	}

	limit, offset := paginationFromQuery(c)
	callLogs, err := h.callLogService.List(ctx, scope.TenantID, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list call logs")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"call_logs": callLogs})
}

func (h *CallLogHandlers) Update(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "call log id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	callLog, err := h.callLogService.GetByID(ctx, scope.TenantID, id)
	if err != nil {
		return common.SendNotFoundError(c, "Call log")
	}
	if err := c.Bind(callLog); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	callLog.ID = id
	callLog.TenantID = scope.TenantID

	if err := h.callLogService.Update(ctx, callLog); err != nil {
		return common.SendServerError(c, "Failed to update call log")
	}
	return c.JSON(http.StatusOK, callLog)
}

func (h *CallLogHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	scope, ok := common.ScopeFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ValidateUUID(c.Param("id"), "call log id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.callLogService.Delete(ctx, scope.TenantID, id); err != nil {
		return common.SendServerError(c, "Failed to delete call log")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Call log deleted"})
}

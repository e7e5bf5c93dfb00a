package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"launch-tms/internal/dto"
	"launch-tms/internal/services"
	"launch-tms/pkg/utils"
)

type DriverController struct {
	driverService services.DriverServiceInterface
	logger        *zap.Logger
}

func NewDriverController(service services.DriverServiceInterface, logger *zap.Logger) *DriverController {
	return &DriverController{driverService: service, logger: logger}
}

func (c *DriverController) GetDrivers(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	drivers, total, err := c.driverService.GetDrivers(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, drivers, "Drivers fetched successfully", http.StatusOK, total)
}

func (c *DriverController) FindDriver(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	driver, err := c.driverService.FindDriver(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, driver, "Driver fetched successfully", http.StatusOK)
}

func (c *DriverController) CreateDriver(ctx echo.Context) error {
	var payload dto.CreateDriverDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "invalid request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	driver, err := c.driverService.CreateDriver(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, driver, "Driver created successfully", http.StatusCreated)
}

func (c *DriverController) UpdateDriver(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateDriverDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "invalid request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	driver, err := c.driverService.UpdateDriver(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, driver, "Driver updated successfully", http.StatusOK)
}

func (c *DriverController) DeleteDriver(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.driverService.DeleteDriver(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Driver deleted successfully", http.StatusOK)
}

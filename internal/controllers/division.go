package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"launch-tms/internal/dto"
	"launch-tms/internal/services"
	"launch-tms/pkg/utils"
)

type DivisionController struct {
	divisionService services.DivisionServiceInterface
	logger          *zap.Logger
}

func NewDivisionController(service services.DivisionServiceInterface, logger *zap.Logger) *DivisionController {
	return &DivisionController{divisionService: service, logger: logger}
}

func (c *DivisionController) GetDivisions(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	divisions, total, err := c.divisionService.GetDivisions(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, divisions, "Divisions fetched successfully", http.StatusOK, total)
}

func (c *DivisionController) FindDivision(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	division, err := c.divisionService.FindDivision(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, division, "Division fetched successfully", http.StatusOK)
}

func (c *DivisionController) CreateDivision(ctx echo.Context) error {
	var payload dto.CreateDivisionDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "invalid request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	division, err := c.divisionService.CreateDivision(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, division, "Division created successfully", http.StatusCreated)
}

func (c *DivisionController) UpdateDivision(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateDivisionDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "invalid request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	division, err := c.divisionService.UpdateDivision(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, division, "Division updated successfully", http.StatusOK)
}

func (c *DivisionController) DeleteDivision(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.divisionService.DeleteDivision(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Division deleted successfully", http.StatusOK)
}

package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"launch-tms/internal/dto"
	"launch-tms/internal/services"
	"launch-tms/pkg/utils"
)

type TerminalController struct {
	terminalService services.TerminalServiceInterface
	logger          *zap.Logger
}

func NewTerminalController(service services.TerminalServiceInterface, logger *zap.Logger) *TerminalController {
	return &TerminalController{terminalService: service, logger: logger}
}

func (c *TerminalController) GetTerminals(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	terminals, total, err := c.terminalService.GetTerminals(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, terminals, "Terminals fetched successfully", http.StatusOK, total)
}

func (c *TerminalController) FindTerminal(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	terminal, err := c.terminalService.FindTerminal(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, terminal, "Terminal fetched successfully", http.StatusOK)
}

func (c *TerminalController) CreateTerminal(ctx echo.Context) error {
	var payload dto.CreateTerminalDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "invalid request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	terminal, err := c.terminalService.CreateTerminal(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, terminal, "Terminal created successfully", http.StatusCreated)
}

func (c *TerminalController) UpdateTerminal(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateTerminalDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "invalid request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	terminal, err := c.terminalService.UpdateTerminal(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, terminal, "Terminal updated successfully", http.StatusOK)
}

func (c *TerminalController) DeleteTerminal(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.terminalService.DeleteTerminal(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Terminal deleted successfully", http.StatusOK)
}

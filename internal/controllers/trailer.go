package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"launch-tms/internal/dto"
	"launch-tms/internal/services"
	"launch-tms/pkg/utils"
)

type TrailerController struct {
	trailerService services.TrailerServiceInterface
	logger         *zap.Logger
}

func NewTrailerController(service services.TrailerServiceInterface, logger *zap.Logger) *TrailerController {
	return &TrailerController{trailerService: service, logger: logger}
}

func (c *TrailerController) GetTrailers(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	trailers, total, err := c.trailerService.GetTrailers(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, trailers, "Trailers fetched successfully", http.StatusOK, total)
}

func (c *TrailerController) FindTrailer(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	trailer, err := c.trailerService.FindTrailer(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, trailer, "Trailer fetched successfully", http.StatusOK)
}

func (c *TrailerController) CreateTrailer(ctx echo.Context) error {
	var payload dto.CreateTrailerDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "invalid request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	trailer, err := c.trailerService.CreateTrailer(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, trailer, "Trailer created successfully", http.StatusCreated)
}

func (c *TrailerController) UpdateTrailer(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateTrailerDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "invalid request body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	trailer, err := c.trailerService.UpdateTrailer(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, trailer, "Trailer updated successfully", http.StatusOK)
}

func (c *TrailerController) DeleteTrailer(ctx echo.Context) error {
	id, err := parseUUIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.trailerService.DeleteTrailer(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Trailer deleted successfully", http.StatusOK)
}

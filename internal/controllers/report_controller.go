package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"launch-tms/internal/dto"
	"launch-tms/internal/services"
	"launch-tms/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(service services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: service, logger: logger}
}

var fleetSummaryHeaders = []interface{}{
	"Terminal ID", "Terminal", "Drivers", "Trucks", "Trailers", "Active Loads",
}

// GetFleetSummary returns per-terminal fleet counts, as JSON or as a
// spreadsheet when format=xlsx.
func (c *ReportController) GetFleetSummary(ctx echo.Context) error {
	summary, err := c.reportService.GetFleetSummary(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if ctx.QueryParam("format") == "xlsx" {
		return c.respondWithXLSX(ctx, summary)
	}
	return utils.SuccessResponse(ctx, summary, "Fleet summary generated successfully", http.StatusOK)
}

func (c *ReportController) GetLoadActivity(ctx echo.Context) error {
	activity, err := c.reportService.GetLoadActivity(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, activity, "Load activity generated successfully", http.StatusOK)
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, data []dto.FleetSummaryDTO) error {
	f := excelize.NewFile()
	sheet := "Fleet Summary"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &fleetSummaryHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "F1", style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{item.TerminalID, item.TerminalName, item.Drivers, item.Trucks, item.Trailers, item.ActiveLoads}
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "A", "A", 38)
	f.SetColWidth(sheet, "B", "B", 30)

	fileName := fmt.Sprintf("fleet_summary_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}

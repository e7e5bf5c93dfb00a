package routes

import (
	"github.com/labstack/echo/v4"

	"launch-tms/internal/controllers"
)

func runReportRouter(g *echo.Group, ctrl *controllers.ReportController) {
	g.GET("/reports/fleet-summary", ctrl.GetFleetSummary)
	g.GET("/reports/load-activity", ctrl.GetLoadActivity)
}

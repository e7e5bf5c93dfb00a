package routes

import (
	"github.com/labstack/echo/v4"

	"launch-tms/internal/controllers"
)

func runTruckRouter(g *echo.Group, ctrl *controllers.TruckController) {
	g.GET("/trucks", ctrl.GetTrucks)
	g.GET("/trucks/:id", ctrl.FindTruck)
	g.POST("/trucks", ctrl.CreateTruck)
	g.PUT("/trucks/:id", ctrl.UpdateTruck)
	g.DELETE("/trucks/:id", ctrl.DeleteTruck)
	g.GET("/trucks/:id/maintenance-records", ctrl.GetMaintenanceRecords)
	g.POST("/trucks/:id/maintenance-records", ctrl.CreateMaintenanceRecord)
}

package routes

import (
	"github.com/labstack/echo/v4"

	"launch-tms/internal/controllers"
)

func runDriverRouter(g *echo.Group, ctrl *controllers.DriverController) {
	g.GET("/drivers", ctrl.GetDrivers)
	g.GET("/drivers/:id", ctrl.FindDriver)
	g.POST("/drivers", ctrl.CreateDriver)
	g.PUT("/drivers/:id", ctrl.UpdateDriver)
	g.DELETE("/drivers/:id", ctrl.DeleteDriver)
}

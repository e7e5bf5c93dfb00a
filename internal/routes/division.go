package routes

import (
	"github.com/labstack/echo/v4"

	"launch-tms/internal/controllers"
)

func runDivisionRouter(g *echo.Group, ctrl *controllers.DivisionController) {
	g.GET("/divisions", ctrl.GetDivisions)
	g.GET("/divisions/:id", ctrl.FindDivision)
	g.POST("/divisions", ctrl.CreateDivision)
	g.PUT("/divisions/:id", ctrl.UpdateDivision)
	g.DELETE("/divisions/:id", ctrl.DeleteDivision)
}

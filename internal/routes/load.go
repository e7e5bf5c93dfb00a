package routes

import (
	"github.com/labstack/echo/v4"

	"launch-tms/internal/controllers"
)

func runLoadRouter(g *echo.Group, ctrl *controllers.LoadController) {
	g.GET("/loads", ctrl.GetLoads)
	g.GET("/loads/:id", ctrl.FindLoad)
	g.POST("/loads", ctrl.CreateLoad)
	g.PUT("/loads/:id", ctrl.UpdateLoad)
	g.DELETE("/loads/:id", ctrl.DeleteLoad)
	g.GET("/loads/:id/events", ctrl.GetLoadEvents)
	g.POST("/loads/:id/events", ctrl.CreateLoadEvent)
}

package routes

import (
	"github.com/labstack/echo/v4"

	"launch-tms/internal/controllers"
)

func runTerminalRouter(g *echo.Group, ctrl *controllers.TerminalController) {
	g.GET("/terminals", ctrl.GetTerminals)
	g.GET("/terminals/:id", ctrl.FindTerminal)
	g.POST("/terminals", ctrl.CreateTerminal)
	g.PUT("/terminals/:id", ctrl.UpdateTerminal)
	g.DELETE("/terminals/:id", ctrl.DeleteTerminal)
}

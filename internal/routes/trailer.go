package routes

import (
	"github.com/labstack/echo/v4"

	"launch-tms/internal/controllers"
)

func runTrailerRouter(g *echo.Group, ctrl *controllers.TrailerController) {
	g.GET("/trailers", ctrl.GetTrailers)
	g.GET("/trailers/:id", ctrl.FindTrailer)
	g.POST("/trailers", ctrl.CreateTrailer)
	g.PUT("/trailers/:id", ctrl.UpdateTrailer)
	g.DELETE("/trailers/:id", ctrl.DeleteTrailer)
}

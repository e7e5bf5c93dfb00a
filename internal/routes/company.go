package routes

import (
	"github.com/labstack/echo/v4"

	"launch-tms/internal/controllers"
)

func runCompanyRouter(g *echo.Group, ctrl *controllers.CompanyController) {
	g.GET("/companies", ctrl.GetCompanies)
	g.GET("/companies/:id", ctrl.FindCompany)
	g.POST("/companies", ctrl.CreateCompany)
	g.PUT("/companies/:id", ctrl.UpdateCompany)
	g.DELETE("/companies/:id", ctrl.DeleteCompany)
}

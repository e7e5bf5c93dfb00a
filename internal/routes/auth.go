package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"launch-tms/internal/controllers"
	"launch-tms/internal/services"
)

func runAuthRouter(api, secureGroup *echo.Group, authService services.AuthServiceInterface, logger *zap.Logger) {
	authCtrl := controllers.NewAuthController(authService, logger)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/refresh", authCtrl.Refresh)
		authGroup.POST("/logout", authCtrl.Logout)
	}
	secureGroup.GET("/auth/me", authCtrl.Me)
}

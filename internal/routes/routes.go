package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"launch-tms/internal/authz"
	"launch-tms/internal/controllers"
	"launch-tms/internal/repositories"
	"launch-tms/internal/services"
	"launch-tms/pkg/config"
	"launch-tms/pkg/middleware"
	"launch-tms/pkg/service"
)

// InitRouter wires repositories, services and controllers and registers
// every route group. All routes except /auth/login, /auth/refresh and
// /auth/logout sit behind the auth middleware.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	logger *zap.Logger,
	cfg *config.Config,
) {
	api := e.Group("/api")

	resolver := authz.NewResolver(logger)

	companyRepo := repositories.NewCompanyRepository(dbConn, logger)
	divisionRepo := repositories.NewDivisionRepository(dbConn, logger)
	departmentRepo := repositories.NewDepartmentRepository(dbConn, logger)
	terminalRepo := repositories.NewTerminalRepository(dbConn, logger)
	userRepo := repositories.NewUserRepository(dbConn, logger)
	driverRepo := repositories.NewDriverRepository(dbConn, logger)
	truckRepo := repositories.NewTruckRepository(dbConn, logger)
	trailerRepo := repositories.NewTrailerRepository(dbConn, logger)
	loadRepo := repositories.NewLoadRepository(dbConn, logger)
	reportRepo := repositories.NewReportRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	placement := services.NewPlacementResolver(divisionRepo, departmentRepo, terminalRepo)

	companyService := services.NewCompanyService(companyRepo, resolver, logger)
	divisionService := services.NewDivisionService(divisionRepo, resolver, logger)
	departmentService := services.NewDepartmentService(departmentRepo, divisionRepo, resolver, logger)
	terminalService := services.NewTerminalService(terminalRepo, departmentRepo, resolver, logger)
	userService := services.NewUserService(userRepo, placement, resolver, logger)
	driverService := services.NewDriverService(driverRepo, placement, resolver, logger)
	truckService := services.NewTruckService(truckRepo, placement, resolver, logger)
	trailerService := services.NewTrailerService(trailerRepo, placement, resolver, logger)
	loadService := services.NewLoadService(loadRepo, placement, resolver, logger)
	reportService := services.NewReportService(reportRepo, resolver, logger)
	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, &cfg.Auth, logger)

	authMW := middleware.NewAuthMiddleware(jwtSvc, userRepo, logger)
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, authService, logger)
	runCompanyRouter(secureGroup, controllers.NewCompanyController(companyService, logger))
	runDivisionRouter(secureGroup, controllers.NewDivisionController(divisionService, logger))
	runDepartmentRouter(secureGroup, controllers.NewDepartmentController(departmentService, logger))
	runTerminalRouter(secureGroup, controllers.NewTerminalController(terminalService, logger))
	runUserRouter(secureGroup, controllers.NewUserController(userService, logger))
	runDriverRouter(secureGroup, controllers.NewDriverController(driverService, logger))
	runTruckRouter(secureGroup, controllers.NewTruckController(truckService, logger))
	runTrailerRouter(secureGroup, controllers.NewTrailerController(trailerService, logger))
	runLoadRouter(secureGroup, controllers.NewLoadController(loadService, logger))
	runReportRouter(secureGroup, controllers.NewReportController(reportService, logger))

	logger.Info("router initialized")
}

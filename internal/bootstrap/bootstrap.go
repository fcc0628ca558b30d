package bootstrap

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/planboard/planboard/internal/app/controllers"
	appMigrations "github.com/planboard/planboard/internal/app/migrations"
	appRepos "github.com/planboard/planboard/internal/app/repositories"
	appRoutes "github.com/planboard/planboard/internal/app/routes"
	appServices "github.com/planboard/planboard/internal/app/services"
	"github.com/planboard/planboard/internal/catalog"
	"github.com/planboard/planboard/internal/config"
	"github.com/planboard/planboard/internal/db"
	appMiddleware "github.com/planboard/planboard/internal/middleware"
	pkgAuth "github.com/planboard/planboard/internal/pkg/auth"
	"github.com/planboard/planboard/internal/pkg/helpers"
	"github.com/planboard/planboard/internal/pkg/logger"
	"github.com/planboard/planboard/internal/plan"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Catalog           *catalog.Catalog
	AuthService       *appServices.AuthService
	PlanService       *appServices.PlanService
	AuthController    *appControllers.AuthController
	CatalogController *appControllers.CatalogController
	PlanController    *appControllers.PlanController
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return dbPool, nil
}

// LoadCatalog reads the course catalog dataset from disk.
func LoadCatalog(cfg *config.Config, lgr zerolog.Logger) (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		lgr.Error().Err(err).Str("path", cfg.Catalog.Path).Msg("Failed to load course catalog")
		return nil, fmt.Errorf("failed to load course catalog: %w", err)
	}
	lgr.Info().Int("courses", cat.Size()).Msg("Course catalog loaded")
	return cat, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, cat *catalog.Catalog, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Catalog: cat, Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)

	limits := plan.Limits{
		MaxYears:           cfg.Plan.MaxYears,
		MaxUnitsPerQuarter: cfg.Plan.MaxUnitsPerQuarter,
	}
	deps.PlanService = appServices.NewPlanService(deps.Repos.PlanRepository, cat, limits, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.CatalogController = appControllers.NewCatalogController(cat)
	deps.PlanController = appControllers.NewPlanController(deps.PlanService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CatalogController,
		deps.PlanController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}

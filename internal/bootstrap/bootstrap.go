package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/camnote/internal/app/auth"
	appControllers "github.com/yigit/camnote/internal/app/controllers"
	"github.com/yigit/camnote/internal/app/identity"
	appMigrations "github.com/yigit/camnote/internal/app/migrations"
	appRepos "github.com/yigit/camnote/internal/app/repositories"
	appRoutes "github.com/yigit/camnote/internal/app/routes"
	appServices "github.com/yigit/camnote/internal/app/services"
	"github.com/yigit/camnote/internal/config"
	"github.com/yigit/camnote/internal/db"
	appMiddleware "github.com/yigit/camnote/internal/middleware"
	pkgAuth "github.com/yigit/camnote/internal/pkg/auth"
	"github.com/yigit/camnote/internal/pkg/email"
	"github.com/yigit/camnote/internal/pkg/helpers"
	"github.com/yigit/camnote/internal/pkg/logger"
	"github.com/yigit/camnote/internal/pkg/websocket"
	"github.com/yigit/camnote/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	Provider       *identity.LocalProvider
	Mailer         *email.EmailServiceImpl
	AuthzService   *appAuth.AuthorizationService
	AuthMiddleware *appMiddleware.AuthMiddleware

	AuthService         appServices.AuthService
	VerificationService appServices.VerificationService
	DepartmentService   appServices.DepartmentService
	ContentService      appServices.ContentService
	ManageService       appServices.ManageService
	FeedbackService     appServices.FeedbackService
	UserService         appServices.UserService

	Handlers appRoutes.Handlers

	Hub          *websocket.Hub
	SessionRelay *websocket.SessionRelay
	Logger       zerolog.Logger
}

// LoadConfigAndSetupLogger loads .env, the configuration file and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		logger.Warn().Err(err).Msg("Failed to load .env file")
	}

	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	dbPool, err := db.Connect(cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		dbPool.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		dbPool.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool appRepos.DBTX, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Provider = identity.NewLocalProvider(
		deps.Repos.AccountRepository,
		deps.Repos.SessionRepository,
		deps.JWTService,
		identity.LocalConfig{AdminEmail: cfg.Portal.AdminEmail},
	)

	deps.Mailer = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	}, lgr)
	if !deps.Mailer.Configured() {
		lgr.Warn().Msg("SMTP is not configured, feedback response emails are disabled")
	}

	location := helpers.LoadLocation(cfg.Portal.Timezone)

	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos.FeedbackRepository)

	deps.AuthService = appServices.NewAuthService(deps.Provider, deps.Repos.UserRepository, lgr)
	deps.VerificationService = appServices.NewVerificationService(deps.Repos.VerifiedStudentRepository, cfg.Portal.SchoolName)
	deps.DepartmentService = appServices.NewDepartmentService(cfg.Portal.Departments, deps.Repos.UserRepository, deps.Repos.SessionRepository)
	deps.ContentService = appServices.NewContentService(deps.Repos.ContentRepository, deps.Repos.UserRepository, appServices.ContentOptions{
		Location:              location,
		PopularLimit:          cfg.Portal.PopularLimit,
		NoticeMissingRedirect: cfg.Portal.NoticeMissingRedirect,
	})
	deps.ManageService = appServices.NewManageService(deps.Repos.ContentRepository, location)
	deps.FeedbackService = appServices.NewFeedbackService(deps.Repos.FeedbackRepository, deps.AuthzService, deps.Mailer, lgr)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Provider)

	deps.Hub = websocket.NewHub(lgr)
	deps.SessionRelay = websocket.NewSessionRelay(deps.Provider, deps.Hub, lgr)

	deps.Handlers = appRoutes.Handlers{
		Auth:         appControllers.NewAuthController(deps.AuthService, lgr),
		Verification: appControllers.NewVerificationController(deps.VerificationService),
		Department:   appControllers.NewDepartmentController(deps.DepartmentService),
		Content:      appControllers.NewContentController(deps.ContentService),
		Manage:       appControllers.NewManageController(deps.ManageService),
		Feedback:     appControllers.NewFeedbackController(deps.FeedbackService),
		User:         appControllers.NewUserController(deps.UserService),
		Navigation:   appControllers.NewNavigationController(),
		Session:      websocket.NewHandler(deps.Hub, lgr),
	}

	return deps, nil
}

// SeedDefaults creates the administrator account. Failures are logged only.
func SeedDefaults(ctx context.Context, cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) {
	admin := seed.AdminAccount{
		Email:    cfg.Portal.AdminEmail,
		Password: cfg.Portal.AdminPassword,
	}
	if err := seed.CreateDefaultData(ctx, deps.Provider, deps.Repos.UserRepository, admin, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// Pinger reports database reachability for the health endpoint
type Pinger interface {
	Ping(ctx context.Context) error
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, pinger Pinger, lgr zerolog.Logger) *gin.Engine {
	switch strings.ToLower(cfg.Server.Mode) {
	case "production":
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	appMiddleware.RegisterValidators()

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger())

	if cfg.Server.Mode != "production" {
		appRoutes.SetupSwagger(router)
	}
	v1 := appRoutes.SetupRouter(router, deps.Handlers, deps.AuthMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	v1.GET("/health", func(c *gin.Context) {
		if pinger != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := pinger.Ping(ctx); err != nil {
				lgr.Warn().Err(err).Msg("Health check failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
	})

	return router
}

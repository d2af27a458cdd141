package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/skillswap/internal/app/auth"
	appControllers "github.com/yigit/skillswap/internal/app/controllers"
	appMigrations "github.com/yigit/skillswap/internal/app/migrations"
	appRepos "github.com/yigit/skillswap/internal/app/repositories"
	"github.com/yigit/skillswap/internal/app/repositories/memory"
	appRoutes "github.com/yigit/skillswap/internal/app/routes"
	appServices "github.com/yigit/skillswap/internal/app/services"
	"github.com/yigit/skillswap/internal/config"
	"github.com/yigit/skillswap/internal/db"
	appMiddleware "github.com/yigit/skillswap/internal/middleware"
	pkgAuth "github.com/yigit/skillswap/internal/pkg/auth"
	"github.com/yigit/skillswap/internal/pkg/cache"
	"github.com/yigit/skillswap/internal/pkg/email"
	"github.com/yigit/skillswap/internal/pkg/helpers"
	"github.com/yigit/skillswap/internal/pkg/logger"
	"github.com/yigit/skillswap/internal/pkg/metrics"
	"github.com/yigit/skillswap/internal/pkg/validation"
	"github.com/yigit/skillswap/internal/seed"
)

// Store is the persistence layer picked by database.driver
type Store struct {
	Driver   string
	Repos    *appRepos.Repositories
	Postgres *db.PostgresDB // nil for the memory driver
}

// Close releases the connection pool, if any
func (s *Store) Close() {
	if s != nil && s.Postgres != nil {
		s.Postgres.Close()
	}
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store             *Store
	Cache             cache.Cache
	Metrics           *metrics.Manager
	JWTService        *pkgAuth.JWTService
	AuthzService      *appAuth.AuthorizationService
	AuthService       *appServices.AuthService
	LedgerService     appServices.LedgerService
	UserService       appServices.UserService
	SkillService      appServices.SkillService
	MentorshipService appServices.MentorshipService
	FeedbackService   appServices.FeedbackService
	RecommendService  appServices.RecommendationService
	RedeemService     appServices.RedeemService
	CommunityService  appServices.CommunityService
	ExperienceService appServices.ExperienceService
	StartupService    appServices.StartupService
	Controllers       *appRoutes.Controllers
	AuthMiddleware    *appMiddleware.AuthMiddleware
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

	lgr := logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: strings.EqualFold(cfg.Logging.Format, "text"),
	})
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the configured store. The postgres driver also applies migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*Store, error) {
	if cfg.Database.Driver == "memory" {
		lgr.Warn().Msg("Using the in-memory store; data is lost on restart")
		return &Store{Driver: "memory", Repos: memory.NewRepositories()}, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return &Store{
		Driver:   "postgres",
		Repos:    appRepos.NewRepositories(database),
		Postgres: database,
	}, nil
}

// BuildDependencies initializes application services and controllers on top of the store.
func BuildDependencies(cfg *config.Config, store *Store, lgr zerolog.Logger) (*Dependencies, error) {
	validation.RegisterRules()

	deps := &Dependencies{Store: store, Logger: lgr}
	repos := store.Repos
	policy := cfg.Ledger

	if cfg.Metrics.Enabled {
		deps.Metrics = metrics.NewManager()
	}

	deps.Cache = cache.NewNoop()
	if cfg.Cache.Enabled {
		redisCache, err := cache.NewRedisCache(cache.Config{Addr: cfg.Cache.Addr}, lgr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		deps.Cache = redisCache
		lgr.Info().Str("addr", cfg.Cache.Addr).Msg("Recommendation cache enabled")
	}

	mailer := email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		BaseURL:   cfg.SMTP.BaseURL,
	}, logger.WithComponent("email"))

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 168*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.AuthzService = appAuth.NewAuthorizationService(repos.Communities)

	deps.LedgerService = appServices.NewLedgerService(repos, deps.Metrics, logger.WithComponent("ledger"))
	deps.AuthService = appServices.NewAuthService(repos.Accounts, deps.JWTService, mailer, policy, logger.WithComponent("auth"))
	deps.UserService = appServices.NewUserService(repos.Accounts, repos.Skills, lgr)
	deps.SkillService = appServices.NewSkillService(repos.Skills, repos.Accounts, lgr)
	deps.MentorshipService = appServices.NewMentorshipService(repos, deps.LedgerService, policy, deps.Metrics, logger.WithComponent("mentorship"))
	deps.FeedbackService = appServices.NewFeedbackService(repos, deps.Metrics, lgr)
	deps.RecommendService = appServices.NewRecommendationService(
		repos.Accounts,
		repos.Skills,
		deps.Cache,
		helpers.ParseDuration(cfg.Cache.TTL, 5*time.Minute),
		deps.Metrics,
		logger.WithComponent("recommendation"),
	)
	deps.RedeemService = appServices.NewRedeemService(repos, deps.LedgerService, mailer, lgr)
	deps.CommunityService = appServices.NewCommunityService(repos, deps.LedgerService, deps.AuthzService, policy, lgr)
	deps.ExperienceService = appServices.NewExperienceService(repos, lgr)
	deps.StartupService = appServices.NewStartupService(repos, deps.LedgerService, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.AuthService)

	var pinger appControllers.Pinger
	if store.Postgres != nil {
		pinger = store.Postgres.Pool
	}

	deps.Controllers = &appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(deps.AuthService, deps.UserService, lgr),
		User:       appControllers.NewUserController(deps.UserService, deps.LedgerService, deps.RecommendService),
		Skill:      appControllers.NewSkillController(deps.SkillService),
		Request:    appControllers.NewRequestController(deps.MentorshipService, lgr),
		Feedback:   appControllers.NewFeedbackController(deps.FeedbackService),
		Redeem:     appControllers.NewRedeemController(deps.RedeemService, deps.LedgerService),
		Community:  appControllers.NewCommunityController(deps.CommunityService),
		Experience: appControllers.NewExperienceController(deps.ExperienceService),
		Startup:    appControllers.NewStartupController(deps.StartupService),
		Health:     appControllers.NewHealthController(store.Driver, pinger),
	}

	if cfg.Seed.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := seed.CreateDemoData(ctx, deps.AuthService, deps.SkillService, lgr); err != nil {
			// Seeding is a convenience; a failure does not stop startup.
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestLogger(logger.WithComponent("http")),
		appMiddleware.Metrics(deps.Metrics),
		appMiddleware.CORS(cfg.Server.AllowedOrigins),
	)

	appRoutes.SetupSwagger(router)
	if deps.Metrics != nil {
		router.GET(cfg.Metrics.Path, gin.WrapH(deps.Metrics.Handler()))
	}

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}

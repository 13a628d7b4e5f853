package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/tablevote/tablevote-backend/pkg/validator"

	"github.com/tablevote/tablevote-backend/internal/adapter/handler"
	"github.com/tablevote/tablevote-backend/internal/adapter/repository"
	"github.com/tablevote/tablevote-backend/internal/infrastructure/cache"
	"github.com/tablevote/tablevote-backend/internal/infrastructure/database"
	"github.com/tablevote/tablevote-backend/internal/infrastructure/external/foursquare"
	"github.com/tablevote/tablevote-backend/internal/infrastructure/external/overpass"
	"github.com/tablevote/tablevote-backend/internal/infrastructure/notify"
	"github.com/tablevote/tablevote-backend/internal/usecase/decision"
	groupUsecase "github.com/tablevote/tablevote-backend/internal/usecase/group"
	"github.com/tablevote/tablevote-backend/internal/usecase/recommend"
	"github.com/tablevote/tablevote-backend/pkg/config"
)

// @title           TableVote API
// @version         1.0
// @description     Group dining recommendation and consensus API: candidate sourcing, dietary filtering, swipe voting and outcome finalization

// @host      localhost:8080
// @BasePath  /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run sql-migrate only when explicitly enabled in config.
	// Production deployments should apply migrations from CI/CD instead.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("Automatic migrations are enabled in production. Disable DB_AUTO_MIGRATE or apply migrations from CI/CD.")
		}
		log.Println("🔄 Applying pending migrations (development only) ...")
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping automatic migrations; apply them with scripts/migrate.go in CI/CD/production")
	}

	// Initialize Redis: the dietary tag cache and the progress fan-out both
	// live there so multiple API instances see the same state. In-memory
	// fallbacks keep a single instance working without Redis.
	var tagCache cache.Store
	var notifier notify.ProgressNotifier
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		tagCache = cache.NewRedisStore(redisClient)
		notifier = notify.NewRedisNotifier(redisClient, logger)
	} else {
		log.Println("⚠️  Redis disabled; using in-memory cache and progress fan-out (single instance only)")
		tagCache = cache.NewMemoryStore()
		notifier = notify.NewMemoryNotifier()
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	groupRepo := repository.NewGroupRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	suggestionRepo := repository.NewSuggestionRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(db)
	candidateRepo := repository.NewCandidateRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	visitRepo := repository.NewVisitRepository(db)
	finalizationRepo := repository.NewFinalizationRepository(db)

	// Initialize external providers
	log.Println("🌐 Initializing place search provider...")
	placeClient := foursquare.NewClient(&cfg.Foursquare)
	log.Println("🗺️  Initializing dietary tag provider...")
	tagClient := overpass.NewClient(&cfg.Overpass)

	// Initialize services
	log.Println("🍽️  Initializing recommendation service...")
	recommendService := recommend.NewService(
		groupRepo,
		meetingRepo,
		suggestionRepo,
		preferenceRepo,
		candidateRepo,
		placeClient,
		tagClient,
		tagCache,
		cfg.Recommend,
		logger,
	)

	log.Println("🗳️  Initializing decision service...")
	decisionService := decision.NewService(
		groupRepo,
		meetingRepo,
		voteRepo,
		progressRepo,
		finalizationRepo,
		notifier,
		logger,
	)

	log.Println("👥 Initializing group service...")
	groupService := groupUsecase.NewService(groupRepo, meetingRepo, visitRepo)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	groupHandler := handler.NewGroupHandler(groupService)
	meetingHandler := handler.NewMeetingHandler(groupService, decisionService)
	recommendationHandler := handler.NewRecommendationHandler(recommendService)
	decisionHandler := handler.NewDecisionHandler(decisionService)
	log.Println("✅ Handlers initialized successfully")

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, groupHandler, meetingHandler, recommendationHandler, decisionHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

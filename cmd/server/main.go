package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"whisperbox.backend/internal/config"
	pgdatasource "whisperbox.backend/internal/infrastructure/datasources/postgres"
	"whisperbox.backend/internal/infrastructure/email"
	"whisperbox.backend/internal/infrastructure/repositories"
	"whisperbox.backend/internal/infrastructure/suggest"
	"whisperbox.backend/internal/interfaces/http/handlers"
	"whisperbox.backend/internal/interfaces/http/middleware"
	"whisperbox.backend/internal/usecases"
	"whisperbox.backend/pkg/jwt"
	"whisperbox.backend/pkg/logger"
	"whisperbox.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newSessionStore = redis.NewSessionStore
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
	checkDB         = pgdatasource.NewConnection
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if pingDB, pingErr := checkDB(cfg.Database); pingErr != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", pingErr)
	} else {
		pingDB.Close()
		log.Println("✅ Connected to PostgreSQL")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	messageRepo := repositories.NewMessageRepository(db)

	// Initialize Session Store
	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	// Initialize verification email sender
	var emailSender email.Sender
	if cfg.Email.ResendAPIKey != "" {
		emailSender, err = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.From)
		if err != nil {
			return fmt.Errorf("failed to initialize email sender: %w", err)
		}
	} else {
		log.Println("⚠️ RESEND_API_KEY not set, verification codes will only be logged")
		emailSender = &email.NoopSender{}
	}

	// Initialize suggestion client (optional)
	var suggestClient suggest.Client
	if cfg.Suggest.APIKey != "" {
		suggestClient = suggest.NewOpenRouterClient(cfg.Suggest.APIKey, cfg.Suggest.BaseURL, cfg.Suggest.Model)
	} else {
		log.Println("⚠️ OPENROUTER_API_KEY not set, message suggestions will be empty")
	}

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, emailSender, jwtService, sessionStore, cfg.JWT.SessionExpiry)
	intakeUsecase := usecases.NewIntakeUsecase(userRepo, messageRepo)
	mailboxUsecase := usecases.NewMailboxUsecase(userRepo, messageRepo)
	suggestUsecase := usecases.NewSuggestUsecase(suggestClient, cfg.Suggest.CacheTTL)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	messageHandler := handlers.NewMessageHandler(intakeUsecase, mailboxUsecase)
	suggestHandler := handlers.NewSuggestHandler(suggestUsecase)

	authMiddleware := middleware.Auth(jwtService, sessionStore)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:    authHandler,
		messageHandler: messageHandler,
		suggestHandler: suggestHandler,
		authMiddleware: authMiddleware,
	})

	// Start server
	log.Printf("🚀 WhisperBox Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

package app

import (
	"fmt"
	"net/http"

	"evervoice_backend/database"
	"evervoice_backend/internal/clients"
	"evervoice_backend/internal/config"
	"evervoice_backend/internal/handlers"
	"evervoice_backend/internal/logger"
	"evervoice_backend/internal/middleware"
	"evervoice_backend/internal/repositories"
	"evervoice_backend/internal/routes"
	"evervoice_backend/internal/services"
	"evervoice_backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	serviceContainer := initializeServices(cfg, gormDB, storageInstance)
	appHandlers := initializeHandlers(cfg, serviceContainer, storageInstance)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestLogger())

	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ginRouter.Use(middleware.GlobalRateLimiter(redisClient))
		logger.Info("Redis rate limiter enabled", "addr", cfg.Redis.Addr)
	}

	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, storageInstance storage.Storage) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository(gormDB)
	profileRepo := repositories.NewProfileRepository(gormDB)
	usageRepo := repositories.NewUsageRepository(gormDB)
	jobRepo := repositories.NewJobRepository(gormDB)

	httpClient := &http.Client{Timeout: cfg.RequestTimeout()}
	speech := clients.NewElevenLabsClient(cfg.Providers.ElevenLabsAPIKey, httpClient)
	llm := clients.NewOpenAIClient(cfg.Providers.OpenAIAPIKey, cfg.Providers.OpenAIModel, httpClient)
	avatar := newAvatarProvider(cfg, httpClient)
	logger.Info("Avatar provider selected", "variant", avatar.Name())

	quotaService := services.NewQuotaService(usageRepo)

	return &services.ServiceContainer{
		AuthService:  services.NewAuthService(userRepo),
		UserService:  services.NewUserService(userRepo),
		QuotaService: quotaService,
		ChatService: services.NewChatService(
			userRepo, profileRepo, quotaService, llm, cfg.RequestTimeout()),
		VoiceService: services.NewVoiceService(
			userRepo, profileRepo, speech, storageInstance, cfg.RequestTimeout(), cfg.URLExpiry()),
		VideoService: services.NewVideoService(
			userRepo, profileRepo, jobRepo, quotaService, speech, avatar,
			storageInstance, cfg.RequestTimeout(), cfg.URLExpiry()),
	}
}

func newAvatarProvider(cfg *config.Config, httpClient *http.Client) clients.AvatarProvider {
	switch cfg.Providers.AvatarVariant {
	case "heygen":
		return clients.NewHeygenClient(cfg.Providers.HeygenAPIKey, httpClient)
	default:
		return clients.NewDidClient(cfg.Providers.DidAPIKey, httpClient)
	}
}

func initializeHandlers(cfg *config.Config, sc *services.ServiceContainer, storageInstance storage.Storage) *handlers.AppHandlers {
	appHandlers := &handlers.AppHandlers{
		AuthHandler:  handlers.NewAuthHandler(sc.AuthService),
		UserHandler:  handlers.NewUserHandler(sc.UserService),
		ChatHandler:  handlers.NewChatHandler(sc.ChatService),
		VoiceHandler: handlers.NewVoiceHandler(sc.VoiceService),
		VideoHandler: handlers.NewVideoHandler(sc.VideoService),
	}
	if cfg.Storage.Type == "local" {
		appHandlers.FileHandler = handlers.NewFileHandler(storageInstance)
	}
	return appHandlers
}

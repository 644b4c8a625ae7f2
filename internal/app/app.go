package app

import (
	"context"
	"fmt"
	"time"

	"botrabota_backend/internal/config"
	"botrabota_backend/internal/gateway"
	"botrabota_backend/internal/handlers"
	"botrabota_backend/internal/logger"
	"botrabota_backend/internal/middleware"
	"botrabota_backend/internal/models"
	"botrabota_backend/internal/notifier"
	"botrabota_backend/internal/repositories"
	"botrabota_backend/internal/routes"
	"botrabota_backend/internal/services"
	"botrabota_backend/internal/services/geo"
	"botrabota_backend/internal/validator"
	"botrabota_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
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

	if err := gormDB.AutoMigrate(
		&models.User{},
		&models.Vacancy{},
		&models.Payment{},
		&models.AdminLog{},
	); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	container := BuildServices(cfg, gormDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	workers.NewSweepWorker(container.VacancyService, time.Hour).Start(ctx)

	ginRouter := SetupRouter(cfg, container)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// BuildServices собирает репозитории и сервисы поверх подключения к БД
func BuildServices(cfg *config.Config, gormDB *gorm.DB) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository(gormDB)
	vacancyRepo := repositories.NewVacancyRepository(gormDB)
	paymentRepo := repositories.NewPaymentRepository(gormDB)
	adminLogRepo := repositories.NewAdminLogRepository(gormDB)

	var sender notifier.Sender
	if cfg.Bot.Token != "" {
		tgSender, err := notifier.NewTelegramSender(cfg.Bot.Token)
		if err != nil {
			logger.Fatal("Failed to initialize Telegram sender", "error", err)
		}
		sender = tgSender
	} else {
		logger.Warn("Bot token is empty, notifications disabled")
	}

	limitService := services.NewLimitService(userRepo, cfg)
	vacancyService := services.NewVacancyService(vacancyRepo, cfg)
	paymentService := services.NewPaymentService(
		paymentRepo,
		limitService,
		vacancyService,
		gateway.NewClient(cfg),
		sender,
		cfg,
	)

	return &services.ServiceContainer{
		UserService:      services.NewUserService(userRepo),
		LimitService:     limitService,
		VacancyService:   vacancyService,
		FeedService:      services.NewFeedService(userRepo, vacancyRepo, limitService, cfg),
		PaymentService:   paymentService,
		StatsService:     services.NewStatsService(userRepo, vacancyRepo, paymentRepo),
		BroadcastService: services.NewBroadcastService(userRepo, sender),
		AdminService:     services.NewAdminService(userRepo, adminLogRepo, limitService, vacancyService),
	}
}

func SetupRouter(cfg *config.Config, container *services.ServiceContainer) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())

	v := validator.New()
	base := handlers.NewBaseHandler(v)

	appHandlers := &handlers.AppHandlers{
		UserHandler:    handlers.NewUserHandler(base, container.UserService),
		VacancyHandler: handlers.NewVacancyHandler(base, container.VacancyService, container.LimitService, container.UserService),
		FeedHandler:    handlers.NewFeedHandler(base, container.FeedService),
		PaymentHandler: handlers.NewPaymentHandler(base, container.PaymentService),
		GeoHandler:     handlers.NewGeoHandler(base, geo.NewGeocoder(cfg.Geocoder.APIKey)),
		AdminHandler:   handlers.NewAdminHandler(base, container.AdminService, container.StatsService, container.BroadcastService),
	}

	routes.RegisterRoutes(ginRouter, appHandlers, cfg.Bot.AdminID, cfg.Payment.WebhookPath)
	return ginRouter
}

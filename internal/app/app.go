package app

import (
	"context"
	"errors"
	"fmt"

	"chefmarket_backend/database"
	"chefmarket_backend/internal/auth"
	"chefmarket_backend/internal/config"
	"chefmarket_backend/internal/email"
	"chefmarket_backend/internal/gateway/razorpay"
	"chefmarket_backend/internal/handlers"
	"chefmarket_backend/internal/logger"
	"chefmarket_backend/internal/middleware"
	"chefmarket_backend/internal/models"
	"chefmarket_backend/internal/repositories"
	"chefmarket_backend/internal/routes"
	"chefmarket_backend/internal/services"
	paymentsvc "chefmarket_backend/internal/services/payment"
	"chefmarket_backend/internal/validator"
	"chefmarket_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

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

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		// Без админа сервер не запускаем
		logger.Fatal("Failed to seed first admin user", "error", err)
	}
	if err := seedDefaultPlans(gormDB); err != nil {
		logger.Fatal("Failed to seed default plans", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	workers.NewReconciliationWorker(repositories.NewPaymentRepository(gormDB)).Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter собирает все зависимости и возвращает готовый *gin.Engine.
// Вынесен отдельно, чтобы интеграционные тесты могли поднять приложение
// без реального запуска сервера.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	// Репозитории
	userRepo := repositories.NewUserRepository(gormDB)
	paymentRepo := repositories.NewPaymentRepository(gormDB)
	planRepo := repositories.NewPlanRepository(gormDB)
	announcementRepo := repositories.NewAnnouncementRepository(gormDB)
	profileRepo := repositories.NewProfileRepository(gormDB)

	// Платежный шлюз
	gatewayClient := razorpay.NewClient(cfg.Razorpay.BaseURL, cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	if !gatewayClient.IsConfigured() {
		logger.Warn("Razorpay credentials are not configured, order creation will be rejected")
	}

	// Email
	var emailProvider email.Provider
	if cfg.Email.SMTPHost != "" {
		emailProvider = email.NewSMTPProvider(cfg)
	} else {
		logger.Warn("SMTP is not configured, emails are disabled")
		emailProvider = email.NoopProvider{}
	}

	// Сервисы
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	planService := services.NewPlanService(planRepo)
	announcementService := services.NewAnnouncementService(announcementRepo)
	profileService := services.NewProfileService(profileRepo, userRepo)
	orderService := paymentsvc.NewOrderService(userRepo, paymentRepo, gatewayClient)
	entitlementService := paymentsvc.NewEntitlementService(userRepo, paymentRepo, gatewayClient, emailProvider)
	queryService := paymentsvc.NewQueryService(paymentRepo)

	// Хэндлеры
	baseHandler := handlers.NewBaseHandler(validator.New())
	registry := &handlers.Registry{
		Auth:         handlers.NewAuthHandler(baseHandler, authService),
		User:         handlers.NewUserHandler(baseHandler, userService),
		Payment:      handlers.NewPaymentHandler(baseHandler, orderService, entitlementService, queryService),
		Plan:         handlers.NewPlanHandler(baseHandler, planService),
		Announcement: handlers.NewAnnouncementHandler(baseHandler, announcementService),
		Profile:      handlers.NewProfileHandler(baseHandler, profileService),
	}

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())

	routes.RegisterRoutes(ginRouter, registry)

	return ginRouter
}

// seedFirstAdmin создает первого администратора из конфигурации.
// Если админ с таким email уже есть - ничего не делает.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.Admin.Email
	adminPassword := cfg.Admin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("Admin email or password is not set. Skipping admin seeding.")
		return nil
	}

	var existing models.User
	result := db.Where("email = ?", adminEmail).First(&existing)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		ExternalID:   "ext_" + uuid.NewString(),
		Email:        adminEmail,
		Name:         "Administrator",
		Role:         models.UserRoleAdmin,
		PasswordHash: hash,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Created first admin user", "email", adminEmail)
	return nil
}

// seedDefaultPlans создает стартовые тарифы, если таблица пустая
func seedDefaultPlans(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.SubscriptionPlan{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	plans := []models.SubscriptionPlan{
		{
			Slug:         "pro-monthly",
			Name:         "Pro Monthly",
			Price:        499,
			Currency:     "INR",
			DurationDays: 30,
			Features:     datatypes.JSON(`{"featured_profile": true, "direct_contacts": true}`),
			IsActive:     true,
		},
		{
			Slug:         "pro-quarterly",
			Name:         "Pro Quarterly",
			Price:        1299,
			Currency:     "INR",
			DurationDays: 90,
			Features:     datatypes.JSON(`{"featured_profile": true, "direct_contacts": true, "priority_support": true}`),
			IsActive:     true,
		},
	}
	if err := db.Create(&plans).Error; err != nil {
		return fmt.Errorf("failed to seed default plans: %w", err)
	}

	logger.Info("Seeded default subscription plans", "count", len(plans))
	return nil
}

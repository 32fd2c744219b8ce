package main

import (
	"log"
	"os"

	api "hqadmin-backend/cmd/api"
	alertScheduler "hqadmin-backend/internal/alert/scheduler"
	"hqadmin-backend/internal/alert/suppress"
	alertUsecase "hqadmin-backend/internal/alert/usecase"
	authdomain "hqadmin-backend/internal/auth/domain"
	authRepo "hqadmin-backend/internal/auth/repository"
	authUsecase "hqadmin-backend/internal/auth/usecase"
	invdomain "hqadmin-backend/internal/inventory/domain"
	invRepo "hqadmin-backend/internal/inventory/repository"
	pushdomain "hqadmin-backend/internal/push/domain"
	pushRepo "hqadmin-backend/internal/push/repository"
	pushUsecase "hqadmin-backend/internal/push/usecase"
	"hqadmin-backend/pkg/config"
	"hqadmin-backend/pkg/database"
	"hqadmin-backend/pkg/fcm"

	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.Member{},
		&pushdomain.DeviceToken{},
		&pushdomain.Preference{},
		&pushdomain.SendLog{},
		&pushdomain.Template{},
		&invdomain.Material{},
		&invdomain.HqInventory{},
		&invdomain.InventoryLot{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	memberRepo := authRepo.NewMemberRepository(db)
	tokenRepo := pushRepo.NewDeviceTokenRepository(db)
	templateRepo := pushRepo.NewTemplateRepository(db)
	prefRepo := pushRepo.NewPreferenceRepository(db)
	logRepo := pushRepo.NewSendLogRepository(db)
	scannerRepo := invRepo.NewScannerRepository(db)

	// Seed the HQ alert templates so sends never hit a missing row
	if err := templateRepo.SeedDefaults(); err != nil {
		log.Printf("[WARN] Failed to seed default templates: %v", err)
	}

	// Initialize FCM client (optional, sends fail with channel-disabled
	// when not configured)
	var messenger fcm.Messenger
	if cfg.FirebaseCredentials != "" {
		client, err := fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize FCM client (push disabled): %v", err)
		} else {
			messenger = client
			log.Println("[FCM] client initialized")
		}
	} else {
		log.Println("[WARN] FIREBASE_CREDENTIALS not set, push disabled")
	}

	// Alert de-duplication: Redis-backed when configured, in-process otherwise
	var suppressor suppress.Suppressor
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		suppressor = suppress.NewRedisSuppressor(rdb, cfg.SuppressTTL)
		log.Printf("[Suppress] using redis at %s", cfg.RedisAddr)
	} else {
		suppressor = suppress.NewMemorySuppressor(cfg.SuppressTTL)
		log.Println("[Suppress] using in-memory store")
	}

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(memberRepo, cfg)
	pushUsecaseInstance := pushUsecase.NewPushUsecase(tokenRepo, templateRepo, prefRepo, logRepo, messenger, cfg)
	scanUsecaseInstance := alertUsecase.NewScanUsecase(scannerRepo, pushUsecaseInstance, suppressor, cfg)

	// Start the periodic scanner when enabled
	if cfg.ScannerEnabled {
		sched := alertScheduler.NewScanScheduler(scanUsecaseInstance, cfg.ScannerInterval)
		sched.Start()
		defer sched.Stop()
	} else {
		log.Println("[Scheduler] scanner disabled, manual triggers only")
	}

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, pushUsecaseInstance, scanUsecaseInstance, cfg)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Printf("Server starting on port %s", port)
	if err := handler.Start(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

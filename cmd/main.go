package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"github.com/redis/go-redis/v9"

	"fitops/internal/caching"
	"fitops/internal/config"
	"fitops/internal/handlers"
	"fitops/internal/jobs/background"
	"fitops/internal/middleware"
	"fitops/internal/repositories"
	"fitops/internal/services"
	"fitops/pkg/database"
)

const defaultTrialDays = 24

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32)
		log.Printf("WARNING: JWT_SECRET not set, using a generated secret; tokens will not survive restarts")
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Printf("WARN: Redis ping failed: %v", err)
	}
	cacheSvc := caching.NewRedisCacheFromClient(redisClient)

	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin"
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin"
	}
	storageSvc, err := services.NewStorageService(minioEndpoint, minioAccessKey, minioSecretKey, os.Getenv("MINIO_USE_SSL") == "true")
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	for _, bucket := range []string{services.ProofBucket, services.ReceiptBucket} {
		if err := storageSvc.EnsureBucketExists(context.Background(), bucket); err != nil {
			log.Printf("WARN: failed to ensure bucket %s: %v", bucket, err)
		}
	}

	trialDays := defaultTrialDays
	if trialDaysStr := os.Getenv("TRIAL_DAYS"); trialDaysStr != "" {
		if days, err := strconv.Atoi(trialDaysStr); err == nil && days > 0 {
			trialDays = days
		}
	}

	notifier := services.NewNoopNotificationService()
	if configPath := os.Getenv("CONFIG_FILE"); configPath != "" {
		appConfig, err := config.LoadAppConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config file: %v", err)
		}
		notifier = services.NewNotificationService(appConfig.Notify)
	}

	// Repositories
	tenantRepo := repositories.NewTenantRepo(pool)
	userRepo := repositories.NewUserRepo(pool)
	subscriptionRepo := repositories.NewSubscriptionRepo(pool)
	proofRepo := repositories.NewPaymentProofRepo(pool)
	planRequestRepo := repositories.NewPlanRequestRepo(pool)
	vehicleRepo := repositories.NewVehicleRepo(pool)
	jobRepo := repositories.NewServiceJobRepo(pool)
	requirementRepo := repositories.NewRequirementRepo(pool)
	callLogRepo := repositories.NewCallLogRepo(pool)

	// Services
	tenantSvc := services.NewTenantService(tenantRepo, cacheSvc, trialDays)
	authSvc := services.NewAuthService(userRepo, tenantSvc, jwtSecret, os.Getenv("SUPER_ADMIN_EMAIL"))
	receiptSvc := services.NewReceiptService(storageSvc)
	lifecycleSvc := services.NewLifecycleService(pool, tenantRepo, subscriptionRepo, proofRepo, planRequestRepo, cacheSvc, receiptSvc)
	proofSvc := services.NewPaymentProofService(proofRepo, storageSvc)
	planRequestSvc := services.NewPlanRequestService(planRequestRepo)
	vehicleSvc := services.NewVehicleService(vehicleRepo, notifier)
	jobSvc := services.NewServiceJobService(jobRepo, vehicleRepo, notifier)
	requirementSvc := services.NewRequirementService(requirementRepo)
	callLogSvc := services.NewCallLogService(callLogRepo)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc)
	tenantHandlers := handlers.NewTenantHandlers(tenantSvc, lifecycleSvc, userRepo)
	proofHandlers := handlers.NewPaymentProofHandlers(proofSvc, lifecycleSvc)
	planRequestHandlers := handlers.NewPlanRequestHandlers(planRequestSvc, lifecycleSvc)
	vehicleHandlers := handlers.NewVehicleHandlers(vehicleSvc)
	jobHandlers := handlers.NewServiceJobHandlers(jobSvc)
	requirementHandlers := handlers.NewRequirementHandlers(requirementSvc)
	callLogHandlers := handlers.NewCallLogHandlers(callLogSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, redisClient)

	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	versionMiddleware := middleware.NewVersionMiddleware()

	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/detailed", healthHandlers.DetailedHealthCheck)

	v1 := versionMiddleware.VersionRoute(e, "v1")

	auth := v1.Group("/auth")
	auth.POST("/signup", authHandlers.Signup)
	auth.POST("/login", authHandlers.Login)

	v1.GET("/tenants/resolve", tenantHandlers.Resolve)

	protected := v1.Group("")
	protected.Use(middleware.JWTMiddleware(jwtSecret))

	protected.GET("/me", authHandlers.Me)

	protected.POST("/vehicles", vehicleHandlers.Create)
	protected.GET("/vehicles", vehicleHandlers.List)
	protected.GET("/vehicles/:id", vehicleHandlers.Get)
	protected.PUT("/vehicles/:id", vehicleHandlers.Update)
	protected.POST("/vehicles/:id/deliver", vehicleHandlers.Deliver)
	protected.DELETE("/vehicles/:id", vehicleHandlers.Delete)

	protected.POST("/service-jobs", jobHandlers.Create)
	protected.GET("/service-jobs", jobHandlers.List)
	protected.GET("/service-jobs/:id", jobHandlers.Get)
	protected.PUT("/service-jobs/:id", jobHandlers.Update)
	protected.PUT("/service-jobs/:id/status", jobHandlers.UpdateStatus)
	protected.DELETE("/service-jobs/:id", jobHandlers.Delete)

	protected.POST("/requirements", requirementHandlers.Create)
	protected.GET("/requirements", requirementHandlers.List)
	protected.GET("/requirements/:id", requirementHandlers.Get)
	protected.PUT("/requirements/:id", requirementHandlers.Update)
	protected.DELETE("/requirements/:id", requirementHandlers.Delete)

	protected.POST("/call-logs", callLogHandlers.Create)
	protected.GET("/call-logs", callLogHandlers.List)
	protected.GET("/call-logs/:id", callLogHandlers.Get)
	protected.PUT("/call-logs/:id", callLogHandlers.Update)
	protected.DELETE("/call-logs/:id", callLogHandlers.Delete)

	protected.POST("/payment-proofs", proofHandlers.Submit)
	protected.GET("/payment-proofs", proofHandlers.List)
	protected.POST("/payment-proofs/:id/file", proofHandlers.Upload)

	protected.POST("/plan-requests", planRequestHandlers.Submit)
	protected.GET("/plan-requests", planRequestHandlers.List)

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireSuperAdmin())

	admin.GET("/tenants", tenantHandlers.Overview)
	admin.GET("/tenants/:id/admin", tenantHandlers.TenantAdmin)
	admin.PATCH("/tenants/:id/active", tenantHandlers.ToggleActive)
	admin.DELETE("/tenants/:id", tenantHandlers.Delete)
	admin.POST("/tenants/:id/activate", tenantHandlers.Activate)
	admin.GET("/payment-proofs", proofHandlers.ListPending)
	admin.POST("/payment-proofs/:id/approve", proofHandlers.Approve)
	admin.POST("/payment-proofs/:id/reject", proofHandlers.Reject)
	admin.POST("/plan-requests/:id/apply", planRequestHandlers.Apply)
	admin.POST("/plan-requests/:id/reject", planRequestHandlers.Reject)

	refresher, err := background.NewOverviewRefresher(lifecycleSvc)
	if err != nil {
		log.Fatalf("Failed to create background refresher: %v", err)
	}
	refresher.Start()
	defer func() {
		if err := refresher.Stop(); err != nil {
			log.Printf("WARN: failed to stop background refresher: %v", err)
		}
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Fatal(e.Start(":" + port))
}

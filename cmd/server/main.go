package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"firewatch/internal/config"
	"firewatch/internal/handlers"
	"firewatch/internal/middleware"
	"firewatch/internal/repositories/mongodb"
	"firewatch/internal/services"
	"firewatch/internal/workers"
	"firewatch/pkg/ai"
	"firewatch/pkg/cache"
	"firewatch/pkg/database"
	"firewatch/pkg/logger"
	"firewatch/pkg/maps"
	"firewatch/pkg/sms"
	"firewatch/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
	})
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	if err := database.EnsureIndexes(db.Database); err != nil {
		appLogger.Fatalf("Failed to ensure indexes: %v", err)
	}

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	smsProvider, err := buildSMSProvider(cfg.SMS)
	if err != nil {
		appLogger.Fatalf("Failed to init SMS provider: %v", err)
	}

	var geocoder maps.Geocoder
	if cfg.Maps.Enabled {
		geocoder, err = maps.NewGoogleMapsGeocoder(cfg.Maps.APIKey)
		if err != nil {
			appLogger.Fatalf("Failed to init geocoder: %v", err)
		}
	}

	var aiClient *ai.Client
	if cfg.AI.Enabled {
		aiClient = ai.NewClient(&ai.Config{
			BaseURL: cfg.AI.BaseURL,
			APIKey:  cfg.AI.APIKey,
			Model:   cfg.AI.Model,
			Timeout: cfg.AI.Timeout,
		})
	}

	// Repositories
	unitRepo := mongodb.NewUnitRepository(db.Database)
	departmentRepo := mongodb.NewDepartmentRepository(db.Database)
	stationRepo := mongodb.NewStationRepository(db.Database)
	userRepo := mongodb.NewUserRepository(db.Database)
	personnelRepo := mongodb.NewPersonnelRepository(db.Database)
	reportRepo := mongodb.NewFireReportRepository(db.Database)
	rankRepo := mongodb.NewRankRepository(db.Database)
	roleRepo := mongodb.NewRoleRepository(db.Database)
	groupRepo := mongodb.NewGroupRepository(db.Database)
	chatRepo := mongodb.NewChatRepository(db.Database)

	// Services
	unitService := services.NewUnitService(unitRepo, departmentRepo, appLogger)
	reportService := services.NewReportService(reportRepo, stationRepo, userRepo, personnelRepo, redisCache, geocoder, smsProvider, appLogger)
	authService := services.NewAuthService(userRepo, redisCache, smsProvider, cfg.Security.JWTSecret, appLogger)
	chatService := services.NewChatService(chatRepo, aiClient, appLogger)
	departmentService := services.NewDepartmentService(departmentRepo, unitRepo, appLogger)
	stationService := services.NewStationService(stationRepo, geocoder, appLogger)
	personnelService := services.NewPersonnelService(personnelRepo, stationRepo, rankRepo, roleRepo, groupRepo, unitRepo, appLogger)
	rankService := services.NewRankService(rankRepo)
	roleService := services.NewRoleService(roleRepo)
	groupService := services.NewGroupService(groupRepo)

	// HTTP surface
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(appLogger))
	router.Use(middleware.CORS(cfg.Security.CORSAllowedOrigins))

	v1 := router.Group("/api/v1")
	routes.SetupRoutes(v1, &routes.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		Unit:       handlers.NewUnitHandler(unitService),
		Report:     handlers.NewReportHandler(reportService),
		Department: handlers.NewDepartmentHandler(departmentService, unitService),
		Station:    handlers.NewStationHandler(stationService, personnelService),
		Personnel:  handlers.NewPersonnelHandler(personnelService),
		Org:        handlers.NewOrgHandler(rankService, roleService, groupService),
		Chat:       handlers.NewChatHandler(chatService),
	}, cfg.Security.JWTSecret)

	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := db.Ping(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":  status,
			"version": cfg.App.Version,
		})
	})

	// Background duty sweep
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	sweepWorker := workers.NewDutySweepWorker(unitService, appLogger)
	go sweepWorker.Start(workerCtx)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.Infof("Server listening on port %d", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down")
	stopWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Errorf("Forced shutdown: %v", err)
	}
}

func buildSMSProvider(cfg *config.SMSConfig) (sms.Provider, error) {
	switch cfg.Provider {
	case "aws_sns":
		return sms.NewAWSSNSProvider(cfg.AWS.Region)
	case "twilio":
		return sms.NewTwilioProvider(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber), nil
	default:
		return nil, fmt.Errorf("unknown SMS provider %q", cfg.Provider)
	}
}

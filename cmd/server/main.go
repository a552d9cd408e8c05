package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wrnass1/hotelbooking/internal/application"
	"github.com/wrnass1/hotelbooking/internal/auth"
	"github.com/wrnass1/hotelbooking/internal/cache"
	"github.com/wrnass1/hotelbooking/internal/config"
	"github.com/wrnass1/hotelbooking/internal/database"
	bookingDomain "github.com/wrnass1/hotelbooking/internal/domain/booking"
	bookingEvents "github.com/wrnass1/hotelbooking/internal/events"
	"github.com/wrnass1/hotelbooking/internal/handler"
	"github.com/wrnass1/hotelbooking/internal/health"
	"github.com/wrnass1/hotelbooking/internal/kafka"
	"github.com/wrnass1/hotelbooking/internal/logger"
	"github.com/wrnass1/hotelbooking/internal/middleware"
	"github.com/wrnass1/hotelbooking/internal/repository"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "hotelbooking-api")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting hotelbooking-api",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig.DSN(), log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.HotelModel{},
			&repository.FacilityModel{},
			&repository.HotelFacilityModel{},
			&repository.RoomModel{},
			&repository.AmenityModel{},
			&repository.RoomAmenityModel{},
			&repository.BookingModel{},
			&repository.UserModel{},
			&repository.APIKeyModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.URL(), "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(
		cfg.JWTConfig.Secret,
		cfg.JWTConfig.AccessTTL,
		cfg.JWTConfig.RefreshTTL,
	)

	// Initialize Redis-backed cache (degrades to uncached reads when
	// Redis is down)
	redisClient := cache.NewRedisClient(cfg.RedisConfig.Addr, cfg.RedisConfig.Password, cfg.RedisConfig.DB, log)
	cacheService := cache.NewService(redisClient, cfg.RedisConfig.TTL, log)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize repositories
	hotelRepo := repository.NewGormHotelRepository(db)
	facilityRepo := repository.NewGormFacilityRepository(db)
	roomRepo := repository.NewGormRoomRepository(db)
	amenityRepo := repository.NewGormAmenityRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db)
	reportRepo := repository.NewGormReportRepository(db)
	userRepo := repository.NewGormUserRepository(db)
	apiKeyRepo := repository.NewGormAPIKeyRepository(db)

	// Initialize application services
	pricing := bookingDomain.NewNightlyPricingCalculator()
	bookingService := application.NewBookingService(
		bookingRepo,
		roomRepo,
		reportRepo,
		pricing,
		kafkaProducer,
		cacheService,
		log,
	)
	hotelService := application.NewHotelService(hotelRepo, facilityRepo, cacheService, log)
	roomService := application.NewRoomService(roomRepo, hotelRepo, amenityRepo, cacheService, log)
	facilityService := application.NewFacilityService(facilityRepo, log)
	amenityService := application.NewAmenityService(amenityRepo, log)
	authService := application.NewAuthService(userRepo, jwtManager, log)
	apiKeyService := application.NewAPIKeyService(apiKeyRepo, log)

	// Initialize and start the cache invalidation consumer in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	groupID := cfg.KafkaConfig.GroupPrefix + "cache-invalidator"
	cacheConsumer := bookingEvents.NewCacheInvalidationConsumer(
		cfg.KafkaConfig.Brokers,
		groupID,
		cacheService,
		log,
	)
	defer func() { _ = cacheConsumer.Close() }()

	go func() {
		log.Info("starting cache invalidation consumer")
		if err := cacheConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("cache invalidation consumer error", zap.Error(err))
		}
	}()

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "hotelbooking-api")
	healthHandler.RegisterRoutes(router)

	// Register API routes
	authMW := middleware.AuthMiddleware(jwtManager, apiKeyService)
	api := router.Group("/api/v1")

	handler.NewAuthHandler(authService).RegisterRoutes(api, authMW)
	handler.NewHotelHandler(hotelService).RegisterRoutes(api, authMW)
	handler.NewRoomHandler(roomService).RegisterRoutes(api, authMW)
	handler.NewFacilityHandler(facilityService).RegisterRoutes(api, authMW)
	handler.NewAmenityHandler(amenityService).RegisterRoutes(api, authMW)
	handler.NewBookingHandler(bookingService).RegisterRoutes(api, authMW)
	handler.NewAPIKeyHandler(apiKeyService).RegisterRoutes(api, authMW)
	handler.NewAdminHandler(bookingService).RegisterRoutes(api, authMW)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down hotelbooking-api...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("hotelbooking-api stopped")
}

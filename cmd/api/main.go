package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/angple/arena-backend/internal/common"
	"github.com/angple/arena-backend/internal/config"
	"github.com/angple/arena-backend/internal/database"
	"github.com/angple/arena-backend/internal/middleware"
	"github.com/angple/arena-backend/internal/migration"
	"github.com/angple/arena-backend/internal/routes"
	"github.com/angple/arena-backend/internal/ws"
	pkgcache "github.com/angple/arena-backend/pkg/cache"
	"github.com/angple/arena-backend/pkg/geocode"
	"github.com/angple/arena-backend/pkg/jwt"
	pkglogger "github.com/angple/arena-backend/pkg/logger"
	pkgredis "github.com/angple/arena-backend/pkg/redis"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	dotenvFiles, dotenvErr := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)
	if dotenvErr != nil {
		pkglogger.Warn("dotenv: %v", dotenvErr)
	}

	configPath := config.Path()
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	config.LogResolved(cfg)

	// MySQL
	logLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		logLevel = gormlogger.Info
	}
	db, eventDB, err := database.OpenStores(cfg, logLevel)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to MySQL (separate event store: %t)", eventDB != db)
	if err := migration.Run(db, eventDB); err != nil {
		pkglogger.Warn("Migration warning: %v", err)
	}

	// Redis is optional: cache, rate limits and cross-instance push degrade without it
	redisClient, err := pkgredis.NewClient(pkgredis.Options{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		pkglogger.Warn("Failed to connect to Redis: %v (continuing without Redis)", err)
		redisClient = nil
	} else {
		pkglogger.Info("Connected to Redis")
	}
	cacheService := pkgcache.NewService(redisClient)

	hub := ws.NewHub(redisClient)
	go hub.Run()

	geocoder := geocode.NewClient(geocode.Config{
		BaseURL:           cfg.Geocoder.BaseURL,
		UserAgent:         cfg.Geocoder.UserAgent,
		Timeout:           cfg.Geocoder.Timeout,
		RequestsPerSecond: cfg.Geocoder.RequestsPerSecond,
	})

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     splitAndTrim(cfg.CORS.AllowOrigins),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.InputSanitizer())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	if redisClient != nil && !cfg.IsDevelopment() {
		limit := middleware.DefaultRateLimitConfig()
		limit.RequestsPerMinute = cfg.RateLimit.RequestsPerMinute
		router.Use(middleware.RateLimit(redisClient, limit))
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", healthHandler(db, redisClient))

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn, cfg.JWT.Issuer)
	handlers := routes.NewHandlers(routes.Deps{
		DB:             db,
		EventDB:        eventDB,
		Cache:          cacheService,
		Geocoder:       geocoder,
		Hub:            hub,
		AllowedOrigins: cfg.CORS.AllowOrigins,
	})
	routes.Setup(router, handlers, jwtManager, redisClient, cfg)

	router.NoRoute(func(c *gin.Context) {
		common.ErrorResponse(c, http.StatusNotFound, "Route not found", nil)
	})

	statsCtx, stopStats := context.WithCancel(context.Background())
	go reportPoolStats(statsCtx, "primary", db)
	if eventDB != db {
		go reportPoolStats(statsCtx, "events", eventDB)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		pkglogger.Info("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	pkglogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		pkglogger.Error("Server forced to shutdown: %v", err)
	}

	stopStats()
	hub.Stop()
	handlers.AuditLogger.Wait()
	if redisClient != nil {
		_ = redisClient.Close()
	}
	database.Close(db, eventDB)
	pkglogger.Info("Server exited")
}

func healthHandler(db *gorm.DB, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		checks := gin.H{"database": "ok", "redis": "disabled"}

		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			checks["database"] = "down"
			status = http.StatusServiceUnavailable
		}
		if redisClient != nil {
			checks["redis"] = "ok"
			if err := redisClient.Ping(ctx).Err(); err != nil {
				// redis is optional, so a failure is reported without failing the check
				checks["redis"] = "down"
			}
		}

		c.JSON(status, gin.H{
			"status":  http.StatusText(status),
			"service": "arena-backend",
			"checks":  checks,
			"time":    time.Now().Unix(),
		})
	}
}

// reportPoolStats publishes the open connection count of db until ctx is done
func reportPoolStats(ctx context.Context, pool string, db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		middleware.SetDBConnectionsOpen(pool, sqlDB.Stats().OpenConnections)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func splitAndTrim(s string) []string {
	var parts []string
	for _, p := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		parts = []string{"http://localhost:3000"}
	}
	return parts
}

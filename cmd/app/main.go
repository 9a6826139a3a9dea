package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/venkat374/course-tracker-backend/config"
	"github.com/venkat374/course-tracker-backend/internal/domain"
	"github.com/venkat374/course-tracker-backend/internal/infrastructure/cache"
	"github.com/venkat374/course-tracker-backend/internal/infrastructure/repository"
	applog "github.com/venkat374/course-tracker-backend/internal/logger"
	"github.com/venkat374/course-tracker-backend/internal/middleware"
	handlers "github.com/venkat374/course-tracker-backend/internal/transport/http"
)

func main() {
	// 1. Config
	_ = godotenv.Load()
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	// 2. Logger
	zl, err := applog.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zl.Sync()
	sugar := zl.Sugar()

	// 3. Database
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		sugar.Fatalf("Failed to connect to DB: %v", err)
	}

	sugar.Info("Running migrations...")
	if err := db.AutoMigrate(&domain.TrackedCourseRecord{}); err != nil {
		sugar.Fatalf("Failed to migrate DB: %v", err)
	}

	// 4. Redis (list cache + rate limiting, optional)
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			sugar.Fatalf("Failed to connect to Redis: %v", err)
		}
		sugar.Infof("Connected to Redis at %s", cfg.RedisAddr)
	}

	// 5. Layers
	var recordCache *cache.RecordCache
	if rdb != nil {
		recordCache = cache.NewRecordCache(rdb)
	}
	recordRepo := repository.NewRecordRepository(db, recordCache)
	recordHandler := handlers.NewRecordHandler(sugar, recordRepo)
	limiter := middleware.NewRateLimiter(rdb)

	// 6. HTTP server
	router := handlers.NewRouter(recordHandler, limiter, cfg.Origins())
	sugar.Infof("Course tracker running on %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		sugar.Fatalf("Failed to run server: %v", err)
	}
}

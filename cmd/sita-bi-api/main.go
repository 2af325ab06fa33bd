package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/itsanla/sita-bi-sub000/internal/handler"
	"github.com/itsanla/sita-bi-sub000/internal/repository"
	"github.com/itsanla/sita-bi-sub000/internal/service"
	"github.com/itsanla/sita-bi-sub000/pkg/cache"
	"github.com/itsanla/sita-bi-sub000/pkg/config"
	"github.com/itsanla/sita-bi-sub000/pkg/database"
	"github.com/itsanla/sita-bi-sub000/pkg/logger"
	corsmiddleware "github.com/itsanla/sita-bi-sub000/pkg/middleware/cors"
	reqidmiddleware "github.com/itsanla/sita-bi-sub000/pkg/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, board cache disabled", "error", err)
		redisClient = nil
	}

	settingsRepo := repository.NewSettingsRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	lecturerRepo := repository.NewLecturerRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	periodRepo := repository.NewPeriodRepository(db)
	defenseRepo := repository.NewDefenseRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	var cacheRepo service.CacheRepository
	if redisClient != nil {
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}

	metrics := service.NewMetricsService()
	boardCache := service.NewCacheService(cacheRepo, metrics, cfg.Board.CacheTTL, logr, cfg.Board.CacheEnabled)
	validate := validator.New()

	settingsSvc := service.NewSettingsService(settingsRepo, roomRepo, logr)
	availability := service.NewAvailabilityService(scheduleRepo, lecturerRepo, logr)
	conflictValidator := service.NewConflictValidator(scheduleRepo, logr)

	scheduler := service.NewSchedulerService(service.SchedulerDeps{
		Settings:     settingsSvc,
		Diagnostics:  service.NewDiagnostics(),
		Slots:        service.NewSlotGenerator(),
		Availability: availability,
		Validator:    conflictValidator,
		Shuffler:     service.NewShuffler(nil),
		Students:     studentRepo,
		Defenses:     defenseRepo,
		Lecturers:    lecturerRepo,
		Schedules:    scheduleRepo,
		Periods:      periodRepo,
		Cache:        boardCache,
		Metrics:      metrics,
	}, cfg.Scheduler, logr)

	admin := service.NewScheduleAdminService(scheduleRepo, studentRepo, lecturerRepo, roomRepo, periodRepo, boardCache, validate, logr)

	scheduleHandler := handler.NewScheduleHandler(scheduler, admin)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group(cfg.APIPrefix)
	scheduleHandler.Register(api)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"academy_backend/internal/config"
	"academy_backend/internal/controller"
	"academy_backend/internal/middleware"
	"academy_backend/internal/repository"
	"academy_backend/internal/service"
	"academy_backend/internal/util"
	"academy_backend/pkg/configwatcher"
	"academy_backend/pkg/database"
	"academy_backend/pkg/logger"
	"academy_backend/pkg/monitoring"
	"academy_backend/pkg/security"
	"academy_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	services        *services
	mu              sync.Mutex
	configCallbacks []func(*config.Config)
	shutdownTracer  func(context.Context) error
}

type repositories struct {
	course     *repository.CourseRepository
	module     *repository.ModuleRepository
	lesson     *repository.LessonRepository
	attachment *repository.AttachmentRepository
	enrollment *repository.EnrollmentRepository
	progress   *repository.ProgressRepository
	site       *repository.SiteRepository
}

type services struct {
	storage    *service.StorageService
	access     *service.LessonAccessService
	renderer   *service.ContentRenderer
	course     *service.CourseService
	enrollment *service.EnrollmentService
	progress   *service.ProgressService
	lesson     *service.LessonService
	site       *service.SiteService
}

type controllers struct {
	health      *controller.HealthController
	site        *controller.SiteController
	course      *controller.CourseController
	lesson      *controller.LessonController
	adminCourse *controller.AdminCourseController
}

// RegisterConfigCallback runs callback on every successful config reload.
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig hands a reloaded config to the registered callbacks.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()
	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		course:     repository.NewCourseRepository(db),
		module:     repository.NewModuleRepository(db),
		lesson:     repository.NewLessonRepository(db),
		attachment: repository.NewAttachmentRepository(db),
		enrollment: repository.NewEnrollmentRepository(db),
		progress:   repository.NewProgressRepository(db),
		site:       repository.NewSiteRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.access = service.NewLessonAccessService(repos.enrollment)
	s.renderer = service.NewContentRenderer(cfg.Course.PreviewDuration(), s.storage.GetURL)
	s.course = service.NewCourseService(repos.course, repos.module, repos.lesson, repos.attachment, s.storage)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.course)
	s.progress = service.NewProgressService(repos.progress, s.course, s.access, cfg.Course.CompletionThreshold)
	s.lesson = service.NewLessonService(repos.lesson, s.course, s.access, s.renderer, s.storage)

	var cache service.SettingsCache = service.NewMemorySettingsCache()
	if rdb != nil {
		cache = service.NewRedisSettingsCache(rdb)
	}
	s.site = service.NewSiteService(repos.site, cache, cfg.Site.SettingsTTL())

	a.RegisterConfigCallback(func(newCfg *config.Config) {
		s.renderer.SetPreviewDuration(newCfg.Course.PreviewDuration())
		s.progress.SetThreshold(newCfg.Course.CompletionThreshold)
		s.site.SetSettingsTTL(newCfg.Site.SettingsTTL())
		logger.Log.Info("course settings reloaded",
			zap.Int("preview_duration_seconds", newCfg.Course.PreviewDurationSeconds),
			zap.Float64("completion_threshold", newCfg.Course.CompletionThreshold),
			zap.Int("settings_ttl_seconds", newCfg.Site.SettingsTTLSeconds),
		)
	})

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		health:      controller.NewHealthController(db, rdb),
		site:        controller.NewSiteController(s.site),
		course:      controller.NewCourseController(s.course, s.enrollment, s.progress),
		lesson:      controller.NewLessonController(s.lesson, s.progress),
		adminCourse: controller.NewAdminCourseController(s.course, s.enrollment),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(gin.Recovery())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// Build wires repositories, services, controllers and routes over already
// opened connections. rdb may be nil.
func Build(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(app.services, db, rdb)

	monitoring.Init()

	router := gin.New()
	app.Router = router
	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	migrate := cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode
	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == gin.DebugMode, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Warn("Redis unavailable, using in-process settings cache", zap.Error(err))
			rdb = nil
		}
	}

	app := Build(cfg, db, rdb)

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(context.Background(), cfg.Tracing)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.shutdownTracer = shutdown
		}
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.Config.Path != "" {
		go func() {
			if err := configwatcher.Watch(ctx, a.Config.Path, a.ApplyConfig); err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	if a.shutdownTracer != nil {
		if err := a.shutdownTracer(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
	_ = logger.Log.Sync()
}

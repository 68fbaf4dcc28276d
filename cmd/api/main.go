package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campuskit/attendance-api/api/swagger"
	"github.com/campuskit/attendance-api/internal/handler"
	"github.com/campuskit/attendance-api/internal/middleware"
	"github.com/campuskit/attendance-api/internal/models"
	"github.com/campuskit/attendance-api/internal/repository"
	"github.com/campuskit/attendance-api/internal/service"
	"github.com/campuskit/attendance-api/pkg/cache"
	"github.com/campuskit/attendance-api/pkg/config"
	"github.com/campuskit/attendance-api/pkg/database"
	"github.com/campuskit/attendance-api/pkg/jobs"
	"github.com/campuskit/attendance-api/pkg/logger"
	corsmiddleware "github.com/campuskit/attendance-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campuskit/attendance-api/pkg/middleware/requestid"
)

// @title Campus Attendance API
// @version 1.0.0
// @description Attendance recording, scheduling and semester ledger service
// @BasePath /api/v1
// @schemes http

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
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, catalog caching disabled", "error", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Repositories.
	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	semesterRepo := repository.NewSemesterRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	transitionRepo := repository.NewTransitionRepository(db)
	mdcRepo := repository.NewMDCRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	var notifier *service.NotificationService
	if cfg.Notifications.Enabled {
		notifier = service.NewNotificationService(nil, jobs.QueueConfig{
			Workers:    cfg.Notifications.Workers,
			BufferSize: cfg.Notifications.BufferSize,
			MaxRetries: cfg.Notifications.MaxRetries,
			RetryDelay: cfg.Notifications.RetryDelay,
		}, logr)
		notifier.Start(ctx)
		defer notifier.Stop()
	}
	var dispatcher service.Dispatcher
	if notifier != nil {
		dispatcher = notifier
	}

	// Services.
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
	})
	accessSvc := service.NewAccessService(facultyRepo, subjectRepo)
	resolver := service.NewPeriodResolver()
	attendanceSvc := service.NewAttendanceService(attendanceRepo, subjectRepo, studentRepo, dispatcher, metricsSvc, validate, logr)
	aggregatorSvc := service.NewAggregatorService(attendanceRepo, logr)
	transitionSvc := service.NewTransitionService(studentRepo, semesterRepo, transitionRepo, dispatcher, metricsSvc, logr)
	mdcSvc := service.NewMDCService(mdcRepo, studentRepo, facultyRepo, cacheRepo, cfg.MDC.CatalogCacheTTL, validate, logr)
	rosterSvc := service.NewRosterService(studentRepo, validate, logr)
	reportSvc := service.NewReportService(attendanceRepo, subjectRepo, studentRepo, logr)

	// Handlers.
	authHandler := handler.NewAuthHandler(authSvc)
	scheduleHandler := handler.NewScheduleHandler(resolver)
	attendanceHandler := handler.NewAttendanceHandler(attendanceSvc, accessSvc, reportSvc)
	studentHandler := handler.NewStudentHandler(rosterSvc, aggregatorSvc)
	transitionHandler := handler.NewTransitionHandler(transitionSvc)
	mdcHandler := handler.NewMDCHandler(mdcSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
	}

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))

	schedule := protected.Group("/schedule")
	{
		schedule.GET("/windows", scheduleHandler.Windows)
		schedule.GET("/markable", scheduleHandler.Markable)
		schedule.GET("/current", scheduleHandler.Current)
		schedule.GET("/today", scheduleHandler.Today)
	}

	attendance := protected.Group("/attendance")
	{
		attendance.POST("", middleware.RequireRoles(models.RoleAdmin, models.RoleFaculty), attendanceHandler.Submit)
		attendance.GET("", middleware.RequireRoles(models.RoleAdmin, models.RoleFaculty), attendanceHandler.ListByDate)
		attendance.GET("/export", middleware.RequireRoles(models.RoleAdmin, models.RoleFaculty), attendanceHandler.Export)
	}

	students := protected.Group("/students")
	{
		students.POST("", middleware.RequireRoles(models.RoleAdmin), studentHandler.Create)
		students.GET("/roster", middleware.RequireRoles(models.RoleAdmin, models.RoleFaculty), studentHandler.Roster)
		students.GET("/:id/subjects/:subjectId/attendance", studentHandler.SubjectStats)
		students.GET("/:id/attendance/calendar", studentHandler.Calendar)
		students.GET("/:id/attendance/subjects", studentHandler.GroupedStats)
		students.POST("/:id/transition", middleware.RequireRoles(models.RoleAdmin), transitionHandler.Transition)
		students.GET("/:id/transitions", middleware.RequireRoles(models.RoleAdmin, models.RoleFaculty), transitionHandler.History)
	}

	mdc := protected.Group("/mdc")
	{
		mdc.POST("/courses", middleware.RequireRoles(models.RoleAdmin), mdcHandler.Create)
		mdc.GET("/courses/eligible", mdcHandler.Eligible)
		mdc.POST("/courses/:id/students", middleware.RequireRoles(models.RoleAdmin, models.RoleFaculty), mdcHandler.Enroll)
		mdc.DELETE("/courses/:id/students/:studentId", middleware.RequireRoles(models.RoleAdmin, models.RoleFaculty), mdcHandler.Withdraw)
		mdc.GET("/courses/:id/eligible-faculty", middleware.RequireRoles(models.RoleAdmin), mdcHandler.EligibleFaculty)
		mdc.PUT("/courses/:id/faculty", middleware.RequireRoles(models.RoleAdmin), mdcHandler.AssignFaculty)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/OAtulA/student-epr/api/swagger"
	"github.com/OAtulA/student-epr/internal/ai"
	"github.com/OAtulA/student-epr/internal/handler"
	"github.com/OAtulA/student-epr/internal/middleware"
	"github.com/OAtulA/student-epr/internal/models"
	"github.com/OAtulA/student-epr/internal/repository"
	"github.com/OAtulA/student-epr/internal/service"
	"github.com/OAtulA/student-epr/pkg/cache"
	"github.com/OAtulA/student-epr/pkg/config"
	"github.com/OAtulA/student-epr/pkg/database"
	"github.com/OAtulA/student-epr/pkg/export"
	"github.com/OAtulA/student-epr/pkg/logger"
	corsmiddleware "github.com/OAtulA/student-epr/pkg/middleware/cors"
	reqidmiddleware "github.com/OAtulA/student-epr/pkg/middleware/requestid"
)

// @title Student EPR API
// @version 1.0.0
// @description Educational performance record portal for admins, teachers and students
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	// The portal runs without Redis; reports just skip caching.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, report caching disabled", "error", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	disciplineRepo := repository.NewDisciplineRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	markRepo := repository.NewMarkRepository(db)
	adviceRepo := repository.NewAdviceRepository(db)

	var summarizer ai.Summarizer
	if cfg.Gemini.APIKey != "" {
		gemini, err := ai.NewGeminiSummarizer(context.Background(), ai.Config{
			APIKey:    cfg.Gemini.APIKey,
			Model:     cfg.Gemini.Model,
			MaxTokens: cfg.Gemini.MaxTokens,
		})
		if err != nil {
			logr.Sugar().Warnw("gemini unavailable, falling back to offline digests", "error", err)
		} else {
			defer gemini.Close() //nolint:errcheck
			summarizer = gemini
		}
	}

	metricsService := service.NewMetricsService()
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.RefreshExpiration, validate, logr)
	userService := service.NewUserService(userRepo, teacherRepo, studentRepo, validate, logr)
	disciplineService := service.NewDisciplineService(disciplineRepo, validate, logr)
	subjectService := service.NewSubjectService(subjectRepo, disciplineRepo, validate, logr)
	assignmentService := service.NewAssignmentService(assignmentRepo, teacherRepo, subjectRepo, validate, logr)
	rosterService := service.NewRosterService(assignmentRepo, studentRepo, markRepo, logr)
	var performanceService *service.PerformanceService
	if cfg.Analytics.CacheEnabled && redisClient != nil {
		performanceService = service.NewPerformanceService(assignmentRepo, markRepo, repository.NewCacheRepository(redisClient), metricsService, cfg.Analytics.CacheTTL, logr)
	} else {
		performanceService = service.NewPerformanceService(assignmentRepo, markRepo, nil, metricsService, cfg.Analytics.CacheTTL, logr)
	}
	markService := service.NewMarkService(markRepo, assignmentRepo, studentRepo, rosterService, performanceService, validate, logr)
	studentService := service.NewStudentService(studentRepo, subjectRepo, markRepo, logr)
	adviceService := service.NewAdviceService(adviceRepo, subjectRepo, summarizer, validate, logr)
	exportService := service.NewExportService(performanceService, export.NewCSVExporter(), export.NewPDFExporter(), logr)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	disciplineHandler := handler.NewDisciplineHandler(disciplineService)
	subjectHandler := handler.NewSubjectHandler(subjectService)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService, rosterService, userService)
	markHandler := handler.NewMarkHandler(markService, userService)
	performanceHandler := handler.NewPerformanceHandler(performanceService, exportService, userService)
	studentHandler := handler.NewStudentHandler(studentService)
	adviceHandler := handler.NewAdviceHandler(adviceService, studentService)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
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
		auth.GET("/me", middleware.JWT(authService), authHandler.Me)
	}

	admin := api.Group("/admin", middleware.JWT(authService), middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/disciplines", disciplineHandler.List)
		admin.POST("/disciplines", disciplineHandler.Create)
		admin.GET("/subjects", subjectHandler.List)
		admin.POST("/subjects", subjectHandler.Create)
		admin.GET("/teachers", userHandler.ListTeachers)
		admin.POST("/teachers", userHandler.CreateTeacher)
		admin.GET("/students", userHandler.ListStudents)
		admin.POST("/students", userHandler.CreateStudent)
		admin.GET("/assignments", assignmentHandler.ListAll)
		admin.POST("/assignments", assignmentHandler.Create)
	}

	teacher := api.Group("/teacher", middleware.JWT(authService), middleware.RequireRoles(models.RoleTeacher))
	{
		teacher.GET("/assignments", assignmentHandler.ListMine)
		teacher.GET("/assignments/:id/students", assignmentHandler.CoveredStudents)
		teacher.GET("/assignments/:id/marks", markHandler.ListByAssignment)
		teacher.GET("/students", assignmentHandler.Roster)
		teacher.POST("/marks", markHandler.Upsert)
		teacher.POST("/marks/bulk", markHandler.Bulk)
		teacher.GET("/performance", performanceHandler.Report)
		teacher.GET("/low-performers", performanceHandler.LowPerformers)
		teacher.GET("/low-performers/export", performanceHandler.Export)
	}

	student := api.Group("/student", middleware.JWT(authService), middleware.RequireRoles(models.RoleStudent))
	{
		student.GET("/subjects", studentHandler.Subjects)
		student.GET("/results", studentHandler.Results)
		student.GET("/advice", adviceHandler.Feed)
		student.POST("/advice", adviceHandler.Create)
		student.GET("/advice/stats", adviceHandler.Stats)
		student.POST("/advice/:id/like", adviceHandler.ToggleLike)
		student.GET("/advice/ai/summary", adviceHandler.Summarize)
		student.POST("/advice/ai/ask", adviceHandler.Ask)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/darsyar/darsyar/config"
	"github.com/darsyar/darsyar/database"
	_ "github.com/darsyar/darsyar/docs" // Swagger docs - auto-generated
	studentctrl "github.com/darsyar/darsyar/internal/controller/student"
	teacherctrl "github.com/darsyar/darsyar/internal/controller/teacher"
	"github.com/darsyar/darsyar/internal/grading"
	"github.com/darsyar/darsyar/internal/logger"
	"github.com/darsyar/darsyar/internal/model"
	"github.com/darsyar/darsyar/internal/repository"
	"github.com/darsyar/darsyar/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Darsyar Exercise Grading API
// @version 1.0
// @description Exercise authoring, Persian-tolerant automatic grading and learning statistics.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
			grading.NewGrader,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewScheduleItemRepository,
			repository.NewBlockAttemptRepository,
			repository.NewBlockStatisticsRepository,
			repository.NewStudySessionRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewScheduleItemService,
			service.NewAttemptRecorder,
			service.NewSubmissionService,
			service.NewStatisticsService,
		),

		// API Controllers Layer
		fx.Provide(
			teacherctrl.NewScheduleItemController,
			studentctrl.NewExerciseController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	scheduleItemCtrl *teacherctrl.ScheduleItemController,
	exerciseCtrl *studentctrl.ExerciseController,
) {
	// Teacher Routes (prefixed with /api/v1/teacher)
	teacherAPIGroup := router.Group("/api/v1/teacher")
	{
		teacherAPIGroup.POST("/schedule-items", scheduleItemCtrl.CreateScheduleItem)
	}

	// Student Routes (prefixed with /api/v1)
	studentAPIGroup := router.Group("/api/v1")
	{
		studentAPIGroup.GET("/schedule-items", exerciseCtrl.GetAllScheduleItems)
		studentAPIGroup.GET("/schedule-items/:item_id", exerciseCtrl.GetScheduleItem)

		// Block submissions and history
		studentAPIGroup.POST("/schedule-items/:item_id/blocks/:block_id/submissions", exerciseCtrl.SubmitBlockAnswer)
		studentAPIGroup.GET("/schedule-items/:item_id/blocks/:block_id/my-attempts", exerciseCtrl.GetBlockAttempts)

		// Learning statistics
		studentAPIGroup.GET("/students/:student_id/learning-statistics", exerciseCtrl.GetLearningStatistics)
		studentAPIGroup.POST("/students/:student_id/study-sessions", exerciseCtrl.RecordStudySession)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Darsyar API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.SubChapter{},
		&model.ScheduleItem{},
		&model.BlockAttempt{},
		&model.BlockStatistics{},
		&model.StudySession{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

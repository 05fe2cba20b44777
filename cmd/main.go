package main

import (
	"context"
	"net/http"
	"time"

	"github.com/cb-Vicky-Gupta/quiz-app-backend/config"
	"github.com/cb-Vicky-Gupta/quiz-app-backend/database"
	adminctrl "github.com/cb-Vicky-Gupta/quiz-app-backend/internal/controller/admin"
	userctrl "github.com/cb-Vicky-Gupta/quiz-app-backend/internal/controller/user"
	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/logger"
	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/model"
	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/repository"
	"github.com/cb-Vicky-Gupta/quiz-app-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title cbQuiz Assessment API
// @version 1.0
// @description Quiz platform backend: timed attempts, scoring, history-based question exclusion, leaderboards and reports.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewQuizRepository,
			repository.NewQuestionRepository,
			repository.NewQuizAttemptRepository,
			repository.NewQuestionHistoryRepository,
			repository.NewPurchaseRepository,
		),

		fx.Provide(
			service.NewAccessService,
			service.NewAttemptService,
			service.NewLeaderboardService,
			service.NewReportService,
			service.NewQuestionService,
			service.NewQuizService,
			service.NewPurchaseService,
		),

		fx.Provide(
			userctrl.NewQuizAttemptController,
			adminctrl.NewQuestionController,
			adminctrl.NewPurchaseController,
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
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", "X-Admin-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI: http://localhost:PORT/swagger/index.html (run swag init to
	// regenerate the docs package).
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	attemptCtrl *userctrl.QuizAttemptController,
	questionCtrl *adminctrl.QuestionController,
	purchaseCtrl *adminctrl.PurchaseController,
) {
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		questionsGroup := adminAPIGroup.Group("/questions")
		questionsGroup.POST("", questionCtrl.CreateQuestion)
		questionsGroup.GET("", questionCtrl.ListQuestions)
		questionsGroup.GET("/:question_id", questionCtrl.GetQuestion)
		questionsGroup.PUT("/:question_id", questionCtrl.UpdateQuestion)
		questionsGroup.DELETE("/:question_id", questionCtrl.DeleteQuestion)

		adminAPIGroup.POST("/purchases", purchaseCtrl.GrantPurchase)
	}

	userAPIGroup := router.Group("/api/v1")
	{
		userAPIGroup.GET("/quizzes", attemptCtrl.GetAllQuizzes)
		userAPIGroup.POST("/quizzes/:quiz_id/start", attemptCtrl.StartQuiz)
		userAPIGroup.GET("/quizzes/:quiz_id/leaderboard", attemptCtrl.GetLeaderboard)
		userAPIGroup.GET("/quizzes/:quiz_id/my-attempts", attemptCtrl.GetMyAttempts)

		userAPIGroup.GET("/attempts/:attempt_id", attemptCtrl.GetAttempt)
		userAPIGroup.POST("/attempts/:attempt_id/answers", attemptCtrl.SubmitAnswer)
		userAPIGroup.POST("/attempts/:attempt_id/complete", attemptCtrl.CompleteQuiz)
		userAPIGroup.GET("/attempts/:attempt_id/report", attemptCtrl.GetReport)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Quiz API server starting on port %s", cfg.Server.Port)
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
		&model.Quiz{},
		&model.Question{},
		&model.QuizAttempt{},
		&model.AttemptQuestion{},
		&model.QuestionHistory{},
		&model.Purchase{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}

	// At most one live attempt per (user, quiz): the partial unique index
	// turns the start-quiz check-then-create race into a duplicate-key error
	// the attempt service resolves by resuming the winner.
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_quiz_attempts_one_in_progress
		ON quiz_attempts (user_id, quiz_id)
		WHERE status = 'IN_PROGRESS' AND deleted_at IS NULL`).Error
	if err != nil {
		log.Error().Err(err).Msg("Failed to create partial unique index on quiz_attempts")
		return err
	}

	log.Info().Msg("Database migration completed successfully.")
	return nil
}

package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/Kawaii2025/interview-qa-app/config"
	"github.com/Kawaii2025/interview-qa-app/database"
	_ "github.com/Kawaii2025/interview-qa-app/docs" // Swagger docs - auto-generated
	"github.com/Kawaii2025/interview-qa-app/internal/controller"
	"github.com/Kawaii2025/interview-qa-app/internal/logger"
	"github.com/Kawaii2025/interview-qa-app/internal/middleware"
	"github.com/Kawaii2025/interview-qa-app/internal/model"
	"github.com/Kawaii2025/interview-qa-app/internal/render"
	"github.com/Kawaii2025/interview-qa-app/internal/repository"
	"github.com/Kawaii2025/interview-qa-app/internal/service"
)

// @title Interview QA Practice API
// @version 1.0
// @description Interview question practice with AI-generated reference answers.
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
			render.NewRenderer,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewQuestionRepository,
			repository.NewAIAnswerRepository,
			repository.NewUserAnswerRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewQwenLLMService,
			service.NewAnswerResolver,
			service.NewQuestionService,
			service.NewUserAnswerService,
		),

		// API Controllers Layer
		fx.Provide(
			controller.NewQuestionController,
			controller.NewAIAnswerController,
			controller.NewUserAnswerController,
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

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	questionCtrl *controller.QuestionController,
	aiAnswerCtrl *controller.AIAnswerController,
	userAnswerCtrl *controller.UserAnswerController,
) {
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		adminAPIGroup.POST("/questions", questionCtrl.CreateQuestion)
	}

	apiGroup := router.Group("/api/v1")
	{
		apiGroup.GET("/questions", questionCtrl.GetAllQuestions)
		apiGroup.GET("/questions/:question_id", questionCtrl.GetQuestion)

		apiGroup.GET("/questions/:question_id/user-answer", userAnswerCtrl.GetUserAnswer)
		apiGroup.POST("/user-answers", userAnswerCtrl.SaveUserAnswer)

		// Resolution is a plain read; generation incurs provider cost and
		// sits behind the bearer check when a token is configured.
		apiGroup.GET("/questions/:question_id/ai-answer", aiAnswerCtrl.GetAIAnswer)
		apiGroup.GET("/questions/:question_id/ai-answer/view", aiAnswerCtrl.GetAIAnswerView)

		generateGroup := apiGroup.Group("")
		generateGroup.Use(middleware.BearerAuth(cfg.APIToken))
		generateGroup.POST("/questions/:question_id/ai-answer", aiAnswerCtrl.GenerateAIAnswer)
		generateGroup.POST("/questions/:question_id/ai-answer/regenerate", aiAnswerCtrl.RegenerateAIAnswer)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Interview QA API server starting on port %s", cfg.Server.Port)
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
		&model.Question{},
		&model.AIAnswer{},
		&model.UserAnswer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

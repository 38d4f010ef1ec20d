package api

import (
	"alcyxob/swimcoach/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Options toggles optional parts of the HTTP surface.
type Options struct {
	JWTSecret    string
	AuthRequired bool // Protect trainings and schedule routes with AuthMiddleware
	ExposeErrors bool // Include generation error detail in 503 responses
}

// SetupRoutes registers every route. authService may be nil, which leaves the
// auth endpoints out.
func SetupRoutes(
	router *gin.Engine,
	opts Options,
	logger *zap.Logger,
	trainingService service.TrainingService,
	scheduleService service.ScheduleService,
	authService service.AuthService,
) {
	trainingHandler := NewTrainingHandler(trainingService, opts.ExposeErrors, logger)
	scheduleHandler := NewScheduleHandler(scheduleService, logger)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Training API"})
	})

	apiGroup := router.Group("/api")

	if authService != nil {
		authHandler := NewAuthHandler(authService)
		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
		apiGroup.GET("/me", AuthMiddleware(opts.JWTSecret), authHandler.Me)
	}

	protected := apiGroup.Group("")
	if opts.AuthRequired {
		protected.Use(AuthMiddleware(opts.JWTSecret))
	}

	trainings := protected.Group("/trainings")
	{
		trainings.POST("", trainingHandler.GeneratePlan)
		trainings.GET("", trainingHandler.ListPlans)
		trainings.POST("/save", trainingHandler.SavePlan)
		trainings.GET("/:id", trainingHandler.GetPlan)
		trainings.DELETE("/:id", trainingHandler.DeletePlan)
		trainings.GET("/:id/export", trainingHandler.ExportPlan)
		trainings.POST("/:id/schedule", scheduleHandler.SchedulePlan)
	}

	schedule := protected.Group("/schedule")
	{
		schedule.GET("", scheduleHandler.ListSessions)
		schedule.PATCH("/:sessionId", scheduleHandler.UpdateSession)
		schedule.DELETE("/:sessionId", scheduleHandler.DeleteSession)
	}
}

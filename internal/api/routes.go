package api

import (
	"net/http"

	"alcyxob/fitplan/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(
	router *gin.Engine,
	tokens *TokenIssuer,
	sessions service.SessionManager,
) {
	sessionHandler := NewSessionHandler(sessions, tokens)
	planHandler := NewPlanHandler()

	sessionMiddleware := SessionMiddleware(tokens, sessions)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/sessions", sessionHandler.CreateSession)
		apiV1.GET("/questions", sessionHandler.GetQuestions)
	}

	protected := apiV1.Group("/session")
	protected.Use(sessionMiddleware)
	{
		protected.GET("", sessionHandler.GetSession)
		protected.DELETE("", sessionHandler.ResetSession)

		// --- Intake ---
		protected.PUT("/identity", sessionHandler.SetIdentity)
		protected.PUT("/answers/:questionId", sessionHandler.Answer)
		protected.POST("/intake/advance", sessionHandler.Advance)
		protected.POST("/intake/retreat", sessionHandler.Retreat)

		// --- Subscription ---
		protected.POST("/subscription", sessionHandler.ConfirmSubscription)
		protected.POST("/subscription/expire", sessionHandler.ExpireSubscription)
		protected.POST("/subscription/reactivate", sessionHandler.ReactivateSubscription)

		protected.POST("/views/:view", sessionHandler.Navigate)
		protected.PUT("/theme", sessionHandler.SetTheme)

		// --- Gated: intake completed AND subscription active ---
		gated := protected.Group("")
		gated.Use(GatedMiddleware())
		{
			gated.GET("/assessment", planHandler.GetAssessment)
			gated.GET("/plans", planHandler.GetPlans)
			gated.GET("/plans/:month", planHandler.GetPlan)
			gated.POST("/plans/:month/renew", planHandler.RenewMonth)
			gated.GET("/progress", planHandler.GetProgress)
			gated.POST("/progress/workouts/:id", planHandler.CompleteWorkout)
			gated.POST("/progress/meals/:id", planHandler.CompleteMeal)
			gated.POST("/progress/water", planHandler.LogWater)
		}
	}
}

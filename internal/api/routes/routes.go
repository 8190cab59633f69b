// Package routes defines the HTTP routes for the Interview Session Service.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/interviewly/interview-service/internal/api/handlers"
	"github.com/interviewly/interview-service/internal/api/middleware"
)

// Config holds the dependencies for setting up routes.
type Config struct {
	HealthHandler     *handlers.HealthHandler
	SessionsHandler   *handlers.SessionsHandler
	PhasesHandler     *handlers.PhasesHandler
	AgentsHandler     *handlers.AgentsHandler
	MetricsHandler    *handlers.MetricsHandler
	InterviewsHandler *handlers.InterviewsHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// Setup configures all routes on the Gin engine.
func Setup(r *gin.Engine, cfg *Config) {
	// API v1 routes - all routes under /api/v1/interview-service
	v1 := r.Group("/api/v1/interview-service")
	{
		// Health check routes (no auth required)
		v1.GET("/health", cfg.HealthHandler.Health)
		v1.GET("/ready", cfg.HealthHandler.Ready)
		v1.GET("/live", cfg.HealthHandler.Live)

		// Apply auth middleware to protected API routes
		protected := v1.Group("")
		protected.Use(cfg.AuthMiddleware.Authenticate())

		// --- Session Lifecycle Routes ---
		sessions := protected.Group("/sessions")
		{
			sessions.POST("", cfg.SessionsHandler.CreateSession)
			sessions.GET("/active", cfg.SessionsHandler.GetActiveSessions)
			sessions.GET("/:sessionId", cfg.SessionsHandler.GetSession)
			sessions.POST("/:sessionId/end", cfg.SessionsHandler.EndSession)

			sessions.POST("/:sessionId/responses", cfg.SessionsHandler.AddResponse)
			sessions.PUT("/:sessionId/metrics", cfg.SessionsHandler.UpdateMetrics)
			sessions.PUT("/:sessionId/eligibility", cfg.SessionsHandler.UpdateEligibility)
			sessions.GET("/:sessionId/exit-criteria", cfg.SessionsHandler.CheckExitCriteria)
			sessions.PUT("/:sessionId/exit-criteria", cfg.SessionsHandler.UpdateExitCriteria)

			// Phase transitions and timing
			phases := sessions.Group("/:sessionId/phases")
			{
				phases.GET("/duration", cfg.PhasesHandler.CheckDuration)
				phases.POST("/:phase/start", cfg.PhasesHandler.StartPhase)
				phases.POST("/:phase/end", cfg.PhasesHandler.EndPhase)
				phases.GET("/:phase/completion", cfg.PhasesHandler.GetCompletion)
				phases.PUT("/:phase/completion", cfg.PhasesHandler.UpdateCompletion)
				phases.GET("/:phase/metrics", cfg.MetricsHandler.GetPhaseMetrics)
			}

			// Agent registry state
			agents := sessions.Group("/:sessionId/agents")
			{
				agents.GET("/active", cfg.AgentsHandler.GetActive)
				agents.POST("/:agent/activate", cfg.AgentsHandler.Activate)
				agents.POST("/:agent/deactivate", cfg.AgentsHandler.Deactivate)
				agents.POST("/:agent/actions", cfg.AgentsHandler.RecordAction)
				agents.PUT("/:agent/metrics", cfg.AgentsHandler.ReplaceMetrics)
				agents.GET("/:agent/metrics", cfg.MetricsHandler.GetAgentMetrics)
			}

			// Metric roll-ups
			metrics := sessions.Group("/:sessionId/metrics")
			{
				metrics.PUT("/response-quality", cfg.MetricsHandler.UpdateResponseQuality)
				metrics.PUT("/time-management", cfg.MetricsHandler.UpdateTimeManagement)
				metrics.PUT("/technical-depth", cfg.MetricsHandler.UpdateTechnicalDepth)
				metrics.PUT("/behavioral-indicators", cfg.MetricsHandler.UpdateBehavioralIndicators)
			}
		}

		// --- Conversational Routes ---
		interviews := protected.Group("/interviews")
		{
			interviews.POST("", cfg.InterviewsHandler.StartInterview)
			interviews.POST("/:sessionId/turns", cfg.InterviewsHandler.ProcessTurn)
			interviews.DELETE("/:sessionId", cfg.InterviewsHandler.EndInterview)
		}
	}
}

// SetupWithMiddleware sets up routes with common middleware.
func SetupWithMiddleware(r *gin.Engine, cfg *Config, loggingMw *middleware.LoggingMiddleware, errorMw *middleware.ErrorMiddleware) {
	// Apply global middleware
	r.Use(loggingMw.Logger())
	r.Use(loggingMw.RequestLogger())
	r.Use(errorMw.Recovery())
	r.Use(gin.Recovery())

	// Setup routes
	Setup(r, cfg)
}

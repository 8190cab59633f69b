package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/interviewly/interview-service/internal/api/dto"
	"github.com/interviewly/interview-service/internal/api/middleware"
	"github.com/interviewly/interview-service/internal/core/metrics"
	domainerrors "github.com/interviewly/interview-service/internal/domain/errors"
)

// MetricsHandler handles interview metric roll-up endpoints.
type MetricsHandler struct {
	metrics *metrics.Manager
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(metrics *metrics.Manager) *MetricsHandler {
	return &MetricsHandler{metrics: metrics}
}

// UpdateResponseQuality handles PUT /sessions/:sessionId/metrics/response-quality.
// @Summary Update response quality
// @Description Records a response quality score globally and scoped to the phase
// @Tags Metrics
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body dto.ScopedScoreRequest true "Score"
// @Success 200 {object} map[string]string "Score recorded"
// @Failure 404 {object} middleware.ErrorResponse "Session not found"
// @Router /sessions/{sessionId}/metrics/response-quality [put]
func (h *MetricsHandler) UpdateResponseQuality(c *gin.Context) {
	var req dto.ScopedScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewBadRequestError("invalid request body", err.Error()))
		return
	}

	err := h.metrics.UpdateResponseQuality(c.Request.Context(), c.Param("sessionId"), req.Phase, req.Score)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

// UpdateTimeManagement handles PUT /sessions/:sessionId/metrics/time-management.
// @Summary Update time management
// @Description Records a time management breakdown; the overall entry becomes the global score
// @Tags Metrics
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body dto.PhaseScoreMapRequest true "Breakdown"
// @Success 200 {object} map[string]string "Breakdown recorded"
// @Failure 404 {object} middleware.ErrorResponse "Session not found"
// @Router /sessions/{sessionId}/metrics/time-management [put]
func (h *MetricsHandler) UpdateTimeManagement(c *gin.Context) {
	var req dto.PhaseScoreMapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewBadRequestError("invalid request body", err.Error()))
		return
	}

	err := h.metrics.UpdateTimeManagement(c.Request.Context(), c.Param("sessionId"), req.Phase, req.Scores)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

// UpdateTechnicalDepth handles PUT /sessions/:sessionId/metrics/technical-depth.
// @Summary Update technical depth
// @Description Records depth-of-knowledge scores for the technical areas
// @Tags Metrics
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body dto.ScoreMapRequest true "Depth scores"
// @Success 200 {object} map[string]string "Scores recorded"
// @Failure 404 {object} middleware.ErrorResponse "Session not found"
// @Router /sessions/{sessionId}/metrics/technical-depth [put]
func (h *MetricsHandler) UpdateTechnicalDepth(c *gin.Context) {
	var req dto.ScoreMapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewBadRequestError("invalid request body", err.Error()))
		return
	}

	if err := h.metrics.UpdateTechnicalDepth(c.Request.Context(), c.Param("sessionId"), req.Scores); err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

// UpdateBehavioralIndicators handles PUT /sessions/:sessionId/metrics/behavioral-indicators.
// @Summary Update behavioral indicators
// @Description Records behavioral indicator scores
// @Tags Metrics
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body dto.ScoreMapRequest true "Indicator scores"
// @Success 200 {object} map[string]string "Scores recorded"
// @Failure 404 {object} middleware.ErrorResponse "Session not found"
// @Router /sessions/{sessionId}/metrics/behavioral-indicators [put]
func (h *MetricsHandler) UpdateBehavioralIndicators(c *gin.Context) {
	var req dto.ScoreMapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewBadRequestError("invalid request body", err.Error()))
		return
	}

	err := h.metrics.UpdateBehavioralIndicators(c.Request.Context(), c.Param("sessionId"), req.Scores)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

// GetAgentMetrics handles GET /sessions/:sessionId/agents/:agent/metrics.
// @Summary Get agent metrics
// @Description Returns the metrics sub-map an agent last reported
// @Tags Metrics
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param agent path string true "Agent name"
// @Success 200 {object} dto.AgentMetricsResponse "Agent metrics"
// @Failure 404 {object} middleware.ErrorResponse "Session not found"
// @Router /sessions/{sessionId}/agents/{agent}/metrics [get]
func (h *MetricsHandler) GetAgentMetrics(c *gin.Context) {
	agentName := c.Param("agent")

	m, err := h.metrics.GetAgentMetrics(c.Request.Context(), c.Param("sessionId"), agentName)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AgentMetricsResponse{
		Agent:   agentName,
		Metrics: m,
	})
}

// GetPhaseMetrics handles GET /sessions/:sessionId/phases/:phase/metrics.
// @Summary Get phase metrics
// @Description Summarizes a phase: status, duration and its scoped metrics
// @Tags Metrics
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param phase path string true "Phase name"
// @Success 200 {object} metrics.PhaseMetrics "Phase summary"
// @Failure 404 {object} middleware.ErrorResponse "Session not found"
// @Router /sessions/{sessionId}/phases/{phase}/metrics [get]
func (h *MetricsHandler) GetPhaseMetrics(c *gin.Context) {
	summary, err := h.metrics.GetPhaseMetrics(c.Request.Context(), c.Param("sessionId"), c.Param("phase"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

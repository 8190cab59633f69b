package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/interviewly/interview-service/internal/api/dto"
	"github.com/interviewly/interview-service/internal/api/middleware"
	"github.com/interviewly/interview-service/internal/core/agent"
	domainerrors "github.com/interviewly/interview-service/internal/domain/errors"
)

// AgentsHandler handles agent state endpoints.
type AgentsHandler struct {
	agents *agent.Manager
}

// NewAgentsHandler creates a new AgentsHandler.
func NewAgentsHandler(agents *agent.Manager) *AgentsHandler {
	return &AgentsHandler{agents: agents}
}

// Activate handles POST /sessions/:sessionId/agents/:agent/activate.
// @Summary Activate agent
// @Description Marks the agent active in the session
// @Tags Agents
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param agent path string true "Agent name"
// @Success 200 {object} map[string]string "Agent activated"
// @Failure 404 {object} middleware.ErrorResponse "Session not found"
// @Failure 422 {object} middleware.ErrorResponse "Unknown agent"
// @Router /sessions/{sessionId}/agents/{agent}/activate [post]
func (h *AgentsHandler) Activate(c *gin.Context) {
	if err := h.agents.ActivateAgent(c.Request.Context(), c.Param("sessionId"), c.Param("agent")); err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "activated"})
}

// Deactivate handles POST /sessions/:sessionId/agents/:agent/deactivate.
// @Summary Deactivate agent
// @Description Marks the agent inactive in the session
// @Tags Agents
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param agent path string true "Agent name"
// @Success 200 {object} map[string]string "Agent deactivated"
// @Failure 404 {object} middleware.ErrorResponse "Session not found"
// @Failure 422 {object} middleware.ErrorResponse "Unknown agent"
// @Router /sessions/{sessionId}/agents/{agent}/deactivate [post]
func (h *AgentsHandler) Deactivate(c *gin.Context) {
	if err := h.agents.DeactivateAgent(c.Request.Context(), c.Param("sessionId"), c.Param("agent")); err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

// RecordAction handles POST /sessions/:sessionId/agents/:agent/actions.
// @Summary Record agent action
// @Description Records the agent's most recent action and its time
// @Tags Agents
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param agent path string true "Agent name"
// @Param request body dto.RecordAgentActionRequest true "Action"
// @Success 200 {object} map[string]string "Action recorded"
// @Failure 404 {object} middleware.ErrorResponse "Session not found"
// @Router /sessions/{sessionId}/agents/{agent}/actions [post]
func (h *AgentsHandler) RecordAction(c *gin.Context) {
	var req dto.RecordAgentActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewBadRequestError("invalid request body", err.Error()))
		return
	}

	err := h.agents.RecordAgentAction(c.Request.Context(), c.Param("sessionId"), c.Param("agent"), req.Action)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

// ReplaceMetrics handles PUT /sessions/:sessionId/agents/:agent/metrics.
// @Summary Replace agent metrics
// @Description Replaces the agent's metrics sub-map wholesale
// @Tags Agents
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param agent path string true "Agent name"
// @Param request body dto.ReplaceAgentMetricsRequest true "Metrics"
// @Success 200 {object} map[string]string "Metrics replaced"
// @Failure 404 {object} middleware.ErrorResponse "Session not found"
// @Router /sessions/{sessionId}/agents/{agent}/metrics [put]
func (h *AgentsHandler) ReplaceMetrics(c *gin.Context) {
	var req dto.ReplaceAgentMetricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewBadRequestError("invalid request body", err.Error()))
		return
	}

	err := h.agents.ReplaceAgentMetrics(c.Request.Context(), c.Param("sessionId"), c.Param("agent"), req.Metrics)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "replaced"})
}

// GetActive handles GET /sessions/:sessionId/agents/active.
// @Summary List active agents
// @Description Returns the agents currently active in the session
// @Tags Agents
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} dto.ActiveAgentsResponse "Active agents"
// @Router /sessions/{sessionId}/agents/active [get]
func (h *AgentsHandler) GetActive(c *gin.Context) {
	active := h.agents.GetActiveAgents(c.Request.Context(), c.Param("sessionId"))
	c.JSON(http.StatusOK, dto.ActiveAgentsResponse{Agents: active})
}

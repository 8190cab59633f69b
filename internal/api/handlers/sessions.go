package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/interviewly/interview-service/internal/api/dto"
	"github.com/interviewly/interview-service/internal/api/middleware"
	"github.com/interviewly/interview-service/internal/core/session"
	domainerrors "github.com/interviewly/interview-service/internal/domain/errors"
)

// SessionsHandler handles session lifecycle endpoints.
type SessionsHandler struct {
	sessions *session.Manager
}

// NewSessionsHandler creates a new SessionsHandler.
func NewSessionsHandler(sessions *session.Manager) *SessionsHandler {
	return &SessionsHandler{sessions: sessions}
}

// CreateSession handles POST /sessions.
// @Summary Create interview session
// @Description Creates a fully-initialized session for a candidate
// @Tags Sessions
// @Accept json
// @Produce json
// @Param request body dto.CreateSessionRequest true "Candidate"
// @Success 201 {object} dto.CreateSessionResponse "Session created"
// @Failure 400 {object} middleware.ErrorResponse "Invalid request"
// @Router /sessions [post]
func (h *SessionsHandler) CreateSession(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewBadRequestError("invalid request body", err.Error()))
		return
	}

	id, err := h.sessions.CreateSession(c.Request.Context(), req.CandidateID)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateSessionResponse{SessionID: id})
}

// GetSession handles GET /sessions/:sessionId.
// @Summary Get session
// @Description Returns the full session document
// @Tags Sessions
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} models.Session "Session"
// @Failure 404 {object} middleware.ErrorResponse "Session not found"
// @Router /sessions/{sessionId} [get]
func (h *SessionsHandler) GetSession(c *gin.Context) {
	id := c.Param("sessionId")

	s, err := h.sessions.GetSessionData(c.Request.Context(), id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	if s == nil {
		middleware.HandleError(c, domainerrors.NewNotFoundError("session", id))
		return
	}

	c.JSON(http.StatusOK, s)
}

// GetActiveSessions handles GET /sessions/active.
// @Summary List active sessions
// @Description Returns all sessions without an end time, keyed by ID
// @Tags Sessions
// @Produce json
// @Success 200 {object} dto.ActiveSessionsResponse "Active sessions"
// @Router /sessions/active [get]
func (h *SessionsHandler) GetActiveSessions(c *gin.Context) {
	active, err := h.sessions.GetActiveSessions(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ActiveSessionsResponse{
		Sessions: active,
		Count:    len(active),
	})
}

// EndSession handles POST /sessions/:sessionId/end.
// @Summary End session
// @Description Terminates the session, completing the active phase and recording the exit decision
// @Tags Sessions
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body dto.EndSessionRequest false "Exit decision"
// @Success 200 {object} map[string]string "Session ended"
// @Failure 404 {object} middleware.ErrorResponse "Session not found"
// @Failure 422 {object} middleware.ErrorResponse "Session already ended"
// @Router /sessions/{sessionId}/end [post]
func (h *SessionsHandler) EndSession(c *gin.Context) {
	id := c.Param("sessionId")

	var req dto.EndSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.HandleError(c, domainerrors.NewBadRequestError("invalid request body", err.Error()))
			return
		}
	}

	if err := h.sessions.EndSession(c.Request.Context(), id, req.ExitType, req.Reason); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ended"})
}

// AddResponse handles POST /sessions/:sessionId/responses.
// @Summary Record candidate response
// @Description Appends a candidate response to the phase's response sequence
// @Tags Sessions
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body dto.AddResponseRequest true "Response"
// @Success 200 {object} map[string]string "Response recorded"
// @Failure 404 {object} middleware.ErrorResponse "Session not found"
// @Router /sessions/{sessionId}/responses [post]
func (h *SessionsHandler) AddResponse(c *gin.Context) {
	id := c.Param("sessionId")

	var req dto.AddResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewBadRequestError("invalid request body", err.Error()))
		return
	}

	if err := h.sessions.AddResponse(c.Request.Context(), id, req.Phase, req.Response); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

// UpdateMetrics handles PUT /sessions/:sessionId/metrics.
// @Summary Update session metrics
// @Description Applies a metrics update, recomputing the overall score when a core score changes
// @Tags Sessions
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body dto.UpdateMetricsRequest true "Metrics"
// @Success 200 {object} map[string]string "Metrics updated"
// @Failure 404 {object} middleware.ErrorResponse "Session not found"
// @Failure 422 {object} middleware.ErrorResponse "Unknown metric"
// @Router /sessions/{sessionId}/metrics [put]
func (h *SessionsHandler) UpdateMetrics(c *gin.Context) {
	id := c.Param("sessionId")

	var req dto.UpdateMetricsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewBadRequestError("invalid request body", err.Error()))
		return
	}

	if err := h.sessions.UpdateMetrics(c.Request.Context(), id, req.Metrics); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// UpdateEligibility handles PUT /sessions/:sessionId/eligibility.
// @Summary Update eligibility flags
// @Description Merges eligibility flags into the session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body dto.UpdateEligibilityRequest true "Flags"
// @Success 200 {object} map[string]string "Eligibility updated"
// @Failure 404 {object} middleware.ErrorResponse "Session not found"
// @Router /sessions/{sessionId}/eligibility [put]
func (h *SessionsHandler) UpdateEligibility(c *gin.Context) {
	id := c.Param("sessionId")

	var req dto.UpdateEligibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewBadRequestError("invalid request body", err.Error()))
		return
	}

	if err := h.sessions.UpdateEligibility(c.Request.Context(), id, req.Flags); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// UpdateExitCriteria handles PUT /sessions/:sessionId/exit-criteria.
// @Summary Update exit criteria
// @Description Merges fields into the session's exit criteria record
// @Tags Sessions
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body dto.UpdateExitCriteriaRequest true "Fields"
// @Success 200 {object} map[string]string "Exit criteria updated"
// @Failure 404 {object} middleware.ErrorResponse "Session not found"
// @Router /sessions/{sessionId}/exit-criteria [put]
func (h *SessionsHandler) UpdateExitCriteria(c *gin.Context) {
	id := c.Param("sessionId")

	var req dto.UpdateExitCriteriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewBadRequestError("invalid request body", err.Error()))
		return
	}

	if err := h.sessions.UpdateExitCriteria(c.Request.Context(), id, req.Fields); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// CheckExitCriteria handles GET /sessions/:sessionId/exit-criteria.
// @Summary Evaluate exit criteria
// @Description Evaluates the session against the exit rules
// @Tags Sessions
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} dto.ExitDecisionResponse "Evaluation result"
// @Failure 404 {object} middleware.ErrorResponse "Session not found"
// @Router /sessions/{sessionId}/exit-criteria [get]
func (h *SessionsHandler) CheckExitCriteria(c *gin.Context) {
	id := c.Param("sessionId")

	decision, err := h.sessions.CheckExitCriteria(c.Request.Context(), id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	resp := dto.ExitDecisionResponse{Exit: decision != nil}
	if decision != nil {
		resp.ExitType = decision.ExitType
		resp.Reason = decision.Reason
	}
	c.JSON(http.StatusOK, resp)
}

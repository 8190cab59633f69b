package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/interviewly/interview-service/internal/api/dto"
	"github.com/interviewly/interview-service/internal/api/middleware"
	domainerrors "github.com/interviewly/interview-service/internal/domain/errors"
	"github.com/interviewly/interview-service/internal/services/pipeline"
)

// InterviewsHandler exposes the conversational surface: sessions driven
// turn by turn through the interview pipeline.
type InterviewsHandler struct {
	pipeline *pipeline.InterviewPipeline
}

// NewInterviewsHandler creates a new InterviewsHandler.
func NewInterviewsHandler(p *pipeline.InterviewPipeline) *InterviewsHandler {
	return &InterviewsHandler{pipeline: p}
}

// StartInterview handles POST /interviews.
// @Summary Start interview
// @Description Creates a session, advances it into the introduction phase and seeds the turn cache
// @Tags Interviews
// @Accept json
// @Produce json
// @Param request body dto.CreateSessionRequest true "Candidate"
// @Success 201 {object} dto.CreateSessionResponse "Interview started"
// @Failure 400 {object} middleware.ErrorResponse "Invalid request"
// @Router /interviews [post]
func (h *InterviewsHandler) StartInterview(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewBadRequestError("invalid request body", err.Error()))
		return
	}

	id, err := h.pipeline.CreateInterviewSession(c.Request.Context(), req.CandidateID)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateSessionResponse{SessionID: id})
}

// ProcessTurn handles POST /interviews/:sessionId/turns.
// @Summary Process interview turn
// @Description Runs one candidate utterance through the pipeline and returns the assistant response
// @Tags Interviews
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param request body dto.ProcessTurnRequest true "Utterance"
// @Success 200 {object} dto.ProcessTurnResponse "Assistant response"
// @Failure 404 {object} middleware.ErrorResponse "Session not found"
// @Failure 422 {object} middleware.ErrorResponse "Session already ended"
// @Router /interviews/{sessionId}/turns [post]
func (h *InterviewsHandler) ProcessTurn(c *gin.Context) {
	id := c.Param("sessionId")

	var req dto.ProcessTurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewBadRequestError("invalid request body", err.Error()))
		return
	}

	s, err := h.pipeline.GetSessionData(c.Request.Context(), id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	if s == nil {
		middleware.HandleError(c, domainerrors.NewNotFoundError("session", id))
		return
	}
	if s.IsEnded() {
		middleware.HandleError(c, domainerrors.NewValidationError("session already ended", id))
		return
	}

	ex := &pipeline.Exchange{
		SessionID:   id,
		CandidateID: s.CandidateID,
		Phase:       s.CurrentPhase,
	}
	if _, err := h.pipeline.Process(c.Request.Context(), req.Input, ex); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProcessTurnResponse{
		Response: ex.Response,
		Phase:    ex.Phase,
	})
}

// EndInterview handles DELETE /interviews/:sessionId.
// @Summary End interview
// @Description Ends the session normally and drops its turn cache
// @Tags Interviews
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} map[string]string "Interview ended"
// @Failure 404 {object} middleware.ErrorResponse "Session not found"
// @Failure 422 {object} middleware.ErrorResponse "Session already ended"
// @Router /interviews/{sessionId} [delete]
func (h *InterviewsHandler) EndInterview(c *gin.Context) {
	if err := h.pipeline.EndInterviewSession(c.Request.Context(), c.Param("sessionId")); err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ended"})
}

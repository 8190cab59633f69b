package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/interviewly/interview-service/internal/api/dto"
	"github.com/interviewly/interview-service/internal/api/middleware"
	"github.com/interviewly/interview-service/internal/core/phase"
	domainerrors "github.com/interviewly/interview-service/internal/domain/errors"
)

// PhasesHandler handles phase transition and timing endpoints.
type PhasesHandler struct {
	phases *phase.Manager
}

// NewPhasesHandler creates a new PhasesHandler.
func NewPhasesHandler(phases *phase.Manager) *PhasesHandler {
	return &PhasesHandler{phases: phases}
}

// StartPhase handles POST /sessions/:sessionId/phases/:phase/start.
// @Summary Start phase
// @Description Activates the phase after validating the sequence
// @Tags Phases
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param phase path string true "Phase name"
// @Success 200 {object} map[string]string "Phase started"
// @Failure 404 {object} middleware.ErrorResponse "Session not found"
// @Failure 422 {object} middleware.ErrorResponse "Out of order"
// @Router /sessions/{sessionId}/phases/{phase}/start [post]
func (h *PhasesHandler) StartPhase(c *gin.Context) {
	if err := h.phases.StartPhase(c.Request.Context(), c.Param("sessionId"), c.Param("phase")); err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "started"})
}

// EndPhase handles POST /sessions/:sessionId/phases/:phase/end.
// @Summary End phase
// @Description Marks the phase completed and records its end time
// @Tags Phases
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param phase path string true "Phase name"
// @Success 200 {object} map[string]string "Phase ended"
// @Failure 404 {object} middleware.ErrorResponse "Session not found"
// @Router /sessions/{sessionId}/phases/{phase}/end [post]
func (h *PhasesHandler) EndPhase(c *gin.Context) {
	if err := h.phases.EndPhase(c.Request.Context(), c.Param("sessionId"), c.Param("phase")); err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ended"})
}

// CheckDuration handles GET /sessions/:sessionId/phases/duration.
// @Summary Check phase duration
// @Description Reports how the active phase tracks against its time budget
// @Tags Phases
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} phase.DurationStatus "Duration status"
// @Success 204 "No timed phase active"
// @Failure 404 {object} middleware.ErrorResponse "Session not found"
// @Router /sessions/{sessionId}/phases/duration [get]
func (h *PhasesHandler) CheckDuration(c *gin.Context) {
	status, err := h.phases.CheckPhaseDuration(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	if status == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, status)
}

// GetCompletion handles GET /sessions/:sessionId/phases/:phase/completion.
// @Summary Get phase completion status
// @Description Returns the phase's completion flag map
// @Tags Phases
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param phase path string true "Phase name"
// @Success 200 {object} dto.CompletionStatusResponse "Completion flags"
// @Failure 404 {object} middleware.ErrorResponse "Session not found"
// @Router /sessions/{sessionId}/phases/{phase}/completion [get]
func (h *PhasesHandler) GetCompletion(c *gin.Context) {
	phaseName := c.Param("phase")

	completion, err := h.phases.GetPhaseCompletionStatus(c.Request.Context(), c.Param("sessionId"), phaseName)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CompletionStatusResponse{
		Phase:      phaseName,
		Completion: completion,
	})
}

// UpdateCompletion handles PUT /sessions/:sessionId/phases/:phase/completion.
// @Summary Update phase completion flags
// @Description Merges boolean completion flags into the phase record
// @Tags Phases
// @Accept json
// @Produce json
// @Param sessionId path string true "Session ID"
// @Param phase path string true "Phase name"
// @Param request body dto.UpdatePhaseCompletionRequest true "Flags"
// @Success 200 {object} map[string]string "Completion updated"
// @Failure 404 {object} middleware.ErrorResponse "Session not found"
// @Router /sessions/{sessionId}/phases/{phase}/completion [put]
func (h *PhasesHandler) UpdateCompletion(c *gin.Context) {
	var req dto.UpdatePhaseCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleError(c, domainerrors.NewBadRequestError("invalid request body", err.Error()))
		return
	}

	err := h.phases.UpdatePhaseCompletion(c.Request.Context(), c.Param("sessionId"), c.Param("phase"), req.Flags)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

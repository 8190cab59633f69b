package pipeline

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/interviewly/interview-service/internal/core/session"
	"github.com/interviewly/interview-service/internal/domain/models"
	"github.com/interviewly/interview-service/internal/services/turncache"
)

// InterviewPipeline wires the standard interview stage chain over a session
// manager and the turn cache.
type InterviewPipeline struct {
	*Pipeline

	sessions *session.Manager
	turns    turncache.Service
	logger   zerolog.Logger
}

// NewInterviewPipeline assembles the standard stage order.
func NewInterviewPipeline(sessions *session.Manager, turns turncache.Service) *InterviewPipeline {
	return &InterviewPipeline{
		Pipeline: NewPipeline(
			&TransportInput{},
			NewSTTService(DefaultSTTConfig()),
			UserContext(sessions, turns),
			NewLLMService(DefaultLLMConfig()),
			NewTTSService(),
			&TransportOutput{},
			AssistantContext(sessions, turns),
		),
		sessions: sessions,
		turns:    turns,
		logger:   log.With().Str("component", "interview_pipeline").Logger(),
	}
}

// CreateInterviewSession creates a session for the candidate and advances it
// into the introduction phase, seeding the turn cache.
func (p *InterviewPipeline) CreateInterviewSession(ctx context.Context, candidateID string) (string, error) {
	id, err := p.sessions.CreateSession(ctx, candidateID)
	if err != nil {
		return "", err
	}

	err = p.sessions.UpdateSessionData(ctx, id, session.SetCurrentPhase(models.PhaseIntroduction))
	if err != nil {
		return "", err
	}

	if err := p.turns.SetContext(ctx, turncache.NewTurnContext(id, candidateID, models.PhaseIntroduction)); err != nil {
		p.logger.Warn().Err(err).Str("session_id", id).Msg("failed to seed turn cache")
	}
	return id, nil
}

// GetSessionData returns the session document, or (nil, nil) when absent.
func (p *InterviewPipeline) GetSessionData(ctx context.Context, id string) (*models.Session, error) {
	return p.sessions.GetSessionData(ctx, id)
}

// EndInterviewSession ends the session normally and drops its turn cache.
func (p *InterviewPipeline) EndInterviewSession(ctx context.Context, id string) error {
	if err := p.sessions.EndSession(ctx, id, models.ExitTypeNormal, ""); err != nil {
		return err
	}

	if err := p.turns.DeleteContext(ctx, id); err != nil {
		p.logger.Warn().Err(err).Str("session_id", id).Msg("failed to drop turn cache")
	}
	return nil
}

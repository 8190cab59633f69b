package pipeline

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/interviewly/interview-service/internal/core/session"
	"github.com/interviewly/interview-service/internal/services/turncache"
)

// ContextStage persists one side of the exchange into the session document
// and the turn cache. The user stage runs after speech recognition, the
// assistant stage closes the chain.
type ContextStage struct {
	role     string
	sessions *session.Manager
	turns    turncache.Service
	logger   zerolog.Logger
}

// UserContext creates the stage that records the candidate's utterance and
// flushes any evaluation metrics gathered during the turn.
func UserContext(sessions *session.Manager, turns turncache.Service) *ContextStage {
	return newContextStage("user", sessions, turns)
}

// AssistantContext creates the stage that records the assistant response and
// applies a pending phase transition.
func AssistantContext(sessions *session.Manager, turns turncache.Service) *ContextStage {
	return newContextStage("assistant", sessions, turns)
}

func newContextStage(role string, sessions *session.Manager, turns turncache.Service) *ContextStage {
	return &ContextStage{
		role:     role,
		sessions: sessions,
		turns:    turns,
		logger:   log.With().Str("component", "pipeline").Str("stage", role+"_context").Logger(),
	}
}

// Process persists the payload's side of the exchange. The payload itself
// flows through unchanged.
func (s *ContextStage) Process(ctx context.Context, data interface{}, ex *Exchange) (interface{}, error) {
	if ex.SessionID == "" {
		return data, nil
	}

	if s.role == "user" {
		return data, s.processUser(ctx, data, ex)
	}
	return data, s.processAssistant(ctx, ex)
}

func (s *ContextStage) processUser(ctx context.Context, data interface{}, ex *Exchange) error {
	if utterance, ok := data.(string); ok && utterance != "" {
		if err := s.sessions.AddResponse(ctx, ex.SessionID, ex.Phase, utterance); err != nil {
			return err
		}
		s.cacheTurn(ctx, ex, utterance)
	}

	if len(ex.Metrics) > 0 {
		if err := s.sessions.UpdateMetrics(ctx, ex.SessionID, ex.Metrics); err != nil {
			return err
		}
	}
	return nil
}

func (s *ContextStage) processAssistant(ctx context.Context, ex *Exchange) error {
	if ex.NextPhase != "" && ex.NextPhase != ex.Phase {
		err := s.sessions.UpdateSessionData(ctx, ex.SessionID, session.SetCurrentPhase(ex.NextPhase))
		if err != nil {
			return err
		}
		ex.Phase = ex.NextPhase
	}

	if ex.Response != "" {
		s.cacheTurn(ctx, ex, ex.Response)
	}
	return nil
}

// cacheTurn appends the turn to the cached context. Cache failures are
// logged, not propagated; the session document remains the source of truth.
func (s *ContextStage) cacheTurn(ctx context.Context, ex *Exchange, content string) {
	err := s.turns.AppendTurns(ctx, ex.SessionID, turncache.Turn{
		Role:      s.role,
		Phase:     ex.Phase,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("session_id", ex.SessionID).Msg("failed to cache turn")
	}
}

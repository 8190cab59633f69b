// Package agent tracks the per-session state of the interview agent
// registry: activation, last actions and agent-reported metrics.
package agent

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/interviewly/interview-service/internal/core/session"
	domainerrors "github.com/interviewly/interview-service/internal/domain/errors"
	"github.com/interviewly/interview-service/internal/domain/models"
)

// Manager mutates agent records through the session manager's update
// primitives.
type Manager struct {
	sessions *session.Manager
	logger   zerolog.Logger
}

// NewManager creates an agent manager over the session manager.
func NewManager(sessions *session.Manager) *Manager {
	return &Manager{
		sessions: sessions,
		logger:   log.With().Str("component", "agent_manager").Logger(),
	}
}

// ActivateAgent marks the agent active and stamps its last action time.
func (m *Manager) ActivateAgent(ctx context.Context, id, agent string) error {
	return m.setStatus(ctx, id, agent, models.AgentStatusActive)
}

// DeactivateAgent marks the agent inactive and stamps its last action time.
func (m *Manager) DeactivateAgent(ctx context.Context, id, agent string) error {
	return m.setStatus(ctx, id, agent, models.AgentStatusInactive)
}

func (m *Manager) setStatus(ctx context.Context, id, agent, status string) error {
	err := m.sessions.UpdateSessionData(ctx, id,
		session.SetAgentField(agent, "status", status),
		session.SetAgentField(agent, "last_action_time", time.Now().UTC()),
	)
	if err != nil {
		return err
	}

	m.logger.Info().Str("session_id", id).Str("agent", agent).Str("status", status).Msg("agent status changed")
	return nil
}

// RecordAgentAction records the agent's most recent action and its time.
func (m *Manager) RecordAgentAction(ctx context.Context, id, agent, action string) error {
	if action == "" {
		return domainerrors.NewValidationError("empty agent action", agent)
	}
	return m.sessions.UpdateSessionData(ctx, id,
		session.SetAgentField(agent, "last_action", action),
		session.SetAgentField(agent, "last_action_time", time.Now().UTC()),
	)
}

// ReplaceAgentMetrics replaces the agent's metrics sub-map wholesale.
func (m *Manager) ReplaceAgentMetrics(ctx context.Context, id, agent string, metrics map[string]interface{}) error {
	return m.sessions.ReplaceAgentMetrics(ctx, id, agent, metrics)
}

// GetActiveAgents returns the names of agents currently active in the
// session. Lookup failures yield an empty list, not an error; callers use
// this for advisory display only.
func (m *Manager) GetActiveAgents(ctx context.Context, id string) []string {
	s, err := m.sessions.GetSessionData(ctx, id)
	if err != nil || s == nil {
		if err != nil {
			m.logger.Error().Err(err).Str("session_id", id).Msg("failed to load session for active agents")
		}
		return []string{}
	}

	active := make([]string, 0, len(models.AgentRegistry))
	for _, name := range models.AgentRegistry {
		if s.Agents[name].Status == models.AgentStatusActive {
			active = append(active, name)
		}
	}
	return active
}

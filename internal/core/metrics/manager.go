// Package metrics provides the interview metrics roll-up: real-time
// indicator updates phase-scoped and global, and per-phase summaries.
package metrics

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/interviewly/interview-service/internal/core/session"
	domainerrors "github.com/interviewly/interview-service/internal/domain/errors"
	"github.com/interviewly/interview-service/internal/domain/models"
)

// PhaseMetrics summarizes one phase: its status, wall-clock duration when
// both timestamps exist, and every metric recorded under the phase's
// qualified keys.
type PhaseMetrics struct {
	Phase    string                 `json:"phase"`
	Status   string                 `json:"status"`
	Duration *time.Duration         `json:"duration,omitempty"`
	Metrics  map[string]interface{} `json:"metrics"`
}

// Manager records and aggregates interview metrics through the session
// manager.
type Manager struct {
	sessions *session.Manager
	logger   zerolog.Logger
}

// NewManager creates a metrics manager over the session manager.
func NewManager(sessions *session.Manager) *Manager {
	return &Manager{
		sessions: sessions,
		logger:   log.With().Str("component", "metrics_manager").Logger(),
	}
}

// UpdateResponseQuality records a response quality score, both globally and
// scoped to the phase it was observed in.
func (m *Manager) UpdateResponseQuality(ctx context.Context, id, phase string, score float64) error {
	if !models.IsKnownPhase(phase) {
		return domainerrors.NewValidationError("unknown phase", phase)
	}
	return m.sessions.UpdateMetrics(ctx, id, map[string]interface{}{
		models.MetricResponseQuality:               score,
		models.MetricResponseQuality + "_" + phase: score,
	})
}

// UpdateTimeManagement records a time management breakdown. The overall
// entry becomes the global time_management score; the full breakdown is
// stored under the phase-qualified key.
func (m *Manager) UpdateTimeManagement(ctx context.Context, id, phase string, breakdown map[string]float64) error {
	if !models.IsKnownPhase(phase) {
		return domainerrors.NewValidationError("unknown phase", phase)
	}
	return m.sessions.UpdateMetrics(ctx, id, map[string]interface{}{
		models.MetricTimeManagement:               breakdown["overall"],
		models.MetricTimeManagement + "_" + phase: breakdown,
	})
}

// UpdateTechnicalDepth destructures depth-of-knowledge sub-scores (overall,
// system_design, coding, architecture) into the fixed depth fields. Missing
// sub-scores reset their field to zero.
func (m *Manager) UpdateTechnicalDepth(ctx context.Context, id string, depths map[string]float64) error {
	for key := range depths {
		switch key {
		case "overall", "system_design", "coding", "architecture":
		default:
			return domainerrors.NewValidationError("unknown technical depth sub-score", key)
		}
	}
	return m.sessions.UpdateMetrics(ctx, id, map[string]interface{}{
		models.MetricTechnicalDepth:    depths["overall"],
		models.MetricSystemDesignDepth: depths["system_design"],
		models.MetricCodingDepth:       depths["coding"],
		models.MetricArchitectureDepth: depths["architecture"],
	})
}

// UpdateBehavioralIndicators destructures behavioral sub-scores (overall,
// leadership, problem_solving, collaboration) into the fixed indicator
// fields. Missing sub-scores reset their field to zero.
func (m *Manager) UpdateBehavioralIndicators(ctx context.Context, id string, indicators map[string]float64) error {
	for key := range indicators {
		switch key {
		case "overall", "leadership", "problem_solving", "collaboration":
		default:
			return domainerrors.NewValidationError("unknown behavioral indicator", key)
		}
	}
	return m.sessions.UpdateMetrics(ctx, id, map[string]interface{}{
		models.MetricBehavioralIndicators:     indicators["overall"],
		models.MetricLeadershipIndicators:     indicators["leadership"],
		models.MetricProblemSolvingIndicators: indicators["problem_solving"],
		models.MetricCollaborationIndicators:  indicators["collaboration"],
	})
}

// GetAgentMetrics returns the metrics sub-map an agent last reported, or an
// empty map when the agent has reported nothing.
func (m *Manager) GetAgentMetrics(ctx context.Context, id, agent string) (map[string]interface{}, error) {
	if !models.IsKnownAgent(agent) {
		return nil, domainerrors.NewValidationError("unknown agent", agent)
	}

	s, err := m.sessions.GetSessionData(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domainerrors.NewNotFoundError("session", id)
	}

	metrics := s.Agents[agent].Metrics
	if metrics == nil {
		metrics = map[string]interface{}{}
	}
	return metrics, nil
}

// GetPhaseMetrics summarizes a phase: status, duration and every metric
// recorded under keys qualified with the phase name.
func (m *Manager) GetPhaseMetrics(ctx context.Context, id, phase string) (*PhaseMetrics, error) {
	if !models.IsKnownPhase(phase) {
		return nil, domainerrors.NewValidationError("unknown phase", phase)
	}

	s, err := m.sessions.GetSessionData(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domainerrors.NewNotFoundError("session", id)
	}

	record := s.Phases[phase]
	summary := &PhaseMetrics{
		Phase:   phase,
		Status:  record.Status,
		Metrics: map[string]interface{}{},
	}
	if record.StartTime != nil && record.EndTime != nil {
		d := record.EndTime.Sub(*record.StartTime)
		summary.Duration = &d
	}

	suffix := "_" + phase
	for key, value := range s.Metrics.PhaseScoped {
		if strings.HasSuffix(key, suffix) {
			summary.Metrics[key] = value
		}
	}
	return summary, nil
}

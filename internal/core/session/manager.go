// Package session implements the interview session lifecycle: creation,
// phase transition primitives, metric aggregation, exit-criteria evaluation
// and termination.
package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/interviewly/interview-service/internal/core/docdb"
	domainerrors "github.com/interviewly/interview-service/internal/domain/errors"
	"github.com/interviewly/interview-service/internal/domain/models"
	"github.com/interviewly/interview-service/internal/pkg/telemetry"
)

// Manager owns the session document. All mutations of a session go through
// its primitives; ordering rules are layered on top by the phase manager.
//
// Concurrency: a session is expected to be driven by a single orchestrator
// instance at a time. UpdateMetrics reads the stored document immediately
// before its write to merge core scores; concurrent writers to the same
// session can lose an overall_score update.
type Manager struct {
	store  docdb.SessionStore
	logger zerolog.Logger
}

// NewManager creates a session manager over the given store.
func NewManager(store docdb.SessionStore) *Manager {
	return &Manager{
		store:  store,
		logger: log.With().Str("component", "session_manager").Logger(),
	}
}

// CreateSession creates a new interview session for the candidate and
// returns its identifier. The document is fully initialized: phase
// pre_interview current, all phases pending, all agents inactive, all
// metrics zero.
func (m *Manager) CreateSession(ctx context.Context, candidateID string) (string, error) {
	id, err := m.store.Insert(ctx, models.NewSession(candidateID))
	if err != nil {
		return "", domainerrors.NewStorageUnavailableError("create session", err)
	}

	telemetry.SessionsStarted.Inc()
	m.logger.Info().Str("session_id", id).Str("candidate_id", candidateID).Msg("session created")
	return id, nil
}

// GetSessionData retrieves the full session document. Returns (nil, nil)
// when the identifier is malformed or no session matches.
func (m *Manager) GetSessionData(ctx context.Context, id string) (*models.Session, error) {
	session, err := m.store.FindByID(ctx, id)
	if err != nil {
		return nil, domainerrors.NewStorageUnavailableError("get session", err)
	}
	return session, nil
}

// UpdateSessionData applies a validated field-level merge to the session
// document. Only the named leaves are replaced; siblings are untouched.
func (m *Manager) UpdateSessionData(ctx context.Context, id string, updates ...FieldUpdate) error {
	fields, err := resolveUpdates(updates)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	return m.applyFields(ctx, id, fields)
}

// StartPhase marks the phase active, records its start time and moves the
// session's current phase pointer. Ordering is not validated here; that is
// the phase manager's responsibility.
func (m *Manager) StartPhase(ctx context.Context, id, phase string) error {
	now := time.Now().UTC()
	err := m.UpdateSessionData(ctx, id,
		SetPhaseField(phase, "status", models.PhaseStatusActive),
		SetPhaseField(phase, "start_time", now),
		SetCurrentPhase(phase),
	)
	if err != nil {
		return err
	}

	telemetry.PhaseTransitions.WithLabelValues(phase, "started").Inc()
	m.logger.Info().Str("session_id", id).Str("phase", phase).Msg("phase started")
	return nil
}

// EndPhase marks the phase completed and records its end time.
func (m *Manager) EndPhase(ctx context.Context, id, phase string) error {
	now := time.Now().UTC()
	err := m.UpdateSessionData(ctx, id,
		SetPhaseField(phase, "status", models.PhaseStatusCompleted),
		SetPhaseField(phase, "end_time", now),
	)
	if err != nil {
		return err
	}

	telemetry.PhaseTransitions.WithLabelValues(phase, "ended").Inc()
	m.logger.Info().Str("session_id", id).Str("phase", phase).Msg("phase ended")
	return nil
}

// UpdatePhaseStatus merges boolean completion flags into a phase record.
func (m *Manager) UpdatePhaseStatus(ctx context.Context, id, phase string, flags map[string]bool) error {
	updates := make([]FieldUpdate, 0, len(flags))
	for flag, value := range flags {
		updates = append(updates, SetPhaseCompletion(phase, flag, value))
	}
	return m.UpdateSessionData(ctx, id, updates...)
}

// UpdateExitCriteria merges fields into the exit criteria record.
func (m *Manager) UpdateExitCriteria(ctx context.Context, id string, fields map[string]interface{}) error {
	updates := make([]FieldUpdate, 0, len(fields))
	for field, value := range fields {
		updates = append(updates, SetExitField(field, value))
	}
	return m.UpdateSessionData(ctx, id, updates...)
}

// UpdateEligibility merges eligibility flags into the session document.
func (m *Manager) UpdateEligibility(ctx context.Context, id string, flags map[string]bool) error {
	updates := make([]FieldUpdate, 0, len(flags))
	for flag, value := range flags {
		updates = append(updates, SetEligibility(flag, value))
	}
	return m.UpdateSessionData(ctx, id, updates...)
}

// AddResponse appends a candidate response to the phase's response sequence.
// Responses are append-only; nothing is ever removed or reordered.
func (m *Manager) AddResponse(ctx context.Context, id, phase, response string) error {
	if !models.IsKnownPhase(phase) {
		return domainerrors.NewValidationError("unknown phase", phase)
	}

	modified, err := m.store.AppendToArray(ctx, id, "responses."+phase, response)
	if err != nil {
		return domainerrors.NewStorageUnavailableError("add response", err)
	}
	if modified == 0 {
		return domainerrors.NewNotFoundError("session", id)
	}
	return nil
}

// UpdateMetrics applies a metrics update. The three weighted core scores are
// merged with the currently stored values and overall_score is recomputed
// from that merge whenever any of them is supplied; indicator and
// phase-qualified fields are set directly. All resulting field-sets go to
// the store in one write.
func (m *Manager) UpdateMetrics(ctx context.Context, id string, metrics map[string]interface{}) error {
	for key := range metrics {
		if !models.IsKnownMetric(key) {
			return domainerrors.NewValidationError("unknown metric", key)
		}
	}

	session, err := m.GetSessionData(ctx, id)
	if err != nil {
		return err
	}
	if session == nil {
		return domainerrors.NewNotFoundError("session", id)
	}

	fields := make(map[string]interface{}, len(metrics)+1)
	coreUpdated := false
	merged := map[string]float64{
		models.MetricTechnicalScore:  session.Metrics.TechnicalScore,
		models.MetricBehavioralScore: session.Metrics.BehavioralScore,
		models.MetricCulturalScore:   session.Metrics.CulturalScore,
	}

	for key, value := range metrics {
		fields["metrics."+key] = value
		if _, ok := models.CoreScoreWeights[key]; ok {
			score, numOK := toFloat(value)
			if !numOK {
				return domainerrors.NewValidationError("core score must be numeric", key)
			}
			merged[key] = score
			coreUpdated = true
		}
	}

	if coreUpdated {
		fields["metrics."+models.MetricOverallScore] = models.WeightedOverall(
			merged[models.MetricTechnicalScore],
			merged[models.MetricBehavioralScore],
			merged[models.MetricCulturalScore],
		)
	}

	return m.applyFields(ctx, id, fields)
}

// ReplaceAgentMetrics replaces an agent's metrics sub-map wholesale. Last
// write wins; no merge with previous agent metrics.
func (m *Manager) ReplaceAgentMetrics(ctx context.Context, id, agent string, metrics map[string]interface{}) error {
	return m.UpdateSessionData(ctx, id, SetAgentField(agent, "metrics", metrics))
}

// EndSession terminates the session. An active current phase is completed
// first, the end time is stamped and the exit decision recorded. An
// immediate exit additionally marks every phase from the current one onward
// skipped, without resurrecting phases that already completed.
func (m *Manager) EndSession(ctx context.Context, id, exitType, reason string) error {
	if exitType == "" {
		exitType = models.ExitTypeNormal
	}
	switch exitType {
	case models.ExitTypeImmediate, models.ExitTypeMidInterview, models.ExitTypeNormal:
	default:
		return domainerrors.NewValidationError("unknown exit type", exitType)
	}

	session, err := m.GetSessionData(ctx, id)
	if err != nil {
		return err
	}
	if session == nil {
		return domainerrors.NewNotFoundError("session", id)
	}
	if session.IsEnded() {
		return domainerrors.NewValidationError("session already ended", id)
	}

	now := time.Now().UTC()
	updates := []FieldUpdate{
		SetEndTime(now),
		SetExitField("exit_type", exitType),
		SetExitField("completion_status", models.ExitStatusCompleted),
	}
	if reason != "" {
		updates = append(updates, SetExitField("reason", reason))
	}

	completedNow := session.ActivePhase()
	if completedNow != "" {
		updates = append(updates,
			SetPhaseField(completedNow, "status", models.PhaseStatusCompleted),
			SetPhaseField(completedNow, "end_time", now),
		)
	}

	if exitType == models.ExitTypeImmediate {
		updates = append(updates, m.skipCascade(session, completedNow, reason)...)
	}

	if err := m.UpdateSessionData(ctx, id, updates...); err != nil {
		return err
	}

	telemetry.SessionsEnded.WithLabelValues(exitType).Inc()
	m.logger.Info().
		Str("session_id", id).
		Str("exit_type", exitType).
		Str("reason", reason).
		Msg("session ended")
	return nil
}

// skipCascade builds the updates that mark every phase from the current one
// onward skipped. Phases already completed, and the phase completed by this
// termination, keep their status. A missing or unknown current phase is
// tolerated; the cascade is simply skipped.
func (m *Manager) skipCascade(session *models.Session, completedNow, reason string) []FieldUpdate {
	idx := models.PhaseIndex(session.CurrentPhase)
	if idx < 0 {
		return nil
	}

	var updates []FieldUpdate
	for _, phase := range models.PhaseSequence[idx:] {
		if phase == completedNow {
			continue
		}
		if session.Phases[phase].Status == models.PhaseStatusCompleted {
			continue
		}
		updates = append(updates, SetPhaseField(phase, "status", models.PhaseStatusSkipped))
		if reason != "" {
			updates = append(updates, SetPhaseField(phase, "skip_reason", reason))
		}
	}
	return updates
}

// GetActiveSessions returns all sessions without an end time, keyed by
// identifier.
func (m *Manager) GetActiveSessions(ctx context.Context) (map[string]*models.Session, error) {
	sessions, err := m.store.FindActive(ctx)
	if err != nil {
		return nil, domainerrors.NewStorageUnavailableError("list active sessions", err)
	}

	active := make(map[string]*models.Session, len(sessions))
	for _, s := range sessions {
		active[s.ID] = s
	}
	return active, nil
}

// applyFields writes a resolved dot-path field map and converts the outcome
// into the error taxonomy: a zero modified count means no matching document
// was changed.
func (m *Manager) applyFields(ctx context.Context, id string, fields map[string]interface{}) error {
	modified, err := m.store.UpdateFields(ctx, id, fields)
	if err != nil {
		return domainerrors.NewStorageUnavailableError("update session", err)
	}
	if modified == 0 {
		return domainerrors.NewNotFoundError("session", id)
	}
	return nil
}

// toFloat coerces the numeric types a metrics payload can carry.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Package phase enforces the interview phase sequence and duration budgets
// on top of the session manager's transition primitives.
package phase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/interviewly/interview-service/internal/core/session"
	domainerrors "github.com/interviewly/interview-service/internal/domain/errors"
	"github.com/interviewly/interview-service/internal/domain/models"
)

// PhaseDurations allocates a time budget per phase. A nil entry means the
// phase is untimed.
var PhaseDurations = map[string]*time.Duration{
	models.PhasePreInterview: nil,
	models.PhaseIntroduction: durationPtr(5 * time.Minute),
	models.PhaseTechnical:    durationPtr(25 * time.Minute),
	models.PhaseBehavioral:   durationPtr(15 * time.Minute),
	models.PhaseWrapUp:       durationPtr(5 * time.Minute),
}

// warningWindow is how much remaining budget triggers a warning status.
const warningWindow = 2 * time.Minute

func durationPtr(d time.Duration) *time.Duration {
	return &d
}

// DurationStatus reports how an active phase is tracking against its budget.
type DurationStatus struct {
	Phase     string         `json:"phase"`
	Elapsed   time.Duration  `json:"elapsed"`
	Allocated *time.Duration `json:"allocated,omitempty"`
	Remaining *time.Duration `json:"remaining,omitempty"`
	Status    string         `json:"status"`
}

// Duration status values.
const (
	DurationInProgress = "in_progress"
	DurationWarning    = "warning"
)

// Manager layers ordering and timing rules over session phase transitions.
type Manager struct {
	sessions *session.Manager
	logger   zerolog.Logger
}

// NewManager creates a phase manager over the session manager.
func NewManager(sessions *session.Manager) *Manager {
	return &Manager{
		sessions: sessions,
		logger:   log.With().Str("component", "phase_manager").Logger(),
	}
}

// StartPhase validates that every earlier phase in the sequence is completed
// or skipped, then activates the phase. The error names the first blocking
// predecessor.
func (m *Manager) StartPhase(ctx context.Context, id, phase string) error {
	idx := models.PhaseIndex(phase)
	if idx < 0 {
		return domainerrors.NewValidationError("unknown phase", phase)
	}

	s, err := m.sessions.GetSessionData(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return domainerrors.NewNotFoundError("session", id)
	}
	if s.IsEnded() {
		return domainerrors.NewValidationError("session already ended", id)
	}

	for _, earlier := range models.PhaseSequence[:idx] {
		status := s.Phases[earlier].Status
		if status != models.PhaseStatusCompleted && status != models.PhaseStatusSkipped {
			return domainerrors.NewValidationError(
				fmt.Sprintf("cannot start phase %s before %s is finished", phase, earlier), earlier)
		}
	}

	return m.sessions.StartPhase(ctx, id, phase)
}

// EndPhase completes the phase.
func (m *Manager) EndPhase(ctx context.Context, id, phase string) error {
	if !models.IsKnownPhase(phase) {
		return domainerrors.NewValidationError("unknown phase", phase)
	}
	return m.sessions.EndPhase(ctx, id, phase)
}

// CheckPhaseDuration reports the active phase's progress against its time
// budget. An untimed phase reports in_progress with elapsed time only.
// Returns (nil, nil) when no phase is active or it lacks a start time.
func (m *Manager) CheckPhaseDuration(ctx context.Context, id string) (*DurationStatus, error) {
	s, err := m.sessions.GetSessionData(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domainerrors.NewNotFoundError("session", id)
	}

	active := s.ActivePhase()
	if active == "" {
		return nil, nil
	}

	record := s.Phases[active]
	if record.StartTime == nil {
		return nil, nil
	}
	elapsed := time.Since(*record.StartTime)
	allocated := PhaseDurations[active]
	if allocated == nil {
		return &DurationStatus{
			Phase:   active,
			Elapsed: elapsed,
			Status:  DurationInProgress,
		}, nil
	}

	remaining := *allocated - elapsed
	status := DurationInProgress
	if remaining < warningWindow {
		status = DurationWarning
		m.logger.Warn().
			Str("session_id", id).
			Str("phase", active).
			Dur("remaining", remaining).
			Msg("phase nearing time budget")
	}

	return &DurationStatus{
		Phase:     active,
		Elapsed:   elapsed,
		Allocated: allocated,
		Remaining: &remaining,
		Status:    status,
	}, nil
}

// GetPhaseCompletionStatus returns the phase's completion flag map.
func (m *Manager) GetPhaseCompletionStatus(ctx context.Context, id, phase string) (map[string]bool, error) {
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
	return s.Phases[phase].Completion, nil
}

// UpdatePhaseCompletion merges completion flags into the phase record.
func (m *Manager) UpdatePhaseCompletion(ctx context.Context, id, phase string, flags map[string]bool) error {
	return m.sessions.UpdatePhaseStatus(ctx, id, phase, flags)
}

package metrics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interviewly/interview-service/internal/core/metrics"
	"github.com/interviewly/interview-service/internal/core/session"
	domainerrors "github.com/interviewly/interview-service/internal/domain/errors"
	"github.com/interviewly/interview-service/internal/domain/models"
	"github.com/interviewly/interview-service/tests/mocks"
)

func newManagers(t *testing.T) (*metrics.Manager, *session.Manager, *mocks.FakeSessionStore) {
	t.Helper()
	store := mocks.NewFakeSessionStore()
	sessions := session.NewManager(store)
	return metrics.NewManager(sessions), sessions, store
}

func newSession(t *testing.T, sessions *session.Manager) string {
	t.Helper()
	id, err := sessions.CreateSession(context.Background(), "candidate-42")
	require.NoError(t, err)
	return id
}

func TestUpdateResponseQuality_GlobalAndPhaseScoped(t *testing.T) {
	// Arrange
	mgr, sessions, _ := newManagers(t)
	id := newSession(t, sessions)

	// Act
	err := mgr.UpdateResponseQuality(context.Background(), id, models.PhaseTechnical, 0.85)

	// Assert
	require.NoError(t, err)
	s, err := sessions.GetSessionData(context.Background(), id)
	require.NoError(t, err)
	assert.InDelta(t, 0.85, s.Metrics.ResponseQuality, 1e-9)
	assert.Equal(t, 0.85, s.Metrics.PhaseScoped["response_quality_technical"])
}

func TestUpdateTimeManagement_BreakdownStoredPhaseScoped(t *testing.T) {
	// Arrange
	mgr, sessions, _ := newManagers(t)
	id := newSession(t, sessions)
	breakdown := map[string]float64{"overall": 0.6, "pacing": 0.5}

	// Act
	err := mgr.UpdateTimeManagement(context.Background(), id, models.PhaseTechnical, breakdown)

	// Assert: overall becomes the global score, breakdown kept per phase.
	require.NoError(t, err)
	s, err := sessions.GetSessionData(context.Background(), id)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, s.Metrics.TimeManagement, 1e-9)
	assert.Equal(t, breakdown, s.Metrics.PhaseScoped["time_management_technical"])
}

func TestUpdateTimeManagement_UnknownPhase(t *testing.T) {
	// Arrange
	mgr, sessions, _ := newManagers(t)
	id := newSession(t, sessions)

	// Act
	err := mgr.UpdateTimeManagement(context.Background(), id, "lunch_break", map[string]float64{"overall": 0.5})

	// Assert
	assert.True(t, domainerrors.IsValidation(err))
}

func TestUpdateTechnicalDepth(t *testing.T) {
	// Arrange
	mgr, sessions, _ := newManagers(t)
	id := newSession(t, sessions)

	// Act
	err := mgr.UpdateTechnicalDepth(context.Background(), id, map[string]float64{
		"overall":       0.7,
		"system_design": 0.6,
	})

	// Assert: named sub-scores land in their fields, omitted ones reset.
	require.NoError(t, err)
	s, err := sessions.GetSessionData(context.Background(), id)
	require.NoError(t, err)
	assert.InDelta(t, 0.7, s.Metrics.TechnicalDepth, 1e-9)
	assert.InDelta(t, 0.6, s.Metrics.SystemDesignDepth, 1e-9)
	assert.Zero(t, s.Metrics.CodingDepth)
	assert.Zero(t, s.Metrics.ArchitectureDepth)
}

func TestUpdateTechnicalDepth_RejectsUnknownSubScore(t *testing.T) {
	// Arrange
	mgr, sessions, _ := newManagers(t)
	id := newSession(t, sessions)

	// Act
	err := mgr.UpdateTechnicalDepth(context.Background(), id, map[string]float64{
		"charisma": 0.7,
	})

	// Assert
	assert.True(t, domainerrors.IsValidation(err))
}

func TestUpdateBehavioralIndicators(t *testing.T) {
	// Arrange
	mgr, sessions, _ := newManagers(t)
	id := newSession(t, sessions)

	// Act
	err := mgr.UpdateBehavioralIndicators(context.Background(), id, map[string]float64{
		"overall":       0.85,
		"leadership":    0.8,
		"collaboration": 0.9,
	})

	// Assert
	require.NoError(t, err)
	s, err := sessions.GetSessionData(context.Background(), id)
	require.NoError(t, err)
	assert.InDelta(t, 0.85, s.Metrics.BehavioralIndicators, 1e-9)
	assert.InDelta(t, 0.8, s.Metrics.LeadershipIndicators, 1e-9)
	assert.InDelta(t, 0.9, s.Metrics.CollaborationIndicators, 1e-9)
	assert.Zero(t, s.Metrics.ProblemSolvingIndicators)
}

func TestGetAgentMetrics_EmptyByDefault(t *testing.T) {
	// Arrange
	mgr, sessions, _ := newManagers(t)
	id := newSession(t, sessions)

	// Act
	m, err := mgr.GetAgentMetrics(context.Background(), id, models.AgentResponseAnalysis)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, m)
	assert.NotNil(t, m)
}

func TestGetAgentMetrics_AfterReplace(t *testing.T) {
	// Arrange
	mgr, sessions, _ := newManagers(t)
	id := newSession(t, sessions)
	require.NoError(t, sessions.ReplaceAgentMetrics(context.Background(), id, models.AgentResponseAnalysis,
		map[string]interface{}{"clarity": 0.8}))

	// Act
	m, err := mgr.GetAgentMetrics(context.Background(), id, models.AgentResponseAnalysis)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0.8, m["clarity"])
}

func TestGetPhaseMetrics_StatusDurationAndScopedValues(t *testing.T) {
	// Arrange
	mgr, sessions, store := newManagers(t)
	id := newSession(t, sessions)
	require.NoError(t, sessions.StartPhase(context.Background(), id, models.PhaseTechnical))
	require.NoError(t, sessions.EndPhase(context.Background(), id, models.PhaseTechnical))
	require.NoError(t, mgr.UpdateResponseQuality(context.Background(), id, models.PhaseTechnical, 0.85))
	require.NoError(t, mgr.UpdateTimeManagement(context.Background(), id, models.PhaseTechnical,
		map[string]float64{"overall": 0.6}))

	// Stretch the recorded phase window to a known duration.
	stored := store.Stored(id)
	record := stored.Phases[models.PhaseTechnical]
	start := record.EndTime.Add(-10 * time.Minute)
	record.StartTime = &start
	stored.Phases[models.PhaseTechnical] = record

	// Act
	summary, err := mgr.GetPhaseMetrics(context.Background(), id, models.PhaseTechnical)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.PhaseTechnical, summary.Phase)
	assert.Equal(t, models.PhaseStatusCompleted, summary.Status)
	require.NotNil(t, summary.Duration)
	assert.Equal(t, 10*time.Minute, *summary.Duration)
	assert.Equal(t, 0.85, summary.Metrics["response_quality_technical"])
	assert.Equal(t, map[string]float64{"overall": 0.6}, summary.Metrics["time_management_technical"])
}

func TestGetPhaseMetrics_NoTimestampsNoDuration(t *testing.T) {
	// Arrange
	mgr, sessions, _ := newManagers(t)
	id := newSession(t, sessions)

	// Act
	summary, err := mgr.GetPhaseMetrics(context.Background(), id, models.PhaseBehavioral)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, models.PhaseStatusPending, summary.Status)
	assert.Nil(t, summary.Duration)
	assert.Empty(t, summary.Metrics)
}

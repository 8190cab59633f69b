package phase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interviewly/interview-service/internal/core/phase"
	"github.com/interviewly/interview-service/internal/core/session"
	domainerrors "github.com/interviewly/interview-service/internal/domain/errors"
	"github.com/interviewly/interview-service/internal/domain/models"
	"github.com/interviewly/interview-service/tests/mocks"
)

func newManagers(t *testing.T) (*phase.Manager, *session.Manager, *mocks.FakeSessionStore) {
	t.Helper()
	store := mocks.NewFakeSessionStore()
	sessions := session.NewManager(store)
	return phase.NewManager(sessions), sessions, store
}

func newSession(t *testing.T, sessions *session.Manager) string {
	t.Helper()
	id, err := sessions.CreateSession(context.Background(), "candidate-42")
	require.NoError(t, err)
	return id
}

func finishPhase(t *testing.T, mgr *phase.Manager, id, name string) {
	t.Helper()
	require.NoError(t, mgr.StartPhase(context.Background(), id, name))
	require.NoError(t, mgr.EndPhase(context.Background(), id, name))
}

func TestStartPhase_FirstInSequence(t *testing.T) {
	// Arrange
	mgr, sessions, _ := newManagers(t)
	id := newSession(t, sessions)

	// Act
	err := mgr.StartPhase(context.Background(), id, models.PhasePreInterview)

	// Assert
	require.NoError(t, err)
	s, err := sessions.GetSessionData(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseStatusActive, s.Phases[models.PhasePreInterview].Status)
}

func TestStartPhase_OutOfOrder(t *testing.T) {
	// Arrange
	mgr, sessions, _ := newManagers(t)
	id := newSession(t, sessions)

	// Act
	err := mgr.StartPhase(context.Background(), id, models.PhaseTechnical)

	// Assert: the error names the first unfinished predecessor.
	require.Error(t, err)
	assert.True(t, domainerrors.IsValidation(err))
	domainErr, ok := domainerrors.GetDomainError(err)
	require.True(t, ok)
	assert.Contains(t, domainErr.Message, models.PhasePreInterview)
}

func TestStartPhase_AfterPredecessorsFinished(t *testing.T) {
	// Arrange
	mgr, sessions, _ := newManagers(t)
	id := newSession(t, sessions)
	finishPhase(t, mgr, id, models.PhasePreInterview)
	finishPhase(t, mgr, id, models.PhaseIntroduction)

	// Act
	err := mgr.StartPhase(context.Background(), id, models.PhaseTechnical)

	// Assert
	require.NoError(t, err)
	s, err := sessions.GetSessionData(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseTechnical, s.CurrentPhase)
}

func TestStartPhase_SkippedPredecessorCounts(t *testing.T) {
	// Arrange
	mgr, sessions, store := newManagers(t)
	id := newSession(t, sessions)
	finishPhase(t, mgr, id, models.PhasePreInterview)

	stored := store.Stored(id)
	record := stored.Phases[models.PhaseIntroduction]
	record.Status = models.PhaseStatusSkipped
	stored.Phases[models.PhaseIntroduction] = record

	// Act
	err := mgr.StartPhase(context.Background(), id, models.PhaseTechnical)

	// Assert
	require.NoError(t, err)
}

func TestStartPhase_EndedSession(t *testing.T) {
	// Arrange
	mgr, sessions, _ := newManagers(t)
	id := newSession(t, sessions)
	require.NoError(t, sessions.EndSession(context.Background(), id, models.ExitTypeNormal, ""))

	// Act
	err := mgr.StartPhase(context.Background(), id, models.PhasePreInterview)

	// Assert
	assert.True(t, domainerrors.IsValidation(err))
}

func TestStartPhase_UnknownSession(t *testing.T) {
	// Arrange
	mgr, _, _ := newManagers(t)

	// Act
	err := mgr.StartPhase(context.Background(), "no-such-session", models.PhasePreInterview)

	// Assert
	assert.True(t, domainerrors.IsNotFound(err))
}

func TestCheckPhaseDuration_NoActivePhase(t *testing.T) {
	// Arrange
	mgr, sessions, _ := newManagers(t)
	id := newSession(t, sessions)

	// Act
	status, err := mgr.CheckPhaseDuration(context.Background(), id)

	// Assert
	require.NoError(t, err)
	assert.Nil(t, status)
}

func TestCheckPhaseDuration_UntimedPhase(t *testing.T) {
	// Arrange: pre_interview has no time budget.
	mgr, sessions, store := newManagers(t)
	id := newSession(t, sessions)
	require.NoError(t, mgr.StartPhase(context.Background(), id, models.PhasePreInterview))

	stored := store.Stored(id)
	record := stored.Phases[models.PhasePreInterview]
	start := time.Now().UTC().Add(-3 * time.Minute)
	record.StartTime = &start
	stored.Phases[models.PhasePreInterview] = record

	// Act
	status, err := mgr.CheckPhaseDuration(context.Background(), id)

	// Assert: elapsed time only, no budget to track against.
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, models.PhasePreInterview, status.Phase)
	assert.Equal(t, phase.DurationInProgress, status.Status)
	assert.GreaterOrEqual(t, status.Elapsed, 3*time.Minute)
	assert.Nil(t, status.Allocated)
	assert.Nil(t, status.Remaining)
}

func TestCheckPhaseDuration_InProgress(t *testing.T) {
	// Arrange
	mgr, sessions, store := newManagers(t)
	id := newSession(t, sessions)
	finishPhase(t, mgr, id, models.PhasePreInterview)
	require.NoError(t, mgr.StartPhase(context.Background(), id, models.PhaseIntroduction))

	// Rewind the start time one minute into a five minute budget.
	stored := store.Stored(id)
	record := stored.Phases[models.PhaseIntroduction]
	start := time.Now().UTC().Add(-1 * time.Minute)
	record.StartTime = &start
	stored.Phases[models.PhaseIntroduction] = record

	// Act
	status, err := mgr.CheckPhaseDuration(context.Background(), id)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, models.PhaseIntroduction, status.Phase)
	assert.Equal(t, phase.DurationInProgress, status.Status)
	require.NotNil(t, status.Remaining)
	assert.Greater(t, *status.Remaining, 2*time.Minute)
}

func TestCheckPhaseDuration_Warning(t *testing.T) {
	// Arrange
	mgr, sessions, store := newManagers(t)
	id := newSession(t, sessions)
	finishPhase(t, mgr, id, models.PhasePreInterview)
	require.NoError(t, mgr.StartPhase(context.Background(), id, models.PhaseIntroduction))

	// Four minutes elapsed of a five minute budget leaves under two minutes.
	stored := store.Stored(id)
	record := stored.Phases[models.PhaseIntroduction]
	start := time.Now().UTC().Add(-4 * time.Minute)
	record.StartTime = &start
	stored.Phases[models.PhaseIntroduction] = record

	// Act
	status, err := mgr.CheckPhaseDuration(context.Background(), id)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, phase.DurationWarning, status.Status)
}

func TestGetPhaseCompletionStatus_DefaultsFalse(t *testing.T) {
	// Arrange
	mgr, sessions, _ := newManagers(t)
	id := newSession(t, sessions)

	// Act
	completion, err := mgr.GetPhaseCompletionStatus(context.Background(), id, models.PhaseTechnical)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{
		"coding_challenge_complete": false,
		"system_design_complete":    false,
	}, completion)
}

func TestUpdatePhaseCompletion_Merges(t *testing.T) {
	// Arrange
	mgr, sessions, _ := newManagers(t)
	id := newSession(t, sessions)

	// Act
	err := mgr.UpdatePhaseCompletion(context.Background(), id, models.PhaseTechnical, map[string]bool{
		"coding_challenge_complete": true,
	})

	// Assert
	require.NoError(t, err)
	completion, err := mgr.GetPhaseCompletionStatus(context.Background(), id, models.PhaseTechnical)
	require.NoError(t, err)
	assert.True(t, completion["coding_challenge_complete"])
	assert.False(t, completion["system_design_complete"])
}

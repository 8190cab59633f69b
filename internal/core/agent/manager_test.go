package agent_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interviewly/interview-service/internal/core/agent"
	"github.com/interviewly/interview-service/internal/core/session"
	domainerrors "github.com/interviewly/interview-service/internal/domain/errors"
	"github.com/interviewly/interview-service/internal/domain/models"
	"github.com/interviewly/interview-service/tests/mocks"
)

func newManagers(t *testing.T) (*agent.Manager, *session.Manager, *mocks.FakeSessionStore) {
	t.Helper()
	store := mocks.NewFakeSessionStore()
	sessions := session.NewManager(store)
	return agent.NewManager(sessions), sessions, store
}

func newSession(t *testing.T, sessions *session.Manager) string {
	t.Helper()
	id, err := sessions.CreateSession(context.Background(), "candidate-42")
	require.NoError(t, err)
	return id
}

func TestActivateAgent(t *testing.T) {
	// Arrange
	mgr, sessions, _ := newManagers(t)
	id := newSession(t, sessions)

	// Act
	err := mgr.ActivateAgent(context.Background(), id, models.AgentTechnicalEvaluation)

	// Assert
	require.NoError(t, err)
	s, err := sessions.GetSessionData(context.Background(), id)
	require.NoError(t, err)
	record := s.Agents[models.AgentTechnicalEvaluation]
	assert.Equal(t, models.AgentStatusActive, record.Status)
	assert.NotNil(t, record.LastActionTime)
}

func TestDeactivateAgent(t *testing.T) {
	// Arrange
	mgr, sessions, _ := newManagers(t)
	id := newSession(t, sessions)
	require.NoError(t, mgr.ActivateAgent(context.Background(), id, models.AgentTimeKeeper))

	// Act
	err := mgr.DeactivateAgent(context.Background(), id, models.AgentTimeKeeper)

	// Assert
	require.NoError(t, err)
	s, err := sessions.GetSessionData(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.AgentStatusInactive, s.Agents[models.AgentTimeKeeper].Status)
}

func TestActivateAgent_UnknownAgent(t *testing.T) {
	// Arrange
	mgr, sessions, _ := newManagers(t)
	id := newSession(t, sessions)

	// Act
	err := mgr.ActivateAgent(context.Background(), id, "coffee_fetcher")

	// Assert
	assert.True(t, domainerrors.IsValidation(err))
}

func TestRecordAgentAction(t *testing.T) {
	// Arrange
	mgr, sessions, _ := newManagers(t)
	id := newSession(t, sessions)

	// Act
	err := mgr.RecordAgentAction(context.Background(), id, models.AgentOrchestrator, "phase_transition")

	// Assert
	require.NoError(t, err)
	s, err := sessions.GetSessionData(context.Background(), id)
	require.NoError(t, err)
	record := s.Agents[models.AgentOrchestrator]
	assert.Equal(t, "phase_transition", record.LastAction)
	assert.NotNil(t, record.LastActionTime)
}

func TestRecordAgentAction_EmptyAction(t *testing.T) {
	// Arrange
	mgr, sessions, _ := newManagers(t)
	id := newSession(t, sessions)

	// Act
	err := mgr.RecordAgentAction(context.Background(), id, models.AgentOrchestrator, "")

	// Assert
	assert.True(t, domainerrors.IsValidation(err))
}

func TestGetActiveAgents(t *testing.T) {
	// Arrange
	mgr, sessions, _ := newManagers(t)
	id := newSession(t, sessions)
	require.NoError(t, mgr.ActivateAgent(context.Background(), id, models.AgentOrchestrator))
	require.NoError(t, mgr.ActivateAgent(context.Background(), id, models.AgentResponseAnalysis))

	// Act
	active := mgr.GetActiveAgents(context.Background(), id)

	// Assert: registry order, active agents only.
	assert.Equal(t, []string{models.AgentOrchestrator, models.AgentResponseAnalysis}, active)
}

func TestGetActiveAgents_LookupFailureYieldsEmpty(t *testing.T) {
	// Arrange
	mgr, sessions, store := newManagers(t)
	id := newSession(t, sessions)
	store.FailNext = errors.New("connection refused")

	// Act
	active := mgr.GetActiveAgents(context.Background(), id)

	// Assert
	assert.Empty(t, active)
}

func TestGetActiveAgents_UnknownSessionYieldsEmpty(t *testing.T) {
	// Arrange
	mgr, _, _ := newManagers(t)

	// Act
	active := mgr.GetActiveAgents(context.Background(), "no-such-session")

	// Assert
	assert.Empty(t, active)
}

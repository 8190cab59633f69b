package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interviewly/interview-service/internal/api/handlers"
	"github.com/interviewly/interview-service/internal/api/middleware"
	"github.com/interviewly/interview-service/internal/api/routes"
	"github.com/interviewly/interview-service/internal/core/agent"
	"github.com/interviewly/interview-service/internal/core/docdb"
	"github.com/interviewly/interview-service/internal/core/metrics"
	"github.com/interviewly/interview-service/internal/core/phase"
	"github.com/interviewly/interview-service/internal/core/session"
	"github.com/interviewly/interview-service/internal/domain/models"
	rediscache "github.com/interviewly/interview-service/internal/infrastructure/cache/redis"
	"github.com/interviewly/interview-service/internal/pkg/encryption"
	"github.com/interviewly/interview-service/internal/services/pipeline"
	"github.com/interviewly/interview-service/internal/services/turncache"
	"github.com/interviewly/interview-service/tests/mocks"
)

const basePath = "/api/v1/interview-service"

// stubDocDBClient satisfies docdb.Client for the health endpoints.
type stubDocDBClient struct {
	store   docdb.SessionStore
	pingErr error
}

func (c *stubDocDBClient) Database() docdb.Database                { return nil }
func (c *stubDocDBClient) Sessions() docdb.SessionStore            { return c.store }
func (c *stubDocDBClient) Ping(ctx context.Context) error          { return c.pingErr }
func (c *stubDocDBClient) Close(ctx context.Context) error         { return nil }
func (c *stubDocDBClient) EnsureIndexes(ctx context.Context) error { return nil }

type testEnv struct {
	router   *gin.Engine
	store    *mocks.FakeSessionStore
	sessions *session.Manager
	docDB    *stubDocDBClient
}

func newTestEnv(t *testing.T, serviceKey string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := mocks.NewFakeSessionStore()
	sessions := session.NewManager(store)
	phases := phase.NewManager(sessions)
	agents := agent.NewManager(sessions)
	metricsMgr := metrics.NewManager(sessions)

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	cacheClient := rediscache.NewCacheWithClient(client, time.Minute)

	turns, err := turncache.NewService(&turncache.Config{
		CacheClient: cacheClient,
		Encryptor:   encryption.NewNoOpEncryptor(),
	})
	require.NoError(t, err)

	docDB := &stubDocDBClient{store: store}

	router := gin.New()
	routes.Setup(router, &routes.Config{
		HealthHandler:     handlers.NewHealthHandler(cacheClient, docDB),
		SessionsHandler:   handlers.NewSessionsHandler(sessions),
		PhasesHandler:     handlers.NewPhasesHandler(phases),
		AgentsHandler:     handlers.NewAgentsHandler(agents),
		MetricsHandler:    handlers.NewMetricsHandler(metricsMgr),
		InterviewsHandler: handlers.NewInterviewsHandler(pipeline.NewInterviewPipeline(sessions, turns)),
		AuthMiddleware:    middleware.NewAuthMiddleware(serviceKey),
	})

	return &testEnv{router: router, store: store, sessions: sessions, docDB: docDB}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, basePath+path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) createSession(t *testing.T) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/sessions", `{"candidateId":"candidate-42"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		SessionID string `json:"sessionId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.SessionID)
	return resp.SessionID
}

func TestHealth(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")

	// Act
	w := env.do(t, http.MethodGet, "/health", "")

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestHealth_DocDBDown(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")
	env.docDB.pingErr = errors.New("connection refused")

	// Act
	w := env.do(t, http.MethodGet, "/health", "")

	// Assert
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"docdb":"unhealthy"`)
}

func TestLive(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")

	// Act
	w := env.do(t, http.MethodGet, "/live", "")

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateSession(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")

	// Act
	w := env.do(t, http.MethodPost, "/sessions", `{"candidateId":"candidate-42"}`)

	// Assert
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"sessionId"`)
}

func TestCreateSession_MissingCandidate(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")

	// Act
	w := env.do(t, http.MethodPost, "/sessions", `{}`)

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSession(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")
	id := env.createSession(t)

	// Act
	w := env.do(t, http.MethodGet, "/sessions/"+id, "")

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"candidate-42"`)
}

func TestGetSession_NotFound(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")

	// Act
	w := env.do(t, http.MethodGet, "/sessions/session-9999", "")

	// Assert
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetActiveSessions(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")
	env.createSession(t)
	env.createSession(t)

	// Act
	w := env.do(t, http.MethodGet, "/sessions/active", "")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)
}

func TestEndSession_NoBody(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")
	id := env.createSession(t)

	// Act
	w := env.do(t, http.MethodPost, "/sessions/"+id+"/end", "")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	s, err := env.sessions.GetSessionData(context.Background(), id)
	require.NoError(t, err)
	assert.NotNil(t, s.EndTime)
	assert.Equal(t, models.ExitTypeNormal, s.ExitCriteria.ExitType)
}

func TestEndSession_AlreadyEnded(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")
	id := env.createSession(t)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/sessions/"+id+"/end", "").Code)

	// Act
	w := env.do(t, http.MethodPost, "/sessions/"+id+"/end", "")

	// Assert
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestEndSession_ImmediateExit(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")
	id := env.createSession(t)

	// Act
	w := env.do(t, http.MethodPost, "/sessions/"+id+"/end",
		`{"exitType":"immediate","reason":"missing work authorization"}`)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	s, err := env.sessions.GetSessionData(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.ExitTypeImmediate, s.ExitCriteria.ExitType)
	assert.Equal(t, models.PhaseStatusSkipped, s.Phases[models.PhaseWrapUp].Status)
}

func TestAddResponse(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")
	id := env.createSession(t)

	// Act
	w := env.do(t, http.MethodPost, "/sessions/"+id+"/responses",
		`{"phase":"technical","response":"I would shard by tenant"}`)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	s, err := env.sessions.GetSessionData(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, []string{"I would shard by tenant"}, s.Responses[models.PhaseTechnical])
}

func TestAddResponse_UnknownPhase(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")
	id := env.createSession(t)

	// Act
	w := env.do(t, http.MethodPost, "/sessions/"+id+"/responses",
		`{"phase":"lunch_break","response":"sandwich"}`)

	// Assert
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUpdateMetrics(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")
	id := env.createSession(t)

	// Act
	w := env.do(t, http.MethodPut, "/sessions/"+id+"/metrics",
		`{"metrics":{"technical_score":0.8,"behavioral_score":0.9,"cultural_score":0.7}}`)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	s, err := env.sessions.GetSessionData(context.Background(), id)
	require.NoError(t, err)
	assert.InDelta(t, 0.81, s.Metrics.OverallScore, 1e-9)
}

func TestUpdateMetrics_UnknownMetric(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")
	id := env.createSession(t)

	// Act
	w := env.do(t, http.MethodPut, "/sessions/"+id+"/metrics",
		`{"metrics":{"vibes":1.0}}`)

	// Assert
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCheckExitCriteria_NoExit(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")
	id := env.createSession(t)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPut, "/sessions/"+id+"/eligibility",
		`{"flags":{"work_authorization":true}}`).Code)
	require.Equal(t, http.StatusOK, env.do(t, http.MethodPut, "/sessions/"+id+"/metrics",
		`{"metrics":{"technical_score":0.8,"behavioral_score":0.8,"cultural_score":0.8}}`).Code)

	// Act
	w := env.do(t, http.MethodGet, "/sessions/"+id+"/exit-criteria", "")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"exit":false`)
}

func TestCheckExitCriteria_ImmediateExit(t *testing.T) {
	// Arrange: work authorization was never granted.
	env := newTestEnv(t, "")
	id := env.createSession(t)

	// Act
	w := env.do(t, http.MethodGet, "/sessions/"+id+"/exit-criteria", "")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"exit":true`)
	assert.Contains(t, w.Body.String(), `"immediate"`)
	assert.Contains(t, w.Body.String(), "missing work authorization")
}

func TestStartPhase(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")
	id := env.createSession(t)

	// Act
	w := env.do(t, http.MethodPost, "/sessions/"+id+"/phases/pre_interview/start", "")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	s, err := env.sessions.GetSessionData(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseStatusActive, s.Phases[models.PhasePreInterview].Status)
	assert.Equal(t, models.PhasePreInterview, s.CurrentPhase)
}

func TestStartPhase_OutOfOrder(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")
	id := env.createSession(t)

	// Act
	w := env.do(t, http.MethodPost, "/sessions/"+id+"/phases/technical/start", "")

	// Assert
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCheckDuration_NoActivePhase(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")
	id := env.createSession(t)

	// Act
	w := env.do(t, http.MethodGet, "/sessions/"+id+"/phases/duration", "")

	// Assert
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestPhaseCompletion_GetAndUpdate(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")
	id := env.createSession(t)

	// Act
	put := env.do(t, http.MethodPut, "/sessions/"+id+"/phases/pre_interview/completion",
		`{"flags":{"consent_obtained":true}}`)
	get := env.do(t, http.MethodGet, "/sessions/"+id+"/phases/pre_interview/completion", "")

	// Assert
	require.Equal(t, http.StatusOK, put.Code)
	require.Equal(t, http.StatusOK, get.Code)
	assert.Contains(t, get.Body.String(), `"consent_obtained":true`)
	assert.Contains(t, get.Body.String(), `"eligibility_verified":false`)
}

func TestActivateAgent(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")
	id := env.createSession(t)

	// Act
	w := env.do(t, http.MethodPost, "/sessions/"+id+"/agents/orchestrator/activate", "")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	active := env.do(t, http.MethodGet, "/sessions/"+id+"/agents/active", "")
	require.Equal(t, http.StatusOK, active.Code)
	assert.Contains(t, active.Body.String(), `"orchestrator"`)
}

func TestActivateAgent_Unknown(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")
	id := env.createSession(t)

	// Act
	w := env.do(t, http.MethodPost, "/sessions/"+id+"/agents/coffee_fetcher/activate", "")

	// Assert
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAgentMetrics_ReplaceAndGet(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")
	id := env.createSession(t)

	// Act
	put := env.do(t, http.MethodPut, "/sessions/"+id+"/agents/response_analysis/metrics",
		`{"metrics":{"clarity":0.8}}`)
	get := env.do(t, http.MethodGet, "/sessions/"+id+"/agents/response_analysis/metrics", "")

	// Assert
	require.Equal(t, http.StatusOK, put.Code)
	require.Equal(t, http.StatusOK, get.Code)
	assert.Contains(t, get.Body.String(), `"clarity":0.8`)
}

func TestUpdateResponseQuality(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")
	id := env.createSession(t)

	// Act
	w := env.do(t, http.MethodPut, "/sessions/"+id+"/metrics/response-quality",
		`{"phase":"technical","score":0.85}`)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	s, err := env.sessions.GetSessionData(context.Background(), id)
	require.NoError(t, err)
	assert.InDelta(t, 0.85, s.Metrics.ResponseQuality, 1e-9)
}

func TestAuth_MissingToken(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "super-secret")

	// Act
	w := env.do(t, http.MethodPost, "/sessions", `{"candidateId":"candidate-42"}`)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ValidToken(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "super-secret")
	req := httptest.NewRequest(http.MethodPost, basePath+"/sessions",
		strings.NewReader(`{"candidateId":"candidate-42"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer super-secret")

	// Act
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAuth_HealthBypassesAuth(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "super-secret")

	// Act
	w := env.do(t, http.MethodGet, "/health", "")

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStartInterview(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")

	// Act
	w := env.do(t, http.MethodPost, "/interviews", `{"candidateId":"candidate-42"}`)

	// Assert
	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		SessionID string `json:"sessionId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	s, err := env.sessions.GetSessionData(context.Background(), resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseIntroduction, s.CurrentPhase)
}

func TestProcessTurn(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")
	w := env.do(t, http.MethodPost, "/interviews", `{"candidateId":"candidate-42"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		SessionID string `json:"sessionId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Act
	turn := env.do(t, http.MethodPost, "/interviews/"+created.SessionID+"/turns",
		`{"input":"hello, I am excited to be here"}`)

	// Assert
	require.Equal(t, http.StatusOK, turn.Code)
	assert.Contains(t, turn.Body.String(), `"response"`)
	s, err := env.sessions.GetSessionData(context.Background(), created.SessionID)
	require.NoError(t, err)
	assert.Len(t, s.Responses[models.PhaseIntroduction], 1)
}

func TestProcessTurn_EndedSession(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")
	w := env.do(t, http.MethodPost, "/interviews", `{"candidateId":"candidate-42"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		SessionID string `json:"sessionId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, http.StatusOK,
		env.do(t, http.MethodDelete, "/interviews/"+created.SessionID, "").Code)

	// Act
	turn := env.do(t, http.MethodPost, "/interviews/"+created.SessionID+"/turns",
		`{"input":"still here"}`)

	// Assert
	assert.Equal(t, http.StatusUnprocessableEntity, turn.Code)
}

func TestEndInterview_NotFound(t *testing.T) {
	// Arrange
	env := newTestEnv(t, "")

	// Act
	w := env.do(t, http.MethodDelete, "/interviews/session-9999", "")

	// Assert
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// Package mocks provides test doubles shared across test packages.
package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/interviewly/interview-service/internal/domain/models"
)

// FakeSessionStore is an in-memory docdb.SessionStore. It interprets the
// dot-path field updates the managers emit, mirroring how the document
// database applies them.
type FakeSessionStore struct {
	mu       sync.Mutex
	nextID   int
	sessions map[string]*models.Session

	// FailNext, when set, makes the next store call return this error.
	FailNext error
}

// NewFakeSessionStore creates an empty in-memory store.
func NewFakeSessionStore() *FakeSessionStore {
	return &FakeSessionStore{
		nextID:   1,
		sessions: make(map[string]*models.Session),
	}
}

func (f *FakeSessionStore) takeFailure() error {
	err := f.FailNext
	f.FailNext = nil
	return err
}

// Insert stores the session under a generated identifier.
func (f *FakeSessionStore) Insert(_ context.Context, session *models.Session) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return "", err
	}

	id := fmt.Sprintf("session-%04d", f.nextID)
	f.nextID++

	stored := cloneSession(session)
	stored.ID = id
	f.sessions[id] = stored
	return id, nil
}

// FindByID returns a copy of the stored session, or (nil, nil) when absent.
func (f *FakeSessionStore) FindByID(_ context.Context, id string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}

	stored, ok := f.sessions[id]
	if !ok {
		return nil, nil
	}
	return cloneSession(stored), nil
}

// UpdateFields applies a dot-path merge to the stored session.
func (f *FakeSessionStore) UpdateFields(_ context.Context, id string, fields map[string]interface{}) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return 0, err
	}

	stored, ok := f.sessions[id]
	if !ok {
		return 0, nil
	}

	for path, value := range fields {
		if err := applyField(stored, path, value); err != nil {
			return 0, err
		}
	}
	return 1, nil
}

// AppendToArray pushes a value onto the array at the given dot path.
func (f *FakeSessionStore) AppendToArray(_ context.Context, id string, path string, value interface{}) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return 0, err
	}

	stored, ok := f.sessions[id]
	if !ok {
		return 0, nil
	}

	phase, ok := strings.CutPrefix(path, "responses.")
	if !ok {
		return 0, fmt.Errorf("unsupported array path %q", path)
	}

	response, ok := value.(string)
	if !ok {
		return 0, fmt.Errorf("unsupported response payload %T", value)
	}
	if stored.Responses == nil {
		stored.Responses = make(map[string][]string)
	}
	stored.Responses[phase] = append(stored.Responses[phase], response)
	return 1, nil
}

// FindActive returns copies of all sessions without an end time.
func (f *FakeSessionStore) FindActive(_ context.Context) ([]*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return nil, err
	}

	var active []*models.Session
	for _, s := range f.sessions {
		if s.EndTime == nil {
			active = append(active, cloneSession(s))
		}
	}
	return active, nil
}

// DeleteMany removes sessions matching a candidate_id filter.
func (f *FakeSessionStore) DeleteMany(_ context.Context, filter map[string]interface{}) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return 0, err
	}

	var deleted int64
	for id, s := range f.sessions {
		if candidate, ok := filter["candidate_id"]; ok && s.CandidateID != candidate {
			continue
		}
		delete(f.sessions, id)
		deleted++
	}
	return deleted, nil
}

// EnsureIndexes is a no-op for the in-memory store.
func (f *FakeSessionStore) EnsureIndexes(context.Context) error {
	return nil
}

// Stored returns the live stored session for direct inspection or mutation
// by tests.
func (f *FakeSessionStore) Stored(id string) *models.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessions[id]
}

// applyField interprets one dot-path update against the typed session.
func applyField(s *models.Session, path string, value interface{}) error {
	parts := strings.Split(path, ".")

	switch parts[0] {
	case "current_phase":
		s.CurrentPhase = value.(string)
	case "end_time":
		t := value.(time.Time)
		s.EndTime = &t
	case "phases":
		return applyPhaseField(s, parts[1:], value)
	case "agents":
		return applyAgentField(s, parts[1:], value)
	case "metrics":
		return applyMetricField(s, strings.Join(parts[1:], "."), value)
	case "eligibility_checks":
		return applyEligibilityField(s, parts[1], value.(bool))
	case "exit_criteria":
		return applyExitField(s, parts[1], value)
	default:
		return fmt.Errorf("unsupported field path %q", path)
	}
	return nil
}

func applyPhaseField(s *models.Session, parts []string, value interface{}) error {
	if len(parts) < 2 {
		return fmt.Errorf("malformed phase path %v", parts)
	}
	record := s.Phases[parts[0]]

	switch parts[1] {
	case "status":
		record.Status = value.(string)
	case "start_time":
		t := value.(time.Time)
		record.StartTime = &t
	case "end_time":
		t := value.(time.Time)
		record.EndTime = &t
	case "skip_reason":
		record.SkipReason = value.(string)
	case "completion":
		if len(parts) != 3 {
			return fmt.Errorf("malformed completion path %v", parts)
		}
		if record.Completion == nil {
			record.Completion = make(map[string]bool)
		}
		record.Completion[parts[2]] = value.(bool)
	default:
		return fmt.Errorf("unsupported phase field %q", parts[1])
	}

	s.Phases[parts[0]] = record
	return nil
}

func applyAgentField(s *models.Session, parts []string, value interface{}) error {
	if len(parts) != 2 {
		return fmt.Errorf("malformed agent path %v", parts)
	}
	record := s.Agents[parts[0]]

	switch parts[1] {
	case "status":
		record.Status = value.(string)
	case "last_action":
		record.LastAction = value.(string)
	case "last_action_time":
		t := value.(time.Time)
		record.LastActionTime = &t
	case "metrics":
		record.Metrics = value.(map[string]interface{})
	default:
		return fmt.Errorf("unsupported agent field %q", parts[1])
	}

	s.Agents[parts[0]] = record
	return nil
}

func applyMetricField(s *models.Session, key string, value interface{}) error {
	score, ok := toFloat(value)

	switch key {
	case models.MetricTechnicalScore:
		s.Metrics.TechnicalScore = score
	case models.MetricBehavioralScore:
		s.Metrics.BehavioralScore = score
	case models.MetricCulturalScore:
		s.Metrics.CulturalScore = score
	case models.MetricOverallScore:
		s.Metrics.OverallScore = score
	case models.MetricResponseQuality:
		s.Metrics.ResponseQuality = score
	case models.MetricTimeManagement:
		s.Metrics.TimeManagement = score
	case models.MetricTechnicalDepth:
		s.Metrics.TechnicalDepth = score
	case models.MetricSystemDesignDepth:
		s.Metrics.SystemDesignDepth = score
	case models.MetricCodingDepth:
		s.Metrics.CodingDepth = score
	case models.MetricArchitectureDepth:
		s.Metrics.ArchitectureDepth = score
	case models.MetricBehavioralIndicators:
		s.Metrics.BehavioralIndicators = score
	case models.MetricLeadershipIndicators:
		s.Metrics.LeadershipIndicators = score
	case models.MetricProblemSolvingIndicators:
		s.Metrics.ProblemSolvingIndicators = score
	case models.MetricCollaborationIndicators:
		s.Metrics.CollaborationIndicators = score
	default:
		if s.Metrics.PhaseScoped == nil {
			s.Metrics.PhaseScoped = make(map[string]interface{})
		}
		s.Metrics.PhaseScoped[key] = value
		return nil
	}

	if !ok {
		return fmt.Errorf("non-numeric value for metric %q", key)
	}
	return nil
}

func applyEligibilityField(s *models.Session, flag string, value bool) error {
	switch flag {
	case "work_authorization":
		s.Eligibility.WorkAuthorization = value
	case "remote_work":
		s.Eligibility.RemoteWork = value
	case "relocation":
		s.Eligibility.Relocation = value
	case "travel":
		s.Eligibility.Travel = value
	default:
		return fmt.Errorf("unsupported eligibility flag %q", flag)
	}
	return nil
}

func applyExitField(s *models.Session, field string, value interface{}) error {
	switch field {
	case "immediate_exit":
		s.ExitCriteria.ImmediateExit = value.([]string)
	case "performance_threshold":
		v, _ := toFloat(value)
		s.ExitCriteria.PerformanceThreshold = &v
	case "completion_status":
		s.ExitCriteria.CompletionStatus = value.(string)
	case "exit_type":
		s.ExitCriteria.ExitType = value.(string)
	case "reason":
		s.ExitCriteria.Reason = value.(string)
	default:
		return fmt.Errorf("unsupported exit criteria field %q", field)
	}
	return nil
}

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

func cloneSession(s *models.Session) *models.Session {
	clone := *s

	clone.Phases = make(map[string]models.PhaseRecord, len(s.Phases))
	for name, record := range s.Phases {
		r := record
		r.Completion = cloneBoolMap(record.Completion)
		clone.Phases[name] = r
	}

	clone.Agents = make(map[string]models.AgentRecord, len(s.Agents))
	for name, record := range s.Agents {
		r := record
		r.Metrics = cloneAnyMap(record.Metrics)
		clone.Agents[name] = r
	}

	clone.Metrics.PhaseScoped = cloneAnyMap(s.Metrics.PhaseScoped)

	clone.Responses = make(map[string][]string, len(s.Responses))
	for phase, responses := range s.Responses {
		clone.Responses[phase] = append([]string(nil), responses...)
	}

	return &clone
}

func cloneBoolMap(m map[string]bool) map[string]bool {
	if m == nil {
		return nil
	}
	out := make(map[string]bool, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneAnyMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

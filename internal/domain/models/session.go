// Package models contains domain models for the Interview Session Service.
package models

import "time"

// Exit types recorded on a session once an exit decision is made.
const (
	ExitTypeImmediate    = "immediate"
	ExitTypeMidInterview = "mid_interview"
	ExitTypeNormal       = "normal"
)

// Exit criteria completion statuses.
const (
	ExitStatusPending   = "pending"
	ExitStatusCompleted = "completed"
)

// EligibilityChecks holds the hard eligibility flags for a candidate. All
// default to false until verified during pre_interview.
type EligibilityChecks struct {
	WorkAuthorization bool `bson:"work_authorization" json:"work_authorization"`
	RemoteWork        bool `bson:"remote_work" json:"remote_work"`
	Relocation        bool `bson:"relocation" json:"relocation"`
	Travel            bool `bson:"travel" json:"travel"`
}

// ExitCriteria records the red flags, thresholds and final exit decision for
// a session.
type ExitCriteria struct {
	ImmediateExit        []string `bson:"immediate_exit" json:"immediate_exit"`
	PerformanceThreshold *float64 `bson:"performance_threshold,omitempty" json:"performance_threshold,omitempty"`
	CompletionStatus     string   `bson:"completion_status" json:"completion_status"`
	ExitType             string   `bson:"exit_type,omitempty" json:"exit_type,omitempty"`
	Reason               string   `bson:"reason,omitempty" json:"reason,omitempty"`
}

// ExitDecision is the result of evaluating exit criteria against the current
// session state. A nil decision means no exit is warranted.
type ExitDecision struct {
	ExitType string `json:"exit_type"`
	Reason   string `json:"reason"`
}

// Session is the aggregate root: one document per candidate interview.
// The ID is assigned by the store and handled at the adapter boundary, so it
// is excluded from BSON marshalling here.
type Session struct {
	ID           string                 `bson:"-" json:"id"`
	CandidateID  string                 `bson:"candidate_id" json:"candidate_id"`
	StartTime    time.Time              `bson:"start_time" json:"start_time"`
	EndTime      *time.Time             `bson:"end_time" json:"end_time"`
	CurrentPhase string                 `bson:"current_phase" json:"current_phase"`
	Phases       map[string]PhaseRecord `bson:"phases" json:"phases"`
	Agents       map[string]AgentRecord `bson:"agents" json:"agents"`
	Metrics      Metrics                `bson:"metrics" json:"metrics"`
	Eligibility  EligibilityChecks      `bson:"eligibility_checks" json:"eligibility_checks"`
	ExitCriteria ExitCriteria           `bson:"exit_criteria" json:"exit_criteria"`
	Responses    map[string][]string    `bson:"responses" json:"responses"`
}

// NewSession creates a fully-initialized session document: phase pre_interview
// current, every phase pending, every agent inactive, all metrics at zero.
func NewSession(candidateID string) *Session {
	phases := make(map[string]PhaseRecord, len(PhaseSequence))
	for _, phase := range PhaseSequence {
		phases[phase] = NewPhaseRecord(phase)
	}

	agents := make(map[string]AgentRecord, len(AgentRegistry))
	for _, agent := range AgentRegistry {
		agents[agent] = AgentRecord{Status: AgentStatusInactive}
	}

	return &Session{
		CandidateID:  candidateID,
		StartTime:    time.Now().UTC(),
		CurrentPhase: PhasePreInterview,
		Phases:       phases,
		Agents:       agents,
		ExitCriteria: ExitCriteria{
			ImmediateExit:    []string{},
			CompletionStatus: ExitStatusPending,
		},
		Responses: make(map[string][]string),
	}
}

// IsEnded reports whether the session has terminated.
func (s *Session) IsEnded() bool {
	return s.EndTime != nil
}

// ActivePhase returns the name of the currently active phase, or "" if no
// phase is active.
func (s *Session) ActivePhase() string {
	for _, phase := range PhaseSequence {
		if s.Phases[phase].Status == PhaseStatusActive {
			return phase
		}
	}
	return ""
}

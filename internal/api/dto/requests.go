// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// CreateSessionRequest represents the request body for creating a session.
type CreateSessionRequest struct {
	CandidateID string `json:"candidateId" binding:"required,min=1,max=256"`
}

// EndSessionRequest represents the request body for ending a session.
// ExitType defaults to normal when omitted.
type EndSessionRequest struct {
	ExitType string `json:"exitType,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// AddResponseRequest represents the request body for recording a candidate
// response.
type AddResponseRequest struct {
	Phase    string `json:"phase" binding:"required"`
	Response string `json:"response" binding:"required,min=1,max=32000"`
}

// UpdateMetricsRequest represents the request body for a metrics update.
type UpdateMetricsRequest struct {
	Metrics map[string]interface{} `json:"metrics" binding:"required"`
}

// UpdateEligibilityRequest represents the request body for updating
// eligibility flags.
type UpdateEligibilityRequest struct {
	Flags map[string]bool `json:"flags" binding:"required"`
}

// UpdateExitCriteriaRequest represents the request body for updating exit
// criteria fields.
type UpdateExitCriteriaRequest struct {
	Fields map[string]interface{} `json:"fields" binding:"required"`
}

// UpdatePhaseCompletionRequest represents the request body for merging phase
// completion flags.
type UpdatePhaseCompletionRequest struct {
	Flags map[string]bool `json:"flags" binding:"required"`
}

// RecordAgentActionRequest represents the request body for recording an
// agent action.
type RecordAgentActionRequest struct {
	Action string `json:"action" binding:"required,min=1,max=512"`
}

// ReplaceAgentMetricsRequest represents the request body for replacing an
// agent's metrics.
type ReplaceAgentMetricsRequest struct {
	Metrics map[string]interface{} `json:"metrics" binding:"required"`
}

// ScopedScoreRequest represents a phase-scoped score update.
type ScopedScoreRequest struct {
	Phase string  `json:"phase" binding:"required"`
	Score float64 `json:"score"`
}

// ScoreMapRequest represents a batch of named sub-scores.
type ScoreMapRequest struct {
	Scores map[string]float64 `json:"scores" binding:"required"`
}

// PhaseScoreMapRequest represents a phase-scoped batch of named sub-scores.
type PhaseScoreMapRequest struct {
	Phase  string             `json:"phase" binding:"required"`
	Scores map[string]float64 `json:"scores" binding:"required"`
}

// ProcessTurnRequest represents one candidate utterance entering the
// pipeline.
type ProcessTurnRequest struct {
	Input string `json:"input" binding:"required,min=1,max=32000"`
}

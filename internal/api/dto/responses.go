package dto

import "github.com/interviewly/interview-service/internal/domain/models"

// CreateSessionResponse represents the response to session creation.
type CreateSessionResponse struct {
	SessionID string `json:"sessionId"`
}

// ActiveSessionsResponse lists sessions that have not ended.
type ActiveSessionsResponse struct {
	Sessions map[string]*models.Session `json:"sessions"`
	Count    int                        `json:"count"`
}

// ExitDecisionResponse represents the outcome of an exit-criteria
// evaluation.
type ExitDecisionResponse struct {
	Exit     bool   `json:"exit"`
	ExitType string `json:"exitType,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// ActiveAgentsResponse lists the agents currently active in a session.
type ActiveAgentsResponse struct {
	Agents []string `json:"agents"`
}

// AgentMetricsResponse carries an agent's reported metrics.
type AgentMetricsResponse struct {
	Agent   string                 `json:"agent"`
	Metrics map[string]interface{} `json:"metrics"`
}

// CompletionStatusResponse carries a phase's completion flags.
type CompletionStatusResponse struct {
	Phase      string          `json:"phase"`
	Completion map[string]bool `json:"completion"`
}

// ProcessTurnResponse carries the assistant output of a pipeline turn.
type ProcessTurnResponse struct {
	Response string `json:"response"`
	Phase    string `json:"phase"`
}

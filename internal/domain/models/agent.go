package models

import "time"

// Agent statuses.
const (
	AgentStatusActive   = "active"
	AgentStatusInactive = "inactive"
)

// Agent names. Every session document carries a record for each of the ten
// registered agents.
const (
	AgentOrchestrator         = "orchestrator"
	AgentConsentCompliance    = "consent_compliance"
	AgentIntroduction         = "introduction"
	AgentTechnicalEvaluation  = "technical_evaluation"
	AgentBehavioralAssessment = "behavioral_assessment"
	AgentCulturalFit          = "cultural_fit"
	AgentTimeKeeper           = "time_keeper"
	AgentResponseAnalysis     = "response_analysis"
	AgentExitAssessment       = "exit_assessment"
	AgentWrapUp               = "wrap_up"
)

// AgentRegistry is the fixed set of agents tracked per session.
var AgentRegistry = []string{
	AgentOrchestrator,
	AgentConsentCompliance,
	AgentIntroduction,
	AgentTechnicalEvaluation,
	AgentBehavioralAssessment,
	AgentCulturalFit,
	AgentTimeKeeper,
	AgentResponseAnalysis,
	AgentExitAssessment,
	AgentWrapUp,
}

// AgentRecord tracks one agent's activity within a session.
type AgentRecord struct {
	Status         string                 `bson:"status" json:"status"`
	LastAction     string                 `bson:"last_action,omitempty" json:"last_action,omitempty"`
	LastActionTime *time.Time             `bson:"last_action_time,omitempty" json:"last_action_time,omitempty"`
	Metrics        map[string]interface{} `bson:"metrics,omitempty" json:"metrics,omitempty"`
}

// IsKnownAgent reports whether name is one of the registered agents.
func IsKnownAgent(name string) bool {
	for _, a := range AgentRegistry {
		if a == name {
			return true
		}
	}
	return false
}

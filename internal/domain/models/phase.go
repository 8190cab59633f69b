package models

import "time"

// Interview phase names. The order of PhaseSequence is the order the
// interview runs in; a phase may not start until its predecessor completed.
const (
	PhasePreInterview = "pre_interview"
	PhaseIntroduction = "introduction"
	PhaseTechnical    = "technical"
	PhaseBehavioral   = "behavioral"
	PhaseWrapUp       = "wrap_up"
)

// PhaseSequence is the fixed, ordered set of interview phases.
var PhaseSequence = []string{
	PhasePreInterview,
	PhaseIntroduction,
	PhaseTechnical,
	PhaseBehavioral,
	PhaseWrapUp,
}

// Phase statuses.
const (
	PhaseStatusPending   = "pending"
	PhaseStatusActive    = "active"
	PhaseStatusCompleted = "completed"
	PhaseStatusSkipped   = "skipped"
)

// PhaseCompletionDefaults lists the completion flags each phase starts with.
// All flags are initialized to false at session creation.
var PhaseCompletionDefaults = map[string][]string{
	PhasePreInterview: {"consent_obtained", "eligibility_verified"},
	PhaseIntroduction: {"introductions_complete", "role_overview_given"},
	PhaseTechnical:    {"coding_challenge_complete", "system_design_complete"},
	PhaseBehavioral:   {"behavioral_questions_complete"},
	PhaseWrapUp:       {"candidate_questions_answered", "next_steps_explained"},
}

// PhaseRecord tracks the lifecycle of a single interview phase within a
// session document.
type PhaseRecord struct {
	Status     string          `bson:"status" json:"status"`
	StartTime  *time.Time      `bson:"start_time,omitempty" json:"start_time,omitempty"`
	EndTime    *time.Time      `bson:"end_time,omitempty" json:"end_time,omitempty"`
	Completion map[string]bool `bson:"completion" json:"completion"`
	SkipReason string          `bson:"skip_reason,omitempty" json:"skip_reason,omitempty"`
}

// IsKnownPhase reports whether name is one of the fixed interview phases.
func IsKnownPhase(name string) bool {
	for _, p := range PhaseSequence {
		if p == name {
			return true
		}
	}
	return false
}

// PhaseIndex returns the position of the phase in the sequence, or -1 for
// unknown phase names.
func PhaseIndex(name string) int {
	for i, p := range PhaseSequence {
		if p == name {
			return i
		}
	}
	return -1
}

// NewPhaseRecord creates a pending phase record with the phase's default
// completion flags set to false.
func NewPhaseRecord(phase string) PhaseRecord {
	completion := make(map[string]bool)
	for _, flag := range PhaseCompletionDefaults[phase] {
		completion[flag] = false
	}
	return PhaseRecord{
		Status:     PhaseStatusPending,
		Completion: completion,
	}
}

package session

import (
	"fmt"
	"time"

	domainerrors "github.com/interviewly/interview-service/internal/domain/errors"
	"github.com/interviewly/interview-service/internal/domain/models"
)

// FieldUpdate is a single validated field-level change to a session
// document. Updates are constructed through the Set* helpers and checked
// against the known phase/agent/metric vocabulary before any store path is
// built, so a typo surfaces as a validation error instead of a silent no-op.
type FieldUpdate interface {
	resolve() (path string, value interface{}, err error)
}

// Updatable phase record fields.
var phaseFields = map[string]bool{
	"status":      true,
	"start_time":  true,
	"end_time":    true,
	"skip_reason": true,
}

// Updatable agent record fields.
var agentFields = map[string]bool{
	"status":           true,
	"last_action":      true,
	"last_action_time": true,
	"metrics":          true,
}

// Updatable exit criteria fields.
var exitFields = map[string]bool{
	"immediate_exit":        true,
	"performance_threshold": true,
	"completion_status":     true,
	"exit_type":             true,
	"reason":                true,
}

// Eligibility flags.
var eligibilityFlags = map[string]bool{
	"work_authorization": true,
	"remote_work":        true,
	"relocation":         true,
	"travel":             true,
}

type currentPhaseUpdate struct {
	phase string
}

func (u currentPhaseUpdate) resolve() (string, interface{}, error) {
	if !models.IsKnownPhase(u.phase) {
		return "", nil, domainerrors.NewValidationError("unknown phase", u.phase)
	}
	return "current_phase", u.phase, nil
}

// SetCurrentPhase updates the session's current phase pointer.
func SetCurrentPhase(phase string) FieldUpdate {
	return currentPhaseUpdate{phase: phase}
}

type endTimeUpdate struct {
	t time.Time
}

func (u endTimeUpdate) resolve() (string, interface{}, error) {
	return "end_time", u.t, nil
}

// SetEndTime stamps the session's end time.
func SetEndTime(t time.Time) FieldUpdate {
	return endTimeUpdate{t: t}
}

type phaseFieldUpdate struct {
	phase string
	field string
	value interface{}
}

func (u phaseFieldUpdate) resolve() (string, interface{}, error) {
	if !models.IsKnownPhase(u.phase) {
		return "", nil, domainerrors.NewValidationError("unknown phase", u.phase)
	}
	if !phaseFields[u.field] {
		return "", nil, domainerrors.NewValidationError("unknown phase field", u.field)
	}
	return fmt.Sprintf("phases.%s.%s", u.phase, u.field), u.value, nil
}

// SetPhaseField updates one field of a phase record.
func SetPhaseField(phase, field string, value interface{}) FieldUpdate {
	return phaseFieldUpdate{phase: phase, field: field, value: value}
}

type phaseCompletionUpdate struct {
	phase string
	flag  string
	value bool
}

func (u phaseCompletionUpdate) resolve() (string, interface{}, error) {
	if !models.IsKnownPhase(u.phase) {
		return "", nil, domainerrors.NewValidationError("unknown phase", u.phase)
	}
	if u.flag == "" {
		return "", nil, domainerrors.NewValidationError("empty completion flag", u.phase)
	}
	return fmt.Sprintf("phases.%s.completion.%s", u.phase, u.flag), u.value, nil
}

// SetPhaseCompletion merges one boolean completion flag into a phase record.
// Flag names are phase-specific and open-ended, so only the phase name is
// validated.
func SetPhaseCompletion(phase, flag string, value bool) FieldUpdate {
	return phaseCompletionUpdate{phase: phase, flag: flag, value: value}
}

type agentFieldUpdate struct {
	agent string
	field string
	value interface{}
}

func (u agentFieldUpdate) resolve() (string, interface{}, error) {
	if !models.IsKnownAgent(u.agent) {
		return "", nil, domainerrors.NewValidationError("unknown agent", u.agent)
	}
	if !agentFields[u.field] {
		return "", nil, domainerrors.NewValidationError("unknown agent field", u.field)
	}
	return fmt.Sprintf("agents.%s.%s", u.agent, u.field), u.value, nil
}

// SetAgentField updates one field of an agent record.
func SetAgentField(agent, field string, value interface{}) FieldUpdate {
	return agentFieldUpdate{agent: agent, field: field, value: value}
}

type metricUpdate struct {
	key   string
	value interface{}
}

func (u metricUpdate) resolve() (string, interface{}, error) {
	if !models.IsKnownMetric(u.key) {
		return "", nil, domainerrors.NewValidationError("unknown metric", u.key)
	}
	return "metrics." + u.key, u.value, nil
}

// SetMetric updates one metric field, fixed or phase-qualified.
func SetMetric(key string, value interface{}) FieldUpdate {
	return metricUpdate{key: key, value: value}
}

type eligibilityUpdate struct {
	flag  string
	value bool
}

func (u eligibilityUpdate) resolve() (string, interface{}, error) {
	if !eligibilityFlags[u.flag] {
		return "", nil, domainerrors.NewValidationError("unknown eligibility flag", u.flag)
	}
	return "eligibility_checks." + u.flag, u.value, nil
}

// SetEligibility updates one eligibility flag.
func SetEligibility(flag string, value bool) FieldUpdate {
	return eligibilityUpdate{flag: flag, value: value}
}

type exitFieldUpdate struct {
	field string
	value interface{}
}

func (u exitFieldUpdate) resolve() (string, interface{}, error) {
	if !exitFields[u.field] {
		return "", nil, domainerrors.NewValidationError("unknown exit criteria field", u.field)
	}
	return "exit_criteria." + u.field, u.value, nil
}

// SetExitField updates one field of the exit criteria record.
func SetExitField(field string, value interface{}) FieldUpdate {
	return exitFieldUpdate{field: field, value: value}
}

// resolveUpdates validates a batch of field updates and flattens them into a
// dot-path map for the store. The first invalid update aborts the batch.
func resolveUpdates(updates []FieldUpdate) (map[string]interface{}, error) {
	fields := make(map[string]interface{}, len(updates))
	for _, u := range updates {
		path, value, err := u.resolve()
		if err != nil {
			return nil, err
		}
		fields[path] = value
	}
	return fields, nil
}

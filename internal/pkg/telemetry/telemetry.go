// Package telemetry exposes Prometheus instrumentation for the session
// lifecycle.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SessionsStarted counts interview sessions created.
	SessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "interview",
		Name:      "sessions_started_total",
		Help:      "Number of interview sessions created.",
	})

	// SessionsEnded counts terminated sessions by exit type.
	SessionsEnded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "interview",
		Name:      "sessions_ended_total",
		Help:      "Number of interview sessions ended, by exit type.",
	}, []string{"exit_type"})

	// PhaseTransitions counts phase starts and ends.
	PhaseTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "interview",
		Name:      "phase_transitions_total",
		Help:      "Number of phase transitions, by phase and event.",
	}, []string{"phase", "event"})

	// ExitEvaluations counts exit-criteria evaluations by outcome.
	ExitEvaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "interview",
		Name:      "exit_evaluations_total",
		Help:      "Number of exit-criteria evaluations, by outcome.",
	}, []string{"outcome"})
)

// Package pipeline assembles the interview processing chain: transport in,
// speech to text, user context, interview logic, text to speech, transport
// out, assistant context.
package pipeline

import (
	"context"
	"fmt"
	"time"
)

// Exchange carries the shared state of one conversational turn through the
// stages. Stages read from and write to it; the payload itself flows through
// the stage return values.
type Exchange struct {
	SessionID   string
	CandidateID string
	Phase       string

	// Metrics, when set by an evaluation stage, is flushed to the session
	// by the user context stage.
	Metrics map[string]interface{}

	// NextPhase, when set by the interview logic stage, moves the session's
	// current phase in the assistant context stage.
	NextPhase string

	// Response is the assistant text produced by the interview logic stage.
	Response string

	// StartedAt marks when the exchange entered the pipeline.
	StartedAt time.Time
}

// Stage transforms a payload within an exchange.
type Stage interface {
	Process(ctx context.Context, data interface{}, ex *Exchange) (interface{}, error)
}

// Pipeline runs stages in order, threading the payload through them.
type Pipeline struct {
	stages []Stage
}

// NewPipeline creates a pipeline over the given stages.
func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Process runs the payload through every stage. The first stage error aborts
// the run.
func (p *Pipeline) Process(ctx context.Context, input interface{}, ex *Exchange) (interface{}, error) {
	if ex.StartedAt.IsZero() {
		ex.StartedAt = time.Now().UTC()
	}

	result := input
	for i, stage := range p.stages {
		var err error
		result, err = stage.Process(ctx, result, ex)
		if err != nil {
			return nil, fmt.Errorf("pipeline stage %d (%T) failed: %w", i, stage, err)
		}
	}
	return result, nil
}

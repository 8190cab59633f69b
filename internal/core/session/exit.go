package session

import (
	"context"
	"strings"

	domainerrors "github.com/interviewly/interview-service/internal/domain/errors"
	"github.com/interviewly/interview-service/internal/domain/models"
	"github.com/interviewly/interview-service/internal/pkg/telemetry"
)

// Exit thresholds. Immediate checks fire in any phase; mid-interview checks
// only while the technical or behavioral phase is current.
const (
	immediateBehavioralFloor = 0.2
	immediateTechnicalFloor  = 0.1

	midTechnicalFloor  = 0.4
	midBehavioralFloor = 0.3
	midOverallFloor    = 0.35
)

// CheckExitCriteria evaluates the session against the exit rules and returns
// the decision, or (nil, nil) when no criterion fires. Immediate criteria
// are checked first and all firing reasons are joined into one decision.
func (m *Manager) CheckExitCriteria(ctx context.Context, id string) (*models.ExitDecision, error) {
	session, err := m.GetSessionData(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domainerrors.NewNotFoundError("session", id)
	}

	decision := evaluateExit(session)
	outcome := "none"
	if decision != nil {
		outcome = decision.ExitType
	}
	telemetry.ExitEvaluations.WithLabelValues(outcome).Inc()

	if decision != nil {
		m.logger.Warn().
			Str("session_id", id).
			Str("exit_type", decision.ExitType).
			Str("reason", decision.Reason).
			Msg("exit criteria met")
	}
	return decision, nil
}

// evaluateExit applies the exit rules to a session snapshot.
func evaluateExit(session *models.Session) *models.ExitDecision {
	var reasons []string

	if !session.Eligibility.WorkAuthorization {
		reasons = append(reasons, "missing work authorization")
	}
	if session.Metrics.BehavioralScore < immediateBehavioralFloor {
		reasons = append(reasons, "significant behavioral concerns")
	}
	if session.Metrics.TechnicalScore < immediateTechnicalFloor {
		reasons = append(reasons, "insufficient technical capability")
	}
	if len(reasons) > 0 {
		return &models.ExitDecision{
			ExitType: models.ExitTypeImmediate,
			Reason:   strings.Join(reasons, "; "),
		}
	}

	if session.CurrentPhase != models.PhaseTechnical && session.CurrentPhase != models.PhaseBehavioral {
		return nil
	}

	if session.Metrics.TechnicalScore < midTechnicalFloor {
		reasons = append(reasons, "technical evaluation below threshold")
	}
	if session.Metrics.BehavioralScore < midBehavioralFloor {
		reasons = append(reasons, "behavioral assessment below threshold")
	}
	if session.Metrics.OverallScore < midOverallFloor {
		reasons = append(reasons, "overall performance below threshold")
	}
	if len(reasons) > 0 {
		return &models.ExitDecision{
			ExitType: models.ExitTypeMidInterview,
			Reason:   strings.Join(reasons, "; "),
		}
	}
	return nil
}

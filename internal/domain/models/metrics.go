package models

import "strings"

// Core score weights for the derived overall score. The overall score is
// always 0.5*technical + 0.3*behavioral + 0.2*cultural, recomputed from the
// merge of stored and incoming values whenever a core score changes.
const (
	WeightTechnical  = 0.5
	WeightBehavioral = 0.3
	WeightCultural   = 0.2
)

// Metric field names.
const (
	MetricTechnicalScore  = "technical_score"
	MetricBehavioralScore = "behavioral_score"
	MetricCulturalScore   = "cultural_score"
	MetricOverallScore    = "overall_score"

	MetricResponseQuality          = "response_quality"
	MetricTimeManagement           = "time_management"
	MetricTechnicalDepth           = "technical_depth"
	MetricSystemDesignDepth        = "system_design_depth"
	MetricCodingDepth              = "coding_depth"
	MetricArchitectureDepth        = "architecture_depth"
	MetricBehavioralIndicators     = "behavioral_indicators"
	MetricLeadershipIndicators     = "leadership_indicators"
	MetricProblemSolvingIndicators = "problem_solving_indicators"
	MetricCollaborationIndicators  = "collaboration_indicators"
)

// CoreScoreWeights maps the three weighted core scores to their weights.
var CoreScoreWeights = map[string]float64{
	MetricTechnicalScore:  WeightTechnical,
	MetricBehavioralScore: WeightBehavioral,
	MetricCulturalScore:   WeightCultural,
}

// IndicatorFields is the set of real-time indicator metrics, written
// directly with no transformation.
var IndicatorFields = map[string]bool{
	MetricResponseQuality:          true,
	MetricTimeManagement:           true,
	MetricTechnicalDepth:           true,
	MetricSystemDesignDepth:        true,
	MetricCodingDepth:              true,
	MetricArchitectureDepth:        true,
	MetricBehavioralIndicators:     true,
	MetricLeadershipIndicators:     true,
	MetricProblemSolvingIndicators: true,
	MetricCollaborationIndicators:  true,
}

// Metrics is the per-session metrics map. Phase-qualified keys such as
// response_quality_technical land in PhaseScoped via the BSON inline map so
// they stay addressable as metrics.<key> dot paths.
type Metrics struct {
	TechnicalScore  float64 `bson:"technical_score" json:"technical_score"`
	BehavioralScore float64 `bson:"behavioral_score" json:"behavioral_score"`
	CulturalScore   float64 `bson:"cultural_score" json:"cultural_score"`
	OverallScore    float64 `bson:"overall_score" json:"overall_score"`

	ResponseQuality          float64 `bson:"response_quality" json:"response_quality"`
	TimeManagement           float64 `bson:"time_management" json:"time_management"`
	TechnicalDepth           float64 `bson:"technical_depth" json:"technical_depth"`
	SystemDesignDepth        float64 `bson:"system_design_depth" json:"system_design_depth"`
	CodingDepth              float64 `bson:"coding_depth" json:"coding_depth"`
	ArchitectureDepth        float64 `bson:"architecture_depth" json:"architecture_depth"`
	BehavioralIndicators     float64 `bson:"behavioral_indicators" json:"behavioral_indicators"`
	LeadershipIndicators     float64 `bson:"leadership_indicators" json:"leadership_indicators"`
	ProblemSolvingIndicators float64 `bson:"problem_solving_indicators" json:"problem_solving_indicators"`
	CollaborationIndicators  float64 `bson:"collaboration_indicators" json:"collaboration_indicators"`

	PhaseScoped map[string]interface{} `bson:",inline" json:"phase_scoped,omitempty"`
}

// CoreScore returns the stored value of one of the three weighted core
// scores.
func (m *Metrics) CoreScore(name string) float64 {
	switch name {
	case MetricTechnicalScore:
		return m.TechnicalScore
	case MetricBehavioralScore:
		return m.BehavioralScore
	case MetricCulturalScore:
		return m.CulturalScore
	}
	return 0
}

// Value returns the stored value for any metric key, checking the typed
// fields first and falling back to the phase-scoped map.
func (m *Metrics) Value(key string) (interface{}, bool) {
	switch key {
	case MetricTechnicalScore:
		return m.TechnicalScore, true
	case MetricBehavioralScore:
		return m.BehavioralScore, true
	case MetricCulturalScore:
		return m.CulturalScore, true
	case MetricOverallScore:
		return m.OverallScore, true
	}
	if IndicatorFields[key] {
		switch key {
		case MetricResponseQuality:
			return m.ResponseQuality, true
		case MetricTimeManagement:
			return m.TimeManagement, true
		case MetricTechnicalDepth:
			return m.TechnicalDepth, true
		case MetricSystemDesignDepth:
			return m.SystemDesignDepth, true
		case MetricCodingDepth:
			return m.CodingDepth, true
		case MetricArchitectureDepth:
			return m.ArchitectureDepth, true
		case MetricBehavioralIndicators:
			return m.BehavioralIndicators, true
		case MetricLeadershipIndicators:
			return m.LeadershipIndicators, true
		case MetricProblemSolvingIndicators:
			return m.ProblemSolvingIndicators, true
		case MetricCollaborationIndicators:
			return m.CollaborationIndicators, true
		}
	}
	v, ok := m.PhaseScoped[key]
	return v, ok
}

// IsKnownMetric reports whether key names a fixed metric field or a valid
// phase-qualified key (<metric>_<phase>).
func IsKnownMetric(key string) bool {
	if key == MetricOverallScore {
		return true
	}
	if _, ok := CoreScoreWeights[key]; ok {
		return true
	}
	if IndicatorFields[key] {
		return true
	}
	for _, phase := range PhaseSequence {
		if strings.HasSuffix(key, "_"+phase) {
			return true
		}
	}
	return false
}

// WeightedOverall computes the weighted overall score from core score values.
func WeightedOverall(technical, behavioral, cultural float64) float64 {
	return technical*WeightTechnical + behavioral*WeightBehavioral + cultural*WeightCultural
}

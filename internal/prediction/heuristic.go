package prediction

import "schedsim/internal/core"

const (
	SourceHeuristic = "heuristic"
	SourceModel     = "model"
)

// HeuristicPrediction is the cold-start estimate. The burst is the caller's
// own estimate. The priority maps urgency (0.6*cpuIntensity plus
// 0.4*(1-deadlineFlexibility), in [0,1]) linearly onto [5,1], so the most
// urgent process gets priority 1.
func HeuristicPrediction(features core.FeatureVector) Prediction {
	f := features.Clamp()
	urgency := 0.6*f.CpuIntensity + 0.4*(1-f.DeadlineFlexibility)
	return Prediction{
		Burst:    f.EstimatedBurst,
		Priority: core.ClampPriority(core.MaxPriority - (core.MaxPriority-core.MinPriority)*urgency),
		Source:   SourceHeuristic,
	}
}

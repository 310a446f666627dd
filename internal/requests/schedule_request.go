package requests

import "schedsim/internal/core"

// ProcessInput is a process as submitted by the caller. BurstTime and
// Priority are optional overrides; nil defers to the predictor.
type ProcessInput struct {
	Id          string              `json:"id" yaml:"id"`
	Name        string              `json:"name" yaml:"name"`
	ArrivalTime float64             `json:"arrivalTime" yaml:"arrivalTime"`
	BurstTime   *float64            `json:"burstTime,omitempty" yaml:"burstTime,omitempty"`
	Priority    *float64            `json:"priority,omitempty" yaml:"priority,omitempty"`
	Features    *core.FeatureVector `json:"features" yaml:"features"`
}

type ScheduleRequest struct {
	Processes          []ProcessInput `json:"processes" yaml:"processes"`
	SelectedAlgorithms []string       `json:"selectedAlgorithms" yaml:"selectedAlgorithms"`
	RoundRobinQuantum  *float64       `json:"roundRobinQuantum,omitempty" yaml:"roundRobinQuantum,omitempty"`
	UsePredictions     *bool          `json:"usePredictions,omitempty" yaml:"usePredictions,omitempty"`
}

// PredictionsEnabled reports whether predicted values replace the caller's.
// It defaults to true.
func (r ScheduleRequest) PredictionsEnabled() bool {
	return r.UsePredictions == nil || *r.UsePredictions
}

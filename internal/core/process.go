package core

import (
	"fmt"
	"math"
)

const (
	MinPriority = 1
	MaxPriority = 5

	minMemoryFootprint = 32
	minEstimatedBurst  = 1
)

// FeatureVector describes a process to the burst/priority predictor.
type FeatureVector struct {
	IoBound             float64 `json:"ioBound" yaml:"ioBound"`
	MemoryFootprint     float64 `json:"memoryFootprint" yaml:"memoryFootprint"`
	HistoricalWait      float64 `json:"historicalWait" yaml:"historicalWait"`
	CpuIntensity        float64 `json:"cpuIntensity" yaml:"cpuIntensity"`
	DeadlineFlexibility float64 `json:"deadlineFlexibility" yaml:"deadlineFlexibility"`
	EstimatedBurst      float64 `json:"estimatedBurst" yaml:"estimatedBurst"`
}

// Values returns the features in the fixed order used for regression.
func (f FeatureVector) Values() []float64 {
	return []float64{
		f.IoBound,
		f.MemoryFootprint,
		f.HistoricalWait,
		f.CpuIntensity,
		f.DeadlineFlexibility,
		f.EstimatedBurst,
	}
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (f FeatureVector) Validate() error {
	for i, v := range f.Values() {
		if !Finite(v) {
			return fmt.Errorf("%w: feature %d is not a finite number", ErrInvalidInput, i)
		}
	}
	return nil
}

// Clamp pulls every feature into its documented range.
func (f FeatureVector) Clamp() FeatureVector {
	return FeatureVector{
		IoBound:             clampUnit(f.IoBound),
		MemoryFootprint:     math.Max(minMemoryFootprint, f.MemoryFootprint),
		HistoricalWait:      math.Max(0, f.HistoricalWait),
		CpuIntensity:        clampUnit(f.CpuIntensity),
		DeadlineFlexibility: clampUnit(f.DeadlineFlexibility),
		EstimatedBurst:      math.Max(minEstimatedBurst, f.EstimatedBurst),
	}
}

func clampUnit(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

// ClampPriority pulls a priority into [MinPriority, MaxPriority].
func ClampPriority(p float64) float64 {
	return math.Min(MaxPriority, math.Max(MinPriority, p))
}

// ProcessSpec is a resolved, schedulable process. Its position in the batch
// is the tie-break of last resort for every algorithm.
type ProcessSpec struct {
	Id          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	ArrivalTime int    `json:"arrivalTime" yaml:"arrivalTime"`
	BurstTime   int    `json:"burstTime" yaml:"burstTime"`
	Priority    int    `json:"priority" yaml:"priority"`
}

package resolver

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"schedsim/internal/core"
	"schedsim/internal/logger"
	"schedsim/internal/prediction"
	"schedsim/internal/requests"
)

// PredictionCache is the part of prediction.Cache the resolver needs.
type PredictionCache interface {
	Predict(features core.FeatureVector) prediction.Prediction
	Record(process core.ProcessSpec, features core.FeatureVector) error
}

// Source records where a resolved field came from.
type Source string

const (
	SourceProvided  Source = "provided"
	SourcePredicted Source = "predicted"
)

// maxTimeUnits bounds arrival and burst so that rounding to int stays exact.
const maxTimeUnits = 1e9

type Resolved struct {
	Process        core.ProcessSpec
	Features       core.FeatureVector
	BurstSource    Source
	PrioritySource Source

	input requests.ProcessInput
}

type Batch struct {
	Processes []Resolved
	Warnings  []string
}

// Specs returns the resolved processes in submission order.
func (b Batch) Specs() []core.ProcessSpec {
	specs := make([]core.ProcessSpec, 0, len(b.Processes))
	for _, r := range b.Processes {
		specs = append(specs, r.Process)
	}
	return specs
}

type Resolver struct {
	cache PredictionCache
}

func NewResolver(cache PredictionCache) *Resolver {
	return &Resolver{cache: cache}
}

// ResolveProcess fuses input with a prediction for its features. With
// usePredictions every field is predicted; otherwise each of burst and
// priority independently takes the caller's value when present.
func (r *Resolver) ResolveProcess(input requests.ProcessInput, usePredictions bool) (Resolved, error) {
	if input.Features == nil {
		return Resolved{}, fmt.Errorf("%w: missing feature vector for process %s", core.ErrInvalidInput, input.Name)
	}
	if err := input.Features.Validate(); err != nil {
		return Resolved{}, fmt.Errorf("process %s: %w", input.Name, err)
	}
	if !core.Finite(input.ArrivalTime) || input.ArrivalTime > maxTimeUnits {
		return Resolved{}, fmt.Errorf("%w: arrival time of process %s is out of range", core.ErrInvalidInput, input.Name)
	}
	features := input.Features.Clamp()

	predicted := r.cache.Predict(features)
	burst, burstSource := decide(input.BurstTime, predicted.Burst, usePredictions)
	priority, prioritySource := decide(input.Priority, predicted.Priority, usePredictions)

	if !core.Finite(burst) || burst <= 0 || burst > maxTimeUnits {
		return Resolved{}, fmt.Errorf("%w: invalid burst time for process %s, provide a positive value", core.ErrInvalidInput, input.Name)
	}
	burstTime := int(math.Round(burst))
	if burstTime < 1 {
		return Resolved{}, fmt.Errorf("%w: burst time %v of process %s rounds to zero", core.ErrInvalidInput, burst, input.Name)
	}
	if !core.Finite(priority) {
		return Resolved{}, fmt.Errorf("%w: invalid priority for process %s", core.ErrInvalidInput, input.Name)
	}

	id := input.Id
	if id == "" {
		id = uuid.NewString()
	}

	return Resolved{
		Process: core.ProcessSpec{
			Id:          id,
			Name:        input.Name,
			ArrivalTime: int(math.Max(0, math.Round(input.ArrivalTime))),
			BurstTime:   burstTime,
			Priority:    int(core.ClampPriority(math.Round(priority))),
		},
		Features:       features,
		BurstSource:    burstSource,
		PrioritySource: prioritySource,
		input:          input,
	}, nil
}

// ResolveBatch resolves every input or none: the first failure aborts the
// batch. Afterwards each resolved process the caller gave a burst for is
// recorded with its features; recording problems become warnings.
func (r *Resolver) ResolveBatch(inputs []requests.ProcessInput, usePredictions bool) (Batch, error) {
	if len(inputs) == 0 {
		return Batch{}, fmt.Errorf("%w: provide at least one process to schedule", core.ErrInvalidInput)
	}

	batch := Batch{Processes: make([]Resolved, 0, len(inputs))}
	seen := make(map[string]struct{}, len(inputs))
	for _, input := range inputs {
		resolved, err := r.ResolveProcess(input, usePredictions)
		if err != nil {
			return Batch{}, err
		}
		id := resolved.Process.Id
		if id == core.IdleProcessId {
			return Batch{}, fmt.Errorf("%w: process id %q is reserved", core.ErrInvalidInput, id)
		}
		if _, ok := seen[id]; ok {
			return Batch{}, fmt.Errorf("%w: duplicate process id %q", core.ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
		batch.Processes = append(batch.Processes, resolved)
	}

	for _, resolved := range batch.Processes {
		if warning := r.recordGroundTruth(resolved); warning != "" {
			batch.Warnings = append(batch.Warnings, warning)
		}
	}
	return batch, nil
}

func (r *Resolver) recordGroundTruth(resolved Resolved) string {
	if resolved.input.BurstTime == nil {
		return ""
	}

	process := resolved.Process
	err := r.cache.Record(process, resolved.Features)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, core.ErrModelFailure):
		logger.Warn("model retrain failed, predictions fall back to the previous model or heuristic",
			zap.String("process", process.Id), zap.Error(err))
		return fmt.Sprintf("model retrain failed: %v", err)
	default:
		logger.Warn("ground truth rejected", zap.String("process", process.Id), zap.Error(err))
		return fmt.Sprintf("ignored ground truth for process %s: %v", process.Name, err)
	}
}

func decide(provided *float64, predicted float64, usePredictions bool) (float64, Source) {
	if usePredictions || provided == nil {
		return predicted, SourcePredicted
	}
	return *provided, SourceProvided
}

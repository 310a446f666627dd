package schedulers

import (
	"fmt"

	"schedsim/internal/core"
	"schedsim/internal/responses"
)

const (
	AlgorithmFCFS       = "FCFS"
	AlgorithmSJF        = "SJF"
	AlgorithmRoundRobin = "RoundRobin"
	AlgorithmPriority   = "Priority"
)

// DefaultAlgorithms is used when a request selects none.
var DefaultAlgorithms = []string{AlgorithmFCFS, AlgorithmSJF, AlgorithmRoundRobin, AlgorithmPriority}

type runner func(processes []core.ProcessSpec, timeQuantum int) (responses.ScheduleResult, error)

var algorithmDispatch = map[string]runner{
	AlgorithmFCFS: func(processes []core.ProcessSpec, _ int) (responses.ScheduleResult, error) {
		return ScheduleFirstComeFirstServe(processes)
	},
	AlgorithmSJF: func(processes []core.ProcessSpec, _ int) (responses.ScheduleResult, error) {
		return ScheduleShortestJobFirst(processes)
	},
	AlgorithmRoundRobin: ScheduleRoundRobin,
	AlgorithmPriority: func(processes []core.ProcessSpec, _ int) (responses.ScheduleResult, error) {
		return SchedulePriority(processes)
	},
}

// NormalizeAlgorithms de-duplicates keys keeping first-seen order. An empty
// selection means all four algorithms.
func NormalizeAlgorithms(keys []string) ([]string, error) {
	if len(keys) == 0 {
		return append([]string(nil), DefaultAlgorithms...), nil
	}
	seen := make(map[string]bool, len(keys))
	unique := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, ok := algorithmDispatch[key]; !ok {
			return nil, fmt.Errorf("%w: unsupported algorithm %q", core.ErrInvalidInput, key)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, key)
	}
	return unique, nil
}

func Run(algorithm string, processes []core.ProcessSpec, timeQuantum int) (responses.ScheduleResult, error) {
	run, ok := algorithmDispatch[algorithm]
	if !ok {
		return responses.ScheduleResult{}, fmt.Errorf("%w: unsupported algorithm %q", core.ErrInvalidInput, algorithm)
	}
	return run(processes, timeQuantum)
}

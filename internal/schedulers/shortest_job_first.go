package schedulers

import (
	"go.uber.org/zap"

	"schedsim/internal/core"
	"schedsim/internal/logger"
	"schedsim/internal/responses"
)

func ScheduleShortestJobFirst(processes []core.ProcessSpec) (responses.ScheduleResult, error) {
	if err := validateProcesses(processes); err != nil {
		return responses.ScheduleResult{}, err
	}
	logger.Debug("running sjf algorithm", zap.Int("processes", len(processes)))

	cpu := runNonPreemptive(processes, func(p core.ProcessSpec) int { return p.BurstTime })
	return generateResponse(AlgorithmSJF, processes, cpu)
}

// runNonPreemptive runs one job to completion every time the CPU frees up,
// choosing among arrived jobs the smallest key, then earliest arrival, then
// submission order. With nothing arrived it idles until the next arrival.
func runNonPreemptive(processes []core.ProcessSpec, key func(core.ProcessSpec) int) *core.Cpu {
	pending := newJobs(processes)
	cpu := core.NewCpu(earliestArrival(pending))

	for len(pending) > 0 {
		next := -1
		for i, j := range pending {
			if j.spec.ArrivalTime > cpu.Clock() {
				continue
			}
			if next < 0 || precedes(j, pending[next], key) {
				next = i
			}
		}
		if next < 0 {
			cpu.IdleUntil(earliestArrival(pending))
			continue
		}

		j := pending[next]
		cpu.Execute(j.spec, j.order, j.spec.BurstTime)
		pending = append(pending[:next], pending[next+1:]...)
	}
	return cpu
}

func precedes(a, b *job, key func(core.ProcessSpec) int) bool {
	if ka, kb := key(a.spec), key(b.spec); ka != kb {
		return ka < kb
	}
	if a.spec.ArrivalTime != b.spec.ArrivalTime {
		return a.spec.ArrivalTime < b.spec.ArrivalTime
	}
	return a.order < b.order
}

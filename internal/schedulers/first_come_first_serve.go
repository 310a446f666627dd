package schedulers

import (
	"sort"

	"go.uber.org/zap"

	"schedsim/internal/core"
	"schedsim/internal/logger"
	"schedsim/internal/responses"
)

func ScheduleFirstComeFirstServe(processes []core.ProcessSpec) (responses.ScheduleResult, error) {
	if err := validateProcesses(processes); err != nil {
		return responses.ScheduleResult{}, err
	}
	logger.Debug("running fcfs algorithm", zap.Int("processes", len(processes)))

	// sort jobs by arrival time, stable so submission order breaks ties
	jobs := newJobs(processes)
	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].spec.ArrivalTime < jobs[j].spec.ArrivalTime
	})

	cpu := core.NewCpu(jobs[0].spec.ArrivalTime)
	for _, j := range jobs {
		cpu.IdleUntil(j.spec.ArrivalTime)
		cpu.Execute(j.spec, j.order, j.spec.BurstTime)
	}

	return generateResponse(AlgorithmFCFS, processes, cpu)
}

package schedulers

import (
	"fmt"

	"schedsim/internal/core"
	"schedsim/internal/responses"
	"schedsim/internal/util"
)

type job struct {
	spec      core.ProcessSpec
	order     int
	remaining int
}

// newJobs copies processes into jobs, remembering submission order.
func newJobs(processes []core.ProcessSpec) []*job {
	jobs := make([]*job, 0, len(processes))
	for i, p := range processes {
		jobs = append(jobs, &job{spec: p, order: i, remaining: p.BurstTime})
	}
	return jobs
}

func earliestArrival(jobs []*job) int {
	earliest := jobs[0].spec.ArrivalTime
	for _, j := range jobs[1:] {
		earliest = min(earliest, j.spec.ArrivalTime)
	}
	return earliest
}

func validateProcesses(processes []core.ProcessSpec) error {
	if len(processes) == 0 {
		return fmt.Errorf("%w: no processes to schedule", core.ErrInvalidInput)
	}
	seen := make(map[string]struct{}, len(processes))
	for _, p := range processes {
		if p.Id == core.IdleProcessId {
			return fmt.Errorf("%w: process id %q is reserved", core.ErrInvalidInput, p.Id)
		}
		if _, ok := seen[p.Id]; ok {
			return fmt.Errorf("%w: duplicate process id %q", core.ErrInvalidInput, p.Id)
		}
		seen[p.Id] = struct{}{}
		if p.BurstTime <= 0 {
			return fmt.Errorf("%w: burst time of process %s must be positive, got %d", core.ErrInvalidInput, p.Name, p.BurstTime)
		}
		if p.ArrivalTime < 0 {
			return fmt.Errorf("%w: arrival time of process %s must not be negative, got %d", core.ErrInvalidInput, p.Name, p.ArrivalTime)
		}
	}
	return nil
}

// generateResponse derives per-process timings and aggregate statistics from
// the trace the cpu recorded. perProcess keeps submission order.
func generateResponse(algorithm string, processes []core.ProcessSpec, cpu *core.Cpu) (responses.ScheduleResult, error) {
	timeline := cpu.Timeline()
	details := make([]responses.ProcessResponse, 0, len(processes))

	firstArrival := processes[0].ArrivalTime
	lastCompletion := 0
	for _, process := range processes {
		d, err := generateProcessDetails(process, timeline)
		if err != nil {
			return responses.ScheduleResult{}, fmt.Errorf("%s: %w", algorithm, err)
		}
		details = append(details, d)
		firstArrival = min(firstArrival, process.ArrivalTime)
		lastCompletion = max(lastCompletion, d.CompletionTime)
	}

	averageWaitingTime, averageResponseTime, averageTurnaroundTime := util.CalculateAverage(details)

	makespan := lastCompletion - firstArrival
	var utilization float64
	throughput := float64(len(processes))
	if makespan > 0 {
		utilization = float64(cpu.Metric().UtilizationTime) / float64(makespan) * 100
		throughput = float64(len(processes)) / float64(makespan)
	}

	return responses.ScheduleResult{
		Algorithm:  algorithm,
		Timeline:   timeline,
		PerProcess: details,
		Metrics: responses.ScheduleMetrics{
			AverageWaitingTime:    averageWaitingTime,
			AverageTurnaroundTime: averageTurnaroundTime,
			AverageResponseTime:   averageResponseTime,
			CpuUtilization:        utilization,
			Makespan:              float64(makespan),
			Throughput:            throughput,
		},
	}, nil
}

func generateProcessDetails(process core.ProcessSpec, timeline []core.TimelineSlice) (responses.ProcessResponse, error) {
	firstStart, completion, executed := -1, -1, 0
	for _, slice := range timeline {
		if slice.ProcessId != process.Id {
			continue
		}
		if firstStart < 0 {
			firstStart = slice.Start
		}
		completion = slice.End
		executed += slice.Duration()
	}
	if firstStart < 0 {
		return responses.ProcessResponse{}, fmt.Errorf("process %s never ran", process.Id)
	}
	if executed != process.BurstTime {
		return responses.ProcessResponse{}, fmt.Errorf("process %s ran %d units, burst is %d", process.Id, executed, process.BurstTime)
	}

	turnaroundTime := completion - process.ArrivalTime
	waitingTime := turnaroundTime - process.BurstTime
	responseTime := firstStart - process.ArrivalTime
	if waitingTime < 0 || responseTime < 0 {
		return responses.ProcessResponse{}, fmt.Errorf("process %s has negative waiting (%d) or response (%d) time", process.Id, waitingTime, responseTime)
	}

	return responses.ProcessResponse{
		Id:             process.Id,
		Name:           process.Name,
		WaitingTime:    waitingTime,
		TurnaroundTime: turnaroundTime,
		ResponseTime:   responseTime,
		CompletionTime: completion,
	}, nil
}

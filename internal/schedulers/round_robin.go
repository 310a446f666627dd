package schedulers

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"schedsim/internal/core"
	"schedsim/internal/logger"
	"schedsim/internal/responses"
)

type processQueue struct {
	queue []*job
}

func newProcessQueue(capacity int) *processQueue {
	return &processQueue{queue: make([]*job, 0, capacity)}
}

func (p *processQueue) AddToEnd(j *job) {
	p.queue = append(p.queue, j)
}

func (p *processQueue) RemoveFromTop() (*job, bool) {
	if len(p.queue) == 0 {
		return nil, false
	}
	item := p.queue[0]
	p.queue = p.queue[1:]
	return item, true
}

func (p *processQueue) Empty() bool {
	return len(p.queue) == 0
}

// ScheduleRoundRobin runs the head of a FIFO ready queue for at most
// timeQuantum units. Jobs arriving in (start, end] of a slice join the queue
// before the preempted job is put back.
func ScheduleRoundRobin(processes []core.ProcessSpec, timeQuantum int) (responses.ScheduleResult, error) {
	if timeQuantum <= 0 {
		return responses.ScheduleResult{}, fmt.Errorf("%w: round robin time quantum must be at least 1, got %d", core.ErrInvalidConfiguration, timeQuantum)
	}
	if err := validateProcesses(processes); err != nil {
		return responses.ScheduleResult{}, err
	}
	logger.Debug("running roundRobin algorithm", zap.Int("processes", len(processes)), zap.Int("timeQuantum", timeQuantum))

	// not yet arrived, by arrival then submission order
	arrivals := newJobs(processes)
	sort.SliceStable(arrivals, func(i, j int) bool {
		return arrivals[i].spec.ArrivalTime < arrivals[j].spec.ArrivalTime
	})

	cpu := core.NewCpu(arrivals[0].spec.ArrivalTime)
	readyQueue := newProcessQueue(len(arrivals))
	next := 0
	admit := func(until int) {
		for next < len(arrivals) && arrivals[next].spec.ArrivalTime <= until {
			readyQueue.AddToEnd(arrivals[next])
			next++
		}
	}
	admit(cpu.Clock())

	for !readyQueue.Empty() || next < len(arrivals) {
		current, ok := readyQueue.RemoveFromTop()
		if !ok {
			cpu.IdleUntil(arrivals[next].spec.ArrivalTime)
			admit(cpu.Clock())
			continue
		}

		run := min(timeQuantum, current.remaining)
		_, end := cpu.Execute(current.spec, current.order, run)
		current.remaining -= run

		admit(end)
		if current.remaining > 0 {
			readyQueue.AddToEnd(current)
		}
	}

	return generateResponse(AlgorithmRoundRobin, processes, cpu)
}

package schedulers

import (
	"go.uber.org/zap"

	"schedsim/internal/core"
	"schedsim/internal/logger"
	"schedsim/internal/responses"
)

// SchedulePriority is nonpreemptive; a lower value means a higher priority.
func SchedulePriority(processes []core.ProcessSpec) (responses.ScheduleResult, error) {
	if err := validateProcesses(processes); err != nil {
		return responses.ScheduleResult{}, err
	}
	logger.Debug("running priority algorithm", zap.Int("processes", len(processes)))

	cpu := runNonPreemptive(processes, func(p core.ProcessSpec) int { return p.Priority })
	return generateResponse(AlgorithmPriority, processes, cpu)
}

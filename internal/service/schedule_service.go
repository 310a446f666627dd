package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"schedsim/internal/core"
	"schedsim/internal/logger"
	"schedsim/internal/metrics"
	"schedsim/internal/requests"
	"schedsim/internal/resolver"
	"schedsim/internal/responses"
	"schedsim/internal/schedulers"
)

type ScheduleService struct {
	resolver       *resolver.Resolver
	defaultQuantum int
}

func NewScheduleService(r *resolver.Resolver, defaultQuantum int) *ScheduleService {
	return &ScheduleService{resolver: r, defaultQuantum: max(1, defaultQuantum)}
}

// Schedule resolves the request's processes once and runs every selected
// algorithm on that same batch. Any error aborts the whole request.
func (s *ScheduleService) Schedule(ctx context.Context, request requests.ScheduleRequest) (responses.ScheduleResponse, error) {
	response, err := s.schedule(ctx, request)
	if err != nil {
		metrics.ScheduleFailures.WithLabelValues(failureReason(err)).Inc()
	}
	return response, err
}

func (s *ScheduleService) schedule(ctx context.Context, request requests.ScheduleRequest) (responses.ScheduleResponse, error) {
	if err := ctx.Err(); err != nil {
		return responses.ScheduleResponse{}, err
	}
	runId := uuid.NewString()

	algorithms, err := schedulers.NormalizeAlgorithms(request.SelectedAlgorithms)
	if err != nil {
		return responses.ScheduleResponse{}, err
	}
	quantum, err := s.timeQuantum(request.RoundRobinQuantum)
	if err != nil {
		return responses.ScheduleResponse{}, err
	}

	batch, err := s.resolver.ResolveBatch(request.Processes, request.PredictionsEnabled())
	if err != nil {
		return responses.ScheduleResponse{}, err
	}
	specs := batch.Specs()

	logger.Info("scheduling batch",
		zap.String("run_id", runId),
		zap.Int("processes", len(specs)),
		zap.Strings("algorithms", algorithms),
		zap.Int("quantum", quantum),
		zap.Bool("use_predictions", request.PredictionsEnabled()))

	results := make([]responses.ScheduleResult, 0, len(algorithms))
	for _, algorithm := range algorithms {
		if err := ctx.Err(); err != nil {
			return responses.ScheduleResponse{}, err
		}
		result, err := schedulers.Run(algorithm, specs, quantum)
		if err != nil {
			return responses.ScheduleResponse{}, err
		}
		metrics.ScheduleRuns.WithLabelValues(algorithm).Inc()
		results = append(results, result)
	}

	if len(batch.Warnings) > 0 {
		logger.Warnf("run %s finished with %d warnings", runId, len(batch.Warnings))
	}

	return responses.ScheduleResponse{
		RunId:             runId,
		Results:           results,
		ResolvedProcesses: specs,
		Warnings:          batch.Warnings,
	}, nil
}

// timeQuantum clamps a caller's quantum to at least 1, or uses the default.
func (s *ScheduleService) timeQuantum(requested *float64) (int, error) {
	if requested == nil {
		return s.defaultQuantum, nil
	}
	q := *requested
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0, fmt.Errorf("%w: round robin quantum must be a finite number", core.ErrInvalidConfiguration)
	}
	if q > math.MaxInt32 {
		return 0, fmt.Errorf("%w: round robin quantum %v is too large", core.ErrInvalidConfiguration, q)
	}
	if q < 1 {
		return 1, nil
	}
	return int(math.Round(q)), nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, core.ErrInvalidConfiguration):
		return "invalid_configuration"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "internal"
	}
}

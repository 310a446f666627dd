package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"schedsim/internal/core"
	"schedsim/internal/logger"
	"schedsim/internal/prediction"
	"schedsim/internal/requests"
	"schedsim/internal/responses"
	"schedsim/internal/schedulers"
	"schedsim/internal/service"
)

type SchedulerHandler interface {
	Schedule(ctx *fiber.Ctx) error
	FirstComeFirstServe(ctx *fiber.Ctx) error
	ShortestJobFirst(ctx *fiber.Ctx) error
	RoundRobin(ctx *fiber.Ctx) error
	Priority(ctx *fiber.Ctx) error
	Predict(ctx *fiber.Ctx) error
	Model(ctx *fiber.Ctx) error
}

type SchedulerHandlerImpl struct {
	service *service.ScheduleService
	cache   *prediction.Cache
}

func NewSchedulerHandlerImpl(service *service.ScheduleService, cache *prediction.Cache) *SchedulerHandlerImpl {
	return &SchedulerHandlerImpl{service: service, cache: cache}
}

func (s *SchedulerHandlerImpl) Schedule(ctx *fiber.Ctx) error {
	return s.schedule(ctx, nil)
}

func (s *SchedulerHandlerImpl) FirstComeFirstServe(ctx *fiber.Ctx) error {
	return s.schedule(ctx, []string{schedulers.AlgorithmFCFS})
}

func (s *SchedulerHandlerImpl) ShortestJobFirst(ctx *fiber.Ctx) error {
	return s.schedule(ctx, []string{schedulers.AlgorithmSJF})
}

func (s *SchedulerHandlerImpl) RoundRobin(ctx *fiber.Ctx) error {
	return s.schedule(ctx, []string{schedulers.AlgorithmRoundRobin})
}

func (s *SchedulerHandlerImpl) Priority(ctx *fiber.Ctx) error {
	return s.schedule(ctx, []string{schedulers.AlgorithmPriority})
}

// schedule runs the request body, forcing the algorithm list when forced is set.
func (s *SchedulerHandlerImpl) schedule(ctx *fiber.Ctx, forced []string) error {
	var request requests.ScheduleRequest
	if err := ctx.BodyParser(&request); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(responses.ErrorResponse{Error: "invalid request format"})
	}
	if forced != nil {
		request.SelectedAlgorithms = forced
	}

	response, err := s.service.Schedule(ctx.UserContext(), request)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(response)
}

func (s *SchedulerHandlerImpl) Predict(ctx *fiber.Ctx) error {
	var features core.FeatureVector
	if err := ctx.BodyParser(&features); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(responses.ErrorResponse{Error: "invalid request format"})
	}
	if err := features.Validate(); err != nil {
		return respondError(ctx, err)
	}

	p := s.cache.Predict(features.Clamp())
	return ctx.JSON(responses.PredictionResponse{Burst: p.Burst, Priority: p.Priority, Source: p.Source})
}

func (s *SchedulerHandlerImpl) Model(ctx *fiber.Ctx) error {
	return ctx.JSON(responses.ModelResponse{Trained: s.cache.Trained(), Samples: s.cache.Samples()})
}

func respondError(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	if errors.Is(err, core.ErrInvalidInput) || errors.Is(err, core.ErrInvalidConfiguration) {
		status = fiber.StatusBadRequest
	} else {
		logger.Error("schedule request failed", zap.Error(err))
	}
	return ctx.Status(status).JSON(responses.ErrorResponse{Error: err.Error()})
}

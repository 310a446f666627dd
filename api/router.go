package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"schedsim/internal/metrics"
)

func NewApp(handler SchedulerHandler, metricsEnabled bool) *fiber.App {
	app := fiber.New()
	app.Use(recover.New())

	api := app.Group("/api")

	v1 := api.Group("/v1")
	{
		v1.Post("/schedule", handler.Schedule)
		v1.Post("/fcfs", handler.FirstComeFirstServe)
		v1.Post("/sjf", handler.ShortestJobFirst)
		v1.Post("/rr", handler.RoundRobin)
		v1.Post("/priority", handler.Priority)
		v1.Post("/predict", handler.Predict)
		v1.Get("/model", handler.Model)
	}

	if metricsEnabled {
		app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	}
	return app
}

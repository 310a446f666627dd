package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	"schedsim/api"
	"schedsim/config"
	"schedsim/internal/logger"
	"schedsim/internal/prediction"
	"schedsim/internal/resolver"
	"schedsim/internal/service"
)

func main() {
	cfg := config.GetSchedulerConfig()
	if err := logger.Init(cfg.Logger); err != nil {
		log.Fatalln(err)
	}
	defer logger.Sync()

	cache := prediction.Default()
	scheduleService := service.NewScheduleService(resolver.NewResolver(cache), cfg.RoundRobinTimeQuantum)
	app := api.NewApp(api.NewSchedulerHandlerImpl(scheduleService, cache), cfg.MetricsEnabled)

	logger.Infof("starting scheduler simulator on port %d", cfg.Port)
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

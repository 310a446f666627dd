package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/tidwall/pretty"

	"schedsim/config"
	"schedsim/internal/prediction"
	"schedsim/internal/requests"
	"schedsim/internal/resolver"
	"schedsim/internal/responses"
	"schedsim/internal/service"
	"schedsim/pkg/client"
)

func main() {
	workload := flag.String("f", "workload.yaml", "YAML workload file")
	server := flag.String("server", "", "scheduler URL, e.g. http://localhost:9095 (empty runs in-process)")
	algorithms := flag.String("algorithms", "", "comma-separated algorithms, overrides the workload")
	quantum := flag.Float64("quantum", 0, "round robin quantum, overrides the workload when > 0")
	flag.Parse()

	request, err := loadWorkload(*workload)
	if err != nil {
		log.Fatalf("load workload: %v", err)
	}
	applyOverrides(&request, *algorithms, *quantum)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var response responses.ScheduleResponse
	if *server != "" {
		response, err = client.New(*server).Schedule(ctx, request)
	} else {
		cfg := config.GetSchedulerConfig()
		cache := prediction.Default()
		response, err = service.NewScheduleService(resolver.NewResolver(cache), cfg.RoundRobinTimeQuantum).Schedule(ctx, request)
	}
	if err != nil {
		log.Fatalf("schedule failed: %v", err)
	}

	data, err := json.Marshal(response)
	if err != nil {
		log.Fatalf("encode response: %v", err)
	}
	os.Stdout.Write(pretty.Pretty(data))
}

func applyOverrides(request *requests.ScheduleRequest, algorithms string, quantum float64) {
	if algorithms != "" {
		request.SelectedAlgorithms = strings.Split(algorithms, ",")
		for i := range request.SelectedAlgorithms {
			request.SelectedAlgorithms[i] = strings.TrimSpace(request.SelectedAlgorithms[i])
		}
	}
	if quantum > 0 {
		request.RoundRobinQuantum = &quantum
	}
}

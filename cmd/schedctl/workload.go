package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"schedsim/internal/requests"
)

// loadWorkload reads a schedule request from a YAML file.
func loadWorkload(path string) (requests.ScheduleRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return requests.ScheduleRequest{}, err
	}

	var request requests.ScheduleRequest
	if err := yaml.Unmarshal(data, &request); err != nil {
		return requests.ScheduleRequest{}, fmt.Errorf("parse workload %s: %w", path, err)
	}
	return request, nil
}

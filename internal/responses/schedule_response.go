package responses

import "schedsim/internal/core"

type ProcessResponse struct {
	Id             string `json:"id"`
	Name           string `json:"name"`
	WaitingTime    int    `json:"waitingTime"`
	TurnaroundTime int    `json:"turnaroundTime"`
	ResponseTime   int    `json:"responseTime"`
	CompletionTime int    `json:"completionTime"`
}

type ScheduleMetrics struct {
	AverageWaitingTime    float64 `json:"averageWaitingTime"`
	AverageTurnaroundTime float64 `json:"averageTurnaroundTime"`
	AverageResponseTime   float64 `json:"averageResponseTime"`
	CpuUtilization        float64 `json:"cpuUtilization"`
	Makespan              float64 `json:"makespan"`
	Throughput            float64 `json:"throughput"`
}

type ScheduleResult struct {
	Algorithm  string               `json:"algorithm"`
	Timeline   []core.TimelineSlice `json:"timeline"`
	PerProcess []ProcessResponse    `json:"perProcess"`
	Metrics    ScheduleMetrics      `json:"metrics"`
}

type ScheduleResponse struct {
	RunId             string             `json:"runId"`
	Results           []ScheduleResult   `json:"results"`
	ResolvedProcesses []core.ProcessSpec `json:"resolvedProcesses"`
	Warnings          []string           `json:"warnings,omitempty"`
}

type PredictionResponse struct {
	Burst    float64 `json:"burst"`
	Priority float64 `json:"priority"`
	Source   string  `json:"source"`
}

type ModelResponse struct {
	Trained bool `json:"trained"`
	Samples int  `json:"samples"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

package client

import (
	"context"
	"errors"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedsim/internal/core"
	"schedsim/internal/requests"
)

const baseURL = "http://scheduler.local:9095"

func TestClient_Schedule(t *testing.T) {
	httpmock.Activate(t)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", baseURL+"/api/v1/schedule",
		httpmock.NewStringResponder(200, `{
			"runId": "run-1",
			"results": [{"algorithm": "FCFS", "timeline": [{"processId": "A", "label": "alpha", "start": 0, "end": 5, "colorKey": "#2563eb"}],
			             "perProcess": [{"id": "A", "name": "alpha", "waitingTime": 0, "turnaroundTime": 5, "responseTime": 0, "completionTime": 5}],
			             "metrics": {"averageWaitingTime": 0, "averageTurnaroundTime": 5, "averageResponseTime": 0, "cpuUtilization": 100, "makespan": 5, "throughput": 0.2}}],
			"resolvedProcesses": [{"id": "A", "name": "alpha", "arrivalTime": 0, "burstTime": 5, "priority": 2}]
		}`))

	c := New(baseURL + "/")
	response, err := c.Schedule(context.Background(), requests.ScheduleRequest{
		Processes:          []requests.ProcessInput{{Id: "A", Name: "alpha", Features: &core.FeatureVector{EstimatedBurst: 5}}},
		SelectedAlgorithms: []string{"FCFS"},
	})
	require.NoError(t, err)
	assert.Equal(t, "run-1", response.RunId)
	require.Len(t, response.Results, 1)
	assert.Equal(t, 5, response.Results[0].PerProcess[0].CompletionTime)
	assert.Equal(t, core.ProcessSpec{Id: "A", Name: "alpha", ArrivalTime: 0, BurstTime: 5, Priority: 2}, response.ResolvedProcesses[0])
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestClient_ErrorResponses(t *testing.T) {
	httpmock.Activate(t)
	defer httpmock.DeactivateAndReset()

	tests := []struct {
		name    string
		expects func()
		want    string
	}{
		{
			name: "api error message",
			expects: func() {
				httpmock.RegisterResponder("POST", baseURL+"/api/v1/schedule",
					httpmock.NewStringResponder(400, `{"error": "invalid input: unsupported algorithm \"MLFQ\""}`))
			},
			want: "unsupported algorithm",
		},
		{
			name: "no error body",
			expects: func() {
				httpmock.RegisterResponder("POST", baseURL+"/api/v1/schedule",
					httpmock.NewStringResponder(502, `bad gateway`))
			},
			want: "status 502",
		},
		{
			name: "transport error",
			expects: func() {
				httpmock.RegisterResponder("POST", baseURL+"/api/v1/schedule",
					httpmock.NewErrorResponder(errors.New("connection refused")))
			},
			want: "connection refused",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpmock.Reset()
			tt.expects()

			_, err := New(baseURL).Schedule(context.Background(), requests.ScheduleRequest{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestClient_PredictAndModel(t *testing.T) {
	httpmock.Activate(t)
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", baseURL+"/api/v1/predict",
		httpmock.NewStringResponder(200, `{"burst": 30, "priority": 2.2, "source": "heuristic"}`))
	httpmock.RegisterResponder("GET", baseURL+"/api/v1/model",
		httpmock.NewStringResponder(200, `{"trained": true, "samples": 4}`))

	c := New(baseURL)
	p, err := c.Predict(context.Background(), core.FeatureVector{EstimatedBurst: 30})
	require.NoError(t, err)
	assert.Equal(t, 30.0, p.Burst)
	assert.Equal(t, "heuristic", p.Source)

	m, err := c.Model(context.Background())
	require.NoError(t, err)
	assert.True(t, m.Trained)
	assert.Equal(t, 4, m.Samples)
}

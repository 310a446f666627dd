package util

import "schedsim/internal/responses"

func CalculateAverage(processDetails []responses.ProcessResponse) (averageWaitingTime, averageResponseTime, averageTurnaroundTime float64) {
	if len(processDetails) == 0 {
		return
	}
	var waitingTimeSum, responseTimeSum, turnaroundTimeSum int

	for _, process := range processDetails {
		waitingTimeSum += process.WaitingTime
		responseTimeSum += process.ResponseTime
		turnaroundTimeSum += process.TurnaroundTime
	}

	processCount := float64(len(processDetails))

	averageWaitingTime = float64(waitingTimeSum) / processCount
	averageResponseTime = float64(responseTimeSum) / processCount
	averageTurnaroundTime = float64(turnaroundTimeSum) / processCount
	return
}

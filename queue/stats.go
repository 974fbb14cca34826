package queue

// Stats is the aggregate view returned by JobManager.GetStats and
// served verbatim as JSON by the dashboard's /api/stats endpoint.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Scheduled int `json:"scheduled"`
	Running   int `json:"running"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
	Dlq       int `json:"dlq"`
	Cancelled int `json:"cancelled"`

	SuccessRate      float64 `json:"success_rate"`
	AvgExecutionTime float64 `json:"avg_execution_time"`
}

package domain

import "time"

// Run records one complete pipeline execution.
type Run struct {
	ID                string    `json:"id"`
	StartedAt         time.Time `json:"started_at"`
	InputFile         string    `json:"input_file"`
	TotalInput        int       `json:"total_input"`
	Invalid           int       `json:"invalid"`
	ValidRecords      int       `json:"valid_records"`
	FilteredByRegion  int       `json:"filtered_by_region"`
	FilteredByAmount  int       `json:"filtered_by_amount"`
	FinalCount        int       `json:"final_count"`
	TotalRevenue      float64   `json:"total_revenue"`
	EnrichAttempted   int       `json:"enrich_attempted"`
	EnrichMatched     int       `json:"enrich_matched"`
	EnrichSuccessRate float64   `json:"enrich_success_rate"`
}

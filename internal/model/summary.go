package model

// Summary is the before/after data quality report.
type Summary struct {
	InitialErrorCount   int     `json:"initial_error_count"`
	CorrectedErrorCount int     `json:"corrected_error_count"`
	ImprovementPercent  float64 `json:"improvement_percent"`
	// NoBaseline is set when there were no initial errors; ImprovementPercent is then 100.
	NoBaseline bool `json:"no_baseline,omitempty"`
}

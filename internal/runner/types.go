package runner

import "github.com/knowmebench/knowme-eval/internal/judge"

// Meta summarizes one evaluation run.
type Meta struct {
	JudgeModel     string  `json:"judge_model"`
	TotalItems     int     `json:"total_items"`
	EvaluatedItems int     `json:"evaluated_items"`
	AverageScore   float64 `json:"average_score"`
}

// Report is the persisted output of a run: summary statistics plus one
// verdict per input item, in input order.
type Report struct {
	Meta    Meta            `json:"meta"`
	Details []judge.Verdict `json:"details"`
}

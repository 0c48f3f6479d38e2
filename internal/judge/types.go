package judge

import "github.com/knowmebench/knowme-eval/internal/dataset"

// Status is the terminal state of one evaluated item.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusSkipped Status = "skipped"
)

// Verdict is the judge's outcome for a single item. ID and TaskType always
// mirror the originating item. Score and Reasoning are absent when the
// judge reply omitted them; error verdicts carry an explicit zero score.
type Verdict struct {
	ID        dataset.ItemID `json:"id"`
	TaskType  string         `json:"task_type,omitempty"`
	Score     *float64       `json:"score,omitempty"`
	Reasoning *string        `json:"reasoning,omitempty"`
	Status    Status         `json:"status"`
	Error     string         `json:"error,omitempty"`
}

// Scored reports whether the verdict contributes to the average: a success
// with a numeric score.
func (v *Verdict) Scored() bool {
	return v != nil && v.Status == StatusSuccess && v.Score != nil
}

package store

import (
	"context"
	"time"

	"github.com/knowmebench/knowme-eval/internal/judge"
)

// RunWriter defines persistence for completed evaluation runs.
type RunWriter interface {
	SaveRun(ctx context.Context, run *RunRecord) error
}

// RunReader defines read access to run history.
type RunReader interface {
	GetRun(ctx context.Context, id string) (*RunRecord, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]*RunRecord, error)
}

// Store defines persistence for evaluation run history.
type Store interface {
	RunWriter
	RunReader
	Close() error
}

// RunRecord stores one evaluation run: summary statistics plus the full
// verdict details.
type RunRecord struct {
	ID             string
	JudgeModel     string
	InputFile      string
	OutputFile     string
	StartedAt      time.Time
	FinishedAt     time.Time
	TotalItems     int
	EvaluatedItems int
	AverageScore   float64
	Details        []judge.Verdict // JSON serialized
}

// RunFilter filters run listings.
type RunFilter struct {
	JudgeModel string
	Since      time.Time
	Limit      int
}

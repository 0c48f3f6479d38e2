package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/knowmebench/knowme-eval/internal/dataset"
	"github.com/knowmebench/knowme-eval/internal/judge"
	"github.com/knowmebench/knowme-eval/internal/prompt"
)

const skippedReason = "Task type not found in prompt file"

// Runner drives one evaluation pass: items are processed strictly in input
// order, one blocking judge call at a time.
type Runner struct {
	Judge     *judge.Judge
	Templates *prompt.TemplateSet
	Progress  io.Writer // nil silences progress output
}

// Run evaluates all items and assembles the report. Per-item failures are
// recorded as verdicts and never abort the batch; the only early exit is
// context cancellation, which returns the partial report alongside the
// context error.
func (r *Runner) Run(ctx context.Context, items []dataset.Item) (*Report, error) {
	if r == nil {
		return nil, errors.New("runner: nil runner")
	}
	if r.Judge == nil {
		return nil, errors.New("runner: nil judge")
	}
	if r.Templates == nil {
		return nil, errors.New("runner: nil template set")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	out := &Report{
		Meta:    Meta{JudgeModel: r.Judge.Model, TotalItems: len(items)},
		Details: make([]judge.Verdict, 0, len(items)),
	}

	for i := range items {
		if err := ctx.Err(); err != nil {
			r.finalize(out)
			return out, err
		}

		item := &items[i]
		template, ok := r.Templates.Get(item.TaskType)
		if !ok {
			r.printf("Warning: no prompt template for task type %q (id=%s)\n", item.TaskType, item.ID)
			out.Details = append(out.Details, judge.Verdict{
				ID:       item.ID,
				TaskType: item.TaskType,
				Status:   judge.StatusSkipped,
				Error:    skippedReason,
			})
			r.progress(i+1, len(items), item, judge.StatusSkipped)
			continue
		}

		v := r.Judge.EvaluateItem(ctx, item, template)
		out.Details = append(out.Details, *v)
		if v.Status == judge.StatusError && v.Reasoning != nil {
			r.printf("Error processing item %s: %s\n", item.ID, *v.Reasoning)
		}
		r.progress(i+1, len(items), item, v.Status)
	}

	r.finalize(out)
	return out, nil
}

// finalize computes the average over success verdicts with numeric scores;
// error and skipped verdicts are excluded from both sides of the division.
func (r *Runner) finalize(out *Report) {
	var sum float64
	n := 0
	for i := range out.Details {
		v := &out.Details[i]
		if !v.Scored() {
			continue
		}
		sum += *v.Score
		n++
	}
	out.Meta.EvaluatedItems = n
	if n > 0 {
		out.Meta.AverageScore = round4(sum / float64(n))
	}
}

func (r *Runner) progress(done, total int, item *dataset.Item, status judge.Status) {
	r.printf("[%d/%d] id=%s task=%q %s\n", done, total, item.ID, item.TaskType, status)
}

func (r *Runner) printf(format string, args ...any) {
	if r == nil || r.Progress == nil {
		return
	}
	fmt.Fprintf(r.Progress, format, args...)
}

func round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}

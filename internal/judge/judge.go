package judge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/knowmebench/knowme-eval/internal/dataset"
	"github.com/knowmebench/knowme-eval/internal/llm"
	"github.com/knowmebench/knowme-eval/internal/prompt"
)

// SystemInstruction frames the judge's role for every request.
const SystemInstruction = "You are an impartial judge evaluating AI model outputs based on strict criteria."

const defaultMaxTokens = 1024

// Judge scores evaluation items by sending rendered grading prompts to an
// injected provider. A zero Judge is unusable; construct with a provider.
type Judge struct {
	Provider  llm.Provider
	Model     string
	MaxTokens int
}

// EvaluateItem renders the template for one item, asks the judge model for
// a structured score, and converts the reply into a Verdict. Failures are
// never returned: transport errors, empty replies, and unparseable output
// each become an error verdict so the batch continues.
func (j *Judge) EvaluateItem(ctx context.Context, item *dataset.Item, template string) *Verdict {
	if item == nil {
		return &Verdict{
			Status: StatusError,
			Score:  float64Ptr(0),
			Error:  "judge: nil item",
		}
	}
	if j == nil || j.Provider == nil {
		return errorVerdict(item, "judge not configured: nil provider")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	rendered := prompt.Render(template,
		item.Question.String(),
		item.ReferenceAnswer.String(),
		item.ModelAnswer.String(),
	)

	maxTokens := j.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	resp, err := j.Provider.Complete(ctx, &llm.Request{
		Model:        j.Model,
		System:       SystemInstruction,
		Messages:     []llm.Message{{Role: "user", Content: rendered}},
		MaxTokens:    maxTokens,
		Temperature:  0,
		JSONResponse: true,
	})
	if err != nil {
		return errorVerdict(item, describeCallError(err))
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return errorVerdict(item, "empty judge response")
	}

	raw := strings.TrimSpace(resp.Content)
	var out map[string]any
	if err := llm.ParseJSON(raw, &out); err != nil {
		return errorVerdict(item, fmt.Sprintf("malformed judge output: %v", err))
	}

	v := &Verdict{
		ID:       item.ID,
		TaskType: item.TaskType,
		Status:   StatusSuccess,
	}
	if score, ok := out["score"].(float64); ok {
		v.Score = &score
	}
	if reasoning, ok := out["reasoning"].(string); ok {
		v.Reasoning = &reasoning
	}
	return v
}

// describeCallError maps a provider failure to a distinct reported reason.
func describeCallError(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("judge request timed out: %v", err)
	case errors.Is(err, context.Canceled):
		return fmt.Sprintf("judge request canceled: %v", err)
	default:
		return fmt.Sprintf("judge request failed: %v", err)
	}
}

func errorVerdict(item *dataset.Item, reason string) *Verdict {
	reasoning := "Evaluation Error: " + reason
	return &Verdict{
		ID:        item.ID,
		TaskType:  item.TaskType,
		Score:     float64Ptr(0),
		Reasoning: &reasoning,
		Status:    StatusError,
	}
}

func float64Ptr(f float64) *float64 { return &f }

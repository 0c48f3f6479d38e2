package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/knowmebench/knowme-eval/internal/claude"
)

type ClaudeProvider struct {
	client *claude.Client
}

func NewClaudeProvider(apiKey string, baseURL string, model string) *ClaudeProvider {
	opts := make([]claude.Option, 0, 2)
	if v := strings.TrimSpace(baseURL); v != "" {
		opts = append(opts, claude.WithBaseURL(v))
	}
	if v := strings.TrimSpace(model); v != "" {
		opts = append(opts, claude.WithModel(v))
	}
	return &ClaudeProvider{
		client: claude.NewClient(strings.TrimSpace(apiKey), opts...),
	}
}

func (p *ClaudeProvider) Name() string {
	return "claude"
}

func (p *ClaudeProvider) Complete(ctx context.Context, req *Request) (*Response, error) {
	if p == nil || p.client == nil {
		return nil, errors.New("llm: claude: nil client")
	}
	if req == nil {
		return nil, errors.New("llm: claude: nil request")
	}

	messages := make([]claude.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, claude.Message{Role: m.Role, Content: m.Content})
	}

	// The messages API has no JSON response mode; the prompt's format
	// instruction carries that requirement and ParseJSON absorbs fences.
	cResp, err := p.client.Complete(ctx, &claude.Request{
		Model:       req.Model,
		Messages:    messages,
		System:      req.System,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, err
	}
	if cResp == nil {
		return nil, errors.New("llm: claude: nil response")
	}

	return &Response{
		Content:    claude.Text(cResp),
		StopReason: cResp.StopReason,
		Usage: Usage{
			InputTokens:  cResp.Usage.InputTokens,
			OutputTokens: cResp.Usage.OutputTokens,
		},
	}, nil
}

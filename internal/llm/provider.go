package llm

import "context"

// Provider is a chat-completion backend usable as a judge model.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req *Request) (*Response, error)
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	Model       string
	Messages    []Message
	System      string
	MaxTokens   int
	Temperature float64
	// JSONResponse requests a machine-parseable JSON object reply from
	// providers that support structured output modes.
	JSONResponse bool
}

type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type Response struct {
	Content    string
	Usage      Usage
	StopReason string
}

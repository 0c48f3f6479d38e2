package claude

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func messageResponse(id, model, stopReason, text string, in, out int) map[string]any {
	return map[string]any{
		"id":    id,
		"type":  "message",
		"role":  "assistant",
		"model": model,
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
		"stop_reason":   stopReason,
		"stop_sequence": "",
		"usage": map[string]any{
			"input_tokens":  in,
			"output_tokens": out,
		},
	}
}

func TestComplete_DefaultModelAndHeaders(t *testing.T) {
	t.Parallel()

	reqCh := make(chan map[string]any, 1)
	hdrCh := make(chan http.Header, 1)
	pathCh := make(chan string, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			defer r.Body.Close()
		}

		b, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "read body", http.StatusBadRequest)
			return
		}

		var gotReq map[string]any
		if err := json.Unmarshal(b, &gotReq); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		reqCh <- gotReq
		hdrCh <- r.Header.Clone()
		pathCh <- r.URL.Path

		w.Header().Set("content-type", "application/json")
		model, _ := gotReq["model"].(string)
		_ = json.NewEncoder(w).Encode(messageResponse("msg_1", model, "end_turn", "ok", 1, 2))
	}))
	t.Cleanup(srv.Close)

	c := NewClient("test-key", WithBaseURL(srv.URL+"/v1/"))
	resp, err := c.Complete(context.Background(), &Request{
		Messages:  []Message{{Role: "user", Content: "hi"}},
		System:    "sys",
		MaxTokens: 12,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp == nil {
		t.Fatalf("Complete: nil response")
	}
	if got := Text(resp); got != "ok" {
		t.Fatalf("Text: got %q want %q", got, "ok")
	}
	if resp.StopReason != "end_turn" {
		t.Fatalf("StopReason: got %q", resp.StopReason)
	}
	if resp.Usage.InputTokens != 1 || resp.Usage.OutputTokens != 2 {
		t.Fatalf("Usage: %+v", resp.Usage)
	}

	gotReq := <-reqCh
	gotHdr := <-hdrCh
	gotPath := <-pathCh

	if gotPath != "/v1/messages" {
		t.Fatalf("path: got %q want %q", gotPath, "/v1/messages")
	}
	if gotReq["model"] != defaultModel {
		t.Fatalf("model: got %v want %q", gotReq["model"], defaultModel)
	}
	if gotReq["max_tokens"] != float64(12) {
		t.Fatalf("max_tokens: got %v want %d", gotReq["max_tokens"], 12)
	}
	if gotReq["temperature"] != float64(0) {
		t.Fatalf("temperature: got %v want explicit 0", gotReq["temperature"])
	}
	if gotHdr.Get("anthropic-version") != apiVersionHeader {
		t.Fatalf("anthropic-version: got %q", gotHdr.Get("anthropic-version"))
	}
	if gotHdr.Get("x-api-key") != "test-key" {
		t.Fatalf("x-api-key: got %q", gotHdr.Get("x-api-key"))
	}
}

func TestComplete_APIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"invalid_request_error","message":"bad prompt"}}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient("test-key", WithBaseURL(srv.URL+"/v1"))
	_, err := c.Complete(context.Background(), &Request{
		Messages:  []Message{{Role: "user", Content: "hi"}},
		MaxTokens: 4,
	})
	if err == nil {
		t.Fatalf("Complete: expected error")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type: %T", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("StatusCode: got %d", apiErr.StatusCode)
	}
	if apiErr.Type != "invalid_request_error" || apiErr.Message != "bad prompt" {
		t.Fatalf("parsed error: %+v", apiErr)
	}
}

func TestComplete_NilArguments(t *testing.T) {
	t.Parallel()

	if _, err := (*Client)(nil).Complete(context.Background(), &Request{}); err == nil {
		t.Fatalf("nil client: expected error")
	}

	c := NewClient("k")
	if _, err := c.Complete(nil, &Request{}); err == nil { //nolint:staticcheck
		t.Fatalf("nil context: expected error")
	}
	if _, err := c.Complete(context.Background(), nil); err == nil {
		t.Fatalf("nil request: expected error")
	}
}

func TestOptions_NilReceiverAndValidation(t *testing.T) {
	t.Parallel()

	WithBaseURL("http://example.com")(nil)
	WithModel("m")(nil)
	WithTimeout(time.Second)(nil)

	c := &Client{}
	WithBaseURL(" ")(c)
	WithModel(" ")(c)
	WithTimeout(250 * time.Millisecond)(c)

	if c.baseURL != "" || c.model != "" {
		t.Fatalf("blank options applied: %#v", c)
	}
	if c.httpClient == nil || c.httpClient.Timeout != 250*time.Millisecond {
		t.Fatalf("httpClient timeout: %#v", c.httpClient)
	}
}

func TestAPIError_ErrorFormatting(t *testing.T) {
	t.Parallel()

	if got := (*APIError)(nil).Error(); got != "claude: api error <nil>" {
		t.Fatalf("Error(nil): got %q", got)
	}

	e := &APIError{Status: "400 Bad Request", Type: "invalid", Message: "bad"}
	if got := e.Error(); !strings.Contains(got, "invalid: bad") {
		t.Fatalf("Error(): got %q", got)
	}

	e = &APIError{Status: "400 Bad Request", Body: []byte(" body ")}
	if got := e.Error(); !strings.Contains(got, ": body") {
		t.Fatalf("Error(): got %q", got)
	}

	e = &APIError{Status: "400 Bad Request"}
	if got := e.Error(); got != "claude: api error (400 Bad Request)" {
		t.Fatalf("Error(): got %q", got)
	}
}

func TestEnsureAuth_EnvFallbacks(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("ANTHROPIC_AUTH_TOKEN", "")

	if err := (*Client)(nil).ensureAuth(); err == nil {
		t.Fatalf("ensureAuth(nil): expected error")
	}

	c := &Client{}
	if err := c.ensureAuth(); err == nil {
		t.Fatalf("ensureAuth: expected error")
	}

	t.Setenv("ANTHROPIC_API_KEY", "k")
	c = &Client{}
	if err := c.ensureAuth(); err != nil {
		t.Fatalf("ensureAuth(api key): %v", err)
	}
	if c.apiKey != "k" {
		t.Fatalf("apiKey: got %q want %q", c.apiKey, "k")
	}

	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("ANTHROPIC_AUTH_TOKEN", "t")
	c = &Client{}
	if err := c.ensureAuth(); err != nil {
		t.Fatalf("ensureAuth(auth token): %v", err)
	}
	if c.authToken != "t" {
		t.Fatalf("authToken: got %q want %q", c.authToken, "t")
	}
}

func TestSDKBaseURL(t *testing.T) {
	t.Parallel()

	if got := sdkBaseURL("http://example.com/v1/"); got != "http://example.com" {
		t.Fatalf("sdkBaseURL: got %q want %q", got, "http://example.com")
	}
	if got := sdkBaseURL("http://example.com"); got != "http://example.com" {
		t.Fatalf("sdkBaseURL: got %q want %q", got, "http://example.com")
	}
}

func TestBuildMessageParams_SystemAndTemperature(t *testing.T) {
	t.Parallel()

	req := &Request{
		Model:     "m",
		MaxTokens: 10,
		System:    "sys",
		Messages:  []Message{{Role: "assistant", Content: "a"}, {Role: "user", Content: "b"}},
	}
	params := buildMessageParams(req)
	if len(params.System) != 1 || params.System[0].Text != "sys" {
		t.Fatalf("System: %#v", params.System)
	}
	if !params.Temperature.Valid() || params.Temperature.Value != 0 {
		t.Fatalf("Temperature: %#v", params.Temperature)
	}
	if len(params.Messages) != 2 {
		t.Fatalf("Messages: %#v", params.Messages)
	}
}

func TestText(t *testing.T) {
	t.Parallel()

	if got := Text(nil); got != "" {
		t.Fatalf("Text(nil): got %q", got)
	}

	resp := &Response{Content: []ContentBlock{
		{Type: "text", Text: "a"},
		{Type: "other", Text: "x"},
		{Type: "text", Text: "b"},
	}}
	if got := Text(resp); got != "ab" {
		t.Fatalf("Text: got %q want %q", got, "ab")
	}
}

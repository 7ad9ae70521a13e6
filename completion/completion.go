// Package completion talks to an OpenAI-compatible chat-completions API
// (Together.ai in production) over HTTPS.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL     = "https://api.together.xyz/v1/chat/completions"
	DefaultModel       = "mistralai/Mistral-7B-Instruct-v0.1"
	DefaultMaxTokens   = 256
	DefaultTemperature = 0.7
	DefaultTimeout     = 30 * time.Second
)

// UpstreamError reports a non-success status from the completion API.
// The client never retries; retry policy belongs to the caller.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion API error %d: %s", e.StatusCode, e.Body)
}

type Config struct {
	BaseURL   string `yaml:"baseURL"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"maxTokens"`

	// Temperature is a pointer so an explicit 0 (greedy decoding) is
	// distinguishable from unset; nil falls back to DefaultTemperature.
	Temperature *float64      `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Client issues single-turn chat completion requests with fixed decoding
// parameters. Safe for concurrent use.
type Client struct {
	cfg    Config
	apiKey string
	http   *http.Client
}

func NewClient(cfg Config, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("completion API key is not set")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}

	if cfg.Temperature == nil {
		temperature := DefaultTemperature
		cfg.Temperature = &temperature
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		cfg:    cfg,
		apiKey: apiKey,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
	}, nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	DoSample    bool      `json:"do_sample"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the prompt as a single user turn and returns the first
// completion's text, trimmed. A success response with an unexpected shape
// yields an empty answer rather than an error; a blank answer is a safe
// degraded result for a grounded assistant.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	payload := completionRequest{
		Model: c.cfg.Model,
		Messages: []message{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: *c.cfg.Temperature,
		DoSample:    true,
	}

	data, err := json.Marshal(&payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var parsed completionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", nil
	}

	if len(parsed.Choices) == 0 {
		return "", nil
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// Package openai implements webqa.ChatClient against any OpenAI-compatible
// chat completions endpoint.
package openai

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/webqa"
	"github.com/sashabaranov/go-openai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gpt-4o-mini"

// DefaultTimeout bounds a single completion request.
const DefaultTimeout = 60 * time.Second

// Ensure Client implements webqa.ChatClient at compile time.
var _ webqa.ChatClient = (*Client)(nil)

// Client implements webqa.ChatClient using the go-openai SDK.
type Client struct {
	client      *openai.Client
	model       string
	baseURL     string
	timeout     time.Duration
	temperature *float32
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at an OpenAI-compatible endpoint.
// Defaults to the OpenAI API.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithModel sets the model name.
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithTimeout sets the timeout for a completion request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithTemperature sets the sampling temperature. The endpoint default is
// used if not specified.
func WithTemperature(t float32) Option {
	return func(c *Client) {
		c.temperature = &t
	}
}

// NewClient creates a new Client authenticated with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		model:   DefaultModel,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	config := openai.DefaultConfig(apiKey)
	if c.baseURL != "" {
		config.BaseURL = strings.TrimSuffix(c.baseURL, "/")
	}
	config.HTTPClient = &http.Client{Timeout: c.timeout}
	c.client = openai.NewClientWithConfig(config)
	return c
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Chat sends messages as a chat completion and returns the first choice.
func (c *Client) Chat(ctx context.Context, messages []webqa.Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	if c.temperature != nil {
		req.Temperature = *c.temperature
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    chatRole(m.Role),
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", webqa.Errorf(webqa.EINTERNAL, "completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func chatRole(role string) string {
	switch role {
	case webqa.RoleSystem:
		return openai.ChatMessageRoleSystem
	case webqa.RoleAssistant:
		return openai.ChatMessageRoleAssistant
	default:
		return openai.ChatMessageRoleUser
	}
}

// Package gemini implements webqa.ChatClient using Google Gemini.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/webqa"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Client implements webqa.ChatClient at compile time.
var _ webqa.ChatClient = (*Client)(nil)

// Client implements webqa.ChatClient using Google Gemini.
type Client struct {
	client      *genai.Client
	model       string
	temperature *float32
}

// Option configures a Client.
type Option func(*Client)

// WithModel sets the model name.
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithTemperature sets the sampling temperature. The model default is used
// if not specified.
func WithTemperature(t float32) Option {
	return func(c *Client) {
		c.temperature = &t
	}
}

// NewClient creates a new Client.
func NewClient(client *genai.Client, opts ...Option) *Client {
	c := &Client{client: client, model: DefaultModel}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// Chat sends the conversation to Gemini and returns the reply text.
// System messages become the system instruction.
func (c *Client) Chat(ctx context.Context, messages []webqa.Message) (string, error) {
	config, contents := BuildRequest(messages)
	if len(contents) == 0 {
		return "", webqa.Errorf(webqa.EINVALID, "at least one non-system message required")
	}
	config.Temperature = c.temperature

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", webqa.Errorf(webqa.EINTERNAL, "gemini returned nil result")
	}

	text := result.Text()
	if text == "" {
		return "", webqa.Errorf(webqa.EINTERNAL, "gemini returned empty reply")
	}
	return text, nil
}

// BuildRequest splits messages into the generation config carrying the
// system instruction and the conversation contents.
func BuildRequest(messages []webqa.Message) (*genai.GenerateContentConfig, []*genai.Content) {
	config := &genai.GenerateContentConfig{}
	var system []string
	var contents []*genai.Content
	for _, m := range messages {
		switch m.Role {
		case webqa.RoleSystem:
			system = append(system, m.Content)
		case webqa.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	if len(system) > 0 {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: strings.Join(system, "\n\n")}},
		}
	}
	return config, contents
}

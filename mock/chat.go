package mock

import (
	"context"

	"github.com/fwojciec/webqa"
)

var _ webqa.ChatClient = (*ChatClient)(nil)

// ChatClient is a mock implementation of webqa.ChatClient.
type ChatClient struct {
	ChatFn  func(ctx context.Context, messages []webqa.Message) (string, error)
	ModelFn func() string
}

func (c *ChatClient) Chat(ctx context.Context, messages []webqa.Message) (string, error) {
	return c.ChatFn(ctx, messages)
}

func (c *ChatClient) Model() string {
	return c.ModelFn()
}

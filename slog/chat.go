package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webqa"
)

// Ensure LoggingChatClient implements webqa.ChatClient.
var _ webqa.ChatClient = (*LoggingChatClient)(nil)

// LoggingChatClient wraps a ChatClient with logging. Message contents are
// not logged, only their combined size.
type LoggingChatClient struct {
	next   webqa.ChatClient
	logger *slog.Logger
}

// NewLoggingChatClient creates a new LoggingChatClient.
func NewLoggingChatClient(next webqa.ChatClient, logger *slog.Logger) *LoggingChatClient {
	return &LoggingChatClient{next: next, logger: logger}
}

// Chat delegates to the wrapped client and logs the operation.
func (c *LoggingChatClient) Chat(ctx context.Context, messages []webqa.Message) (reply string, err error) {
	defer func(begin time.Time) {
		var size int
		for _, m := range messages {
			size += len(m.Content)
		}
		c.logger.Info("chat",
			"model", c.next.Model(),
			"messages", len(messages),
			"prompt_bytes", size,
			"reply_bytes", len(reply),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Chat(ctx, messages)
}

// Model delegates to the wrapped client.
func (c *LoggingChatClient) Model() string {
	return c.next.Model()
}

package webqa

import "context"

// Chat message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single role-tagged chat message.
type Message struct {
	Role    string
	Content string
}

// ChatClient sends chat completions to an LLM.
type ChatClient interface {
	// Chat sends messages in order and returns the text of the completion.
	Chat(ctx context.Context, messages []Message) (string, error)

	// Model returns the name of the model answering the chat.
	Model() string
}

package webqa

import "strings"

// AgentAnswer is the structured reply expected from the LLM.
type AgentAnswer struct {
	// Answer is the chosen option number, nil when the question had no options.
	Answer    *int   `json:"answer"`
	Reasoning string `json:"reasoning"`
}

// AnswerDecoder decodes a raw LLM reply into an AgentAnswer.
type AnswerDecoder interface {
	// Decode parses and validates the reply.
	// Returns EINVALID if the reply is not a JSON object matching AgentAnswer.
	Decode(reply string) (*AgentAnswer, error)
}

// StripCodeFence removes Markdown code fence markers that models tend to
// wrap JSON replies in.
func StripCodeFence(reply string) string {
	reply = strings.ReplaceAll(reply, "```json", "")
	return strings.ReplaceAll(reply, "```", "")
}

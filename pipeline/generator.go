package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webqa"
	"github.com/fwojciec/webqa/retry"
)

// DefaultSystemInstruction is the persona given to the LLM when none is configured.
const DefaultSystemInstruction = "You are an expert on ITMO University. Your goal is to help find " +
	"information about the university and give accurate answers to questions."

// Generator asks the LLM for a structured answer.
type Generator struct {
	Client  webqa.ChatClient
	Decoder webqa.AnswerDecoder
	Logger  *slog.Logger

	// SystemInstruction is sent as the system message of every chat.
	SystemInstruction string

	// RetryDelays are the waits between attempts.
	// Defaults to retry.DefaultDelays() (three attempts) if nil.
	RetryDelays []time.Duration
}

// Generate sends prompt to the LLM and decodes its reply. The chat and the
// decoding are retried together; the last error is returned once attempts
// run out.
func (g *Generator) Generate(ctx context.Context, prompt string) (*webqa.AgentAnswer, error) {
	logger := loggerOrDiscard(g.Logger)

	instruction := g.SystemInstruction
	if instruction == "" {
		instruction = DefaultSystemInstruction
	}
	messages := []webqa.Message{
		{Role: webqa.RoleSystem, Content: instruction},
		{Role: webqa.RoleUser, Content: prompt},
	}

	delays := g.RetryDelays
	if delays == nil {
		delays = retry.DefaultDelays()
	}
	policy := retry.Policy{
		Delays: delays,
		Log: func(attempt int, err error) {
			logger.Warn("retrying answer generation", "attempt", attempt, "err", err)
		},
	}

	return retry.Do(ctx, policy, func(ctx context.Context) (*webqa.AgentAnswer, error) {
		reply, err := g.Client.Chat(ctx, messages)
		if err != nil {
			return nil, err
		}
		logger.Debug("llm reply", "model", g.Client.Model(), "reply", reply)
		return g.Decoder.Decode(webqa.StripCodeFence(reply))
	})
}

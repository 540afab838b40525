package mock

import "github.com/fwojciec/webqa"

var _ webqa.AnswerDecoder = (*AnswerDecoder)(nil)

// AnswerDecoder is a mock implementation of webqa.AnswerDecoder.
type AnswerDecoder struct {
	DecodeFn func(reply string) (*webqa.AgentAnswer, error)
}

func (d *AnswerDecoder) Decode(reply string) (*webqa.AgentAnswer, error) {
	return d.DecodeFn(reply)
}

package mock

import "github.com/fwojciec/webqa"

var _ webqa.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of webqa.Extractor.
type Extractor struct {
	ExtractFn func(html string) (string, error)
}

func (e *Extractor) Extract(html string) (string, error) {
	return e.ExtractFn(html)
}

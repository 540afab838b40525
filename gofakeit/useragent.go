// Package gofakeit provides a webqa.UserAgentSource backed by gofakeit's
// browser User-Agent generator.
package gofakeit

import (
	"sync"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fwojciec/webqa"
)

// Ensure UserAgentSource implements webqa.UserAgentSource at compile time.
var _ webqa.UserAgentSource = (*UserAgentSource)(nil)

// UserAgentSource returns a random realistic browser User-Agent per call.
// UserAgentSource is safe for concurrent use.
type UserAgentSource struct {
	mu    sync.Mutex
	faker *gofakeit.Faker
}

// NewUserAgentSource creates a randomly seeded UserAgentSource.
func NewUserAgentSource() *UserAgentSource {
	return NewUserAgentSourceWithSeed(0)
}

// NewUserAgentSourceWithSeed creates a UserAgentSource with a fixed seed.
// A seed of 0 picks a random seed.
func NewUserAgentSourceWithSeed(seed uint64) *UserAgentSource {
	return &UserAgentSource{faker: gofakeit.New(seed)}
}

// UserAgent returns a random browser User-Agent.
func (s *UserAgentSource) UserAgent() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.faker.UserAgent()
}

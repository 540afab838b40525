package mock

import "github.com/fwojciec/webqa"

var _ webqa.UserAgentSource = (*UserAgentSource)(nil)

// UserAgentSource is a mock implementation of webqa.UserAgentSource.
type UserAgentSource struct {
	UserAgentFn func() string
}

func (s *UserAgentSource) UserAgent() string {
	return s.UserAgentFn()
}

package main

import (
	"net"
	"strconv"

	webqahttp "github.com/fwojciec/webqa/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	s := webqahttp.NewServer()
	s.Addr = net.JoinHostPort(c.Address, strconv.Itoa(c.Port))
	s.Prefix = c.Prefix
	s.Name = c.Name
	s.Version = c.AppVersion
	s.RequestTimeout = c.RequestTimeout
	s.QueryService = deps.Service
	s.MetricsHandler = deps.Metrics
	s.Logger = deps.Logger

	if err := s.Open(); err != nil {
		return err
	}
	deps.Logger.Info("serving prediction API", "url", s.URL()+s.Prefix+"/request")

	<-deps.Ctx.Done()
	deps.Logger.Info("shutting down")
	return s.Close()
}

package main

import "fmt"

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// Run executes the version command.
func (c *VersionCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, "webqa", version)
	return nil
}

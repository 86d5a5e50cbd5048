package main

import (
	"github.com/lox/cutcard/cmd/cutcard/shared"
)

// EnumerateCmd runs the search with rules taken from flags, env and the
// rules file.
type EnumerateCmd struct {
	RuleFlags `embed:""`
	RunFlags  `embed:""`
}

func (c *EnumerateCmd) Run() error {
	logger := c.RunFlags.logger()

	r, err := c.RuleFlags.Resolve()
	if err != nil {
		return err
	}

	ctx, cancel := shared.SetupSignalHandlerWithLogger(logger)
	defer cancel()

	return newEnumeration(r, c.RunFlags, logger).run(ctx)
}

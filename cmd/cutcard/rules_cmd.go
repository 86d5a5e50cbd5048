package main

import (
	"fmt"
)

// RulesCmd prints the rule set that enumerate would use.
type RulesCmd struct {
	RuleFlags `embed:""`
}

func (c *RulesCmd) Run() error {
	r, err := c.RuleFlags.Resolve()
	if err != nil {
		return err
	}
	fmt.Println(r.String())
	return nil
}

package main

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/lox/cutcard/cmd/cutcard/shared"
	"github.com/lox/cutcard/internal/rules"
	"github.com/lox/cutcard/internal/shoe"
)

// PromptCmd asks for the rules one question at a time, then enumerates.
type PromptCmd struct {
	RunFlags `embed:""`
}

func (c *PromptCmd) Run() error {
	logger := c.RunFlags.logger()

	r, err := promptRules(rules.Default())
	if err != nil {
		return err
	}
	logger.Debug("Rules selected", "rules", r.String())

	ctx, cancel := shared.SetupSignalHandlerWithLogger(logger)
	defer cancel()

	return newEnumeration(r, c.RunFlags, logger).run(ctx)
}

// promptRules asks the questions in table order. The DOA question only
// appears when doubling after splits is allowed, D9 only without DOA, and
// RSA only when more than one split is allowed.
func promptRules(r rules.Rules) (rules.Rules, error) {
	deckOptions := make([]huh.Option[int], 0, shoe.MaxDecks)
	for d := 1; d <= shoe.MaxDecks; d++ {
		deckOptions = append(deckOptions, huh.NewOption(fmt.Sprintf("%d", d), d))
	}
	splitOptions := make([]huh.Option[int], 0, rules.MaxSplits+1)
	for n := 0; n <= rules.MaxSplits; n++ {
		splitOptions = append(splitOptions, huh.NewOption(fmt.Sprintf("SPL%d", n), n))
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().Title("Number of decks").Options(deckOptions...).Value(&r.Decks),
			huh.NewConfirm().Title("Dealer hits soft 17?").Value(&r.H17),
			huh.NewConfirm().Title("Double down after split?").Value(&r.DAS),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Double down on any two cards?").Value(&r.DOA),
		).WithHideFunc(func() bool { return !r.DAS }),
		huh.NewGroup(
			huh.NewConfirm().Title("Double down on 9?").Value(&r.D9),
		).WithHideFunc(func() bool { return !r.DAS || r.DOA }),
		huh.NewGroup(
			huh.NewSelect[int]().Title("Maximum number of splits").Options(splitOptions...).Value(&r.MaxSplits),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("Re-split aces?").Value(&r.RSA),
		).WithHideFunc(func() bool { return r.MaxSplits <= 1 }),
	).Run()
	if err != nil {
		return rules.Rules{}, err
	}

	r = settleSkipped(r)
	return r, r.Validate()
}

// settleSkipped fixes the answers to questions that were never shown. Without
// DAS the table still doubles on any two cards, and D9 only matters without DOA.
func settleSkipped(r rules.Rules) rules.Rules {
	if !r.DAS {
		r.DOA = true
	}
	if r.DOA {
		r.D9 = false
	}
	if r.MaxSplits <= 1 {
		r.RSA = true
	}
	return r
}

// Package strategy provides the playing-decision oracles consulted while rounds
// are enumerated.
package strategy

import (
	"fmt"

	"github.com/lox/cutcard/internal/hand"
)

// Oracle decides how to play a hand against the dealer's up card. Doubling and
// splitting may only be chosen when the matching flag is set. afterSplit is a
// hint for oracles that keep separate post-split tables.
//
// Oracles shared between goroutines must be safe for concurrent use.
type Oracle interface {
	Decide(h hand.Hand, upCard int, doubleAllowed, splitAllowed, afterSplit bool) Action
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(h hand.Hand, upCard int, doubleAllowed, splitAllowed, afterSplit bool) Action

func (f OracleFunc) Decide(h hand.Hand, upCard int, doubleAllowed, splitAllowed, afterSplit bool) Action {
	return f(h, upCard, doubleAllowed, splitAllowed, afterSplit)
}

// AlwaysStand stands on every hand it is asked about.
type AlwaysStand struct{}

func (AlwaysStand) Decide(hand.Hand, int, bool, bool, bool) Action { return Stand }

// HitUntilBust hits every hand. The engine closes a hand once it busts, so the
// oracle is never consulted on a busted hand.
type HitUntilBust struct{}

func (HitUntilBust) Decide(hand.Hand, int, bool, bool, bool) Action { return Hit }

// NoSplit wraps an oracle so that it is never offered a split.
func NoSplit(o Oracle) Oracle {
	return OracleFunc(func(h hand.Hand, upCard int, doubleAllowed, _ bool, afterSplit bool) Action {
		return o.Decide(h, upCard, doubleAllowed, false, afterSplit)
	})
}

// Named oracles selectable from the command line.
const (
	NameBasic = "basic"
	NameStand = "stand"
	NameHit   = "hit"
)

// Names lists the oracle names accepted by Named.
func Names() []string {
	return []string{NameBasic, NameStand, NameHit}
}

// Named returns the oracle registered under name. chartPath, when set, replaces
// the built-in chart for the basic oracle.
func Named(name, chartPath string) (Oracle, error) {
	switch name {
	case NameBasic, "":
		if chartPath != "" {
			return LoadChart(chartPath)
		}
		return DefaultChart(), nil
	case NameStand:
		return AlwaysStand{}, nil
	case NameHit:
		return HitUntilBust{}, nil
	}
	return nil, fmt.Errorf("unknown strategy %q (want one of %v)", name, Names())
}

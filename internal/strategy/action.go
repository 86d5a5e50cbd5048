package strategy

import (
	"fmt"
)

// Action is a playing decision for one hand.
type Action uint8

const (
	Stand Action = iota
	Hit
	Double
	Split
)

func (a Action) String() string {
	switch a {
	case Stand:
		return "stand"
	case Hit:
		return "hit"
	case Double:
		return "double"
	case Split:
		return "split"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

// Valid reports whether a is one of the four playing decisions.
func (a Action) Valid() bool {
	return a <= Split
}

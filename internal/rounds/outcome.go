package rounds

import (
	"slices"
	"strconv"
	"strings"

	"github.com/lox/cutcard/internal/shoe"
)

// Outcome is the number of cards of each rank consumed by a completed round,
// index 0 being the ace. The dealer's up card is not included.
type Outcome [shoe.Ranks]uint8

// Cards returns the total number of cards in the outcome.
func (o Outcome) Cards() int {
	n := 0
	for _, c := range o {
		n += int(c)
	}
	return n
}

// Count returns the number of cards of rank.
func (o Outcome) Count(rank int) int {
	if rank < 1 || rank > shoe.Ranks {
		return 0
	}
	return int(o[rank-1])
}

func (o Outcome) String() string {
	parts := make([]string, len(o))
	for i, c := range o {
		parts[i] = strconv.Itoa(int(c))
	}
	return strings.Join(parts, " ")
}

// OutcomeSet is a deduplicating set of outcomes.
type OutcomeSet map[Outcome]struct{}

// Add inserts o into the set.
func (s OutcomeSet) Add(o Outcome) {
	s[o] = struct{}{}
}

// Contains reports whether o is in the set.
func (s OutcomeSet) Contains(o Outcome) bool {
	_, ok := s[o]
	return ok
}

// Sorted returns the outcomes in lexicographic order.
func (s OutcomeSet) Sorted() []Outcome {
	out := make([]Outcome, 0, len(s))
	for o := range s {
		out = append(out, o)
	}
	slices.SortFunc(out, func(a, b Outcome) int {
		return slices.Compare(a[:], b[:])
	})
	return out
}

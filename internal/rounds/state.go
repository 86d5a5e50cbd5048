package rounds

import (
	"cmp"
	"slices"

	"github.com/lox/cutcard/internal/hand"
	"github.com/lox/cutcard/internal/shoe"
)

// State is one decision point of a round, reduced to rank counts so that draw
// order never distinguishes two states. State is comparable and is used
// directly as a set key.
type State struct {
	// SplitCount is the number of hands in the round so far.
	SplitCount uint8
	// RoundCounts holds every card dealt in the round except the up card.
	RoundCounts [shoe.Ranks]uint8
	// ActiveHand is the index of the hand being decided. The round is over
	// once it reaches SplitCount.
	ActiveHand uint8
	// HandCounts holds the cards of the active hand only.
	HandCounts [shoe.Ranks]uint8
	// SeedRank is the rank that was split to create the active hand, or 0.
	SeedRank uint8
	// RequiresDealer is raised once any hand closes without busting and is
	// never lowered again.
	RequiresDealer bool
}

func initialState() State {
	return State{SplitCount: 1}
}

// Terminal reports whether every hand of the round has been played.
func (s State) Terminal() bool {
	return s.ActiveHand == s.SplitCount
}

// Hand rebuilds the active hand.
func (s State) Hand() hand.Hand {
	return hand.FromCounts(s.HandCounts)
}

// Outcome returns the per-rank tally of the round.
func (s State) Outcome() Outcome {
	return Outcome(s.RoundCounts)
}

// Compare orders states by hand count, round counts, active hand, hand counts,
// seed rank and finally the dealer flag. It returns -1, 0 or +1.
func Compare(a, b State) int {
	if c := cmp.Compare(a.SplitCount, b.SplitCount); c != 0 {
		return c
	}
	if c := slices.Compare(a.RoundCounts[:], b.RoundCounts[:]); c != 0 {
		return c
	}
	if c := cmp.Compare(a.ActiveHand, b.ActiveHand); c != 0 {
		return c
	}
	if c := slices.Compare(a.HandCounts[:], b.HandCounts[:]); c != 0 {
		return c
	}
	if c := cmp.Compare(a.SeedRank, b.SeedRank); c != 0 {
		return c
	}
	switch {
	case a.RequiresDealer == b.RequiresDealer:
		return 0
	case b.RequiresDealer:
		return -1
	default:
		return 1
	}
}

// stand closes the active hand and moves on to the next one, seeding it with
// the split rank when the round has been split.
func stand(s State, closed hand.Hand) State {
	s.ActiveHand++
	s.HandCounts = [shoe.Ranks]uint8{}
	if s.SeedRank != 0 {
		s.HandCounts[s.SeedRank-1] = 1
	}
	if !closed.Busted() {
		s.RequiresDealer = true
	}
	return s
}

// draw deals one card of rank to the active hand.
func draw(s State, rank int) State {
	s.RoundCounts[rank-1]++
	s.HandCounts[rank-1]++
	return s
}

// split turns the first pair found in the active hand into a one card hand and
// adds a hand to the round. The twin card seeds the new hand once the active
// one closes.
func split(s State) State {
	s.SplitCount++
	for rank := 1; rank <= shoe.Ranks; rank++ {
		if s.HandCounts[rank-1] == 2 {
			s.SeedRank = uint8(rank)
			s.HandCounts[rank-1] = 1
			break
		}
	}
	return s
}

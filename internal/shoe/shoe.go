// Package shoe tracks how many cards of each blackjack rank remain undealt.
//
// Ranks are numbered 1..10: the ace is 1 and every ten-valued card (10, J, Q, K)
// is folded into rank 10, so a single deck holds 4 cards of ranks 1..9 and 16 of
// rank 10.
package shoe

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// Ace is the rank number used for aces.
	Ace = 1
	// Ten is the rank number shared by all ten-valued cards.
	Ten = 10
	// Ranks is the number of distinct ranks.
	Ranks = 10

	// MaxDecks bounds the shoe so per-rank round counts fit in a byte.
	MaxDecks = 8
)

var (
	ErrInvalidRank   = errors.New("rank must be between 1 and 10")
	ErrInvalidDecks  = errors.New("invalid deck count")
	ErrRankExhausted = errors.New("no cards of rank remaining")
	ErrOverRestore   = errors.New("restore would exceed initial count")
)

// RankLabel returns the single character label for rank: A for the ace, T for
// ten-valued cards and the digit otherwise. Out of range ranks print as "?".
func RankLabel(rank int) string {
	switch {
	case rank == Ace:
		return "A"
	case rank == Ten:
		return "T"
	case rank > Ace && rank < Ten:
		return strconv.Itoa(rank)
	default:
		return "?"
	}
}

// Shoe is a multiset of undealt ranks. It is not safe for concurrent mutation;
// concurrent callers should work on their own Clone.
type Shoe struct {
	initial   [Ranks]int
	remaining [Ranks]int
}

// New creates a shoe holding the given number of standard decks.
func New(decks int) (*Shoe, error) {
	if decks < 1 || decks > MaxDecks {
		return nil, fmt.Errorf("%w: %d (must be 1..%d)", ErrInvalidDecks, decks, MaxDecks)
	}
	var counts [Ranks]int
	for rank := 1; rank <= Ranks; rank++ {
		counts[rank-1] = 4 * decks
	}
	counts[Ten-1] = 16 * decks
	return FromCounts(counts)
}

// FromCounts creates a shoe from explicit per-rank counts, index 0 being the ace.
// It is used for depleted shoes part way through a game.
func FromCounts(counts [Ranks]int) (*Shoe, error) {
	for i, n := range counts {
		if n < 0 {
			return nil, fmt.Errorf("rank %d: negative count %d", i+1, n)
		}
		limit := 4 * MaxDecks
		if i+1 == Ten {
			limit = 16 * MaxDecks
		}
		if n > limit {
			return nil, fmt.Errorf("rank %d: count %d exceeds %d", i+1, n, limit)
		}
	}
	return &Shoe{initial: counts, remaining: counts}, nil
}

// Remaining reports how many cards of rank are still undealt. Out of range
// ranks report zero.
func (s *Shoe) Remaining(rank int) int {
	if rank < 1 || rank > Ranks {
		return 0
	}
	return s.remaining[rank-1]
}

// Remove takes one card of rank out of the shoe.
func (s *Shoe) Remove(rank int) error {
	if rank < 1 || rank > Ranks {
		return fmt.Errorf("%w: %d", ErrInvalidRank, rank)
	}
	if s.remaining[rank-1] == 0 {
		return fmt.Errorf("%w: %d", ErrRankExhausted, rank)
	}
	s.remaining[rank-1]--
	return nil
}

// Restore puts one card of rank back. Every Restore must pair with an earlier Remove.
func (s *Shoe) Restore(rank int) error {
	if rank < 1 || rank > Ranks {
		return fmt.Errorf("%w: %d", ErrInvalidRank, rank)
	}
	if s.remaining[rank-1] >= s.initial[rank-1] {
		return fmt.Errorf("%w: %d", ErrOverRestore, rank)
	}
	s.remaining[rank-1]++
	return nil
}

// Acquire removes one card of rank and returns the function that puts it back.
// The release function is idempotent so it can be deferred safely.
func (s *Shoe) Acquire(rank int) (release func(), err error) {
	if err := s.Remove(rank); err != nil {
		return nil, err
	}
	released := false
	return func() {
		if released {
			return
		}
		released = true
		s.remaining[rank-1]++
	}, nil
}

// Counts returns a copy of the remaining per-rank counts, index 0 being the ace.
func (s *Shoe) Counts() [Ranks]int {
	return s.remaining
}

// Total returns the number of undealt cards.
func (s *Shoe) Total() int {
	total := 0
	for _, n := range s.remaining {
		total += n
	}
	return total
}

// Clone returns an independent copy of the shoe.
func (s *Shoe) Clone() *Shoe {
	clone := *s
	return &clone
}

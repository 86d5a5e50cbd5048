// Package hand evaluates a single blackjack hand held as per-rank card counts.
package hand

import (
	"strconv"
	"strings"

	"github.com/lox/cutcard/internal/shoe"
)

// Bust is the highest total a hand can hold without busting.
const Bust = 21

// Hand is a value type; copying it copies the cards.
type Hand struct {
	counts [shoe.Ranks]uint8
	cards  int
	hard   int
}

// FromCounts builds a hand from per-rank counts, index 0 being the ace.
func FromCounts(counts [shoe.Ranks]uint8) Hand {
	var h Hand
	for i, n := range counts {
		for j := uint8(0); j < n; j++ {
			h.AddCard(i + 1)
		}
	}
	return h
}

// AddCard deals one card of rank to the hand. Ranks outside 1..10 are ignored.
func (h *Hand) AddCard(rank int) {
	if rank < 1 || rank > shoe.Ranks {
		return
	}
	h.counts[rank-1]++
	h.cards++
	h.hard += rank
}

// RemoveCard takes one card of rank back out of the hand. It reports false if
// the hand holds no such card.
func (h *Hand) RemoveCard(rank int) bool {
	if rank < 1 || rank > shoe.Ranks || h.counts[rank-1] == 0 {
		return false
	}
	h.counts[rank-1]--
	h.cards--
	h.hard -= rank
	return true
}

// Cards returns the number of cards in the hand.
func (h Hand) Cards() int { return h.cards }

// CountOf returns how many cards of rank the hand holds.
func (h Hand) CountOf(rank int) int {
	if rank < 1 || rank > shoe.Ranks {
		return 0
	}
	return int(h.counts[rank-1])
}

// Counts returns the per-rank counts, index 0 being the ace.
func (h Hand) Counts() [shoe.Ranks]uint8 { return h.counts }

// Soft reports whether one ace is being counted as eleven.
func (h Hand) Soft() bool {
	return h.counts[shoe.Ace-1] > 0 && h.hard+10 <= Bust
}

// Total returns the blackjack value of the hand: the hard total, plus ten when
// an ace can count as eleven without busting.
func (h Hand) Total() int {
	if h.Soft() {
		return h.hard + 10
	}
	return h.hard
}

// Busted reports whether the hand total exceeds 21.
func (h Hand) Busted() bool { return h.hard > Bust }

// Pair returns the rank of a two card pair.
func (h Hand) Pair() (int, bool) {
	if h.cards != 2 {
		return 0, false
	}
	for rank := 1; rank <= shoe.Ranks; rank++ {
		if h.counts[rank-1] == 2 {
			return rank, true
		}
	}
	return 0, false
}

// HighestRank returns the highest rank present in the hand, or 0 when empty.
func (h Hand) HighestRank() int {
	for rank := shoe.Ranks; rank >= 1; rank-- {
		if h.counts[rank-1] > 0 {
			return rank
		}
	}
	return 0
}

func (h Hand) String() string {
	var parts []string
	for rank := 1; rank <= shoe.Ranks; rank++ {
		for j := uint8(0); j < h.counts[rank-1]; j++ {
			parts = append(parts, shoe.RankLabel(rank))
		}
	}
	label := "hard"
	if h.Soft() {
		label = "soft"
	}
	return "[" + strings.Join(parts, " ") + "] " + label + " " + strconv.Itoa(h.Total())
}

package rounds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/cutcard/internal/hand"
	"github.com/lox/cutcard/internal/shoe"
)

func TestCompare(t *testing.T) {
	a := initialState()
	assert.Equal(t, 0, Compare(a, a))

	b := draw(a, 5)
	assert.Equal(t, -1, Compare(a, b))
	assert.Equal(t, 1, Compare(b, a))

	// Round counts dominate hand counts.
	c := a
	c.RoundCounts[0] = 1
	d := a
	d.HandCounts[0] = 5
	assert.Equal(t, 1, Compare(c, d))

	e := a
	e.RequiresDealer = true
	assert.Equal(t, -1, Compare(a, e))
	assert.Equal(t, 1, Compare(e, a))

	f := a
	f.SeedRank = 8
	assert.Equal(t, -1, Compare(a, f))

	g := a
	g.SplitCount = 2
	assert.Equal(t, 1, Compare(g, c))
}

func TestDrawOrderCollapses(t *testing.T) {
	s := initialState()
	ab := draw(draw(s, 3), 9)
	ba := draw(draw(s, 9), 3)
	assert.Equal(t, ab, ba)
	assert.Equal(t, 0, Compare(ab, ba))

	f := newFrontier()
	f.add(ab)
	f.add(ba)
	assert.Equal(t, 1, f.len())
}

func TestStandRaisesDealerFlag(t *testing.T) {
	s := draw(draw(initialState(), 10), 7)
	closed := stand(s, s.Hand())
	assert.True(t, closed.RequiresDealer)
	assert.True(t, closed.Terminal())
	assert.Equal(t, [shoe.Ranks]uint8{}, closed.HandCounts)

	busted := draw(draw(draw(initialState(), 10), 6), 9)
	closed = stand(busted, busted.Hand())
	assert.False(t, closed.RequiresDealer)

	// A busted hand never lowers a flag raised earlier in the round.
	busted.RequiresDealer = true
	closed = stand(busted, busted.Hand())
	assert.True(t, closed.RequiresDealer)
}

func TestSplitReseedsNextHand(t *testing.T) {
	s := draw(draw(initialState(), 8), 8)
	sp := split(s)

	require.Equal(t, uint8(2), sp.SplitCount)
	assert.Equal(t, uint8(8), sp.SeedRank)
	assert.Equal(t, uint8(1), sp.HandCounts[7])
	assert.Equal(t, uint8(2), sp.RoundCounts[7])
	assert.Equal(t, uint8(0), sp.ActiveHand)
	assert.False(t, sp.Terminal())

	first := draw(sp, 10)
	next := stand(first, first.Hand())
	assert.Equal(t, uint8(1), next.ActiveHand)
	assert.Equal(t, uint8(1), next.HandCounts[7])
	assert.Equal(t, 1, next.Hand().Cards())
	assert.True(t, next.RequiresDealer)
}

func TestSplitPicksFirstPairedRank(t *testing.T) {
	s := initialState()
	s.HandCounts = [shoe.Ranks]uint8{0, 2, 0, 0, 2}
	sp := split(s)
	assert.Equal(t, uint8(2), sp.SeedRank)
	assert.Equal(t, uint8(1), sp.HandCounts[1])
	assert.Equal(t, uint8(2), sp.HandCounts[4])
}

func TestStateHandMatchesCounts(t *testing.T) {
	s := draw(draw(initialState(), 1), 6)
	var want hand.Hand
	want.AddCard(1)
	want.AddCard(6)
	assert.Equal(t, want, s.Hand())
	assert.Equal(t, 17, s.Hand().Total())
}

func TestOutcomeSetSorted(t *testing.T) {
	set := make(OutcomeSet)
	set.Add(Outcome{0, 0, 1})
	set.Add(Outcome{1})
	set.Add(Outcome{0, 2})
	set.Add(Outcome{1})

	sorted := set.Sorted()
	require.Len(t, sorted, 3)
	assert.Equal(t, Outcome{0, 0, 1}, sorted[0])
	assert.Equal(t, Outcome{0, 2}, sorted[1])
	assert.Equal(t, Outcome{1}, sorted[2])

	assert.True(t, set.Contains(Outcome{0, 2}))
	assert.False(t, set.Contains(Outcome{0, 3}))
	assert.Equal(t, 2, Outcome{0, 2}.Cards())
	assert.Equal(t, 2, Outcome{0, 2}.Count(2))
	assert.Equal(t, 0, Outcome{0, 2}.Count(11))
	assert.Equal(t, "0 2 0 0 0 0 0 0 0 0", Outcome{0, 2}.String())
}

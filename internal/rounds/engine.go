// Package rounds enumerates every distinct way a blackjack round can end
// against a fixed dealer up card.
//
// The search is breadth first and level synchronised: every state in a level
// is expanded into a deduplicated next level until no open state is left.
// States hold rank counts rather than card sequences, so permutations of the
// same cards collapse into a single state.
package rounds

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/cutcard/internal/hand"
	"github.com/lox/cutcard/internal/rules"
	"github.com/lox/cutcard/internal/shoe"
	"github.com/lox/cutcard/internal/strategy"
)

// minParallelLevel is the smallest level worth fanning out across workers.
const minParallelLevel = 256

// Availability is the shoe as seen by the engine. Remaining is called from
// several goroutines when the engine runs with more than one worker, but never
// concurrently with Acquire or a release.
type Availability interface {
	Remaining(rank int) int
	Acquire(rank int) (release func(), err error)
}

// Stats describes the work done by one Enumerate call.
type Stats struct {
	Levels         int
	StatesExpanded int64
	Terminals      int64
	PeakFrontier   int
	OracleCalls    int64
	Splits         int64
	Elapsed        time.Duration
}

// Result holds the two outcome partitions for one up card.
type Result struct {
	UpCard int
	// DealerNeeded holds rounds in which at least one hand did not bust.
	DealerNeeded OutcomeSet
	// AllBusted holds rounds in which every hand busted.
	AllBusted OutcomeSet
	Stats     Stats
}

// Engine enumerates rounds under a fixed rule set. An Engine owns its
// availability for the duration of each Enumerate call and must not be used
// by two calls at once; use one engine per shoe clone instead.
type Engine struct {
	avail   Availability
	rules   rules.Rules
	logger  *log.Logger
	clock   quartz.Clock
	workers int

	upCardWorkers int
	minParallel   int
	progress      Progress
}

// Progress observes EnumerateAll and EnumerateUpCards. Calls may arrive from
// several goroutines when up cards run in parallel.
type Progress interface {
	OnUpCardStart(upCard int)
	OnUpCardDone(res *Result)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithClock sets the clock used to time searches.
func WithClock(clock quartz.Clock) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithWorkers expands each level on up to n goroutines. The oracle must then be
// safe for concurrent use.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// WithParallelUpCards lets EnumerateAll search up to n up cards at once, each
// on its own copy of the shoe.
func WithParallelUpCards(n int) Option {
	return func(e *Engine) { e.upCardWorkers = n }
}

// WithProgress reports up card start and completion to p.
func WithProgress(p Progress) Option {
	return func(e *Engine) { e.progress = p }
}

// New creates an engine after validating the rules.
func New(avail Availability, r rules.Rules, opts ...Option) (*Engine, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}
	e := &Engine{
		avail:         avail,
		rules:         r,
		logger:        log.New(io.Discard),
		clock:         quartz.NewReal(),
		workers:       1,
		upCardWorkers: 1,
		minParallel:   minParallelLevel,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = 1
	}
	if e.upCardWorkers < 1 {
		e.upCardWorkers = 1
	}
	return e, nil
}

// counters are shared by the workers of one level.
type counters struct {
	expanded atomic.Int64
	oracle   atomic.Int64
	splits   atomic.Int64
}

// Enumerate plays out every completed round against upCard using oracle. The
// up card is taken out of the shoe for the duration of the call and put back
// on every exit path. On error no partial result is returned.
func (e *Engine) Enumerate(ctx context.Context, upCard int, oracle strategy.Oracle) (*Result, error) {
	if upCard < 1 || upCard > shoe.Ranks {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidUpCard, upCard)
	}
	if oracle == nil {
		return nil, ErrNilOracle
	}
	release, err := e.avail.Acquire(upCard)
	if err != nil {
		return nil, fmt.Errorf("%w: %d: %w", ErrUpCardUnavailable, upCard, err)
	}
	defer release()

	start := e.clock.Now()
	res := &Result{
		UpCard:       upCard,
		DealerNeeded: make(OutcomeSet),
		AllBusted:    make(OutcomeSet),
	}
	var cnt counters

	level := newFrontier()
	level.add(initialState())
	for level.len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("up card %d: search stopped at level %d: %w", upCard, res.Stats.Levels, err)
		}
		res.Stats.Levels++
		res.Stats.PeakFrontier = max(res.Stats.PeakFrontier, level.len())

		states := level.sorted()
		open := states[:0]
		for _, s := range states {
			if !s.Terminal() {
				open = append(open, s)
				continue
			}
			res.Stats.Terminals++
			if s.RequiresDealer {
				res.DealerNeeded.Add(s.Outcome())
			} else {
				res.AllBusted.Add(s.Outcome())
			}
		}

		next := newFrontier()
		if err := e.expandLevel(ctx, open, upCard, oracle, next, &cnt); err != nil {
			return nil, fmt.Errorf("up card %d: %w", upCard, err)
		}

		e.logger.Debug("Level expanded",
			"up_card", upCard,
			"level", res.Stats.Levels,
			"open", len(open),
			"terminal", len(states)-len(open),
			"next", next.len())
		level = next
	}

	res.Stats.StatesExpanded = cnt.expanded.Load()
	res.Stats.OracleCalls = cnt.oracle.Load()
	res.Stats.Splits = cnt.splits.Load()
	res.Stats.Elapsed = e.clock.Since(start)

	e.logger.Info("Enumerated rounds",
		"up_card", upCard,
		"rules", e.rules.String(),
		"dealer_needed", len(res.DealerNeeded),
		"all_busted", len(res.AllBusted),
		"levels", res.Stats.Levels,
		"states", res.Stats.StatesExpanded,
		"elapsed", res.Stats.Elapsed)
	return res, nil
}

func (e *Engine) expandLevel(ctx context.Context, open []State, upCard int, oracle strategy.Oracle, next *frontier, cnt *counters) error {
	if e.workers == 1 || len(open) < e.minParallel {
		for _, s := range open {
			if err := e.expand(s, upCard, oracle, next, cnt); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	chunk := (len(open) + e.workers - 1) / e.workers
	for lo := 0; lo < len(open); lo += chunk {
		part := open[lo:min(lo+chunk, len(open))]
		g.Go(func() error {
			for _, s := range part {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := e.expand(s, upCard, oracle, next, cnt); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// expand decides the action for one open state and adds its successors to next.
func (e *Engine) expand(s State, upCard int, oracle strategy.Oracle, next *frontier, cnt *counters) error {
	cnt.expanded.Add(1)
	h := s.Hand()

	action, err := e.decide(s, h, upCard, oracle, cnt)
	if err != nil {
		return err
	}

	switch action {
	case strategy.Stand:
		next.add(stand(s, h))
	case strategy.Hit, strategy.Double:
		for rank := 1; rank <= shoe.Ranks; rank++ {
			if int(s.RoundCounts[rank-1]) >= e.avail.Remaining(rank) {
				continue
			}
			drawn := draw(s, rank)
			h.AddCard(rank)
			if action == strategy.Double || h.Busted() {
				next.add(stand(drawn, h))
			} else {
				next.add(drawn)
			}
			h.RemoveCard(rank)
		}
	case strategy.Split:
		cnt.splits.Add(1)
		next.add(split(s))
	}
	return nil
}

// decide picks the action for the active hand. Hands with fewer than two cards
// always draw and two card hands seeded by split aces always stand; neither
// consults the oracle.
func (e *Engine) decide(s State, h hand.Hand, upCard int, oracle strategy.Oracle, cnt *counters) (strategy.Action, error) {
	switch {
	case h.Cards() < 2:
		return strategy.Hit, nil
	case h.Cards() == 2 && s.SeedRank == shoe.Ace:
		return strategy.Stand, nil
	}

	twoCards := h.Cards() == 2
	doubleAllowed := twoCards && e.rules.CanDouble(h.Total(), s.SeedRank != 0)
	pair := h.HighestRank()
	splitAllowed := twoCards && h.CountOf(pair) == 2 &&
		e.rules.CanSplit(pair, int(s.SplitCount), s.SeedRank == shoe.Ace)

	cnt.oracle.Add(1)
	action := oracle.Decide(h, upCard, doubleAllowed, splitAllowed, false)
	switch {
	case !action.Valid():
		return 0, fmt.Errorf("%w: %v for %v", ErrInvalidAction, action, h)
	case action == strategy.Double && !doubleAllowed,
		action == strategy.Split && !splitAllowed:
		return 0, fmt.Errorf("%w: %v for %v", ErrIllegalAction, action, h)
	}
	return action, nil
}

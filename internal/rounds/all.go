package rounds

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/lox/cutcard/internal/rules"
	"github.com/lox/cutcard/internal/shoe"
	"github.com/lox/cutcard/internal/strategy"
)

// EnumerateAll runs Enumerate for every up card from ace to ten. Each up card
// is searched on its own clone of s, so s itself is never modified. Results are
// returned in up card order.
func EnumerateAll(ctx context.Context, s *shoe.Shoe, r rules.Rules, oracle strategy.Oracle, opts ...Option) ([]*Result, error) {
	upCards := make([]int, 0, shoe.Ranks)
	for up := 1; up <= shoe.Ranks; up++ {
		upCards = append(upCards, up)
	}
	return EnumerateUpCards(ctx, s, r, oracle, upCards, opts...)
}

// EnumerateUpCards is EnumerateAll restricted to upCards. Results follow the
// order of upCards.
func EnumerateUpCards(ctx context.Context, s *shoe.Shoe, r rules.Rules, oracle strategy.Oracle, upCards []int, opts ...Option) ([]*Result, error) {
	// Validate options and rules once up front.
	base, err := New(s, r, opts...)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, len(upCards))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(base.upCardWorkers)
	for i, up := range upCards {
		g.Go(func() error {
			engine, err := New(s.Clone(), r, opts...)
			if err != nil {
				return err
			}
			if base.progress != nil {
				base.progress.OnUpCardStart(up)
			}
			res, err := engine.Enumerate(gctx, up, oracle)
			if err != nil {
				return err
			}
			if base.progress != nil {
				base.progress.OnUpCardDone(res)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

package search

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/gitrdm/bellman/internal/config"
)

// RunMetaSearch implements the layered re-search SPEC_FULL.md §6.3
// supplements from original_source/Barrister2.cpp: each round re-runs the
// search rooted at every solution's interaction-time stable state with a
// widened active-window range, looking for longer catalyst chains. It is
// gated by metasearch-rounds (0 disables it) and deduplicates the running
// solution set with TrimSolutions after every round using min-trim-hashes
// as a minimum-population floor on what gets kept between rounds.
func RunMetaSearch(ctx context.Context, p *config.SearchParams, log *logrus.Entry) ([]Solution, error) {
	base := NewEngine(p, log)
	sols, err := base.Run(ctx)
	if err != nil {
		return nil, err
	}
	sols = TrimSolutions(sols)

	for round := 0; round < p.MetasearchRounds; round++ {
		if err := ctx.Err(); err != nil {
			return sols, err
		}
		next, err := metaSearchStep(ctx, p, log, sols)
		if err != nil {
			return sols, err
		}
		sols = TrimSolutions(append(sols, next...))
		trimmed := sols[:0]
		for _, s := range sols {
			if s.Completed.Population() >= p.MinTrimHashes {
				trimmed = append(trimmed, s)
			}
		}
		sols = trimmed
	}
	return sols, nil
}

// metaSearchStep re-runs the search once per input solution, grafting the
// solution's interaction-time stable state back in as the new starting
// stable state and widening active-window-range by one
// min-stable-interval, the way Barrister2.cpp's MetaSearchStep widens the
// window between layers.
func metaSearchStep(ctx context.Context, p *config.SearchParams, log *logrus.Entry, sols []Solution) ([]Solution, error) {
	var out []Solution
	for _, sol := range sols {
		widened := *p
		widened.StartingStable = sol.InteractionStable
		if widened.ActiveWindowRange.Max != -1 {
			widened.ActiveWindowRange.Max += widened.MinStableInterval
		}
		eng := NewEngine(&widened, log)
		found, err := eng.Run(ctx)
		if err != nil {
			return out, err
		}
		out = append(out, found...)
	}
	return out, nil
}

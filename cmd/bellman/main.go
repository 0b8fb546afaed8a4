// Command bellman runs the catalyst/oscillator search described by a TOML
// configuration file and, once the search has finished, prints the
// recorded solutions (spec.md §6.2–§6.3).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/gitrdm/bellman/internal/config"
	"github.com/gitrdm/bellman/internal/rle"
	"github.com/gitrdm/bellman/pkg/life"
	"github.com/gitrdm/bellman/pkg/search"
)

func main() {
	log := logrus.NewEntry(logrus.StandardLogger())

	if len(os.Args) < 2 {
		log.Error("usage: bellman <config.toml>")
		os.Exit(1)
	}

	params, err := config.Load(os.Args[1])
	if err != nil {
		log.WithError(err).Error("failed to load configuration")
		os.Exit(1)
	}

	ctx := context.Background()

	var sols []search.Solution
	if params.MetasearchRounds > 0 {
		sols, err = search.RunMetaSearch(ctx, params, log)
	} else {
		engine := search.NewEngine(params, log)
		sols, err = engine.Run(ctx)
	}
	if err != nil {
		log.WithError(err).Error("search failed")
		os.Exit(1)
	}

	printSolutions(sols, params)
	if params.PrintSummary {
		printSummary(sols)
	}
}

// printSolutions prints each solution's stabilised state as LifeBellman RLE
// and its completed still-life as a plain B3/S23 RLE (spec.md §6.2).
func printSolutions(sols []search.Solution, p *config.SearchParams) {
	for i, sol := range sols {
		fmt.Printf("Solution %d (interaction gen %d, recovery gen %d):\n", i, sol.InteractionGen, sol.RecoveryGen)
		fmt.Println(rle.BellmanRLE(&sol.Stable))
		if sol.Completed.IsEmpty() && !sol.Stable.Unknown.IsEmpty() {
			fmt.Println("Completion failed!")
		} else {
			fmt.Println(rle.PlainRLE(sol.Completed))
		}
		if p.ReportOscillators {
			if period, _, found := search.DeterminePeriod(sol.Stable.State, sol.Completed); found {
				fmt.Printf("Oscillating! Period: %d\n", period)
			}
		}
	}
}

// printSummary renders the completed still-life of every solution as a
// grid of up to 8 patterns per row via RowRLE (spec.md §6.2).
func printSummary(sols []search.Solution) {
	boards := make([]life.BitBoard, len(sols))
	for i, sol := range sols {
		boards[i] = sol.Completed
	}
	fmt.Println("Summary:")
	fmt.Println(rle.RowRLE(boards))
}

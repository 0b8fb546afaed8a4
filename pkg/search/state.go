// Package search implements the frontier-based branch-and-bound engine
// (spec.md §4.5–§4.8): it drives pkg/life's StableState/UnknownState/
// Frontier forward, branches on frontier cells, and records Solutions.
package search

import (
	"github.com/gitrdm/bellman/internal/config"
	"github.com/gitrdm/bellman/pkg/life"
)

// cellTimers tracks, per cell, the rolling window/streak counters the
// per-cell temporal caps (`max-cell-active-window`, `max-cell-active-streak`,
// `max-cell-stationary-distance`, `max-cell-stationary-streak`) are checked
// against. Bounded by life.MaxCellActiveWindowGens /
// life.MaxCellActiveStreakGens, so a fixed-size ring per cell suffices.
type cellTimers struct {
	activeWindow  [life.Width][64][life.MaxCellActiveWindowGens]bool
	activeStreak  [life.Width][64]int
	stationaryRun [life.Width][64]int
}

func newCellTimers() *cellTimers {
	return &cellTimers{}
}

func (t *cellTimers) clone() *cellTimers {
	c := *t
	return &c
}

// recordGen shifts the rolling active-window ring for this generation,
// updates the active streak and stationary-run counters, and returns the
// number of active generations currently in the window for (x, y).
func (t *cellTimers) recordGen(x, y int, active bool) int {
	win := &t.activeWindow[x][y]
	for i := len(win) - 1; i > 0; i-- {
		win[i] = win[i-1]
	}
	win[0] = active
	count := 0
	for _, v := range win {
		if v {
			count++
		}
	}
	if active {
		t.activeStreak[x][y]++
		t.stationaryRun[x][y] = 0
	} else {
		t.activeStreak[x][y] = 0
		t.stationaryRun[x][y]++
	}
	return count
}

// SearchState aggregates everything one recursive search_step call owns:
// the stable-state solver, the current tri-valued generation, the
// lookahead frontier, and the bookkeeping counters spec.md §3.6 names.
// It is a plain value (timers excepted: they sit behind a pointer that
// Clone deep-copies) so that branching is a cheap value copy.
type SearchState struct {
	Stable   life.StableState
	Current  life.UnknownState
	Frontier life.Frontier

	Gen uint64

	HasInteracted       bool
	InteractionStartGen uint64
	InteractionStable   life.StableState

	RecoveredGens int

	EverActive life.BitBoard

	timers *cellTimers
}

// NewSearchState builds the root search state from a resolved configuration.
func NewSearchState(p *config.SearchParams) SearchState {
	var s SearchState
	s.Stable = p.StartingStable
	s.Current.State = p.ActivePattern
	s.Current.Unknown = p.UnknownStable
	s.Current.UnknownStable = p.UnknownStable
	s.timers = newCellTimers()
	return s
}

// Clone returns an independent copy of s suitable for a branch: every
// bitboard field is a plain value (copied for free), and the per-cell
// timers are deep-copied. searchStep does not Clone for its final
// (tail-called) branch, which shares the parent's timers pointer.
func (s SearchState) Clone() SearchState {
	c := s
	c.timers = s.timers.clone()
	return c
}

// Active returns the cells whose determined value differs from the stable
// background within the stable solver's zone of influence.
func (s *SearchState) Active() life.BitBoard {
	return s.Current.ActiveComparedTo(&s.Stable)
}

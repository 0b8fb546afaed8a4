package search

import (
	"github.com/gitrdm/bellman/internal/config"
	"github.com/gitrdm/bellman/pkg/life"
)

// boundsOK checks a life.BitBoard's bounding box against a [min,max] pair
// of config.Bound values (width, then height); a disabled bound always
// passes.
func boundsOK(w, h int, wb, hb config.Bound) bool {
	return wb.Within(w) && hb.Within(h)
}

// populationOK reports whether n satisfies a scalar cap (-1 disables it).
func populationOK(n, max int) bool {
	return max == -1 || n <= max
}

// ForcedInactiveCells computes the mask of cells that must equal the
// stable background at this lookahead generation (spec.md §4.5): cells
// named stator, cells that would push a population/bounding-box/component
// cap over its limit if activated, cells whose per-cell active-window or
// active-streak timer has already reached its configured cap, cells deep
// inside a region that has stopped changing (max-cell-stationary-distance),
// and cells whose stationary-run timer has reached max-cell-stationary-streak.
// hardFail reports an already-exceeded hard cap (the whole generation is
// inconsistent, not just some cells forced).
func ForcedInactiveCells(s *SearchState, p *config.SearchParams, active, changes life.BitBoard, next life.UnknownState) (mask life.BitBoard, hardFail bool) {
	mask = p.Stator

	if !populationOK(active.Population(), p.MaxActiveCells.Max) {
		return life.BitBoard{}.Not(), true
	}
	w, h := active.BoundingBox()
	if !boundsOK(w, h, p.ActiveBounds[0], p.ActiveBounds[1]) {
		return life.BitBoard{}.Not(), true
	}
	for _, comp := range active.Components() {
		if !populationOK(comp.Population(), p.MaxComponentActiveCells.Max) {
			return life.BitBoard{}.Not(), true
		}
		cw, ch := comp.BoundingBox()
		if !boundsOK(cw, ch, p.ComponentActiveBounds[0], p.ComponentActiveBounds[1]) {
			return life.BitBoard{}.Not(), true
		}
	}

	everActive := s.EverActive.Or(active)
	if !populationOK(everActive.Population(), p.MaxEverActiveCells.Max) {
		return life.BitBoard{}.Not(), true
	}

	if p.MaxActiveCells.Max != -1 && active.Population() >= p.MaxActiveCells.Max {
		mask = mask.Or(active.Not())
	}
	if p.MaxEverActiveCells.Max != -1 && everActive.Population() >= p.MaxEverActiveCells.Max {
		mask = mask.Or(everActive.Not())
	}

	if p.MaxCellActiveWindow != -1 || p.MaxCellActiveStreak != -1 || p.MaxCellStationaryStreak != -1 {
		for i := 0; i < life.Width; i++ {
			for y := 0; y < 64; y++ {
				windowCount := 0
				for _, v := range s.timers.activeWindow[i][y] {
					if v {
						windowCount++
					}
				}
				if p.MaxCellActiveWindow != -1 && windowCount >= p.MaxCellActiveWindow {
					mask.Set(i, y)
				}
				if p.MaxCellActiveStreak != -1 && s.timers.activeStreak[i][y] >= p.MaxCellActiveStreak {
					mask.Set(i, y)
				}
				if p.MaxCellStationaryStreak != -1 && s.timers.stationaryRun[i][y] >= p.MaxCellStationaryStreak {
					mask.Set(i, y)
				}
			}
		}
	}

	// max-cell-stationary-distance (Barrister2.cpp's ForcedInactiveCells):
	// a cell every one of whose neighbors out to that Chebyshev radius has
	// stopped changing and isn't still tracking a genuinely free unknown is
	// pinned inactive, containing activity to a shrinking frontier rather
	// than letting it wander indefinitely through an already-settled region.
	if p.MaxCellStationaryDistance != -1 {
		unchanging := changes.Or(next.Unknown.AndNot(next.UnknownStable)).Not()
		mask = mask.Or(unchanging.Erode(p.MaxCellStationaryDistance))
	}

	return mask, false
}

// ForcedUnchangingCells computes the analogous mask for the per-generation
// "changes" set (cells differing from the previous generation): max
// changes, its bounding box, and component variants, plus the stator mask
// (a stator cell can never change).
func ForcedUnchangingCells(p *config.SearchParams, changes life.BitBoard) (mask life.BitBoard, hardFail bool) {
	mask = p.Stator

	if !populationOK(changes.Population(), p.MaxChanges.Max) {
		return life.BitBoard{}.Not(), true
	}
	w, h := changes.BoundingBox()
	if !boundsOK(w, h, p.ChangesBounds[0], p.ChangesBounds[1]) {
		return life.BitBoard{}.Not(), true
	}
	for _, comp := range changes.Components() {
		if !populationOK(comp.Population(), p.MaxComponentChanges.Max) {
			return life.BitBoard{}.Not(), true
		}
		cw, ch := comp.BoundingBox()
		if !boundsOK(cw, ch, p.ComponentChangesBounds[0], p.ComponentChangesBounds[1]) {
			return life.BitBoard{}.Not(), true
		}
	}
	if p.MaxChanges.Max != -1 && changes.Population() >= p.MaxChanges.Max {
		mask = mask.Or(changes.Not())
	}
	return mask, false
}

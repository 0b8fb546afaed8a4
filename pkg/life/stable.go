package life

import (
	"math"
	"time"
)

// StableState is the three-valued still-life state: eight option masks
// per cell (see Options) plus derived caches State (known-ON), Unknown
// (still ambiguous), and StateZOI (a monotonically-growing superset of the
// zone of influence of State, widened whenever a cell becomes known-ON or
// a committed transition is classified as a perturbation).
//
// Every option field is stored "flipped": a set bit rules the option out.
// The zero value therefore represents full ignorance — nothing ruled out
// anywhere — which is exactly the starting point before any pattern is
// loaded.
type StableState struct {
	Live2, Live3        BitBoard
	Dead0, Dead1, Dead2 BitBoard
	Dead4, Dead5, Dead6 BitBoard
	StateZOI            BitBoard
	State               BitBoard
	Unknown             BitBoard
}

var allFlagsList = []Options{Live2, Live3, Dead0, Dead1, Dead2, Dead4, Dead5, Dead6}

func (s *StableState) fieldFor(flag Options) BitBoard {
	switch flag {
	case Live2:
		return s.Live2
	case Live3:
		return s.Live3
	case Dead0:
		return s.Dead0
	case Dead1:
		return s.Dead1
	case Dead2:
		return s.Dead2
	case Dead4:
		return s.Dead4
	case Dead5:
		return s.Dead5
	case Dead6:
		return s.Dead6
	default:
		return BitBoard{}
	}
}

func (s *StableState) orIntoField(flag Options, cells BitBoard) {
	switch flag {
	case Live2:
		s.Live2 = s.Live2.Or(cells)
	case Live3:
		s.Live3 = s.Live3.Or(cells)
	case Dead0:
		s.Dead0 = s.Dead0.Or(cells)
	case Dead1:
		s.Dead1 = s.Dead1.Or(cells)
	case Dead2:
		s.Dead2 = s.Dead2.Or(cells)
	case Dead4:
		s.Dead4 = s.Dead4.Or(cells)
	case Dead5:
		s.Dead5 = s.Dead5.Or(cells)
	case Dead6:
		s.Dead6 = s.Dead6.Or(cells)
	}
}

// GetOptions returns the combined ruled-out mask for the cell at (x, y).
func (s *StableState) GetOptions(x, y int) Options {
	var o Options
	for _, f := range allFlagsList {
		if s.fieldFor(f).Get(x, y) {
			o |= f
		}
	}
	return o
}

// impossibleMask returns the set of cells with every option ruled out.
func (s *StableState) impossibleMask() BitBoard {
	result := BitBoard{}.Not()
	for _, f := range allFlagsList {
		result = result.And(s.fieldFor(f))
	}
	return result
}

// RestrictOptions rules the flags in remove out at every cell in cells, in
// bulk. It reports whether the state remains consistent and whether
// anything changed.
func (s *StableState) RestrictOptions(cells BitBoard, remove Options) (consistent, changed bool) {
	if remove == 0 || cells.IsEmpty() {
		return true, false
	}
	for _, f := range allFlagsList {
		if remove&f == 0 {
			continue
		}
		field := s.fieldFor(f)
		newlySet := cells.AndNot(field)
		if !newlySet.IsEmpty() {
			changed = true
		}
		s.orIntoField(f, cells)
	}
	if changed {
		if !s.impossibleMask().And(cells).IsEmpty() {
			return false, true
		}
	}
	return true, changed
}

// RestrictOptionsAt rules the flags in remove out at a single cell.
func (s *StableState) RestrictOptionsAt(x, y int, remove Options) (consistent bool) {
	var cell BitBoard
	cell.Set(x, y)
	c, _ := s.RestrictOptions(cell, remove)
	return c
}

// SetOn declares every cell in cells to be definitely alive: every dead
// option is ruled out for them. It fails if any of those cells had
// already ruled out every live option (dead options plus live options all
// ruled out leaves the cell impossible).
func (s *StableState) SetOn(cells BitBoard) (consistent, changed bool) {
	if cells.IsEmpty() {
		return true, false
	}
	alreadyKnownOff := cells.And(s.Live2).And(s.Live3)
	if !alreadyKnownOff.IsEmpty() {
		return false, false
	}
	_, changed = s.RestrictOptions(cells, DeadMask)
	changed = changed || !s.State.And(cells).Equal(cells)
	s.State = s.State.Or(cells)
	s.Unknown = s.Unknown.AndNot(cells)
	return true, changed
}

// SetOff declares every cell in cells to be definitely dead: every live
// option is ruled out for them.
func (s *StableState) SetOff(cells BitBoard) (consistent, changed bool) {
	if cells.IsEmpty() {
		return true, false
	}
	alreadyKnownOn := cells.And(s.Dead0).And(s.Dead1).And(s.Dead2).And(s.Dead4).And(s.Dead5).And(s.Dead6)
	if !alreadyKnownOn.IsEmpty() {
		return false, false
	}
	_, changed = s.RestrictOptions(cells, LiveMask)
	changed = changed || !s.State.AndNot(cells).Equal(s.State)
	s.State = s.State.AndNot(cells)
	s.Unknown = s.Unknown.AndNot(cells)
	return true, changed
}

// SynchroniseStateKnown recomputes the State and Unknown caches from the
// current option masks across the whole board.
func (s *StableState) SynchroniseStateKnown() (consistent, changed bool) {
	knownOn := s.Dead0.And(s.Dead1).And(s.Dead2).And(s.Dead4).And(s.Dead5).And(s.Dead6)
	knownOff := s.Live2.And(s.Live3)
	if !knownOn.And(knownOff).IsEmpty() {
		return false, false
	}
	newUnknown := knownOn.Or(knownOff).Not()
	changed = !s.State.Equal(knownOn) || !s.Unknown.Equal(newUnknown)
	s.State = knownOn
	s.Unknown = newUnknown
	return true, changed
}

// UpdateStateKnownAt recomputes State/Unknown for a single cell, touching
// only that cell instead of resynchronising the whole board.
func (s *StableState) UpdateStateKnownAt(x, y int) (consistent bool) {
	opts := s.GetOptions(x, y)
	if opts.IsImpossible() {
		return false
	}
	s.State.SetCell(x, y, opts.IsKnownOn())
	s.Unknown.SetCell(x, y, opts.IsUnknown())
	return true
}

// PropagateSimple repeatedly applies PropagateSimpleStep to a fixed point.
func (s *StableState) PropagateSimple() (consistent bool) {
	for {
		c, changed := s.PropagateSimpleStep()
		if !c {
			return false
		}
		if !changed {
			return true
		}
	}
}

// Propagate interleaves UpdateOptions, SynchroniseStateKnown, and
// SignalNeighbours until none of them changes anything. This is the full
// propagator; PropagateSimple is a cheaper, less powerful special case of
// the same reasoning restricted to cells whose whole neighborhood is
// already fully known.
func (s *StableState) Propagate() (consistent bool) {
	for {
		c1, ch1 := s.UpdateOptions()
		if !c1 {
			return false
		}
		c2, ch2 := s.SynchroniseStateKnown()
		if !c2 {
			return false
		}
		c3, ch3 := s.SignalNeighbours()
		if !c3 {
			return false
		}
		if !ch1 && !ch2 && !ch3 {
			return true
		}
	}
}

// PropagateStep performs one round of SynchroniseStateKnown followed by
// UpdateOptions and SignalNeighbours, without looping to a fixed point, so
// the amount of work per call is bounded.
func (s *StableState) PropagateStep() (consistent, changed bool) {
	c1, ch1 := s.SynchroniseStateKnown()
	if !c1 {
		return false, ch1
	}
	c2, ch2 := s.UpdateOptions()
	if !c2 {
		return false, ch1 || ch2
	}
	c3, ch3 := s.SignalNeighbours()
	if !c3 {
		return false, ch1 || ch2 || ch3
	}
	return true, ch1 || ch2 || ch3
}

// Vulnerable returns cells with exactly one remaining live option and
// exactly one remaining dead option — cells where a single probe
// (test_unknowns) is likely to resolve the cell outright.
func (s *StableState) Vulnerable() BitBoard {
	var result BitBoard
	for i := 0; i < Width; i++ {
		for y := 0; y < 64; y++ {
			if s.GetOptions(i, y).IsVulnerable() {
				result.Set(i, y)
			}
		}
	}
	return result
}

// TestUnknowns probes each cell in cells by hypothetically setting it ON
// and OFF in independent clones and propagating each. If exactly one
// hypothesis is consistent, that value is committed; if neither is, the
// branch is dead; if both are consistent, whatever the two clones agree
// on is intersected back into this state (unit propagation by probing).
func (s *StableState) TestUnknowns(cells BitBoard) (consistent, changed bool) {
	ok := true
	cells.ForEachSetCell(func(x, y int) {
		if !ok || !s.Unknown.Get(x, y) {
			return
		}
		onClone := *s
		var cell BitBoard
		cell.Set(x, y)
		onConsistent, _ := onClone.SetOn(cell)
		if onConsistent {
			onConsistent = onClone.Propagate()
		}

		offClone := *s
		offConsistent, _ := offClone.SetOff(cell)
		if offConsistent {
			offConsistent = offClone.Propagate()
		}

		switch {
		case !onConsistent && !offConsistent:
			ok = false
		case onConsistent && !offConsistent:
			*s = onClone
			changed = true
		case !onConsistent && offConsistent:
			*s = offClone
			changed = true
		default:
			merged := intersectStates(onClone, offClone)
			if merged != *s {
				*s = merged
				changed = true
			}
		}
	})
	return ok, changed
}

// intersectStates returns the state that keeps, per cell, only the
// options both a and b still consider possible — the logical "OR of the
// ruled-out sets" is wrong; what both branches agree is *ruled out* stays
// ruled out only if BOTH ruled it out, i.e. the intersection of
// possibilities is the union kept, so the new ruled-out set is the
// intersection (AND) of the two ruled-out sets per flag.
func intersectStates(a, b StableState) StableState {
	var r StableState
	r.Live2 = a.Live2.And(b.Live2)
	r.Live3 = a.Live3.And(b.Live3)
	r.Dead0 = a.Dead0.And(b.Dead0)
	r.Dead1 = a.Dead1.And(b.Dead1)
	r.Dead2 = a.Dead2.And(b.Dead2)
	r.Dead4 = a.Dead4.And(b.Dead4)
	r.Dead5 = a.Dead5.And(b.Dead5)
	r.Dead6 = a.Dead6.And(b.Dead6)
	r.StateZOI = a.StateZOI.Or(b.StateZOI)
	r.State = a.State.And(b.State)
	r.Unknown = a.Unknown.Or(b.Unknown)
	return r
}

// CompleteStable runs a bounded depth-first branch-and-bound search
// assigning unknown cells to extend State into a complete still-life
// (spec.md §4.3). If minimise is false it returns the first completion
// found; if true it keeps exploring both branches at every choice point,
// tracking the lowest population seen so far as a bound that prunes any
// branch whose live count has already reached it, and returns the
// smallest completion found before the deadline. It returns the empty
// board if no completion is found within timeout.
func (s *StableState) CompleteStable(timeout time.Duration, minimise bool) BitBoard {
	search := &completeSearch{
		deadline: time.Now().Add(timeout),
		minimise: minimise,
		maxPop:   math.MaxInt,
	}
	start := *s
	if ok, _ := start.SynchroniseStateKnown(); !ok {
		return BitBoard{}
	}
	search.step(start)
	if search.maxPop == math.MaxInt {
		return BitBoard{}
	}
	return search.best
}

// completeSearch carries the branch-and-bound state threaded through
// step's recursion: the population bound tightens (and
// best is overwritten) every time a smaller completion is found,
// mirroring LifeStableState.hpp's CompleteStableStep(timeLimit, minimise,
// maxPop, best) out-parameters.
type completeSearch struct {
	deadline time.Time
	minimise bool
	maxPop   int
	best     BitBoard
}

// step explores completions of s, returning whether it found at least
// one. A branch is abandoned as soon as its committed population reaches
// maxPop — it cannot beat (or, for the non-minimising case, cannot
// matter more than) the best completion already found.
func (cs *completeSearch) step(s StableState) bool {
	if time.Now().After(cs.deadline) {
		return false
	}
	if !s.PropagateSimple() {
		return false
	}
	if !s.Propagate() {
		return false
	}
	if s.State.Population() >= cs.maxPop {
		return false
	}
	if s.Unknown.IsEmpty() {
		cs.best = s.State
		cs.maxPop = s.State.Population()
		return true
	}

	x, y, ok := chooseCompletionCell(s)
	if !ok {
		x, y, ok = s.Unknown.FirstSetCell()
		if !ok {
			return false
		}
	}
	var cell BitBoard
	cell.Set(x, y)

	var offResult bool
	offClone := s
	if ok, _ := offClone.SetOff(cell); ok {
		offResult = cs.step(offClone)
	}
	if !cs.minimise && offResult {
		return true
	}

	var onResult bool
	onClone := s
	if ok, _ := onClone.SetOn(cell); ok {
		onResult = cs.step(onClone)
	}

	return offResult || onResult
}

// chooseCompletionCell picks a vulnerable, unknown cell to branch on next;
// vulnerable cells (one live + one dead option remaining) are the most
// constrained and most likely to propagate widely once fixed.
func chooseCompletionCell(s StableState) (x, y int, ok bool) {
	candidates := s.Vulnerable().And(s.Unknown)
	return candidates.FirstSetCell()
}

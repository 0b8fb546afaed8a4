package life

// UnknownState is the transient, per-generation three-valued board the
// lookahead engine evolves forward: State (1 = currently ON, meaningful
// only where Unknown is 0), Unknown (1 = value not yet determined), and
// UnknownStable (1 = unknown *and* currently tracking the stable-state
// background value at this position). UnknownStable is always a subset of
// Unknown.
type UnknownState struct {
	State         BitBoard
	Unknown       BitBoard
	UnknownStable BitBoard
}

// inRange returns the mask of cells where target lies within [lo, hi]
// (inclusive), given lo and hi as bit-sliced NeighborCounts boards.
func inRange(lo, hi NeighborCounts, target int) BitBoard {
	_, _, loGreater := CompareToConst(lo, target)
	hiLess, _, _ := CompareToConst(hi, target)
	return loGreater.Or(hiLess).Not()
}

// StepMaintaining evolves u forward by one Game of Life generation,
// treating Unknown cells as three-valued: a cell's next value is ON or
// OFF only if every concrete completion of the current unknowns agrees,
// otherwise it stays Unknown. This is the min/max achievable
// live-neighbor-count argument: for each cell, the minimum achievable
// count comes from its definitely-ON neighbors, the maximum from
// definitely-ON-or-unknown neighbors; if every count in that range gives
// the same still-life verdict the result is determined.
//
// A second, narrower pass then uses the stable solver's own knowledge
// (stable) to collapse any cell still carrying UnknownStable once the
// stable solver has pinned that cell's background value — see
// TransferStable.
func (u UnknownState) StepMaintaining(stable *StableState) UnknownState {
	minCounts := CountNeighborhood(u.State)
	unknownCounts := CountNeighborhood(u.Unknown)
	maxCounts := AddCounts(minCounts, unknownCounts)

	possiblyOn := u.State.Or(u.Unknown)
	possiblyOff := u.State.Not().Or(u.Unknown)

	liveSurvives := inRange(minCounts, maxCounts, 2).Or(inRange(minCounts, maxCounts, 3))
	deadBorn := inRange(minCounts, maxCounts, 3)

	lt2, _, _ := CompareToConst(minCounts, 2)
	_, _, gt3 := CompareToConst(maxCounts, 3)
	liveDies := lt2.Or(gt3)

	_, minEq3, _ := CompareToConst(minCounts, 3)
	_, maxEq3, _ := CompareToConst(maxCounts, 3)
	deadStaysDead := minEq3.And(maxEq3).Not()

	possibleOn := possiblyOn.And(liveSurvives).Or(possiblyOff.And(deadBorn))
	possibleOff := possiblyOn.And(liveDies).Or(possiblyOff.And(deadStaysDead))

	var next UnknownState
	next.State = possibleOn.AndNot(possibleOff)
	next.Unknown = possibleOn.And(possibleOff)
	next.UnknownStable = next.Unknown.And(u.UnknownStable)

	return next.TransferStable(stable)
}

// ActiveComparedTo returns the cells, within stable's StateZOI, whose
// determined value in u differs from the stable background.
func (u UnknownState) ActiveComparedTo(stable *StableState) BitBoard {
	determined := u.Unknown.Not()
	return u.State.Xor(stable.State).And(stable.StateZOI).And(determined)
}

// ChangesComparedTo returns the cells whose known value differs between u
// and prev (cells unknown in either generation are excluded).
func (u UnknownState) ChangesComparedTo(prev UnknownState) BitBoard {
	determined := u.Unknown.Not().And(prev.Unknown.Not())
	return determined.And(u.State.Xor(prev.State))
}

// TransferStable collapses any UnknownStable cell whose background value
// the stable solver has since pinned down (stable.Unknown now 0 there)
// to that concrete value.
func (u UnknownState) TransferStable(stable *StableState) UnknownState {
	resolved := u.UnknownStable.AndNot(stable.Unknown)
	if resolved.IsEmpty() {
		return u
	}
	next := u
	next.State = next.State.AndNot(resolved).Or(stable.State.And(resolved))
	next.Unknown = next.Unknown.AndNot(resolved)
	next.UnknownStable = next.UnknownStable.AndNot(resolved)
	return next
}

// TransferStableAt applies TransferStable's logic to a single cell.
func (u *UnknownState) TransferStableAt(stable *StableState, x, y int) {
	if !u.UnknownStable.Get(x, y) || stable.Unknown.Get(x, y) {
		return
	}
	u.State.SetCell(x, y, stable.State.Get(x, y))
	u.Unknown.Clear(x, y)
	u.UnknownStable.Clear(x, y)
}

// UnperturbedTransitionFor returns the transition that would occur at
// (x, y) if the cell were simply part of the (unchanging) stable
// background: a cell not being actively perturbed, by definition, already
// equals the stable value, and a still life's cells never change.
func (u UnknownState) UnperturbedTransitionFor(x, y int) Transition {
	if u.State.Get(x, y) {
		return OnToOn
	}
	return OffToOff
}

// TransitionsFor computes the mask of transitions consistent with prev's
// and next's tri-values at (x, y), simplifying OffToOff+OnToOn into
// StableToStable per the Transition algebra.
func TransitionsFor(prev, next UnknownState, x, y int) Transition {
	prevOn := prev.State.Get(x, y) || prev.Unknown.Get(x, y)
	prevOff := !prev.State.Get(x, y) || prev.Unknown.Get(x, y)
	nextOn := next.State.Get(x, y) || next.Unknown.Get(x, y)
	nextOff := !next.State.Get(x, y) || next.Unknown.Get(x, y)

	var t Transition
	if prevOff && nextOff {
		t |= OffToOff
	}
	if prevOff && nextOn {
		t |= OffToOn
	}
	if prevOn && nextOff {
		t |= OnToOff
	}
	if prevOn && nextOn {
		t |= OnToOn
	}
	return Simplify(t)
}

// SetTransitionAt commits a singleton transition at (x, y): it fixes
// prev's and next's tri-values there to match, clearing Unknown in both.
// It reports false only when t is not a single transition; values already
// known at (x, y) in either generation are overwritten, not checked.
func SetTransitionAt(prev, next *UnknownState, x, y int, t Transition) bool {
	if !IsSingleton(t) {
		return false
	}
	var prevOn, nextOn bool
	switch t {
	case OffToOff:
		prevOn, nextOn = false, false
	case OffToOn:
		prevOn, nextOn = false, true
	case OnToOff:
		prevOn, nextOn = true, false
	case OnToOn:
		prevOn, nextOn = true, true
	case StableToStable:
		// The background value itself may still be unresolved; only the
		// "unchanging" fact is committed, not a concrete value.
		prev.UnknownStable.Set(x, y)
		next.UnknownStable.Set(x, y)
		return true
	default:
		return false
	}
	prev.State.SetCell(x, y, prevOn)
	prev.Unknown.Clear(x, y)
	prev.UnknownStable.Clear(x, y)
	next.State.SetCell(x, y, nextOn)
	next.Unknown.Clear(x, y)
	next.UnknownStable.Clear(x, y)
	return true
}

package life

// This file holds the bit-sliced Boolean circuits that drive StableState's
// propagation: PropagateSimpleStep, UpdateOptions, and SignalNeighbours.
// Per the still-life rule, a cell's eight StableOptions flags name which
// (liveness, neighbor-count) pairs remain possible; these functions
// mechanically derive which flags a given neighbor-count observation or
// interval rules out, the same way an auto-generated circuit would, from
// the Life transition rule and the definition of a still-life rather than
// from a transcription of any one reference implementation. Control flow
// (looping to a fixed point, failure handling) lives in stable.go.

// countGroup returns the set of flags that correspond to neighbor count n.
// n==2 is the one count shared by two flags (Live2 and Dead2): a neighbor
// count can be forced to 2 while the cell's own liveness is still
// ambiguous.
func countGroup(n int) Options {
	switch n {
	case 0:
		return Dead0
	case 1:
		return Dead1
	case 2:
		return Live2 | Dead2
	case 3:
		return Live3
	case 4:
		return Dead4
	case 5:
		return Dead5
	case 6:
		return Dead6
	default:
		return 0
	}
}

// othersRuledOut returns the mask of cells where every flag outside group
// has been ruled out.
func (s *StableState) othersRuledOut(group Options) BitBoard {
	result := BitBoard{}.Not()
	for _, f := range allFlagsList {
		if group&f != 0 {
			continue
		}
		result = result.And(s.fieldFor(f))
	}
	return result
}

// updateOptionsMasked rules out, at every cell in restrictTo, any flag
// whose neighbor count is now outside [minCount, maxCount] — the interval
// of counts achievable given currently-known-ON neighbors (minCount) and
// currently-known-ON-or-unknown neighbors (maxCount). Passing the whole
// board (restrictTo = all set) implements UpdateOptions; passing only the
// cells whose neighborhood has no unknowns left (minCount == maxCount)
// implements PropagateSimpleStep, a coarser special case of the same
// reasoning.
func (s *StableState) updateOptionsMasked(restrictTo BitBoard) (consistent, changed bool) {
	minCounts := CountNeighborhood(s.State)
	maxCounts := CountNeighborhood(s.State.Or(s.Unknown))

	for n := 0; n <= 6; n++ {
		group := countGroup(n)
		if group == 0 {
			continue
		}
		_, _, tooHigh := CompareToConst(minCounts, n) // minCount > n: count has already exceeded n
		tooLow, _, _ := CompareToConst(maxCounts, n)  // maxCount < n: count can never reach n
		unreachable := tooHigh.Or(tooLow).And(restrictTo)
		if unreachable.IsEmpty() {
			continue
		}
		for _, f := range allFlagsList {
			if group&f == 0 {
				continue
			}
			c, ch := s.RestrictOptions(unreachable, f)
			changed = changed || ch
			if !c {
				return false, changed
			}
		}
	}
	return true, changed
}

// PropagateSimpleStep applies one round of still-life rule checking using
// only cells whose entire Moore neighborhood is already fully known (no
// unknown neighbor). It is the cheap, coarse half of propagation described
// in spec §4.3.
func (s *StableState) PropagateSimpleStep() (consistent, changed bool) {
	minCounts := CountNeighborhood(s.State)
	maxCounts := CountNeighborhood(s.State.Or(s.Unknown))
	fullyKnown := CountsEqual(minCounts, maxCounts)
	return s.updateOptionsMasked(fullyKnown)
}

// UpdateOptions applies the full interval-based reasoning across the
// entire board: a flag naming neighbor count n is ruled out wherever n
// falls outside the achievable range given partial neighbor knowledge.
func (s *StableState) UpdateOptions() (consistent, changed bool) {
	return s.updateOptionsMasked(BitBoard{}.Not())
}

// SignalNeighbours looks for cells whose remaining options force an exact
// neighbor count (every flag outside one count-group ruled out) and, when
// the known-ON/unknown-neighbor split leaves no room for ambiguity (every
// remaining unknown neighbor must be ON, or none of them may be),
// propagates that forcing onto the neighboring unknown cells. This is the
// "signal" half of propagation spec §4.3 describes: e.g. a cell whose
// count is forced to 2, already has 2 known-ON neighbors, and has one
// remaining unknown neighbor — that neighbor must be OFF.
func (s *StableState) SignalNeighbours() (consistent, changed bool) {
	onCounts := CountNeighborhood(s.State)
	unknownCounts := CountNeighborhood(s.Unknown)
	totalCounts := AddCounts(onCounts, unknownCounts)
	notImpossible := s.impossibleMask().Not()

	var forceOff, forceOn BitBoard
	for n := 0; n <= 6; n++ {
		group := countGroup(n)
		if group == 0 {
			continue
		}
		forced := s.othersRuledOut(group).And(notImpossible)
		if forced.IsEmpty() {
			continue
		}
		_, knownEqualsN, _ := CompareToConst(onCounts, n)
		_, totalEqualsN, _ := CompareToConst(totalCounts, n)

		hasUnknownNeighbors := unknownCounts.Bit0.Or(unknownCounts.Bit1).Or(unknownCounts.Bit2).Or(unknownCounts.Bit3)

		forceOff = forceOff.Or(forced.And(knownEqualsN).And(hasUnknownNeighbors))
		forceOn = forceOn.Or(forced.And(totalEqualsN).And(hasUnknownNeighbors))
	}

	destOff := forceOff.ZOI().And(s.Unknown)
	destOn := forceOn.ZOI().And(s.Unknown)
	conflict := destOff.And(destOn)
	if !conflict.IsEmpty() {
		return false, false
	}

	c1, ch1 := s.SetOff(destOff)
	if !c1 {
		return false, ch1
	}
	c2, ch2 := s.SetOn(destOn)
	if !c2 {
		return false, ch1 || ch2
	}
	return true, ch1 || ch2
}

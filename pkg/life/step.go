package life

// Step evolves a fully-known board forward by one Game-of-Life generation
// (B3/S23): a live cell survives with 2 or 3 live neighbors, a dead cell
// is born with exactly 3. Used where every cell's value is already
// concrete — the stable-state fixpoint check (spec.md §8 property 3) and
// oscillator period detection (§4.7), both of which step a board forward
// with no remaining unknowns to track.
func Step(b BitBoard) BitBoard {
	counts := CountNeighborhood(b)
	three := counts.Bit1.And(counts.Bit0).AndNot(counts.Bit2).AndNot(counts.Bit3)
	two := counts.Bit1.AndNot(counts.Bit0).AndNot(counts.Bit2).AndNot(counts.Bit3)
	survives := b.And(two.Or(three))
	born := b.Not().And(three)
	return survives.Or(born)
}

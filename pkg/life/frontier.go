package life

// MaxFrontierGens bounds how many generations of lookahead the search
// engine keeps live at once (variant-2 lookahead depth, per the
// documented choice between the two source search loops).
const MaxFrontierGens = 4

// MaxCellActiveWindowGens and MaxCellActiveStreakGens are the compile-time
// caps on the `max-cell-active-window` / `max-cell-active-streak`
// configuration keys. A configured value beyond these is a config error,
// not a panic.
const (
	MaxCellActiveWindowGens = 7
	MaxCellActiveStreakGens = 7
)

// FrontierGeneration is one generation of lookahead: the previous and
// current tri-valued states, the cells newly unknown at this generation
// (FrontierCells — the branch points), which cells are currently active
// or changed versus the previous generation, and which cells have been
// forced inactive/unchanging by configuration predicates.
type FrontierGeneration struct {
	Gen              uint64
	Prev             UnknownState
	State            UnknownState
	FrontierCells    BitBoard
	Active           BitBoard
	Changes          BitBoard
	ForcedInactive   BitBoard
	ForcedUnchanging BitBoard
}

// SetTransition commits transition t at (x, y) within this generation,
// removing the cell from FrontierCells once resolved.
func (g *FrontierGeneration) SetTransition(x, y int, t Transition) bool {
	if !SetTransitionAt(&g.Prev, &g.State, x, y, t) {
		return false
	}
	g.FrontierCells.Clear(x, y)
	return true
}

// Frontier is a ring buffer of up to MaxFrontierGens FrontierGenerations,
// Start is the index of the oldest (head) generation and Size the number
// currently populated.
type Frontier struct {
	Generations [MaxFrontierGens]FrontierGeneration
	Start       int
	Size        int
}

// At returns a pointer to the i-th generation from the head (0 = head).
func (f *Frontier) At(i int) *FrontierGeneration {
	return &f.Generations[(f.Start+i)%MaxFrontierGens]
}

// PushBack appends a new generation, evicting none (callers are expected
// to have checked Size < MaxFrontierGens).
func (f *Frontier) PushBack(g FrontierGeneration) {
	f.Generations[(f.Start+f.Size)%MaxFrontierGens] = g
	f.Size++
}

// PopFront drops the head generation, as happens once its next state
// becomes fully known and the search advances current past it.
func (f *Frontier) PopFront() {
	if f.Size == 0 {
		return
	}
	f.Start = (f.Start + 1) % MaxFrontierGens
	f.Size--
}

// Head returns the oldest populated generation; ok is false if the
// frontier is empty.
func (f *Frontier) Head() (*FrontierGeneration, bool) {
	if f.Size == 0 {
		return nil, false
	}
	return f.At(0), true
}

// AllowedTransitionsAt computes, for the cell at (x, y) in generation g,
// the transitions consistent with (i) the prev/next tri-value knowledge,
// (ii) the forced-inactive flag (inside the ZOI where it must equal
// stable — i.e. not perturbed), (iii) the forced-unchanging flag, and
// (iv) the "outside-ZOI must be unperturbed" rule, which is enforced by
// treating any cell outside stable.StateZOI as forced-inactive
// regardless of the generation's own ForcedInactive mask.
func AllowedTransitionsAt(g *FrontierGeneration, stable *StableState, x, y int) Transition {
	t := TransitionsFor(g.Prev, g.State, x, y)

	outsideZOI := !stable.StateZOI.Get(x, y)
	if outsideZOI || g.ForcedInactive.Get(x, y) {
		t &= Unchanging
		unperturbed := g.State.UnperturbedTransitionFor(x, y)
		if unperturbed == OffToOff || unperturbed == OnToOn {
			if t&unperturbed != 0 {
				t = unperturbed | (t & StableToStable)
			}
		}
	}
	if g.ForcedUnchanging.Get(x, y) {
		t &= Unchanging
	}
	return Simplify(t)
}

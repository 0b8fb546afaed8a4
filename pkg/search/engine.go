package search

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gitrdm/bellman/internal/config"
	"github.com/gitrdm/bellman/pkg/life"
)

// Engine drives the branch-and-bound search described in spec.md §4.6 to
// completion, collecting Solutions and (optionally) rotor fingerprints.
type Engine struct {
	Params *config.SearchParams
	Log    *logrus.Entry

	Solutions  []Solution
	Rotors     []uint64
	seenRotors map[uint64]bool

	branchCount uint64
}

// maxBranchFastCount bounds how many search_step calls may reuse the
// current frontier before a fresh CalculateFrontier pass is forced,
// mirroring spec.md §9's `maxBranchFastCount` tunable.
const maxBranchFastCount = 32

// NewEngine constructs an Engine for p, logging via log (a nil log
// installs a disabled logrus.Entry, matching how cmd/bellman wires a real
// one).
func NewEngine(p *config.SearchParams, log *logrus.Entry) *Engine {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = logrus.NewEntry(l)
	}
	return &Engine{Params: p, Log: log, seenRotors: make(map[uint64]bool)}
}

// Run executes the search to completion (or until ctx is cancelled),
// returning every recorded Solution in DFS order.
func (e *Engine) Run(ctx context.Context) ([]Solution, error) {
	root := NewSearchState(e.Params)
	if err := e.searchStep(ctx, root, 0); err != nil && !errors.Is(err, errDone) {
		return nil, err
	}
	return e.Solutions, nil
}

// searchStep is the recursive branch-and-bound procedure (spec.md §4.6).
// timeSinceCalc counts search_step calls since the last CalculateFrontier,
// bounding reuse of a stale frontier per maxBranchFastCount.
func (e *Engine) searchStep(ctx context.Context, s SearchState, timeSinceCalc int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	head, hasHead := s.Frontier.Head()
	needsCalc := !hasHead || head.FrontierCells.IsEmpty() || timeSinceCalc > maxBranchFastCount
	if needsCalc {
		if !CalculateFrontier(&s, e.Params) {
			return nil
		}
		timeSinceCalc = 0
	} else {
		timeSinceCalc++
	}

	// tryAdvance internally pops every frontier generation that has fully
	// resolved (empty FrontierCells), stopping at the first one that still
	// has branch points or at a terminal condition (solution recorded,
	// window exceeded, oscillator classified).
	if err := e.tryAdvance(&s); err != nil {
		return err
	}
	if s.Frontier.Size == 0 {
		if !CalculateFrontier(&s, e.Params) {
			return nil
		}
		timeSinceCalc = 0
	}
	if s.Frontier.Size == 0 {
		return nil
	}
	gi, x, y, ok := e.chooseBranchCell(&s)
	if !ok {
		return nil
	}
	g := s.Frontier.At(gi)
	allowed := life.Simplify(life.AllowedTransitionsAt(g, &s.Stable, x, y))
	branches := life.Enumerate(allowed)
	if len(branches) == 0 {
		return nil
	}

	for i, t := range branches {
		e.branchCount++
		last := i == len(branches)-1
		var branch SearchState
		if last {
			branch = s
		} else {
			branch = s.Clone()
		}
		if !e.commitBranch(&branch, gi, x, y, t) {
			continue
		}
		if err := e.searchStep(ctx, branch, timeSinceCalc); err != nil {
			return err
		}
	}
	return nil
}

// commitBranch commits transition t at (x, y) in frontier generation gi,
// handling the neighbor-count restriction the same way CalculateFrontier's
// resolution pass does, and records interaction the first time a
// perturbation is committed.
func (e *Engine) commitBranch(s *SearchState, gi, x, y int, t life.Transition) bool {
	g := s.Frontier.At(gi)

	// Computed before the commit mutates g.State at (x, y): the transition
	// that would occur here absent any perturbation, used below to detect
	// interaction.
	unperturbed := g.State.UnperturbedTransitionFor(x, y)

	if t != life.StableToStable {
		var current, next bool
		switch t {
		case life.OffToOn:
			current, next = false, true
		case life.OnToOff:
			current, next = true, false
		case life.OnToOn:
			current, next = true, true
		default:
			current, next = false, false
		}
		minC := countAt(life.CountNeighborhood(g.Prev.State), x, y)
		unkC := countAt(life.CountNeighborhood(g.Prev.Unknown), x, y)
		remove := optionsForTransition(current, next, minC, unkC)
		if !s.Stable.RestrictOptionsAt(x, y, remove) {
			return false
		}
	}
	if !g.SetTransition(x, y, t) {
		return false
	}

	if t != life.StableToStable && life.IsPerturbation(t, unperturbed) {
		var cell life.BitBoard
		cell.Set(x, y)
		s.Stable.StateZOI = s.Stable.StateZOI.Or(cell.ZOI())
		if !s.HasInteracted {
			s.HasInteracted = true
			s.InteractionStartGen = g.Gen
			s.InteractionStable = s.Stable
		}
	}
	return true
}

// chooseBranchCell scans frontier generations in order and, within a
// generation, takes the cell FirstSetCell returns (columns in ascending x,
// rows ascending within a column; spec.md §4.6 "Cell choice policy"),
// returning the first frontier cell found.
func (e *Engine) chooseBranchCell(s *SearchState) (gi, x, y int, ok bool) {
	for i := 0; i < s.Frontier.Size; i++ {
		g := s.Frontier.At(i)
		if gx, gy, found := g.FrontierCells.FirstSetCell(); found {
			return i, gx, gy, true
		}
	}
	return 0, 0, 0, false
}

// tryAdvance drops fully-resolved frontier generations from the head,
// advancing s.Current/s.Gen and updating interaction/recovery bookkeeping,
// emitting a Solution once min-stable-interval consecutive inactive
// generations are seen (spec.md §4.5 step 4).
func (e *Engine) tryAdvance(s *SearchState) error {
	for {
		head, ok := s.Frontier.Head()
		if !ok || !head.FrontierCells.IsEmpty() {
			return nil
		}

		active := head.Active
		changes := head.Changes
		s.EverActive = s.EverActive.Or(active)

		active.ForEachSetCell(func(x, y int) { s.timers.recordGen(x, y, true) })
		inactiveButTracked := s.Stable.StateZOI.AndNot(active)
		inactiveButTracked.ForEachSetCell(func(x, y int) { s.timers.recordGen(x, y, false) })

		s.Current = head.State
		s.Gen = head.Gen
		s.Frontier.PopFront()

		if active.IsEmpty() && changes.IsEmpty() {
			s.RecoveredGens++
		} else {
			s.RecoveredGens = 0
		}

		if s.HasInteracted && s.RecoveredGens >= e.Params.MinStableInterval {
			sol, ok := RecordSolution(s, e.Params)
			if ok {
				e.Solutions = append(e.Solutions, sol)
				e.Log.WithFields(logrus.Fields{
					"interaction_gen": sol.InteractionGen,
					"recovery_gen":    sol.RecoveryGen,
				}).Info("recorded solution")
			}
			if !e.Params.ContinueAfterSuccess {
				return errDone
			}
			s.HasInteracted = false
			s.RecoveredGens = 0
		}

		if s.HasInteracted {
			elapsed := int(s.Gen - s.InteractionStartGen)
			if max := e.Params.ActiveWindowRange.Max; max != -1 && elapsed > max {
				if e.Params.ReportOscillators {
					e.classifyOscillator(s)
				}
				return nil
			}
		} else if max := e.Params.FirstActiveRange.Max; max != -1 && int(s.Gen) > max {
			return nil
		}

		if s.Frontier.Size == 0 {
			return nil
		}
	}
}

// errDone signals a configured single-solution run is finished; Run
// translates it back into a nil error (not a failure) at the top level.
var errDone = errors.New("search: stopped after first solution")

func (e *Engine) classifyOscillator(s *SearchState) {
	period, rotor, found := DeterminePeriod(s.Stable.State, s.Current.State)
	if !found || period < 5 {
		return
	}
	if hash, fresh := ClassifyRotors(rotor, e.seenRotors); fresh {
		e.Rotors = append(e.Rotors, hash)
		e.Log.WithFields(logrus.Fields{"period": period}).Info("oscillating")
	}
}

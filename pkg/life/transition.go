package life

// Transition is a 5-bit mask over the five possible one-generation cell
// transitions. A mask with more than one bit set names a set of
// transitions still consistent with current knowledge; branching narrows
// it, eventually to a singleton, which is then committed.
type Transition uint8

// Bit order matters: the search engine enumerates transitions from the
// highest bit to the lowest and tail-calls on the last one, so
// StableToStable — the non-perturbing branch, which spec.md §4.6 requires
// to be tried last — is deliberately given the lowest bit value.
const (
	StableToStable Transition = 1 << iota
	OffToOff
	OffToOn
	OnToOff
	OnToOn
)

// Impossible is the empty transition set — a branch cannot continue.
const Impossible Transition = 0

// Any is the full transition set.
const Any = OffToOff | OffToOn | OnToOff | OnToOn | StableToStable

// Unchanging is the subset of transitions that leave the cell's value the
// same (OFF->OFF, ON->ON, or the collapsed STABLE->STABLE).
const Unchanging = OffToOff | OnToOn | StableToStable

// popcount5 counts set bits in a Transition.
func popcount5(t Transition) int {
	n := 0
	for t != 0 {
		n++
		t &= t - 1
	}
	return n
}

// Count returns the number of transitions still possible in t.
func Count(t Transition) int {
	return popcount5(t)
}

// IsSingleton reports whether exactly one transition remains in t.
func IsSingleton(t Transition) bool {
	return t != 0 && t&(t-1) == 0
}

// Highest returns the highest-order single transition bit set in t, or
// Impossible if t is empty.
func Highest(t Transition) Transition {
	for bit := Transition(1 << 4); bit != 0; bit >>= 1 {
		if t&bit != 0 {
			return bit
		}
	}
	return 0
}

// Lowest returns the lowest-order single transition bit set in t.
func Lowest(t Transition) Transition {
	if t == 0 {
		return 0
	}
	return t & (-t)
}

// Simplify collapses a transition set containing both OffToOff and OnToOn
// into one that also sets StableToStable in their place — branching on
// "stays OFF" vs "stays ON" separately from "is perturbed" is wasted
// work once both unperturbed options are on the table, since the search
// does not need to distinguish the stable-background value at a frontier
// cell whose value the stable solver has not yet determined.
func Simplify(t Transition) Transition {
	if t&OffToOff != 0 && t&OnToOn != 0 {
		return (t &^ (OffToOff | OnToOn)) | StableToStable
	}
	return t
}

// Enumerate returns the individual single-bit transitions present in t,
// ordered from highest bit to lowest — the order the search engine
// branches in, so the non-perturbing (STABLE->STABLE) branch is tried
// last and can receive the tail call.
func Enumerate(t Transition) []Transition {
	var out []Transition
	for bit := Transition(1 << 4); bit != 0; bit >>= 1 {
		if t&bit != 0 {
			out = append(out, bit)
		}
	}
	return out
}

// IsPerturbation reports whether the committed (singleton) transition t
// differs from what would have happened with no active cells nearby
// (unperturbed, also a singleton by the time this is called).
func IsPerturbation(t, unperturbed Transition) bool {
	return t != unperturbed
}

// Package config loads and validates the TOML search configuration
// (SearchParams, spec.md §6.1), translating it into the concrete types
// pkg/life and pkg/search operate on.
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/gitrdm/bellman/internal/rle"
	"github.com/gitrdm/bellman/internal/symmetry"
	"github.com/gitrdm/bellman/pkg/life"
)

// Bound is an inclusive [Min, Max] pair using the -1 sentinel convention:
// either side set to -1 disables that side of the constraint.
type Bound struct {
	Min int
	Max int
}

// Enabled reports whether either side of the bound is a real constraint.
func (b Bound) Enabled() bool {
	return b.Min != -1 || b.Max != -1
}

// Within reports whether n satisfies the bound (always true for a
// disabled side).
func (b Bound) Within(n int) bool {
	if b.Min != -1 && n < b.Min {
		return false
	}
	if b.Max != -1 && n > b.Max {
		return false
	}
	return true
}

// ForbiddenPattern names a pattern+position combination that, once every
// named cell is fully known, disqualifies a solution.
type ForbiddenPattern struct {
	Pattern  life.BitBoard
	Mask     life.BitBoard
	Position [2]int
}

// SearchParams is the fully resolved, validated form of a TOML search
// configuration (spec.md §6.1).
type SearchParams struct {
	StartingPattern life.BitBoard
	ActivePattern   life.BitBoard
	UnknownStable   life.BitBoard
	StartingStable  life.StableState
	SearchArea      life.BitBoard
	Stator          life.BitBoard

	FirstActiveRange  Bound
	ActiveWindowRange Bound
	MinStableInterval int

	MaxActiveCells          Bound
	ActiveBounds            [2]Bound
	MaxComponentActiveCells Bound
	ComponentActiveBounds   [2]Bound

	MaxEverActiveCells          Bound
	EverActiveBounds            [2]Bound
	MaxComponentEverActiveCells Bound
	ComponentEverActiveBounds   [2]Bound

	MaxChanges             Bound
	ChangesBounds          [2]Bound
	MaxComponentChanges    Bound
	ComponentChangesBounds [2]Bound

	MaxCellActiveWindow       int
	MaxCellActiveStreak       int
	MaxCellStationaryDistance int
	MaxCellStationaryStreak   int

	StabiliseResults        bool
	StabiliseResultsTimeout int
	MinimiseResults         bool
	ReportOscillators       bool
	SkipGlancing            bool
	ContinueAfterSuccess    bool
	ForbidEater2            bool
	PrintSummary            bool
	PipeResults             bool

	Symmetry symmetry.Transform

	FilterGen int
	Filter    life.BitBoard
	FilterPos [2]int
	HasFilter bool

	Forbidden []ForbiddenPattern

	MetasearchRounds int
	MinTrimHashes    int
}

// rawParams mirrors the TOML document's keys exactly (kebab-case tags),
// deferring all semantic resolution to the conversion pass in Load.
type rawParams struct {
	Pattern       string `toml:"pattern"`
	PatternCenter [2]int `toml:"pattern-center"`

	FirstActiveRange  [2]int `toml:"first-active-range"`
	ActiveWindowRange [2]int `toml:"active-window-range"`
	MinStableInterval int    `toml:"min-stable-interval"`

	MaxActiveCells          int    `toml:"max-active-cells"`
	ActiveBounds            [2]int `toml:"active-bounds"`
	MaxComponentActiveCells int    `toml:"max-component-active-cells"`
	ComponentActiveBounds   [2]int `toml:"component-active-bounds"`

	MaxEverActiveCells          int    `toml:"max-ever-active-cells"`
	EverActiveBounds            [2]int `toml:"ever-active-bounds"`
	MaxComponentEverActiveCells int    `toml:"max-component-ever-active-cells"`
	ComponentEverActiveBounds   [2]int `toml:"component-ever-active-bounds"`

	MaxChanges             int    `toml:"max-changes"`
	ChangesBounds          [2]int `toml:"changes-bounds"`
	MaxComponentChanges    int    `toml:"max-component-changes"`
	ComponentChangesBounds [2]int `toml:"component-changes-bounds"`

	MaxCellActiveWindow       int `toml:"max-cell-active-window"`
	MaxCellActiveStreak       int `toml:"max-cell-active-streak"`
	MaxCellStationaryDistance int `toml:"max-cell-stationary-distance"`
	MaxCellStationaryStreak   int `toml:"max-cell-stationary-streak"`

	StabiliseResults        bool `toml:"stabilise-results"`
	StabiliseResultsTimeout int  `toml:"stabilise-results-timeout"`
	MinimiseResults         bool `toml:"minimise-results"`
	ReportOscillators       bool `toml:"report-oscillators"`
	SkipGlancing            bool `toml:"skip-glancing"`
	ContinueAfterSuccess    bool `toml:"continue-after-success"`
	ForbidEater2            bool `toml:"forbid-eater2"`
	PrintSummary            bool `toml:"print-summary"`
	PipeResults             bool `toml:"pipe-results"`

	Symmetry string `toml:"symmetry"`

	FilterGen int    `toml:"filter-gen"`
	Filter    string `toml:"filter"`
	FilterPos [2]int `toml:"filter-pos"`

	Forbidden []rawForbidden `toml:"forbidden"`

	MetasearchRounds int `toml:"metasearch-rounds"`
	MinTrimHashes    int `toml:"min-trim-hashes"`
}

type rawForbidden struct {
	Pattern  string `toml:"pattern"`
	Position [2]int `toml:"position"`
}

// defaults returns a rawParams pre-populated with spec.md §6.1's defaults,
// so that TOML decoding only needs to overwrite keys the document names.
func defaults() rawParams {
	return rawParams{
		FirstActiveRange:            [2]int{0, 100},
		ActiveWindowRange:           [2]int{0, 100},
		MinStableInterval:           4,
		MaxActiveCells:              -1,
		ActiveBounds:                [2]int{-1, -1},
		MaxComponentActiveCells:     -1,
		ComponentActiveBounds:       [2]int{-1, -1},
		MaxEverActiveCells:          -1,
		EverActiveBounds:            [2]int{-1, -1},
		MaxComponentEverActiveCells: -1,
		ComponentEverActiveBounds:   [2]int{-1, -1},
		MaxChanges:                  -1,
		ChangesBounds:               [2]int{-1, -1},
		MaxComponentChanges:         -1,
		ComponentChangesBounds:      [2]int{-1, -1},
		MaxCellActiveWindow:         -1,
		MaxCellActiveStreak:         -1,
		MaxCellStationaryDistance:   -1,
		MaxCellStationaryStreak:     -1,
		StabiliseResults:            true,
		StabiliseResultsTimeout:     3,
		MinimiseResults:             false,
		ReportOscillators:           false,
		SkipGlancing:                true,
		ContinueAfterSuccess:        false,
		ForbidEater2:                false,
		PrintSummary:                true,
		PipeResults:                 false,
		Symmetry:                    "identity",
		FilterGen:                   -1,
		MetasearchRounds:            0,
		MinTrimHashes:               0,
	}
}

// Load parses and validates the TOML search configuration at path.
func Load(path string) (*SearchParams, error) {
	raw := defaults()
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, errors.Wrapf(err, "config: decoding %s", path)
	}
	return resolve(raw)
}

func resolve(raw rawParams) (*SearchParams, error) {
	if raw.Pattern == "" {
		return nil, errors.New("config: `pattern` is required")
	}

	hist, err := rle.ParseLifeHistoryWithHeader(raw.Pattern)
	if err != nil {
		return nil, errors.Wrap(err, "config: parsing pattern")
	}
	hist = hist.Translate(raw.PatternCenter[0], raw.PatternCenter[1])

	p := &SearchParams{
		StartingPattern: hist.MarkedOn.Or(hist.Active),
		ActivePattern:   hist.Active,
		UnknownStable:   hist.UnknownStable,
		Stator:          hist.Stator,
		SearchArea:      hist.Active.Or(hist.UnknownStable).Or(hist.MarkedOn).Or(hist.MarkedOff).Or(hist.Stator),

		FirstActiveRange:  Bound{Min: raw.FirstActiveRange[0], Max: raw.FirstActiveRange[1]},
		ActiveWindowRange: Bound{Min: raw.ActiveWindowRange[0], Max: raw.ActiveWindowRange[1]},
		MinStableInterval: raw.MinStableInterval,

		MaxActiveCells:          Bound{Min: -1, Max: raw.MaxActiveCells},
		ActiveBounds:            boundPair(raw.ActiveBounds),
		MaxComponentActiveCells: Bound{Min: -1, Max: raw.MaxComponentActiveCells},
		ComponentActiveBounds:   boundPair(raw.ComponentActiveBounds),

		MaxEverActiveCells:          Bound{Min: -1, Max: raw.MaxEverActiveCells},
		EverActiveBounds:            boundPair(raw.EverActiveBounds),
		MaxComponentEverActiveCells: Bound{Min: -1, Max: raw.MaxComponentEverActiveCells},
		ComponentEverActiveBounds:   boundPair(raw.ComponentEverActiveBounds),

		MaxChanges:             Bound{Min: -1, Max: raw.MaxChanges},
		ChangesBounds:          boundPair(raw.ChangesBounds),
		MaxComponentChanges:    Bound{Min: -1, Max: raw.MaxComponentChanges},
		ComponentChangesBounds: boundPair(raw.ComponentChangesBounds),

		MaxCellActiveWindow:       raw.MaxCellActiveWindow,
		MaxCellActiveStreak:       raw.MaxCellActiveStreak,
		MaxCellStationaryDistance: raw.MaxCellStationaryDistance,
		MaxCellStationaryStreak:   raw.MaxCellStationaryStreak,

		StabiliseResults:        raw.StabiliseResults,
		StabiliseResultsTimeout: raw.StabiliseResultsTimeout,
		MinimiseResults:         raw.MinimiseResults,
		ReportOscillators:       raw.ReportOscillators,
		SkipGlancing:            raw.SkipGlancing,
		ContinueAfterSuccess:    raw.ContinueAfterSuccess,
		ForbidEater2:            raw.ForbidEater2,
		PrintSummary:            raw.PrintSummary,
		PipeResults:             raw.PipeResults,

		FilterGen:        raw.FilterGen,
		FilterPos:        raw.FilterPos,
		MetasearchRounds: raw.MetasearchRounds,
		MinTrimHashes:    raw.MinTrimHashes,
	}

	p.StartingStable.SetOn(hist.MarkedOn.Or(hist.Stator))
	p.StartingStable.SetOff(hist.MarkedOff)

	sym, err := symmetry.ParseName(raw.Symmetry)
	if err != nil {
		return nil, err
	}
	if err := symmetry.ResolveDomain(sym); err != nil {
		return nil, err
	}
	p.Symmetry = sym

	if raw.Filter != "" {
		filterBoard, err := rle.ParsePlainRLE(raw.Filter)
		if err != nil {
			return nil, errors.Wrap(err, "config: parsing filter")
		}
		p.Filter = filterBoard
		p.HasFilter = true
	}

	for _, f := range raw.Forbidden {
		hp, err := rle.ParseLifeHistoryWithHeader(f.Pattern)
		if err != nil {
			return nil, errors.Wrap(err, "config: parsing forbidden pattern")
		}
		known := hp.MarkedOn.Or(hp.MarkedOff)
		p.Forbidden = append(p.Forbidden, ForbiddenPattern{
			Pattern:  hp.MarkedOn.Translate(f.Position[0], f.Position[1]),
			Mask:     known.Translate(f.Position[0], f.Position[1]),
			Position: f.Position,
		})
	}

	if err := validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

func boundPair(v [2]int) [2]Bound {
	return [2]Bound{{Min: -1, Max: v[0]}, {Min: -1, Max: v[1]}}
}

func validate(p *SearchParams) error {
	if p.MaxCellActiveWindow > life.MaxCellActiveWindowGens {
		return errors.Errorf("config: max-cell-active-window %d exceeds compiled-in maximum %d",
			p.MaxCellActiveWindow, life.MaxCellActiveWindowGens)
	}
	if p.MaxCellActiveStreak > life.MaxCellActiveStreakGens {
		return errors.Errorf("config: max-cell-active-streak %d exceeds compiled-in maximum %d",
			p.MaxCellActiveStreak, life.MaxCellActiveStreakGens)
	}
	if p.MinStableInterval < 1 {
		return errors.New("config: min-stable-interval must be at least 1")
	}
	if p.StartingPattern.IsEmpty() && p.ActivePattern.IsEmpty() {
		return errors.New("config: pattern has no active cells")
	}
	return nil
}

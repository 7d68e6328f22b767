// Package gal builds programmable fuse maps for the GAL16V8, GAL20V8,
// GAL22V10 and GAL20RA10 programmable logic devices. It turns a
// chip-independent Blueprint of per-pin boolean equations into the
// exact fuse state a device programmer expects; parsing equations and
// serializing the result are left to the caller.
package gal

// Pin represents an input to a term: a possibly negated pin number.
type Pin struct {
	Pin int
	Neg bool
}

// Term is an OR of AND terms. Each inner slice is an AND term; the
// overall value is the OR of the inner slices. Line is the source
// line of the equation, used only for diagnostics.
type Term struct {
	Line int
	Pins [][]Pin
}

// TrueTerm is always true, being the OR of a single empty AND.
func TrueTerm(line int) Term {
	return Term{Line: line, Pins: [][]Pin{{}}}
}

// FalseTerm is always false, being the OR of nothing.
func FalseTerm(line int) Term {
	return Term{Line: line, Pins: nil}
}

// GAL holds the fuse state to program into a chip. All fuses start
// intact (true); everything else starts unprogrammed (false).
type GAL struct {
	Chip Chip

	Fuses []bool
	Xor   []bool
	Sig   []bool
	AC1   []bool
	PT    []bool
	Syn   bool
	AC0   bool
}

func NewGAL(chip Chip) *GAL {
	logicSize := chip.NumRows() * chip.NumCols()
	olmcs := chip.NumOLMCs()
	g := &GAL{
		Chip:  chip,
		Fuses: make([]bool, logicSize),
		Xor:   make([]bool, olmcs),
		Sig:   make([]bool, 64),
		AC1:   make([]bool, olmcs),
		PT:    make([]bool, 64),
		Syn:   false,
		AC0:   false,
	}
	for i := range g.Fuses {
		g.Fuses[i] = true
	}
	return g
}

// Mode represents the operating mode for the GAL16V8 and GAL20V8,
// which reinterpret the fuse array per mode.
type Mode int

const (
	ModeSimple     Mode = iota + 1 // SYN=1, AC0=0: combinatorial outputs
	ModeComplex                    // SYN=1, AC0=1: tristate outputs
	ModeRegistered                 // SYN=0, AC0=1: tristate or registered outputs
)

// SetMode stores the mode fuses. Only the GAL16V8 and GAL20V8 have
// them; calling this for another chip is a programming error.
func (g *GAL) SetMode(m Mode) {
	if g.Chip != ChipGAL16V8 && g.Chip != ChipGAL20V8 {
		panic("SetMode: " + g.Chip.Name() + " has no mode fuses")
	}
	switch m {
	case ModeSimple:
		g.Syn = true
		g.AC0 = false
	case ModeComplex:
		g.Syn = true
		g.AC0 = true
	case ModeRegistered:
		g.Syn = false
		g.AC0 = true
	default:
		panic("SetMode: bad mode")
	}
}

// Mode reads the mode back from the mode fuses. Must not be called
// before SetMode, or on a chip without mode fuses.
func (g *GAL) Mode() Mode {
	if g.Chip != ChipGAL16V8 && g.Chip != ChipGAL20V8 {
		panic("Mode: " + g.Chip.Name() + " has no mode fuses")
	}
	switch {
	case g.Syn && !g.AC0:
		return ModeSimple
	case g.Syn && g.AC0:
		return ModeComplex
	case !g.Syn && g.AC0:
		return ModeRegistered
	default:
		panic("Mode: bad SYN/AC0 fuses")
	}
}

// AddTerm enters a term into the given rows of the main logic array,
// one AND term per row, then zeroes the remaining reserved rows so
// they cannot widen the OR.
func (g *GAL) AddTerm(term Term, bounds Bounds) error {
	b := bounds
	singleRow := b.MaxRows == b.RowOffset+1
	for _, row := range term.Pins {
		if b.RowOffset == b.MaxRows {
			if singleRow {
				return &Error{Code: MoreThanOneProduct, Line: term.Line}
			}
			return &Error{
				Code: TooManyProducts,
				Line: term.Line,
				Max:  b.MaxRows - 1,
				Seen: len(term.Pins),
			}
		}
		for _, input := range row {
			flip := g.needsFlip(input.Pin)
			if err := g.setAnd(b.StartRow+b.RowOffset, input.Pin, input.Neg != flip); err != nil {
				return atLine(term.Line, err)
			}
		}
		b.RowOffset++
	}
	g.clearRows(b)
	return nil
}

// AddTermOpt is AddTerm with a missing term treated as constant
// false, the default for control equations.
func (g *GAL) AddTermOpt(term *Term, bounds Bounds) error {
	if term == nil {
		return g.AddTerm(FalseTerm(0), bounds)
	}
	return g.AddTerm(*term, bounds)
}

// clearRows blows every fuse in the rows between the cursor and the
// end of the reservation. A fully blown row asks for every signal in
// both polarities at once, so it is constant false.
func (g *GAL) clearRows(bounds Bounds) {
	rowLen := g.Chip.NumCols()
	start := (bounds.StartRow + bounds.RowOffset) * rowLen
	end := (bounds.StartRow + bounds.MaxRows) * rowLen
	for i := start; i < end; i++ {
		g.Fuses[i] = false
	}
}

// needsFlip reports whether references to pin must have their
// negation flipped. The GAL22V10 always inverts the feedback path of
// a registered OLMC but only inverts the pin itself when the output
// is active low; with an active high registered output the two
// disagree, so inputs reading that pin compensate here. Every other
// chip keeps output and feedback matched.
func (g *GAL) needsFlip(pin int) bool {
	if g.Chip != ChipGAL22V10 {
		return false
	}
	i, ok := g.Chip.PinToOLMC(pin)
	if !ok {
		return false
	}
	idx := g.Chip.NumOLMCs() - 1 - i
	registered := !g.AC1[idx]
	activeHigh := g.Xor[idx]
	return registered && activeHigh
}

// setAnd blows the fuse connecting one polarity of one input to a row.
func (g *GAL) setAnd(row int, pin int, neg bool) *Error {
	rowLen := g.Chip.NumCols()
	col, err := g.pinToColumn(pin)
	if err != nil {
		return err
	}
	off := 0
	if neg {
		off = 1
	}
	g.Fuses[row*rowLen+col+off] = false
	return nil
}

// pinToColumn resolves an input pin to its fuse column for the
// chip's current mode.
func (g *GAL) pinToColumn(pin int) (int, *Error) {
	var table []colEntry
	switch g.Chip {
	case ChipGAL16V8:
		switch g.Mode() {
		case ModeSimple:
			table = pinToCol16Simple
		case ModeComplex:
			table = pinToCol16Complex
		case ModeRegistered:
			table = pinToCol16Registered
		}
	case ChipGAL20V8:
		switch g.Mode() {
		case ModeSimple:
			table = pinToCol20Simple
		case ModeComplex:
			table = pinToCol20Complex
		case ModeRegistered:
			table = pinToCol20Registered
		}
	case ChipGAL22V10:
		table = pinToCol22V10
	case ChipGAL20RA10:
		table = pinToCol20RA10
	}
	if pin < 1 || pin > len(table) {
		return 0, &Error{Code: BadAnalysis, Pin: pin}
	}
	e := table[pin-1]
	if e.err != nil {
		return 0, e.err
	}
	return e.col, nil
}

package gal

import "fmt"

// Build constructs a complete fuse state from a blueprint. It either
// fully succeeds or returns the first diagnostic; on error the
// partial state is not returned.
func Build(bp Blueprint) (*GAL, error) {
	g := NewGAL(bp.Chip)

	var err error
	switch bp.Chip {
	case ChipGAL16V8, ChipGAL20V8:
		err = buildV8(g, bp)
	case ChipGAL22V10:
		err = build22V10(g, bp)
	case ChipGAL20RA10:
		err = build20RA10(g, bp)
	default:
		err = fmt.Errorf("unsupported chip")
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

func buildV8(g *GAL, bp Blueprint) error {
	if err := rejectRA10Controls(bp); err != nil {
		return err
	}
	setSig(g, bp.Sig)
	g.SetMode(analyseMode(bp.OLMC))
	// Pure combinatorial outputs only exist in simple mode; the other
	// modes implement them as tristate drivers with the enable held on.
	comIsTri := g.Mode() != ModeSimple
	setTristate(g, bp, comIsTri)
	setXors(g, bp)
	if err := setCoreEqns(g, bp); err != nil {
		return err
	}
	setPTs(g)
	return nil
}

func build22V10(g *GAL, bp Blueprint) error {
	if err := rejectRA10Controls(bp); err != nil {
		return err
	}
	setSig(g, bp.Sig)
	// Combinatorial outputs are always tristate-driven on this chip.
	// Both the AC1 and XOR passes must run before the equations:
	// needsFlip reads them while encoding.
	setTristate(g, bp, true)
	setXors(g, bp)
	if err := setCoreEqns(g, bp); err != nil {
		return err
	}
	return setARSP(g, bp)
}

func build20RA10(g *GAL, bp Blueprint) error {
	setSig(g, bp.Sig)
	setXors(g, bp)
	if err := setCoreEqns(g, bp); err != nil {
		return err
	}
	return setAuxEqns(g, bp)
}

// setSig expands up to 8 signature bytes into the 64 signature
// fuses, high bit first. Missing bytes leave the fuses unprogrammed.
func setSig(g *GAL, sig []byte) {
	for i := 0; i < len(sig) && i < 8; i++ {
		c := sig[i]
		for j := 0; j < 8; j++ {
			g.Sig[i*8+j] = (c<<j)&0x80 != 0
		}
	}
}

// setTristate configures the AC1 fuses: set for pure inputs that are
// read back, tristate outputs, and combinatorial outputs when the
// chip/mode implements those as tristate. Registered outputs stay
// clear.
func setTristate(g *GAL, bp Blueprint, comIsTri bool) {
	n := len(bp.OLMC)
	for i, olmc := range bp.OLMC {
		var tri bool
		switch {
		case olmc.Output == nil:
			tri = olmc.Feedback
		case olmc.PinMode == PinTristate:
			tri = true
		case olmc.PinMode == PinRegistered:
			tri = false
		default:
			tri = comIsTri
		}
		if tri {
			g.AC1[n-1-i] = true
		}
	}
}

// setXors sets the polarity fuse for each active high output.
func setXors(g *GAL, bp Blueprint) {
	n := len(bp.OLMC)
	for i, olmc := range bp.OLMC {
		if olmc.Output != nil && olmc.Active == ActiveHigh {
			g.Xor[n-1-i] = true
		}
	}
}

// setPTs sets all the product term disable fuses. The GALxxV8s don't
// use them for anything.
func setPTs(g *GAL) {
	for i := range g.PT {
		g.PT[i] = true
	}
}

// setCoreEqns enters each OLMC's main equation and, if present, its
// tristate enable equation.
func setCoreEqns(g *GAL, bp Blueprint) error {
	for i, olmc := range bp.OLMC {
		bounds := g.Chip.BoundsForOLMC(i)

		if olmc.Output != nil {
			if err := g.AddTerm(*olmc.Output, mainBounds(g, olmc, bounds)); err != nil {
				return err
			}
		} else {
			if err := g.AddTerm(FalseTerm(0), bounds); err != nil {
				return err
			}
		}

		if olmc.TriCon != nil {
			if err := atLine(olmc.TriCon.Line, checkTristate(g.Chip, olmc)); err != nil {
				return err
			}
			enBounds := Bounds{StartRow: bounds.StartRow, MaxRows: 1, RowOffset: 0}
			if err := g.AddTerm(*olmc.TriCon, enBounds); err != nil {
				return err
			}
		}
	}
	return nil
}

// mainBounds adjusts an OLMC's reservation for the rows that hold
// enable or control terms ahead of the main equation.
func mainBounds(g *GAL, olmc OLMC, bounds Bounds) Bounds {
	switch g.Chip {
	case ChipGAL16V8, ChipGAL20V8:
		// Registered outputs have no tristate enable row, and simple
		// mode has none at all.
		if g.Mode() == ModeSimple || olmc.PinMode == PinRegistered {
			return bounds
		}
		bounds.RowOffset = 1
		return bounds
	case ChipGAL22V10:
		// Row 0 of each block is the tristate enable row.
		bounds.RowOffset = 1
		return bounds
	default:
		// GAL20RA10: rows 0-3 hold the enable, CLK, ARST and APRST
		// terms.
		bounds.RowOffset = 4
		return bounds
	}
}

// checkTristate validates a tristate enable equation against the
// output it attaches to.
func checkTristate(chip Chip, olmc OLMC) *Error {
	switch {
	case olmc.Output == nil:
		return &Error{Code: UndefinedOutput, Suffix: SuffixE}
	case olmc.PinMode == PinRegistered && (chip == ChipGAL16V8 || chip == ChipGAL20V8):
		return &Error{Code: TristateReg}
	case olmc.PinMode == PinCombinatorial:
		return &Error{Code: UnmatchedTristate}
	}
	return nil
}

// setARSP enters the chip-wide async reset and sync preset equations
// of the GAL22V10: AR is row 0 and SP is row 131, each a single row
// outside the OLMC blocks.
func setARSP(g *GAL, bp Blueprint) error {
	if err := g.AddTermOpt(bp.AR, Bounds{StartRow: 0, MaxRows: 1, RowOffset: 0}); err != nil {
		return err
	}
	return g.AddTermOpt(bp.SP, Bounds{StartRow: 131, MaxRows: 1, RowOffset: 0})
}

// setAuxEqns enters the per-OLMC CLK, ARST and APRST rows of the
// GAL20RA10.
func setAuxEqns(g *GAL, bp Blueprint) error {
	for i, olmc := range bp.OLMC {
		bounds := g.Chip.BoundsForOLMC(i)

		if err := checkAux(olmc.Clock, olmc, SuffixCLK); err != nil {
			return err
		}
		if err := checkAux(olmc.ARST, olmc, SuffixARST); err != nil {
			return err
		}
		if err := checkAux(olmc.APRST, olmc, SuffixAPRST); err != nil {
			return err
		}

		if olmc.Output != nil && olmc.PinMode == PinRegistered {
			arst := bounds
			arst.RowOffset, arst.MaxRows = 2, 3
			if err := g.AddTermOpt(olmc.ARST, arst); err != nil {
				return err
			}

			aprst := bounds
			aprst.RowOffset, aprst.MaxRows = 3, 4
			if err := g.AddTermOpt(olmc.APRST, aprst); err != nil {
				return err
			}

			if olmc.Clock == nil {
				return &Error{Code: NoClock, Line: olmc.Output.Line}
			}
		}

		// Unregistered outputs still get the clock row, held at its
		// never-ticking default.
		if olmc.Output != nil {
			clk := bounds
			clk.RowOffset, clk.MaxRows = 1, 2
			if err := g.AddTermOpt(olmc.Clock, clk); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkAux validates a .CLK/.ARST/.APRST equation against the output
// it attaches to.
func checkAux(term *Term, olmc OLMC, suffix Suffix) error {
	if term == nil {
		return nil
	}
	switch {
	case olmc.Output == nil:
		return &Error{Code: UndefinedOutput, Line: term.Line, Suffix: suffix}
	case olmc.PinMode != PinRegistered:
		return &Error{Code: InvalidControl, Line: term.Line, Suffix: suffix}
	}
	return nil
}

// rejectRA10Controls fails any .CLK/.ARST/.APRST equation on chips
// without those lines.
func rejectRA10Controls(bp Blueprint) error {
	for _, olmc := range bp.OLMC {
		if olmc.Clock != nil {
			return &Error{Code: DisallowedControl, Line: olmc.Clock.Line, Suffix: SuffixCLK}
		}
		if olmc.ARST != nil {
			return &Error{Code: DisallowedControl, Line: olmc.ARST.Line, Suffix: SuffixARST}
		}
		if olmc.APRST != nil {
			return &Error{Code: DisallowedControl, Line: olmc.APRST.Line, Suffix: SuffixAPRST}
		}
	}
	return nil
}

// analyseMode picks the operating mode for the GAL16V8 and GAL20V8,
// which have no independent mode fuse. The rules are ordered and the
// first match wins; a registered output forces registered mode no
// matter what else the design does.
func analyseMode(olmcs []OLMC) Mode {
	if len(olmcs) != 8 {
		panic("analyseMode: must only be called for chips with 8 OLMCs")
	}

	for _, olmc := range olmcs {
		if olmc.Output != nil && olmc.PinMode == PinRegistered {
			return ModeRegistered
		}
	}

	for _, olmc := range olmcs {
		if olmc.Output != nil && olmc.PinMode == PinTristate {
			return ModeComplex
		}
	}

	for n, olmc := range olmcs {
		if !olmc.Feedback {
			continue
		}
		if olmc.Output == nil {
			// OLMCs 3 and 4 cannot be configured as pure inputs in
			// simple mode.
			if n == 3 || n == 4 {
				return ModeComplex
			}
		} else {
			// Output pins cannot be read back combinatorially in
			// simple mode.
			return ModeComplex
		}
	}

	return ModeSimple
}

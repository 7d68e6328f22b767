package gal

// Active indicates output polarity.
type Active int

const (
	ActiveLow Active = iota
	ActiveHigh
)

// PinMode is how an OLMC drives its output pin.
type PinMode int

const (
	PinCombinatorial PinMode = iota
	PinTristate
	PinRegistered
)

// OLMC is the requested configuration of one output macrocell.
// PinMode is meaningful only when Output is set. Clock, ARST and
// APRST only exist on the GAL20RA10.
type OLMC struct {
	Active   Active
	PinMode  PinMode
	Output   *Term
	TriCon   *Term // tristate enable equation (.E)
	Clock    *Term // .CLK
	ARST     *Term // .ARST, async reset
	APRST    *Term // .APRST, async preset
	Feedback bool  // pin is read back in some equation
}

// Blueprint is the chip-independent description of the design to
// program, as produced by an external front end. OLMCs are ordered
// lowest OLMC pin first. AR and SP are the chip-wide async reset and
// sync preset equations of the GAL22V10.
type Blueprint struct {
	Chip Chip
	Sig  []byte
	OLMC []OLMC
	AR   *Term
	SP   *Term
}

func NewBlueprint(chip Chip) Blueprint {
	olmcs := make([]OLMC, chip.NumOLMCs())
	for i := range olmcs {
		olmcs[i] = OLMC{Active: ActiveLow}
	}
	return Blueprint{Chip: chip, OLMC: olmcs}
}

package gal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fuseRow(g *GAL, row int) []bool {
	n := g.Chip.NumCols()
	return g.Fuses[row*n : (row+1)*n]
}

func requireRowAll(t *testing.T, g *GAL, row int, want bool) {
	t.Helper()
	for i, b := range fuseRow(g, row) {
		require.Equal(t, want, b, "row %d col %d", row, i)
	}
}

func TestAddTermTrue(t *testing.T) {
	g := NewGAL(ChipGAL22V10)
	err := g.AddTerm(TrueTerm(0), Bounds{StartRow: 5, MaxRows: 1})
	require.NoError(t, err)
	// A true term blows nothing: the all-intact row ANDs no inputs.
	requireRowAll(t, g, 5, true)
}

func TestAddTermFalse(t *testing.T) {
	g := NewGAL(ChipGAL22V10)
	err := g.AddTerm(FalseTerm(0), Bounds{StartRow: 1, MaxRows: 3})
	require.NoError(t, err)
	requireRowAll(t, g, 0, true)
	requireRowAll(t, g, 1, false)
	requireRowAll(t, g, 2, false)
	requireRowAll(t, g, 3, false)
	requireRowAll(t, g, 4, true)
}

func TestAddTermExactFit(t *testing.T) {
	g := NewGAL(ChipGAL22V10)
	term := Term{Line: 9, Pins: [][]Pin{
		{{Pin: 2}},
		{{Pin: 3, Neg: true}},
		{{Pin: 4}},
	}}
	err := g.AddTerm(term, Bounds{StartRow: 10, MaxRows: 3})
	require.NoError(t, err)

	// Pin 2 -> col 4, pin 3 -> col 8 (+1 negated), pin 4 -> col 12.
	require.False(t, g.Fuses[10*44+4])
	require.False(t, g.Fuses[11*44+8+1])
	require.True(t, g.Fuses[11*44+8])
	require.False(t, g.Fuses[12*44+12])
}

func TestAddTermTooManyProducts(t *testing.T) {
	g := NewGAL(ChipGAL22V10)
	term := Term{Line: 4, Pins: [][]Pin{{{Pin: 2}}, {{Pin: 3}}, {{Pin: 4}}, {{Pin: 5}}}}
	err := g.AddTerm(term, Bounds{StartRow: 10, MaxRows: 3})

	var galErr *Error
	require.ErrorAs(t, err, &galErr)
	require.Equal(t, TooManyProducts, galErr.Code)
	require.Equal(t, 4, galErr.Line)
	require.Equal(t, 2, galErr.Max)
	require.Equal(t, 4, galErr.Seen)
}

func TestAddTermMoreThanOneProduct(t *testing.T) {
	g := NewGAL(ChipGAL22V10)
	term := Term{Line: 6, Pins: [][]Pin{{{Pin: 2}}, {{Pin: 3}}}}
	err := g.AddTerm(term, Bounds{StartRow: 0, MaxRows: 1})

	var galErr *Error
	require.ErrorAs(t, err, &galErr)
	require.Equal(t, MoreThanOneProduct, galErr.Code)
	require.Equal(t, 6, galErr.Line)
}

func TestAddTermBadPin(t *testing.T) {
	g := NewGAL(ChipGAL20RA10)
	term := Term{Line: 12, Pins: [][]Pin{{{Pin: 13}}}}
	err := g.AddTerm(term, Bounds{StartRow: 0, MaxRows: 1})

	var galErr *Error
	require.ErrorAs(t, err, &galErr)
	require.Equal(t, ReservedRA10Input, galErr.Code)
	require.Equal(t, 12, galErr.Line)
	require.Equal(t, 13, galErr.Pin)
	require.Equal(t, "/OE", galErr.Name)
}

func TestAddTermOptDefaultsFalse(t *testing.T) {
	g := NewGAL(ChipGAL22V10)
	require.NoError(t, g.AddTermOpt(nil, Bounds{StartRow: 7, MaxRows: 2}))
	requireRowAll(t, g, 7, false)
	requireRowAll(t, g, 8, false)
}

func TestNeedsFlip(t *testing.T) {
	g := NewGAL(ChipGAL22V10)

	// Pin 23 is OLMC 9, fuse index 0. AC1 clear means registered.
	require.False(t, g.needsFlip(23), "active low registered")
	g.Xor[0] = true
	require.True(t, g.needsFlip(23), "active high registered")
	g.AC1[0] = true
	require.False(t, g.needsFlip(23), "active high tristate")

	// Non-OLMC pins never flip.
	g.Xor[0] = true
	g.AC1[0] = false
	require.False(t, g.needsFlip(2))

	// No other chip flips.
	for _, chip := range []Chip{ChipGAL16V8, ChipGAL20V8, ChipGAL20RA10} {
		o := NewGAL(chip)
		for i := range o.Xor {
			o.Xor[i] = true
		}
		for pin := 1; pin <= chip.NumPins(); pin++ {
			require.False(t, o.needsFlip(pin), "%s pin %d", chip.Name(), pin)
		}
	}
}

func TestAddTermAppliesFlip(t *testing.T) {
	g := NewGAL(ChipGAL22V10)
	// Pin 14 is OLMC 0, fuse index 9: registered, active high.
	g.Xor[9] = true

	term := Term{Pins: [][]Pin{{{Pin: 14}}}}
	require.NoError(t, g.AddTerm(term, Bounds{StartRow: 0, MaxRows: 1}))

	// Pin 14 -> col 38; the stated positive reference lands on the
	// complement column.
	require.True(t, g.Fuses[38])
	require.False(t, g.Fuses[38+1])
}

func TestModeFuses(t *testing.T) {
	g := NewGAL(ChipGAL16V8)

	g.SetMode(ModeSimple)
	require.True(t, g.Syn)
	require.False(t, g.AC0)
	require.Equal(t, ModeSimple, g.Mode())

	g.SetMode(ModeComplex)
	require.True(t, g.Syn)
	require.True(t, g.AC0)
	require.Equal(t, ModeComplex, g.Mode())

	g.SetMode(ModeRegistered)
	require.False(t, g.Syn)
	require.True(t, g.AC0)
	require.Equal(t, ModeRegistered, g.Mode())
}

func TestModeFusesContract(t *testing.T) {
	require.Panics(t, func() { NewGAL(ChipGAL22V10).SetMode(ModeSimple) })
	require.Panics(t, func() { NewGAL(ChipGAL20RA10).Mode() })
	// Mode fuses unset: reading them back is a sequencing bug.
	require.Panics(t, func() { NewGAL(ChipGAL16V8).Mode() })
}

func TestNewGALDefaults(t *testing.T) {
	g := NewGAL(ChipGAL16V8)
	require.Len(t, g.Fuses, 64*32)
	for _, b := range g.Fuses {
		require.True(t, b)
	}
	require.Len(t, g.Xor, 8)
	require.Len(t, g.AC1, 8)
	require.Len(t, g.Sig, 64)
	require.Len(t, g.PT, 64)
	require.False(t, g.Syn)
	require.False(t, g.AC0)
}

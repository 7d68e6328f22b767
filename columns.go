package gal

// Input pin to fuse column mappings. The GAL16V8 and GAL20V8
// interpret the array differently per operating mode, so those chips
// get one table per mode. The pinouts genuinely differ between
// chips and modes and cannot be derived by formula.

// colEntry is one pin's resolution: a column offset, or the
// diagnostic explaining why the pin is unusable.
type colEntry struct {
	col int
	err *Error
}

func in(col int) colEntry { return colEntry{col: col} }

func bad(pin int) colEntry {
	return colEntry{err: &Error{Code: BadAnalysis, Pin: pin}}
}

func pwr() colEntry {
	return colEntry{err: &Error{Code: BadPower}}
}

func reg(pin int, name string) colEntry {
	return colEntry{err: &Error{Code: ReservedRegisteredInput, Pin: pin, Name: name}}
}

func cplx(pin int) colEntry {
	return colEntry{err: &Error{Code: NotComplexModeInput, Pin: pin}}
}

func ra10(pin int, name string) colEntry {
	return colEntry{err: &Error{Code: ReservedRA10Input, Pin: pin, Name: name}}
}

// GAL16V8
var pinToCol16Simple = []colEntry{
	in(2), in(0), in(4), in(8), in(12), in(16), in(20), in(24), in(28), pwr(),
	in(30), in(26), in(22), in(18), bad(15), bad(16), in(14), in(10), in(6), pwr(),
}

var pinToCol16Complex = []colEntry{
	in(2), in(0), in(4), in(8), in(12), in(16), in(20), in(24), in(28), pwr(),
	in(30), cplx(12), in(26), in(22), in(18), in(14), in(10), in(6), cplx(19), pwr(),
}

var pinToCol16Registered = []colEntry{
	reg(1, "Clock"), in(0), in(4), in(8), in(12), in(16), in(20), in(24), in(28), pwr(),
	reg(11, "/OE"), in(30), in(26), in(22), in(18), in(14), in(10), in(6), in(2), pwr(),
}

// GAL20V8
var pinToCol20Simple = []colEntry{
	in(2), in(0), in(4), in(8), in(12), in(16), in(20), in(24), in(28), in(32), in(36), pwr(),
	in(38), in(34), in(30), in(26), in(22), bad(18), bad(19), in(18), in(14), in(10), in(6), pwr(),
}

var pinToCol20Complex = []colEntry{
	in(2), in(0), in(4), in(8), in(12), in(16), in(20), in(24), in(28), in(32), in(36), pwr(),
	in(38), in(34), cplx(15), in(30), in(26), in(22), in(18), in(14), in(10), cplx(22), in(6), pwr(),
}

var pinToCol20Registered = []colEntry{
	reg(1, "Clock"), in(0), in(4), in(8), in(12), in(16), in(20), in(24), in(28), in(32), in(36), pwr(),
	reg(13, "/OE"), in(38), in(34), in(30), in(26), in(22), in(18), in(14), in(10), in(6), in(2), pwr(),
}

// GAL22V10
var pinToCol22V10 = []colEntry{
	in(0), in(4), in(8), in(12), in(16), in(20), in(24), in(28), in(32), in(36), in(40), pwr(),
	in(42), in(38), in(34), in(30), in(26), in(22), in(18), in(14), in(10), in(6), in(2), pwr(),
}

// GAL20RA10
var pinToCol20RA10 = []colEntry{
	ra10(1, "/PL"), in(0), in(4), in(8), in(12), in(16), in(20), in(24), in(28), in(32), in(36), pwr(),
	ra10(13, "/OE"), in(38), in(34), in(30), in(26), in(22), in(18), in(14), in(10), in(6), in(2), pwr(),
}

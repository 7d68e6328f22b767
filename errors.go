package gal

import "fmt"

// Suffix identifies the equation suffix a diagnostic refers to.
type Suffix int

const (
	SuffixNone Suffix = iota
	SuffixE
	SuffixCLK
	SuffixARST
	SuffixAPRST
)

func (s Suffix) String() string {
	switch s {
	case SuffixE:
		return "E"
	case SuffixCLK:
		return "CLK"
	case SuffixARST:
		return "ARST"
	case SuffixAPRST:
		return "APRST"
	default:
		return "?"
	}
}

// Code classifies a build diagnostic.
type Code int

const (
	// BadAnalysis: pin has no fuse column in the current mode.
	BadAnalysis Code = iota + 1
	// BadPower: VCC or GND pin used in an equation.
	BadPower
	// ReservedRegisteredInput: pin is committed to Clock or /OE duty
	// in registered mode.
	ReservedRegisteredInput
	// NotComplexModeInput: pin is committed to output/feedback duty
	// in complex mode.
	NotComplexModeInput
	// ReservedRA10Input: pin is a fixed control line on the GAL20RA10.
	ReservedRA10Input
	// MoreThanOneProduct: OR of several products written to a
	// single-row field.
	MoreThanOneProduct
	// TooManyProducts: more products than the field has rows.
	TooManyProducts
	// DisallowedControl: .CLK/.ARST/.APRST used on a chip without
	// those lines.
	DisallowedControl
	// UndefinedOutput: control or enable equation on an OLMC with no
	// output equation.
	UndefinedOutput
	// InvalidControl: control equation on a non-registered output.
	InvalidControl
	// NoClock: registered output without a .CLK equation.
	NoClock
	// TristateReg: tristate enable on a registered output where the
	// chip forbids it.
	TristateReg
	// UnmatchedTristate: tristate enable on a plain combinatorial
	// output.
	UnmatchedTristate
)

// Error is a build diagnostic tagged with the source line of the
// equation that caused it. Detail fields are populated per Code.
type Error struct {
	Code Code
	Line int

	Pin    int
	Name   string
	Suffix Suffix
	Max    int
	Seen   int
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.detail())
}

func (e *Error) detail() string {
	switch e.Code {
	case BadAnalysis:
		return fmt.Sprintf("pin %d cannot be used as an input in this mode", e.Pin)
	case BadPower:
		return "VCC and GND pins cannot be used in equations"
	case ReservedRegisteredInput:
		return fmt.Sprintf("pin %d is reserved for %s in registered mode", e.Pin, e.Name)
	case NotComplexModeInput:
		return fmt.Sprintf("pin %d is not an input in complex mode", e.Pin)
	case ReservedRA10Input:
		return fmt.Sprintf("pin %d is reserved for %s on this chip", e.Pin, e.Name)
	case MoreThanOneProduct:
		return "more than one product term in sum"
	case TooManyProducts:
		return fmt.Sprintf("too many product terms in sum (max %d, seen %d)", e.Max, e.Seen)
	case DisallowedControl:
		return fmt.Sprintf(".%s is not supported by this chip", e.Suffix)
	case UndefinedOutput:
		return fmt.Sprintf(".%s used without an output definition", e.Suffix)
	case InvalidControl:
		return fmt.Sprintf(".%s is only allowed on registered outputs", e.Suffix)
	case NoClock:
		return "registered output is missing a .CLK equation"
	case TristateReg:
		return "tristate enable is not allowed on registered outputs for this chip"
	case UnmatchedTristate:
		return ".E used without a tristate output"
	default:
		return "unknown error"
	}
}

// atLine returns a copy of err tagged with the given source line.
func atLine(line int, err *Error) *Error {
	if err == nil {
		return nil
	}
	e := *err
	e.Line = line
	return &e
}

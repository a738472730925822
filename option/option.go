// Package option holds the payoff and exercise vocabulary shared by the
// pricing engines.
package option

import "math"

// Type identifies the option payoff direction.
type Type int

const (
	Call Type = 1
	Put  Type = -1
)

// Valid reports whether t is one of the defined payoff types.
func (t Type) Valid() bool {
	return t == Call || t == Put
}

func (t Type) String() string {
	switch t {
	case Call:
		return "Call"
	case Put:
		return "Put"
	default:
		return "Unknown"
	}
}

// Payoff evaluates the plain-vanilla payoff at the given spot level.
func (t Type) Payoff(spot, strike float64) float64 {
	return math.Max(float64(t)*(spot-strike), 0)
}

// Exercise identifies the exercise style.
type Exercise int

const (
	European Exercise = iota
	American
	Bermudan
)

// Valid reports whether e is one of the defined exercise styles.
func (e Exercise) Valid() bool {
	switch e {
	case European, American, Bermudan:
		return true
	}
	return false
}

func (e Exercise) String() string {
	switch e {
	case European:
		return "European"
	case American:
		return "American"
	case Bermudan:
		return "Bermudan"
	default:
		return "Unknown"
	}
}

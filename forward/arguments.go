// Package forward implements strike-resetting (forward-start) option
// engines as decorators over a plain-option delegate engine: the forward
// problem is projected onto an equivalent problem the delegate can solve,
// and the delegate's output is reinterpreted afterwards.
package forward

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/optlib/engine"
)

// Arguments describes a forward-starting option: the plain option block
// plus the moneyness at which the strike will be fixed and the date it is
// fixed on. The Strike field of the embedded block is ignored; the
// effective strike is Moneyness times the underlying's level at ResetDate.
type Arguments struct {
	engine.Option
	Moneyness float64
	ResetDate time.Time
}

// Validate runs the base validation first, then the forward-specific
// invariants in order, stopping at the first violation. Any failure is a
// configuration error: the request is unpriceable as posed.
//
// The base block is validated with a placeholder strike: the effective
// strike does not exist until projection time, and the projected record is
// validated again then.
func (a *Arguments) Validate() error {
	base := a.Option
	base.Strike = 1
	if err := base.Validate(); err != nil {
		return err
	}
	if a.Moneyness == 0 {
		return fmt.Errorf("forward.Arguments.Validate: null moneyness given")
	}
	if a.Moneyness < 0 || math.IsNaN(a.Moneyness) || math.IsInf(a.Moneyness, 0) {
		return fmt.Errorf("forward.Arguments.Validate: negative or non-finite moneyness given (%v)", a.Moneyness)
	}
	if a.ResetDate.IsZero() {
		return fmt.Errorf("forward.Arguments.Validate: null reset date given")
	}
	resetTime := a.ResetTime(a.ResetDate)
	if resetTime < 0 {
		return fmt.Errorf("forward.Arguments.Validate: negative reset time given (%v)", resetTime)
	}
	if resetTime > a.Maturity {
		return fmt.Errorf("forward.Arguments.Validate: reset time (%v) greater than maturity (%v)",
			resetTime, a.Maturity)
	}
	return nil
}

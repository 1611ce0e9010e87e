// Package regulator turns a heading error into a bounded steering-motor
// voltage with PID shaping, a deadband and an anti-stall floor.
package regulator

import "math"

// Config holds the gains and limits for one module's steering regulator.
type Config struct {
	KP float64
	KI float64
	KD float64

	// Tolerance is the deadband in degrees: at or below this error
	// magnitude the output is forced to zero and the module reports on
	// target.
	Tolerance float64

	// MaxOutput and MinOutput are voltage magnitudes.  Output is clamped
	// to MaxOutput; outside the deadband it is pushed up to at least
	// MinOutput so the steering gear's static friction can't stall it.
	MaxOutput float64
	MinOutput float64

	// SignedIntegral switches the integral term to textbook signed
	// accumulation.  The default sums |error|, matching the drivetrain
	// this was tuned against; that sum can only grow, so leave KI at zero
	// unless you want the windup too.
	SignedIntegral bool
}

// Output is the result of one regulator step.
type Output struct {
	Voltage  float64
	OnTarget bool
}

// Regulator carries the PID state for one module between control cycles.
// It is not safe for concurrent use; each module has exactly one.
type Regulator struct {
	config Config

	integral  float64
	lastError float64
}

func New(config Config) *Regulator {
	return &Regulator{config: config}
}

// Config returns the current gains and limits.
func (r *Regulator) Config() Config {
	return r.config
}

// SetConfig replaces the gains and limits without touching the accumulated
// state, so gains can be tuned while the loop is running.
func (r *Regulator) SetConfig(config Config) {
	r.config = config
}

// Step runs one PID cycle over the latest heading error and returns the
// voltage to command.  The integral accumulates before the deadband check so
// the regulator reacts the same cycle the error crosses back out of
// tolerance.
func (r *Regulator) Step(errorAngle float64) Output {
	c := &r.config

	proportional := errorAngle * c.KP

	if math.Abs(errorAngle) >= c.Tolerance {
		if c.SignedIntegral {
			r.integral += errorAngle
		} else {
			r.integral += math.Abs(errorAngle)
		}
	}
	derivative := errorAngle - r.lastError
	r.lastError = errorAngle

	voltage := -1 * (proportional + r.integral*c.KI + derivative*c.KD)

	// Clamp to the maximum magnitude.  The direction comes from the
	// error's sign, not the raw output's, so a wound-up integral can't
	// push the module the wrong way.
	if math.Abs(voltage) > c.MaxOutput {
		if errorAngle < 0 {
			voltage = c.MaxOutput
		} else {
			voltage = -c.MaxOutput
		}
	}

	if math.Abs(errorAngle) <= c.Tolerance {
		return Output{Voltage: 0, OnTarget: true}
	}

	if math.Abs(voltage) < c.MinOutput {
		if errorAngle < 0 {
			voltage = c.MinOutput
		} else {
			voltage = -c.MinOutput
		}
	}
	return Output{Voltage: voltage}
}

// Reset clears the accumulated integral and derivative history.  Nothing
// calls this automatically; state deliberately persists across target
// changes and across re-entry into the deadband.
func (r *Regulator) Reset() {
	r.integral = 0
	r.lastError = 0
}

// Integral returns the accumulated integral term.
func (r *Regulator) Integral() float64 {
	return r.integral
}

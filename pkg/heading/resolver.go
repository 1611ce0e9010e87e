// Package heading converts raw absolute-encoder readings into module
// headings and computes the minimal rotation needed to reach a target.
package heading

import (
	"github.com/team-vortex/swervebot/go-controller/pkg/angle"
)

// Drive direction flags, multiplied into the wheel speed command.
const (
	Forward = 1.0
	Reverse = -1.0
)

// ErrorResult is the outcome of resolving a target heading against the
// current one.
type ErrorResult struct {
	// Error is the signed rotation in degrees that aligns the module with
	// the target or its reciprocal, always in [-90, 90].
	Error float64
	// ReverseDrive is Forward (+1) or Reverse (-1); it is applied to the
	// wheel speed so that steering never has to travel more than 90
	// degrees.
	ReverseDrive float64
}

// Resolver owns the angular calibration for one steerable module.  It is not
// safe for concurrent use; each module has exactly one.
type Resolver struct {
	initAngle angle.Degrees
	offset    float64
}

// SetReference records the module's physical heading at the moment the given
// raw encoder fraction was sampled.  It replaces any previous calibration.
func (r *Resolver) SetReference(rawFraction float64, initAngle angle.Degrees) {
	r.initAngle = initAngle
	r.offset = rawFraction*360 - initAngle.Float()
}

// InitAngle returns the heading supplied at calibration time.
func (r *Resolver) InitAngle() angle.Degrees {
	return r.initAngle
}

// Normalize converts a raw absolute-encoder fraction in [0, 1) to the module
// heading.  The encoder can drift at most one turn relative to the stored
// offset, so a single +-360 step puts the result in range; inputs that break
// that precondition are folded the long way rather than propagated out of
// range.
func (r *Resolver) Normalize(rawFraction float64) angle.Degrees {
	calculated := rawFraction*360 - r.offset

	if calculated >= 360 {
		calculated -= 360
	} else if calculated < 0 {
		calculated += 360
	}

	// FromFloat is a no-op for in-range values.
	return angle.FromFloat(calculated)
}

// ResolveError computes the signed minimal-rotation error between target and
// current, and which way to run the drive motor.  A wheel pointed 180
// degrees from the commanded heading and driven in reverse moves the robot
// the same way, so when the target is 90..270 degrees away we steer for the
// reciprocal heading instead and flip the drive direction.  Boundaries are
// half-open: a delta of exactly 90 or 180 takes the reverse branch, exactly
// 270 takes the wrapped forward branch.
func (r *Resolver) ResolveError(target, current angle.Degrees) ErrorResult {
	delta := target.Sub(current).Float()

	switch {
	case delta < 90:
		return ErrorResult{Error: delta, ReverseDrive: Forward}
	case delta < 270:
		return ErrorResult{Error: delta - 180, ReverseDrive: Reverse}
	default:
		// Short path wrapping back through zero.
		return ErrorResult{Error: delta - 360, ReverseDrive: Forward}
	}
}

// Package swervemodule ties the calibration, the steering regulator and the
// hardware together for one steerable wheel of a swerve drivetrain.
package swervemodule

import (
	"github.com/pkg/errors"

	"github.com/team-vortex/swervebot/go-controller/pkg/angle"
	"github.com/team-vortex/swervebot/go-controller/pkg/hardware"
	"github.com/team-vortex/swervebot/go-controller/pkg/heading"
	"github.com/team-vortex/swervebot/go-controller/pkg/regulator"
)

// Status reports what one control cycle did, for telemetry.
type Status struct {
	Heading  angle.Degrees
	Error    float64
	Voltage  float64
	OnTarget bool
	Reversed bool
}

// Module is one steerable wheel.  It owns its resolver and regulator state
// exclusively; the external periodic driver calls Cycle once per control
// period, sequentially across modules, so no locking is needed.
type Module struct {
	Number int

	resolver  heading.Resolver
	regulator *regulator.Regulator

	encoder    hardware.AbsoluteEncoder
	angleMotor hardware.AngleMotor
	driveMotor hardware.DriveMotor
}

func New(
	number int,
	regCfg regulator.Config,
	encoder hardware.AbsoluteEncoder,
	angleMotor hardware.AngleMotor,
	driveMotor hardware.DriveMotor,
) *Module {
	return &Module{
		Number:     number,
		regulator:  regulator.New(regCfg),
		encoder:    encoder,
		angleMotor: angleMotor,
		driveMotor: driveMotor,
	}
}

// ConfigureMotors applies the current limits and sets the drive motor to
// coast when idle.
func (m *Module) ConfigureMotors(angleLimitAmps, driveLimitAmps int) error {
	if err := m.angleMotor.SetCurrentLimit(angleLimitAmps); err != nil {
		return errors.Wrapf(err, "module %d: angle motor current limit", m.Number)
	}
	if err := m.driveMotor.SetCurrentLimit(driveLimitAmps); err != nil {
		return errors.Wrapf(err, "module %d: drive motor current limit", m.Number)
	}
	if err := m.driveMotor.SetIdleCoast(); err != nil {
		return errors.Wrapf(err, "module %d: drive motor idle mode", m.Number)
	}
	return nil
}

// Calibrate samples the encoder once and records initAngle as the module's
// physical heading at that moment.  Call it at startup with the wheels held
// in a known position.
func (m *Module) Calibrate(initAngle angle.Degrees) {
	m.resolver.SetReference(m.encoder.AbsolutePosition(), initAngle)
}

// Cycle runs one control period: read the encoder, resolve the minimal-path
// error against the target, step the PID and command both motors.  speed is
// the externally supplied wheel speed magnitude; it is flipped when driving
// the reciprocal heading.
func (m *Module) Cycle(target angle.Degrees, speed float64) Status {
	current := m.resolver.Normalize(m.encoder.AbsolutePosition())
	result := m.resolver.ResolveError(target, current)
	out := m.regulator.Step(result.Error)

	m.angleMotor.SetVoltage(out.Voltage)
	m.driveMotor.SetSpeed(speed * result.ReverseDrive)

	return Status{
		Heading:  current,
		Error:    result.Error,
		Voltage:  out.Voltage,
		OnTarget: out.OnTarget,
		Reversed: result.ReverseDrive == heading.Reverse,
	}
}

// Stop zeroes both motor commands.
func (m *Module) Stop() {
	m.angleMotor.SetVoltage(0)
	m.driveMotor.SetSpeed(0)
}

// Regulator exposes the steering regulator so gains can be tuned live.
func (m *Module) Regulator() *regulator.Regulator {
	return m.regulator
}

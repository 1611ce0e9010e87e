package swervemodule

import (
	"math"
	"testing"
	"time"

	"github.com/team-vortex/swervebot/go-controller/pkg/angle"
	"github.com/team-vortex/swervebot/go-controller/pkg/hardware"
	"github.com/team-vortex/swervebot/go-controller/pkg/regulator"
)

func newTestModule() (*Module, *hardware.DummyEncoder, *hardware.DummyAngleMotor, *hardware.DummyDriveMotor) {
	motor := hardware.NewDummyAngleMotor()
	motor.Quiet = true
	drive := hardware.NewDummyDriveMotor()
	drive.Quiet = true
	enc := hardware.NewDummyEncoder(motor)

	m := New(0, regulator.Config{
		KP:        0.05,
		Tolerance: 1,
		MinOutput: 0.3,
		MaxOutput: 5,
	}, enc, motor, drive)
	return m, enc, motor, drive
}

func TestCycleCommandsMotors(t *testing.T) {
	m, enc, motor, drive := newTestModule()
	enc.SetPosition(0.25)
	m.Calibrate(angle.FromFloat(0))

	// Target 20 degrees ahead: forward drive, negative steering voltage.
	st := m.Cycle(angle.FromFloat(20), 0.8)
	if st.Heading.Float() != 0 {
		t.Fatalf("heading = %v, expected 0 straight after calibration", st.Heading.Float())
	}
	if st.Error != 20 {
		t.Errorf("error = %v, expected 20", st.Error)
	}
	if st.Reversed {
		t.Errorf("unexpected reverse for a 20 degree error")
	}
	if motor.Voltage() != -1 {
		t.Errorf("angle motor voltage = %v, expected -1 (kP 0.05 * 20, negated)", motor.Voltage())
	}
	if drive.Speed() != 0.8 {
		t.Errorf("drive speed = %v, expected 0.8", drive.Speed())
	}
}

func TestCycleReversesDrive(t *testing.T) {
	m, enc, _, drive := newTestModule()
	enc.SetPosition(0.5)
	m.Calibrate(angle.FromFloat(0))

	// Target 160 away: module steers for the reciprocal and the wheel
	// speed flips sign.
	st := m.Cycle(angle.FromFloat(160), 0.8)
	if !st.Reversed {
		t.Fatalf("expected reverse for a 160 degree delta")
	}
	if st.Error != -20 {
		t.Errorf("error = %v, expected -20", st.Error)
	}
	if drive.Speed() != -0.8 {
		t.Errorf("drive speed = %v, expected -0.8", drive.Speed())
	}
}

func TestCycleConverges(t *testing.T) {
	m, enc, _, _ := newTestModule()
	enc.SetPosition(0.1)
	m.Calibrate(angle.FromFloat(0))

	target := angle.FromFloat(70)
	const period = 20 * time.Millisecond

	var st Status
	for i := 0; i < 500; i++ {
		st = m.Cycle(target, 0)
		enc.Advance(period)
	}
	if !st.OnTarget {
		t.Fatalf("module did not settle: %+v", st)
	}
	if math.Abs(st.Error) > 1 {
		t.Fatalf("settled with error %v outside tolerance", st.Error)
	}
}

func TestStopZeroesMotors(t *testing.T) {
	m, enc, motor, drive := newTestModule()
	enc.SetPosition(0)
	m.Calibrate(angle.FromFloat(0))
	m.Cycle(angle.FromFloat(45), 1)
	m.Stop()
	if motor.Voltage() != 0 || drive.Speed() != 0 {
		t.Errorf("after Stop: voltage=%v speed=%v, expected both 0", motor.Voltage(), drive.Speed())
	}
}

func TestConfigureMotors(t *testing.T) {
	m, _, _, _ := newTestModule()
	if err := m.ConfigureMotors(20, 40); err != nil {
		t.Fatalf("ConfigureMotors failed: %v", err)
	}
}

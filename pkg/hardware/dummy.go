package hardware

import (
	"fmt"
	"math"
	"time"
)

// Dummy implementations for running the control loop without a robot.

type DummyAngleMotor struct {
	Quiet bool

	volts float64
}

func NewDummyAngleMotor() *DummyAngleMotor {
	return &DummyAngleMotor{}
}

func (d *DummyAngleMotor) SetVoltage(volts float64) {
	if !d.Quiet {
		fmt.Printf("DHW: angle motor voltage=%.3f\n", volts)
	}
	d.volts = volts
}

func (d *DummyAngleMotor) SetCurrentLimit(amps int) error {
	fmt.Printf("DHW: angle motor current limit=%dA\n", amps)
	return nil
}

// Voltage returns the last commanded voltage.
func (d *DummyAngleMotor) Voltage() float64 {
	return d.volts
}

var _ AngleMotor = (*DummyAngleMotor)(nil)

type DummyDriveMotor struct {
	Quiet bool

	speed float64
}

func NewDummyDriveMotor() *DummyDriveMotor {
	return &DummyDriveMotor{}
}

func (d *DummyDriveMotor) SetSpeed(speed float64) {
	if !d.Quiet {
		fmt.Printf("DHW: drive motor speed=%.3f\n", speed)
	}
	d.speed = speed
}

func (d *DummyDriveMotor) SetCurrentLimit(amps int) error {
	fmt.Printf("DHW: drive motor current limit=%dA\n", amps)
	return nil
}

func (d *DummyDriveMotor) SetIdleCoast() error {
	fmt.Println("DHW: drive motor idle mode=coast")
	return nil
}

// Speed returns the last commanded speed.
func (d *DummyDriveMotor) Speed() float64 {
	return d.speed
}

var _ DriveMotor = (*DummyDriveMotor)(nil)

// DummyEncoder simulates the absolute encoder on a steering shaft.  If it
// was built with a motor, Advance turns the shaft in proportion to the last
// commanded voltage so the loop can be run end to end and actually converge.
type DummyEncoder struct {
	position float64

	motor *DummyAngleMotor

	// DegreesPerVoltSecond is the simulated gear's response.  Negative
	// because the steering gear inverts: the regulator negates its output
	// and the real module turns towards the target.
	DegreesPerVoltSecond float64
}

func NewDummyEncoder(motor *DummyAngleMotor) *DummyEncoder {
	return &DummyEncoder{
		motor:                motor,
		DegreesPerVoltSecond: -40,
	}
}

// SetPosition moves the simulated shaft to the given fraction of a turn.
func (e *DummyEncoder) SetPosition(fraction float64) {
	e.position = fraction - math.Floor(fraction)
}

// Advance steps the simulation by dt.
func (e *DummyEncoder) Advance(dt time.Duration) {
	if e.motor == nil {
		return
	}
	e.position += e.motor.Voltage() * e.DegreesPerVoltSecond * dt.Seconds() / 360
	e.position -= math.Floor(e.position)
}

func (e *DummyEncoder) AbsolutePosition() float64 {
	return e.position
}

var _ AbsoluteEncoder = (*DummyEncoder)(nil)

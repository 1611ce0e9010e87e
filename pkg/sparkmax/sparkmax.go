// Package sparkmax is a register-map driver for the brushless motor
// controllers on the drivetrain, spoken to over i2c.
package sparkmax

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/exp/io/i2c"

	"github.com/team-vortex/swervebot/go-controller/pkg/hardware"
)

type Register byte

const (
	RegCtrl Register = iota
	RegStatus
	RegFaultCount

	RegVoltage // signed, LSB = 1mV
	RegSpeed   // signed, full scale = +-32767

	RegCurrentLimit // amps
	RegIdleMode

	RegBusV // LSB = 4mV
	RegOutputCurrent
	RegTemperature // LSB = 0.01C
)

const (
	VoltageLSB = 0.001
	SpeedScale = 32767

	BusVLSB        = 0.004
	TemperatureLSB = 0.01
)

const (
	IdleCoast uint16 = 0
	IdleBrake uint16 = 1
)

var i2cBus = &i2c.Devfs{Dev: "/dev/i2c-1"}

// Controller is one motor controller on the bus.
type Controller struct {
	dev  *i2c.Device
	addr int
}

func New(addr int) (*Controller, error) {
	dev, err := i2c.Open(i2cBus, addr)
	if err != nil {
		return nil, err
	}
	return &Controller{
		dev:  dev,
		addr: addr,
	}, nil
}

// SetVoltage commands the output voltage.  Values beyond the register range
// saturate.  Bus errors are logged, not returned; this runs on the control
// path every cycle and the next cycle's write supersedes this one.
func (c *Controller) SetVoltage(volts float64) {
	mv := volts / VoltageLSB
	if mv > math.MaxInt16 {
		mv = math.MaxInt16
	} else if mv < math.MinInt16 {
		mv = math.MinInt16
	}
	if err := c.writeReg(RegVoltage, uint16(int16(mv))); err != nil {
		fmt.Printf("SMAX: %#x failed to set voltage: %v\n", c.addr, err)
	}
}

// SetSpeed commands a signed fraction of full output in [-1, 1].
func (c *Controller) SetSpeed(speed float64) {
	if speed > 1 {
		speed = 1
	} else if speed < -1 {
		speed = -1
	}
	if err := c.writeReg(RegSpeed, uint16(int16(speed*SpeedScale))); err != nil {
		fmt.Printf("SMAX: %#x failed to set speed: %v\n", c.addr, err)
	}
}

// SetCurrentLimit caps how much current the controller lets the motor pull.
func (c *Controller) SetCurrentLimit(amps int) error {
	if amps <= 0 || amps > math.MaxUint16 {
		return fmt.Errorf("current limit out of range: %dA", amps)
	}
	return c.writeReg(RegCurrentLimit, uint16(amps))
}

// SetIdleCoast makes the motor freewheel when commanded to zero.
func (c *Controller) SetIdleCoast() error {
	return c.writeReg(RegIdleMode, IdleCoast)
}

// SetIdleBrake makes the motor resist motion when commanded to zero.
func (c *Controller) SetIdleBrake() error {
	return c.writeReg(RegIdleMode, IdleBrake)
}

func (c *Controller) BusVolts() (float32, error) {
	raw, err := c.readReg(RegBusV)
	if err != nil {
		return 0, err
	}
	return float32(raw) * BusVLSB, nil
}

func (c *Controller) TemperatureC() (float32, error) {
	raw, err := c.readReg(RegTemperature)
	if err != nil {
		return 0, err
	}
	return float32(raw) * TemperatureLSB, nil
}

func (c *Controller) FaultCount() (uint16, error) {
	return c.readReg(RegFaultCount)
}

func (c *Controller) Close() error {
	c.SetVoltage(0)
	return c.dev.Close()
}

func (c *Controller) writeReg(reg Register, value uint16) error {
	return c.dev.Write([]byte{byte(reg), byte(value >> 8), byte(value)})
}

func (c *Controller) readReg(reg Register) (uint16, error) {
	var buf [2]byte
	err := c.dev.ReadReg(byte(reg), buf[:])
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf[:]), nil
}

var _ hardware.AngleMotor = (*Controller)(nil)
var _ hardware.DriveMotor = (*Controller)(nil)

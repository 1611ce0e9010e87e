// Package thriftyenc reads a ThriftyBot analog absolute encoder through an
// MCP3008 ADC on SPI.
package thriftyenc

import (
	"fmt"

	"github.com/pkg/errors"
	"periph.io/x/periph/conn/physic"
	"periph.io/x/periph/conn/spi"
	"periph.io/x/periph/conn/spi/spireg"
	"periph.io/x/periph/host"

	"github.com/team-vortex/swervebot/go-controller/pkg/hardware"
)

const (
	adcBits = 10
	adcMax  = 1 << adcBits
)

type Encoder struct {
	port    spi.PortCloser
	conn    spi.Conn
	channel int

	lastFraction float64
}

// New opens the SPI port and prepares to read the given MCP3008 channel.
func New(deviceFile string, channel int) (*Encoder, error) {
	if channel < 0 || channel > 7 {
		return nil, errors.Errorf("MCP3008 channel out of range: %d", channel)
	}

	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "initialising periph host")
	}

	p, err := spireg.Open(deviceFile)
	if err != nil {
		return nil, errors.Wrapf(err, "opening SPI port %s", deviceFile)
	}

	c, err := p.Connect(physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		_ = p.Close()
		return nil, errors.Wrap(err, "connecting to MCP3008")
	}

	return &Encoder{
		port:    p,
		conn:    c,
		channel: channel,
	}, nil
}

// ReadRaw does one single-ended conversion and returns the 10-bit count.
func (e *Encoder) ReadRaw() (uint16, error) {
	// Start bit, then single-ended mode + channel in the top nibble of the
	// second byte; the result straddles the last 10 bits of the reply.
	w := [3]byte{0x01, 0x80 | byte(e.channel)<<4, 0x00}
	var r [3]byte
	if err := e.conn.Tx(w[:], r[:]); err != nil {
		return 0, errors.Wrap(err, "MCP3008 transaction")
	}
	return uint16(r[1]&0x03)<<8 | uint16(r[2]), nil
}

// AbsolutePosition returns the shaft position as a fraction of a turn in
// [0, 1).  A failed read repeats the last good reading rather than injecting
// a bogus step into the control loop.
func (e *Encoder) AbsolutePosition() float64 {
	raw, err := e.ReadRaw()
	if err != nil {
		fmt.Printf("ENC: read failed, reusing last reading: %v\n", err)
		return e.lastFraction
	}
	e.lastFraction = float64(raw) / adcMax
	return e.lastFraction
}

func (e *Encoder) Close() error {
	return e.port.Close()
}

var _ hardware.AbsoluteEncoder = (*Encoder)(nil)

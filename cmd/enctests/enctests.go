package main

import (
	"flag"
	"fmt"
	"math"
	"time"

	"github.com/team-vortex/swervebot/go-controller/pkg/thriftyenc"
)

// Prints readings from a module's absolute encoder so the wiring and the
// init angle in the config can be checked.  Also tracks a running circular
// mean and the spread, which shows how repeatable the alignment jig is.

func main() {
	device := flag.String("device", "/dev/spidev0.0", "SPI device for the MCP3008")
	channel := flag.Int("channel", 0, "MCP3008 channel the encoder is wired to")
	flag.Parse()

	enc, err := thriftyenc.New(*device, *channel)
	if err != nil {
		fmt.Printf("Failed to open encoder: %v\n", err)
		return
	}
	defer enc.Close()

	var sumSin, sumCos float64
	n := 0
	minRaw, maxRaw := uint16(math.MaxUint16), uint16(0)

	for {
		raw, err := enc.ReadRaw()
		if err != nil {
			fmt.Printf("Read failed: %v\n", err)
			time.Sleep(100 * time.Millisecond)
			continue
		}
		fraction := enc.AbsolutePosition()
		degrees := fraction * 360

		// Mean of a circular quantity: average the unit vectors.
		rad := degrees * math.Pi / 180
		sumSin += math.Sin(rad)
		sumCos += math.Cos(rad)
		n++
		if raw < minRaw {
			minRaw = raw
		}
		if raw > maxRaw {
			maxRaw = raw
		}

		meanDeg := math.Atan2(sumSin, sumCos) * 180 / math.Pi
		if meanDeg < 0 {
			meanDeg += 360
		}

		fmt.Printf("raw=%4d fraction=%.4f heading=%6.1f  mean=%6.1f spread=%d counts (n=%d)\n",
			raw, fraction, degrees, meanDeg, maxRaw-minRaw, n)
		time.Sleep(100 * time.Millisecond)
	}
}

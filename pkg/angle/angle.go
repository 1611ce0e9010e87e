package angle

import "math"

// Degrees is an angle in degrees, stored as a value in range [0, 360).
// All operations fold their output into range.
type Degrees struct {
	float64
}

func (a Degrees) Add(b Degrees) Degrees {
	return FromFloat(a.float64 + b.float64)
}

func (a Degrees) Sub(b Degrees) Degrees {
	return FromFloat(a.float64 - b.float64)
}

func (a Degrees) AddFloat(f float64) Degrees {
	return FromFloat(a.float64 + f)
}

func (a Degrees) SubFloat(f float64) Degrees {
	return FromFloat(a.float64 - f)
}

// Reciprocal returns the heading pointing the opposite way.
func (a Degrees) Reciprocal() Degrees {
	return FromFloat(a.float64 + 180)
}

// Float returns the angle in degrees, range [0, 360).
func (a Degrees) Float() float64 {
	return a.float64
}

// FromFloat converts a float of any magnitude to a Degrees by calculating
// f mod 360 and shifting into range.
func FromFloat(f float64) Degrees {
	d := math.Mod(f, 360)
	if d < 0 {
		d += 360
	}
	return Degrees{d}
}

package heading

import (
	"math"
	"testing"

	"github.com/team-vortex/swervebot/go-controller/pkg/angle"
)

func TestSetReferenceAndNormalize(t *testing.T) {
	var r Resolver

	// Calibrated at raw 0.25 with the wheel physically at 0: a raw
	// reading of 0.25 must normalise back to 0.
	r.SetReference(0.25, angle.FromFloat(0))
	expectNormalize(t, &r, 0.25, 0)
	expectNormalize(t, &r, 0.5, 90)
	expectNormalize(t, &r, 0.75, 180)
	expectNormalize(t, &r, 0, 270)

	// Calibrated with the wheel held at 45.
	r.SetReference(0.25, angle.FromFloat(45))
	expectNormalize(t, &r, 0.25, 45)
	expectNormalize(t, &r, 0.5, 135)

	// Recalibration overwrites, not accumulates.
	r.SetReference(0.25, angle.FromFloat(0))
	expectNormalize(t, &r, 0.25, 0)

	if got := r.InitAngle().Float(); got != 0 {
		t.Errorf("InitAngle = %v, expected 0", got)
	}
}

func TestNormalizeAlwaysInRange(t *testing.T) {
	var r Resolver
	for _, init := range []float64{0, 45, 180, 359} {
		for ref := 0.0; ref < 1; ref += 0.05 {
			r.SetReference(ref, angle.FromFloat(init))
			for raw := 0.0; raw < 1; raw += 0.01 {
				h := r.Normalize(raw).Float()
				if h < 0 || h >= 360 {
					t.Fatalf("Normalize(%v) = %v out of range (ref=%v init=%v)", raw, h, ref, init)
				}
			}
			// Out-of-domain raw values still come back in range.
			for _, raw := range []float64{-3.5, 1, 2.25, 17} {
				h := r.Normalize(raw).Float()
				if h < 0 || h >= 360 {
					t.Fatalf("Normalize(%v) = %v out of range (ref=%v init=%v)", raw, h, ref, init)
				}
			}
		}
	}
}

func TestResolveError(t *testing.T) {
	// Forward branch, delta in [0, 90).
	expectError(t, 10, 350, 20, Forward)
	expectError(t, 5, 300, 65, Forward)
	expectError(t, 0, 0, 0, Forward)
	expectError(t, 89, 0, 89, Forward)

	// Reverse branch, delta in [90, 270): steer for the reciprocal
	// heading and flip the drive.
	expectError(t, 170, 10, -20, Reverse)
	expectError(t, 90, 0, -90, Reverse)
	expectError(t, 180, 0, 0, Reverse)
	expectError(t, 269, 0, 89, Reverse)
	expectError(t, 0, 91, 89, Reverse)

	// Forward branch wrapping through zero, delta in [270, 360).
	expectError(t, 270, 0, -90, Forward)
	expectError(t, 0, 45, -45, Forward)
	expectError(t, 350, 10, -20, Forward)
}

func TestResolveErrorBounds(t *testing.T) {
	var r Resolver
	for target := 0.0; target < 360; target += 1.7 {
		for current := 0.0; current < 360; current += 1.3 {
			res := r.ResolveError(angle.FromFloat(target), angle.FromFloat(current))
			if math.Abs(res.Error) > 90 {
				t.Fatalf("ResolveError(%v, %v) error %v exceeds 90", target, current, res.Error)
			}
			if res.ReverseDrive != Forward && res.ReverseDrive != Reverse {
				t.Fatalf("ResolveError(%v, %v) direction %v undefined", target, current, res.ReverseDrive)
			}

			// Steering by the error (against the reciprocal when
			// reversed) must land on the target heading.
			aligned := angle.FromFloat(current + res.Error)
			want := angle.FromFloat(target)
			if res.ReverseDrive == Reverse {
				want = want.Reciprocal()
			}
			if diff := aligned.Sub(want).Float(); diff > 1e-6 && diff < 360-1e-6 {
				t.Fatalf("ResolveError(%v, %v): steering by %v reaches %v, wanted %v",
					target, current, res.Error, aligned.Float(), want.Float())
			}
		}
	}
}

func expectNormalize(t *testing.T, r *Resolver, raw, expected float64) {
	t.Helper()
	got := r.Normalize(raw).Float()
	if math.Abs(got-expected) > 1e-9 {
		t.Errorf("Normalize(%v) = %v, expected %v", raw, got, expected)
	}
}

func expectError(t *testing.T, target, current, expectedError, expectedDir float64) {
	t.Helper()
	var r Resolver
	res := r.ResolveError(angle.FromFloat(target), angle.FromFloat(current))
	if math.Abs(res.Error-expectedError) > 1e-9 {
		t.Errorf("ResolveError(%v, %v) error = %v, expected %v", target, current, res.Error, expectedError)
	}
	if res.ReverseDrive != expectedDir {
		t.Errorf("ResolveError(%v, %v) direction = %v, expected %v", target, current, res.ReverseDrive, expectedDir)
	}
}

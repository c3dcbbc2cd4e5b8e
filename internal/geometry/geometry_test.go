package geometry

import (
	"math"
	"testing"
)

func testLayout() Layout {
	return Layout{Stripes: 16, LEDs: 67, StripeSpacing: 70, LEDSpacing: 5, LEDSize: 8}
}

func TestLinearIsCentered(t *testing.T) {
	l := testLayout()
	first := l.Linear(0, 0, 1600, 900)
	next := l.Linear(1, 1, 1600, 900)
	if math.Abs(next.X-first.X-78) > 1e-9 || math.Abs(next.Y-first.Y-13) > 1e-9 {
		t.Fatalf("unexpected spacing: %+v -> %+v", first, next)
	}
	wantX := (1600 - 16*78.0) / 2
	wantY := (900 - 67*13.0) / 2
	if first.X != wantX || first.Y != wantY {
		t.Fatalf("origin=%+v want (%f,%f)", first, wantX, wantY)
	}
}

func TestCircularRadiusBounded(t *testing.T) {
	l := testLayout()
	for _, theta := range []float64{0, 0.5, 3, 10} {
		for i := 0; i < l.Stripes; i++ {
			for j := 0; j < l.LEDs; j++ {
				p := l.Circular(i, j, theta, 1600, 900)
				d := Distance(p.X-800, p.Y-450)
				want := 450 * (1 - float64(j)/float64(l.LEDs))
				if math.Abs(d-want) > 1e-6 {
					t.Fatalf("(%d,%d) radius=%f want %f", i, j, d, want)
				}
			}
		}
	}
}

func TestCircularAngle(t *testing.T) {
	l := testLayout()
	p := l.Circular(4, 0, 0, 1000, 1000)
	// stripe 4 of 16 sits at 90 degrees
	if math.Abs(p.X-500) > 1e-9 || math.Abs(p.Y-1000) > 1e-9 {
		t.Fatalf("quarter turn position %+v", p)
	}
	rotated := l.Circular(0, 0, math.Pi/2, 1000, 1000)
	if math.Abs(rotated.X-p.X) > 1e-9 || math.Abs(rotated.Y-p.Y) > 1e-9 {
		t.Fatalf("theta offset mismatch %+v vs %+v", rotated, p)
	}
}

func TestProjectDeterministic(t *testing.T) {
	l := testLayout()
	a := l.Project(ModeCircular, 3, 7, 1.25, 800, 600)
	b := l.Project(ModeCircular, 3, 7, 1.25, 800, 600)
	if a != b {
		t.Fatalf("projection not deterministic: %+v %+v", a, b)
	}
	if l.Project(ModeLinear, 3, 7, 1.25, 800, 600) != l.Linear(3, 7, 800, 600) {
		t.Fatalf("linear projection mismatch")
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(3, 4); got != 5 {
		t.Fatalf("Distance(3,4)=%f", got)
	}
}

func TestFieldRatioBounds(t *testing.T) {
	for name, f := range map[string]Field{
		"circular":   CircularField(16, 67),
		"elliptical": EllipticalField(16, 67),
	} {
		if f.MaxDistance() <= 0 {
			t.Fatalf("%s: max distance %f", name, f.MaxDistance())
		}
		for i := 0; i < 16; i++ {
			for j := 0; j < 67; j++ {
				r := f.Ratio(i, j)
				if r < 0 || r > 1 {
					t.Fatalf("%s: ratio(%d,%d)=%f", name, i, j, r)
				}
			}
		}
	}
}

func TestCircularFieldCenter(t *testing.T) {
	f := CircularField(16, 66)
	if d := f.Distance(8, 33); d != 0 {
		t.Fatalf("center distance=%f", d)
	}
}

func TestRotationMonotonic(t *testing.T) {
	r := NewRotation(0.01)
	prev := r.Angle()
	for i := 0; i < 100; i++ {
		next := r.Advance()
		if next <= prev {
			t.Fatalf("rotation went backwards: %f -> %f", prev, next)
		}
		prev = next
	}
	if math.Abs(prev-1.0) > 1e-9 {
		t.Fatalf("after 100 ticks angle=%f want 1.0", prev)
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"linear":   ModeLinear,
		"Circular": ModeCircular,
		" radial ": ModeCircular,
	}
	for in, want := range cases {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseMode(%q)=%q,%v want %q", in, got, err, want)
		}
	}
	if _, err := ParseMode("spiral"); err == nil {
		t.Fatalf("expected error for unknown layout")
	}
}

package geometry

// Field measures element offsets from the wall center in abstract units.
// Ring and rainbow animations index their buffers by these distances.
type Field struct {
	StripeScale  float64
	LEDScale     float64
	StripeCenter float64
	LEDCenter    float64
	maxDistance  float64
}

// CircularField spaces stripes 70 units apart and elements 5 apart, centered
// on stripe S/2 and element L/2.
func CircularField(stripes, leds int) Field {
	f := Field{
		StripeScale:  70,
		LEDScale:     5,
		StripeCenter: float64(stripes) / 2,
		LEDCenter:    float64(leds) / 2,
	}
	f.maxDistance = Distance(f.StripeScale*float64(stripes)/2, f.LEDScale*float64(leds)/2)
	return f
}

// EllipticalField squeezes the stripe axis so that pulses form ellipses.
func EllipticalField(stripes, leds int) Field {
	f := Field{
		StripeScale:  4,
		LEDScale:     1,
		StripeCenter: float64(stripes-1) / 2,
		LEDCenter:    float64(leds) / 2,
	}
	f.maxDistance = Distance(f.StripeScale*float64(stripes)/2, f.LEDScale*float64(leds)/2)
	return f
}

// Offset is the planar position of element (i, j) relative to the center.
func (f Field) Offset(i, j int) (x, y float64) {
	x = (float64(i) - f.StripeCenter) * f.StripeScale
	y = (float64(j) - f.LEDCenter) * f.LEDScale
	return x, y
}

// Distance of element (i, j) from the center.
func (f Field) Distance(i, j int) float64 {
	return Distance(f.Offset(i, j))
}

// MaxDistance is the reference distance the field normalizes against.
func (f Field) MaxDistance() float64 {
	return f.maxDistance
}

// Ratio is Distance(i, j) / MaxDistance, clamped to [0,1].
func (f Field) Ratio(i, j int) float64 {
	if f.maxDistance <= 0 {
		return 0
	}
	r := f.Distance(i, j) / f.maxDistance
	if r > 1 {
		return 1
	}
	return r
}

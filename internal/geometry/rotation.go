package geometry

// Rotation is the slowly increasing angular offset of the circular layout.
// It is owned by the render loop and advanced once per tick.
type Rotation struct {
	Speed float64
	angle float64
}

// NewRotation starts at angle zero.
func NewRotation(speed float64) *Rotation {
	return &Rotation{Speed: speed}
}

// Advance adds one tick worth of rotation and returns the new angle.
func (r *Rotation) Advance() float64 {
	r.angle += r.Speed
	return r.angle
}

// Angle returns the current offset in radians.
func (r *Rotation) Angle() float64 {
	return r.angle
}

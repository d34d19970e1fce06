package core

// Ray represents a ray with an origin and direction
type Ray struct {
	Origin    Point
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin Point, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Point {
	return r.Origin.Add(r.Direction.Multiply(t))
}

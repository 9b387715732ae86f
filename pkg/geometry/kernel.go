package geometry

import "math"

// DistToSegment returns the shortest distance from p to the segment a-b.
func DistToSegment(p, a, b Point2D) float64 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := a.Add(ab.Scale(t))
	return p.Distance(closest)
}

// RotateAbout rotates p around the pivot by the given angle in radians.
func RotateAbout(p, pivot Point2D, radians float64) Point2D {
	cos := math.Cos(radians)
	sin := math.Sin(radians)
	dx := p.X - pivot.X
	dy := p.Y - pivot.Y
	return Point2D{
		X: pivot.X + dx*cos - dy*sin,
		Y: pivot.Y + dx*sin + dy*cos,
	}
}

// ReflectAcross reflects p across the infinite line through a and b.
// A zero-length line leaves the point unchanged.
func ReflectAcross(p, a, b Point2D) Point2D {
	return ReflectionAcross(a, b).Apply(p)
}

// LineAngle returns the angle of the direction vector a->b in radians.
func LineAngle(a, b Point2D) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// Snap rounds a grid coordinate to the nearest half unit.
func Snap(v float64) float64 {
	return math.Round(v*2) / 2
}

// SnapPoint rounds both coordinates of a grid point to the nearest half unit.
func SnapPoint(p Point2D) Point2D {
	return Point2D{X: Snap(p.X), Y: Snap(p.Y)}
}

// Round4 rounds to 4 decimal places. Reflected coordinates are rounded so
// floating-point drift cannot accumulate across repeated mirrors.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// Round4Point rounds both coordinates to 4 decimal places.
func Round4Point(p Point2D) Point2D {
	return Point2D{X: Round4(p.X), Y: Round4(p.Y)}
}

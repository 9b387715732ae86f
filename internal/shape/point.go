package shape

import (
	"math"

	"tikz-cad/pkg/geometry"
)

// Point-based shapes rotate and reflect every defining coordinate
// independently; they never carry an accumulated rotation field.

func reflect4(p geometry.Point2D, a, b geometry.Point2D) geometry.Point2D {
	return geometry.Round4Point(geometry.ReflectAcross(p, a, b))
}

// Line is a straight segment between two endpoints.
type Line struct {
	Attr   Attrs
	P1, P2 geometry.Point2D
}

func (l *Line) Attrs() *Attrs { return &l.Attr }
func (l *Line) Kind() Kind    { return KindLine }

func (l *Line) Bounds() geometry.Rect {
	return geometry.RectFromCorners(l.P1, l.P2)
}

func (l *Line) Translate(d geometry.Point2D) {
	l.P1 = l.P1.Add(d)
	l.P2 = l.P2.Add(d)
}

func (l *Line) RotateAbout(pivot geometry.Point2D, radians float64) {
	l.P1 = geometry.RotateAbout(l.P1, pivot, radians)
	l.P2 = geometry.RotateAbout(l.P2, pivot, radians)
}

func (l *Line) ReflectAcross(a, b geometry.Point2D) {
	l.P1 = reflect4(l.P1, a, b)
	l.P2 = reflect4(l.P2, a, b)
}

func (l *Line) Hits(p geometry.Point2D, tol float64) bool {
	return geometry.DistToSegment(p, l.P1, l.P2) <= tol
}

func (l *Line) Handles() []Handle {
	return []Handle{{HandleStart, l.P1}, {HandleEnd, l.P2}}
}

func (l *Line) DragHandle(name HandleName, delta geometry.Point2D) {
	switch name {
	case HandleStart:
		l.P1 = l.P1.Add(delta)
	case HandleEnd:
		l.P2 = l.P2.Add(delta)
	case HandleMove:
		l.Translate(delta)
	}
}

func (l *Line) Clone() Shape {
	c := *l
	return &c
}

// Freehand is an ordered polyline of grid points. Intermediate points are
// captured unsnapped for smoothness.
type Freehand struct {
	Attr   Attrs
	Points []geometry.Point2D
}

func (f *Freehand) Attrs() *Attrs { return &f.Attr }
func (f *Freehand) Kind() Kind    { return KindFreehand }

func (f *Freehand) Bounds() geometry.Rect {
	return geometry.BoundingBox(f.Points)
}

func (f *Freehand) Translate(d geometry.Point2D) {
	for i := range f.Points {
		f.Points[i] = f.Points[i].Add(d)
	}
}

func (f *Freehand) RotateAbout(pivot geometry.Point2D, radians float64) {
	for i := range f.Points {
		f.Points[i] = geometry.RotateAbout(f.Points[i], pivot, radians)
	}
}

func (f *Freehand) ReflectAcross(a, b geometry.Point2D) {
	for i := range f.Points {
		f.Points[i] = reflect4(f.Points[i], a, b)
	}
}

func (f *Freehand) Hits(p geometry.Point2D, tol float64) bool {
	if len(f.Points) == 1 {
		return p.Distance(f.Points[0]) <= tol
	}
	for i := 0; i+1 < len(f.Points); i++ {
		if geometry.DistToSegment(p, f.Points[i], f.Points[i+1]) <= tol {
			return true
		}
	}
	return false
}

func (f *Freehand) Handles() []Handle {
	if len(f.Points) == 0 {
		return nil
	}
	return []Handle{
		{HandleStart, f.Points[0]},
		{HandleEnd, f.Points[len(f.Points)-1]},
	}
}

func (f *Freehand) DragHandle(name HandleName, delta geometry.Point2D) {
	if len(f.Points) == 0 {
		return
	}
	switch name {
	case HandleStart:
		f.Points[0] = f.Points[0].Add(delta)
	case HandleEnd:
		f.Points[len(f.Points)-1] = f.Points[len(f.Points)-1].Add(delta)
	case HandleMove:
		f.Translate(delta)
	}
}

func (f *Freehand) Clone() Shape {
	c := *f
	c.Points = append([]geometry.Point2D(nil), f.Points...)
	return &c
}

// Bezier is a cubic curve between two endpoints with two control points.
type Bezier struct {
	Attr   Attrs
	P1, P2 geometry.Point2D
	C1, C2 geometry.Point2D
}

func (z *Bezier) Attrs() *Attrs { return &z.Attr }
func (z *Bezier) Kind() Kind    { return KindBezier }

func (z *Bezier) Bounds() geometry.Rect {
	return geometry.BoundingBox([]geometry.Point2D{z.P1, z.C1, z.C2, z.P2})
}

func (z *Bezier) Translate(d geometry.Point2D) {
	z.P1 = z.P1.Add(d)
	z.P2 = z.P2.Add(d)
	z.C1 = z.C1.Add(d)
	z.C2 = z.C2.Add(d)
}

func (z *Bezier) RotateAbout(pivot geometry.Point2D, radians float64) {
	z.P1 = geometry.RotateAbout(z.P1, pivot, radians)
	z.P2 = geometry.RotateAbout(z.P2, pivot, radians)
	z.C1 = geometry.RotateAbout(z.C1, pivot, radians)
	z.C2 = geometry.RotateAbout(z.C2, pivot, radians)
}

func (z *Bezier) ReflectAcross(a, b geometry.Point2D) {
	z.P1 = reflect4(z.P1, a, b)
	z.P2 = reflect4(z.P2, a, b)
	z.C1 = reflect4(z.C1, a, b)
	z.C2 = reflect4(z.C2, a, b)
}

// Hits tests against the control polygon P1-C1, C1-C2, C2-P2, an
// approximation of the curve rather than exact curve distance.
func (z *Bezier) Hits(p geometry.Point2D, tol float64) bool {
	return geometry.DistToSegment(p, z.P1, z.C1) <= tol ||
		geometry.DistToSegment(p, z.C1, z.C2) <= tol ||
		geometry.DistToSegment(p, z.C2, z.P2) <= tol
}

func (z *Bezier) Handles() []Handle {
	return []Handle{{HandleStart, z.P1}, {HandleEnd, z.P2}}
}

func (z *Bezier) DragHandle(name HandleName, delta geometry.Point2D) {
	switch name {
	case HandleStart:
		z.P1 = z.P1.Add(delta)
	case HandleEnd:
		z.P2 = z.P2.Add(delta)
	case HandleMove:
		z.Translate(delta)
	}
}

func (z *Bezier) Clone() Shape {
	c := *z
	return &c
}

// DefaultControls places both control points at 33%/66% along the
// endpoint-to-endpoint vector, the default curve a user later drags into
// an S shape.
func (z *Bezier) DefaultControls() {
	v := z.P2.Sub(z.P1)
	z.C1 = z.P1.Add(v.Scale(1.0 / 3.0))
	z.C2 = z.P1.Add(v.Scale(2.0 / 3.0))
}

// Measure is a linear dimension annotation between two points. Offset is a
// perpendicular vector from the measured segment to the dimension line,
// recorded so witness lines stay attached when the shape moves.
type Measure struct {
	Attr   Attrs
	P1, P2 geometry.Point2D
	Offset geometry.Point2D // perpendicular witness offset vector
	Label  geometry.Point2D // independent label anchor
	Text   string
}

func (m *Measure) Attrs() *Attrs { return &m.Attr }
func (m *Measure) Kind() Kind    { return KindMeasure }

func (m *Measure) Bounds() geometry.Rect {
	return geometry.RectFromCorners(m.P1, m.P2)
}

func (m *Measure) Translate(d geometry.Point2D) {
	m.P1 = m.P1.Add(d)
	m.P2 = m.P2.Add(d)
	m.Label = m.Label.Add(d)
}

func (m *Measure) RotateAbout(pivot geometry.Point2D, radians float64) {
	m.P1 = geometry.RotateAbout(m.P1, pivot, radians)
	m.P2 = geometry.RotateAbout(m.P2, pivot, radians)
	m.Label = geometry.RotateAbout(m.Label, pivot, radians)
	m.Offset = geometry.Rotation(radians).Apply(m.Offset)
}

func (m *Measure) ReflectAcross(a, b geometry.Point2D) {
	m.P1 = reflect4(m.P1, a, b)
	m.P2 = reflect4(m.P2, a, b)
	m.Label = reflect4(m.Label, a, b)
	m.Offset = geometry.Round4Point(geometry.ReflectionAcross(a, b).ApplyVector(m.Offset))
}

func (m *Measure) Hits(p geometry.Point2D, tol float64) bool {
	return geometry.DistToSegment(p, m.P1, m.P2) <= tol
}

func (m *Measure) Handles() []Handle {
	return []Handle{{HandleStart, m.P1}, {HandleEnd, m.P2}}
}

func (m *Measure) DragHandle(name HandleName, delta geometry.Point2D) {
	switch name {
	case HandleStart:
		m.P1 = m.P1.Add(delta)
	case HandleEnd:
		m.P2 = m.P2.Add(delta)
	case HandleMove:
		m.Translate(delta)
	}
}

func (m *Measure) Clone() Shape {
	c := *m
	return &c
}

// MeasureRadius is a radius/diameter dimension annotation.
type MeasureRadius struct {
	Attr   Attrs
	P1, P2 geometry.Point2D
	Label  geometry.Point2D
	Text   string
}

func (m *MeasureRadius) Attrs() *Attrs { return &m.Attr }
func (m *MeasureRadius) Kind() Kind    { return KindMeasureRadius }

func (m *MeasureRadius) Bounds() geometry.Rect {
	return geometry.RectFromCorners(m.P1, m.P2)
}

func (m *MeasureRadius) Translate(d geometry.Point2D) {
	m.P1 = m.P1.Add(d)
	m.P2 = m.P2.Add(d)
	m.Label = m.Label.Add(d)
}

func (m *MeasureRadius) RotateAbout(pivot geometry.Point2D, radians float64) {
	m.P1 = geometry.RotateAbout(m.P1, pivot, radians)
	m.P2 = geometry.RotateAbout(m.P2, pivot, radians)
	m.Label = geometry.RotateAbout(m.Label, pivot, radians)
}

func (m *MeasureRadius) ReflectAcross(a, b geometry.Point2D) {
	m.P1 = reflect4(m.P1, a, b)
	m.P2 = reflect4(m.P2, a, b)
	m.Label = reflect4(m.Label, a, b)
}

func (m *MeasureRadius) Hits(p geometry.Point2D, tol float64) bool {
	return geometry.DistToSegment(p, m.P1, m.P2) <= tol
}

func (m *MeasureRadius) Handles() []Handle {
	return []Handle{{HandleStart, m.P1}, {HandleEnd, m.P2}}
}

func (m *MeasureRadius) DragHandle(name HandleName, delta geometry.Point2D) {
	switch name {
	case HandleStart:
		m.P1 = m.P1.Add(delta)
	case HandleEnd:
		m.P2 = m.P2.Add(delta)
	case HandleMove:
		m.Translate(delta)
	}
}

func (m *MeasureRadius) Clone() Shape {
	c := *m
	return &c
}

// Brace is a curly-brace annotation spanning two points.
type Brace struct {
	Attr   Attrs
	P1, P2 geometry.Point2D
	Label  geometry.Point2D
	Text   string
}

func (br *Brace) Attrs() *Attrs { return &br.Attr }
func (br *Brace) Kind() Kind    { return KindBrace }

func (br *Brace) Bounds() geometry.Rect {
	return geometry.RectFromCorners(br.P1, br.P2)
}

func (br *Brace) Translate(d geometry.Point2D) {
	br.P1 = br.P1.Add(d)
	br.P2 = br.P2.Add(d)
	br.Label = br.Label.Add(d)
}

func (br *Brace) RotateAbout(pivot geometry.Point2D, radians float64) {
	br.P1 = geometry.RotateAbout(br.P1, pivot, radians)
	br.P2 = geometry.RotateAbout(br.P2, pivot, radians)
	br.Label = geometry.RotateAbout(br.Label, pivot, radians)
}

func (br *Brace) ReflectAcross(a, b geometry.Point2D) {
	br.P1 = reflect4(br.P1, a, b)
	br.P2 = reflect4(br.P2, a, b)
	br.Label = reflect4(br.Label, a, b)
}

func (br *Brace) Hits(p geometry.Point2D, tol float64) bool {
	return geometry.DistToSegment(p, br.P1, br.P2) <= tol
}

func (br *Brace) Handles() []Handle {
	return []Handle{{HandleStart, br.P1}, {HandleEnd, br.P2}}
}

func (br *Brace) DragHandle(name HandleName, delta geometry.Point2D) {
	switch name {
	case HandleStart:
		br.P1 = br.P1.Add(delta)
	case HandleEnd:
		br.P2 = br.P2.Add(delta)
	case HandleMove:
		br.Translate(delta)
	}
}

func (br *Brace) Clone() Shape {
	c := *br
	return &c
}

// MarkAngle draws a small arc marking the angle at a vertex. P1 is the
// vertex, P2 a point on the marked ray; the arc radius is a fraction of
// the ray length.
type MarkAngle struct {
	Attr   Attrs
	P1, P2 geometry.Point2D
	Label  geometry.Point2D
	Text   string
}

func (ma *MarkAngle) Attrs() *Attrs { return &ma.Attr }
func (ma *MarkAngle) Kind() Kind    { return KindMarkAngle }

func (ma *MarkAngle) Bounds() geometry.Rect {
	return geometry.RectFromCorners(ma.P1, ma.P2)
}

func (ma *MarkAngle) Translate(d geometry.Point2D) {
	ma.P1 = ma.P1.Add(d)
	ma.P2 = ma.P2.Add(d)
	ma.Label = ma.Label.Add(d)
}

func (ma *MarkAngle) RotateAbout(pivot geometry.Point2D, radians float64) {
	ma.P1 = geometry.RotateAbout(ma.P1, pivot, radians)
	ma.P2 = geometry.RotateAbout(ma.P2, pivot, radians)
	ma.Label = geometry.RotateAbout(ma.Label, pivot, radians)
}

func (ma *MarkAngle) ReflectAcross(a, b geometry.Point2D) {
	ma.P1 = reflect4(ma.P1, a, b)
	ma.P2 = reflect4(ma.P2, a, b)
	ma.Label = reflect4(ma.Label, a, b)
}

func (ma *MarkAngle) Hits(p geometry.Point2D, tol float64) bool {
	return geometry.DistToSegment(p, ma.P1, ma.P2) <= tol
}

func (ma *MarkAngle) Handles() []Handle {
	return []Handle{{HandleStart, ma.P1}, {HandleEnd, ma.P2}}
}

func (ma *MarkAngle) DragHandle(name HandleName, delta geometry.Point2D) {
	switch name {
	case HandleStart:
		ma.P1 = ma.P1.Add(delta)
	case HandleEnd:
		ma.P2 = ma.P2.Add(delta)
	case HandleMove:
		ma.Translate(delta)
	}
}

func (ma *MarkAngle) Clone() Shape {
	c := *ma
	return &c
}

// RayAngle returns the angle of the marked ray in radians.
func (ma *MarkAngle) RayAngle() float64 {
	return math.Atan2(ma.P2.Y-ma.P1.Y, ma.P2.X-ma.P1.X)
}

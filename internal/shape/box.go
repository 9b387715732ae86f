package shape

import (
	"math"

	"tikz-cad/pkg/geometry"
)

// Box-based shapes are anchored by a center or bounding box. Rotating or
// reflecting them moves only the shape's own center and accumulates the
// angle into Rotation, so axis-aligned boxes are never distorted into
// non-rectangles. Handles are computed from the pre-rotation bounding box.

// boxHandles returns the eight compass handles of a bounding box.
// Grid Y grows upward, so north is the maximum-Y edge.
func boxHandles(b geometry.Rect) []Handle {
	minX, minY := b.X, b.Y
	maxX, maxY := b.X+b.Width, b.Y+b.Height
	midX, midY := (minX+maxX)/2, (minY+maxY)/2
	return []Handle{
		{HandleNW, geometry.Point2D{X: minX, Y: maxY}},
		{HandleN, geometry.Point2D{X: midX, Y: maxY}},
		{HandleNE, geometry.Point2D{X: maxX, Y: maxY}},
		{HandleW, geometry.Point2D{X: minX, Y: midY}},
		{HandleE, geometry.Point2D{X: maxX, Y: midY}},
		{HandleSW, geometry.Point2D{X: minX, Y: minY}},
		{HandleS, geometry.Point2D{X: midX, Y: minY}},
		{HandleSE, geometry.Point2D{X: maxX, Y: minY}},
	}
}

// dragBoxCorners applies a compass-handle drag to two unnormalized corner
// points. The west handle always moves whichever corner currently holds the
// smaller X, regardless of which field that is; likewise for the other
// edges. Storage order is never renormalized.
func dragBoxCorners(c1, c2 *geometry.Point2D, name HandleName, delta geometry.Point2D) {
	minXP, maxXP := c1, c2
	if c2.X < c1.X {
		minXP, maxXP = c2, c1
	}
	minYP, maxYP := c1, c2
	if c2.Y < c1.Y {
		minYP, maxYP = c2, c1
	}

	moveW := func() { minXP.X += delta.X }
	moveE := func() { maxXP.X += delta.X }
	moveS := func() { minYP.Y += delta.Y }
	moveN := func() { maxYP.Y += delta.Y }

	switch name {
	case HandleW:
		moveW()
	case HandleE:
		moveE()
	case HandleS:
		moveS()
	case HandleN:
		moveN()
	case HandleNW:
		moveN()
		moveW()
	case HandleNE:
		moveN()
		moveE()
	case HandleSW:
		moveS()
		moveW()
	case HandleSE:
		moveS()
		moveE()
	}
}

// Rect is a rectangle defined by two opposite corners in either order.
type Rect struct {
	Attr     Attrs
	C1, C2   geometry.Point2D
	Rotation float64 // radians, applied about the center at render time
}

func (r *Rect) Attrs() *Attrs { return &r.Attr }
func (r *Rect) Kind() Kind    { return KindRect }

func (r *Rect) Bounds() geometry.Rect {
	return geometry.RectFromCorners(r.C1, r.C2)
}

func (r *Rect) Translate(d geometry.Point2D) {
	r.C1 = r.C1.Add(d)
	r.C2 = r.C2.Add(d)
}

func (r *Rect) RotateAbout(pivot geometry.Point2D, radians float64) {
	center := r.Bounds().Center()
	moved := geometry.RotateAbout(center, pivot, radians)
	r.Translate(moved.Sub(center))
	r.Rotation += radians
}

func (r *Rect) ReflectAcross(a, b geometry.Point2D) {
	center := r.Bounds().Center()
	moved := reflect4(center, a, b)
	r.Translate(moved.Sub(center))
	r.Rotation = 2*geometry.LineAngle(a, b) - r.Rotation
}

func (r *Rect) Hits(p geometry.Point2D, tol float64) bool {
	return rectHit(r.Bounds(), r.Attr.Filled(), p, tol)
}

func (r *Rect) Handles() []Handle { return boxHandles(r.Bounds()) }

func (r *Rect) DragHandle(name HandleName, delta geometry.Point2D) {
	if name == HandleMove {
		r.Translate(delta)
		return
	}
	dragBoxCorners(&r.C1, &r.C2, name, delta)
}

func (r *Rect) Clone() Shape {
	c := *r
	return &c
}

// RoundRect is a rectangle with rounded corners.
type RoundRect struct {
	Attr         Attrs
	C1, C2       geometry.Point2D
	Rotation     float64
	CornerRadius float64 // grid units
}

func (r *RoundRect) Attrs() *Attrs { return &r.Attr }
func (r *RoundRect) Kind() Kind    { return KindRoundRect }

func (r *RoundRect) Bounds() geometry.Rect {
	return geometry.RectFromCorners(r.C1, r.C2)
}

func (r *RoundRect) Translate(d geometry.Point2D) {
	r.C1 = r.C1.Add(d)
	r.C2 = r.C2.Add(d)
}

func (r *RoundRect) RotateAbout(pivot geometry.Point2D, radians float64) {
	center := r.Bounds().Center()
	moved := geometry.RotateAbout(center, pivot, radians)
	r.Translate(moved.Sub(center))
	r.Rotation += radians
}

func (r *RoundRect) ReflectAcross(a, b geometry.Point2D) {
	center := r.Bounds().Center()
	moved := reflect4(center, a, b)
	r.Translate(moved.Sub(center))
	r.Rotation = 2*geometry.LineAngle(a, b) - r.Rotation
}

func (r *RoundRect) Hits(p geometry.Point2D, tol float64) bool {
	return rectHit(r.Bounds(), r.Attr.Filled(), p, tol)
}

func (r *RoundRect) Handles() []Handle { return boxHandles(r.Bounds()) }

func (r *RoundRect) DragHandle(name HandleName, delta geometry.Point2D) {
	if name == HandleMove {
		r.Translate(delta)
		return
	}
	dragBoxCorners(&r.C1, &r.C2, name, delta)
}

func (r *RoundRect) Clone() Shape {
	c := *r
	return &c
}

// rectHit implements the shared rectangle hit rule: the whole interior when
// filled, otherwise within tolerance of one of the four edges.
func rectHit(b geometry.Rect, filled bool, p geometry.Point2D, tol float64) bool {
	if filled {
		return b.Contains(p)
	}
	corners := [4]geometry.Point2D{
		{X: b.X, Y: b.Y},
		{X: b.X + b.Width, Y: b.Y},
		{X: b.X + b.Width, Y: b.Y + b.Height},
		{X: b.X, Y: b.Y + b.Height},
	}
	for i := 0; i < 4; i++ {
		if geometry.DistToSegment(p, corners[i], corners[(i+1)%4]) <= tol {
			return true
		}
	}
	return false
}

// Circle is defined by a center and a rim point.
type Circle struct {
	Attr     Attrs
	Center   geometry.Point2D
	Rim      geometry.Point2D
	Rotation float64
}

func (c *Circle) Attrs() *Attrs { return &c.Attr }
func (c *Circle) Kind() Kind    { return KindCircle }

// Radius returns the distance from the center to the rim point.
func (c *Circle) Radius() float64 {
	return c.Center.Distance(c.Rim)
}

func (c *Circle) Bounds() geometry.Rect {
	r := c.Radius()
	return geometry.NewRect(c.Center.X-r, c.Center.Y-r, 2*r, 2*r)
}

func (c *Circle) Translate(d geometry.Point2D) {
	c.Center = c.Center.Add(d)
	c.Rim = c.Rim.Add(d)
}

func (c *Circle) RotateAbout(pivot geometry.Point2D, radians float64) {
	moved := geometry.RotateAbout(c.Center, pivot, radians)
	c.Translate(moved.Sub(c.Center))
	c.Rotation += radians
}

func (c *Circle) ReflectAcross(a, b geometry.Point2D) {
	moved := reflect4(c.Center, a, b)
	c.Translate(moved.Sub(c.Center))
	c.Rotation = 2*geometry.LineAngle(a, b) - c.Rotation
}

func (c *Circle) Hits(p geometry.Point2D, tol float64) bool {
	d := p.Distance(c.Center)
	if c.Attr.Filled() {
		return d <= c.Radius()
	}
	return math.Abs(d-c.Radius()) <= tol
}

// Handles exposes the center plus four cardinal rim points; every rim
// handle drives the same radius edit.
func (c *Circle) Handles() []Handle {
	r := c.Radius()
	return []Handle{
		{HandleStart, c.Center},
		{HandleEnd, geometry.Point2D{X: c.Center.X + r, Y: c.Center.Y}},
		{HandleEnd, geometry.Point2D{X: c.Center.X - r, Y: c.Center.Y}},
		{HandleEnd, geometry.Point2D{X: c.Center.X, Y: c.Center.Y + r}},
		{HandleEnd, geometry.Point2D{X: c.Center.X, Y: c.Center.Y - r}},
	}
}

func (c *Circle) DragHandle(name HandleName, delta geometry.Point2D) {
	switch name {
	case HandleStart:
		c.Center = c.Center.Add(delta)
	case HandleEnd:
		c.Rim = c.Rim.Add(delta)
	case HandleMove:
		c.Translate(delta)
	}
}

func (c *Circle) Clone() Shape {
	cp := *c
	return &cp
}

// Ellipse is defined by a center and a rim point whose axis distances give
// the two radii.
type Ellipse struct {
	Attr     Attrs
	Center   geometry.Point2D
	Rim      geometry.Point2D
	Rotation float64
}

func (e *Ellipse) Attrs() *Attrs { return &e.Attr }
func (e *Ellipse) Kind() Kind    { return KindEllipse }

// Radii returns the horizontal and vertical radii.
func (e *Ellipse) Radii() (rx, ry float64) {
	return math.Abs(e.Rim.X - e.Center.X), math.Abs(e.Rim.Y - e.Center.Y)
}

func (e *Ellipse) Bounds() geometry.Rect {
	rx, ry := e.Radii()
	return geometry.NewRect(e.Center.X-rx, e.Center.Y-ry, 2*rx, 2*ry)
}

func (e *Ellipse) Translate(d geometry.Point2D) {
	e.Center = e.Center.Add(d)
	e.Rim = e.Rim.Add(d)
}

func (e *Ellipse) RotateAbout(pivot geometry.Point2D, radians float64) {
	moved := geometry.RotateAbout(e.Center, pivot, radians)
	e.Translate(moved.Sub(e.Center))
	e.Rotation += radians
}

func (e *Ellipse) ReflectAcross(a, b geometry.Point2D) {
	moved := reflect4(e.Center, a, b)
	e.Translate(moved.Sub(e.Center))
	e.Rotation = 2*geometry.LineAngle(a, b) - e.Rotation
}

func (e *Ellipse) Hits(p geometry.Point2D, tol float64) bool {
	rx, ry := e.Radii()
	if rx < 1e-9 || ry < 1e-9 {
		return geometry.DistToSegment(p, e.Center, e.Rim) <= tol
	}
	// Normalized radial distance: 1 on the rim.
	dx := (p.X - e.Center.X) / rx
	dy := (p.Y - e.Center.Y) / ry
	d := math.Sqrt(dx*dx + dy*dy)
	if e.Attr.Filled() {
		return d <= 1
	}
	return math.Abs(d-1)*math.Min(rx, ry) <= tol
}

func (e *Ellipse) Handles() []Handle { return boxHandles(e.Bounds()) }

// DragHandle resizes through the bounding box, then re-derives the
// center/rim storage from the resized box.
func (e *Ellipse) DragHandle(name HandleName, delta geometry.Point2D) {
	if name == HandleMove {
		e.Translate(delta)
		return
	}
	b := e.Bounds()
	c1 := b.Min()
	c2 := b.Max()
	dragBoxCorners(&c1, &c2, name, delta)
	nb := geometry.RectFromCorners(c1, c2)
	e.Center = nb.Center()
	e.Rim = geometry.Point2D{X: e.Center.X + nb.Width/2, Y: e.Center.Y + nb.Height/2}
}

func (e *Ellipse) Clone() Shape {
	c := *e
	return &c
}

// Arc is a circular arc: center, rim point for the radius, and a sweep
// from Start to End in radians.
type Arc struct {
	Attr     Attrs
	Center   geometry.Point2D
	Rim      geometry.Point2D
	Start    float64
	End      float64
	Rotation float64
}

func (a *Arc) Attrs() *Attrs { return &a.Attr }
func (a *Arc) Kind() Kind    { return KindArc }

// Radius returns the distance from the center to the rim point.
func (a *Arc) Radius() float64 {
	return a.Center.Distance(a.Rim)
}

func (a *Arc) Bounds() geometry.Rect {
	r := a.Radius()
	return geometry.NewRect(a.Center.X-r, a.Center.Y-r, 2*r, 2*r)
}

func (a *Arc) Translate(d geometry.Point2D) {
	a.Center = a.Center.Add(d)
	a.Rim = a.Rim.Add(d)
}

func (a *Arc) RotateAbout(pivot geometry.Point2D, radians float64) {
	moved := geometry.RotateAbout(a.Center, pivot, radians)
	a.Translate(moved.Sub(a.Center))
	a.Rotation += radians
}

// ReflectAcross mirrors the center and swaps the sweep endpoints, negated
// against the line angle, because reflection reverses winding direction.
func (a *Arc) ReflectAcross(p, q geometry.Point2D) {
	moved := reflect4(a.Center, p, q)
	a.Translate(moved.Sub(a.Center))
	theta := geometry.LineAngle(p, q)
	a.Rotation = 2*theta - a.Rotation
	oldStart, oldEnd := a.Start, a.End
	a.Start = 2*theta - oldEnd
	a.End = 2*theta - oldStart
}

func (a *Arc) Hits(p geometry.Point2D, tol float64) bool {
	r := a.Radius()
	d := p.Distance(a.Center)
	if math.Abs(d-r) > tol {
		return false
	}
	ang := math.Atan2(p.Y-a.Center.Y, p.X-a.Center.X) - a.Rotation
	return angleInSweep(ang, a.Start, a.End)
}

func (a *Arc) Handles() []Handle { return boxHandles(a.Bounds()) }

func (a *Arc) DragHandle(name HandleName, delta geometry.Point2D) {
	if name == HandleMove {
		a.Translate(delta)
		return
	}
	b := a.Bounds()
	c1 := b.Min()
	c2 := b.Max()
	dragBoxCorners(&c1, &c2, name, delta)
	nb := geometry.RectFromCorners(c1, c2)
	a.Center = nb.Center()
	r := math.Min(nb.Width, nb.Height) / 2
	a.Rim = geometry.Point2D{X: a.Center.X + r, Y: a.Center.Y}
}

func (a *Arc) Clone() Shape {
	c := *a
	return &c
}

// angleInSweep reports whether ang lies within the start..end sweep,
// walking counter-clockwise, with all angles normalized to [0, 2pi).
func angleInSweep(ang, start, end float64) bool {
	norm := func(v float64) float64 {
		v = math.Mod(v, 2*math.Pi)
		if v < 0 {
			v += 2 * math.Pi
		}
		return v
	}
	ang = norm(ang)
	start = norm(start)
	end = norm(end)
	if start == end {
		return true
	}
	if start < end {
		return ang >= start && ang <= end
	}
	return ang >= start || ang <= end
}

// Text is a label anchored at a single point.
type Text struct {
	Attr     Attrs
	Anchor   geometry.Point2D
	Content  string
	Rotation float64
}

func (t *Text) Attrs() *Attrs { return &t.Attr }
func (t *Text) Kind() Kind    { return KindText }

// Bounds returns a nominal box around the anchor; the label hitbox is
// handled separately and is coarser than geometry.
func (t *Text) Bounds() geometry.Rect {
	return geometry.NewRect(t.Anchor.X-0.5, t.Anchor.Y-0.25, 1, 0.5)
}

func (t *Text) Translate(d geometry.Point2D) {
	t.Anchor = t.Anchor.Add(d)
}

func (t *Text) RotateAbout(pivot geometry.Point2D, radians float64) {
	t.Anchor = geometry.RotateAbout(t.Anchor, pivot, radians)
	t.Rotation += radians
}

func (t *Text) ReflectAcross(a, b geometry.Point2D) {
	t.Anchor = reflect4(t.Anchor, a, b)
	t.Rotation = 2*geometry.LineAngle(a, b) - t.Rotation
}

// Hits uses a coarser radius than geometric shapes; the engine passes an
// already widened tolerance for text.
func (t *Text) Hits(p geometry.Point2D, tol float64) bool {
	return p.Distance(t.Anchor) <= tol
}

func (t *Text) Handles() []Handle { return boxHandles(t.Bounds()) }

// DragHandle moves the anchor for every handle; a point anchor has no
// edges to resize.
func (t *Text) DragHandle(name HandleName, delta geometry.Point2D) {
	t.Anchor = t.Anchor.Add(delta)
}

func (t *Text) Clone() Shape {
	c := *t
	return &c
}

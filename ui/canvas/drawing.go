package canvas

import (
	"image"
	"image/color"
	"log"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"tikz-cad/internal/shape"
	"tikz-cad/internal/view"
	"tikz-cad/pkg/geometry"
)

var (
	colBackground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colGridMinor  = color.RGBA{R: 235, G: 235, B: 235, A: 255}
	colGridMajor  = color.RGBA{R: 214, G: 214, B: 214, A: 255}
	colAxis       = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	colAccent     = color.RGBA{R: 33, G: 118, B: 255, A: 255}
)

const (
	gridMinorStep = 0.5 // grid units
	arrowLength   = 9.0 // px
	arrowHalf     = 3.5 // px
	handleSize    = 7.0 // px
)

var labelFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse embedded font: %v", err)
	}
	labelFace, err = opentype.NewFace(f, &opentype.FaceOptions{
		Size:    13,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		log.Fatalf("build font face: %v", err)
	}
}

// Scene is one frame's worth of render input. The renderer is a pure
// function of it, which keeps drawing testable without a window.
type Scene struct {
	Shapes   []shape.Shape
	Current  shape.Shape // in-progress drawn shape, may be nil
	Selected func(id string) bool
	View     *view.Transform
	ShowGrid bool
	ShowAxes bool
	Box      geometry.Rect // device-space rubber band
	BoxOn    bool
}

// RenderScene rasterizes a scene into a w x h image.
func RenderScene(w, h int, sc *Scene) *image.RGBA {
	dc := gg.NewContext(w, h)
	dc.SetColor(colBackground)
	dc.Clear()
	dc.SetFontFace(labelFace)

	if sc.ShowGrid {
		drawGrid(dc, sc.View)
	}
	if sc.ShowAxes {
		drawAxes(dc, sc.View)
	}
	for _, s := range sc.Shapes {
		drawShape(dc, s, sc.View)
	}
	if sc.Current != nil {
		drawShape(dc, sc.Current, sc.View)
	}
	if sc.Selected != nil {
		for _, s := range sc.Shapes {
			if sc.Selected(s.Attrs().ID) {
				drawSelection(dc, s, sc.View)
			}
		}
	}
	if sc.BoxOn {
		drawRubberBand(dc, sc.Box)
	}
	return dc.Image().(*image.RGBA)
}

func drawGrid(dc *gg.Context, v *view.Transform) {
	visible := v.VisibleRect()
	dc.SetLineWidth(1)
	x0 := math.Ceil(visible.X/gridMinorStep) * gridMinorStep
	for x := x0; x <= visible.X+visible.Width; x += gridMinorStep {
		p := v.GridToScreen(geometry.Point2D{X: x})
		if isInteger(x) {
			dc.SetColor(colGridMajor)
		} else {
			dc.SetColor(colGridMinor)
		}
		dc.DrawLine(p.X, 0, p.X, float64(dc.Height()))
		dc.Stroke()
	}
	y0 := math.Ceil(visible.Y/gridMinorStep) * gridMinorStep
	for y := y0; y <= visible.Y+visible.Height; y += gridMinorStep {
		p := v.GridToScreen(geometry.Point2D{Y: y})
		if isInteger(y) {
			dc.SetColor(colGridMajor)
		} else {
			dc.SetColor(colGridMinor)
		}
		dc.DrawLine(0, p.Y, float64(dc.Width()), p.Y)
		dc.Stroke()
	}
}

func isInteger(v float64) bool {
	return math.Abs(v-math.Round(v)) < 1e-9
}

func drawAxes(dc *gg.Context, v *view.Transform) {
	o := v.GridToScreen(geometry.Point2D{})
	dc.SetColor(colAxis)
	dc.SetLineWidth(1)
	dc.DrawLine(o.X, 0, o.X, float64(dc.Height()))
	dc.DrawLine(0, o.Y, float64(dc.Width()), o.Y)
	dc.Stroke()
}

// setStroke applies the shape's stroke color, width, and dash pattern.
func setStroke(dc *gg.Context, a *shape.Attrs) {
	dc.SetColor(a.StrokeColor)
	w := a.LineWidth * 1.4
	if w < 1 {
		w = 1
	}
	dc.SetLineWidth(w)
	switch a.Style {
	case shape.StyleDashed:
		dc.SetDash(6, 5)
	case shape.StyleDotted:
		dc.SetDash(1.5, 4)
	default:
		dc.SetDash()
	}
}

// paintPath fills, hatches, and strokes the current path per the shape
// attributes.
func paintPath(dc *gg.Context, a *shape.Attrs) {
	if a.Filled() {
		dc.SetColor(a.FillColor)
		dc.FillPreserve()
	}
	if a.Hatch != shape.HatchNone {
		drawHatch(dc, a)
	}
	setStroke(dc, a)
	dc.Stroke()
	dc.SetDash()
}

// drawHatch paints the hatch pattern clipped to the current path. The
// path itself survives for the following stroke.
func drawHatch(dc *gg.Context, a *shape.Attrs) {
	const spacing = 7.0
	w, h := float64(dc.Width()), float64(dc.Height())
	dc.Push()
	dc.ClipPreserve()
	dc.SetColor(a.StrokeColor)
	dc.SetLineWidth(0.8)
	dc.SetDash()
	switch a.Hatch {
	case shape.HatchLines, shape.HatchGrid:
		for d := -h; d < w; d += spacing {
			dc.MoveTo(d, 0)
			dc.LineTo(d+h, h)
		}
		if a.Hatch == shape.HatchGrid {
			for d := 0.0; d < w+h; d += spacing {
				dc.MoveTo(d, 0)
				dc.LineTo(d-h, h)
			}
		}
		dc.Stroke()
	case shape.HatchDots:
		for y := spacing / 2; y < h; y += spacing {
			for x := spacing / 2; x < w; x += spacing {
				dc.DrawCircle(x, y, 1)
			}
		}
		dc.Fill()
	}
	dc.Pop()
}

func drawShape(dc *gg.Context, s shape.Shape, v *view.Transform) {
	switch t := s.(type) {
	case *shape.Freehand:
		drawFreehand(dc, t, v)
	case *shape.Line:
		drawLine(dc, t, v)
	case *shape.Bezier:
		drawBezier(dc, t, v)
	case *shape.Rect:
		drawRect(dc, t, v)
	case *shape.RoundRect:
		drawRoundRect(dc, t, v)
	case *shape.Circle:
		drawCircle(dc, t, v)
	case *shape.Ellipse:
		drawEllipse(dc, t, v)
	case *shape.Arc:
		drawArc(dc, t, v)
	case *shape.Measure:
		drawMeasure(dc, t, v)
	case *shape.MeasureRadius:
		drawMeasureRadius(dc, t, v)
	case *shape.MarkAngle:
		drawMarkAngle(dc, t, v)
	case *shape.Brace:
		drawBrace(dc, t, v)
	case *shape.Text:
		drawText(dc, t, v)
	}
}

func drawFreehand(dc *gg.Context, f *shape.Freehand, v *view.Transform) {
	if len(f.Points) == 0 {
		return
	}
	p0 := v.GridToScreen(f.Points[0])
	dc.MoveTo(p0.X, p0.Y)
	for _, gp := range f.Points[1:] {
		p := v.GridToScreen(gp)
		dc.LineTo(p.X, p.Y)
	}
	setStroke(dc, &f.Attr)
	dc.Stroke()
	dc.SetDash()
}

func drawLine(dc *gg.Context, l *shape.Line, v *view.Transform) {
	p1 := v.GridToScreen(l.P1)
	p2 := v.GridToScreen(l.P2)
	dc.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
	setStroke(dc, &l.Attr)
	dc.Stroke()
	dc.SetDash()
	drawArrows(dc, &l.Attr, p1, p2, p2, p1)
}

func drawBezier(dc *gg.Context, z *shape.Bezier, v *view.Transform) {
	p1 := v.GridToScreen(z.P1)
	p2 := v.GridToScreen(z.P2)
	c1 := v.GridToScreen(z.C1)
	c2 := v.GridToScreen(z.C2)
	dc.MoveTo(p1.X, p1.Y)
	dc.CubicTo(c1.X, c1.Y, c2.X, c2.Y, p2.X, p2.Y)
	setStroke(dc, &z.Attr)
	dc.Stroke()
	dc.SetDash()
	// Arrowheads follow the tangent at each end.
	drawArrows(dc, &z.Attr, p1, c1, p2, c2)
}

func drawRect(dc *gg.Context, r *shape.Rect, v *view.Transform) {
	b := r.Bounds()
	c := v.GridToScreen(b.Center())
	w, h := b.Width*v.Scale, b.Height*v.Scale
	dc.Push()
	dc.RotateAbout(-r.Rotation, c.X, c.Y)
	dc.DrawRectangle(c.X-w/2, c.Y-h/2, w, h)
	paintPath(dc, &r.Attr)
	dc.Pop()
}

func drawRoundRect(dc *gg.Context, r *shape.RoundRect, v *view.Transform) {
	b := r.Bounds()
	c := v.GridToScreen(b.Center())
	w, h := b.Width*v.Scale, b.Height*v.Scale
	cr := r.CornerRadius * v.Scale
	if limit := math.Min(w, h) / 2; cr > limit {
		cr = limit
	}
	dc.Push()
	dc.RotateAbout(-r.Rotation, c.X, c.Y)
	dc.DrawRoundedRectangle(c.X-w/2, c.Y-h/2, w, h, cr)
	paintPath(dc, &r.Attr)
	dc.Pop()
}

func drawCircle(dc *gg.Context, c *shape.Circle, v *view.Transform) {
	p := v.GridToScreen(c.Center)
	dc.DrawCircle(p.X, p.Y, c.Radius()*v.Scale)
	paintPath(dc, &c.Attr)
}

func drawEllipse(dc *gg.Context, e *shape.Ellipse, v *view.Transform) {
	p := v.GridToScreen(e.Center)
	rx, ry := e.Radii()
	dc.Push()
	dc.RotateAbout(-e.Rotation, p.X, p.Y)
	dc.DrawEllipse(p.X, p.Y, rx*v.Scale, ry*v.Scale)
	paintPath(dc, &e.Attr)
	dc.Pop()
}

// arcPoint returns the device point on an arc at a grid-space angle.
func arcPoint(a *shape.Arc, v *view.Transform, angle float64) geometry.Point2D {
	r := a.Radius()
	g := geometry.Point2D{
		X: a.Center.X + r*math.Cos(angle+a.Rotation),
		Y: a.Center.Y + r*math.Sin(angle+a.Rotation),
	}
	return v.GridToScreen(g)
}

func drawArc(dc *gg.Context, a *shape.Arc, v *view.Transform) {
	p := v.GridToScreen(a.Center)
	// Device Y points down, so grid angles flip sign.
	dc.DrawArc(p.X, p.Y, a.Radius()*v.Scale, -(a.Start + a.Rotation), -(a.End + a.Rotation))
	setStroke(dc, &a.Attr)
	dc.Stroke()
	dc.SetDash()

	const eps = 0.05
	s0 := arcPoint(a, v, a.Start)
	s1 := arcPoint(a, v, a.Start+eps)
	e0 := arcPoint(a, v, a.End)
	e1 := arcPoint(a, v, a.End-eps)
	drawArrows(dc, &a.Attr, s0, s1, e0, e1)
}

func drawMeasure(dc *gg.Context, m *shape.Measure, v *view.Transform) {
	a := v.GridToScreen(m.P1.Add(m.Offset))
	b := v.GridToScreen(m.P2.Add(m.Offset))
	p1 := v.GridToScreen(m.P1)
	p2 := v.GridToScreen(m.P2)

	setStroke(dc, &m.Attr)
	// Witness lines overshoot the dimension line slightly.
	w1 := v.GridToScreen(m.P1.Add(m.Offset.Scale(1.15)))
	w2 := v.GridToScreen(m.P2.Add(m.Offset.Scale(1.15)))
	dc.DrawLine(p1.X, p1.Y, w1.X, w1.Y)
	dc.DrawLine(p2.X, p2.Y, w2.X, w2.Y)
	dc.DrawLine(a.X, a.Y, b.X, b.Y)
	dc.Stroke()
	dc.SetDash()

	drawArrowhead(dc, a, b, m.Attr.StrokeColor)
	drawArrowhead(dc, b, a, m.Attr.StrokeColor)
	drawLabel(dc, m.Text, m.Label, 0, v, m.Attr.StrokeColor)
}

func drawMeasureRadius(dc *gg.Context, m *shape.MeasureRadius, v *view.Transform) {
	p1 := v.GridToScreen(m.P1)
	p2 := v.GridToScreen(m.P2)
	dc.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
	setStroke(dc, &m.Attr)
	dc.Stroke()
	dc.SetDash()
	drawArrowhead(dc, p1, p2, m.Attr.StrokeColor)
	drawArrowhead(dc, p2, p1, m.Attr.StrokeColor)
	drawLabel(dc, m.Text, m.Label, 0, v, m.Attr.StrokeColor)
}

func drawMarkAngle(dc *gg.Context, ma *shape.MarkAngle, v *view.Transform) {
	p := v.GridToScreen(ma.P1)
	const markRadius = 0.8 // grid units
	setStroke(dc, &ma.Attr)
	// Arc from the positive x axis around to the marked ray.
	dc.DrawArc(p.X, p.Y, markRadius*v.Scale, 0, -ma.RayAngle())
	dc.Stroke()
	p2 := v.GridToScreen(ma.P2)
	dc.DrawLine(p.X, p.Y, p2.X, p2.Y)
	dc.Stroke()
	dc.SetDash()
	drawLabel(dc, ma.Text, ma.Label, 0, v, ma.Attr.StrokeColor)
}

func drawBrace(dc *gg.Context, br *shape.Brace, v *view.Transform) {
	p1 := v.GridToScreen(br.P1)
	p2 := v.GridToScreen(br.P2)
	d := p2.Sub(p1)
	n := d.Norm()
	if n < 1e-9 {
		return
	}
	dir := d.Scale(1 / n)
	perp := geometry.Point2D{X: dir.Y, Y: -dir.X}
	amp := math.Min(0.35*v.Scale, n/4)
	mid := p1.Add(d.Scale(0.5))
	tip := mid.Add(perp.Scale(2 * amp))

	setStroke(dc, &br.Attr)
	dc.MoveTo(p1.X, p1.Y)
	c1 := p1.Add(perp.Scale(amp))
	c2 := mid.Sub(dir.Scale(amp)).Add(perp.Scale(amp))
	dc.CubicTo(c1.X, c1.Y, c2.X, c2.Y, tip.X, tip.Y)
	dc.MoveTo(p2.X, p2.Y)
	c3 := p2.Add(perp.Scale(amp))
	c4 := mid.Add(dir.Scale(amp)).Add(perp.Scale(amp))
	dc.CubicTo(c3.X, c3.Y, c4.X, c4.Y, tip.X, tip.Y)
	dc.Stroke()
	dc.SetDash()
	drawLabel(dc, br.Text, br.Label, 0, v, br.Attr.StrokeColor)
}

func drawText(dc *gg.Context, t *shape.Text, v *view.Transform) {
	drawLabel(dc, t.Content, t.Anchor, t.Rotation, v, t.Attr.StrokeColor)
}

func drawLabel(dc *gg.Context, text string, anchor geometry.Point2D, rotation float64, v *view.Transform, col color.Color) {
	if text == "" {
		return
	}
	p := v.GridToScreen(anchor)
	dc.Push()
	dc.RotateAbout(-rotation, p.X, p.Y)
	dc.SetColor(col)
	dc.DrawStringAnchored(text, p.X, p.Y, 0.5, 0.5)
	dc.Pop()
}

// drawArrows places arrowheads per the shape's arrow mode. Each tip is
// paired with a trailing point giving the tangent direction.
func drawArrows(dc *gg.Context, a *shape.Attrs, start, startTail, end, endTail geometry.Point2D) {
	if a.Arrow == shape.ArrowStart || a.Arrow == shape.ArrowBoth {
		drawArrowhead(dc, start, startTail, a.StrokeColor)
	}
	if a.Arrow == shape.ArrowEnd || a.Arrow == shape.ArrowBoth {
		drawArrowhead(dc, end, endTail, a.StrokeColor)
	}
}

// drawArrowhead fills a triangle at tip pointing away from tail.
func drawArrowhead(dc *gg.Context, tip, tail geometry.Point2D, col color.Color) {
	d := tip.Sub(tail)
	n := d.Norm()
	if n < 1e-9 {
		return
	}
	dir := d.Scale(1 / n)
	perp := geometry.Point2D{X: -dir.Y, Y: dir.X}
	base := tip.Sub(dir.Scale(arrowLength))
	l := base.Add(perp.Scale(arrowHalf))
	r := base.Sub(perp.Scale(arrowHalf))
	dc.MoveTo(tip.X, tip.Y)
	dc.LineTo(l.X, l.Y)
	dc.LineTo(r.X, r.Y)
	dc.ClosePath()
	dc.SetColor(col)
	dc.Fill()
}

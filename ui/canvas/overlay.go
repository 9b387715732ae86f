package canvas

import (
	"github.com/fogleman/gg"

	"tikz-cad/internal/shape"
	"tikz-cad/internal/view"
	"tikz-cad/pkg/geometry"
)

// drawSelection outlines a selected shape's bounding box and paints its
// drag handles on top of the scene.
func drawSelection(dc *gg.Context, s shape.Shape, v *view.Transform) {
	b := s.Bounds()
	min := v.GridToScreen(b.Min())
	max := v.GridToScreen(b.Max())
	r := geometry.RectFromCorners(min, max)

	dc.SetColor(colAccent)
	dc.SetLineWidth(1)
	dc.SetDash(4, 3)
	const pad = 4
	dc.DrawRectangle(r.X-pad, r.Y-pad, r.Width+2*pad, r.Height+2*pad)
	dc.Stroke()
	dc.SetDash()

	for _, h := range s.Handles() {
		if h.Name == shape.HandleMove {
			continue
		}
		p := v.GridToScreen(h.Pos)
		dc.DrawRectangle(p.X-handleSize/2, p.Y-handleSize/2, handleSize, handleSize)
		dc.SetColor(colBackground)
		dc.FillPreserve()
		dc.SetColor(colAccent)
		dc.Stroke()
	}
}

// drawRubberBand paints the device-space box-select rectangle.
func drawRubberBand(dc *gg.Context, r geometry.Rect) {
	dc.SetColor(colAccent)
	dc.SetLineWidth(1)
	dc.SetDash(5, 4)
	dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	dc.Stroke()
	dc.SetDash()
}

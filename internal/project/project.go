// Package project provides drawing file handling and persistence.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"tikz-cad/internal/shape"
	"tikz-cad/pkg/colorutil"
	"tikz-cad/pkg/geometry"
)

// File represents a drawing file (.tcad).
type File struct {
	Version  int       `json:"version"`
	Name     string    `json:"name,omitempty"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	ShowGrid bool `json:"show_grid"`
	ShowAxes bool `json:"show_axes"`

	Shapes []Record `json:"shapes"`
}

// Record is the tagged wire form of one shape. Points carries the
// variant's coordinates in a fixed per-kind order; Values carries its
// scalar parameters (rotations, radii, angles).
type Record struct {
	Kind      string             `json:"kind"`
	ID        string             `json:"id"`
	Stroke    string             `json:"stroke"`
	Fill      string             `json:"fill,omitempty"`
	Style     shape.LineStyle    `json:"style,omitempty"`
	Arrow     shape.ArrowMode    `json:"arrow,omitempty"`
	Hatch     shape.HatchStyle   `json:"hatch,omitempty"`
	LineWidth float64            `json:"line_width"`
	Guide     bool               `json:"guide,omitempty"`
	Points    []geometry.Point2D `json:"points,omitempty"`
	Values    []float64          `json:"values,omitempty"`
	Text      string             `json:"text,omitempty"`
}

// New creates an empty drawing file.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:  1,
		Name:     name,
		Created:  now,
		Modified: now,
		ShowGrid: true,
		ShowAxes: true,
	}
}

// Load loads a drawing from a .tcad file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse drawing %s: %w", path, err)
	}
	return &f, nil
}

// Save writes the drawing to a file.
func (f *File) Save(path string) error {
	f.Modified = time.Now()

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SetShapes replaces the file's shape records with the wire form of a
// shape collection.
func (f *File) SetShapes(shapes []shape.Shape) {
	f.Shapes = make([]Record, 0, len(shapes))
	for _, s := range shapes {
		f.Shapes = append(f.Shapes, Encode(s))
	}
}

// BuildShapes decodes every record back into live shapes.
func (f *File) BuildShapes() ([]shape.Shape, error) {
	out := make([]shape.Shape, 0, len(f.Shapes))
	for i, r := range f.Shapes {
		s, err := Decode(r)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func encodeAttrs(a *shape.Attrs) Record {
	return Record{
		ID:        a.ID,
		Stroke:    colorutil.Hex(a.StrokeColor),
		Fill:      colorutil.Hex(a.FillColor),
		Style:     a.Style,
		Arrow:     a.Arrow,
		Hatch:     a.Hatch,
		LineWidth: a.LineWidth,
		Guide:     a.Guide,
	}
}

// Encode converts a shape into its wire record.
func Encode(s shape.Shape) Record {
	r := encodeAttrs(s.Attrs())
	r.Kind = s.Kind().String()
	switch t := s.(type) {
	case *shape.Freehand:
		r.Points = append(r.Points, t.Points...)
	case *shape.Line:
		r.Points = []geometry.Point2D{t.P1, t.P2}
	case *shape.Bezier:
		r.Points = []geometry.Point2D{t.P1, t.P2, t.C1, t.C2}
	case *shape.Rect:
		r.Points = []geometry.Point2D{t.C1, t.C2}
		r.Values = []float64{t.Rotation}
	case *shape.RoundRect:
		r.Points = []geometry.Point2D{t.C1, t.C2}
		r.Values = []float64{t.Rotation, t.CornerRadius}
	case *shape.Circle:
		r.Points = []geometry.Point2D{t.Center, t.Rim}
		r.Values = []float64{t.Rotation}
	case *shape.Ellipse:
		r.Points = []geometry.Point2D{t.Center, t.Rim}
		r.Values = []float64{t.Rotation}
	case *shape.Arc:
		r.Points = []geometry.Point2D{t.Center, t.Rim}
		r.Values = []float64{t.Start, t.End, t.Rotation}
	case *shape.Measure:
		r.Points = []geometry.Point2D{t.P1, t.P2, t.Offset, t.Label}
		r.Text = t.Text
	case *shape.MeasureRadius:
		r.Points = []geometry.Point2D{t.P1, t.P2, t.Label}
		r.Text = t.Text
	case *shape.MarkAngle:
		r.Points = []geometry.Point2D{t.P1, t.P2, t.Label}
		r.Text = t.Text
	case *shape.Brace:
		r.Points = []geometry.Point2D{t.P1, t.P2, t.Label}
		r.Text = t.Text
	case *shape.Text:
		r.Points = []geometry.Point2D{t.Anchor}
		r.Values = []float64{t.Rotation}
		r.Text = t.Content
	}
	return r
}

func (r Record) attrs() (shape.Attrs, error) {
	stroke, err := colorutil.ParseHex(r.Stroke)
	if err != nil {
		return shape.Attrs{}, err
	}
	fill, err := colorutil.ParseHex(r.Fill)
	if err != nil {
		return shape.Attrs{}, err
	}
	id := r.ID
	if id == "" {
		id = shape.NewID()
	}
	lw := r.LineWidth
	if lw <= 0 {
		lw = 1
	}
	return shape.Attrs{
		ID:          id,
		Style:       r.Style,
		Arrow:       r.Arrow,
		Hatch:       r.Hatch,
		LineWidth:   lw,
		StrokeColor: stroke,
		FillColor:   fill,
		Guide:       r.Guide,
	}, nil
}

func (r Record) need(points, values int) error {
	if len(r.Points) < points {
		return fmt.Errorf("%s: %d points, need %d", r.Kind, len(r.Points), points)
	}
	if len(r.Values) < values {
		return fmt.Errorf("%s: %d values, need %d", r.Kind, len(r.Values), values)
	}
	return nil
}

// Decode converts a wire record back into a live shape.
func Decode(r Record) (shape.Shape, error) {
	attr, err := r.attrs()
	if err != nil {
		return nil, err
	}
	switch r.Kind {
	case "freehand":
		if err := r.need(1, 0); err != nil {
			return nil, err
		}
		pts := make([]geometry.Point2D, len(r.Points))
		copy(pts, r.Points)
		return &shape.Freehand{Attr: attr, Points: pts}, nil
	case "line":
		if err := r.need(2, 0); err != nil {
			return nil, err
		}
		return &shape.Line{Attr: attr, P1: r.Points[0], P2: r.Points[1]}, nil
	case "bezier":
		if err := r.need(4, 0); err != nil {
			return nil, err
		}
		return &shape.Bezier{Attr: attr, P1: r.Points[0], P2: r.Points[1], C1: r.Points[2], C2: r.Points[3]}, nil
	case "rect":
		if err := r.need(2, 1); err != nil {
			return nil, err
		}
		return &shape.Rect{Attr: attr, C1: r.Points[0], C2: r.Points[1], Rotation: r.Values[0]}, nil
	case "round_rect":
		if err := r.need(2, 2); err != nil {
			return nil, err
		}
		return &shape.RoundRect{Attr: attr, C1: r.Points[0], C2: r.Points[1], Rotation: r.Values[0], CornerRadius: r.Values[1]}, nil
	case "circle":
		if err := r.need(2, 1); err != nil {
			return nil, err
		}
		return &shape.Circle{Attr: attr, Center: r.Points[0], Rim: r.Points[1], Rotation: r.Values[0]}, nil
	case "ellipse":
		if err := r.need(2, 1); err != nil {
			return nil, err
		}
		return &shape.Ellipse{Attr: attr, Center: r.Points[0], Rim: r.Points[1], Rotation: r.Values[0]}, nil
	case "arc":
		if err := r.need(2, 3); err != nil {
			return nil, err
		}
		return &shape.Arc{Attr: attr, Center: r.Points[0], Rim: r.Points[1], Start: r.Values[0], End: r.Values[1], Rotation: r.Values[2]}, nil
	case "measure":
		if err := r.need(4, 0); err != nil {
			return nil, err
		}
		return &shape.Measure{Attr: attr, P1: r.Points[0], P2: r.Points[1], Offset: r.Points[2], Label: r.Points[3], Text: r.Text}, nil
	case "measure_radius":
		if err := r.need(3, 0); err != nil {
			return nil, err
		}
		return &shape.MeasureRadius{Attr: attr, P1: r.Points[0], P2: r.Points[1], Label: r.Points[2], Text: r.Text}, nil
	case "mark_angle":
		if err := r.need(3, 0); err != nil {
			return nil, err
		}
		return &shape.MarkAngle{Attr: attr, P1: r.Points[0], P2: r.Points[1], Label: r.Points[2], Text: r.Text}, nil
	case "brace":
		if err := r.need(3, 0); err != nil {
			return nil, err
		}
		return &shape.Brace{Attr: attr, P1: r.Points[0], P2: r.Points[1], Label: r.Points[2], Text: r.Text}, nil
	case "text":
		if err := r.need(1, 1); err != nil {
			return nil, err
		}
		return &shape.Text{Attr: attr, Anchor: r.Points[0], Content: r.Text, Rotation: r.Values[0]}, nil
	default:
		return nil, fmt.Errorf("unknown shape kind %q", r.Kind)
	}
}

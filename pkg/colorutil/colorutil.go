// Package colorutil provides shared color utilities for the drawing UI.
package colorutil

import (
	"fmt"
	"image/color"
	"strings"
)

// Palette colors offered for strokes and fills.
var (
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red    = color.RGBA{R: 220, G: 50, B: 47, A: 255}
	Green  = color.RGBA{R: 35, G: 160, B: 60, A: 255}
	Blue   = color.RGBA{R: 38, G: 80, B: 210, A: 255}
	Orange = color.RGBA{R: 235, G: 140, B: 0, A: 255}
	Gray   = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	None   = color.RGBA{}
)

// Hex formats a color as #rrggbb, or #rrggbbaa when alpha is not opaque.
// The fully transparent color formats as "none".
func Hex(c color.RGBA) string {
	if c.A == 0 {
		return "none"
	}
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseHex parses #rgb, #rrggbb, or #rrggbbaa, and the keyword "none".
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "none" || s == "" {
		return color.RGBA{}, nil
	}
	s = strings.TrimPrefix(s, "#")

	var c color.RGBA
	c.A = 255
	switch len(s) {
	case 3:
		_, err := fmt.Sscanf(s, "%1x%1x%1x", &c.R, &c.G, &c.B)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
		c.R *= 17
		c.G *= 17
		c.B *= 17
	case 6:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
			return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
	case 8:
		if _, err := fmt.Sscanf(s, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A); err != nil {
			return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
		}
	default:
		return color.RGBA{}, fmt.Errorf("parse color %q: bad length", s)
	}
	return c, nil
}

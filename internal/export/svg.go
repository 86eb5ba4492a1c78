package export

import (
	"fmt"
	"strings"

	"github.com/quentinglorieux/Bogo3D/internal/bogo"
	"github.com/quentinglorieux/Bogo3D/internal/viz"
)

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	// SVG header
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height))

	dotRadius := scale * 0.4

	// One circle per lit dot, centered on its sub-pixel
	canvas.EachDot(func(x, y int) {
		cx := (float64(x) + 0.5) * scale
		cy := (float64(y) + 0.5) * scale
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
	})

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// CutToSVG draws the two branches of a cut as polylines, interacting
// branch dashed over the free reference.
func CutToSVG(c *bogo.Cut, width, height int) string {
	if c == nil || c.Len() < 2 {
		return ""
	}

	xs := c.Axis.Display()

	// Shared bounds so the branches overlay correctly
	minX, maxX := xs[0], xs[0]
	for _, x := range xs {
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
	}
	minY, maxY := c.Omega[0], c.Omega[0]
	for i := range c.Omega {
		for _, y := range []float64{c.Omega[i], c.Free[i]} {
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	// Add padding
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	pathFor := func(ys []float64) string {
		var sb strings.Builder
		for i := range xs {
			x := (xs[i] - minX) / rangeX * float64(width)
			y := float64(height) - (ys[i]-minY)/rangeY*float64(height)
			if i == 0 {
				sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		return sb.String()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="#5fafff" stroke-width="1.5" d="%s"/>
`, pathFor(c.Free)))
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="#ff5f5f" stroke-width="1.5" stroke-dasharray="6 3" d="%s"/>
`, pathFor(c.Omega)))

	sb.WriteString(`</svg>`)
	return sb.String()
}

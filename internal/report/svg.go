package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/nbody/internal/dynamo"
)

const (
	svgSize      = 512
	svgMinRadius = 2.0
	svgMaxRadius = 8.0
)

// WriteSVG draws the bodies of sys as circles sized by mass. The view is the
// bounding box of the bodies with 10% padding, y up.
func WriteSVG(w io.Writer, sys dynamo.System) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ccff">
`, svgSize, svgSize, svgSize, svgSize))

	if len(sys) > 0 {
		minX, maxX := sys[0].Position[0], sys[0].Position[0]
		minY, maxY := sys[0].Position[1], sys[0].Position[1]
		minM, maxM := sys[0].Mass, sys[0].Mass
		for _, b := range sys {
			minX = math.Min(minX, b.Position[0])
			maxX = math.Max(maxX, b.Position[0])
			minY = math.Min(minY, b.Position[1])
			maxY = math.Max(maxY, b.Position[1])
			minM = math.Min(minM, b.Mass)
			maxM = math.Max(maxM, b.Mass)
		}

		// square view so distances keep their ratio
		span := math.Max(maxX-minX, maxY-minY)
		if span == 0 {
			span = 1
		}
		pad := span * 0.1
		cx, cy := (minX+maxX)/2, (minY+maxY)/2
		minX, minY = cx-span/2-pad, cy-span/2-pad
		span += 2 * pad

		for i, b := range sys {
			x := (b.Position[0] - minX) / span * svgSize
			y := svgSize - (b.Position[1]-minY)/span*svgSize
			r := svgMinRadius
			if maxM > minM {
				r += (b.Mass - minM) / (maxM - minM) * (svgMaxRadius - svgMinRadius)
			}
			sb.WriteString(fmt.Sprintf(`<circle id="body-%d" cx="%.1f" cy="%.1f" r="%.1f"/>
`, i, x, y, r))
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

package viz

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Braille cells hold 2x4 dots; bit layout per dot:
// 1 4
// 2 5
// 3 6
// 7 8
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas maps a square world region onto braille cells.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Min, Max      mgl64.Vec2
}

func NewCanvas(w, h int, min, max mgl64.Vec2) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Min:    min,
		Max:    max,
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at sub-pixel (x, y); the canvas is Width*2 x Height*4
// dots. Out of range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Project converts a world position to sub-pixel coordinates with y up.
// ok is false outside the region.
func (c *Canvas) Project(p mgl64.Vec2) (x, y int, ok bool) {
	span := c.Max.Sub(c.Min)
	if span[0] <= 0 || span[1] <= 0 {
		return 0, 0, false
	}
	fx := (p[0] - c.Min[0]) / span[0]
	fy := (p[1] - c.Min[1]) / span[1]
	if fx < 0 || fx >= 1 || fy < 0 || fy >= 1 {
		return 0, 0, false
	}

	x = int(fx * float64(c.Width*2))
	y = c.Height*4 - 1 - int(fy*float64(c.Height*4))
	return x, y, true
}

// Plot draws a body at p, two dots wide when heavy. It reports whether p was
// inside the region.
func (c *Canvas) Plot(p mgl64.Vec2, heavy bool) bool {
	x, y, ok := c.Project(p)
	if !ok {
		return false
	}
	c.Set(x, y)
	if heavy {
		c.Set(x+1, y)
		c.Set(x, y-1)
		c.Set(x+1, y-1)
	}
	return true
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

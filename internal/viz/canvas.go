package viz

import (
	"strings"
)

// Braille cells pack 2x4 dots into one rune, offset from 0x2800.
// Dot numbering within a cell:
//
//	1 4
//	2 5
//	3 6
//	7 8
var dotMask = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // empty braille cell
		}
	}
	return c
}

// Set turns on the dot at (x, y) in sub-pixel coordinates. The canvas
// spans (Width*2) x (Height*4) sub-pixels.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(dotMask[y%4][x%2])
}

// EachDot calls fn for every lit dot in sub-pixel coordinates, cells in
// reading order and dots within a cell the same way. Exporters read the
// canvas back out through this instead of decoding braille themselves.
func (c *Canvas) EachDot(fn func(x, y int)) {
	for row, line := range c.Grid {
		for col, r := range line {
			bits := int(r - 0x2800)
			if bits <= 0 {
				continue
			}
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if bits&dotMask[dy][dx] != 0 {
						fn(col*2+dx, row*4+dy)
					}
				}
			}
		}
	}
}

// Clear resets every cell to the empty braille rune.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawLine rasterizes a sub-pixel line with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
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

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

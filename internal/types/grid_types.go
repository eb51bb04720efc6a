package types

import "fmt"

// GridConfig is the row x column shape a window is cycled through.
// Both dimensions are at least 1 once parsed.
type GridConfig struct {
	Rows    uint32 `yaml:"rows" json:"rows"`
	Columns uint32 `yaml:"columns" json:"columns"`
}

// String formats the grid the way it is accepted on the command line ("RxC")
func (g GridConfig) String() string {
	return fmt.Sprintf("%dx%d", g.Rows, g.Columns)
}

// CellCount returns the number of cells in the grid
func (g GridConfig) CellCount() int {
	return int(g.Rows) * int(g.Columns)
}

// Contains reports whether a cell lies inside the grid
func (g GridConfig) Contains(c Cell) bool {
	return c.X < g.Columns && c.Y < g.Rows
}

// Cell addresses one grid cell. X is the column, Y is the row, both 0-indexed.
type Cell struct {
	X uint32 `json:"x"`
	Y uint32 `json:"y"`
}

// String returns the cell as "(x, y)"
func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Index returns the row-major position of the cell within grid g
func (c Cell) Index(g GridConfig) int {
	return int(c.Y)*int(g.Columns) + int(c.X)
}

// Geometry is the live frame of a window as reported by the window manager.
// It is never persisted on its own.
type Geometry struct {
	ID     uint32  `json:"id"`
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

// String formats the geometry like "833x1360 @ (20, 60)"
func (g Geometry) String() string {
	return fmt.Sprintf("%gx%g @ (%g, %g)", g.Width, g.Height, g.X, g.Y)
}

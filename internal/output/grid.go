package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/sys/unix"

	"github.com/yourusername/gridcycle/internal/types"
)

// GridOptions controls the appearance of the grid rendering
type GridOptions struct {
	UseUnicode bool
	MaxWidth   int
	MaxHeight  int
}

// GridMarks highlights cells in a rendering. Either may be nil.
type GridMarks struct {
	Current *types.Cell // Cell the window was last placed into, drawn as [x,y]
	Next    *types.Cell // Cell the next invocation would pick, shaded
}

// DefaultGridOptions returns sensible defaults for the current terminal
func DefaultGridOptions() GridOptions {
	width, height := getTerminalSize()
	return GridOptions{
		UseUnicode: supportsUnicode(),
		MaxWidth:   width,
		MaxHeight:  height,
	}
}

// RenderGrid draws grid as boxes, one per cell, labelled "x,y"
func RenderGrid(grid types.GridConfig, marks GridMarks, opts GridOptions) string {
	if grid.Rows == 0 || grid.Columns == 0 {
		return ""
	}
	cols, rows := int(grid.Columns), int(grid.Rows)

	cellW := clamp((opts.MaxWidth-1)/cols, 6, 16)
	cellH := clamp((opts.MaxHeight-4)/rows, 2, 4)

	canvas := NewCanvas(cols*cellW+1, rows*cellH+1, opts.UseUnicode)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			cell := types.Cell{X: uint32(x), Y: uint32(y)}
			bx, by := x*cellW, y*cellH

			canvas.DrawBox(bx, by, cellW+1, cellH+1)
			if marks.Next != nil && *marks.Next == cell {
				canvas.ShadeInside(bx, by, cellW+1, cellH+1)
			}

			label := fmt.Sprintf("%d,%d", x, y)
			if marks.Current != nil && *marks.Current == cell {
				label = "[" + label + "]"
			}
			canvas.DrawTextCentered(bx+1, by+(cellH+1)/2, cellW-1, label)
		}
	}

	return canvas.String() + "\n"
}

// PrintGrid writes a colored grid rendering to w
func PrintGrid(w io.Writer, grid types.GridConfig, marks GridMarks, opts GridOptions) {
	result := RenderGrid(grid, marks, opts)

	if color.NoColor {
		fmt.Fprint(w, result)
		return
	}
	color.New(color.FgCyan).Fprint(w, result)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// getTerminalSize returns the current terminal dimensions
func getTerminalSize() (width, height int) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		// Default to 80x24 if we can't detect
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

// supportsUnicode checks if the terminal supports Unicode
func supportsUnicode() bool {
	lang := os.Getenv("LANG")
	lcAll := os.Getenv("LC_ALL")

	return strings.Contains(lang, "UTF-8") || strings.Contains(lcAll, "UTF-8")
}

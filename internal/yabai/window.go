package yabai

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yourusername/gridcycle/internal/types"
)

// ErrNoFocusedWindow is returned when no window in a query has focus
var ErrNoFocusedWindow = errors.New("no focused window")

// Frame is a window frame as reported by yabai
type Frame struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	W float32 `json:"w"`
	H float32 `json:"h"`
}

// Window is the subset of a `yabai -m query --windows` entry this tool reads.
// Only ID, Frame and HasFocus drive cycling; the rest is for listings.
type Window struct {
	ID         uint32 `json:"id"`
	PID        int    `json:"pid"`
	App        string `json:"app"`
	Title      string `json:"title"`
	Frame      Frame  `json:"frame"`
	Display    int    `json:"display"`
	Space      int    `json:"space"`
	HasFocus   bool   `json:"has-focus"`
	IsVisible  bool   `json:"is-visible"`
	IsFloating bool   `json:"is-floating"`
}

// Geometry converts the window to the engine's view of it
func (w Window) Geometry() types.Geometry {
	return types.Geometry{
		ID:     w.ID,
		X:      w.Frame.X,
		Y:      w.Frame.Y,
		Width:  w.Frame.W,
		Height: w.Frame.H,
	}
}

// ParseWindows decodes the JSON array printed by `yabai -m query --windows`
func ParseWindows(data []byte) ([]Window, error) {
	var windows []Window
	if err := json.Unmarshal(data, &windows); err != nil {
		return nil, fmt.Errorf("failed to parse yabai output: %w", err)
	}
	return windows, nil
}

// FindFocused returns the first window with focus
func FindFocused(windows []Window) (Window, error) {
	for _, w := range windows {
		if w.HasFocus {
			return w, nil
		}
	}
	return Window{}, ErrNoFocusedWindow
}

// GridArg formats the --grid argument placing a window in cell of grid,
// spanning exactly one cell: "rows:cols:x:y:1:1".
func GridArg(grid types.GridConfig, cell types.Cell) string {
	return fmt.Sprintf("%d:%d:%d:%d:1:1", grid.Rows, grid.Columns, cell.X, cell.Y)
}
